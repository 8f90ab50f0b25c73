package cart

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/restaurant-site/internal/infrastructure/storage/memory"
	"github.com/your-org/restaurant-site/internal/pkg/kv"
)

// stubStore is a kv.Store whose reads and writes can be made to fail.
type stubStore struct {
	mu       sync.Mutex
	values   map[string][]byte
	getErr   error
	setErr   error
	setCalls int
}

func newStubStore() *stubStore {
	return &stubStore{values: make(map[string][]byte)}
}

func (s *stubStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	v, ok := s.values[key]
	if !ok {
		return nil, kv.ErrNotFound
	}
	return v, nil
}

func (s *stubStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCalls++
	if s.setErr != nil {
		return s.setErr
	}
	s.values[key] = append([]byte(nil), value...)
	return nil
}

func (s *stubStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func (s *stubStore) Ping(ctx context.Context) error { return nil }
func (s *stubStore) Close() error                   { return nil }

type recordedMutation struct {
	op  string
	err error
}

type fakeRecorder struct {
	mutations    []recordedMutation
	loadFailures []string
}

func (r *fakeRecorder) ObserveMutation(op string, err error) {
	r.mutations = append(r.mutations, recordedMutation{op: op, err: err})
}

func (r *fakeRecorder) ObserveLoadFailure(reason string) {
	r.loadFailures = append(r.loadFailures, reason)
}

func item(id string, price float64, qty int) LineItem {
	return LineItem{ID: id, Name: "Item " + id, Price: price, Image: "/img/" + id + ".jpg", Quantity: qty}
}

func TestStore_AddItem_DistinctIDs(t *testing.T) {
	ctx := context.Background()
	store := NewStore(memory.NewStore())

	adds := []LineItem{
		item("a", 10, 1),
		item("b", 5, 2),
		item("a", 10, 3),
		item("c", 7.5, 1),
		item("b", 5, 4),
	}
	for _, it := range adds {
		_, err := store.AddItem(ctx, it)
		require.NoError(t, err)
	}

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 3)

	want := map[string]int{"a": 4, "b": 6, "c": 1}
	for _, it := range loaded {
		assert.Equal(t, want[it.ID], it.Quantity, "quantity for %s", it.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, []string{loaded[0].ID, loaded[1].ID, loaded[2].ID}, "insertion order")
}

func TestStore_AddItem_SameIDMerges(t *testing.T) {
	ctx := context.Background()
	store := NewStore(memory.NewStore())

	_, err := store.AddItem(ctx, LineItem{ID: "x", Quantity: 2})
	require.NoError(t, err)
	c, err := store.AddItem(ctx, LineItem{ID: "x", Quantity: 3})
	require.NoError(t, err)

	require.Len(t, c, 1)
	assert.Equal(t, "x", c[0].ID)
	assert.Equal(t, 5, c[0].Quantity)
}

func TestStore_AddItem_DefaultsName(t *testing.T) {
	ctx := context.Background()
	store := NewStore(memory.NewStore(), WithDefaultItemName("Plate"))

	c, err := store.AddItem(ctx, LineItem{ID: "x", Name: "  ", Price: 3, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, "Plate", c[0].Name)
}

func TestStore_AddItem_Invalid(t *testing.T) {
	ctx := context.Background()
	backend := newStubStore()
	store := NewStore(backend)

	cases := map[string]LineItem{
		"empty id":       {ID: "", Price: 1, Quantity: 1},
		"negative price": {ID: "a", Price: -1, Quantity: 1},
		"zero quantity":  {ID: "a", Price: 1, Quantity: 0},
	}
	for name, it := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := store.AddItem(ctx, it)
			assert.ErrorIs(t, err, ErrInvalidItem)
		})
	}
	assert.Zero(t, backend.setCalls)
}

func TestStore_SetQuantity(t *testing.T) {
	ctx := context.Background()
	store := NewStore(memory.NewStore())
	_, err := store.AddItem(ctx, item("a", 10, 1))
	require.NoError(t, err)
	_, err = store.AddItem(ctx, item("b", 5, 1))
	require.NoError(t, err)

	c, err := store.SetQuantity(ctx, "a", 7)
	require.NoError(t, err)
	got, ok := c.Find("a")
	require.True(t, ok)
	assert.Equal(t, 7, got.Quantity)

	c, err = store.SetQuantity(ctx, "a", 0)
	require.NoError(t, err)
	_, ok = c.Find("a")
	assert.False(t, ok, "quantity 0 removes the entry")
	assert.Len(t, c, 1)

	c, err = store.SetQuantity(ctx, "b", -4)
	require.NoError(t, err)
	assert.Empty(t, c, "negative quantity clamps to 0 and removes")

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestStore_SetQuantity_UnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	backend := newStubStore()
	store := NewStore(backend)
	_, err := store.AddItem(ctx, item("a", 10, 2))
	require.NoError(t, err)
	calls := backend.setCalls

	c, err := store.SetQuantity(ctx, "missing", 5)
	require.NoError(t, err)
	assert.Equal(t, calls, backend.setCalls, "no write for unknown id")
	require.Len(t, c, 1)
	assert.Equal(t, 2, c[0].Quantity)
}

func TestStore_RemoveItem(t *testing.T) {
	ctx := context.Background()
	store := NewStore(memory.NewStore())
	_, err := store.AddItem(ctx, item("a", 10, 1))
	require.NoError(t, err)
	_, err = store.AddItem(ctx, item("b", 5, 1))
	require.NoError(t, err)

	c, err := store.RemoveItem(ctx, "a")
	require.NoError(t, err)
	require.Len(t, c, 1)
	assert.Equal(t, "b", c[0].ID)

	c, err = store.RemoveItem(ctx, "missing")
	require.NoError(t, err)
	assert.Len(t, c, 1)
}

func TestStore_Load_MissingSlot(t *testing.T) {
	store := NewStore(memory.NewStore())

	c, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, c)
	assert.Empty(t, c)
}

func TestStore_Load_Corrupt(t *testing.T) {
	ctx := context.Background()
	rec := &fakeRecorder{}

	for _, raw := range []string{"not json", "{\"id\":\"a\"}", "[{\"id\":"} {
		backend := memory.NewStore()
		require.NoError(t, backend.Set(ctx, DefaultKey, []byte(raw)))
		store := NewStore(backend, WithRecorder(rec))

		var (
			c   Cart
			err error
		)
		assert.NotPanics(t, func() { c, err = store.Load(ctx) })
		assert.Empty(t, c, "raw %q", raw)
		assert.ErrorIs(t, err, ErrCorruptCart)
	}
	assert.Equal(t, []string{"parse", "parse", "parse"}, rec.loadFailures)
}

func TestStore_Load_EmptyAndNull(t *testing.T) {
	ctx := context.Background()
	for _, raw := range []string{"", "null", "[]"} {
		backend := memory.NewStore()
		require.NoError(t, backend.Set(ctx, DefaultKey, []byte(raw)))

		c, err := NewStore(backend).Load(ctx)
		require.NoError(t, err, "raw %q", raw)
		assert.Empty(t, c)
	}
}

func TestStore_Load_NormalizesForeignData(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewStore()
	raw := `[{"id":"a","name":"A","price":2,"image":"","quantity":1},` +
		`{"id":"b","name":"B","price":3,"image":"","quantity":0},` +
		`{"id":"a","name":"A","price":2,"image":"","quantity":2}]`
	require.NoError(t, backend.Set(ctx, DefaultKey, []byte(raw)))

	c, err := NewStore(backend).Load(ctx)
	require.NoError(t, err)
	require.Len(t, c, 1)
	assert.Equal(t, 3, c[0].Quantity)
}

func TestStore_Load_ReadFailure(t *testing.T) {
	backend := newStubStore()
	backend.getErr = errors.New("connection refused")
	rec := &fakeRecorder{}

	c, err := NewStore(backend, WithRecorder(rec)).Load(context.Background())
	assert.Empty(t, c)
	assert.ErrorIs(t, err, ErrLoadFailed)
	assert.Equal(t, []string{"read"}, rec.loadFailures)
}

func TestStore_SaveLoad_Idempotent(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewStore()
	raw := `[{"id":"a","name":"Risotto","price":18.5,"image":"/r.jpg","quantity":2},{"id":"b","name":"Torte","price":9,"image":"","quantity":1}]`
	require.NoError(t, backend.Set(ctx, DefaultKey, []byte(raw)))
	store := NewStore(backend)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, loaded))

	after, err := backend.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, raw, string(after))
}

func TestStore_Save_EmptyCartIsArray(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewStore()
	store := NewStore(backend)

	require.NoError(t, store.Save(ctx, nil))

	raw, err := backend.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestStore_SaveFailure_LeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	backend := newStubStore()
	badge := NewBadge()
	rec := &fakeRecorder{}
	store := NewStore(backend, WithViews(badge), WithRecorder(rec))

	_, err := store.AddItem(ctx, item("a", 10, 2))
	require.NoError(t, err)
	assert.Equal(t, "2", badge.Text())

	backend.setErr = errors.New("quota exceeded")
	c, err := store.AddItem(ctx, item("a", 10, 1))
	require.ErrorIs(t, err, ErrSaveFailed)

	require.Len(t, c, 1)
	assert.Equal(t, 2, c[0].Quantity, "in-memory cart keeps the last saved state")
	assert.Equal(t, 2, store.Cart()[0].Quantity)
	assert.Equal(t, "2", badge.Text(), "views are not re-rendered on failure")

	last := rec.mutations[len(rec.mutations)-1]
	assert.Equal(t, "add", last.op)
	assert.ErrorIs(t, last.err, ErrSaveFailed)
}

func TestStore_ReadFailureDoesNotWipeCart(t *testing.T) {
	ctx := context.Background()
	backend := newStubStore()
	store := NewStore(backend)

	_, err := store.AddItem(ctx, item("a", 10, 2))
	require.NoError(t, err)

	backend.getErr = errors.New("timeout")
	c, err := store.AddItem(ctx, item("b", 1, 1))
	require.NoError(t, err)
	assert.Len(t, c, 2, "mutation builds on the in-memory copy")
}

func TestStore_ViewsRenderedAfterMutation(t *testing.T) {
	ctx := context.Background()
	badge := NewBadge()
	table := NewTable()
	var renders int
	store := NewStore(memory.NewStore(), WithViews(badge, table, ViewFunc(func(ViewModel) { renders++ })))

	_, err := store.AddItem(ctx, item("a", 10, 2))
	require.NoError(t, err)
	_, err = store.AddItem(ctx, item("b", 5, 1))
	require.NoError(t, err)

	assert.Equal(t, "3", badge.Text())
	rows := table.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "$20.00", rows[0].SubtotalText)
	subtotal, total := table.Totals()
	assert.Equal(t, "$25.00", subtotal)
	assert.Equal(t, "$25.00", total)
	assert.Equal(t, 2, renders)
}

func TestStore_Reload_PicksUpExternalWrite(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewStore()
	badge := NewBadge()
	store := NewStore(backend, WithViews(badge))
	other := NewStore(backend)

	_, err := other.AddItem(ctx, item("a", 4, 3))
	require.NoError(t, err)
	assert.Empty(t, store.Cart())

	c := store.Reload(ctx)
	require.Len(t, c, 1)
	assert.Equal(t, "3", badge.Text())
}

func TestStore_LastWriterWins(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewStore()
	tabA := NewStore(backend)
	tabB := NewStore(backend)

	_, err := tabA.AddItem(ctx, item("a", 1, 1))
	require.NoError(t, err)
	_, err = tabB.AddItem(ctx, item("b", 1, 1))
	require.NoError(t, err)

	require.NoError(t, tabA.Save(ctx, Cart{item("c", 1, 1)}))

	c, err := tabB.Load(ctx)
	require.NoError(t, err)
	require.Len(t, c, 1)
	assert.Equal(t, "c", c[0].ID)
}

func TestStore_Watch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backend := memory.NewStore()
	badge := NewBadge()
	store := NewStore(backend, WithViews(badge))

	done := make(chan error, 1)
	go func() { done <- store.Watch(ctx) }()

	other := NewStore(backend)
	// The watcher may subscribe after the first write; keep writing until seen.
	require.Eventually(t, func() bool {
		_, _ = other.AddItem(ctx, item("a", 1, 1))
		return badge.Text() != "0"
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestStore_Watch_Unsupported(t *testing.T) {
	store := NewStore(newStubStore())
	assert.ErrorIs(t, store.Watch(context.Background()), ErrWatchUnsupported)
}

func TestStore_ConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	store := NewStore(memory.NewStore())

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.AddItem(ctx, item("a", 1, 1))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	c, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, c, 1)
	assert.Equal(t, n, c[0].Quantity)
}

func TestStore_AddItem_RejectsQuantityOverflow(t *testing.T) {
	ctx := context.Background()
	rec := &fakeRecorder{}
	store := NewStore(memory.NewStore(), WithRecorder(rec))

	_, err := store.AddItem(ctx, item("x", 1, math.MaxInt))
	require.NoError(t, err)

	c, err := store.AddItem(ctx, item("x", 1, math.MaxInt))
	require.ErrorIs(t, err, ErrInvalidItem)
	require.Len(t, c, 1)
	assert.Equal(t, math.MaxInt, c[0].Quantity)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, math.MaxInt, loaded[0].Quantity, "the stored entry is unchanged")
	assert.ErrorIs(t, rec.mutations[len(rec.mutations)-1].err, ErrInvalidItem)
}

func TestStore_Load_MergeSaturates(t *testing.T) {
	ctx := context.Background()
	backend := newStubStore()
	backend.values[DefaultKey] = []byte(`[{"id":"x","quantity":9223372036854775807},{"id":"x","quantity":5}]`)
	store := NewStore(backend)

	c, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, c, 1)
	assert.Equal(t, math.MaxInt, c[0].Quantity)
}

func TestStore_StepQuantity(t *testing.T) {
	ctx := context.Background()
	store := NewStore(memory.NewStore())
	q := NewQuantitySanitizer(3)

	_, err := store.AddItem(ctx, item("a", 2, 2))
	require.NoError(t, err)

	c, err := store.StepQuantity(ctx, "a", 1, q)
	require.NoError(t, err)
	assert.Equal(t, 3, c[0].Quantity)

	c, err = store.StepQuantity(ctx, "a", 1, q)
	require.NoError(t, err)
	assert.Equal(t, 3, c[0].Quantity, "clamped at the maximum")

	for i := 0; i < 3; i++ {
		c, err = store.StepQuantity(ctx, "a", -1, q)
		require.NoError(t, err)
	}
	assert.Empty(t, c, "reaching zero removes the entry")

	_, err = store.StepQuantity(ctx, "a", 1, q)
	assert.ErrorIs(t, err, ErrNotInCart)
}

func TestStore_StepQuantity_NotInCartWritesNothing(t *testing.T) {
	backend := newStubStore()
	store := NewStore(backend)

	_, err := store.StepQuantity(context.Background(), "ghost", 1, NewQuantitySanitizer(99))
	assert.ErrorIs(t, err, ErrNotInCart)
	assert.Zero(t, backend.setCalls)
}

// slowStore widens the gap between reading and writing the slot.
type slowStore struct {
	kv.Store
	delay time.Duration
}

func (s *slowStore) Get(ctx context.Context, key string) ([]byte, error) {
	time.Sleep(s.delay)
	return s.Store.Get(ctx, key)
}

func TestStore_ConcurrentSteps(t *testing.T) {
	ctx := context.Background()
	store := NewStore(&slowStore{Store: memory.NewStore(), delay: 2 * time.Millisecond})
	q := NewQuantitySanitizer(99)

	_, err := store.AddItem(ctx, item("risotto", 22, 1))
	require.NoError(t, err)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.StepQuantity(ctx, "risotto", 1, q)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	c, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, c, 1)
	assert.Equal(t, n+1, c[0].Quantity)
}
