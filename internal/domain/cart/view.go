package cart

import "sync"

// View is re-rendered by the store after every successful save or reload
type View interface {
	Render(vm ViewModel)
}

// ViewFunc adapts a function to View
type ViewFunc func(vm ViewModel)

// Render calls f(vm)
func (f ViewFunc) Render(vm ViewModel) {
	f(vm)
}

// Badge keeps the text of the cart count badge
type Badge struct {
	mu   sync.RWMutex
	text string
}

// NewBadge returns a badge showing "0"
func NewBadge() *Badge {
	return &Badge{text: "0"}
}

// Render shows the total quantity from vm
func (b *Badge) Render(vm ViewModel) {
	b.mu.Lock()
	b.text = vm.Badge
	b.mu.Unlock()
}

// Text returns what the badge currently shows
func (b *Badge) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}

// Table keeps the rows and totals of the cart page
type Table struct {
	mu sync.RWMutex
	vm ViewModel
}

// NewTable returns an empty table
func NewTable() *Table {
	return &Table{vm: ViewModel{Badge: "0", Rows: []Row{}, Empty: true}}
}

// Render replaces the rows and totals with those of vm
func (t *Table) Render(vm ViewModel) {
	rows := make([]Row, len(vm.Rows))
	copy(rows, vm.Rows)
	vm.Rows = rows

	t.mu.Lock()
	t.vm = vm
	t.mu.Unlock()
}

// Rows returns a copy of the rendered rows
func (t *Table) Rows() []Row {
	t.mu.RLock()
	defer t.mu.RUnlock()
	rows := make([]Row, len(t.vm.Rows))
	copy(rows, t.vm.Rows)
	return rows
}

// Totals returns the formatted subtotal and total
func (t *Table) Totals() (subtotal, total string) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.vm.SubtotalText, t.vm.TotalText
}
