package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotals(t *testing.T) {
	totals := ComputeTotals(Cart{
		{ID: "a", Price: 10, Quantity: 2},
		{ID: "b", Price: 5, Quantity: 1},
	})

	assert.Equal(t, 25.0, totals.SubTotal)
	assert.Equal(t, 25.0, totals.Total)
	assert.Equal(t, 2, totals.ItemCount)
	assert.Equal(t, 3, totals.TotalQuantity)
}

func TestComputeTotals_RoundsToCents(t *testing.T) {
	totals := ComputeTotals(Cart{{ID: "a", Price: 12.99, Quantity: 3}})
	assert.Equal(t, 38.97, totals.SubTotal)
}

func TestComputeTotals_Empty(t *testing.T) {
	totals := ComputeTotals(nil)
	assert.Zero(t, totals.SubTotal)
	assert.Zero(t, totals.Total)
	assert.Zero(t, totals.TotalQuantity)
}

func TestRender(t *testing.T) {
	vm := Render(Cart{
		{ID: "a", Name: "Risotto", Price: 18.5, Image: "/r.jpg", Quantity: 2},
		{ID: "b", Name: "Torte", Price: 9, Quantity: 1},
	})

	assert.Equal(t, "3", vm.Badge)
	assert.Equal(t, 3, vm.Count)
	assert.False(t, vm.Empty)
	require.Len(t, vm.Rows, 2)

	assert.Equal(t, "Risotto", vm.Rows[0].Name)
	assert.Equal(t, "$18.50", vm.Rows[0].PriceText)
	assert.Equal(t, 37.0, vm.Rows[0].Subtotal)
	assert.Equal(t, "$37.00", vm.Rows[0].SubtotalText)
	assert.Equal(t, "$46.00", vm.SubtotalText)
	assert.Equal(t, "$46.00", vm.TotalText)
}

func TestRender_Empty(t *testing.T) {
	vm := Render(Cart{})
	assert.True(t, vm.Empty)
	assert.Equal(t, "0", vm.Badge)
	assert.NotNil(t, vm.Rows)
	assert.Equal(t, "$0.00", vm.TotalText)
}

func TestNewCurrencyFormatter(t *testing.T) {
	f, err := NewCurrencyFormatter("en-GB", "GBP")
	require.NoError(t, err)
	assert.Equal(t, "£4.50", f.Format(4.5))

	_, err = NewCurrencyFormatter("en-US", "NOPE")
	assert.Error(t, err)

	_, err = NewCurrencyFormatter("!!", "USD")
	assert.Error(t, err)
}
