// internal/domain/cart/entity.go
package cart

import "math"

// LineItem is one product instance in the cart. The JSON shape is the
// persisted format: {id, name, price, image, quantity}.
type LineItem struct {
	ID       string  `json:"id" validate:"required"`
	Name     string  `json:"name"`
	Price    float64 `json:"price" validate:"gte=0"` // Unit price
	Image    string  `json:"image"`
	Quantity int     `json:"quantity" validate:"gte=1"`
}

// Cart is the ordered, id-unique list of line items
type Cart []LineItem

// Totals represents calculated cart totals
type Totals struct {
	ItemCount     int     `json:"item_count"`     // Number of distinct lines
	TotalQuantity int     `json:"total_quantity"` // Sum of all quantities
	SubTotal      float64 `json:"sub_total"`
	Total         float64 `json:"total"`
}

// Index returns the position of the entry with id, or -1
func (c Cart) Index(id string) int {
	for i := range c {
		if c[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns the entry with id
func (c Cart) Find(id string) (LineItem, bool) {
	if i := c.Index(id); i >= 0 {
		return c[i], true
	}
	return LineItem{}, false
}

// Clone returns a copy that shares nothing with c. The result is never nil.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

// TotalQuantity is the value shown in the count badge
func (c Cart) TotalQuantity() int {
	n := 0
	for _, item := range c {
		n += item.Quantity
	}
	return n
}

// ComputeTotals sums price × quantity over all entries. There is no tax,
// shipping or discount, so the total equals the subtotal.
func ComputeTotals(c Cart) Totals {
	var totals Totals

	totals.ItemCount = len(c)
	for _, item := range c {
		totals.TotalQuantity += item.Quantity
		totals.SubTotal += item.Price * float64(item.Quantity)
	}

	totals.SubTotal = roundCents(totals.SubTotal)
	totals.Total = totals.SubTotal

	return totals
}

// normalize restores the cart invariants on data that came from outside the
// store: entries with quantity <= 0 or an empty id are dropped, duplicate ids
// are merged into the first occurrence. Valid carts come back unchanged.
func normalize(c Cart) Cart {
	out := make(Cart, 0, len(c))
	for _, item := range c {
		if item.ID == "" || item.Quantity <= 0 {
			continue
		}
		if i := out.Index(item.ID); i >= 0 {
			out[i].Quantity = addSaturating(out[i].Quantity, item.Quantity)
			continue
		}
		out = append(out, item)
	}
	return out
}

// withQuantity sets the quantity of entry i; zero or less removes it.
func (c Cart) withQuantity(i, quantity int) Cart {
	if quantity <= 0 {
		return append(c[:i], c[i+1:]...)
	}
	c[i].Quantity = quantity
	return c
}

// addSaturating adds two positive quantities, stopping at math.MaxInt.
func addSaturating(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
