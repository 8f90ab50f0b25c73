// internal/domain/menu/entity.go
package menu

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/your-org/restaurant-site/internal/domain/cart"
)

var (
	ErrNotFound     = errors.New("menu item not found")
	ErrInvalidPrice = errors.New("invalid menu price")
)

// Entry is a dish as the menu page exposes it. Price is kept as text because
// that is how the page carries it.
type Entry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Section     string `json:"section"`
	Price       string `json:"price"`
	Image       string `json:"image"`
}

// LineItem builds a quantity-1 cart line from the entry
func (e Entry) LineItem(defaultName string) (cart.LineItem, error) {
	price, err := ParsePrice(e.Price)
	if err != nil {
		return cart.LineItem{}, err
	}

	name := strings.TrimSpace(e.Name)
	if name == "" {
		name = defaultName
	}

	return cart.LineItem{
		ID:       strings.TrimSpace(e.ID),
		Name:     name,
		Price:    price,
		Image:    e.Image,
		Quantity: 1,
	}, nil
}

// ParsePrice parses a unit price. An empty string is a free item.
func ParsePrice(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}

	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, raw)
	}
	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, raw)
	}
	return price, nil
}
