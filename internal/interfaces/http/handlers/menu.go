package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/restaurant-site/internal/domain/menu"
)

// MenuHandler serves the menu and its "Order" buttons
type MenuHandler struct {
	catalog *menu.Catalog
	cart    *CartHandler
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(catalog *menu.Catalog, cart *CartHandler) *MenuHandler {
	return &MenuHandler{catalog: catalog, cart: cart}
}

// GetMenu handles GET /menu?section=
func (h *MenuHandler) GetMenu(c *gin.Context) {
	entries := h.catalog.All()
	if section := c.Query("section"); section != "" {
		entries = h.catalog.Section(section)
	}

	c.JSON(http.StatusOK, gin.H{
		"data": entries,
	})
}

// Order handles POST /menu/:id/order, adding one of the dish to the cart
func (h *MenuHandler) Order(c *gin.Context) {
	entry, err := h.catalog.Find(c.Param("id"))
	if err != nil {
		h.cart.respondError(c, err)
		return
	}

	item, err := entry.LineItem(h.cart.defaultName)
	if err != nil {
		h.cart.respondError(c, err)
		return
	}

	updated, err := h.cart.store.AddItem(c.Request.Context(), item)
	if err != nil {
		h.cart.respondError(c, err)
		return
	}

	h.cart.respondCart(c, "Item added to cart successfully", updated)
}
