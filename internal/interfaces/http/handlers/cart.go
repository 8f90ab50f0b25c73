// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/restaurant-site/internal/domain/cart"
	"github.com/your-org/restaurant-site/internal/domain/menu"
)

// CartHandler turns cart UI events into store operations
type CartHandler struct {
	store       *cart.Store
	renderer    *cart.Renderer
	quantity    cart.QuantitySanitizer
	defaultName string
	log         *logrus.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(store *cart.Store, renderer *cart.Renderer, quantity cart.QuantitySanitizer, defaultName string, log *logrus.Logger) *CartHandler {
	return &CartHandler{
		store:       store,
		renderer:    renderer,
		quantity:    quantity,
		defaultName: defaultName,
		log:         log,
	}
}

// AddItemRequest is the payload of an "Order" click
type AddItemRequest struct {
	ID       string `json:"id" binding:"required"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Image    string `json:"image"`
	Quantity int    `json:"quantity"`
}

// RawQuantity is the quantity field as typed. It accepts a JSON string or number.
type RawQuantity string

func (q *RawQuantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*q = RawQuantity(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*q = ""
		return nil
	}
	*q = RawQuantity(data)
	return nil
}

// UpdateQuantityRequest is the payload of a quantity field change
type UpdateQuantityRequest struct {
	Quantity RawQuantity `json:"quantity"`
}

// GetCart handles GET /cart. The persisted slot is re-read first so changes
// made elsewhere show up.
func (h *CartHandler) GetCart(c *gin.Context) {
	current := h.store.Reload(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    h.renderer.Render(current),
	})
}

// GetCount handles GET /cart/count
func (h *CartHandler) GetCount(c *gin.Context) {
	vm := h.renderer.Render(h.store.Reload(c.Request.Context()))

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"count": vm.Count,
			"badge": vm.Badge,
		},
	})
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	entry := menu.Entry{ID: req.ID, Name: req.Name, Price: req.Price, Image: req.Image}
	item, err := entry.LineItem(h.defaultName)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if req.Quantity != 0 {
		item.Quantity = h.addQuantity(req.Quantity)
	}

	updated, err := h.store.AddItem(c.Request.Context(), item)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondCart(c, "Item added to cart successfully", updated)
}

// UpdateQuantity handles PUT /cart/items/:id
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	quantity := h.quantity.Sanitize(string(req.Quantity))
	updated, err := h.store.SetQuantity(c.Request.Context(), c.Param("id"), quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondCart(c, "Cart item updated successfully", updated)
}

// Increment handles POST /cart/items/:id/increment
func (h *CartHandler) Increment(c *gin.Context) {
	h.step(c, 1)
}

// Decrement handles POST /cart/items/:id/decrement
func (h *CartHandler) Decrement(c *gin.Context) {
	h.step(c, -1)
}

func (h *CartHandler) step(c *gin.Context, delta int) {
	updated, err := h.store.StepQuantity(c.Request.Context(), c.Param("id"), delta, h.quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondCart(c, "Cart item updated successfully", updated)
}

// addQuantity runs an explicit order quantity through the field sanitizer,
// keeping at least one.
func (h *CartHandler) addQuantity(n int) int {
	q := h.quantity.Sanitize(strconv.Itoa(n))
	if q < 1 {
		return 1
	}
	return q
}

// RemoveItem handles DELETE /cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	updated, err := h.store.RemoveItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondCart(c, "Item removed from cart successfully", updated)
}

func (h *CartHandler) respondCart(c *gin.Context, message string, current cart.Cart) {
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data":    h.renderer.Render(current),
	})
}

// respondError maps domain errors to status codes
func (h *CartHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cart.ErrSaveFailed):
		h.log.WithError(err).Error("Cart save failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Couldn't save your cart",
		})
	case errors.Is(err, cart.ErrInvalidItem), errors.Is(err, menu.ErrInvalidPrice):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid cart item",
			"details": err.Error(),
		})
	case errors.Is(err, cart.ErrNotInCart):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Item not in cart",
		})
	case errors.Is(err, menu.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Menu item not found",
		})
	default:
		h.log.WithError(err).Error("Unexpected cart error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Something went wrong",
		})
	}
}
