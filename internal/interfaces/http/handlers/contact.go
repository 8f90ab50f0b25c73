package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/restaurant-site/internal/domain/contact"
)

// ContactHandler handles the contact and reservation form
type ContactHandler struct {
	contact *contact.Service
}

// NewContactHandler creates a new contact handler
func NewContactHandler(s *contact.Service) *ContactHandler {
	return &ContactHandler{contact: s}
}

// Submit handles POST /contact with a JSON or form-encoded body
func (h *ContactHandler) Submit(c *gin.Context) {
	var sub contact.Submission
	if err := c.ShouldBind(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	result := h.contact.Submit(c.Request.Context(), sub)
	if !result.OK() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": result.Message,
			"data":  result,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": result.Message,
		"data":    result,
	})
}
