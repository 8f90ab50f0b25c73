package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/restaurant-site/internal/domain/gallery"
)

// GalleryHandler serves the filtered photo grid and the lightbox
type GalleryHandler struct {
	gallery *gallery.Service
}

// NewGalleryHandler creates a new gallery handler
func NewGalleryHandler(g *gallery.Service) *GalleryHandler {
	return &GalleryHandler{gallery: g}
}

// GetPage handles GET /gallery?filter=&visible=
func (h *GalleryHandler) GetPage(c *gin.Context) {
	visible, _ := strconv.Atoi(c.Query("visible"))

	c.JSON(http.StatusOK, gin.H{
		"data": h.gallery.Page(c.DefaultQuery("filter", gallery.FilterAll), visible),
	})
}

// Lightbox handles GET /gallery/lightbox?filter=&index=&key=. It opens the
// photo at index and applies one key press.
func (h *GalleryHandler) Lightbox(c *gin.Context) {
	index, err := strconv.Atoi(c.DefaultQuery("index", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid photo index",
		})
		return
	}

	lb := h.gallery.Lightbox(c.DefaultQuery("filter", gallery.FilterAll))
	if !lb.Open(index) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Photo not found",
		})
		return
	}

	if key := c.Query("key"); key != "" {
		lb.HandleKey(key)
	}

	c.JSON(http.StatusOK, gin.H{
		"data": lb.Current(),
	})
}
