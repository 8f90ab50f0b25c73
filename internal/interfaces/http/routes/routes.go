// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/restaurant-site/internal/interfaces/http/handlers"
)

// Handlers groups the handlers mounted under /api/v1
type Handlers struct {
	Cart    *handlers.CartHandler
	Menu    *handlers.MenuHandler
	Gallery *handlers.GalleryHandler
	Contact *handlers.ContactHandler
}

// SetupCartRoutes sets up cart routes. Every route is one UI event.
func SetupCartRoutes(rg *gin.RouterGroup, h *handlers.CartHandler) {
	cart := rg.Group("/cart")
	{
		cart.GET("", h.GetCart)
		cart.GET("/count", h.GetCount)
		cart.POST("/items", h.AddItem)
		cart.PUT("/items/:id", h.UpdateQuantity)
		cart.POST("/items/:id/increment", h.Increment)
		cart.POST("/items/:id/decrement", h.Decrement)
		cart.DELETE("/items/:id", h.RemoveItem)
	}
}

// SetupMenuRoutes sets up menu routes
func SetupMenuRoutes(rg *gin.RouterGroup, h *handlers.MenuHandler) {
	menu := rg.Group("/menu")
	{
		menu.GET("", h.GetMenu)
		menu.POST("/:id/order", h.Order)
	}
}

// SetupGalleryRoutes sets up gallery routes
func SetupGalleryRoutes(rg *gin.RouterGroup, h *handlers.GalleryHandler) {
	gallery := rg.Group("/gallery")
	{
		gallery.GET("", h.GetPage)
		gallery.GET("/lightbox", h.Lightbox)
	}
}

// SetupContactRoutes sets up the contact form route
func SetupContactRoutes(rg *gin.RouterGroup, h *handlers.ContactHandler) {
	rg.POST("/contact", h.Submit)
}

// SetupRoutes sets up all API routes
func SetupRoutes(rg *gin.RouterGroup, h Handlers) {
	SetupCartRoutes(rg, h.Cart)
	SetupMenuRoutes(rg, h.Menu)
	SetupGalleryRoutes(rg, h.Gallery)
	SetupContactRoutes(rg, h.Contact)
}
