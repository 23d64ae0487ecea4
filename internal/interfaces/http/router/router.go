package router

import (
	"net/http"

	"github.com/kapzar/backend/internal/infrastructure/auth"
	"github.com/kapzar/backend/internal/interfaces/http/handler"
	"github.com/kapzar/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the router wires up
type Handlers struct {
	Auth     *handler.AuthHandler
	Category *handler.CategoryHandler
	Product  *handler.ProductHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
}

// Setup registers all routes on the engine. Auth is required where an
// order must be attributed, optional where anonymous use is part of the
// flow (browsing, carts, checkout), and staff-gated on catalog writes.
func Setup(engine *gin.Engine, jwtService *auth.JWTService, h Handlers) {
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
	}

	catalog := api.Group("/catalog")
	{
		catalog.GET("/categories", h.Category.List)
		catalog.GET("/products", h.Product.List)
		catalog.GET("/products/:id", h.Product.Get)

		staff := catalog.Group("")
		staff.Use(middleware.RequireAuth(jwtService), middleware.RequireStaff())
		{
			staff.POST("/categories", h.Category.Create)
			staff.DELETE("/categories/:id", h.Category.Delete)
			staff.POST("/products", h.Product.Create)
			staff.DELETE("/products/:id", h.Product.Delete)
		}
	}

	cart := api.Group("/cart")
	cart.Use(middleware.OptionalAuth(jwtService))
	{
		cart.GET("", h.Cart.View)
		cart.POST("", h.Cart.Add)
		cart.PUT("", h.Cart.Update)
		cart.DELETE("", h.Cart.Clear)
		cart.DELETE("/:id", h.Cart.Remove)
	}

	orders := api.Group("/orders")
	{
		orders.POST("", middleware.OptionalAuth(jwtService), h.Order.Create)
		orders.GET("", middleware.RequireAuth(jwtService), h.Order.ListMine)
		orders.GET("/:id", middleware.RequireAuth(jwtService), h.Order.Get)
		orders.POST("/:id/pay", middleware.RequireAuth(jwtService), h.Order.ConfirmPayment)
	}
}
