package routes

import (
	"food-storefront/handlers"
	"food-storefront/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler, limiter *middleware.RateLimiter) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", limiter.Limit(), h.Register)
		public.POST("/auth/login", limiter.Limit(), h.Login)

		// Catalog
		public.GET("/categories", h.ListCategories)
		public.GET("/restaurants", h.ListRestaurants)
		public.GET("/restaurants/:id", h.GetRestaurant)
		public.GET("/restaurants/:id/menu", h.GetMenu)
		public.GET("/search", h.Search)

		// Checkout pricing and lifecycle description
		public.POST("/orders/quote", h.QuoteOrder)
		public.GET("/state-machine", h.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(h.Auth.Required())
	{
		auth.POST("/auth/logout", h.Logout)
		auth.GET("/user", h.GetProfile)
		auth.PUT("/user", h.UpdateProfile)

		auth.GET("/orders", h.GetMyOrders)
		auth.POST("/orders", h.PlaceOrder)
		auth.PATCH("/orders", h.UpdateOrderStatus)
		auth.DELETE("/orders", h.CancelOrder)
		auth.GET("/orders/:id", h.GetOrder)
		auth.POST("/orders/:id/advance", h.AdvanceOrder)
	}
}
