package routes

import (
	"food-marketplace-api/handlers"
	"food-marketplace-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		public.GET("/restaurants", handlers.ListRestaurants)
		public.GET("/restaurants/:id", handlers.GetRestaurant)
		public.GET("/restaurants/:id/menu", handlers.GetMenu)

		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes (any principal) ───────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
		auth.PUT("/profile", handlers.UpdateProfile)
		auth.DELETE("/profile", handlers.DeleteProfile)

		auth.POST("/orders", handlers.PlaceOrder)
		auth.GET("/orders", handlers.GetMyOrders)
		auth.GET("/orders/:id", handlers.GetOrderDetail)

		auth.POST("/restaurants/:id/ratings", handlers.RateRestaurant)
		auth.DELETE("/restaurants/:id/ratings", handlers.DeleteMyRating)
		auth.GET("/profile/ratings", handlers.GetMyRatings)
	}

	// ── Courier routes ─────────────────────────────────────────────
	courier := r.Group("/api/courier")
	courier.Use(middleware.AuthRequired(), middleware.CourierRequired())
	{
		courier.GET("/orders/available", handlers.GetAvailableOrders)
		courier.PUT("/orders/:id/claim", handlers.ClaimOrder)
		courier.PUT("/orders/:id/status", handlers.AdvanceOrderStatus)
		courier.GET("/orders/current", handlers.GetCurrentOrder)
		courier.GET("/orders/history", handlers.GetDeliveryHistory)
		courier.PUT("/availability", handlers.ToggleAvailability)
		courier.PUT("/profile", handlers.UpdateCourierProfile)
	}

	// ── Restaurant owner routes ────────────────────────────────────
	restaurant := r.Group("/api/restaurant")
	restaurant.Use(middleware.AuthRequired(), middleware.RestaurantRequired())
	{
		restaurant.POST("/", handlers.CreateRestaurant)
		restaurant.GET("/", handlers.GetMyRestaurant)
		restaurant.PUT("/", handlers.UpdateRestaurant)

		restaurant.POST("/menu", handlers.AddMenuItem)
		restaurant.PUT("/menu/:itemId", handlers.UpdateMenuItem)
		restaurant.DELETE("/menu/:itemId", handlers.DeleteMenuItem)

		restaurant.GET("/orders", handlers.GetRestaurantOrders)
		restaurant.PUT("/orders/:id/accept", handlers.AcceptOrder)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("/users", handlers.AdminGetAllUsers)

		admin.GET("/orders", handlers.AdminGetAllOrders)
		admin.PUT("/orders/:id/status", handlers.AdminForceOrderStatus)
		admin.DELETE("/orders/:id", handlers.AdminDeleteOrder)

		admin.GET("/restaurants", handlers.AdminGetAllRestaurants)
		admin.POST("/restaurants", handlers.AdminAddRestaurant)
		admin.GET("/restaurants/pending", handlers.AdminListPendingRestaurants)
		admin.PUT("/restaurants/:id/approve", handlers.AdminApproveRestaurant)
		admin.DELETE("/restaurants/:id", handlers.AdminDeleteRestaurant)

		admin.POST("/menu-items", handlers.AdminAddMenuItem)
		admin.DELETE("/menu-items/:id", handlers.AdminDeleteMenuItem)

		admin.GET("/couriers", handlers.AdminGetAllCouriers)
		admin.POST("/couriers", handlers.AdminAddCourier)
		admin.GET("/couriers/pending", handlers.AdminListPendingCouriers)
		admin.PUT("/couriers/:id/approve", handlers.AdminApproveCourier)
	}
}
