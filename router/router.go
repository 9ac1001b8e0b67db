package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dinebook/restaurant-booking/controllers"
	"github.com/dinebook/restaurant-booking/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// General per-IP limit (50 requests/second). Registered before any route
	// so it actually wraps them.
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	userCtrl := controllers.NewUserController(db)
	restaurantCtrl := controllers.NewRestaurantController(db)
	layoutCtrl := controllers.NewLayoutController(db, nil)
	bookingCtrl := controllers.NewBookingController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------

	// Tighter limiter on the credential endpoints
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Discovery
	r.GET("/restaurants", restaurantCtrl.GetAllRestaurants)
	r.GET("/restaurants/search", restaurantCtrl.SearchRestaurants)
	r.GET("/restaurants/count", restaurantCtrl.GetRestaurantCount)
	r.GET("/restaurants/:restaurant_id", restaurantCtrl.GetRestaurantByID)
	r.GET("/restaurants/:restaurant_id/menu", restaurantCtrl.GetMenu)
	r.GET("/restaurants/:restaurant_id/reviews", restaurantCtrl.ListReviews)

	// Floor plan (read generates the default template on first access)
	r.GET("/restaurants/:restaurant_id/layout", layoutCtrl.GetLayout)

	// Booking core
	r.GET("/bookings/availability", bookingCtrl.GetAvailability)
	r.POST("/bookings", bookingCtrl.CreateBooking)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/profile", userCtrl.GetProfile)
		auth.POST("/logout", userCtrl.Logout)
		auth.PUT("/preferences", userCtrl.UpdatePreferences)

		auth.GET("/restaurants/recommendations", restaurantCtrl.GetRecommendations)
		auth.POST("/restaurants/:restaurant_id/reviews", restaurantCtrl.AddReview)

		// Booking mutation (owner / admin rules enforced in the service)
		auth.GET("/bookings/user", bookingCtrl.GetUserBookings)
		auth.PUT("/bookings/:booking_id", bookingCtrl.UpdateBooking)
		auth.DELETE("/bookings/:booking_id", bookingCtrl.CancelBooking)
		auth.GET("/bookings/analytics", bookingCtrl.GetBookingAnalytics)

		// Administration
		auth.POST("/restaurants", restaurantCtrl.CreateRestaurant)
		auth.PUT("/restaurants/:restaurant_id", restaurantCtrl.UpdateRestaurant)
		auth.DELETE("/restaurants/:restaurant_id", restaurantCtrl.DeleteRestaurant)
		auth.PUT("/restaurants/:restaurant_id/layout", layoutCtrl.ReplaceLayout)
		auth.PATCH("/restaurants/:restaurant_id/layout", layoutCtrl.UpdateLayoutItems)
		auth.POST("/restaurants/:restaurant_id/suggest-layout", layoutCtrl.SuggestLayout)
	}

	return r
}
