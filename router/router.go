package router

import (
	"gorm.io/gorm"

	"github.com/gin-gonic/gin"

	"github.com/TheCosmicVibe/Tallie-App/cache"
	"github.com/TheCosmicVibe/Tallie-App/config"
	"github.com/TheCosmicVibe/Tallie-App/controllers"
	"github.com/TheCosmicVibe/Tallie-App/middlewares"
	"github.com/TheCosmicVibe/Tallie-App/repository"
	"github.com/TheCosmicVibe/Tallie-App/services"
	"github.com/TheCosmicVibe/Tallie-App/utils"
)

// SetupRouter wires the stores, services and controllers onto a gin engine.
func SetupRouter(db *gorm.DB, cacheStore cache.Cache, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	stores := repository.New(db)
	clock := utils.SystemClock{}
	notifier := services.NewNotificationService(cfg)

	seatingSvc := services.NewSeatingService(stores.Tables, stores.Reservations)
	availabilitySvc := services.NewAvailabilityService(
		stores.Restaurants, stores.Tables, stores.Reservations, seatingSvc, cacheStore, cfg)
	waitlistSvc := services.NewWaitlistService(
		stores.Restaurants, stores.Tables, stores.Waitlists, notifier, clock)
	reservationSvc := services.NewReservationService(
		stores.Restaurants, stores.Tables, stores.Reservations,
		seatingSvc, availabilitySvc, waitlistSvc, cacheStore, notifier, clock, cfg)
	restaurantSvc := services.NewRestaurantService(
		stores.Restaurants, stores.Tables, stores.Reservations, cacheStore, cfg)

	restaurantCtrl := controllers.NewRestaurantController(restaurantSvc, availabilitySvc, seatingSvc)
	reservationCtrl := controllers.NewReservationController(reservationSvc)
	waitlistCtrl := controllers.NewWaitlistController(waitlistSvc)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	restaurants := r.Group("/restaurants")
	{
		restaurants.POST("", restaurantCtrl.CreateRestaurant)
		restaurants.GET("", restaurantCtrl.GetAllRestaurants)
		restaurants.GET("/:restaurant_id", restaurantCtrl.GetRestaurantByID)

		restaurants.POST("/:restaurant_id/tables", restaurantCtrl.AddTable)
		restaurants.PATCH("/:restaurant_id/tables/:table_id", restaurantCtrl.UpdateTable)
		restaurants.DELETE("/:restaurant_id/tables/:table_id", restaurantCtrl.DeleteTable)
		restaurants.GET("/:restaurant_id/table-status", restaurantCtrl.GetTableStatus)

		restaurants.GET("/:restaurant_id/availability", restaurantCtrl.CheckAvailability)
		restaurants.GET("/:restaurant_id/redistribution", restaurantCtrl.GetRedistribution)

		restaurants.POST("/:restaurant_id/reservations", reservationCtrl.CreateReservation)
		restaurants.GET("/:restaurant_id/reservations", reservationCtrl.GetReservationsByRestaurant)

		restaurants.POST("/:restaurant_id/waitlist", waitlistCtrl.AddToWaitlist)
		restaurants.GET("/:restaurant_id/waitlist", waitlistCtrl.GetWaitlist)
	}

	reservations := r.Group("/reservations")
	{
		reservations.GET("/:reservation_id", reservationCtrl.GetReservationByID)
		reservations.PATCH("/:reservation_id", reservationCtrl.UpdateReservation)
		reservations.DELETE("/:reservation_id", reservationCtrl.CancelReservation)
	}

	waitlist := r.Group("/waitlist")
	{
		waitlist.PATCH("/:waitlist_id", waitlistCtrl.UpdateWaitlistStatus)
		waitlist.DELETE("/:waitlist_id", waitlistCtrl.RemoveFromWaitlist)
	}

	return r
}
