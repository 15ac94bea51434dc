package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/TheCosmicVibe/Tallie-App/services"
	"github.com/TheCosmicVibe/Tallie-App/utils"
)

type RestaurantController struct {
	Restaurants  *services.RestaurantService
	Availability *services.AvailabilityService
	Seating      *services.SeatingService
}

func NewRestaurantController(
	restaurants *services.RestaurantService,
	availability *services.AvailabilityService,
	seating *services.SeatingService,
) *RestaurantController {
	return &RestaurantController{
		Restaurants:  restaurants,
		Availability: availability,
		Seating:      seating,
	}
}

func (rc *RestaurantController) CreateRestaurant(c *gin.Context) {
	var input services.CreateRestaurantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondErrorCode(c, http.StatusBadRequest, err)
		return
	}

	restaurant, err := rc.Restaurants.CreateRestaurant(input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Restaurant created successfully", restaurant)
}

func (rc *RestaurantController) GetAllRestaurants(c *gin.Context) {
	restaurants, err := rc.Restaurants.GetAllRestaurants()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of restaurants", restaurants)
}

func (rc *RestaurantController) GetRestaurantByID(c *gin.Context) {
	restaurantID, ok := uintParam(c, "restaurant_id")
	if !ok {
		return
	}

	restaurant, err := rc.Restaurants.GetRestaurantByID(restaurantID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant detail", restaurant)
}

func (rc *RestaurantController) AddTable(c *gin.Context) {
	restaurantID, ok := uintParam(c, "restaurant_id")
	if !ok {
		return
	}

	var input services.CreateTableInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondErrorCode(c, http.StatusBadRequest, err)
		return
	}

	table, err := rc.Restaurants.AddTable(restaurantID, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

func (rc *RestaurantController) UpdateTable(c *gin.Context) {
	restaurantID, ok := uintParam(c, "restaurant_id")
	if !ok {
		return
	}
	tableID, ok := uintParam(c, "table_id")
	if !ok {
		return
	}

	var input services.UpdateTableInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondErrorCode(c, http.StatusBadRequest, err)
		return
	}

	table, err := rc.Restaurants.UpdateTable(restaurantID, tableID, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

func (rc *RestaurantController) DeleteTable(c *gin.Context) {
	restaurantID, ok := uintParam(c, "restaurant_id")
	if !ok {
		return
	}
	tableID, ok := uintParam(c, "table_id")
	if !ok {
		return
	}

	if err := rc.Restaurants.DeleteTable(restaurantID, tableID); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"id": tableID})
}

// GetTableStatus -> which tables are free/occupied at ?date=&time=
func (rc *RestaurantController) GetTableStatus(c *gin.Context) {
	restaurantID, ok := uintParam(c, "restaurant_id")
	if !ok {
		return
	}

	date := c.Query("date")
	timeString := c.Query("time")
	if !utils.IsValidDate(date) || !utils.IsValidTime(timeString) {
		utils.RespondError(c, utils.BadRequest("date and time query parameters are required"))
		return
	}

	view, err := rc.Restaurants.GetRestaurantWithAvailableTables(restaurantID, date, timeString)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table status", view)
}

// CheckAvailability -> open slots for ?date=&party_size=&duration=
func (rc *RestaurantController) CheckAvailability(c *gin.Context) {
	restaurantID, ok := uintParam(c, "restaurant_id")
	if !ok {
		return
	}

	date := c.Query("date")
	if !utils.IsValidDate(date) {
		utils.RespondError(c, utils.BadRequest("A valid date query parameter is required"))
		return
	}

	partySize, err := strconv.Atoi(c.Query("party_size"))
	if err != nil || partySize < 1 {
		utils.RespondError(c, utils.BadRequest("party_size must be a positive integer"))
		return
	}

	duration := 0
	if raw := c.Query("duration"); raw != "" {
		duration, err = strconv.Atoi(raw)
		if err != nil || duration < 1 {
			utils.RespondError(c, utils.BadRequest("duration must be a positive integer"))
			return
		}
	}

	result, err := rc.Availability.CheckAvailability(services.AvailabilityRequest{
		RestaurantID: restaurantID,
		Date:         date,
		PartySize:    partySize,
		Duration:     duration,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Availability", result)
}

// GetRedistribution -> read-only seating optimization report for ?date=
func (rc *RestaurantController) GetRedistribution(c *gin.Context) {
	restaurantID, ok := uintParam(c, "restaurant_id")
	if !ok {
		return
	}

	date := c.Query("date")
	if !utils.IsValidDate(date) {
		utils.RespondError(c, utils.BadRequest("A valid date query parameter is required"))
		return
	}

	report, err := rc.Seating.RedistributeReservations(restaurantID, date)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Redistribution report", report)
}

// uintParam parses a numeric path parameter, responding 400 itself on bad
// input.
func uintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		utils.RespondError(c, utils.BadRequest(name+" must be a positive integer"))
		return 0, false
	}
	return uint(parsed), true
}
