package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TheCosmicVibe/Tallie-App/services"
	"github.com/TheCosmicVibe/Tallie-App/utils"
)

type ReservationController struct {
	Reservations *services.ReservationService
}

func NewReservationController(reservations *services.ReservationService) *ReservationController {
	return &ReservationController{Reservations: reservations}
}

func (rc *ReservationController) CreateReservation(c *gin.Context) {
	restaurantID, ok := uintParam(c, "restaurant_id")
	if !ok {
		return
	}

	var input services.CreateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondErrorCode(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := rc.Reservations.CreateReservation(restaurantID, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Reservation created successfully", reservation)
}

func (rc *ReservationController) GetReservationByID(c *gin.Context) {
	reservationID, ok := uintParam(c, "reservation_id")
	if !ok {
		return
	}

	reservation, err := rc.Reservations.GetReservationByID(reservationID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation detail", reservation)
}

// GetReservationsByRestaurant -> day view for ?date=
func (rc *ReservationController) GetReservationsByRestaurant(c *gin.Context) {
	restaurantID, ok := uintParam(c, "restaurant_id")
	if !ok {
		return
	}

	date := c.Query("date")
	if !utils.IsValidDate(date) {
		utils.RespondError(c, utils.BadRequest("A valid date query parameter is required"))
		return
	}

	reservations, err := rc.Reservations.GetReservationsByRestaurant(restaurantID, date)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of reservations", reservations)
}

func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	reservationID, ok := uintParam(c, "reservation_id")
	if !ok {
		return
	}

	var input services.UpdateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondErrorCode(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := rc.Reservations.UpdateReservation(reservationID, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation updated", reservation)
}

func (rc *ReservationController) CancelReservation(c *gin.Context) {
	reservationID, ok := uintParam(c, "reservation_id")
	if !ok {
		return
	}

	reservation, err := rc.Reservations.CancelReservation(reservationID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation cancelled", reservation)
}
