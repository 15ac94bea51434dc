package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TheCosmicVibe/Tallie-App/models"
	"github.com/TheCosmicVibe/Tallie-App/services"
	"github.com/TheCosmicVibe/Tallie-App/utils"
)

type WaitlistController struct {
	Waitlist *services.WaitlistService
}

func NewWaitlistController(waitlist *services.WaitlistService) *WaitlistController {
	return &WaitlistController{Waitlist: waitlist}
}

func (wc *WaitlistController) AddToWaitlist(c *gin.Context) {
	restaurantID, ok := uintParam(c, "restaurant_id")
	if !ok {
		return
	}

	var input services.CreateWaitlistInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondErrorCode(c, http.StatusBadRequest, err)
		return
	}

	entry, err := wc.Waitlist.AddToWaitlist(restaurantID, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Added to waitlist successfully", entry)
}

// GetWaitlist -> the list for ?date= (today when omitted)
func (wc *WaitlistController) GetWaitlist(c *gin.Context) {
	restaurantID, ok := uintParam(c, "restaurant_id")
	if !ok {
		return
	}

	date := c.Query("date")
	if date != "" && !utils.IsValidDate(date) {
		utils.RespondError(c, utils.BadRequest("Invalid date"))
		return
	}

	entries, err := wc.Waitlist.GetWaitlist(restaurantID, date)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Waitlist", entries)
}

func (wc *WaitlistController) UpdateWaitlistStatus(c *gin.Context) {
	waitlistID, ok := uintParam(c, "waitlist_id")
	if !ok {
		return
	}

	var body struct {
		Status models.WaitlistStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondErrorCode(c, http.StatusBadRequest, err)
		return
	}

	entry, err := wc.Waitlist.UpdateStatus(waitlistID, body.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Waitlist status updated successfully", entry)
}

func (wc *WaitlistController) RemoveFromWaitlist(c *gin.Context) {
	waitlistID, ok := uintParam(c, "waitlist_id")
	if !ok {
		return
	}

	if err := wc.Waitlist.Remove(waitlistID); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Removed from waitlist successfully", gin.H{"id": waitlistID})
}
