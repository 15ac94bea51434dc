package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func waitlistPayload(name string, partySize int) map[string]interface{} {
	return map[string]interface{}{
		"customer_name":  name,
		"customer_phone": "+15557003000",
		"party_size":     partySize,
	}
}

func TestAddToWaitlistEndpoint(t *testing.T) {
	r, db := setupRouter(t)
	restaurant := seedRestaurant(t, db, 4)
	url := fmt.Sprintf("/restaurants/%d/waitlist", restaurant.ID)

	w := doJSON(t, r, "POST", url, waitlistPayload("First Group", 2))
	assert.Equal(t, http.StatusCreated, w.Code)
	response := decodeResponse(t, w)
	assert.Equal(t, "Added to waitlist successfully", response["message"])
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["position"])
	assert.Equal(t, "waiting", data["status"])

	w = doJSON(t, r, "POST", url, waitlistPayload("Second Group", 4))
	assert.Equal(t, http.StatusCreated, w.Code)
	data = decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["position"])

	w = doJSON(t, r, "POST", "/restaurants/9999/waitlist", waitlistPayload("Lost Group", 2))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetWaitlistEndpoint(t *testing.T) {
	r, db := setupRouter(t)
	restaurant := seedRestaurant(t, db, 4)
	url := fmt.Sprintf("/restaurants/%d/waitlist", restaurant.ID)

	w := doJSON(t, r, "POST", url, waitlistPayload("Only Group", 2))
	assert.Equal(t, http.StatusCreated, w.Code)

	// No date means today's list.
	w = doJSON(t, r, "GET", url, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeResponse(t, w)
	data := response["data"].([]interface{})
	assert.Len(t, data, 1)

	w = doJSON(t, r, "GET", url+"?date=2020-01-01", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeResponse(t, w)["data"])

	w = doJSON(t, r, "GET", url+"?date=someday", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateWaitlistStatusEndpoint(t *testing.T) {
	r, db := setupRouter(t)
	restaurant := seedRestaurant(t, db, 4)
	url := fmt.Sprintf("/restaurants/%d/waitlist", restaurant.ID)

	w := doJSON(t, r, "POST", url, waitlistPayload("Leaving Group", 2))
	first := decodeResponse(t, w)["data"].(map[string]interface{})
	w = doJSON(t, r, "POST", url, waitlistPayload("Patient Group", 2))
	second := decodeResponse(t, w)["data"].(map[string]interface{})

	firstID := int(first["id"].(float64))
	w = doJSON(t, r, "PATCH", fmt.Sprintf("/waitlist/%d", firstID), map[string]interface{}{
		"status": "seated",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeResponse(t, w)
	assert.Equal(t, "Waitlist status updated successfully", response["message"])

	// The remaining entry moved up.
	w = doJSON(t, r, "GET", url, nil)
	entries := decodeResponse(t, w)["data"].([]interface{})
	for _, raw := range entries {
		entry := raw.(map[string]interface{})
		if int(entry["id"].(float64)) == int(second["id"].(float64)) {
			assert.Equal(t, float64(1), entry["position"])
		}
	}

	w = doJSON(t, r, "PATCH", fmt.Sprintf("/waitlist/%d", firstID), map[string]interface{}{
		"status": "teleported",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRemoveFromWaitlistEndpoint(t *testing.T) {
	r, db := setupRouter(t)
	restaurant := seedRestaurant(t, db, 4)
	url := fmt.Sprintf("/restaurants/%d/waitlist", restaurant.ID)

	w := doJSON(t, r, "POST", url, waitlistPayload("Gone Group", 2))
	entry := decodeResponse(t, w)["data"].(map[string]interface{})
	id := int(entry["id"].(float64))

	w = doJSON(t, r, "DELETE", fmt.Sprintf("/waitlist/%d", id), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "DELETE", fmt.Sprintf("/waitlist/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
