package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/TheCosmicVibe/Tallie-App/cache"
	"github.com/TheCosmicVibe/Tallie-App/config"
	"github.com/TheCosmicVibe/Tallie-App/models"
	"github.com/TheCosmicVibe/Tallie-App/utils"
)

// TimeSlot is a candidate start time with the tables still free during it.
type TimeSlot struct {
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	AvailableTables []uint `json:"available_tables"`
}

type AvailabilityRequest struct {
	RestaurantID uint
	Date         string
	PartySize    int
	// Duration in minutes; 0 means the configured default.
	Duration int
}

type AvailabilityResult struct {
	Date            string            `json:"date"`
	PartySize       int               `json:"party_size"`
	AvailableSlots  []TimeSlot        `json:"available_slots"`
	SuggestedTables []TableSuggestion `json:"suggested_tables"`
}

// AvailabilityService computes open time slots for a restaurant and date.
type AvailabilityService struct {
	restaurants  RestaurantStore
	tables       TableStore
	reservations ReservationStore
	seating      *SeatingService
	cache        cache.Cache
	cfg          *config.Config
}

func NewAvailabilityService(
	restaurants RestaurantStore,
	tables TableStore,
	reservations ReservationStore,
	seating *SeatingService,
	cacheStore cache.Cache,
	cfg *config.Config,
) *AvailabilityService {
	return &AvailabilityService{
		restaurants:  restaurants,
		tables:       tables,
		reservations: reservations,
		seating:      seating,
		cache:        cacheStore,
		cfg:          cfg,
	}
}

// CheckAvailability walks every candidate slot across the operating hours and
// keeps those where at least one table with enough capacity is free for the
// whole window. Table suggestions are computed for the earliest open slot
// only. Results are cached per (restaurant, date, party size, duration).
func (s *AvailabilityService) CheckAvailability(req AvailabilityRequest) (*AvailabilityResult, error) {
	duration := req.Duration
	if duration <= 0 {
		duration = s.cfg.DefaultReservationDuration
	}

	cacheKey := fmt.Sprintf("availability:%d:%s:%d:%d", req.RestaurantID, req.Date, req.PartySize, duration)
	if cached, ok := s.cache.Get(cacheKey); ok {
		var result AvailabilityResult
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			return &result, nil
		}
	}

	restaurant, err := s.restaurants.FindByID(req.RestaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Restaurant not found")
		}
		return nil, err
	}

	tables, err := s.tables.FindByRestaurant(req.RestaurantID, true)
	if err != nil {
		return nil, err
	}
	var capableTables []models.Table
	for _, table := range tables {
		if table.Capacity >= req.PartySize {
			capableTables = append(capableTables, table)
		}
	}

	result := &AvailabilityResult{
		Date:            req.Date,
		PartySize:       req.PartySize,
		AvailableSlots:  []TimeSlot{},
		SuggestedTables: []TableSuggestion{},
	}

	// No table can ever seat this party: empty result, not an error.
	if len(capableTables) == 0 {
		return result, nil
	}

	// Reservations are selected by the date they are FOR, not the date they
	// were created on.
	reservations, err := s.reservations.FindForDate(req.RestaurantID, req.Date)
	if err != nil {
		return nil, err
	}

	for _, slotTime := range utils.GenerateTimeSlots(restaurant.OpeningTime, restaurant.ClosingTime, s.cfg.SlotIntervalMinutes) {
		slotEndTime := utils.AddMinutesToTime(slotTime, duration)

		if !s.slotWithinHours(req.Date, slotTime, restaurant) ||
			!s.slotWithinHours(req.Date, slotEndTime, restaurant) {
			continue
		}

		var freeTables []uint
		for _, table := range capableTables {
			if tableFree(table.ID, slotTime, slotEndTime, reservations) {
				freeTables = append(freeTables, table.ID)
			}
		}

		if len(freeTables) > 0 {
			result.AvailableSlots = append(result.AvailableSlots, TimeSlot{
				StartTime:       slotTime,
				EndTime:         slotEndTime,
				AvailableTables: freeTables,
			})
		}
	}

	if len(result.AvailableSlots) > 0 {
		suggestions, err := s.seating.SuggestOptimalTable(
			req.RestaurantID, req.PartySize, req.Date,
			result.AvailableSlots[0].StartTime, duration,
		)
		if err != nil {
			return nil, err
		}
		if len(suggestions) > 3 {
			suggestions = suggestions[:3]
		}
		result.SuggestedTables = suggestions
	}

	if payload, err := json.Marshal(result); err == nil {
		s.cache.Set(cacheKey, string(payload), s.cfg.AvailabilityCacheTTL)
	}

	return result, nil
}

func (s *AvailabilityService) slotWithinHours(date, timeString string, restaurant *models.Restaurant) bool {
	instant, err := utils.ParseDateTime(date, timeString)
	if err != nil {
		return false
	}
	return utils.WithinOperatingHours(instant, restaurant.OpeningTime, restaurant.ClosingTime)
}

func tableFree(tableID uint, startTime, endTime string, reservations []models.Reservation) bool {
	for _, res := range reservations {
		if res.TableID != tableID {
			continue
		}
		if utils.TimesOverlap(startTime, endTime, res.StartTime, res.EndTime) {
			return false
		}
	}
	return true
}

// IsTableAvailable reports whether the table has no counting reservation
// overlapping the window, optionally ignoring one reservation id. Used for
// update-in-place validation.
func (s *AvailabilityService) IsTableAvailable(tableID uint, date, startTime, endTime string, excludeReservationID uint) (bool, error) {
	reservations, err := s.reservations.FindForTableDate(tableID, date, excludeReservationID)
	if err != nil {
		return false, err
	}
	for _, res := range reservations {
		if utils.TimesOverlap(startTime, endTime, res.StartTime, res.EndTime) {
			return false, nil
		}
	}
	return true, nil
}

// FindAlternativeSlots reruns availability and ranks the open slots by their
// distance to the preferred time, nearest first, capped at five.
func (s *AvailabilityService) FindAlternativeSlots(restaurantID uint, date string, partySize int, preferredTime string, duration int) ([]TimeSlot, error) {
	availability, err := s.CheckAvailability(AvailabilityRequest{
		RestaurantID: restaurantID,
		Date:         date,
		PartySize:    partySize,
		Duration:     duration,
	})
	if err != nil {
		return nil, err
	}
	if len(availability.AvailableSlots) == 0 {
		return []TimeSlot{}, nil
	}

	slots := make([]TimeSlot, len(availability.AvailableSlots))
	copy(slots, availability.AvailableSlots)

	sort.SliceStable(slots, func(i, j int) bool {
		di, _ := utils.AbsMinutesBetween(slots[i].StartTime, preferredTime)
		dj, _ := utils.AbsMinutesBetween(slots[j].StartTime, preferredTime)
		return di < dj
	})

	if len(slots) > 5 {
		slots = slots[:5]
	}
	return slots, nil
}
