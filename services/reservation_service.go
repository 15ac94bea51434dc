package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/TheCosmicVibe/Tallie-App/cache"
	"github.com/TheCosmicVibe/Tallie-App/config"
	"github.com/TheCosmicVibe/Tallie-App/models"
	"github.com/TheCosmicVibe/Tallie-App/utils"
)

type CreateReservationInput struct {
	CustomerName    string  `json:"customer_name" binding:"required"`
	CustomerPhone   string  `json:"customer_phone" binding:"required"`
	CustomerEmail   *string `json:"customer_email"`
	PartySize       int     `json:"party_size" binding:"required,min=1"`
	ReservationDate string  `json:"reservation_date" binding:"required"`
	ReservationTime string  `json:"reservation_time" binding:"required"`
	Duration        int     `json:"duration"`
	SpecialRequests *string `json:"special_requests"`
}

type UpdateReservationInput struct {
	ReservationDate *string                   `json:"reservation_date"`
	ReservationTime *string                   `json:"reservation_time"`
	PartySize       *int                      `json:"party_size"`
	Duration        *int                      `json:"duration"`
	Status          *models.ReservationStatus `json:"status"`
	SpecialRequests *string                   `json:"special_requests"`
}

// AlternativeSlot is the trimmed slot shape attached to a no-availability
// conflict response.
type AlternativeSlot struct {
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	AvailableTables int    `json:"available_tables"`
}

// ReservationService orchestrates booking creation, modification and
// cancellation on top of the scoring and availability engines.
type ReservationService struct {
	restaurants  RestaurantStore
	tables       TableStore
	reservations ReservationStore
	seating      *SeatingService
	availability *AvailabilityService
	waitlist     *WaitlistService
	cache        cache.Cache
	notifier     Notifier
	clock        utils.Clock
	cfg          *config.Config
}

func NewReservationService(
	restaurants RestaurantStore,
	tables TableStore,
	reservations ReservationStore,
	seating *SeatingService,
	availability *AvailabilityService,
	waitlist *WaitlistService,
	cacheStore cache.Cache,
	notifier Notifier,
	clock utils.Clock,
	cfg *config.Config,
) *ReservationService {
	return &ReservationService{
		restaurants:  restaurants,
		tables:       tables,
		reservations: reservations,
		seating:      seating,
		availability: availability,
		waitlist:     waitlist,
		cache:        cacheStore,
		notifier:     notifier,
		clock:        clock,
		cfg:          cfg,
	}
}

// CreateReservation validates the request, picks the best-scoring table and
// books it as confirmed. When no table fits, it answers with a conflict that
// carries up to five alternative slots, or waitlist guidance when the day has
// none. No row is written in the conflict path.
func (s *ReservationService) CreateReservation(restaurantID uint, input CreateReservationInput) (*models.Reservation, error) {
	restaurant, err := s.restaurants.FindByID(restaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Restaurant not found")
		}
		return nil, err
	}

	if !utils.IsValidDate(input.ReservationDate) {
		return nil, utils.BadRequest("Invalid reservation date")
	}
	if !utils.IsValidTime(input.ReservationTime) {
		return nil, utils.BadRequest("Invalid reservation time")
	}
	if !utils.IsFutureDateTime(s.clock, input.ReservationDate, input.ReservationTime) {
		return nil, utils.BadRequest("Reservation must be in the future")
	}
	if !utils.WithinAdvanceBookingPeriod(s.clock, input.ReservationDate, s.cfg.MaxAdvanceBookingDays) {
		return nil, utils.BadRequest(fmt.Sprintf(
			"Reservations can only be made up to %d days in advance", s.cfg.MaxAdvanceBookingDays))
	}

	duration := input.Duration
	if duration <= 0 {
		duration = s.cfg.DefaultReservationDuration
	}
	if utils.IsPeakHour(input.ReservationTime, s.cfg.PeakHoursStart, s.cfg.PeakHoursEnd) &&
		duration > s.cfg.PeakHoursMaxDuration {
		duration = s.cfg.PeakHoursMaxDuration
		utils.InfoLogger.Printf("Duration adjusted to %d minutes for peak hours", duration)
	}

	endTime := utils.AddMinutesToTime(input.ReservationTime, duration)

	startInstant, err := utils.ParseDateTime(input.ReservationDate, input.ReservationTime)
	if err != nil {
		return nil, utils.BadRequest("Invalid reservation time")
	}
	endInstant, err := utils.ParseDateTime(input.ReservationDate, endTime)
	if err != nil {
		return nil, utils.BadRequest("Invalid reservation time")
	}
	if !utils.WithinOperatingHours(startInstant, restaurant.OpeningTime, restaurant.ClosingTime) ||
		!utils.WithinOperatingHours(endInstant, restaurant.OpeningTime, restaurant.ClosingTime) {
		return nil, utils.BadRequest(fmt.Sprintf(
			"Reservation must be within operating hours (%s - %s)",
			restaurant.OpeningTime, restaurant.ClosingTime))
	}

	suggestions, err := s.seating.SuggestOptimalTable(
		restaurantID, input.PartySize, input.ReservationDate, input.ReservationTime, duration)
	if err != nil {
		return nil, err
	}
	if len(suggestions) == 0 {
		return nil, s.noAvailability(restaurantID, input.ReservationDate, input.PartySize, input.ReservationTime, duration)
	}

	bestTable := suggestions[0]

	reservation := &models.Reservation{
		RestaurantID:     restaurantID,
		TableID:          bestTable.TableID,
		CustomerName:     input.CustomerName,
		CustomerPhone:    input.CustomerPhone,
		CustomerEmail:    input.CustomerEmail,
		PartySize:        input.PartySize,
		ReservationDate:  input.ReservationDate,
		StartTime:        input.ReservationTime,
		EndTime:          endTime,
		Duration:         duration,
		Status:           models.ReservationStatusConfirmed,
		SpecialRequests:  input.SpecialRequests,
		ConfirmationCode: newConfirmationCode(),
	}

	// The scoring pass above is advisory; the store re-checks the window
	// atomically and reports a conflict if a concurrent booking won the race.
	if err := s.reservations.CreateIfTableFree(reservation); err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Reservation created: %s for %s at table %s",
		reservation.ConfirmationCode, reservation.CustomerName, bestTable.TableNumber)

	s.invalidateCaches(restaurantID)
	s.notifier.SendReservationConfirmation(reservation, restaurant.Name, bestTable.TableNumber)

	return reservation, nil
}

func (s *ReservationService) noAvailability(restaurantID uint, date string, partySize int, preferredTime string, duration int) error {
	alternatives, err := s.availability.FindAlternativeSlots(restaurantID, date, partySize, preferredTime, duration)
	if err != nil {
		return err
	}

	if len(alternatives) > 0 {
		slots := make([]AlternativeSlot, len(alternatives))
		for i, slot := range alternatives {
			slots[i] = AlternativeSlot{
				StartTime:       slot.StartTime,
				EndTime:         slot.EndTime,
				AvailableTables: len(slot.AvailableTables),
			}
		}
		return utils.ConflictWithDetails("No tables available for the requested time",
			map[string]interface{}{"alternatives": slots})
	}

	return utils.Conflict("No tables available. Would you like to join the waitlist?")
}

func (s *ReservationService) GetReservationByID(id uint) (*models.Reservation, error) {
	reservation, err := s.reservations.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Reservation not found")
		}
		return nil, err
	}
	return reservation, nil
}

// GetReservationsByRestaurant lists every reservation for the restaurant on
// a date, cancelled ones included; the day view needs them all.
func (s *ReservationService) GetReservationsByRestaurant(restaurantID uint, date string) ([]models.Reservation, error) {
	cacheKey := fmt.Sprintf("reservations:%d:%s", restaurantID, date)
	if cached, ok := s.cache.Get(cacheKey); ok {
		var reservations []models.Reservation
		if err := json.Unmarshal([]byte(cached), &reservations); err == nil {
			return reservations, nil
		}
	}

	reservations, err := s.reservations.FindAllForDate(restaurantID, date)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(reservations); err == nil {
		s.cache.Set(cacheKey, string(payload), s.cfg.AvailabilityCacheTTL)
	}
	return reservations, nil
}

// UpdateReservation applies date/time, party-size, status and note changes.
// Terminal reservations reject everything. Window changes must still fit the
// current table; party-size growth beyond the table's capacity triggers a
// reassignment to the best fitting table.
func (s *ReservationService) UpdateReservation(id uint, input UpdateReservationInput) (*models.Reservation, error) {
	reservation, err := s.GetReservationByID(id)
	if err != nil {
		return nil, err
	}

	if reservation.Status.Terminal() {
		return nil, utils.BadRequest(fmt.Sprintf("Cannot modify %s reservation", reservation.Status))
	}

	if input.ReservationDate != nil || input.ReservationTime != nil || input.Duration != nil {
		newDate := reservation.ReservationDate
		if input.ReservationDate != nil {
			newDate = *input.ReservationDate
		}
		newTime := reservation.StartTime
		if input.ReservationTime != nil {
			newTime = *input.ReservationTime
		}
		newDuration := reservation.Duration
		if input.Duration != nil {
			newDuration = *input.Duration
		}

		if !utils.IsValidDate(newDate) {
			return nil, utils.BadRequest("Invalid reservation date")
		}
		if !utils.IsValidTime(newTime) {
			return nil, utils.BadRequest("Invalid reservation time")
		}

		newEndTime := utils.AddMinutesToTime(newTime, newDuration)

		available, err := s.availability.IsTableAvailable(
			reservation.TableID, newDate, newTime, newEndTime, reservation.ID)
		if err != nil {
			return nil, err
		}
		if !available {
			return nil, utils.Conflict("Table is not available for the requested time")
		}

		reservation.ReservationDate = newDate
		reservation.StartTime = newTime
		reservation.EndTime = newEndTime
		reservation.Duration = newDuration
	}

	if input.PartySize != nil {
		table, err := s.tables.FindByID(reservation.TableID)
		if err == nil && *input.PartySize > table.Capacity {
			betterTables, err := s.seating.SuggestOptimalTable(
				reservation.RestaurantID, *input.PartySize,
				reservation.ReservationDate, reservation.StartTime, reservation.Duration)
			if err != nil {
				return nil, err
			}
			if len(betterTables) == 0 {
				return nil, utils.BadRequest("No suitable tables available for the updated party size")
			}
			reservation.TableID = betterTables[0].TableID
		}
		reservation.PartySize = *input.PartySize
	}

	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, utils.BadRequest(fmt.Sprintf("Invalid reservation status %q", *input.Status))
		}
		reservation.Status = *input.Status
	}

	if input.SpecialRequests != nil {
		reservation.SpecialRequests = input.SpecialRequests
	}

	if err := s.reservations.Save(reservation); err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Reservation %s updated", reservation.ConfirmationCode)
	s.invalidateCaches(reservation.RestaurantID)

	restaurantName, tableNumber := s.contextNames(reservation)
	s.notifier.SendReservationModification(reservation, restaurantName, tableNumber)

	return reservation, nil
}

// CancelReservation marks the reservation cancelled and offers the vacated
// table to the waitlist.
func (s *ReservationService) CancelReservation(id uint) (*models.Reservation, error) {
	reservation, err := s.GetReservationByID(id)
	if err != nil {
		return nil, err
	}

	if reservation.Status == models.ReservationStatusCancelled {
		return nil, utils.BadRequest("Reservation is already cancelled")
	}

	reservation.Status = models.ReservationStatusCancelled
	if err := s.reservations.Save(reservation); err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Reservation %s cancelled", reservation.ConfirmationCode)
	s.invalidateCaches(reservation.RestaurantID)

	restaurantName, _ := s.contextNames(reservation)
	s.notifier.SendReservationCancellation(reservation, restaurantName)

	if err := s.waitlist.ReleaseMatch(
		reservation.RestaurantID, reservation.ReservationDate,
		reservation.StartTime, reservation.TableID,
	); err != nil {
		// The cancellation itself succeeded; a waitlist hiccup is not the
		// caller's problem.
		utils.ErrorLogger.Printf("Waitlist release match failed after cancelling %s: %v",
			reservation.ConfirmationCode, err)
	}

	return reservation, nil
}

func (s *ReservationService) invalidateCaches(restaurantID uint) {
	s.cache.DeletePattern(fmt.Sprintf("availability:%d:*", restaurantID))
	s.cache.DeletePattern(fmt.Sprintf("reservations:%d:*", restaurantID))
}

func (s *ReservationService) contextNames(reservation *models.Reservation) (restaurantName, tableNumber string) {
	if restaurant, err := s.restaurants.FindByID(reservation.RestaurantID); err == nil {
		restaurantName = restaurant.Name
	}
	if table, err := s.tables.FindByID(reservation.TableID); err == nil {
		tableNumber = table.TableNumber
	}
	return restaurantName, tableNumber
}

func newConfirmationCode() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
