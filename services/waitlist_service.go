package services

import (
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/TheCosmicVibe/Tallie-App/models"
	"github.com/TheCosmicVibe/Tallie-App/utils"
)

type CreateWaitlistInput struct {
	CustomerName  string  `json:"customer_name" binding:"required"`
	CustomerPhone string  `json:"customer_phone" binding:"required"`
	CustomerEmail *string `json:"customer_email"`
	PartySize     int     `json:"party_size" binding:"required,min=1"`
	PreferredTime *string `json:"preferred_time"`
	Notes         *string `json:"notes"`
}

// WaitlistService keeps a dense FIFO position order per (restaurant, date).
// All mutations of one list run under its keyed mutex so concurrent
// read-modify-write of positions cannot interleave.
type WaitlistService struct {
	restaurants RestaurantStore
	tables      TableStore
	waitlists   WaitlistStore
	notifier    Notifier
	clock       utils.Clock

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewWaitlistService(
	restaurants RestaurantStore,
	tables TableStore,
	waitlists WaitlistStore,
	notifier Notifier,
	clock utils.Clock,
) *WaitlistService {
	return &WaitlistService{
		restaurants: restaurants,
		tables:      tables,
		waitlists:   waitlists,
		notifier:    notifier,
		clock:       clock,
		locks:       make(map[string]*sync.Mutex),
	}
}

func (s *WaitlistService) listLock(restaurantID uint, date string) *sync.Mutex {
	key := fmt.Sprintf("%d:%s", restaurantID, date)
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}

// AddToWaitlist appends the party to today's list for the restaurant; its
// position is the current waiting count plus one.
func (s *WaitlistService) AddToWaitlist(restaurantID uint, input CreateWaitlistInput) (*models.Waitlist, error) {
	restaurant, err := s.restaurants.FindByID(restaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Restaurant not found")
		}
		return nil, err
	}

	waitlistDate := s.clock.Now().Format("2006-01-02")

	lock := s.listLock(restaurantID, waitlistDate)
	lock.Lock()
	defer lock.Unlock()

	count, err := s.waitlists.CountWaiting(restaurantID, waitlistDate)
	if err != nil {
		return nil, err
	}

	entry := &models.Waitlist{
		RestaurantID:  restaurantID,
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		CustomerEmail: input.CustomerEmail,
		PartySize:     input.PartySize,
		WaitlistDate:  waitlistDate,
		PreferredTime: input.PreferredTime,
		Status:        models.WaitlistStatusWaiting,
		Notes:         input.Notes,
		Position:      int(count) + 1,
	}

	if err := s.waitlists.Save(entry); err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("%s added to waitlist at position %d", entry.CustomerName, entry.Position)
	s.notifier.SendWaitlistJoined(entry, restaurant.Name)

	return entry, nil
}

// GetWaitlist lists every entry for the restaurant and date, position
// ascending. An empty date means today.
func (s *WaitlistService) GetWaitlist(restaurantID uint, date string) ([]models.Waitlist, error) {
	if date == "" {
		date = s.clock.Now().Format("2006-01-02")
	}
	return s.waitlists.FindByRestaurantDate(restaurantID, date)
}

// UpdateStatus moves an entry to a new status. Transitions that vacate the
// waiting line (seated, cancelled) reflow the remaining positions back to a
// gapless 1..N.
func (s *WaitlistService) UpdateStatus(id uint, status models.WaitlistStatus) (*models.Waitlist, error) {
	if !status.Valid() {
		return nil, utils.BadRequest(fmt.Sprintf("Invalid waitlist status %q", status))
	}

	entry, err := s.waitlists.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Waitlist entry not found")
		}
		return nil, err
	}

	lock := s.listLock(entry.RestaurantID, entry.WaitlistDate)
	lock.Lock()
	defer lock.Unlock()

	entry.Status = status
	if err := s.waitlists.Save(entry); err != nil {
		return nil, err
	}

	if status.LeavesQueue() {
		if err := s.reflow(entry.RestaurantID, entry.WaitlistDate); err != nil {
			return nil, err
		}
	}

	return entry, nil
}

// Remove deletes the entry and reflows what remains.
func (s *WaitlistService) Remove(id uint) error {
	entry, err := s.waitlists.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound("Waitlist entry not found")
		}
		return err
	}

	lock := s.listLock(entry.RestaurantID, entry.WaitlistDate)
	lock.Lock()
	defer lock.Unlock()

	if err := s.waitlists.Delete(entry); err != nil {
		return err
	}

	return s.reflow(entry.RestaurantID, entry.WaitlistDate)
}

// reflow rewrites the WAITING positions to 1..N in current-position order.
// Running it twice in a row yields the same assignment. Callers hold the
// list lock.
func (s *WaitlistService) reflow(restaurantID uint, date string) error {
	waiting, err := s.waitlists.FindWaiting(restaurantID, date)
	if err != nil {
		return err
	}

	var changed []models.Waitlist
	for i := range waiting {
		if waiting[i].Position != i+1 {
			waiting[i].Position = i + 1
			changed = append(changed, waiting[i])
		}
	}
	return s.waitlists.SaveAll(changed)
}

// ReleaseMatch offers a just-vacated table to the first WAITING entry whose
// party fits its capacity. Only one entry is matched per release; it becomes
// NOTIFIED with a timestamp and the rest of the list is untouched.
func (s *WaitlistService) ReleaseMatch(restaurantID uint, date, availableTime string, tableID uint) error {
	lock := s.listLock(restaurantID, date)
	lock.Lock()
	defer lock.Unlock()

	waiting, err := s.waitlists.FindWaiting(restaurantID, date)
	if err != nil {
		return err
	}
	if len(waiting) == 0 {
		return nil
	}

	table, err := s.tables.FindByID(tableID)
	if err != nil {
		return err
	}

	restaurantName := ""
	if restaurant, err := s.restaurants.FindByID(restaurantID); err == nil {
		restaurantName = restaurant.Name
	}

	for i := range waiting {
		entry := &waiting[i]
		if entry.PartySize > table.Capacity {
			continue
		}

		entry.Status = models.WaitlistStatusNotified
		now := s.clock.Now()
		entry.NotifiedAt = &now
		if err := s.waitlists.Save(entry); err != nil {
			return err
		}

		s.notifier.SendWaitlistTableAvailable(entry, restaurantName, availableTime, table.TableNumber)
		utils.InfoLogger.Printf("Waitlist notification sent to %s", entry.CustomerName)
		break
	}

	return nil
}
