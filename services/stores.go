package services

import "github.com/TheCosmicVibe/Tallie-App/models"

// The services consume persistence through these narrow interfaces so tests
// can run them against an in-memory database. repository.New returns the
// GORM-backed set.

type RestaurantStore interface {
	// FindByID loads a restaurant with its tables, or gorm.ErrRecordNotFound.
	FindByID(id uint) (*models.Restaurant, error)
	FindAllActive() ([]models.Restaurant, error)
	Save(restaurant *models.Restaurant) error
}

type TableStore interface {
	FindByID(id uint) (*models.Table, error)
	// FindByRestaurant returns tables ordered by ascending capacity so the
	// scoring pass encounters tighter fits first.
	FindByRestaurant(restaurantID uint, activeOnly bool) ([]models.Table, error)
	FindByNumber(restaurantID uint, tableNumber string) (*models.Table, error)
	CountByRestaurant(restaurantID uint) (int64, error)
	Save(table *models.Table) error
	Delete(table *models.Table) error
}

type ReservationStore interface {
	FindByID(id uint) (*models.Reservation, error)
	// FindForDate returns the reservations that still hold tables for the
	// restaurant on the given service date (cancelled and no-show excluded).
	FindForDate(restaurantID uint, date string) ([]models.Reservation, error)
	// FindForTableDate is FindForDate narrowed to one table, optionally
	// excluding a reservation id (0 = exclude nothing).
	FindForTableDate(tableID uint, date string, excludeID uint) ([]models.Reservation, error)
	FindConfirmedForDate(restaurantID uint, date string) ([]models.Reservation, error)
	FindAllForDate(restaurantID uint, date string) ([]models.Reservation, error)
	// CreateIfTableFree inserts the reservation only if no counting
	// reservation overlaps its window on the same table and date, checked
	// atomically at the storage boundary. Returns a Conflict AppError when
	// the slot was taken by a concurrent writer.
	CreateIfTableFree(reservation *models.Reservation) error
	Save(reservation *models.Reservation) error
}

type WaitlistStore interface {
	FindByID(id uint) (*models.Waitlist, error)
	// FindByRestaurantDate returns every entry for the list ordered by
	// position ascending, regardless of status.
	FindByRestaurantDate(restaurantID uint, date string) ([]models.Waitlist, error)
	// FindWaiting returns only WAITING entries, position ascending.
	FindWaiting(restaurantID uint, date string) ([]models.Waitlist, error)
	CountWaiting(restaurantID uint, date string) (int64, error)
	Save(entry *models.Waitlist) error
	SaveAll(entries []models.Waitlist) error
	Delete(entry *models.Waitlist) error
}
