// Package repository holds the GORM implementations of the store interfaces
// the services consume.
package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/TheCosmicVibe/Tallie-App/models"
	"github.com/TheCosmicVibe/Tallie-App/utils"
)

// Stores bundles the four entity stores over one database handle.
type Stores struct {
	Restaurants  *RestaurantRepo
	Tables       *TableRepo
	Reservations *ReservationRepo
	Waitlists    *WaitlistRepo
}

func New(db *gorm.DB) *Stores {
	return &Stores{
		Restaurants:  &RestaurantRepo{DB: db},
		Tables:       &TableRepo{DB: db},
		Reservations: &ReservationRepo{DB: db},
		Waitlists:    &WaitlistRepo{DB: db},
	}
}

type RestaurantRepo struct {
	DB *gorm.DB
}

func (r *RestaurantRepo) FindByID(id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.DB.Preload("Tables").First(&restaurant, id).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *RestaurantRepo) FindAllActive() ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := r.DB.Preload("Tables").
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&restaurants).Error
	return restaurants, err
}

func (r *RestaurantRepo) Save(restaurant *models.Restaurant) error {
	return r.DB.Save(restaurant).Error
}

type TableRepo struct {
	DB *gorm.DB
}

func (r *TableRepo) FindByID(id uint) (*models.Table, error) {
	var table models.Table
	if err := r.DB.First(&table, id).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *TableRepo) FindByRestaurant(restaurantID uint, activeOnly bool) ([]models.Table, error) {
	query := r.DB.Where("restaurant_id = ?", restaurantID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var tables []models.Table
	err := query.Order("capacity ASC, id ASC").Find(&tables).Error
	return tables, err
}

func (r *TableRepo) FindByNumber(restaurantID uint, tableNumber string) (*models.Table, error) {
	var table models.Table
	err := r.DB.Where("restaurant_id = ? AND table_number = ?", restaurantID, tableNumber).
		First(&table).Error
	if err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *TableRepo) CountByRestaurant(restaurantID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&models.Table{}).
		Where("restaurant_id = ?", restaurantID).
		Count(&count).Error
	return count, err
}

func (r *TableRepo) Save(table *models.Table) error {
	return r.DB.Save(table).Error
}

func (r *TableRepo) Delete(table *models.Table) error {
	return r.DB.Delete(table).Error
}

type ReservationRepo struct {
	DB *gorm.DB
}

func (r *ReservationRepo) FindByID(id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := r.DB.First(&reservation, id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *ReservationRepo) FindForDate(restaurantID uint, date string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.DB.Where("restaurant_id = ? AND reservation_date = ? AND status NOT IN ?",
		restaurantID, date, []models.ReservationStatus{
			models.ReservationStatusCancelled,
			models.ReservationStatusNoShow,
		}).
		Order("start_time ASC").
		Find(&reservations).Error
	return reservations, err
}

func (r *ReservationRepo) FindForTableDate(tableID uint, date string, excludeID uint) ([]models.Reservation, error) {
	query := r.DB.Where("table_id = ? AND reservation_date = ? AND status NOT IN ?",
		tableID, date, []models.ReservationStatus{
			models.ReservationStatusCancelled,
			models.ReservationStatusNoShow,
		})
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	var reservations []models.Reservation
	err := query.Find(&reservations).Error
	return reservations, err
}

func (r *ReservationRepo) FindConfirmedForDate(restaurantID uint, date string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.DB.Where("restaurant_id = ? AND reservation_date = ? AND status = ?",
		restaurantID, date, models.ReservationStatusConfirmed).
		Order("start_time ASC").
		Find(&reservations).Error
	return reservations, err
}

func (r *ReservationRepo) FindAllForDate(restaurantID uint, date string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.DB.Where("restaurant_id = ? AND reservation_date = ?", restaurantID, date).
		Order("start_time ASC").
		Find(&reservations).Error
	return reservations, err
}

// CreateIfTableFree re-validates the overlap check inside a transaction. The
// scoring pass upstream is advisory only; this is the authoritative guard
// against double-booking a table under concurrent requests. On MySQL the
// existing rows are read under a row lock so two racing inserts serialize.
func (r *ReservationRepo) CreateIfTableFree(reservation *models.Reservation) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		query := tx.Where("table_id = ? AND reservation_date = ? AND status NOT IN ?",
			reservation.TableID, reservation.ReservationDate,
			[]models.ReservationStatus{
				models.ReservationStatusCancelled,
				models.ReservationStatusNoShow,
			})
		// SQLite (tests) has no FOR UPDATE; its writes serialize anyway.
		if tx.Dialector.Name() == "mysql" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var existing []models.Reservation
		if err := query.Find(&existing).Error; err != nil {
			return err
		}
		for _, other := range existing {
			if utils.TimesOverlap(reservation.StartTime, reservation.EndTime, other.StartTime, other.EndTime) {
				return utils.Conflict("Table is no longer available for the requested time")
			}
		}

		return tx.Create(reservation).Error
	})
}

func (r *ReservationRepo) Save(reservation *models.Reservation) error {
	return r.DB.Save(reservation).Error
}

type WaitlistRepo struct {
	DB *gorm.DB
}

func (r *WaitlistRepo) FindByID(id uint) (*models.Waitlist, error) {
	var entry models.Waitlist
	if err := r.DB.First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *WaitlistRepo) FindByRestaurantDate(restaurantID uint, date string) ([]models.Waitlist, error) {
	var entries []models.Waitlist
	err := r.DB.Where("restaurant_id = ? AND waitlist_date = ?", restaurantID, date).
		Order("position ASC").
		Find(&entries).Error
	return entries, err
}

func (r *WaitlistRepo) FindWaiting(restaurantID uint, date string) ([]models.Waitlist, error) {
	var entries []models.Waitlist
	err := r.DB.Where("restaurant_id = ? AND waitlist_date = ? AND status = ?",
		restaurantID, date, models.WaitlistStatusWaiting).
		Order("position ASC").
		Find(&entries).Error
	return entries, err
}

func (r *WaitlistRepo) CountWaiting(restaurantID uint, date string) (int64, error) {
	var count int64
	err := r.DB.Model(&models.Waitlist{}).
		Where("restaurant_id = ? AND waitlist_date = ? AND status = ?",
			restaurantID, date, models.WaitlistStatusWaiting).
		Count(&count).Error
	return count, err
}

func (r *WaitlistRepo) Save(entry *models.Waitlist) error {
	return r.DB.Save(entry).Error
}

func (r *WaitlistRepo) SaveAll(entries []models.Waitlist) error {
	if len(entries) == 0 {
		return nil
	}
	return r.DB.Save(&entries).Error
}

func (r *WaitlistRepo) Delete(entry *models.Waitlist) error {
	return r.DB.Delete(entry).Error
}
