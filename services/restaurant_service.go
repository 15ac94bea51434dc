package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/TheCosmicVibe/Tallie-App/cache"
	"github.com/TheCosmicVibe/Tallie-App/config"
	"github.com/TheCosmicVibe/Tallie-App/models"
	"github.com/TheCosmicVibe/Tallie-App/utils"
)

type CreateRestaurantInput struct {
	Name        string  `json:"name" binding:"required"`
	OpeningTime string  `json:"opening_time" binding:"required"`
	ClosingTime string  `json:"closing_time" binding:"required"`
	TotalTables int     `json:"total_tables" binding:"required,min=1"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
}

type CreateTableInput struct {
	TableNumber string  `json:"table_number" binding:"required"`
	Capacity    int     `json:"capacity" binding:"required,min=1"`
	Location    *string `json:"location"`
}

type UpdateTableInput struct {
	TableNumber *string `json:"table_number"`
	Capacity    *int    `json:"capacity"`
	Location    *string `json:"location"`
	IsActive    *bool   `json:"is_active"`
}

// TableStatusView splits a restaurant's active tables into those free and
// those occupied at a given instant.
type TableStatusView struct {
	Restaurant      *models.Restaurant `json:"restaurant"`
	AvailableTables []models.Table     `json:"available_tables"`
	OccupiedTables  []models.Table     `json:"occupied_tables"`
}

type RestaurantService struct {
	restaurants  RestaurantStore
	tables       TableStore
	reservations ReservationStore
	cache        cache.Cache
	cfg          *config.Config
}

func NewRestaurantService(
	restaurants RestaurantStore,
	tables TableStore,
	reservations ReservationStore,
	cacheStore cache.Cache,
	cfg *config.Config,
) *RestaurantService {
	return &RestaurantService{
		restaurants:  restaurants,
		tables:       tables,
		reservations: reservations,
		cache:        cacheStore,
		cfg:          cfg,
	}
}

func (s *RestaurantService) CreateRestaurant(input CreateRestaurantInput) (*models.Restaurant, error) {
	if !utils.IsValidTime(input.OpeningTime) || !utils.IsValidTime(input.ClosingTime) {
		return nil, utils.BadRequest("Opening and closing times must be valid times of day")
	}

	restaurant := &models.Restaurant{
		Name:        input.Name,
		OpeningTime: input.OpeningTime,
		ClosingTime: input.ClosingTime,
		TotalTables: input.TotalTables,
		Address:     input.Address,
		Phone:       input.Phone,
		Email:       input.Email,
		IsActive:    true,
	}
	if err := s.restaurants.Save(restaurant); err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Restaurant created: %s (ID: %d)", restaurant.Name, restaurant.ID)
	s.cache.DeletePattern("restaurant:*")
	s.cache.Delete("restaurants:all")

	return restaurant, nil
}

func (s *RestaurantService) GetRestaurantByID(id uint) (*models.Restaurant, error) {
	cacheKey := fmt.Sprintf("restaurant:%d", id)
	if cached, ok := s.cache.Get(cacheKey); ok {
		var restaurant models.Restaurant
		if err := json.Unmarshal([]byte(cached), &restaurant); err == nil {
			return &restaurant, nil
		}
	}

	restaurant, err := s.restaurants.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Restaurant not found")
		}
		return nil, err
	}

	if payload, err := json.Marshal(restaurant); err == nil {
		s.cache.Set(cacheKey, string(payload), s.cfg.RestaurantCacheTTL)
	}
	return restaurant, nil
}

func (s *RestaurantService) GetAllRestaurants() ([]models.Restaurant, error) {
	cacheKey := "restaurants:all"
	if cached, ok := s.cache.Get(cacheKey); ok {
		var restaurants []models.Restaurant
		if err := json.Unmarshal([]byte(cached), &restaurants); err == nil {
			return restaurants, nil
		}
	}

	restaurants, err := s.restaurants.FindAllActive()
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(restaurants); err == nil {
		s.cache.Set(cacheKey, string(payload), s.cfg.AvailabilityCacheTTL)
	}
	return restaurants, nil
}

// AddTable creates a table under the restaurant, enforcing the per-restaurant
// number uniqueness and the table-count limit.
func (s *RestaurantService) AddTable(restaurantID uint, input CreateTableInput) (*models.Table, error) {
	restaurant, err := s.GetRestaurantByID(restaurantID)
	if err != nil {
		return nil, err
	}

	if _, err := s.tables.FindByNumber(restaurantID, input.TableNumber); err == nil {
		return nil, utils.Conflict(fmt.Sprintf("Table %s already exists in this restaurant", input.TableNumber))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	currentCount, err := s.tables.CountByRestaurant(restaurantID)
	if err != nil {
		return nil, err
	}
	if currentCount >= int64(restaurant.TotalTables) {
		return nil, utils.BadRequest(fmt.Sprintf("Cannot add more tables. Restaurant limit: %d", restaurant.TotalTables))
	}

	table := &models.Table{
		RestaurantID: restaurantID,
		TableNumber:  input.TableNumber,
		Capacity:     input.Capacity,
		Location:     input.Location,
		IsActive:     true,
	}
	if err := s.tables.Save(table); err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Table %s added to restaurant %s", table.TableNumber, restaurant.Name)
	s.invalidateRestaurant(restaurantID)

	return table, nil
}

func (s *RestaurantService) UpdateTable(restaurantID, tableID uint, input UpdateTableInput) (*models.Table, error) {
	table, err := s.findOwnedTable(restaurantID, tableID)
	if err != nil {
		return nil, err
	}

	if input.TableNumber != nil {
		table.TableNumber = *input.TableNumber
	}
	if input.Capacity != nil {
		if *input.Capacity < 1 {
			return nil, utils.BadRequest("Table capacity must be at least 1")
		}
		table.Capacity = *input.Capacity
	}
	if input.Location != nil {
		table.Location = input.Location
	}
	if input.IsActive != nil {
		table.IsActive = *input.IsActive
	}

	if err := s.tables.Save(table); err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Table %s updated", table.TableNumber)
	s.invalidateRestaurant(restaurantID)

	return table, nil
}

func (s *RestaurantService) DeleteTable(restaurantID, tableID uint) error {
	table, err := s.findOwnedTable(restaurantID, tableID)
	if err != nil {
		return err
	}

	if err := s.tables.Delete(table); err != nil {
		return err
	}

	utils.InfoLogger.Printf("Table %s deleted", table.TableNumber)
	s.invalidateRestaurant(restaurantID)

	return nil
}

// GetRestaurantWithAvailableTables reports which active tables are free and
// which are seated at the given date and time-of-day.
func (s *RestaurantService) GetRestaurantWithAvailableTables(restaurantID uint, date, timeString string) (*TableStatusView, error) {
	restaurant, err := s.GetRestaurantByID(restaurantID)
	if err != nil {
		return nil, err
	}

	checkMin, err := utils.TimeToMinutes(timeString)
	if err != nil {
		return nil, utils.BadRequest("Invalid time")
	}

	tables, err := s.tables.FindByRestaurant(restaurantID, true)
	if err != nil {
		return nil, err
	}
	reservations, err := s.reservations.FindForDate(restaurantID, date)
	if err != nil {
		return nil, err
	}

	view := &TableStatusView{
		Restaurant:      restaurant,
		AvailableTables: []models.Table{},
		OccupiedTables:  []models.Table{},
	}

	for _, table := range tables {
		occupied := false
		for _, res := range reservations {
			if res.TableID != table.ID {
				continue
			}
			startMin, err1 := utils.TimeToMinutes(res.StartTime)
			endMin, err2 := utils.TimeToMinutes(res.EndTime)
			if err1 != nil || err2 != nil {
				continue
			}
			if checkMin >= startMin && checkMin < endMin {
				occupied = true
				break
			}
		}
		if occupied {
			view.OccupiedTables = append(view.OccupiedTables, table)
		} else {
			view.AvailableTables = append(view.AvailableTables, table)
		}
	}

	return view, nil
}

func (s *RestaurantService) findOwnedTable(restaurantID, tableID uint) (*models.Table, error) {
	table, err := s.tables.FindByID(tableID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Table not found")
		}
		return nil, err
	}
	if table.RestaurantID != restaurantID {
		return nil, utils.NotFound("Table not found")
	}
	return table, nil
}

func (s *RestaurantService) invalidateRestaurant(restaurantID uint) {
	s.cache.DeletePattern(fmt.Sprintf("restaurant:%d*", restaurantID))
	s.cache.Delete("restaurants:all")
	s.cache.DeletePattern("availability:*")
}
