package services_test

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/TheCosmicVibe/Tallie-App/config"
	"github.com/TheCosmicVibe/Tallie-App/models"
	"github.com/TheCosmicVibe/Tallie-App/repository"
	"github.com/TheCosmicVibe/Tallie-App/utils"
)

func init() {
	utils.InitLogger()
}

// setupTestDB opens a private in-memory SQLite database for one test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Restaurant{},
		&models.Table{},
		&models.Reservation{},
		&models.Waitlist{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupStores(t *testing.T) *repository.Stores {
	return repository.New(setupTestDB(t))
}

func testConfig() *config.Config {
	return &config.Config{
		AvailabilityCacheTTL:       30 * time.Minute,
		RestaurantCacheTTL:         time.Hour,
		DefaultReservationDuration: 120,
		SlotIntervalMinutes:        30,
		PeakHoursStart:             "18:00",
		PeakHoursEnd:               "21:00",
		PeakHoursMaxDuration:       90,
		MaxAdvanceBookingDays:      30,
		EnableNotifications:        true,
	}
}

// fixedClock pins "now" so future-date and advance-booking checks are
// deterministic.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// testNow is a Sunday lunchtime; reservation dates in the tests are relative
// to it.
var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)

// fakeNotifier records what was sent instead of delivering anything.
type fakeNotifier struct {
	Confirmations  []string
	Modifications  []string
	Cancellations  []string
	WaitlistJoins  []string
	TableAvailable []string
}

func (n *fakeNotifier) SendReservationConfirmation(r *models.Reservation, restaurantName, tableNumber string) {
	n.Confirmations = append(n.Confirmations, r.CustomerName)
}

func (n *fakeNotifier) SendReservationModification(r *models.Reservation, restaurantName, tableNumber string) {
	n.Modifications = append(n.Modifications, r.CustomerName)
}

func (n *fakeNotifier) SendReservationCancellation(r *models.Reservation, restaurantName string) {
	n.Cancellations = append(n.Cancellations, r.CustomerName)
}

func (n *fakeNotifier) SendWaitlistJoined(e *models.Waitlist, restaurantName string) {
	n.WaitlistJoins = append(n.WaitlistJoins, e.CustomerName)
}

func (n *fakeNotifier) SendWaitlistTableAvailable(e *models.Waitlist, restaurantName, availableTime, tableNumber string) {
	n.TableAvailable = append(n.TableAvailable, e.CustomerName)
}

// assertAppErrorKind fails unless err is an AppError of the given kind.
func assertAppErrorKind(t *testing.T, err error, kind utils.ErrorKind) *utils.AppError {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	appErr, ok := utils.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Kind != kind {
		t.Fatalf("expected error kind %d, got %d (%s)", kind, appErr.Kind, appErr.Message)
	}
	return appErr
}

func absDistance(t *testing.T, timeA, timeB string) int {
	t.Helper()
	d, err := utils.AbsMinutesBetween(timeA, timeB)
	if err != nil {
		t.Fatalf("bad time in test: %v", err)
	}
	return d
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func seedRestaurant(t *testing.T, stores *repository.Stores, opening, closing string, totalTables int) *models.Restaurant {
	t.Helper()
	restaurant := &models.Restaurant{
		Name:        "The Corner Bistro",
		OpeningTime: opening,
		ClosingTime: closing,
		TotalTables: totalTables,
		IsActive:    true,
	}
	if err := stores.Restaurants.Save(restaurant); err != nil {
		t.Fatalf("failed to seed restaurant: %v", err)
	}
	return restaurant
}

func seedTable(t *testing.T, stores *repository.Stores, restaurantID uint, number string, capacity int, location *string) *models.Table {
	t.Helper()
	table := &models.Table{
		RestaurantID: restaurantID,
		TableNumber:  number,
		Capacity:     capacity,
		Location:     location,
		IsActive:     true,
	}
	if err := stores.Tables.Save(table); err != nil {
		t.Fatalf("failed to seed table: %v", err)
	}
	return table
}

func seedReservation(t *testing.T, stores *repository.Stores, restaurantID, tableID uint, date, start, end string, status models.ReservationStatus) *models.Reservation {
	t.Helper()
	startMin, _ := utils.TimeToMinutes(start)
	endMin, _ := utils.TimeToMinutes(end)
	reservation := &models.Reservation{
		RestaurantID:     restaurantID,
		TableID:          tableID,
		CustomerName:     "Seed Customer",
		CustomerPhone:    "+15550000000",
		PartySize:        2,
		ReservationDate:  date,
		StartTime:        start,
		EndTime:          end,
		Duration:         endMin - startMin,
		Status:           status,
		ConfirmationCode: "SEEDSEED",
	}
	if err := stores.Reservations.Save(reservation); err != nil {
		t.Fatalf("failed to seed reservation: %v", err)
	}
	return reservation
}
