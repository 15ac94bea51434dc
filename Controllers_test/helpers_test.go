package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/TheCosmicVibe/Tallie-App/cache"
	"github.com/TheCosmicVibe/Tallie-App/config"
	"github.com/TheCosmicVibe/Tallie-App/models"
	"github.com/TheCosmicVibe/Tallie-App/router"
	"github.com/TheCosmicVibe/Tallie-App/utils"
)

func init() {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:ctrl_%s?mode=memory&cache=shared", t.Name())
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
		// Without provider credentials the notifier only logs, which is what
		// these tests want.
		EnableNotifications: false,
	}
}

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	db := setupTestDB(t)
	return router.SetupRouter(db, cache.NewMemory(), testConfig()), db
}

func doJSON(t *testing.T, r *gin.Engine, method, url string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("invalid response body %q: %v", w.Body.String(), err)
	}
	return response
}

// bookableDate is a service date safely inside the advance-booking window.
func bookableDate() string {
	return time.Now().AddDate(0, 0, 5).Format("2006-01-02")
}

func seedRestaurant(t *testing.T, db *gorm.DB, totalTables int) *models.Restaurant {
	t.Helper()
	restaurant := &models.Restaurant{
		Name:        "Lakeside Kitchen",
		OpeningTime: "10:00",
		ClosingTime: "22:00",
		TotalTables: totalTables,
		IsActive:    true,
	}
	if err := db.Create(restaurant).Error; err != nil {
		t.Fatalf("failed to seed restaurant: %v", err)
	}
	return restaurant
}

func seedTable(t *testing.T, db *gorm.DB, restaurantID uint, number string, capacity int) *models.Table {
	t.Helper()
	table := &models.Table{
		RestaurantID: restaurantID,
		TableNumber:  number,
		Capacity:     capacity,
		IsActive:     true,
	}
	if err := db.Create(table).Error; err != nil {
		t.Fatalf("failed to seed table: %v", err)
	}
	return table
}
