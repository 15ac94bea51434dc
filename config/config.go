package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Config carries every tunable the services read. Values come from the
// environment with the defaults the product ships with.
type Config struct {
	Port    string
	GinMode string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	RedisHost     string
	RedisPort     int
	RedisPassword string
	RedisDB       int

	AvailabilityCacheTTL time.Duration
	RestaurantCacheTTL   time.Duration

	DefaultReservationDuration int
	SlotIntervalMinutes        int
	PeakHoursStart             string
	PeakHoursEnd               string
	PeakHoursMaxDuration       int
	MaxAdvanceBookingDays      int

	EnableNotifications   bool
	NotificationFromEmail string
	NotificationFromName  string
	NotificationFromPhone string
	SendGridAPIKey        string
	TwilioAccountSID      string
	TwilioAuthToken       string
}

func Load() *Config {
	return &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnvAsInt("DB_PORT", 3306),
		DBUser:     getEnv("DB_USERNAME", "root"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_DATABASE", "tallie_restaurant"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnvAsInt("REDIS_PORT", 6379),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		AvailabilityCacheTTL: time.Duration(getEnvAsInt("CACHE_TTL", 1800)) * time.Second,
		RestaurantCacheTTL:   time.Duration(getEnvAsInt("RESTAURANT_CACHE_TTL", 3600)) * time.Second,

		DefaultReservationDuration: getEnvAsInt("DEFAULT_RESERVATION_DURATION", 120),
		SlotIntervalMinutes:        getEnvAsInt("SLOT_INTERVAL_MINUTES", 30),
		PeakHoursStart:             getEnv("PEAK_HOURS_START", "18:00"),
		PeakHoursEnd:               getEnv("PEAK_HOURS_END", "21:00"),
		PeakHoursMaxDuration:       getEnvAsInt("PEAK_HOURS_MAX_DURATION", 90),
		MaxAdvanceBookingDays:      getEnvAsInt("MAX_ADVANCE_BOOKING_DAYS", 30),

		EnableNotifications:   getEnvAsBool("ENABLE_NOTIFICATIONS", true),
		NotificationFromEmail: getEnv("NOTIFICATION_FROM_EMAIL", "reservations@tallie.com"),
		NotificationFromName:  getEnv("NOTIFICATION_FROM_NAME", "Tallie Reservations"),
		NotificationFromPhone: getEnv("NOTIFICATION_FROM_PHONE", ""),
		SendGridAPIKey:        getEnv("SENDGRID_API_KEY", ""),
		TwilioAccountSID:      getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:       getEnv("TWILIO_AUTH_TOKEN", ""),
	}
}

// InitDB opens the MySQL connection the app runs against. Tests use SQLite
// in-memory instead and never come through here.
func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
	)
	return gorm.Open(mysql.Open(dsn), &gorm.Config{})
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
