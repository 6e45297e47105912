package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Email    EmailConfig
	Booking  BookingConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host           string
	Port           string
	Name           string
	User           string
	Password       string
	MaxConns       int32
	MigrationsPath string
}

type RedisConfig struct {
	Addr string
}

type SessionConfig struct {
	ExpiryHours int
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// BookingConfig holds the scheduling policy knobs.
type BookingConfig struct {
	MinNoticeHours        int
	MaxAdvanceDays        int
	BusinessHoursStart    int
	BusinessHoursEnd      int
	SlotIntervalMinutes   int
	LessonDurationMinutes int
	Timezone              string
	PaymentRequired       bool
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("MIGRATIONS_PATH", "migrations")
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("MIN_BOOKING_NOTICE_HOURS", 24)
	viper.SetDefault("MAX_ADVANCE_BOOKING_DAYS", 30)
	viper.SetDefault("BUSINESS_HOURS_START", 9)
	viper.SetDefault("BUSINESS_HOURS_END", 21)
	viper.SetDefault("SLOT_INTERVAL_MINUTES", 30)
	viper.SetDefault("LESSON_DURATION_MINUTES", 30)
	viper.SetDefault("TIMEZONE", "UTC")
	viper.SetDefault("PAYMENT_REQUIRED", false)

	if err := viper.ReadInConfig(); err != nil {
		// .env is optional when everything comes from the environment
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:           viper.GetString("DB_HOST"),
			Port:           viper.GetString("DB_PORT"),
			Name:           viper.GetString("DB_NAME"),
			User:           viper.GetString("DB_USER"),
			Password:       viper.GetString("DB_PASS"),
			MaxConns:       viper.GetInt32("DB_MAX_CONNS"),
			MigrationsPath: viper.GetString("MIGRATIONS_PATH"),
		},
		Redis: RedisConfig{
			Addr: viper.GetString("REDIS_ADDR"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Email: EmailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
		},
		Booking: BookingConfig{
			MinNoticeHours:        viper.GetInt("MIN_BOOKING_NOTICE_HOURS"),
			MaxAdvanceDays:        viper.GetInt("MAX_ADVANCE_BOOKING_DAYS"),
			BusinessHoursStart:    viper.GetInt("BUSINESS_HOURS_START"),
			BusinessHoursEnd:      viper.GetInt("BUSINESS_HOURS_END"),
			SlotIntervalMinutes:   viper.GetInt("SLOT_INTERVAL_MINUTES"),
			LessonDurationMinutes: viper.GetInt("LESSON_DURATION_MINUTES"),
			Timezone:              viper.GetString("TIMEZONE"),
			PaymentRequired:       viper.GetBool("PAYMENT_REQUIRED"),
		},
	}

	return config, nil
}
