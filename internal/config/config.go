package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	SMTP       SMTPConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// AttendanceConfig collects every rule threshold the attendance engine uses.
// Production and tests share the same named values instead of scattering
// literals around call sites.
type AttendanceConfig struct {
	// Default shift applied when a user has no configured shift.
	DefaultShiftStart   Clock // 09:30
	DefaultShiftEnd     Clock // 18:30
	DefaultGraceMinutes int   // 15

	// Geofencing.
	DefaultGeoRadiusMeters float64 // 100
	// Legacy rows carry 50.0 in the user-level radius column as an
	// "unset" marker; a user radius equal to this value still lets the
	// branch radius win.
	LegacyUserRadiusSentinel float64 // 50.0

	// Hourly IP tracker dedup window.
	IPDedupWindow time.Duration // 120m

	// Missed-checkout escalation.
	EscalationInterval time.Duration // 5m tick
	ReminderGrace      time.Duration // shiftEnd + 5m before the reminder
	MissedCutoff       time.Duration // shiftEnd + 30m before the final marker
	OvernightTolerance time.Duration // 60m before shift start, see shift-end resolution

	// History reconstruction.
	HistoryDays     int           // 60
	CheckoutWindow  time.Duration // 10h open-session checkout allowance
	RetentionDays   int           // 0 disables the retention purge job
	RetentionPeriod time.Duration // tick of the retention job
}

// Clock is a time-of-day without a date, parsed from "15:04".
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses "HH:MM" into a Clock.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return Clock{}, fmt.Errorf("invalid clock value %q: %w", s, err)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// On materializes the clock on the calendar date of d, in d's location.
func (c Clock) On(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour, c.Minute, 0, 0, d.Location())
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// DefaultAttendanceConfig returns the engine defaults. Tests build on this
// so rule changes only happen in one place.
func DefaultAttendanceConfig() AttendanceConfig {
	return AttendanceConfig{
		DefaultShiftStart:        Clock{Hour: 9, Minute: 30},
		DefaultShiftEnd:          Clock{Hour: 18, Minute: 30},
		DefaultGraceMinutes:      15,
		DefaultGeoRadiusMeters:   100,
		LegacyUserRadiusSentinel: 50.0,
		IPDedupWindow:            120 * time.Minute,
		EscalationInterval:       5 * time.Minute,
		ReminderGrace:            5 * time.Minute,
		MissedCutoff:             30 * time.Minute,
		OvernightTolerance:       60 * time.Minute,
		HistoryDays:              60,
		CheckoutWindow:           10 * time.Hour,
		RetentionDays:            0,
		RetentionPeriod:          24 * time.Hour,
	}
}

func Load() (*Config, error) {
	// .env is optional outside development.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "megamart-hr"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// SMTP configuration
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     smtpPort,
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", "no-reply@megamart.local"),
		FromName: getEnv("SMTP_FROM_NAME", "HR Portal"),
	}

	// Attendance engine configuration
	att := DefaultAttendanceConfig()
	if s := os.Getenv("ATTENDANCE_DEFAULT_SHIFT_START"); s != "" {
		if att.DefaultShiftStart, err = ParseClock(s); err != nil {
			return nil, err
		}
	}
	if s := os.Getenv("ATTENDANCE_DEFAULT_SHIFT_END"); s != "" {
		if att.DefaultShiftEnd, err = ParseClock(s); err != nil {
			return nil, err
		}
	}
	if s := os.Getenv("ATTENDANCE_RETENTION_DAYS"); s != "" {
		if att.RetentionDays, err = strconv.Atoi(s); err != nil {
			return nil, fmt.Errorf("invalid ATTENDANCE_RETENTION_DAYS: %w", err)
		}
	}
	config.Attendance = att

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Attendance.RetentionDays < 0 {
		return fmt.Errorf("ATTENDANCE_RETENTION_DAYS must not be negative")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
