package event

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the load-time event configuration.
type Config struct {
	// StartDate is the first day of the event window (YYYY-MM-DD).
	StartDate string

	// TotalDays is the number of days the window covers.
	TotalDays int

	// Timezone is an optional IANA timezone name. Empty means the local
	// timezone of the process.
	Timezone string
}

// DefaultConfig returns the default configuration, reading from environment
// variables.
func DefaultConfig() Config {
	return Config{
		StartDate: getEnv("CALENDAR_START_DATE", "2026-01-15"),
		TotalDays: getEnvInt("CALENDAR_TOTAL_DAYS", 175),
		Timezone:  getEnv("CALENDAR_TZ", ""),
	}
}

// Location resolves the configured timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Window parses the configuration into an event window.
func (c Config) Window() (Window, error) {
	loc, err := c.Location()
	if err != nil {
		return Window{}, err
	}
	start, err := time.ParseInLocation("2006-01-02", c.StartDate, loc)
	if err != nil {
		return Window{}, fmt.Errorf("parsing start date %q: %w", c.StartDate, err)
	}
	if c.TotalDays < 1 {
		return Window{}, fmt.Errorf("total days must be positive, got %d", c.TotalDays)
	}
	return NewWindow(start, c.TotalDays), nil
}

// getEnv returns an environment variable value or a default if not set.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default if not
// set or not a number.
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
