package config

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/nao1215/effbatt/internal/calendar"
	"github.com/nao1215/effbatt/internal/validation"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "effbatt"

	// DefaultWorkdayNotification is the reminder time Monday to Friday.
	DefaultWorkdayNotification = "15:15"

	// DefaultHolidayNotification is the reminder time on weekends and holidays.
	DefaultHolidayNotification = "12:50"

	// DefaultExpiryHorizonDays is how far ahead instrument expiries are announced.
	DefaultExpiryHorizonDays = validation.DefaultExpiryHorizonDays

	// DefaultExportConcurrency is the number of reports written in parallel by history share.
	DefaultExportConcurrency = 4
)

// Config holds every option of effbatt.
// It is built once by the command layer and passed down explicitly.
type Config struct {
	// NotificationsEnabled turns the daily instrument expiry reminder on.
	NotificationsEnabled bool

	// WorkdayNotification is the reminder time on workdays (HH:MM).
	WorkdayNotification string

	// HolidayNotification is the reminder time on weekends and holidays (HH:MM).
	HolidayNotification string

	// ExpiryHorizonDays is how many days before expiry an instrument is announced.
	ExpiryHorizonDays int

	// DBDir is the directory of the SQLite database.
	// Defaults to the XDG data directory (~/.local/share/effbatt on Linux).
	DBDir string

	// ExportConcurrency bounds the parallel report writes of history share.
	ExportConcurrency int

	// Verbose enables debug logging.
	Verbose bool

	// JSONOutput prints command results as JSON.
	JSONOutput bool

	// MarkdownOutput prints command results as Markdown.
	MarkdownOutput bool

	// ConfigFilePath is the explicit configuration file given with --config.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		NotificationsEnabled: true,
		WorkdayNotification:  DefaultWorkdayNotification,
		HolidayNotification:  DefaultHolidayNotification,
		ExpiryHorizonDays:    DefaultExpiryHorizonDays,
		DBDir:                XDGDataDir(),
		ExportConcurrency:    DefaultExportConcurrency,
	}
}

// XDGDataDir returns the XDG data directory for effbatt.
// On Linux: ~/.local/share/effbatt
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for effbatt.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Apply overrides the receiver with every value set in the file.
func (c *Config) Apply(f *File) {
	if f == nil {
		return
	}
	if f.Notifications.Enabled != nil {
		c.NotificationsEnabled = *f.Notifications.Enabled
	}
	if f.Notifications.Workday != "" {
		c.WorkdayNotification = f.Notifications.Workday
	}
	if f.Notifications.Holiday != "" {
		c.HolidayNotification = f.Notifications.Holiday
	}
	if f.Expiry.HorizonDays != nil {
		c.ExpiryHorizonDays = *f.Expiry.HorizonDays
	}
	if f.DBDir != "" {
		c.DBDir = f.DBDir
	}
	if f.Export.Concurrency != 0 {
		c.ExportConcurrency = f.Export.Concurrency
	}
}

// Schedule returns the reminder schedule described by the configuration.
func (c *Config) Schedule() (calendar.Schedule, error) {
	workday, err := calendar.ParseTimeOfDay(c.WorkdayNotification)
	if err != nil {
		return calendar.Schedule{}, fmt.Errorf("%w: workday %q", ErrInvalidNotificationTime, c.WorkdayNotification)
	}
	holiday, err := calendar.ParseTimeOfDay(c.HolidayNotification)
	if err != nil {
		return calendar.Schedule{}, fmt.Errorf("%w: holiday %q", ErrInvalidNotificationTime, c.HolidayNotification)
	}
	return calendar.Schedule{Workday: workday, Holiday: holiday}, nil
}

// Validate checks if the configuration is valid and returns the first problem found.
func (c *Config) Validate() error {
	if _, err := c.Schedule(); err != nil {
		return err
	}
	if c.ExpiryHorizonDays < 0 {
		return ErrInvalidHorizon
	}
	if c.ExportConcurrency <= 0 {
		return ErrInvalidExportConcurrency
	}
	if c.JSONOutput && c.MarkdownOutput {
		return ErrConflictingOutputFormats
	}
	return nil
}
