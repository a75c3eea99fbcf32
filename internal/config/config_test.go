package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nao1215/effbatt/internal/calendar"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("notifications enabled at 15:15 and 12:50", func(t *testing.T) {
		t.Parallel()
		if !cfg.NotificationsEnabled {
			t.Error("expected notifications to be enabled")
		}
		if cfg.WorkdayNotification != "15:15" || cfg.HolidayNotification != "12:50" {
			t.Errorf("expected 15:15/12:50, got %s/%s", cfg.WorkdayNotification, cfg.HolidayNotification)
		}
	})

	t.Run("default horizon is 20 days", func(t *testing.T) {
		t.Parallel()
		if cfg.ExpiryHorizonDays != 20 {
			t.Errorf("expected ExpiryHorizonDays to be 20, got %d", cfg.ExpiryHorizonDays)
		}
	})

	t.Run("default DBDir is the XDG data dir", func(t *testing.T) {
		t.Parallel()
		if cfg.DBDir != XDGDataDir() {
			t.Errorf("expected DBDir %q, got %q", XDGDataDir(), cfg.DBDir)
		}
	})

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})
}

// TestConfigValidate tests the Validate method with various configurations.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{name: "bad workday time", modify: func(c *Config) { c.WorkdayNotification = "25:00" }, wantErr: ErrInvalidNotificationTime},
		{name: "bad holiday time", modify: func(c *Config) { c.HolidayNotification = "noon" }, wantErr: ErrInvalidNotificationTime},
		{name: "negative horizon", modify: func(c *Config) { c.ExpiryHorizonDays = -1 }, wantErr: ErrInvalidHorizon},
		{name: "zero horizon is valid", modify: func(c *Config) { c.ExpiryHorizonDays = 0 }},
		{name: "zero concurrency", modify: func(c *Config) { c.ExportConcurrency = 0 }, wantErr: ErrInvalidExportConcurrency},
		{name: "json and markdown", modify: func(c *Config) { c.JSONOutput, c.MarkdownOutput = true, true }, wantErr: ErrConflictingOutputFormats},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfigSchedule(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	cfg.WorkdayNotification = "16:00"

	s, err := cfg.Schedule()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := calendar.Schedule{
		Workday: calendar.TimeOfDay{Hour: 16},
		Holiday: calendar.TimeOfDay{Hour: 12, Minute: 50},
	}
	if s != want {
		t.Errorf("expected %+v, got %+v", want, s)
	}
}

func TestConfigApply(t *testing.T) {
	t.Parallel()

	t.Run("nil file keeps defaults", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.Apply(nil)
		if cfg.ExpiryHorizonDays != DefaultExpiryHorizonDays {
			t.Errorf("expected default horizon, got %d", cfg.ExpiryHorizonDays)
		}
	})

	t.Run("explicit zero and false override", func(t *testing.T) {
		t.Parallel()

		disabled := false
		zero := 0
		cfg := NewConfig()
		cfg.Apply(&File{
			Notifications: NotificationsFile{Enabled: &disabled, Holiday: "11:00"},
			Expiry:        ExpiryFile{HorizonDays: &zero},
			Export:        ExportFile{Concurrency: 2},
			DBDir:         "/tmp/effbatt",
		})
		if cfg.NotificationsEnabled {
			t.Error("expected notifications to be disabled")
		}
		if cfg.HolidayNotification != "11:00" || cfg.WorkdayNotification != DefaultWorkdayNotification {
			t.Errorf("unexpected times %s/%s", cfg.WorkdayNotification, cfg.HolidayNotification)
		}
		if cfg.ExpiryHorizonDays != 0 {
			t.Errorf("expected horizon 0, got %d", cfg.ExpiryHorizonDays)
		}
		if cfg.ExportConcurrency != 2 || cfg.DBDir != "/tmp/effbatt" {
			t.Errorf("unexpected config %+v", cfg)
		}
	})
}

// TestLoadConfigFile tests the LoadConfigFile function.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfigFile("/nonexistent/path/.effbatt")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if cfg != nil {
			t.Error("expected nil config when file not found")
		}
	})

	t.Run("loads valid YAML config", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".effbatt")
		content := `notifications:
  enabled: false
  workday: "14:30"
expiry:
  horizonDays: 30
export:
  concurrency: 8
dbDir: /var/lib/effbatt
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		f, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.Notifications.Enabled == nil || *f.Notifications.Enabled {
			t.Error("expected notifications.enabled to be false")
		}
		if f.Notifications.Workday != "14:30" || f.Notifications.Holiday != "" {
			t.Errorf("unexpected notifications %+v", f.Notifications)
		}
		if f.Expiry.HorizonDays == nil || *f.Expiry.HorizonDays != 30 {
			t.Errorf("expected horizonDays 30, got %v", f.Expiry.HorizonDays)
		}
		if f.Export.Concurrency != 8 || f.DBDir != "/var/lib/effbatt" {
			t.Errorf("unexpected file %+v", f)
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".effbatt")
		if err := os.WriteFile(configPath, []byte(`invalid: yaml: content: [}`), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}
		if _, err := LoadConfigFile(configPath); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("explicit missing path is an error", func(t *testing.T) {
		t.Parallel()

		if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("explicit path is applied over defaults", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(configPath, []byte("expiry:\n  horizonDays: 5\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}
		cfg, err := Load(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.ExpiryHorizonDays != 5 || cfg.ConfigFilePath != configPath {
			t.Errorf("unexpected config %+v", cfg)
		}
		if cfg.WorkdayNotification != DefaultWorkdayNotification {
			t.Errorf("expected default workday time, got %s", cfg.WorkdayNotification)
		}
	})
}

// TestFindConfigFile tests the FindConfigFile function.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns explicit path if exists", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(configPath, []byte("dbDir: /tmp\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}
		if result := FindConfigFile(configPath); result != configPath {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		t.Parallel()

		if result := FindConfigFile("/nonexistent/path/config.yaml"); result != "" {
			t.Errorf("expected empty string, got %q", result)
		}
	})
}

// TestXDGDirs tests XDG directory functions.
func TestXDGDirs(t *testing.T) {
	t.Parallel()

	for name, dir := range map[string]string{"data": XDGDataDir(), "config": XDGConfigDir()} {
		if filepath.Base(dir) != AppName {
			t.Errorf("expected XDG %s dir to end in %s, got %q", name, AppName, dir)
		}
	}
}
