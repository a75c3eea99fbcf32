package config

// File represents the structure of the .effbatt configuration file.
// Pointer fields distinguish "not set" from an explicit zero or false.
type File struct {
	Notifications NotificationsFile `yaml:"notifications,omitempty"`
	Expiry        ExpiryFile        `yaml:"expiry,omitempty"`
	Export        ExportFile        `yaml:"export,omitempty"`

	// DBDir overrides the database directory.
	DBDir string `yaml:"dbDir,omitempty"`
}

// NotificationsFile configures the daily expiry reminder.
type NotificationsFile struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Workday string `yaml:"workday,omitempty"`
	Holiday string `yaml:"holiday,omitempty"`
}

// ExpiryFile configures instrument expiry notices.
type ExpiryFile struct {
	HorizonDays *int `yaml:"horizonDays,omitempty"`
}

// ExportFile configures history share.
type ExportFile struct {
	Concurrency int `yaml:"concurrency,omitempty"`
}
