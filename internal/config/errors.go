package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate(); callers match them with errors.Is.
var (
	// ErrInvalidNotificationTime is returned when a reminder time is not in HH:MM form.
	ErrInvalidNotificationTime = errors.New("invalid notification time: use HH:MM")

	// ErrInvalidHorizon is returned when the expiry notice horizon is negative.
	ErrInvalidHorizon = errors.New("invalid expiry horizon: must be non-negative")

	// ErrInvalidExportConcurrency is returned when the export concurrency is not positive.
	ErrInvalidExportConcurrency = errors.New("invalid export concurrency: must be positive")

	// ErrConflictingOutputFormats is returned when both --json and --markdown are given.
	ErrConflictingOutputFormats = errors.New("conflicting output formats: --json and --markdown cannot be used together")
)
