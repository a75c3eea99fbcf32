// Package config provides the configuration of effbatt: reminder times,
// the expiry notice horizon, the database location and export settings.
// Values start from NewConfig defaults, are overridden by the optional
// YAML file (.effbatt) and finally by command line flags.
package config
