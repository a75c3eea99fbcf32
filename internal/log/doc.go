// Package log provides secure logging functionality with automatic sanitization
// of personal information, built on top of the standard slog package.
//
// The SecureHandler masks:
//   - operator identity (name, CID, tax code, e-mail addresses)
//   - battery pack serial numbers
//   - credentials and tokens
//
// Even in verbose mode these values are masked, so logs can be attached to
// a support request without leaking who signed which report.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, true) // verbose=true
//	logger.Info("report generated",
//	    "vehicle", "50832187605-6",
//	    "operator_name", "Mario Rossi", // logged as ***REDACTED***
//	)
package log
