// Package database provides SQLite-based storage for effbatt.
//
// A single database file holds:
//   - the application state (operator, live instruments, sites and vehicles) as JSON
//   - the report history, with the rendered document and its xxh3 content hash
//   - saved instrument templates
//   - the PDF form template the reports are stamped on
//
// SQLite is accessed through modernc.org/sqlite, a CGO-free driver, so the
// binary stays a single file that works offline.
package database
