// Package export writes report documents to a directory and marks them shared.
//
// Sharing several reports at once is a batch: reports are fetched and written
// concurrently up to a limit. A failure on one report is recorded in its
// Result and does not stop the others.
package export
