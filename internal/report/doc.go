// Package report renders verification results for people and tools.
//
// SheetRenderer turns a resolved form into a Markdown verification sheet and
// is the built-in pdfform.Renderer. The Writer implementations print the
// report history and vehicle checks as plain text, Markdown or JSON.
package report
