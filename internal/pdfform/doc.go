// Package pdfform maps a vehicle record onto the fields of the
// verification form template.
//
// The template is a two-page form with text fields named Text1..Text59.
// Build resolves every field value, the wrapped notes and the position of
// the outcome mark; a Renderer stamps the result onto the template bytes.
// The package also names the generated documents (Filename, ReportID).
package pdfform
