// Package validation implements the rule engine that governs a battery
// efficiency verification record.
//
// The package provides:
//   - Identifier validators: vehicle number (EVN) check digit and work-order (ODL) format
//   - Completeness: the ordered list of required fields still missing, the single gate for generation
//   - Measurement rules: final voltage and final current sanity checks
//   - Density rules: per-reading range check and per-pack max/min spread check
//   - Instrument expiry rules: expired-on-date checks and advance "N days before" notices
//   - Battery pack age: six-year service life from the production date
//   - Data entry steps: the step list per verification type and the gate run before leaving a step
//
// Every function is pure. Inputs are passed explicitly (including "today"
// for the advance expiry notices) and nothing is cached between calls, so
// calling a validator twice with the same input yields the same output.
// Expected invalid input is reported through the returned value and never
// through a panic.
//
// # Density units
//
// Density readings are entered either in g/ml ("1.25", "1,25") or as bare
// integers in 101..140 that NormalizeDensity rewrites as g/ml. The range
// check works on the value as parsed (so "150" is out of range). The spread
// check converts every reading to hundredths of g/ml ("points": 1.25 -> 125,
// 125 -> 125) and warns when max-min exceeds 30 points, so both entry forms
// land on the same scale.
package validation
