// Package calendar knows the Italian public holidays and picks the time of
// day at which the daily expiry reminder fires.
//
// Easter is looked up in a table covering FirstTabulatedYear through
// LastTabulatedYear; other years fall back to Gauss's algorithm, which
// yields the same dates over the tabulated range.
package calendar
