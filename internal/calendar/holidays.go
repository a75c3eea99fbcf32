package calendar

import (
	"slices"
	"time"
)

// Range of years whose Easter date is tabulated.
const (
	FirstTabulatedYear = 2025
	LastTabulatedYear  = 2045
)

// Holiday is a public holiday on a given date.
type Holiday struct {
	Date time.Time
	Name string
}

type monthDay struct {
	month time.Month
	day   int
}

type fixedHoliday struct {
	monthDay
	name string
}

// fixedHolidays recur on the same date every year.
var fixedHolidays = []fixedHoliday{
	{monthDay{time.January, 1}, "New Year's Day"},
	{monthDay{time.January, 6}, "Epiphany"},
	{monthDay{time.April, 25}, "Liberation Day"},
	{monthDay{time.May, 1}, "Labour Day"},
	{monthDay{time.June, 2}, "Republic Day"},
	{monthDay{time.August, 15}, "Assumption Day"},
	{monthDay{time.October, 4}, "Saint Francis of Assisi"},
	{monthDay{time.November, 1}, "All Saints' Day"},
	{monthDay{time.December, 8}, "Immaculate Conception"},
	{monthDay{time.December, 25}, "Christmas Day"},
	{monthDay{time.December, 26}, "Saint Stephen's Day"},
}

var easterDates = map[int]monthDay{
	2025: {time.April, 20},
	2026: {time.April, 5},
	2027: {time.March, 28},
	2028: {time.April, 16},
	2029: {time.April, 1},
	2030: {time.April, 21},
	2031: {time.April, 13},
	2032: {time.March, 28},
	2033: {time.April, 17},
	2034: {time.April, 9},
	2035: {time.March, 25},
	2036: {time.April, 13},
	2037: {time.April, 5},
	2038: {time.April, 25},
	2039: {time.April, 10},
	2040: {time.April, 1},
	2041: {time.April, 21},
	2042: {time.April, 6},
	2043: {time.March, 29},
	2044: {time.April, 17},
	2045: {time.April, 9},
}

// IsTabulated reports whether the Easter date of year comes from the table.
func IsTabulated(year int) bool {
	_, ok := easterDates[year]
	return ok
}

// Easter returns Easter Sunday of year at midnight in loc.
func Easter(year int, loc *time.Location) time.Time {
	md, ok := easterDates[year]
	if !ok {
		md = gaussEaster(year)
	}
	return time.Date(year, md.month, md.day, 0, 0, 0, 0, loc)
}

// EasterMonday returns the day after Easter Sunday.
func EasterMonday(year int, loc *time.Location) time.Time {
	return Easter(year, loc).AddDate(0, 0, 1)
}

// gaussEaster computes Easter Sunday with Gauss's algorithm.
func gaussEaster(year int) monthDay {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	n := h + l - 7*m + 114
	return monthDay{month: time.Month(n / 31), day: n%31 + 1}
}

// Holidays returns every public holiday of year in loc, sorted by date.
func Holidays(year int, loc *time.Location) []Holiday {
	holidays := make([]Holiday, 0, len(fixedHolidays)+2)
	for _, h := range fixedHolidays {
		holidays = append(holidays, Holiday{
			Date: time.Date(year, h.month, h.day, 0, 0, 0, 0, loc),
			Name: h.name,
		})
	}
	holidays = append(holidays,
		Holiday{Date: Easter(year, loc), Name: "Easter Sunday"},
		Holiday{Date: EasterMonday(year, loc), Name: "Easter Monday"},
	)
	slices.SortStableFunc(holidays, func(a, b Holiday) int {
		return a.Date.Compare(b.Date)
	})
	return holidays
}

// HolidayName returns the name of the holiday falling on date's calendar day.
func HolidayName(date time.Time) (string, bool) {
	y, m, d := date.Date()
	for _, h := range Holidays(y, date.Location()) {
		if h.Date.Month() == m && h.Date.Day() == d {
			return h.Name, true
		}
	}
	return "", false
}

// IsHoliday reports whether date's calendar day is a public holiday.
func IsHoliday(date time.Time) bool {
	_, ok := HolidayName(date)
	return ok
}

// IsWeekend reports whether date falls on Saturday or Sunday.
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsWorkday reports whether date is Monday to Friday and not a holiday.
func IsWorkday(date time.Time) bool {
	return !IsWeekend(date) && !IsHoliday(date)
}
