// Package dateutil provides date helpers for income projection windows
// and age derivation.
package dateutil

import "time"

// DaysInProjectionYear is the length of the projection window used when
// day-weighting income changes.
const DaysInProjectionYear = 365

// DaysBetween returns the number of whole days from a to b. Negative when
// b is before a.
func DaysBetween(a, b time.Time) int {
	a = truncateToDay(a)
	b = truncateToDay(b)
	return int(b.Sub(a).Hours() / 24)
}

// WithinMonths reports whether date lies within ±months of ref.
func WithinMonths(date, ref time.Time, months int) bool {
	low := ref.AddDate(0, -months, 0)
	high := ref.AddDate(0, months, 0)
	return !date.Before(low) && !date.After(high)
}

// MonthsBetween returns the number of whole calendar months from a to b,
// zero when b is before a.
func MonthsBetween(a, b time.Time) int {
	if b.Before(a) {
		return 0
	}
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if b.Day() < a.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// AgeAt calculates the age in whole years at the given date. The birthday
// comparison uses month and day, not the day-of-year ordinal, which shifts
// by one after February in leap years.
func AgeAt(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// IsAdultAt reports whether a person born on birthDate is 18 or older at
// the given date.
func IsAdultAt(birthDate, atDate time.Time) bool {
	return AgeAt(birthDate, atDate) >= 18
}

// MustParse parses a YYYY-MM-DD date and panics on error. Intended for
// tests and static tables.
func MustParse(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
