package rules

import "time"

const MinAdultAge = 18

// AgeAt returns the calendar age at the given moment: the year difference
// minus one when the birthday has not yet occurred that year.
func AgeAt(birthDate, at time.Time) int {
	if birthDate.IsZero() {
		return 0
	}

	b := birthDate.UTC()
	now := at.UTC()

	age := now.Year() - b.Year()
	if now.Month() < b.Month() || (now.Month() == b.Month() && now.Day() < b.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// IsAdultAt reports whether the birth date corresponds to MinAdultAge or
// older at the given moment.
func IsAdultAt(birthDate, at time.Time) bool {
	if birthDate.IsZero() {
		return false
	}
	return AgeAt(birthDate, at) >= MinAdultAge
}
