package hijri

import (
	"fmt"
	"time"
)

// The arithmetic Islamic calendar with the civil epoch. Leap years follow the
// 2, 5, 7, 10, 13, 16, 18, 21, 24, 26, 29 pattern of each 30-year cycle.
const (
	// civilEpochJDN is the Julian Day Number of 1 Muharram 1 AH (16 July 622 Julian).
	civilEpochJDN = 1948440

	// unixEpochJDN is the Julian Day Number of 1970-01-01.
	unixEpochJDN = 2440588

	daysInCommonYear = 354
	cycleYears       = 30
	leapYearsInCycle = 11
)

// IsLeapYear reports whether the Hijri year has 355 days.
func IsLeapYear(year int) bool {
	return (14+leapYearsInCycle*year)%cycleYears < leapYearsInCycle
}

// MonthLength returns the number of days in the given Hijri month.
func MonthLength(year, month int) int {
	if month == 12 && IsLeapYear(year) {
		return 30
	}
	if month%2 == 1 {
		return 30
	}
	return 29
}

// julianDayNumber returns the day number of the Hijri triple.
// Callers must have checked the triple with validTriple.
func julianDayNumber(year, month, day int) int {
	// (59*(m-1)+1)/2 == ceil(29.5*(m-1))
	monthDays := (59*(month-1) + 1) / 2
	leapDays := (3 + leapYearsInCycle*year) / cycleYears
	return day + monthDays + (year-1)*daysInCommonYear + leapDays + civilEpochJDN - 1
}

func validTriple(year, month, day int) error {
	if year < 1 {
		return fmt.Errorf("year %d is before the epoch", year)
	}
	if month < 1 || month > 12 {
		return fmt.Errorf("month %d out of range", month)
	}
	if n := MonthLength(year, month); day < 1 || day > n {
		return fmt.Errorf("day %d out of range for month %d of year %d (%d days)", day, month, year, n)
	}
	return nil
}

// toGregorian maps a validated Hijri triple to midnight UTC of the
// proleptic Gregorian date.
func toGregorian(year, month, day int) time.Time {
	unixDays := int64(julianDayNumber(year, month, day) - unixEpochJDN)
	return time.Unix(unixDays*86400, 0).UTC()
}
