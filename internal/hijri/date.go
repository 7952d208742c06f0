// Package hijri implements a Hijri calendar date value encoded as an
// 8-digit integer (YYYYMMDD in Hijri terms) and its conversion to the
// proleptic Gregorian calendar using the arithmetic civil chronology.
//
// Date is a plain value. It holds no references and is safe to copy and
// share between goroutines.
package hijri

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// Pattern is the canonical, hyphen-free grammar: yyyyMMdd with a leading 1.
	Pattern = `1\d{3}(0[1-9]|1[0-2])(0[1-9]|[12]\d|30)`

	// HyphenatedPattern is the yyyy-MM-dd convenience grammar.
	HyphenatedPattern = `1\d{3}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|30)`

	// ISODateLayout renders a Gregorian date as ISO-8601.
	ISODateLayout = "2006-01-02"
)

var (
	canonicalRe  = regexp.MustCompile(`^` + Pattern + `$`)
	hyphenatedRe = regexp.MustCompile(`^` + HyphenatedPattern + `$`)

	patternDescription = Pattern + " or " + HyphenatedPattern
)

// Date is a Hijri date stored in its canonical integer encoding.
// The zero value is not a valid date; see IsZero.
type Date struct {
	encoded int
}

// Parse validates input and returns its Date. Both the canonical 8-digit form
// ("14380102") and the hyphenated form ("1438-01-02") are accepted; the latter
// is normalized to the former. Day 30 is accepted for every month, so a parsed
// Date can still fail Gregorian conversion.
func Parse(input string) (Date, error) {
	canonical := input
	switch {
	case canonicalRe.MatchString(input):
	case hyphenatedRe.MatchString(input):
		canonical = strings.ReplaceAll(input, "-", "")
	default:
		return Date{}, &FormatError{Input: input, Pattern: patternDescription}
	}

	v, err := strconv.Atoi(canonical)
	if err != nil {
		return Date{}, &FormatError{Input: input, Pattern: patternDescription}
	}
	return Date{encoded: v}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(input string) Date {
	d, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return d
}

// FromEncoded wraps a previously stored integer without validating it.
func FromEncoded(v int) Date {
	return Date{encoded: v}
}

// Int returns the canonical integer encoding.
func (d Date) Int() int {
	return d.encoded
}

// String returns the decimal digits of the encoding with no separators.
func (d Date) String() string {
	return strconv.Itoa(d.encoded)
}

// IsZero reports whether d is the zero value.
func (d Date) IsZero() bool {
	return d.encoded == 0
}

// Year returns the Hijri year digits.
func (d Date) Year() int {
	return d.encoded / 10000
}

// Month returns the Hijri month digits.
func (d Date) Month() int {
	return d.encoded / 100 % 100
}

// Day returns the Hijri day-of-month digits.
func (d Date) Day() int {
	return d.encoded % 100
}

// Compare returns -1, 0 or +1 ordering by year, month, then day.
func (d Date) Compare(other Date) int {
	switch {
	case d.encoded < other.encoded:
		return -1
	case d.encoded > other.encoded:
		return 1
	default:
		return 0
	}
}

// Gregorian converts d to midnight UTC of the corresponding proleptic
// Gregorian date. It returns a *ConversionError when the stored triple does
// not exist in the chronology, e.g. day 30 of a 29-day month.
func (d Date) Gregorian() (time.Time, error) {
	year, month, day := d.Year(), d.Month(), d.Day()
	if err := validTriple(year, month, day); err != nil {
		return time.Time{}, &ConversionError{Date: d, Reason: err.Error()}
	}
	return toGregorian(year, month, day), nil
}

// FormatISO renders t as an ISO-8601 calendar date.
func FormatISO(t time.Time) string {
	return t.Format(ISODateLayout)
}
