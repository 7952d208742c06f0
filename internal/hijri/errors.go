package hijri

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFormat indicates the input does not match the accepted date grammar.
	ErrInvalidFormat = errors.New("invalid hijri date format")

	// ErrConversion indicates a well-formed value that is not a real date
	// in the tabular chronology.
	ErrConversion = errors.New("hijri date conversion failed")
)

// FormatError is returned by Parse when the input is rejected.
type FormatError struct {
	// Input is the offending input as given by the caller.
	Input string

	// Pattern describes the expected grammar.
	Pattern string
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %q does not match %s", ErrInvalidFormat.Error(), e.Input, e.Pattern)
}

// Unwrap returns ErrInvalidFormat for errors.Is.
func (e *FormatError) Unwrap() error {
	return ErrInvalidFormat
}

// ConversionError is returned by Gregorian when the stored triple does not
// exist in the chronology.
type ConversionError struct {
	Date   Date
	Reason string
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrConversion.Error(), e.Date.String(), e.Reason)
}

// Unwrap returns ErrConversion for errors.Is.
func (e *ConversionError) Unwrap() error {
	return ErrConversion
}
