// Package domain contains the core entities of the Hijri users registry.
// These are plain Go structs with no infrastructure dependencies.
package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/prn-tf/hijri-users/internal/hijri"
)

// MaxNameLength is the longest accepted user name, in runes.
const MaxNameLength = 255

// User represents a registered person and their Hijri birth date.
type User struct {
	// ID is the unique identifier for the user (auto-generated).
	ID int64 `json:"id"`

	// Name is the display name.
	// Constraints: 1-255 characters after trimming.
	Name string `json:"name"`

	// BirthDate is owned by value and persisted as a single integer column.
	BirthDate hijri.Date `json:"birth_date"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `json:"created_at"`
}

// NewUser creates a new User with default values.
func NewUser(name string, birthDate hijri.Date) *User {
	return &User{
		Name:      name,
		BirthDate: birthDate,
		CreatedAt: time.Now().UTC(),
	}
}

// NormalizeName trims the name and checks its length.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return "", ErrInvalidName
	}
	return name, nil
}

// BirthDateGregorian converts the birth date to its Gregorian equivalent.
func (u *User) BirthDateGregorian() (time.Time, error) {
	return u.BirthDate.Gregorian()
}

// DisplayLine renders the user as "<name>, <ISO-8601 Gregorian date>".
func (u *User) DisplayLine() (string, error) {
	g, err := u.BirthDateGregorian()
	if err != nil {
		return "", err
	}
	return u.Name + ", " + hijri.FormatISO(g), nil
}
