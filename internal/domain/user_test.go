package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/prn-tf/hijri-users/internal/hijri"
)

func TestUser_DisplayLine(t *testing.T) {
	u := NewUser("Mortada", hijri.MustParse("1444-01-16"))

	line, err := u.DisplayLine()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line != "Mortada, 2022-08-14" {
		t.Errorf("expected %q, got %q", "Mortada, 2022-08-14", line)
	}
	if u.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestUser_DisplayLine_ConversionError(t *testing.T) {
	u := NewUser("Wael", hijri.MustParse("14380230"))

	_, err := u.DisplayLine()
	if !errors.Is(err, hijri.ErrConversion) {
		t.Fatalf("expected conversion error, got %v", err)
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "plain", input: "Ali", want: "Ali"},
		{name: "trimmed", input: "  Ibrahim \t", want: "Ibrahim"},
		{name: "arabic", input: "علي", want: "علي"},
		{name: "empty", input: "", wantErr: ErrInvalidName},
		{name: "blank", input: "   ", wantErr: ErrInvalidName},
		{name: "too long", input: strings.Repeat("a", MaxNameLength+1), wantErr: ErrInvalidName},
		{name: "max length", input: strings.Repeat("a", MaxNameLength), want: strings.Repeat("a", MaxNameLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeName(tt.input)
			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDomainError(t *testing.T) {
	err := NewDomainError(ErrUserNotFound, "lookup failed", "42")
	if !errors.Is(err, ErrUserNotFound) {
		t.Error("expected DomainError to unwrap to ErrUserNotFound")
	}
	if err.Error() != "user not found: lookup failed (42)" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
