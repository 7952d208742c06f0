package hijri

import (
	"database/sql/driver"
	"fmt"
	"strconv"
)

// Value implements driver.Valuer. The date is persisted as a single integer column.
func (d Date) Value() (driver.Value, error) {
	return int64(d.encoded), nil
}

// Scan implements sql.Scanner. Stored values are trusted and not re-validated.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case int64:
		d.encoded = int(v)
	case int32:
		d.encoded = int(v)
	case int:
		d.encoded = v
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	case nil:
		return fmt.Errorf("hijri: cannot scan NULL into Date")
	default:
		return fmt.Errorf("hijri: cannot scan %T into Date", src)
	}
	return nil
}

func (d *Date) scanString(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("hijri: cannot scan %q into Date: %w", s, err)
	}
	d.encoded = v
	return nil
}

// MarshalText implements encoding.TextMarshaler using the canonical form.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Input is validated with Parse.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
