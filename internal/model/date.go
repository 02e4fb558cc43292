package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// dateLayout is the only accepted wire format for prescription dates.
const dateLayout = "2006-01-02"

// Date is a calendar date without a time-of-day component.
// It marshals to and from JSON as a "YYYY-MM-DD" string and scans
// from the DATE column type.
type Date struct {
	t time.Time
}

// ParseDate parses a strict YYYY-MM-DD string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date{t: t}, nil
}

// NewDate builds a Date from year, month, and day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.t.Format(dateLayout)
}

// Time returns the underlying midnight-UTC instant.
func (d Date) Time() time.Time {
	return d.t
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("invalid date JSON: %s", b)
	}
	parsed, err := ParseDate(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan implements sql.Scanner for DATE columns.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		d.t = time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	return d.t, nil
}
