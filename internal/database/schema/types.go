package schema

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Int64 accepts both 42 and "42" from JSON; "" and null decode to zero
type Int64 int64

func (i *Int64) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(bytes.Trim(data, `"`)))
	if raw == "" || raw == "null" {
		*i = 0
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %q", raw)
	}
	*i = Int64(v)
	return nil
}

// Value implements the driver.Valuer interface
func (i Int64) Value() (driver.Value, error) {
	return int64(i), nil
}

// Scan implements the sql.Scanner interface
func (i *Int64) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*i = 0
	case int64:
		*i = Int64(v)
	case int32:
		*i = Int64(v)
	case float64:
		*i = Int64(v)
	case []byte:
		n, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return err
		}
		*i = Int64(n)
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return err
		}
		*i = Int64(n)
	default:
		return fmt.Errorf("unsupported Scan, storing driver.Value type %T into type *Int64", value)
	}
	return nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Time is a nullable timestamp that accepts the console's datetime formats
type Time struct {
	time.Time
	Valid bool
}

func NewTime(t time.Time) Time {
	return Time{Time: t, Valid: true}
}

// GormDataType lets AutoMigrate pick the dialect's timestamp type
func (Time) GormDataType() string {
	return "time"
}

func parseTime(raw string, layouts []string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q", raw)
}

func (t *Time) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(bytes.Trim(data, `"`)))
	if raw == "" || raw == "null" {
		*t = Time{}
		return nil
	}
	parsed, err := parseTime(raw, timeLayouts)
	if err != nil {
		return err
	}
	*t = NewTime(parsed)
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.UTC().Format(time.RFC3339))
}

// Value implements the driver.Valuer interface
func (t Time) Value() (driver.Value, error) {
	if !t.Valid {
		return nil, nil
	}
	return t.Time, nil
}

// Scan implements the sql.Scanner interface
func (t *Time) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = Time{}
	case time.Time:
		*t = NewTime(v)
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("unsupported Scan, storing driver.Value type %T into type *Time", value)
	}
	return nil
}

func (t *Time) scanString(raw string) error {
	parsed, err := parseTime(raw, timeLayouts)
	if err != nil {
		return err
	}
	*t = NewTime(parsed)
	return nil
}

// Date is a calendar day, serialized as YYYY-MM-DD
type Date struct {
	Time
}

const dateLayout = "2006-01-02"

func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: NewTime(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))}
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var t Time
	if err := t.UnmarshalJSON(data); err != nil {
		return err
	}
	if !t.Valid {
		*d = Date{}
		return nil
	}
	*d = NewDate(t.Time)
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Time.Format(dateLayout))
}

// String renders the day for LIKE searches and logs
func (d Date) String() string {
	if !d.Valid {
		return ""
	}
	return d.Time.Time.Format(dateLayout)
}
