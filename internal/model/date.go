// internal/model/date.go
package model

import (
    "database/sql/driver"
    "encoding/json"
    "fmt"
    "time"
)

const DateLayout = "2006-01-02"

// Date is a calendar day without a time component, always in UTC.
type Date struct {
    time.Time
}

func NewDate(year int, month time.Month, day int) Date {
    return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in t's own location.
func DateOf(t time.Time) Date {
    return NewDate(t.Year(), t.Month(), t.Day())
}

func ParseDate(s string) (Date, error) {
    t, err := time.Parse(DateLayout, s)
    if err != nil {
        return Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
    }
    return Date{t}, nil
}

func (d Date) String() string {
    return d.Format(DateLayout)
}

func (d Date) Before(other Date) bool {
    return d.Time.Before(other.Time)
}

func (d Date) MarshalJSON() ([]byte, error) {
    return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
    var s string
    if err := json.Unmarshal(b, &s); err != nil {
        return fmt.Errorf("date must be a string: %w", err)
    }
    parsed, err := ParseDate(s)
    if err != nil {
        return err
    }
    *d = parsed
    return nil
}

func (d *Date) Scan(src any) error {
    switch v := src.(type) {
    case time.Time:
        *d = DateOf(v)
        return nil
    case string:
        return d.scanString(v)
    case []byte:
        return d.scanString(string(v))
    case nil:
        *d = Date{}
        return nil
    }
    return fmt.Errorf("cannot scan %T into Date", src)
}

func (d *Date) scanString(s string) error {
    if len(s) > len(DateLayout) {
        s = s[:len(DateLayout)]
    }
    parsed, err := ParseDate(s)
    if err != nil {
        return err
    }
    *d = parsed
    return nil
}

func (d Date) Value() (driver.Value, error) {
    return d.String(), nil
}
