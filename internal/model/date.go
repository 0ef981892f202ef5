package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Date is a calendar day on the wire. It accepts a handful of common
// layouts and always writes YYYY-MM-DD.
type Date struct {
	time.Time
}

var acceptedLayouts = []string{
	DateLayout,
	"2006/01/02",
	"02-01-2006",
	"January 2, 2006",
	"Jan 2, 2006",
	time.RFC3339,
}

func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}

	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: t.UTC().Truncate(24 * time.Hour)}, nil
		}
	}

	return Date{}, fmt.Errorf("cannot parse date: %s", s)
}

// NewDate returns nil for a nil or zero time so optional columns stay optional.
func NewDate(t *time.Time) *Date {
	if t == nil || t.IsZero() {
		return nil
	}
	return &Date{Time: *t}
}

// TimePtr is the inverse of NewDate.
func (d *Date) TimePtr() *time.Time {
	if d == nil || d.Time.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		d.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("invalid date format (string expected): %w", err)
	}

	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = parsed.Time
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte(`null`), nil
	}
	return json.Marshal(d.Time.Format(DateLayout))
}
