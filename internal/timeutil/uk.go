package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// UK is the Europe/London location used for every displayed time.
var UK *time.Location

func init() {
	var err error
	UK, err = time.LoadLocation("Europe/London")
	if err != nil {
		// tzdata missing: fall back to a fixed GMT zone
		UK = time.FixedZone("GMT", 0)
	}
}

// Now returns the current time in UK time.
func Now() time.Time {
	return time.Now().In(UK)
}

// ParseInUK parses a time string and returns it in UK time
func ParseInUK(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, UK)
}

// FormatUK formats a time in UK time using the given layout
func FormatUK(t time.Time, layout string) string {
	return t.In(UK).Format(layout)
}

// StartOfDay returns the start of day (00:00:00) in UK time for the given time
func StartOfDay(t time.Time) time.Time {
	uk := t.In(UK)
	return time.Date(uk.Year(), uk.Month(), uk.Day(), 0, 0, 0, 0, UK)
}

// EndOfDay returns the end of day (23:59:59) in UK time for the given time
func EndOfDay(t time.Time) time.Time {
	uk := t.In(UK)
	return time.Date(uk.Year(), uk.Month(), uk.Day(), 23, 59, 59, 999999999, UK)
}

const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	ShortTime      = "15:04"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006, 03:04 PM"
	DisplayDate    = "02 Jan 2006"
)

// FormatBookingDateTime joins a booking_date ("2025-08-15") and time_slot
// ("10:00:00" or "10:00") into "15 Aug 2025, 10:00 AM".
func FormatBookingDateTime(date, slot string) (string, error) {
	t, err := parseBookingParts(date, slot)
	if err != nil {
		return "", err
	}
	return t.Format(DisplayLayout), nil
}

// ParseBookingDisplay is the inverse of FormatBookingDateTime.
func ParseBookingDisplay(display string) (time.Time, error) {
	return time.ParseInLocation(DisplayLayout, strings.TrimSpace(display), UK)
}

// FormatDate renders an API date ("2025-08-15" or RFC3339) as "15 Aug 2025".
// Unparseable input is returned unchanged.
func FormatDate(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if t, err := time.ParseInLocation(DateLayout, value, UK); err == nil {
		return t.Format(DisplayDate)
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(UK).Format(DisplayDate)
	}
	return value
}

func parseBookingParts(date, slot string) (time.Time, error) {
	date = strings.TrimSpace(date)
	slot = strings.TrimSpace(slot)
	if date == "" {
		return time.Time{}, fmt.Errorf("booking date is empty")
	}
	if slot == "" {
		slot = "00:00:00"
	}

	layout := DateLayout + " " + TimeLayout
	if strings.Count(slot, ":") == 1 {
		layout = DateLayout + " " + ShortTime
	}

	t, err := time.ParseInLocation(layout, date+" "+slot, UK)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse booking date %q %q: %w", date, slot, err)
	}
	return t, nil
}
