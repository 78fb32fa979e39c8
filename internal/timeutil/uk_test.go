package timeutil

import "testing"

func TestFormatBookingDateTime(t *testing.T) {
	cases := []struct {
		date, slot, want string
	}{
		{"2025-08-15", "10:00:00", "15 Aug 2025, 10:00 AM"},
		{"2025-08-15", "14:30", "15 Aug 2025, 02:30 PM"},
		{"2025-01-02", "00:15:00", "02 Jan 2025, 12:15 AM"},
	}
	for _, tc := range cases {
		got, err := FormatBookingDateTime(tc.date, tc.slot)
		if err != nil {
			t.Fatalf("FormatBookingDateTime(%q, %q) failed: %v", tc.date, tc.slot, err)
		}
		if got != tc.want {
			t.Fatalf("FormatBookingDateTime(%q, %q) = %q, want %q", tc.date, tc.slot, got, tc.want)
		}
	}
}

func TestBookingDisplayRoundTrip(t *testing.T) {
	display, err := FormatBookingDateTime("2025-08-15", "10:00:00")
	if err != nil {
		t.Fatalf("format failed: %v", err)
	}

	parsed, err := ParseBookingDisplay(display)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got := parsed.Format(DateLayout); got != "2025-08-15" {
		t.Fatalf("date changed in round trip: %s", got)
	}
	if parsed.Hour() != 10 || parsed.Minute() != 0 {
		t.Fatalf("time changed in round trip: %s", parsed.Format(TimeLayout))
	}
	if again := parsed.Format(DisplayLayout); again != display {
		t.Fatalf("display label drifted: %q vs %q", again, display)
	}
}

func TestFormatBookingDateTimeRejectsBadInput(t *testing.T) {
	if _, err := FormatBookingDateTime("", "10:00:00"); err == nil {
		t.Fatal("expected error for empty date")
	}
	if _, err := FormatBookingDateTime("15/08/2025", "10:00:00"); err == nil {
		t.Fatal("expected error for non-ISO date")
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate("2025-08-15"); got != "15 Aug 2025" {
		t.Fatalf("FormatDate = %q", got)
	}
	if got := FormatDate("2025-08-15T09:30:00Z"); got != "15 Aug 2025" {
		t.Fatalf("FormatDate(RFC3339) = %q", got)
	}
	if got := FormatDate("soon"); got != "soon" {
		t.Fatalf("unparseable input should pass through, got %q", got)
	}
}
