package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"icc-dashboard/internal/config"
)

func TestKey(t *testing.T) {
	ts := time.Date(2025, 8, 15, 10, 30, 0, 0, time.UTC)
	got := Key("reports", "bookings", "pdf", ts)
	prefix := "reports/bookings/2025/08/bookings_20250815_103000_"
	if !strings.HasPrefix(got, prefix) || !strings.HasSuffix(got, ".pdf") {
		t.Fatalf("got %q, want %s<id>.pdf", got, prefix)
	}
	if len(got) != len(prefix)+len("12345678.pdf") {
		t.Fatalf("unexpected suffix in %q", got)
	}
}

func TestKeyUniqueWithinSecond(t *testing.T) {
	ts := time.Date(2025, 8, 15, 10, 30, 0, 0, time.UTC)
	a := Key("reports", "payouts", "csv", ts)
	b := Key("reports", "payouts", "csv", ts)
	if a == b {
		t.Fatalf("two exports in one second share key %q", a)
	}
}

func TestDisabledArchiveIsNil(t *testing.T) {
	cfg := &config.Config{}
	a, err := NewReportArchive(context.Background(), cfg, nil)
	if err != nil || a != nil {
		t.Fatalf("expected nil archive, got %v, %v", a, err)
	}
}
