package calendar

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func tokyo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("tzdata not available: %v", err)
	}
	return loc
}

func TestIsBusinessDay(t *testing.T) {
	loc := tokyo(t)
	c := New(loc)

	cases := []struct {
		date string
		want bool
	}{
		{"2025-01-15", true},  // Wednesday
		{"2025-01-18", false}, // Saturday
		{"2025-01-19", false}, // Sunday
		{"2025-01-13", false}, // Coming of Age Day
		{"2025-11-24", false}, // observed holiday
		{"2026-09-22", false}, // Citizens' Holiday
	}
	for _, tc := range cases {
		d, _ := time.ParseInLocation(dateLayout, tc.date, loc)
		if got := c.IsBusinessDay(d); got != tc.want {
			t.Errorf("%s: want %v, got %v", tc.date, tc.want, got)
		}
	}
}

func TestIsBusinessDay_UsesConfiguredZone(t *testing.T) {
	loc := tokyo(t)
	c := New(loc)
	// Friday 20:00 UTC is already Saturday 05:00 in Tokyo.
	fri := time.Date(2025, 1, 17, 20, 0, 0, 0, time.UTC)
	if c.IsBusinessDay(fri) {
		t.Fatalf("expected Saturday in Tokyo to be a non-business day")
	}
	if !New(time.UTC).IsBusinessDay(fri) {
		t.Fatalf("expected Friday in UTC to be a business day")
	}
}

func TestHolidayNameAndNextBusinessDay(t *testing.T) {
	loc := tokyo(t)
	c := New(loc)

	name, ok := c.HolidayName(time.Date(2025, 1, 13, 9, 0, 0, 0, loc))
	if !ok || name != "Coming of Age Day" {
		t.Fatalf("unexpected holiday: %q %v", name, ok)
	}
	if _, ok := c.HolidayName(time.Date(2025, 1, 14, 9, 0, 0, 0, loc)); ok {
		t.Fatalf("2025-01-14 is not a holiday")
	}

	next := c.NextBusinessDay(time.Date(2025, 1, 10, 12, 0, 0, 0, loc))
	if got := c.DateKey(next); got != "2025-01-14" {
		t.Fatalf("next business day after Fri 10th: want 2025-01-14, got %s", got)
	}
}

func TestLoadHolidaysFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "holidays.yaml")
	data := "holidays:\n  - name: Company day\n    date: 2025-06-02\n"
	if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	hs, err := LoadHolidaysFile(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(hs) != 1 || hs[0].Date != "2025-06-02" {
		t.Fatalf("unexpected holidays: %+v", hs)
	}

	c := New(time.UTC, hs...)
	if c.IsBusinessDay(time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("extra holiday not applied")
	}

	bad := filepath.Join(dir, "bad.yaml")
	_ = os.WriteFile(bad, []byte("holidays:\n  - name: X\n    date: 02/06/2025\n"), 0o644)
	if _, err := LoadHolidaysFile(bad); err == nil {
		t.Fatalf("expected error for malformed date")
	}
}
