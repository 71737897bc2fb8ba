package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"lunch-bot/internal/calendar"
)

func TestRun_SkipsNonBusinessDays(t *testing.T) {
	s := New(calendar.New(time.UTC), "0 10 * * 1-5", "")
	calls := 0
	job := func(context.Context) error { calls++; return nil }

	s.now = func() time.Time { return time.Date(2025, 1, 13, 10, 0, 0, 0, time.UTC) } // holiday
	if s.run("lunch", job) || calls != 0 {
		t.Fatalf("job must not run on a holiday")
	}

	s.now = func() time.Time { return time.Date(2025, 1, 14, 10, 0, 0, 0, time.UTC) }
	if !s.run("lunch", job) || calls != 1 {
		t.Fatalf("job must run on a business day")
	}
}

func TestRun_JobErrorIsLogged(t *testing.T) {
	s := New(calendar.New(time.UTC), "", "")
	s.now = func() time.Time { return time.Date(2025, 1, 14, 10, 0, 0, 0, time.UTC) }
	if !s.run("collect", func(context.Context) error { return errors.New("boom") }) {
		t.Fatalf("job should have been attempted")
	}
}

func TestStart_RegistersJobs(t *testing.T) {
	s := New(calendar.New(time.UTC), "0 10 * * 1-5", "0 11 * * 1-5")
	s.SetLunchFunction(func(context.Context) error { return nil })
	s.SetCollectFunction(func(context.Context) error { return nil })
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer s.Stop()
	if !s.IsRunning() || len(s.cron.Entries()) != 2 {
		t.Fatalf("want 2 entries, got %d", len(s.cron.Entries()))
	}
}

func TestStart_InvalidSpec(t *testing.T) {
	s := New(calendar.New(time.UTC), "not a spec", "")
	s.SetLunchFunction(func(context.Context) error { return nil })
	if err := s.Start(); err == nil {
		t.Fatalf("expected error for invalid cron spec")
	}
}

func TestStart_WithoutJobs(t *testing.T) {
	s := New(calendar.New(time.UTC), "0 10 * * 1-5", "")
	if err := s.Start(); err != nil || s.IsRunning() {
		t.Fatalf("scheduler without jobs must stay idle")
	}
}
