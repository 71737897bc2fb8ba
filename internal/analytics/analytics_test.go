package analytics

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"lunch-bot/internal/calendar"
	"lunch-bot/internal/history"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func seededStore(now time.Time) *history.Store {
	s := history.NewStore(calendar.New(time.UTC), history.WithClock(func() time.Time { return now }))
	s.Append("Soba", history.SelectedAuto, day(2025, 1, 10))
	s.Append("Curry", history.SelectedAuto, day(2025, 1, 14))
	s.Append("Ramen", history.SelectedManual, day(2025, 1, 15))
	return s
}

func TestAnalyze(t *testing.T) {
	target := day(2025, 1, 16)
	a := Analyze(seededStore(target), target, time.UTC)

	if a.TargetDate != "2025-01-16" || a.CurrentWeek != 3 || a.CurrentBusinessDay != 10 {
		t.Fatalf("unexpected header: %+v", a)
	}
	if len(a.SameWeekSelections) != 2 {
		t.Fatalf("same week: %v", a.SameWeekSelections)
	}
	if len(a.ConsecutiveSelections) != 1 || a.ConsecutiveSelections[0] != "Ramen" {
		t.Fatalf("consecutive: %v", a.ConsecutiveSelections)
	}
	if len(a.RecentSelections) != 3 {
		t.Fatalf("recent: %v", a.RecentSelections)
	}
	if a.WeeklyStats["2025-W2"]["Soba"] != 1 || a.WeeklyStats["2025-W3"]["Curry"] != 1 {
		t.Fatalf("weekly: %v", a.WeeklyStats)
	}
}

func TestAnalyze_EmptyHistoryUsesEmptyLists(t *testing.T) {
	target := day(2025, 1, 16)
	s := history.NewStore(calendar.New(time.UTC))
	a := Analyze(s, target, nil)

	out, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if _, ok := decoded["same_week_selections"].([]any); !ok {
		t.Fatalf("same_week_selections should be an empty array, got %v", decoded["same_week_selections"])
	}
}

func TestGenerateReportSummary(t *testing.T) {
	target := day(2025, 1, 16)
	summary := Analyze(seededStore(target), target, time.UTC).GenerateReportSummary()

	for _, want := range []string{"2025-01-16", "Week 3", "business day #10", "Ramen", "2025-W2: Soba ×1"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}
	if strings.Index(summary, "2025-W2") > strings.Index(summary, "2025-W3") {
		t.Errorf("weeks must be sorted:\n%s", summary)
	}
}

func TestStats(t *testing.T) {
	now := day(2025, 1, 16)
	s := seededStore(now)
	s.Append("Curry", history.SelectedAuto, day(2024, 12, 20))

	st := Stats(s)
	if st.Last30Days["Curry"] != 2 || st.Last7Days["Curry"] != 1 || st.Last7Days["Soba"] != 1 {
		t.Fatalf("unexpected stats: %+v", st)
	}
	text := st.GenerateReportSummary()
	if !strings.Contains(text, "Last 30 days: Curry ×2") {
		t.Fatalf("unexpected report:\n%s", text)
	}
}
