package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// HistoryReader is the read side of the selection history.
type HistoryReader interface {
	SelectedThisWeek(target time.Time) []string
	SelectedOnPriorBusinessDay(target time.Time) []string
	RecentSelections(days int) []string
	StatsOverWindow(days int) map[string]int
	WeeklyStats() map[string]map[string]int
	CurrentWeek(target time.Time) int
	CurrentBusinessDay(target time.Time) int
}

// SelectionAnalysis explains which exclusion rules apply on a given day.
type SelectionAnalysis struct {
	TargetDate            string                    `json:"target_date"`
	CurrentWeek           int                       `json:"current_week"`
	CurrentBusinessDay    int                       `json:"current_business_day"`
	SameWeekSelections    []string                  `json:"same_week_selections"`
	ConsecutiveSelections []string                  `json:"consecutive_selections"`
	RecentSelections      []string                  `json:"recent_selections"`
	WeeklyStats           map[string]map[string]int `json:"weekly_stats"`
}

// SelectionStats counts selections over the trailing 30 and 7 days.
type SelectionStats struct {
	Last30Days map[string]int `json:"last_30_days"`
	Last7Days  map[string]int `json:"last_7_days"`
}

// Analyze builds the analysis for target in loc.
func Analyze(h HistoryReader, target time.Time, loc *time.Location) *SelectionAnalysis {
	if loc == nil {
		loc = time.UTC
	}
	return &SelectionAnalysis{
		TargetDate:            target.In(loc).Format("2006-01-02"),
		CurrentWeek:           h.CurrentWeek(target),
		CurrentBusinessDay:    h.CurrentBusinessDay(target),
		SameWeekSelections:    nonNil(h.SelectedThisWeek(target)),
		ConsecutiveSelections: nonNil(h.SelectedOnPriorBusinessDay(target)),
		RecentSelections:      nonNil(h.RecentSelections(7)),
		WeeklyStats:           h.WeeklyStats(),
	}
}

func Stats(h HistoryReader) SelectionStats {
	return SelectionStats{
		Last30Days: h.StatsOverWindow(30),
		Last7Days:  h.StatsOverWindow(7),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// GenerateReportSummary renders the analysis as chat text.
func (a *SelectionAnalysis) GenerateReportSummary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Selection analysis for %s\n\n", a.TargetDate)
	fmt.Fprintf(&b, "Week %d, business day #%d\n", a.CurrentWeek, a.CurrentBusinessDay)
	fmt.Fprintf(&b, "🚫 Picked this week: %s\n", listOrNone(a.SameWeekSelections))
	fmt.Fprintf(&b, "🚫 Picked on the previous business day: %s\n", listOrNone(a.ConsecutiveSelections))
	fmt.Fprintf(&b, "🕘 Last 7 days: %s\n", listOrNone(a.RecentSelections))

	if len(a.WeeklyStats) > 0 {
		b.WriteString("\nBy week:\n")
		weeks := make([]string, 0, len(a.WeeklyStats))
		for w := range a.WeeklyStats {
			weeks = append(weeks, w)
		}
		sort.Strings(weeks)
		for _, w := range weeks {
			fmt.Fprintf(&b, "- %s: %s\n", w, formatCounts(a.WeeklyStats[w]))
		}
	}
	return b.String()
}

// GenerateReportSummary renders the trailing-window counts, busiest first.
func (s SelectionStats) GenerateReportSummary() string {
	var b strings.Builder
	b.WriteString("📈 Selections\n")
	fmt.Fprintf(&b, "Last 7 days: %s\n", formatCounts(s.Last7Days))
	fmt.Fprintf(&b, "Last 30 days: %s\n", formatCounts(s.Last30Days))
	return b.String()
}

func listOrNone(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

// formatCounts orders by count descending, then by name.
func formatCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	names := make([]string, 0, len(counts))
	for n := range counts {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, fmt.Sprintf("%s ×%d", n, counts[n]))
	}
	return strings.Join(parts, ", ")
}
