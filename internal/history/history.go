package history

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SelectedBy tells how a restaurant was chosen.
type SelectedBy string

const (
	SelectedAuto   SelectedBy = "auto"
	SelectedManual SelectedBy = "manual"
	SelectedVote   SelectedBy = "vote"
)

const (
	DefaultCapacity = 100

	// How far back SelectedOnPriorBusinessDay looks for the previous business day.
	priorLookbackDays = 7
)

// BusinessCalendar is the calendar predicate the store depends on.
type BusinessCalendar interface {
	IsBusinessDay(t time.Time) bool
	Location() *time.Location
}

// Record is one past selection. Records are immutable once appended.
type Record struct {
	ID                  string     `json:"id"`
	RestaurantName      string     `json:"restaurant_name"`
	SelectedAt          time.Time  `json:"selected_at"`
	SelectedBy          SelectedBy `json:"selected_by"`
	WeekNumber          int        `json:"week_number"`
	BusinessDaySequence int        `json:"business_day_sequence"`
}

type Option func(*Store)

// WithClock overrides the wall clock used for "now".
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithCapacity overrides how many records are retained.
func WithCapacity(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.capacity = n
		}
	}
}

func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// Store is a capacity-bounded, in-memory log of selections.
// Eviction is FIFO by insertion order, not by SelectedAt: backdated test
// records must not reorder the log.
type Store struct {
	mu       sync.RWMutex
	cal      BusinessCalendar
	now      func() time.Time
	newID    func() string
	capacity int
	records  []Record // oldest first
}

func NewStore(cal BusinessCalendar, opts ...Option) *Store {
	s := &Store{
		cal:      cal,
		now:      time.Now,
		newID:    uuid.NewString,
		capacity: DefaultCapacity,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append records a selection made at the given moment (zero means now).
func (s *Store) Append(name string, by SelectedBy, at time.Time) Record {
	if at.IsZero() {
		at = s.now()
	}
	rec := Record{
		ID:                  s.newID(),
		RestaurantName:      name,
		SelectedAt:          at,
		SelectedBy:          by,
		WeekNumber:          WeekNumber(at.In(s.cal.Location())),
		BusinessDaySequence: BusinessDaySequence(s.cal, at),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	if over := len(s.records) - s.capacity; over > 0 {
		s.records = append([]Record(nil), s.records[over:]...)
	}
	return rec
}

// SelectedThisWeek returns names selected in the same (year, week) as target.
func (s *Store) SelectedThisWeek(target time.Time) []string {
	loc := s.cal.Location()
	local := target.In(loc)
	week, year := WeekNumber(local), local.Year()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return collectNames(s.records, func(r Record) bool {
		return r.SelectedAt.In(loc).Year() == year && r.WeekNumber == week
	})
}

// SelectedOnPriorBusinessDay returns names selected on the business day
// immediately before target. Records are matched by business-day sequence
// number only.
func (s *Store) SelectedOnPriorBusinessDay(target time.Time) []string {
	prior, ok := s.priorBusinessDay(target)
	if !ok {
		return nil
	}
	seq := BusinessDaySequence(s.cal, prior)

	s.mu.RLock()
	defer s.mu.RUnlock()
	return collectNames(s.records, func(r Record) bool {
		return r.BusinessDaySequence == seq
	})
}

func (s *Store) priorBusinessDay(target time.Time) (time.Time, bool) {
	local := target.In(s.cal.Location())
	for i := 1; i <= priorLookbackDays; i++ {
		d := local.AddDate(0, 0, -i)
		if s.cal.IsBusinessDay(d) {
			return d, true
		}
	}
	return time.Time{}, false
}

// RecentSelections returns names selected within the last days of wall-clock now.
func (s *Store) RecentSelections(days int) []string {
	cutoff := s.now().AddDate(0, 0, -days)

	s.mu.RLock()
	defer s.mu.RUnlock()
	return collectNames(s.records, func(r Record) bool {
		return r.SelectedAt.After(cutoff)
	})
}

// StatsOverWindow counts selections per restaurant over the trailing window.
func (s *Store) StatsOverWindow(days int) map[string]int {
	cutoff := s.now().AddDate(0, 0, -days)

	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := make(map[string]int)
	for _, r := range s.records {
		if r.SelectedAt.After(cutoff) {
			stats[r.RestaurantName]++
		}
	}
	return stats
}

// WeeklyStats groups counts by "YYYY-W<n>".
func (s *Store) WeeklyStats() map[string]map[string]int {
	loc := s.cal.Location()

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]map[string]int)
	for _, r := range s.records {
		key := fmt.Sprintf("%d-W%d", r.SelectedAt.In(loc).Year(), r.WeekNumber)
		if out[key] == nil {
			out[key] = make(map[string]int)
		}
		out[key][r.RestaurantName]++
	}
	return out
}

// All returns a copy of every record, most recent first.
func (s *Store) All() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, len(s.records))
	for i, r := range s.records {
		out[len(s.records)-1-i] = r
	}
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
}

// CurrentWeek and CurrentBusinessDay expose the derived numbers for target.
func (s *Store) CurrentWeek(target time.Time) int {
	return WeekNumber(target.In(s.cal.Location()))
}

func (s *Store) CurrentBusinessDay(target time.Time) int {
	return BusinessDaySequence(s.cal, target)
}

func (s *Store) Now() time.Time { return s.now() }

func collectNames(records []Record, keep func(Record) bool) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		if !keep(r) || seen[r.RestaurantName] {
			continue
		}
		seen[r.RestaurantName] = true
		out = append(out, r.RestaurantName)
	}
	return out
}
