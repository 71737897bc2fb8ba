package selection

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"lunch-bot/internal/history"
	"lunch-bot/internal/restaurant"
)

// LimitedRatio is the share of the pool below which a "limited options"
// note is attached to an automatic selection.
const LimitedRatio = 0.3

const allExcludedNote = "⚠️ Every restaurant matched an exclusion rule, so the pick was made from the full list"

var ErrEmptyCandidateList = errors.New("empty candidate list")

// HistoryStore is the part of the history store the engine needs.
type HistoryStore interface {
	SelectedThisWeek(target time.Time) []string
	SelectedOnPriorBusinessDay(target time.Time) []string
	Append(name string, by history.SelectedBy, at time.Time) history.Record
}

// Result is an automatic selection together with its transient note.
// The note is empty when no exclusion fallback applied.
type Result struct {
	Restaurant restaurant.Restaurant `json:"restaurant"`
	Note       string                `json:"note,omitempty"`
}

type Option func(*Engine)

// WithRand sets the source of uniform floats in [0, 1).
func WithRand(f func() float64) Option {
	return func(e *Engine) { e.rnd = f }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// Engine picks restaurants with soft exclusion rules: exclusion never blocks
// a pick, it only narrows the pool while something is left.
// Reading the exclusions, picking and appending happen under one lock, so
// concurrent triggers never see the same exclusion set.
type Engine struct {
	mu    sync.Mutex
	store HistoryStore
	rnd   func() float64
	now   func() time.Time
}

func NewEngine(store HistoryStore, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		rnd:   rand.Float64,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SelectAutomatic picks a restaurant for target (zero means now), skipping
// restaurants chosen earlier in the same week or on the previous business
// day, and records the pick at target.
func (e *Engine) SelectAutomatic(candidates []restaurant.Restaurant, target time.Time) (Result, error) {
	if len(candidates) == 0 {
		return Result{}, ErrEmptyCandidateList
	}
	if target.IsZero() {
		target = e.now()
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	excluded := make(map[string]bool)
	for _, name := range e.store.SelectedThisWeek(target) {
		excluded[name] = true
	}
	for _, name := range e.store.SelectedOnPriorBusinessDay(target) {
		excluded[name] = true
	}

	available := make([]restaurant.Restaurant, 0, len(candidates))
	for _, c := range candidates {
		if !excluded[c.Name] {
			available = append(available, c)
		}
	}

	pool := available
	var note string
	switch {
	case len(available) == 0:
		pool = candidates
		note = allExcludedNote
	case float64(len(available)) < float64(len(candidates))*LimitedRatio:
		note = fmt.Sprintf("ℹ️ Only a few restaurants are left to choose from (%d/%d)", len(available), len(candidates))
	}

	picked := pool[e.pick(len(pool))]
	e.store.Append(picked.Name, history.SelectedAuto, target)
	return Result{Restaurant: picked, Note: note}, nil
}

// SelectManual picks uniformly from the whole list without exclusions.
func (e *Engine) SelectManual(candidates []restaurant.Restaurant) (restaurant.Restaurant, error) {
	if len(candidates) == 0 {
		return restaurant.Restaurant{}, ErrEmptyCandidateList
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	picked := candidates[e.pick(len(candidates))]
	e.store.Append(picked.Name, history.SelectedManual, e.now())
	return picked, nil
}

func (e *Engine) pick(n int) int {
	i := int(e.rnd() * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
