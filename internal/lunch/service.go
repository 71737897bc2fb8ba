package lunch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"lunch-bot/internal/history"
	"lunch-bot/internal/orders"
	"lunch-bot/internal/restaurant"
	"lunch-bot/internal/selection"
	"lunch-bot/internal/storage"
)

var ErrNoActiveSession = errors.New("no active order session")

// CandidateSource supplies the candidate pool for one selection.
type CandidateSource interface {
	Candidates(ctx context.Context) ([]restaurant.Restaurant, error)
}

// Recommendation is a selection as delivered to the chat.
type Recommendation struct {
	Restaurant restaurant.Restaurant `json:"restaurant"`
	Note       string                `json:"note,omitempty"`
	SelectedBy history.SelectedBy    `json:"selected_by"`
	SessionID  string                `json:"session_id,omitempty"`
}

// Service wires the candidate source, the selection engine, the order
// sessions and the notifier together. It is the target of the scheduler,
// chat callbacks and the HTTP API.
type Service struct {
	source        CandidateSource
	engine        *selection.Engine
	history       *history.Store
	orders        *orders.Manager
	notifier      Notifier
	recorder      storage.Recorder
	intakeEnabled bool
	now           func() time.Time
	rnd           func() float64
}

type Option func(*Service)

// WithRecorder enables the audit event log.
func WithRecorder(r storage.Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithOrderIntake controls whether selections open an order session.
func WithOrderIntake(enabled bool) Option {
	return func(s *Service) { s.intakeEnabled = enabled }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithRand sets the random source used by the test seeding helpers.
func WithRand(f func() float64) Option {
	return func(s *Service) { s.rnd = f }
}

func NewService(source CandidateSource, engine *selection.Engine, hist *history.Store, om *orders.Manager, notifier Notifier, opts ...Option) *Service {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	s := &Service{
		source:        source,
		engine:        engine,
		history:       hist,
		orders:        om,
		notifier:      notifier,
		intakeEnabled: true,
		now:           time.Now,
		rnd:           rand.Float64,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetNotifier replaces the notifier once the chat transport is ready.
func (s *Service) SetNotifier(n Notifier) {
	if n != nil {
		s.notifier = n
	}
}

func (s *Service) IntakeEnabled() bool { return s.intakeEnabled }

// Recommend runs an automatic selection for target (zero means now),
// opens an order session and notifies the chat. A target on another date
// only lands in history.
func (s *Service) Recommend(ctx context.Context, target time.Time) (Recommendation, error) {
	list, err := s.source.Candidates(ctx)
	if err != nil {
		return Recommendation{}, fmt.Errorf("load candidates: %w", err)
	}
	res, err := s.engine.SelectAutomatic(list, target)
	if err != nil {
		return Recommendation{}, fmt.Errorf("select restaurant: %w", err)
	}

	rec := Recommendation{Restaurant: res.Restaurant, Note: res.Note, SelectedBy: history.SelectedAuto}
	if !target.IsZero() && !s.isToday(target) {
		// backfill: history only, no session and no chat message
		log.Printf("📅 Recorded %s for %s without delivery", rec.Restaurant.Name, target.In(s.orders.Location()).Format("2006-01-02"))
		s.recordSelection(rec)
		return rec, nil
	}
	s.deliver(ctx, &rec)
	return rec, nil
}

func (s *Service) isToday(t time.Time) bool {
	loc := s.orders.Location()
	return t.In(loc).Format("2006-01-02") == s.now().In(loc).Format("2006-01-02")
}

// PickManual selects from the whole pool, ignoring exclusion rules.
func (s *Service) PickManual(ctx context.Context) (Recommendation, error) {
	list, err := s.source.Candidates(ctx)
	if err != nil {
		return Recommendation{}, fmt.Errorf("load candidates: %w", err)
	}
	picked, err := s.engine.SelectManual(list)
	if err != nil {
		return Recommendation{}, fmt.Errorf("select restaurant: %w", err)
	}

	rec := Recommendation{Restaurant: picked, SelectedBy: history.SelectedManual}
	s.deliver(ctx, &rec)
	return rec, nil
}

// Approve acknowledges the current recommendation.
func (s *Service) Approve(_ context.Context, actor string) {
	ev := storage.Event{Kind: storage.EventApproved, Actor: actor}
	if sess, ok := s.orders.ActiveSession(); ok {
		ev.Restaurant = sess.Restaurant.Name
		ev.SessionID = sess.ID
	}
	s.record(ev)
}

// Reject discards the current recommendation and runs a fresh automatic
// selection. The rejected pick stays in history, so it is excluded.
func (s *Service) Reject(ctx context.Context, actor string) (Recommendation, error) {
	ev := storage.Event{Kind: storage.EventRejected, Actor: actor}
	if sess, ok := s.orders.ActiveSession(); ok {
		ev.Restaurant = sess.Restaurant.Name
		ev.SessionID = sess.ID
	}
	s.record(ev)
	return s.Recommend(ctx, time.Time{})
}

// CollectOrders closes today's active session and posts its summary.
func (s *Service) CollectOrders(ctx context.Context) (orders.Session, error) {
	active, ok := s.orders.ActiveSession()
	if !ok {
		return orders.Session{}, ErrNoActiveSession
	}
	closed, err := s.orders.CloseSession(active.ID)
	if err != nil {
		return orders.Session{}, fmt.Errorf("close session: %w", err)
	}

	if err := s.notifier.NotifySummary(ctx, closed); err != nil {
		log.Printf("❌ Failed to deliver order summary: %v", err)
	}
	s.record(storage.Event{
		Kind:       storage.EventSessionClosed,
		Restaurant: closed.Restaurant.Name,
		SessionID:  closed.ID,
		Orders:     len(closed.Orders),
		Summary:    closed.Summary,
	})
	return closed, nil
}

// ScheduledCollect is CollectOrders for the cron job: a day without an
// active session is not a failure.
func (s *Service) ScheduledCollect(ctx context.Context) error {
	closed, err := s.CollectOrders(ctx)
	if errors.Is(err, ErrNoActiveSession) {
		log.Printf("ℹ️ No active order session to collect")
		return nil
	}
	if err != nil {
		return err
	}
	log.Printf("📦 Collected %d orders for %s", len(closed.Orders), closed.Restaurant.Name)
	return nil
}

// Events returns the audit event log, or nothing when no recorder is set.
func (s *Service) Events() ([]storage.Event, error) {
	if s.recorder == nil {
		return []storage.Event{}, nil
	}
	events, err := s.recorder.LoadEvents()
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	if events == nil {
		events = []storage.Event{}
	}
	return events, nil
}

// deliver opens the order session, notifies the chat and records the event.
// Delivery failures are logged: the selection is already in history.
func (s *Service) deliver(ctx context.Context, rec *Recommendation) {
	if s.intakeEnabled {
		rec.SessionID = s.openSession(rec.Restaurant)
	}
	if err := s.notifier.NotifySelection(ctx, *rec); err != nil {
		log.Printf("❌ Failed to deliver recommendation: %v", err)
	}
	s.recordSelection(*rec)
}

func (s *Service) recordSelection(rec Recommendation) {
	s.record(storage.Event{
		Kind:       storage.EventSelection,
		Restaurant: rec.Restaurant.Name,
		SelectedBy: string(rec.SelectedBy),
		Note:       rec.Note,
		SessionID:  rec.SessionID,
	})
}

// openSession keeps an active session that already has orders. An empty
// one is superseded by the new restaurant.
func (s *Service) openSession(r restaurant.Restaurant) string {
	sess, created := s.orders.OpenSession(r)
	if !created {
		log.Printf("ℹ️ Keeping order session %s for %s: it already has orders", sess.ID, sess.Restaurant.Name)
	}
	return sess.ID
}

func (s *Service) record(ev storage.Event) {
	if s.recorder == nil {
		return
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = s.now().UTC()
	}
	if err := s.recorder.AppendEvent(ev); err != nil {
		log.Printf("⚠️ Failed to append event: %v", err)
	}
}
