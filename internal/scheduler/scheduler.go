package scheduler

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// BusinessCalendar decides whether a scheduled job runs on a given day.
type BusinessCalendar interface {
	IsBusinessDay(t time.Time) bool
	Location() *time.Location
}

type Job func(ctx context.Context) error

// Scheduler runs the lunch and collect jobs on business days only.
type Scheduler struct {
	cron        *cron.Cron
	cal         BusinessCalendar
	ctx         context.Context
	cancel      context.CancelFunc
	now         func() time.Time
	lunchSpec   string
	collectSpec string
	lunchFunc   Job
	collectFunc Job
}

func New(cal BusinessCalendar, lunchSpec, collectSpec string) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron:        cron.New(cron.WithLocation(cal.Location())),
		cal:         cal,
		ctx:         ctx,
		cancel:      cancel,
		now:         time.Now,
		lunchSpec:   lunchSpec,
		collectSpec: collectSpec,
	}
}

// SetLunchFunction sets the job that posts the daily recommendation.
func (s *Scheduler) SetLunchFunction(f Job) {
	s.lunchFunc = f
}

// SetCollectFunction sets the job that closes the order session.
func (s *Scheduler) SetCollectFunction(f Job) {
	s.collectFunc = f
}

func (s *Scheduler) Start() error {
	if s.lunchFunc == nil && s.collectFunc == nil {
		log.Println("⚠️ No jobs set, scheduler will not run")
		return nil
	}

	if s.lunchFunc != nil && s.lunchSpec != "" {
		if _, err := s.cron.AddFunc(s.lunchSpec, s.wrap("lunch recommendation", s.lunchFunc)); err != nil {
			return err
		}
		log.Printf("📅 Lunch recommendation scheduled: %q (%s)", s.lunchSpec, s.cal.Location())
	}
	if s.collectFunc != nil && s.collectSpec != "" {
		if _, err := s.cron.AddFunc(s.collectSpec, s.wrap("order collection", s.collectFunc)); err != nil {
			return err
		}
		log.Printf("📅 Order collection scheduled: %q (%s)", s.collectSpec, s.cal.Location())
	}

	s.cron.Start()
	return nil
}

// wrap skips non-business days and logs job failures.
func (s *Scheduler) wrap(name string, job Job) func() {
	return func() {
		s.run(name, job)
	}
}

func (s *Scheduler) run(name string, job Job) bool {
	now := s.now().In(s.cal.Location())
	if !s.cal.IsBusinessDay(now) {
		log.Printf("😴 Skipping %s: %s is not a business day", name, now.Format("2006-01-02"))
		return false
	}
	log.Printf("🕘 Triggered %s", name)
	if err := job(s.ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("❌ %s failed: %v", name, err)
	}
	return true
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	if s.cancel != nil {
		s.cancel()
	}
	log.Println("📅 Scheduler stopped")
}

func (s *Scheduler) IsRunning() bool {
	return s.cron != nil && len(s.cron.Entries()) > 0
}
