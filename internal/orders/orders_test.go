package orders

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"lunch-bot/internal/calendar"
	"lunch-bot/internal/restaurant"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestManager(at time.Time, opts ...Option) (*Manager, *fakeClock) {
	clk := &fakeClock{t: at}
	n := 0
	gen := func() string {
		n++
		return fmt.Sprintf("%d", n)
	}
	opts = append([]Option{WithClock(clk.now), WithIDGenerator(gen)}, opts...)
	return NewManager(calendar.New(time.UTC), opts...), clk
}

func wed() time.Time { return time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC) }

func TestCreateAndActiveSession(t *testing.T) {
	m, clk := newTestManager(wed())
	if _, ok := m.ActiveSession(); ok {
		t.Fatalf("no session expected yet")
	}
	s := m.CreateSession(restaurant.Restaurant{Name: "Curry House"})
	if !s.IsActive || len(s.Orders) != 0 || s.ID != "session-1" {
		t.Fatalf("unexpected session: %+v", s)
	}
	got, ok := m.ActiveSession()
	if !ok || got.ID != s.ID {
		t.Fatalf("active session not found")
	}
	if !m.HasActiveSession(wed()) {
		t.Fatalf("HasActiveSession should be true for today")
	}

	clk.t = clk.t.AddDate(0, 0, 1)
	if _, ok := m.ActiveSession(); ok {
		t.Fatalf("yesterday's session must not be active today")
	}
}

func TestAddOrder_MergesSameUserAndItem(t *testing.T) {
	m, _ := newTestManager(wed())
	s := m.CreateSession(restaurant.Restaurant{Name: "Curry House"})

	if _, err := m.AddOrder(s.ID, OrderRequest{UserID: "u1", UserName: "Aki", MenuItem: "Katsu curry", Quantity: 1, Notes: "spicy"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	merged, err := m.AddOrder(s.ID, OrderRequest{UserID: "u1", UserName: "Aki", MenuItem: "Katsu curry", Quantity: 2})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if merged.Quantity != 3 || merged.Notes != "spicy" {
		t.Fatalf("want qty 3 with notes kept, got %+v", merged)
	}

	merged, _ = m.AddOrder(s.ID, OrderRequest{UserID: "u1", MenuItem: "Katsu curry", Quantity: 1, Notes: "mild"})
	if merged.Notes != "mild" {
		t.Fatalf("non-empty notes should overwrite, got %q", merged.Notes)
	}

	got, _ := m.Session(s.ID)
	if len(got.Orders) != 1 {
		t.Fatalf("want 1 merged order, got %d", len(got.Orders))
	}
}

func TestAddOrder_ConcurrentMerge(t *testing.T) {
	m, _ := newTestManager(wed())
	s := m.CreateSession(restaurant.Restaurant{Name: "Curry House"})

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.AddOrder(s.ID, OrderRequest{UserID: "u1", UserName: "Aki", MenuItem: "Katsu curry", Quantity: 1}); err != nil {
				t.Errorf("add: %v", err)
			}
		}()
	}
	wg.Wait()

	got, _ := m.Session(s.ID)
	if len(got.Orders) != 1 {
		t.Fatalf("want 1 merged order, got %d", len(got.Orders))
	}
	if got.Orders[0].Quantity != n {
		t.Fatalf("want quantity %d, got %d", n, got.Orders[0].Quantity)
	}
}

func TestOpenSession(t *testing.T) {
	m, _ := newTestManager(wed())

	first, created := m.OpenSession(restaurant.Restaurant{Name: "Soba"})
	if !created || !first.IsActive {
		t.Fatalf("first open should create an active session: %+v", first)
	}

	second, created := m.OpenSession(restaurant.Restaurant{Name: "Curry House"})
	if !created || second.ID == first.ID || second.Restaurant.Name != "Curry House" {
		t.Fatalf("empty session should be replaced, got %+v", second)
	}
	old, _ := m.Session(first.ID)
	if old.IsActive || old.ClosedAt == nil || old.Summary == "" {
		t.Fatalf("superseded session should be closed with a summary: %+v", old)
	}

	m.AddOrder(second.ID, OrderRequest{UserID: "u1", MenuItem: "Katsu curry"})
	kept, created := m.OpenSession(restaurant.Restaurant{Name: "Ramen"})
	if created || kept.ID != second.ID || kept.Restaurant.Name != "Curry House" {
		t.Fatalf("session with orders should be kept, got %+v created=%v", kept, created)
	}
}

func TestOpenSession_ConcurrentLeavesOneActive(t *testing.T) {
	m, _ := newTestManager(wed())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.OpenSession(restaurant.Restaurant{Name: fmt.Sprintf("R%d", i)})
		}(i)
	}
	wg.Wait()

	active := 0
	for _, s := range m.All() {
		if s.IsActive {
			active++
		}
	}
	if active != 1 {
		t.Fatalf("want exactly 1 active session, got %d", active)
	}
	if len(m.All()) != 10 {
		t.Fatalf("want 10 sessions in total, got %d", len(m.All()))
	}
}

func TestAddOrder_DifferentItemsStaySeparate(t *testing.T) {
	m, _ := newTestManager(wed())
	s := m.CreateSession(restaurant.Restaurant{Name: "Soba"})
	m.AddOrder(s.ID, OrderRequest{UserID: "u1", MenuItem: "Zaru soba", Quantity: 0})
	m.AddOrder(s.ID, OrderRequest{UserID: "u1", MenuItem: "Tempura soba"})
	m.AddOrder(s.ID, OrderRequest{UserID: "u2", MenuItem: "Zaru soba"})

	got, _ := m.Session(s.ID)
	if len(got.Orders) != 3 {
		t.Fatalf("want 3 orders, got %d", len(got.Orders))
	}
	if got.Orders[0].Quantity != 1 {
		t.Fatalf("zero quantity should default to 1, got %d", got.Orders[0].Quantity)
	}
}

func TestAddOrder_Errors(t *testing.T) {
	m, _ := newTestManager(wed())
	if _, err := m.AddOrder("missing", OrderRequest{UserID: "u1", MenuItem: "x"}); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("want ErrSessionNotFound, got %v", err)
	}

	s := m.CreateSession(restaurant.Restaurant{Name: "Soba"})
	if _, err := m.CloseSession(s.ID); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := m.AddOrder(s.ID, OrderRequest{UserID: "u1", MenuItem: "x"}); !errors.Is(err, ErrSessionInactive) {
		t.Fatalf("want ErrSessionInactive, got %v", err)
	}
}

func TestRemoveOrder(t *testing.T) {
	m, _ := newTestManager(wed())
	s := m.CreateSession(restaurant.Restaurant{Name: "Soba"})
	o, _ := m.AddOrder(s.ID, OrderRequest{UserID: "u1", MenuItem: "Zaru soba"})

	if m.RemoveOrder("missing", o.ID) {
		t.Fatalf("unknown session must return false")
	}
	if m.RemoveOrder(s.ID, "nope") {
		t.Fatalf("unknown order must return false")
	}
	if !m.RemoveOrder(s.ID, o.ID) {
		t.Fatalf("remove failed")
	}
	got, _ := m.Session(s.ID)
	if len(got.Orders) != 0 {
		t.Fatalf("order still present")
	}
}

func TestCloseSession(t *testing.T) {
	m, clk := newTestManager(wed())
	s := m.CreateSession(restaurant.Restaurant{Name: "Curry House"})
	m.AddOrder(s.ID, OrderRequest{UserID: "u1", UserName: "Aki", MenuItem: "Katsu curry"})

	clk.t = clk.t.Add(time.Hour)
	closed, err := m.CloseSession(s.ID)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.IsActive || closed.ClosedAt == nil || !closed.ClosedAt.Equal(clk.t) {
		t.Fatalf("unexpected closed session: %+v", closed)
	}
	if !strings.Contains(closed.Summary, "Katsu curry") {
		t.Fatalf("summary missing item: %q", closed.Summary)
	}
	if _, ok := m.ActiveSession(); ok {
		t.Fatalf("closed session must not be active")
	}

	if _, err := m.CloseSession("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("want ErrSessionNotFound, got %v", err)
	}
	// closing twice recomputes the summary
	if again, err := m.CloseSession(s.ID); err != nil || again.Summary != closed.Summary {
		t.Fatalf("re-close: %v %q", err, again.Summary)
	}
}

func TestSessionCopiesAreIsolated(t *testing.T) {
	m, _ := newTestManager(wed())
	s := m.CreateSession(restaurant.Restaurant{Name: "Soba"})
	m.AddOrder(s.ID, OrderRequest{UserID: "u1", MenuItem: "Zaru soba"})

	got, _ := m.Session(s.ID)
	got.Orders[0].Quantity = 99
	again, _ := m.Session(s.ID)
	if again.Orders[0].Quantity != 1 {
		t.Fatalf("internal state mutated via copy")
	}
}

func TestIsIntakeOpen(t *testing.T) {
	m, _ := newTestManager(wed())
	cases := []struct {
		at   time.Time
		want bool
	}{
		{time.Date(2025, 1, 15, 10, 59, 0, 0, time.UTC), true},
		{time.Date(2025, 1, 15, 11, 0, 0, 0, time.UTC), false},
		{time.Date(2025, 1, 18, 9, 0, 0, 0, time.UTC), false}, // Saturday
		{time.Date(2025, 1, 13, 9, 0, 0, 0, time.UTC), false}, // Coming of Age Day
	}
	for _, tc := range cases {
		if got := m.IsIntakeOpen(tc.at); got != tc.want {
			t.Errorf("%s: want %v, got %v", tc.at, tc.want, got)
		}
	}

	late, _ := newTestManager(wed(), WithCutoffHour(13))
	if !late.IsIntakeOpen(time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("custom cutoff not applied")
	}
}

func TestMenuMessages(t *testing.T) {
	m, _ := newTestManager(wed())
	if m.AddMenuMessage("missing", MenuMessage{Text: "x"}) {
		t.Fatalf("unknown session must be rejected")
	}
	s := m.CreateSession(restaurant.Restaurant{Name: "Soba"})
	if !m.AddMenuMessage(s.ID, MenuMessage{UserName: "Aki", Text: "Today: tempura set"}) {
		t.Fatalf("add menu message failed")
	}
	msgs := m.TodayMenuMessages()
	if len(msgs) != 1 || msgs[0].RecordedAt.IsZero() {
		t.Fatalf("unexpected messages: %+v", msgs)
	}
	m.CloseSession(s.ID)
	if len(m.TodayMenuMessages()) != 0 {
		t.Fatalf("closed session should expose no menu messages")
	}
}

func TestAllAndClear(t *testing.T) {
	m, _ := newTestManager(wed())
	first := m.CreateSession(restaurant.Restaurant{Name: "A"})
	second := m.CreateSession(restaurant.Restaurant{Name: "B"})
	all := m.All()
	if len(all) != 2 || all[0].ID != second.ID || all[1].ID != first.ID {
		t.Fatalf("want newest first, got %+v", all)
	}
	m.Clear()
	if len(m.All()) != 0 {
		t.Fatalf("clear did not remove sessions")
	}
}
