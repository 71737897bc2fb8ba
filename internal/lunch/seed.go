package lunch

import (
	"context"
	"fmt"
	"time"

	"lunch-bot/internal/history"
	"lunch-bot/internal/orders"
	"lunch-bot/internal/restaurant"
	"lunch-bot/internal/selection"
)

// SeedWeekHistory backfills one automatic selection for every day from this
// week's Monday up to today. It returns the number of records added.
func (s *Service) SeedWeekHistory(ctx context.Context) (int, error) {
	list, err := s.source.Candidates(ctx)
	if err != nil {
		return 0, fmt.Errorf("load candidates: %w", err)
	}
	if len(list) == 0 {
		return 0, selection.ErrEmptyCandidateList
	}

	now := s.now().In(s.orders.Location())
	monday := now.AddDate(0, 0, 1-int(now.Weekday()))
	added := 0
	for i := 0; i < 5; i++ {
		d := monday.AddDate(0, 0, i)
		if d.After(now) {
			break
		}
		idx := int(s.rnd() * float64(len(list)))
		if idx >= len(list) {
			idx = len(list) - 1
		}
		s.history.Append(list[idx].Name, history.SelectedAuto, d)
		added++
	}
	return added, nil
}

// SeedDemoOrders opens a session for a demo restaurant with three orders.
func (s *Service) SeedDemoOrders() (orders.Session, error) {
	sess := s.orders.CreateSession(restaurant.Restaurant{Name: "Test Diner", Genre: "Set meals"})
	demo := []orders.OrderRequest{
		{UserID: "U123456", UserName: "Taro Tanaka", MenuItem: "Karaage bento", Quantity: 1, Notes: "large rice"},
		{UserID: "U789012", UserName: "Hanako Sato", MenuItem: "Chicken nanban bento", Quantity: 1},
		{UserID: "U345678", UserName: "Jiro Suzuki", MenuItem: "Karaage bento", Quantity: 2, Notes: "extra tartar"},
	}
	for _, req := range demo {
		if _, err := s.orders.AddOrder(sess.ID, req); err != nil {
			return orders.Session{}, fmt.Errorf("add demo order: %w", err)
		}
	}
	out, _ := s.orders.Session(sess.ID)
	return out, nil
}

// Now is the service clock, exposed for handlers that stamp requests.
func (s *Service) Now() time.Time { return s.now() }
