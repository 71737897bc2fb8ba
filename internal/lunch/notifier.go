package lunch

import (
	"context"
	"log"

	"lunch-bot/internal/orders"
)

// Notifier delivers workflow results to the chat.
type Notifier interface {
	NotifySelection(ctx context.Context, rec Recommendation) error
	NotifySummary(ctx context.Context, session orders.Session) error
}

// LogNotifier writes notifications to the process log. It is used when no
// chat is configured.
type LogNotifier struct{}

func (LogNotifier) NotifySelection(_ context.Context, rec Recommendation) error {
	log.Printf("🍽️ Today's lunch: %s (%s)", rec.Restaurant.Name, rec.SelectedBy)
	if rec.Note != "" {
		log.Printf("   %s", rec.Note)
	}
	return nil
}

func (LogNotifier) NotifySummary(_ context.Context, session orders.Session) error {
	log.Printf("📋 Orders collected for %s:\n%s", session.Restaurant.Name, session.Summary)
	return nil
}
