package orders

import (
	"strings"
	"testing"
	"time"

	"lunch-bot/internal/restaurant"
)

func TestGenerateSummary_Empty(t *testing.T) {
	s := Session{Restaurant: restaurant.Restaurant{Name: "Soba"}, Date: wed()}
	if got := GenerateSummary(s, time.UTC); got != noOrdersSummary {
		t.Fatalf("want %q, got %q", noOrdersSummary, got)
	}
}

func TestGenerateSummary_Aggregates(t *testing.T) {
	s := Session{
		Restaurant: restaurant.Restaurant{Name: "Curry House"},
		Date:       wed(),
		Orders: []Order{
			{UserID: "u1", UserName: "Aki", MenuItem: "Katsu curry", Quantity: 2, Notes: "spicy"},
			{UserID: "u2", UserName: "Ben", MenuItem: "Veg curry", Quantity: 1},
			{UserID: "u2", UserName: "Ben", MenuItem: "Katsu curry", Quantity: 1},
		},
	}
	got := GenerateSummary(s, time.UTC)

	for _, want := range []string{
		"Curry House",
		"2025-01-15",
		"People: 2",
		"Total items: 4",
		"• Katsu curry: 3",
		"Aki(2), Ben(1)",
		"• Aki: Katsu curry x2 (spicy)",
		"• Ben: Veg curry x1\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
	if strings.Index(got, "• Katsu curry:") > strings.Index(got, "• Veg curry:") {
		t.Errorf("menu items must keep first-appearance order:\n%s", got)
	}
	if again := GenerateSummary(s, time.UTC); again != got {
		t.Errorf("summary is not deterministic")
	}
}
