package orders

import (
	"fmt"
	"strings"
	"time"
)

const noOrdersSummary = "No orders were placed."

type menuTotal struct {
	item         string
	quantity     int
	contributors []string
}

// GenerateSummary renders the consolidated order text for a session.
// Output is deterministic: menu items and orders keep the order they were added in.
func GenerateSummary(s Session, loc *time.Location) string {
	if len(s.Orders) == 0 {
		return noOrdersSummary
	}
	if loc == nil {
		loc = time.UTC
	}

	var totals []*menuTotal
	byItem := make(map[string]*menuTotal)
	users := make(map[string]bool)
	totalQty := 0
	for _, o := range s.Orders {
		t, ok := byItem[o.MenuItem]
		if !ok {
			t = &menuTotal{item: o.MenuItem}
			byItem[o.MenuItem] = t
			totals = append(totals, t)
		}
		t.quantity += o.Quantity
		t.contributors = append(t.contributors, fmt.Sprintf("%s(%d)", o.UserName, o.Quantity))
		users[o.UserID] = true
		totalQty += o.Quantity
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 %s: order summary\n\n", s.Restaurant.Name)
	fmt.Fprintf(&b, "📅 Date: %s\n", s.Date.In(loc).Format("2006-01-02"))
	fmt.Fprintf(&b, "👥 People: %d\n", len(users))
	fmt.Fprintf(&b, "📦 Total items: %d\n\n", totalQty)

	b.WriteString("📋 By menu item:\n")
	for _, t := range totals {
		fmt.Fprintf(&b, "• %s: %d\n", t.item, t.quantity)
		fmt.Fprintf(&b, "  └ %s\n", strings.Join(t.contributors, ", "))
	}

	b.WriteString("\n👤 Individual orders:\n")
	for _, o := range s.Orders {
		fmt.Fprintf(&b, "• %s: %s x%d", o.UserName, o.MenuItem, o.Quantity)
		if o.Notes != "" {
			fmt.Fprintf(&b, " (%s)", o.Notes)
		}
		b.WriteString("\n")
	}
	return b.String()
}
