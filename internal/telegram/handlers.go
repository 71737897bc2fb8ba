package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"lunch-bot/internal/analytics"
	"lunch-bot/internal/candidates"
	"lunch-bot/internal/lunch"
	"lunch-bot/internal/orders"
	"lunch-bot/internal/selection"
)

const helpText = `🍽️ Lunch bot commands:
/lunch - recommend a restaurant
/pick - random pick from the whole list
/order <item> [xN] [; notes] - place an order
/cancel <order id> - cancel an order
/orders - show current orders
/collect - close orders and post the summary
/history - recent selections
/stats - selection counts
/today - why some restaurants are excluded today`

const historyLimit = 10

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	log.Printf("Command /%s from %s", msg.Command(), displayName(msg.From))

	switch msg.Command() {
	case "start", "help":
		b.sendMessage(chatID, b.escapeIfNeeded(helpText))
	case "lunch":
		if b.ctrl == nil {
			return
		}
		if _, err := b.ctrl.Recommend(ctx, b.now()); err != nil {
			b.sendMessage(chatID, b.escapeIfNeeded(selectionErrorText(err)))
		}
	case "pick":
		if b.ctrl == nil {
			return
		}
		if _, err := b.ctrl.PickManual(ctx); err != nil {
			b.sendMessage(chatID, b.escapeIfNeeded(selectionErrorText(err)))
		}
	case "order":
		b.handleOrder(msg)
	case "cancel":
		b.handleCancel(msg)
	case "orders":
		b.handleOrders(chatID)
	case "collect":
		b.collect(ctx, chatID)
	case "history":
		b.handleHistory(chatID)
	case "stats":
		b.sendMessage(chatID, b.escapeIfNeeded(analytics.Stats(b.history).GenerateReportSummary()))
	case "today":
		report := analytics.Analyze(b.history, b.now(), b.desk.Location()).GenerateReportSummary()
		b.sendMessage(chatID, b.escapeIfNeeded(report))
	default:
		b.sendMessage(chatID, b.escapeIfNeeded("Unknown command. Try /help"))
	}
}

// openSession returns today's session if orders can be taken right now.
func (b *Bot) openSession(chatID int64) (orders.Session, bool) {
	if b.ctrl != nil && !b.ctrl.IntakeEnabled() {
		b.sendMessage(chatID, b.escapeIfNeeded("Order intake is disabled."))
		return orders.Session{}, false
	}
	if !b.desk.IsIntakeOpen(b.now()) {
		b.sendMessage(chatID, b.escapeIfNeeded("⏰ Orders are closed for today."))
		return orders.Session{}, false
	}
	s, ok := b.desk.ActiveSession()
	if !ok {
		b.sendMessage(chatID, b.escapeIfNeeded("There is no open order session. Use /lunch first."))
		return orders.Session{}, false
	}
	return s, true
}

func (b *Bot) handleOrder(msg *tgbotapi.Message) {
	req, err := parseOrderArgs(msg.CommandArguments())
	if err != nil {
		b.sendMessage(msg.Chat.ID, b.escapeIfNeeded(err.Error()))
		return
	}
	s, ok := b.openSession(msg.Chat.ID)
	if !ok {
		return
	}
	if msg.From != nil {
		req.UserID = strconv.FormatInt(msg.From.ID, 10)
	}
	req.UserName = displayName(msg.From)
	req.ChannelID = strconv.FormatInt(msg.Chat.ID, 10)

	o, err := b.desk.AddOrder(s.ID, req)
	if err != nil {
		b.sendMessage(msg.Chat.ID, b.escapeIfNeeded(fmt.Sprintf("Could not place the order: %v", err)))
		return
	}
	text := fmt.Sprintf("✅ %s: %s x%d", o.UserName, o.MenuItem, o.Quantity)
	if o.Notes != "" {
		text += fmt.Sprintf(" (%s)", o.Notes)
	}
	text += fmt.Sprintf("\nOrder ID: %s", o.ID)
	b.sendMessage(msg.Chat.ID, b.escapeIfNeeded(text))
}

func (b *Bot) handleCancel(msg *tgbotapi.Message) {
	orderID := strings.TrimSpace(msg.CommandArguments())
	if orderID == "" {
		b.sendMessage(msg.Chat.ID, b.escapeIfNeeded("Usage: /cancel <order id>"))
		return
	}
	s, ok := b.desk.ActiveSession()
	if !ok || !b.desk.RemoveOrder(s.ID, orderID) {
		b.sendMessage(msg.Chat.ID, b.escapeIfNeeded("Order not found."))
		return
	}
	b.sendMessage(msg.Chat.ID, b.escapeIfNeeded("🗑️ Order cancelled."))
}

func (b *Bot) handleOrders(chatID int64) {
	s, ok := b.desk.ActiveSession()
	if !ok {
		b.sendMessage(chatID, b.escapeIfNeeded("There is no open order session."))
		return
	}
	text := b.desk.GenerateSummary(s)
	if menus := b.desk.TodayMenuMessages(); len(menus) > 0 {
		text += fmt.Sprintf("\n💬 Menu posts today: %d", len(menus))
	}
	b.sendMessage(chatID, b.escapeIfNeeded(text))
}

func (b *Bot) collect(ctx context.Context, chatID int64) {
	if b.ctrl == nil {
		return
	}
	if _, err := b.ctrl.CollectOrders(ctx); err != nil {
		if errors.Is(err, lunch.ErrNoActiveSession) {
			b.sendMessage(chatID, b.escapeIfNeeded("There is no open order session."))
			return
		}
		log.Printf("❌ Failed to collect orders: %v", err)
		b.sendMessage(chatID, b.escapeIfNeeded("Failed to collect orders."))
	}
}

func (b *Bot) handleHistory(chatID int64) {
	records := b.history.All()
	if len(records) == 0 {
		b.sendMessage(chatID, b.escapeIfNeeded("No selections yet."))
		return
	}
	if len(records) > historyLimit {
		records = records[:historyLimit]
	}
	loc := b.desk.Location()
	var sb strings.Builder
	sb.WriteString("🕘 Recent selections:\n")
	for _, r := range records {
		fmt.Fprintf(&sb, "- %s %s (%s)\n", r.SelectedAt.In(loc).Format("2006-01-02 Mon"), r.RestaurantName, r.SelectedBy)
	}
	b.sendMessage(chatID, b.escapeIfNeeded(sb.String()))
}

// handleMessage records plain messages as menu postings while intake is open.
func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	if msg.Chat == nil || msg.Chat.ID != b.chatID || strings.TrimSpace(msg.Text) == "" {
		return
	}
	if b.ctrl != nil && !b.ctrl.IntakeEnabled() {
		return
	}
	if !b.desk.IsIntakeOpen(b.now()) {
		return
	}
	s, ok := b.desk.ActiveSession()
	if !ok {
		return
	}
	userID := ""
	if msg.From != nil {
		userID = strconv.FormatInt(msg.From.ID, 10)
	}
	b.desk.AddMenuMessage(s.ID, orders.MenuMessage{
		UserID:     userID,
		UserName:   displayName(msg.From),
		Text:       msg.Text,
		RecordedAt: b.now(),
	})
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if b.ctrl == nil || cb.Message == nil {
		return
	}
	who := displayName(cb.From)
	chatID := cb.Message.Chat.ID

	switch cb.Data {
	case approveCmd:
		b.ctrl.Approve(ctx, who)
		b.answerCallback(cb, "👍")
		b.sendMessage(chatID, b.escapeIfNeeded(fmt.Sprintf("%s likes this place! 👍", who)))
	case rejectCmd:
		b.answerCallback(cb, "Picking another place…")
		if _, err := b.ctrl.Reject(ctx, who); err != nil {
			b.sendMessage(chatID, b.escapeIfNeeded(selectionErrorText(err)))
			return
		}
		b.sendMessage(chatID, b.escapeIfNeeded(fmt.Sprintf("🔄 %s asked for another place.", who)))
	case collectCmd:
		b.answerCallback(cb, "Collecting orders…")
		b.collect(ctx, chatID)
	default:
		b.answerCallback(cb, "")
	}
}

func (b *Bot) answerCallback(cb *tgbotapi.CallbackQuery, text string) {
	if _, err := b.s.Request(tgbotapi.NewCallback(cb.ID, text)); err != nil {
		log.Printf("failed to answer callback: %v", err)
	}
}

func selectionErrorText(err error) string {
	switch {
	case errors.Is(err, candidates.ErrNoCandidates), errors.Is(err, selection.ErrEmptyCandidateList):
		return "😢 No restaurants are available to choose from."
	default:
		log.Printf("❌ Selection failed: %v", err)
		return "Sorry, something went wrong while choosing a restaurant."
	}
}

var errOrderUsage = errors.New("usage: /order <item> [xN] [; notes]")

// parseOrderArgs parses "<item> [xN] [; notes]".
func parseOrderArgs(args string) (orders.OrderRequest, error) {
	item, notes, _ := strings.Cut(args, ";")
	item = strings.TrimSpace(item)
	if item == "" {
		return orders.OrderRequest{}, errOrderUsage
	}

	req := orders.OrderRequest{Quantity: 1, Notes: strings.TrimSpace(notes)}
	if i := strings.LastIndexAny(item, " \t"); i > 0 {
		last := strings.ToLower(item[i+1:])
		if strings.HasPrefix(last, "x") || strings.HasPrefix(last, "×") {
			last = strings.TrimPrefix(strings.TrimPrefix(last, "x"), "×")
			if n, err := strconv.Atoi(last); err == nil {
				if n < 1 {
					return orders.OrderRequest{}, errOrderUsage
				}
				req.Quantity = n
				item = strings.TrimSpace(item[:i])
			}
		}
	}
	req.MenuItem = item
	return req, nil
}
