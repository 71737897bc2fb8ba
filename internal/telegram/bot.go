package telegram

import (
	"context"
	"html"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"lunch-bot/internal/analytics"
	"lunch-bot/internal/history"
	"lunch-bot/internal/lunch"
	"lunch-bot/internal/orders"
)

const (
	approveCmd = "lunch_approve"
	rejectCmd  = "lunch_reject"
	collectCmd = "lunch_collect"
)

// Controller receives the actions triggered from the chat.
type Controller interface {
	Recommend(ctx context.Context, target time.Time) (lunch.Recommendation, error)
	PickManual(ctx context.Context) (lunch.Recommendation, error)
	Approve(ctx context.Context, actor string)
	Reject(ctx context.Context, actor string) (lunch.Recommendation, error)
	CollectOrders(ctx context.Context) (orders.Session, error)
	IntakeEnabled() bool
}

// OrderDesk is the order session API used by chat commands.
type OrderDesk interface {
	ActiveSession() (orders.Session, bool)
	AddOrder(sessionID string, req orders.OrderRequest) (orders.Order, error)
	RemoveOrder(sessionID, orderID string) bool
	IsIntakeOpen(now time.Time) bool
	AddMenuMessage(sessionID string, msg orders.MenuMessage) bool
	TodayMenuMessages() []orders.MenuMessage
	GenerateSummary(s orders.Session) string
	Location() *time.Location
}

// HistoryView is the selection history as shown by /history, /stats and /today.
type HistoryView interface {
	analytics.HistoryReader
	All() []history.Record
}

type Bot struct {
	api       *tgbotapi.BotAPI
	s         sender
	chatID    int64
	parseMode string
	ctrl      Controller
	desk      OrderDesk
	history   HistoryView
	now       func() time.Time
}

func New(botToken string, chatID int64, parseMode string, desk OrderDesk, hist HistoryView) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	log.Printf("🤖 Authorized on account @%s", api.Self.UserName)
	return &Bot{
		api:       api,
		s:         botAPISender{api: api},
		chatID:    chatID,
		parseMode: parseMode,
		desk:      desk,
		history:   hist,
		now:       time.Now,
	}, nil
}

// SetController attaches the workflow once it is built; the workflow itself
// needs the bot as its notifier.
func (b *Bot) SetController(ctrl Controller) {
	b.ctrl = ctrl
}

// Start polls updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	case update.Message != nil:
		b.handleMessage(update.Message)
	}
}

func (b *Bot) parseModeValue() string {
	switch strings.ToLower(b.parseMode) {
	case "html":
		return tgbotapi.ModeHTML
	case "markdown":
		return tgbotapi.ModeMarkdown
	case "markdownv2":
		return tgbotapi.ModeMarkdownV2
	default:
		return ""
	}
}

func (b *Bot) escapeIfNeeded(s string) string {
	if b.parseModeValue() == tgbotapi.ModeHTML {
		return html.EscapeString(s)
	}
	return s
}

func (b *Bot) bold(s string) string {
	if b.parseModeValue() == tgbotapi.ModeHTML {
		return "<b>" + html.EscapeString(s) + "</b>"
	}
	return s
}

// sendMessage sends text as is; callers escape user content.
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = b.parseModeValue()
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}

func displayName(u *tgbotapi.User) string {
	if u == nil {
		return "someone"
	}
	if u.UserName != "" {
		return "@" + u.UserName
	}
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return "someone"
	}
	return name
}
