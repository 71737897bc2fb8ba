package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"lunch-bot/internal/lunch"
	"lunch-bot/internal/orders"
)

var errNoChat = errors.New("lunch chat id is not configured")

// NotifySelection posts the recommendation with approve/reject buttons.
func (b *Bot) NotifySelection(_ context.Context, rec lunch.Recommendation) error {
	if b.chatID == 0 {
		return errNoChat
	}
	msg := tgbotapi.NewMessage(b.chatID, b.formatRecommendation(rec))
	msg.ParseMode = b.parseModeValue()
	msg.DisableWebPagePreview = true
	msg.ReplyMarkup = recommendationKeyboard(rec.SessionID != "")
	if _, err := b.s.Send(msg); err != nil {
		return fmt.Errorf("send recommendation: %w", err)
	}
	return nil
}

// NotifySummary posts the consolidated orders of a closed session.
func (b *Bot) NotifySummary(_ context.Context, session orders.Session) error {
	if b.chatID == 0 {
		return errNoChat
	}
	msg := tgbotapi.NewMessage(b.chatID, b.escapeIfNeeded(session.Summary))
	msg.ParseMode = b.parseModeValue()
	if _, err := b.s.Send(msg); err != nil {
		return fmt.Errorf("send summary: %w", err)
	}
	return nil
}

func (b *Bot) formatRecommendation(rec lunch.Recommendation) string {
	r := rec.Restaurant
	var sb strings.Builder
	sb.WriteString("🍽️ Today's lunch pick 🍽️\n\n")
	name := r.Name
	if name == "" {
		name = "Unknown"
	}
	sb.WriteString(b.bold(name) + "\n")
	if r.Genre != "" {
		sb.WriteString("🍴 Genre: " + b.escapeIfNeeded(r.Genre) + "\n")
	}
	if r.Address != "" {
		sb.WriteString("📍 Address: " + b.escapeIfNeeded(r.Address) + "\n")
	}
	if r.Description != "" {
		sb.WriteString("ℹ️ " + b.escapeIfNeeded(r.Description) + "\n")
	}
	if r.URL != "" {
		sb.WriteString("🔗 " + b.escapeIfNeeded(r.URL) + "\n")
	}
	if r.OrderURL != "" {
		sb.WriteString("🛒 Menu: " + b.escapeIfNeeded(r.OrderURL) + "\n")
	}
	if r.Phone != "" {
		sb.WriteString("📞 " + b.escapeIfNeeded(r.Phone) + "\n")
	}
	if rec.Note != "" {
		sb.WriteString("\n" + b.escapeIfNeeded(rec.Note) + "\n")
	}
	if rec.SessionID != "" {
		sb.WriteString("\n📝 Orders are open: " + b.escapeIfNeeded("/order <item> [xN] [; notes]") + "\n")
	}
	return sb.String()
}

func recommendationKeyboard(withCollect bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👍 Sounds good", approveCmd),
			tgbotapi.NewInlineKeyboardButtonData("👎 Pick another", rejectCmd),
		),
	}
	if withCollect {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 Collect orders", collectCmd),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
