// Package notify sends ops notifications about the complaint pipeline to a
// Telegram chat. It is optional: when no bot token is configured the service
// simply runs without a notifier.
package notify

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const maxDetailLen = 500

// Telegram posts pipeline events to a single ops chat.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegram authorizes the bot and returns the notifier.
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	log.Printf("INFO: ops notifications authorized as @%s", bot.Self.UserName)
	return &Telegram{bot: bot, chatID: chatID}, nil
}

// WorkCompleted announces a successfully scored completion.
func (t *Telegram) WorkCompleted(complaintID, area string, score float64) {
	text := fmt.Sprintf("✅ Complaint %s (%s) completed, cleanliness %.2f%%", complaintID, area, score)
	t.send(text)
}

// AnalysisFailed reports a failed scoring attempt with enough context for
// manual reconciliation.
func (t *Telegram) AnalysisFailed(complaintID, workerID, stage, detail string) {
	if len(detail) > maxDetailLen {
		detail = detail[:maxDetailLen] + "…"
	}
	text := fmt.Sprintf("⚠️ Analysis %s failure for complaint %s (worker %s)\n%s", stage, complaintID, workerID, detail)
	t.send(text)
}

func (t *Telegram) send(text string) {
	msg := tgbotapi.NewMessage(t.chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		log.Printf("WARNING: telegram notification failed: %v", err)
	}
}
