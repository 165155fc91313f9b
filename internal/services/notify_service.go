package services

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"jobmarket/internal/models"
)

// NotifyService pushes operational events to the configured admin channel.
// Delivery is best-effort; callers never fail a request on a notify error.
type NotifyService interface {
	JobPublished(job *models.Job)
}

type telegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	dryRun bool
}

// NewTelegramNotifier returns a no-op notifier when no bot token is
// configured, so callers can always call through unconditionally.
func NewTelegramNotifier(botToken string, chatID int64, dryRun bool) NotifyService {
	if botToken == "" || chatID == 0 {
		log.Printf("[notify] telegram disabled (no bot token / chat id)")
		return &telegramNotifier{dryRun: true}
	}
	if dryRun {
		return &telegramNotifier{chatID: chatID, dryRun: true}
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		log.Printf("[notify] telegram init failed, falling back to dry-run: %v", err)
		return &telegramNotifier{chatID: chatID, dryRun: true}
	}
	return &telegramNotifier{bot: bot, chatID: chatID}
}

func (n *telegramNotifier) JobPublished(job *models.Job) {
	text := fmt.Sprintf("New job posted: %s (employer %s)", job.Title, job.EmployerUsername)
	if n.dryRun || n.bot == nil {
		log.Printf("[notify][dry-run] %s", text)
		return
	}
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		log.Printf("[notify] telegram send failed: %v", err)
	}
}
