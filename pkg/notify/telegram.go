// Package notify sends optional admin alerts over Telegram. With no token
// configured the notifier is a no-op, so the gate keeps working without it.
package notify

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *logrus.Logger
}

// NewTelegramNotifier builds a notifier. An empty token or zero chat ID
// yields a disabled notifier rather than an error.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	n := &TelegramNotifier{chatID: chatID, logger: logger}

	if token == "" || chatID == 0 {
		logger.Info("Telegram alerts disabled, no token or chat ID configured")
		return n, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	n.bot = bot

	logger.WithField("account", bot.Self.UserName).Info("Telegram alerts enabled")
	return n, nil
}

// Enabled reports whether alerts will actually be delivered.
func (n *TelegramNotifier) Enabled() bool {
	return n != nil && n.bot != nil
}

// Notify delivers one alert message. Failures are logged, never propagated;
// alerting must not disturb the gate flow.
func (n *TelegramNotifier) Notify(text string) {
	if n == nil || n.bot == nil {
		return
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		n.logger.WithError(err).Warn("Failed to send Telegram alert")
	}
}
