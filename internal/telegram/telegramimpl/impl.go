package telegramimpl

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/social-feed/internal/telegram"
	"github.com/orgball2608/social-feed/pkg/config"
	"github.com/orgball2608/social-feed/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type TelegramImpl struct {
	TgBot   *tgbotapi.BotAPI
	Logger  logger.Logger
	Channel string
}

// New connects the alert bot. Alerts are disabled, not fatal, when the bot is not configured
// or cannot be reached.
func New(opts Opts) *TelegramImpl {
	log := opts.Logger.WithComponent("Telegram")
	impl := &TelegramImpl{Logger: log}

	if opts.Config.Telegram.Token == "" || opts.Config.Telegram.Channel == "" {
		log.Info("Telegram alerts not configured")
		return impl
	}

	tgBot, err := tgbotapi.NewBotAPIWithAPIEndpoint(opts.Config.Telegram.Token, opts.Config.Telegram.ApiEndpoint)
	if err != nil {
		log.Error("Error creating bot, alerts disabled", "Error", err)
		return impl
	}

	impl.TgBot = tgBot
	impl.Channel = "@" + opts.Config.Telegram.Channel
	return impl
}

var _ telegram.Client = (*TelegramImpl)(nil)

// SendMessageToDefaultChannel sends a text message to the configured channel
func (tg *TelegramImpl) SendMessageToDefaultChannel(msg string) {
	if tg.TgBot == nil {
		tg.Logger.Debug("Alert dropped, telegram not configured", "message", msg)
		return
	}

	message := tgbotapi.NewMessageToChannel(tg.Channel, msg)
	message.ParseMode = tgbotapi.ModeMarkdownV2

	_, err := tg.TgBot.Send(message)
	if err != nil {
		tg.Logger.Error("Error sending message to channel",
			"channel", tg.Channel,
			"error", err)
		return
	}

	tg.Logger.Info("Message sent to channel",
		"channel", tg.Channel)
}
