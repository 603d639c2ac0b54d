package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/sukalov/chordsheet/internal/logger"
)

// Messenger is the part of the bot handlers talk to.
type Messenger interface {
	SendMessage(chatID int64, text string) error
	SendHTML(chatID int64, text string) error
	SendMessageWithButtons(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) error
	SendDocument(chatID int64, name string, data []byte, caption string) error
}

type HandlerFunc func(m Messenger, update tgbotapi.Update) error

// Handlers routes updates. Callback data of the form "name:arg" is routed
// by name.
type Handlers struct {
	Commands  map[string]HandlerFunc
	Messages  []HandlerFunc
	Callbacks map[string]HandlerFunc
}

// Bot represents a configurable Telegram bot
type Bot struct {
	Client *tgbotapi.BotAPI
	name   string
}

// New creates a new bot instance
func New(name, token string) (*Bot, error) {
	botClient, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Bot{
		Client: botClient,
		name:   name,
	}, nil
}

// Start processes updates until ctx is done.
func (b *Bot) Start(ctx context.Context, handlers Handlers) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.Client.GetUpdatesChan(updateConfig)

	logger.Info("bot authorized", "bot", b.name, "account", b.Client.Self.UserName)

	for {
		select {
		case update := <-updates:
			go func() {
				if err := handlers.Dispatch(b, update); err != nil {
					logger.Error("handler error", "bot", b.name, "error", err)
				}
			}()
		case <-ctx.Done():
			b.Client.StopReceivingUpdates()
			return
		}
	}
}

// Dispatch runs the handler matching update.
func (h Handlers) Dispatch(m Messenger, update tgbotapi.Update) error {
	if update.Message != nil && update.Message.IsCommand() {
		if handler, exists := h.Commands[update.Message.Command()]; exists {
			return handler(m, update)
		}
	}

	if update.CallbackQuery != nil {
		name, _, _ := strings.Cut(update.CallbackQuery.Data, ":")
		if handler, exists := h.Callbacks[name]; exists {
			return handler(m, update)
		}
		return nil
	}

	for _, handler := range h.Messages {
		if err := handler(m, update); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bot) SendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := b.Client.Send(msg)
	return err
}

func (b *Bot) SendHTML(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	_, err := b.Client.Send(msg)
	return err
}

func (b *Bot) SendMessageWithButtons(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	_, err := b.Client.Send(msg)
	return err
}

func (b *Bot) SendDocument(chatID int64, name string, data []byte, caption string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	doc.Caption = caption
	_, err := b.Client.Send(doc)
	return err
}
