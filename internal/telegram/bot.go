package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"mizman/internal/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// botAPI is the part of tgbotapi.BotAPI the bot uses.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type Bot struct {
	bot      botAPI
	username string
	chatID   int64
	services *services.ServiceManager
	handlers map[string]func(context.Context, []string)
}

func NewBot(token string, chatID int64, serviceManager *services.ServiceManager) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	bot := newBot(api, api.Self.UserName, chatID, serviceManager)
	log.Printf("🤖 Bot initialized: %s", api.Self.UserName)
	return bot, nil
}

func newBot(api botAPI, username string, chatID int64, serviceManager *services.ServiceManager) *Bot {
	b := &Bot{
		bot:      api,
		username: username,
		chatID:   chatID,
		services: serviceManager,
		handlers: make(map[string]func(context.Context, []string)),
	}
	b.registerHandlers()
	return b
}

func (b *Bot) registerHandlers() {
	b.handlers["/start"] = b.handleHelp
	b.handlers["/help"] = b.handleHelp
	b.handlers["/today"] = b.handleToday
	b.handlers["/spirit"] = b.handleSpirit
	b.handlers["/tradition"] = b.handleTradition
	b.handlers["/gym"] = b.handleGym
	b.handlers["/calendar"] = b.handleCalendar
	b.handlers["/streak"] = b.handleStreak
	b.handlers["/relapse"] = b.handleRelapse
	b.handlers["/screentime"] = b.handleScreenTime
	b.handlers["/sync"] = b.handleSyncScreenTime
	b.handlers["/assets"] = b.handleAssets
	b.handlers["/asset"] = b.handleAddAsset
	b.handlers["/delasset"] = b.handleDeleteAsset
	b.handlers["/networth"] = b.handleNetWorth
	b.handlers["/nationality"] = b.handleNationality
	b.handlers["/currency"] = b.handleCurrency
	b.handlers["/theme"] = b.handleTheme
	b.handlers["/dashboard"] = b.handleDashboard
}

func (b *Bot) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(b.chatID, text)
	msg.ParseMode = "HTML"
	_, err := b.bot.Send(msg)
	return err
}

func (b *Bot) sendWithKeyboard(text string, keyboard tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(b.chatID, text)
	msg.ParseMode = "HTML"
	msg.ReplyMarkup = keyboard
	_, err := b.bot.Send(msg)
	return err
}

func (b *Bot) GetUsername() string {
	return b.username
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
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
	if update.CallbackQuery != nil {
		b.handleCallbackQuery(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		return
	}

	if update.Message.Chat == nil || update.Message.Chat.ID != b.chatID {
		log.Printf("⛔ Ignoring message from foreign chat")
		return
	}

	b.handleMessage(ctx, update.Message)
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	parts := strings.Fields(msg.Text)
	if len(parts) == 0 || !strings.HasPrefix(parts[0], "/") {
		return
	}

	// "/gym@mizman_bot" in group chats
	command, _, _ := strings.Cut(parts[0], "@")
	if handler, exists := b.handlers[strings.ToLower(command)]; exists {
		handler(ctx, parts[1:])
		return
	}
	b.SendMessageOrLogError("❌ Unknown command. Use /help")
}

func (b *Bot) handleCallbackQuery(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	defer func() {
		if _, err := b.bot.Request(tgbotapi.NewCallback(callback.ID, "✅")); err != nil {
			log.Printf("⚠️ Callback ack failed: %v", err)
		}
	}()

	if callback.Message == nil || callback.Message.Chat == nil || callback.Message.Chat.ID != b.chatID {
		return
	}

	data := callback.Data
	log.Printf("Received callback: %s", data)

	switch {
	case data == relapseConfirm:
		b.handleRelapseConfirm(ctx, callback.Message.MessageID)
	case data == relapseCancel:
		b.safeDeleteMessage(callback.Message.MessageID)
		b.SendMessageOrLogError("👍 Streak kept")
	case strings.HasPrefix(data, spiritTogglePrefix):
		b.handleSpiritToggle(ctx, data, callback.Message.MessageID)
	}
}

// safeDeleteMessage deletes a message and only logs on failure.
func (b *Bot) safeDeleteMessage(messageID int) {
	resp, err := b.bot.Request(tgbotapi.NewDeleteMessage(b.chatID, messageID))
	if err != nil {
		log.Printf("⚠️ Delete message %d failed: %v", messageID, err)
		return
	}
	if resp == nil || len(resp.Result) == 0 {
		return
	}

	var ok bool
	if err := json.Unmarshal(resp.Result, &ok); err != nil {
		log.Printf("⚠️ Delete message %d: unexpected response: %v", messageID, err)
		return
	}
	if ok {
		log.Printf("✅ Message %d deleted", messageID)
	}
}
