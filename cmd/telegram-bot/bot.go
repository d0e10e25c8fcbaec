package main

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Vodeneev/pokepaste/internal/parser/pokepaste"
	"github.com/Vodeneev/pokepaste/internal/pkg/export"
	"github.com/Vodeneev/pokepaste/internal/pkg/models"
	"github.com/Vodeneev/pokepaste/internal/pkg/performance"
)

// Telegram rejects messages over 4096 characters
const maxMessageLength = 4000

var pasteURLPattern = regexp.MustCompile(`https?://(?:www\.)?pokepast\.es/[A-Za-z0-9]+`)

const helpText = `Pokepaste Bot

Send a pokepast.es link or paste a Showdown team export directly,
and I will reply with a summary of the team.

Commands:
/start, /help - show this message`

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type bot struct {
	api     sender
	fetcher pokepaste.Fetcher
	parser  *pokepaste.Parser
	allowed map[int64]bool
	timeout time.Duration
}

func newBot(api sender, fetcher pokepaste.Fetcher, allowedUserIDs []int64) *bot {
	b := &bot{
		api:     api,
		fetcher: fetcher,
		parser:  &pokepaste.Parser{},
		timeout: 30 * time.Second,
	}
	if len(allowedUserIDs) > 0 {
		b.allowed = make(map[int64]bool, len(allowedUserIDs))
		for _, id := range allowedUserIDs {
			b.allowed[id] = true
		}
	}
	return b
}

func (b *bot) isAllowed(from *tgbotapi.User) bool {
	if b.allowed == nil {
		return true
	}
	return from != nil && b.allowed[from.ID]
}

func (b *bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if !b.isAllowed(message.From) {
		b.send(message.Chat.ID, "Access denied. You are not authorized to use this bot.")
		return
	}

	text := strings.TrimSpace(message.Text)
	if text == "" {
		return
	}

	if strings.HasPrefix(text, "/") {
		command := strings.ToLower(strings.Fields(text)[0])
		// commands in groups arrive as /help@botname
		command, _, _ = strings.Cut(command, "@")
		switch command {
		case "/start", "/help":
			b.send(message.Chat.ID, helpText)
		default:
			b.send(message.Chat.ID, "Unknown command. Use /help to see available commands.")
		}
		return
	}

	b.sendTyping(message.Chat.ID)
	b.send(message.Chat.ID, b.reply(ctx, text))
}

// reply parses the message and renders the answer text
func (b *bot) reply(ctx context.Context, text string) string {
	start := time.Now()
	var res models.Result
	if locator := pasteURLPattern.FindString(text); locator != "" {
		ctx, cancel := context.WithTimeout(ctx, b.timeout)
		defer cancel()
		res = b.parser.ParseURL(ctx, b.fetcher, locator)
	} else {
		res = b.parser.ParseText(text, nil)
	}
	performance.GetTracker().RecordParse(res, time.Since(start))

	if !res.Success {
		slog.Info("Failed to parse paste from chat", "error", res.Error)
		return fmt.Sprintf("❌ Error: %s", res.Error)
	}
	return truncate(export.Summary(res.Data), maxMessageLength)
}

func (b *bot) send(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		slog.Warn("Failed to send telegram message", "chat_id", chatID, "error", err)
	}
}

func (b *bot) sendTyping(chatID int64) {
	// the API answers chat actions with a bool, which the library reports as an error
	_, _ = b.api.Send(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping))
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "\n..."
}
