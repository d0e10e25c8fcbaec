package main

import (
	"context"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vodeneev/pokepaste/internal/parser/pokepaste"
	"github.com/Vodeneev/pokepaste/internal/pkg/models"
)

const botPaste = `Garchomp @ Choice Scarf
Ability: Rough Skin
Jolly Nature
- Earthquake`

type fakeSender struct {
	texts   []string
	actions int
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	switch m := c.(type) {
	case tgbotapi.MessageConfig:
		f.texts = append(f.texts, m.Text)
	case tgbotapi.ChatActionConfig:
		f.actions++
	}
	return tgbotapi.Message{}, nil
}

type fetcherFunc func(ctx context.Context, locator string) (*models.PasteDocument, error)

func (f fetcherFunc) FetchDocument(ctx context.Context, locator string) (*models.PasteDocument, error) {
	return f(ctx, locator)
}

func message(userID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		From: &tgbotapi.User{ID: userID},
		Chat: &tgbotapi.Chat{ID: 42},
		Text: text,
	}
}

func TestHelpCommands(t *testing.T) {
	for _, cmd := range []string{"/start", "/help", "/HELP@pokebot"} {
		s := &fakeSender{}
		newBot(s, nil, nil).handleMessage(context.Background(), message(1, cmd))
		require.Len(t, s.texts, 1, cmd)
		assert.Equal(t, helpText, s.texts[0], cmd)
	}

	s := &fakeSender{}
	newBot(s, nil, nil).handleMessage(context.Background(), message(1, "/top"))
	require.Len(t, s.texts, 1)
	assert.Contains(t, s.texts[0], "Unknown command")
}

func TestAllowList(t *testing.T) {
	s := &fakeSender{}
	b := newBot(s, nil, []int64{7})

	b.handleMessage(context.Background(), message(8, botPaste))
	require.Len(t, s.texts, 1)
	assert.Contains(t, s.texts[0], "Access denied")

	b.handleMessage(context.Background(), message(7, botPaste))
	require.Len(t, s.texts, 2)
	assert.Contains(t, s.texts[1], "1. Garchomp @ Choice Scarf")
	assert.Equal(t, 1, s.actions)
}

func TestReplyFromPasteText(t *testing.T) {
	b := newBot(&fakeSender{}, nil, nil)
	out := b.reply(context.Background(), botPaste)
	assert.True(t, strings.HasPrefix(out, "Untitled team\n"), out)
	assert.Contains(t, out, "Moves: Earthquake")
}

func TestReplyFromURL(t *testing.T) {
	var got string
	f := fetcherFunc(func(ctx context.Context, locator string) (*models.PasteDocument, error) {
		got = locator
		if strings.HasSuffix(locator, "dead") {
			return nil, &pokepaste.TransportError{URL: locator, StatusCode: 404, Status: "Not Found"}
		}
		return &models.PasteDocument{Paste: botPaste, Title: "Sand", Notes: "Format: gen9ou"}, nil
	})
	b := newBot(&fakeSender{}, f, nil)

	out := b.reply(context.Background(), "check this https://pokepast.es/abc123 out")
	assert.Equal(t, "https://pokepast.es/abc123", got)
	assert.True(t, strings.HasPrefix(out, "Sand\nFormat: gen9ou\n"), out)

	out = b.reply(context.Background(), "https://pokepast.es/dead")
	assert.Equal(t, "❌ Error: HTTP 404: Not Found", out)
}

func TestReplyParseError(t *testing.T) {
	b := newBot(&fakeSender{}, nil, nil)
	assert.Equal(t, "❌ Error: no valid pokemon found in paste", b.reply(context.Background(), "123 !!!"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abc\n...", truncate("abcdef", 3))
	// never split a multi-byte rune
	assert.Equal(t, "a\n...", truncate("aé", 2))
}

func TestParseUserIDs(t *testing.T) {
	assert.Equal(t, []int64{1, 22}, parseUserIDs("1, 22,x,"))
	assert.Nil(t, parseUserIDs(""))
}
