package main

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSender struct {
	fail map[int64]bool
	sent []tgbotapi.MessageConfig
}

func (s *stubSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	msg := c.(tgbotapi.MessageConfig)
	if s.fail[msg.ChatID] {
		return tgbotapi.Message{}, errors.New("forbidden")
	}
	s.sent = append(s.sent, msg)
	return tgbotapi.Message{}, nil
}

func TestBroadcast(t *testing.T) {
	bot := &stubSender{fail: map[int64]bool{2: true}}

	s := broadcast(context.Background(), bot, []int64{1, 2, 3}, "report", 0)

	assert.Equal(t, stats{sent: 2, failed: 1}, s)
	require.Len(t, bot.sent, 2)
	assert.Equal(t, int64(1), bot.sent[0].ChatID)
	assert.Equal(t, int64(3), bot.sent[1].ChatID)
	assert.Equal(t, "report", bot.sent[0].Text)
}

func TestBroadcastStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	bot := &stubSender{}
	s := broadcast(ctx, bot, []int64{1, 2}, "report", 0)

	assert.Equal(t, stats{}, s)
	assert.Empty(t, bot.sent)
}
