package telegram

import (
	"context"
	"errors"
	"fmt"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/sandevgo/askfolio/internal/config"
	"github.com/sandevgo/askfolio/internal/core"
	"github.com/sandevgo/askfolio/internal/service/assistant"
	"github.com/sandevgo/askfolio/pkg/log"
)

const baseContextKey = "base_context"

// Asker is the subset of the session manager the bot needs.
type Asker interface {
	Ask(ctx context.Context, sessionID, question string) (assistant.Reply, error)
}

type Bot struct {
	bot    *tele.Bot
	sender *sender
	asker  Asker
	router core.CmdRouter
	name   string
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	asker Asker,
	router core.CmdRouter,
	name string,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:    b,
		sender: newSender(b),
		asker:  asker,
		router: router,
		name:   name,
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	b.Handle("/start", bot.handleStart)
	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("bot", b.bot.Me.Username).Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleStart(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	return b.sender.sendMarkdown(ctx, c.Chat(), greeting(b.name), nil)
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)

	_ = c.Notify(tele.Typing)

	reply := b.respond(ctx, sessionID(c.Chat().ID), c.Text())
	return b.sender.sendMarkdown(ctx, c.Chat(), reply, c.Message())
}

// respond turns one incoming text into the markdown to send back.
func (b *Bot) respond(ctx context.Context, sessionID, text string) string {
	logger := log.FromCtx(ctx)

	if out, ok := b.router.Execute(ctx, sessionID, text); ok {
		return out
	}

	reply, err := b.asker.Ask(ctx, sessionID, text)
	if err != nil {
		if errors.Is(err, core.ErrEmptyQuestion) {
			return "Please send a question."
		}
		logger.Error().Err(err).Str("session", sessionID).Msg("ask failed")
		return "Sorry, I couldn't answer that right now. Please try again."
	}
	return reply.Text
}

func sessionID(chatID int64) string {
	return fmt.Sprintf("telegram-%d", chatID)
}

func greeting(name string) string {
	return fmt.Sprintf("Hi! Ask me anything about **%s**'s experience and skills.\n\nSend /help to see the commands.", name)
}
