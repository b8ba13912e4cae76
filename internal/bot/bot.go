// Package bot wires the conversation engine to the Telegram transport. Every
// inbound update is handled to completion before the next one is dispatched,
// so per-owner session state needs no locking here.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ardhimansyah/catatduit/internal/config"
	"github.com/ardhimansyah/catatduit/internal/extract"
	"github.com/ardhimansyah/catatduit/internal/ledger"
	"github.com/ardhimansyah/catatduit/internal/session"
	"github.com/ardhimansyah/catatduit/internal/storage"
)

// Bot is the Telegram front end.
type Bot struct {
	api       *tgbotapi.BotAPI
	sessions  *session.Manager
	extractor *extract.Extractor
	ledger    *ledger.Ledger
	prefs     *storage.PrefStore
	sweeper   *sweeper
	logger    *slog.Logger

	ownerID      int64
	sheetURL     string
	cleanupDelay time.Duration
	batchDelay   time.Duration

	now func() time.Time
}

// New creates the bot front end with its collaborators passed in explicitly
// so tests can substitute doubles.
func New(cfg config.Config, extractor *extract.Extractor, ldg *ledger.Ledger, prefs *storage.PrefStore, logger *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("creating telegram client: %w", err)
	}

	return &Bot{
		api:          api,
		sessions:     session.NewManager(),
		extractor:    extractor,
		ledger:       ldg,
		prefs:        prefs,
		sweeper:      newSweeper(),
		logger:       logger,
		ownerID:      cfg.OwnerID,
		sheetURL:     cfg.LedgerConfig().URL(),
		cleanupDelay: cfg.CleanupDelay,
		batchDelay:   cfg.BatchCommitDelay,
		now:          time.Now,
	}, nil
}

// ownerKey is the owner id as stored in the sheet's OwnerID column.
func (b *Bot) ownerKey() string {
	return strconv.FormatInt(b.ownerID, 10)
}

// Run consumes updates until the context is cancelled. Handler panics and
// errors are contained per update; the loop itself never dies.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("bot started", "username", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.dispatch(ctx, update)
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("handler panic", "panic", r)
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.Text != "" && update.Message.Chat.IsPrivate():
		b.handleMessage(ctx, update.Message)
	}
}

// send delivers a message and returns the transport's acknowledgment.
func (b *Bot) send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	sent, err := b.api.Send(c)
	if err != nil {
		b.logger.Error("send failed", "error", err)
	}
	return sent, err
}

// reply sends plain text to a chat.
func (b *Bot) reply(chatID int64, text string) (tgbotapi.Message, error) {
	return b.send(tgbotapi.NewMessage(chatID, text))
}

// replyMarkdown sends Markdown-formatted text.
func (b *Bot) replyMarkdown(chatID int64, text string) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	return b.send(msg)
}

// edit replaces a previously sent message's text.
func (b *Bot) edit(chatID int64, messageID int, text string) (tgbotapi.Message, error) {
	return b.send(tgbotapi.NewEditMessageText(chatID, messageID, text))
}

// editWithKeyboard replaces text and attaches an inline keyboard.
func (b *Bot) editWithKeyboard(chatID int64, messageID int, text string, keyboard tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error) {
	return b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, keyboard))
}

// track remembers a message for the post-commit sweep.
func (b *Bot) track(sess *session.Session, messageID int) {
	sess.Sweep = append(sess.Sweep, messageID)
}

// scheduleSweep arms the delayed cleanup of this exchange's chatter. The
// message ids are captured now; a newer exchange's messages can never end up
// in an older sweep.
func (b *Bot) scheduleSweep(ctx context.Context, chatID int64, sess *session.Session) {
	enabled, err := b.prefs.AutoCleanup(ctx, b.ownerKey())
	if err != nil {
		b.logger.Error("reading cleanup preference", "error", err)
		return
	}
	if !enabled {
		sess.Sweep = nil
		return
	}

	ids := sess.Sweep
	sess.Sweep = nil

	b.sweeper.Schedule(b.ownerID, b.cleanupDelay, func() {
		for _, id := range ids {
			if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, id)); err != nil {
				b.logger.Error("deleting message", "message_id", id, "error", err)
			}
		}
	})
}
