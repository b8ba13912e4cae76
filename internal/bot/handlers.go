package bot

import (
	"context"
	"errors"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ardhimansyah/catatduit/internal/common"
	"github.com/ardhimansyah/catatduit/internal/extract"
	"github.com/ardhimansyah/catatduit/internal/model"
	"github.com/ardhimansyah/catatduit/internal/report"
	"github.com/ardhimansyah/catatduit/internal/session"
)

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil || msg.From.ID != b.ownerID {
		_, _ = b.reply(msg.Chat.ID, deniedText)
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	sess := b.sessions.Get(b.ownerID)
	switch sess.Mode {
	case session.AwaitingAmount:
		b.handleAmountInput(msg, sess)
	case session.AwaitingDeleteStart, session.AwaitingDeleteEnd:
		b.handleDeleteDateInput(ctx, msg, sess)
	default:
		// New text during a type/category prompt supersedes the dialogue.
		b.handleTransactionText(ctx, msg, sess)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		_, _ = b.replyMarkdown(chatID, welcomeText)
	case "help":
		_, _ = b.replyMarkdown(chatID, helpText)
	case "catat":
		_, _ = b.replyMarkdown(chatID, recordHintText)
	case "laporan":
		b.handleReport(ctx, chatID)
	case "sheet":
		_, _ = b.reply(chatID, sheetLinkText(b.sheetURL))
	case "hapus":
		sess := b.sessions.Get(b.ownerID)
		sess.Cancel()
		b.replyWithKeyboard(chatID, deleteMenuText(), deleteMenuKeyboard())
	case "hapuspesan":
		b.handleCleanupToggle(ctx, chatID)
	default:
		_, _ = b.reply(chatID, "Perintah tidak dikenal. Ketik /help untuk bantuan.")
	}
}

func (b *Bot) replyWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	_, _ = b.send(msg)
}

func (b *Bot) handleReport(ctx context.Context, chatID int64) {
	records, err := b.ledger.Records(ctx, b.ownerKey())
	if err != nil {
		b.logger.Error("building report", "error", err)
		_, _ = b.reply(chatID, genericErrorText)
		return
	}
	_, _ = b.replyMarkdown(chatID, reportText(report.Build(records)))
}

func (b *Bot) handleCleanupToggle(ctx context.Context, chatID int64) {
	enabled, err := b.prefs.ToggleAutoCleanup(ctx, b.ownerKey())
	if err != nil {
		b.logger.Error("toggling cleanup preference", "error", err)
		_, _ = b.reply(chatID, genericErrorText)
		return
	}
	_, _ = b.reply(chatID, cleanupToggleText(enabled))
}

// handleTransactionText runs extraction over free-form text and stages the
// result for confirmation. One line is a single transaction; several lines
// are a batch.
func (b *Bot) handleTransactionText(ctx context.Context, msg *tgbotapi.Message, sess *session.Session) {
	chatID := msg.Chat.ID

	// A fresh exchange begins; an older pending sweep must not fire into it.
	b.sweeper.Cancel(b.ownerID)
	b.track(sess, msg.MessageID)

	lines := extract.CountLines(msg.Text)
	if lines == 0 {
		return
	}

	progress, err := b.reply(chatID, analyzingText)
	if err != nil {
		return
	}
	b.track(sess, progress.MessageID)

	if lines > 1 {
		b.stageBatch(ctx, chatID, progress.MessageID, msg.Text, sess)
		return
	}
	b.stageSingle(ctx, chatID, progress.MessageID, msg.Text, sess)
}

func (b *Bot) stageSingle(ctx context.Context, chatID int64, messageID int, text string, sess *session.Session) {
	result, err := b.extractor.Extract(ctx, text, b.now())
	if err != nil {
		b.logger.Error("extracting transaction", "error", err)
		_, _ = b.edit(chatID, messageID, genericErrorText)
		return
	}

	if !result.Complete() {
		description := result.Description
		if description == "" {
			description = text
		}
		sess.BeginClarification(description, result.Date)
		_, _ = b.editWithKeyboard(chatID, messageID, typePromptText(description, result.Date), typeKeyboard())
		return
	}

	pending := result.Pending()
	sess.Stage(pending)
	_, _ = b.editWithKeyboard(chatID, messageID, singleConfirmationText(pending), singleConfirmationKeyboard())
}

func (b *Bot) stageBatch(ctx context.Context, chatID int64, messageID int, text string, sess *session.Session) {
	batch, err := b.extractor.ExtractBatch(ctx, text, b.now())
	if err != nil {
		b.logger.Error("extracting batch", "error", err)
		_, _ = b.edit(chatID, messageID, genericErrorText)
		return
	}
	if len(batch) == 0 {
		_, _ = b.edit(chatID, messageID, extractFailedText)
		return
	}

	sess.StageBatch(batch)
	_, _ = b.editWithKeyboard(chatID, messageID, batchConfirmationText(batch), batchConfirmationKeyboard())
}

// handleAmountInput consumes the numeric reply of a clarification dialogue.
func (b *Bot) handleAmountInput(msg *tgbotapi.Message, sess *session.Session) {
	chatID := msg.Chat.ID
	b.track(sess, msg.MessageID)

	if err := sess.ProvideAmount(msg.Text); err != nil {
		if errors.Is(err, common.ErrInvalidAmount) {
			sent, _ := b.reply(chatID, invalidAmountText)
			b.track(sess, sent.MessageID)
			return
		}
		b.logger.Error("amount input", "error", err)
		_, _ = b.reply(chatID, genericErrorText)
		return
	}

	prompt := tgbotapi.NewMessage(chatID, categoryPromptText(sess.DraftType()))
	prompt.ReplyMarkup = categoryKeyboard(sess.DraftType())
	sent, err := b.send(prompt)
	if err == nil {
		b.track(sess, sent.MessageID)
	}
}

// handleDeleteDateInput consumes the date replies of the range-deletion
// dialogue. Dates are accepted in strict YYYY-MM-DD form only.
func (b *Bot) handleDeleteDateInput(ctx context.Context, msg *tgbotapi.Message, sess *session.Session) {
	chatID := msg.Chat.ID

	date, err := time.ParseInLocation(model.DateLayout, strings.TrimSpace(msg.Text), time.UTC)
	if err != nil {
		_, _ = b.reply(chatID, invalidDateText)
		return
	}

	if sess.Mode == session.AwaitingDeleteStart {
		if err := sess.SetDeleteStart(date); err != nil {
			b.logger.Error("delete start", "error", err)
			return
		}
		_, _ = b.reply(chatID, deleteEndPrompt)
		return
	}

	if err := sess.SetDeleteEnd(date); err != nil {
		if errors.Is(err, common.ErrInvalidDate) {
			_, _ = b.reply(chatID, endBeforeStartT)
			return
		}
		b.logger.Error("delete end", "error", err)
		return
	}

	sel := sess.Selection
	count, err := b.ledger.CountRange(ctx, b.ownerKey(), sel.Start, sel.End)
	if err != nil {
		b.logger.Error("counting range", "error", err)
		sess.Cancel()
		_, _ = b.reply(chatID, genericErrorText)
		return
	}
	if count == 0 {
		sess.Cancel()
		_, _ = b.reply(chatID, noRecordsRangeT)
		return
	}

	b.replyWithKeyboard(chatID, deleteRangeConfirmText(sel.Start, sel.End, count), deleteRangeConfirmKeyboard())
}
