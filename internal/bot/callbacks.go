package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ardhimansyah/catatduit/internal/common"
	"github.com/ardhimansyah/catatduit/internal/ledger"
	"github.com/ardhimansyah/catatduit/internal/model"
	"github.com/ardhimansyah/catatduit/internal/session"
)

// pickCount is how many recent records the pick-to-delete keyboard offers.
const pickCount = 5

const (
	expiredText  = "⚠️ Sesi sudah berakhir. Silakan mulai lagi."
	notFoundText = "⚠️ Transaksi tidak ditemukan, mungkin sudah dihapus."
)

func (b *Bot) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) {
	if q.From == nil || q.From.ID != b.ownerID {
		_, _ = b.api.Request(tgbotapi.NewCallbackWithAlert(q.ID, deniedText))
		return
	}

	if _, err := b.api.Request(tgbotapi.NewCallback(q.ID, "")); err != nil {
		b.logger.Error("acking callback", "error", err)
	}
	if q.Message == nil {
		return
	}

	chatID := q.Message.Chat.ID
	messageID := q.Message.MessageID
	sess := b.sessions.Get(b.ownerID)
	data := q.Data

	switch {
	case data == "type_income":
		b.handleTypeChoice(chatID, messageID, sess, model.TypeIncome)
	case data == "type_expense":
		b.handleTypeChoice(chatID, messageID, sess, model.TypeExpense)
	case data == "confirm_yes":
		b.handleConfirmSingle(ctx, chatID, messageID, sess)
	case data == "confirm_no":
		b.handleRejectSingle(chatID, messageID, sess)
	case data == "confirm_all_yes":
		b.handleConfirmBatch(ctx, chatID, messageID, sess)
	case data == "confirm_all_no":
		sess.TakeStagedBatch()
		_, _ = b.edit(chatID, messageID, cancelledText)
	case strings.HasPrefix(data, "cat_"):
		b.handleCategoryChoice(ctx, chatID, messageID, sess, strings.TrimPrefix(data, "cat_"))
	case data == "delete_last":
		b.handleDeleteLast(ctx, chatID, messageID)
	case data == "delete_specific":
		b.handleDeleteSpecificMenu(ctx, chatID, messageID, sess)
	case strings.HasPrefix(data, "del_specific_"):
		b.handleDeleteSpecificPick(ctx, chatID, messageID, sess, strings.TrimPrefix(data, "del_specific_"))
	case data == "delete_date":
		sess.BeginDeleteRange()
		_, _ = b.edit(chatID, messageID, deleteStartPrompt)
	case data == "delete_all":
		_, _ = b.editWithKeyboard(chatID, messageID, deleteAllConfirmText(), deleteAllConfirmKeyboard())
	case data == "confirm_delete_all":
		b.handleDeleteAll(ctx, chatID, messageID)
	case data == "confirm_delete_date":
		b.handleDeleteRange(ctx, chatID, messageID, sess)
	case data == "delete_cancel":
		sess.Cancel()
		_, _ = b.edit(chatID, messageID, deleteCancelText)
	default:
		b.logger.Warn("unknown callback", "data", data)
	}
}

func (b *Bot) handleTypeChoice(chatID int64, messageID int, sess *session.Session, t model.TransactionType) {
	if err := sess.ChooseType(t); err != nil {
		_, _ = b.edit(chatID, messageID, expiredText)
		return
	}
	_, _ = b.edit(chatID, messageID, amountPromptText(t, sess.DraftDescription(), sess.DraftDate()))
}

func (b *Bot) handleConfirmSingle(ctx context.Context, chatID int64, messageID int, sess *session.Session) {
	pending, ok := sess.TakeStaged()
	if !ok {
		_, _ = b.edit(chatID, messageID, expiredText)
		return
	}
	b.commitPending(ctx, chatID, messageID, sess, pending)
}

// handleRejectSingle turns a rejected extraction into the step-by-step
// clarification dialogue, keeping the description and resolved date.
func (b *Bot) handleRejectSingle(chatID int64, messageID int, sess *session.Session) {
	pending, ok := sess.TakeStaged()
	if !ok {
		_, _ = b.edit(chatID, messageID, expiredText)
		return
	}
	sess.BeginClarification(pending.Description, pending.Date)
	_, _ = b.editWithKeyboard(chatID, messageID, correctionPromptText(pending.Description), typeKeyboard())
}

func (b *Bot) handleCategoryChoice(ctx context.Context, chatID int64, messageID int, sess *session.Session, category string) {
	pending, err := sess.ChooseCategory(category)
	if err != nil {
		_, _ = b.edit(chatID, messageID, expiredText)
		return
	}
	b.commitPending(ctx, chatID, messageID, sess, pending)
}

// commitPending appends the confirmed transaction and arms the sweep. The
// edited message id is already tracked; only failures leave the chatter in
// place.
func (b *Bot) commitPending(ctx context.Context, chatID int64, messageID int, sess *session.Session, pending model.Pending) {
	_, _ = b.edit(chatID, messageID, savingText)

	rec := pending.Record(b.ownerKey(), b.now())
	if err := b.ledger.Append(ctx, rec); err != nil {
		b.logger.Error("committing transaction", "error", err)
		_, _ = b.edit(chatID, messageID, genericErrorText)
		return
	}

	b.logger.Info("transaction recorded",
		"amount", rec.Amount,
		"category", rec.Category,
		"date", rec.Date.Format(model.DateLayout))
	_, _ = b.edit(chatID, messageID, commitSuccessText(pending))
	b.scheduleSweep(ctx, chatID, sess)
}

// handleConfirmBatch commits a batch item by item. A failed append is logged
// and skipped; the result message reports how many made it.
func (b *Bot) handleConfirmBatch(ctx context.Context, chatID int64, messageID int, sess *session.Session) {
	batch, ok := sess.TakeStagedBatch()
	if !ok {
		_, _ = b.edit(chatID, messageID, expiredText)
		return
	}

	_, _ = b.edit(chatID, messageID, fmt.Sprintf("⏳ Menyimpan %d transaksi...", len(batch)))

	saved := 0
	for i, pending := range batch {
		if i > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(b.batchDelay):
			}
			if ctx.Err() != nil {
				break
			}
		}

		rec := pending.Record(b.ownerKey(), b.now())
		if err := b.ledger.Append(ctx, rec); err != nil {
			b.logger.Error("committing batch item", "index", i, "error", err)
			continue
		}
		saved++
	}

	_, _ = b.edit(chatID, messageID, batchResultText(saved, len(batch)))
	b.scheduleSweep(ctx, chatID, sess)
}

func (b *Bot) handleDeleteLast(ctx context.Context, chatID int64, messageID int) {
	records, err := b.ledger.Records(ctx, b.ownerKey())
	if err != nil {
		b.logger.Error("listing records", "error", err)
		_, _ = b.edit(chatID, messageID, genericErrorText)
		return
	}
	if len(records) == 0 {
		_, _ = b.edit(chatID, messageID, noRecordsText)
		return
	}

	last := ledger.Recent(records, 1)[0]
	deleted, err := b.ledger.DeleteByCreatedAt(ctx, b.ownerKey(), last.CreatedAt)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			_, _ = b.edit(chatID, messageID, notFoundText)
			return
		}
		b.logger.Error("deleting last record", "error", err)
		_, _ = b.edit(chatID, messageID, genericErrorText)
		return
	}
	_, _ = b.edit(chatID, messageID, deletedRecordText(deleted))
}

// handleDeleteSpecificMenu snapshots the recent records so the later pick
// resolves against what the owner saw, not a re-queried list.
func (b *Bot) handleDeleteSpecificMenu(ctx context.Context, chatID int64, messageID int, sess *session.Session) {
	records, err := b.ledger.Records(ctx, b.ownerKey())
	if err != nil {
		b.logger.Error("listing records", "error", err)
		_, _ = b.edit(chatID, messageID, genericErrorText)
		return
	}
	if len(records) == 0 {
		_, _ = b.edit(chatID, messageID, noRecordsText)
		return
	}

	targets := ledger.Recent(records, pickCount)
	sess.Select(model.DeletionSelection{Mode: model.DeleteSpecific, Targets: targets})
	_, _ = b.editWithKeyboard(chatID, messageID, "Pilih transaksi yang ingin dihapus:", specificDeleteKeyboard(targets))
}

func (b *Bot) handleDeleteSpecificPick(ctx context.Context, chatID int64, messageID int, sess *session.Session, raw string) {
	sel, ok := sess.TakeSelection()
	if !ok || sel.Mode != model.DeleteSpecific {
		_, _ = b.edit(chatID, messageID, expiredText)
		return
	}

	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 || index >= len(sel.Targets) {
		_, _ = b.edit(chatID, messageID, expiredText)
		return
	}

	target := sel.Targets[index]
	deleted, err := b.ledger.DeleteByCreatedAt(ctx, b.ownerKey(), target.CreatedAt)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			_, _ = b.edit(chatID, messageID, notFoundText)
			return
		}
		b.logger.Error("deleting picked record", "error", err)
		_, _ = b.edit(chatID, messageID, genericErrorText)
		return
	}
	_, _ = b.edit(chatID, messageID, deletedRecordText(deleted))
}

func (b *Bot) handleDeleteAll(ctx context.Context, chatID int64, messageID int) {
	count, err := b.ledger.DeleteAll(ctx, b.ownerKey())
	if err != nil {
		b.logger.Error("deleting all records", "error", err)
		_, _ = b.edit(chatID, messageID, genericErrorText)
		return
	}
	if count == 0 {
		_, _ = b.edit(chatID, messageID, noRecordsText)
		return
	}
	_, _ = b.edit(chatID, messageID, deletedCountText(count))
}

func (b *Bot) handleDeleteRange(ctx context.Context, chatID int64, messageID int, sess *session.Session) {
	sel, ok := sess.TakeSelection()
	if !ok || sel.Mode != model.DeleteDateRange {
		_, _ = b.edit(chatID, messageID, expiredText)
		return
	}

	count, err := b.ledger.DeleteRange(ctx, b.ownerKey(), sel.Start, sel.End)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			_, _ = b.edit(chatID, messageID, noRecordsRangeT)
			return
		}
		b.logger.Error("deleting range", "error", err)
		_, _ = b.edit(chatID, messageID, genericErrorText)
		return
	}
	_, _ = b.edit(chatID, messageID, deletedCountText(count))
}
