// Package session holds the per-owner conversation state machine. Each owner
// has exactly one active mode; clarification and deletion dialogues advance
// it, and cancel or commit always returns it to idle.
package session

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ardhimansyah/catatduit/internal/common"
	"github.com/ardhimansyah/catatduit/internal/model"
)

// Mode enumerates the mutually exclusive conversation states.
type Mode int

const (
	// Idle means no dialogue is in progress.
	Idle Mode = iota
	// AwaitingType waits for an income/expense choice.
	AwaitingType
	// AwaitingAmount waits for a numeric amount.
	AwaitingAmount
	// AwaitingCategory waits for a category choice.
	AwaitingCategory
	// AwaitingDeleteStart waits for the range start date.
	AwaitingDeleteStart
	// AwaitingDeleteEnd waits for the range end date.
	AwaitingDeleteEnd
	// AwaitingDeleteConfirmation waits for the final delete confirmation.
	AwaitingDeleteConfirmation
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case AwaitingType:
		return "awaiting_type"
	case AwaitingAmount:
		return "awaiting_amount"
	case AwaitingCategory:
		return "awaiting_category"
	case AwaitingDeleteStart:
		return "awaiting_delete_start"
	case AwaitingDeleteEnd:
		return "awaiting_delete_end"
	case AwaitingDeleteConfirmation:
		return "awaiting_delete_confirmation"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Session is one owner's conversation state. It is mutated only from the
// serialized dispatch loop.
type Session struct {
	Mode Mode

	// Staged data awaiting a confirm/reject callback. At most one of the
	// two is set; staging anything overwrites what was there before.
	Staged      *model.Pending
	StagedBatch model.PendingBatch

	// Clarification draft, filled step by step.
	draftType        model.TransactionType
	draftDescription string
	draftDate        time.Time
	draftAmount      float64

	// Deletion dialogue.
	deleteStart time.Time
	Selection   *model.DeletionSelection

	// Message ids accumulated for the post-commit sweep.
	Sweep []int
}

// Stage holds a single pending transaction for confirmation, replacing any
// previously staged transaction or batch (last-write-wins).
func (s *Session) Stage(p model.Pending) {
	s.Staged = &p
	s.StagedBatch = nil
}

// StageBatch holds a pending batch for confirmation, replacing any
// previously staged transaction or batch.
func (s *Session) StageBatch(batch model.PendingBatch) {
	s.StagedBatch = batch
	s.Staged = nil
}

// TakeStaged removes and returns the staged single transaction.
func (s *Session) TakeStaged() (model.Pending, bool) {
	if s.Staged == nil {
		return model.Pending{}, false
	}
	p := *s.Staged
	s.Staged = nil
	return p, true
}

// TakeStagedBatch removes and returns the staged batch.
func (s *Session) TakeStagedBatch() (model.PendingBatch, bool) {
	if s.StagedBatch == nil {
		return nil, false
	}
	batch := s.StagedBatch
	s.StagedBatch = nil
	return batch, true
}

// BeginClarification starts the type/amount/category dialogue for text whose
// amount could not be extracted. The already-resolved date is kept.
func (s *Session) BeginClarification(description string, date time.Time) {
	s.Staged = nil
	s.StagedBatch = nil
	s.draftDescription = description
	s.draftDate = date
	s.draftType = ""
	s.draftAmount = 0
	s.Mode = AwaitingType
}

// ChooseType records the selected transaction type.
func (s *Session) ChooseType(t model.TransactionType) error {
	if s.Mode != AwaitingType {
		return fmt.Errorf("type selected in %s", s.Mode)
	}
	s.draftType = t
	s.Mode = AwaitingAmount
	return nil
}

// ProvideAmount parses the owner's amount text. The sign is enforced from
// the chosen type; any sign in the input is ignored. A non-numeric input
// leaves the state unchanged and returns a validation error.
func (s *Session) ProvideAmount(text string) error {
	if s.Mode != AwaitingAmount {
		return fmt.Errorf("amount provided in %s", s.Mode)
	}

	amount, err := ParseAmount(text)
	if err != nil {
		return common.ErrInvalidAmount
	}

	if s.draftType == model.TypeExpense {
		amount = -amount
	}
	s.draftAmount = amount
	s.Mode = AwaitingCategory
	return nil
}

// ChooseCategory completes the clarification dialogue and returns the
// finished pending transaction. The session returns to idle; committing is
// the caller's job.
func (s *Session) ChooseCategory(category string) (model.Pending, error) {
	if s.Mode != AwaitingCategory {
		return model.Pending{}, fmt.Errorf("category selected in %s", s.Mode)
	}

	p := model.Pending{
		Date:        s.draftDate,
		Amount:      s.draftAmount,
		Category:    category,
		Description: s.draftDescription,
	}
	s.reset()
	return p, nil
}

// DraftType exposes the chosen type for prompt wording.
func (s *Session) DraftType() model.TransactionType { return s.draftType }

// DraftDate exposes the resolved date for prompt wording.
func (s *Session) DraftDate() time.Time { return s.draftDate }

// DraftDescription exposes the original text for prompt wording.
func (s *Session) DraftDescription() string { return s.draftDescription }

// BeginDeleteRange starts the date-range deletion dialogue.
func (s *Session) BeginDeleteRange() {
	s.Selection = nil
	s.Mode = AwaitingDeleteStart
}

// SetDeleteStart records the range start.
func (s *Session) SetDeleteStart(d time.Time) error {
	if s.Mode != AwaitingDeleteStart {
		return fmt.Errorf("start date in %s", s.Mode)
	}
	s.deleteStart = d
	s.Mode = AwaitingDeleteEnd
	return nil
}

// SetDeleteEnd records the range end. An end before the start leaves the
// state unchanged so the owner is re-prompted.
func (s *Session) SetDeleteEnd(d time.Time) error {
	if s.Mode != AwaitingDeleteEnd {
		return fmt.Errorf("end date in %s", s.Mode)
	}
	if d.Before(s.deleteStart) {
		return common.ErrInvalidDate
	}
	s.Selection = &model.DeletionSelection{
		Mode:  model.DeleteDateRange,
		Start: s.deleteStart,
		End:   d,
	}
	s.Mode = AwaitingDeleteConfirmation
	return nil
}

// Select stages a non-range deletion selection (last/specific/all) resolved
// from a snapshot of the owner's records.
func (s *Session) Select(sel model.DeletionSelection) {
	s.Selection = &sel
}

// TakeSelection removes and returns the staged deletion selection.
func (s *Session) TakeSelection() (model.DeletionSelection, bool) {
	if s.Selection == nil {
		return model.DeletionSelection{}, false
	}
	sel := *s.Selection
	s.Selection = nil
	s.Mode = Idle
	return sel, true
}

// Cancel aborts any dialogue and discards all staged data.
func (s *Session) Cancel() {
	s.reset()
}

func (s *Session) reset() {
	sweep := s.Sweep
	*s = Session{Sweep: sweep}
}

// ParseAmount parses a human-entered amount: thousand separators and an
// optional "Rp" prefix are tolerated, the sign is discarded.
func ParseAmount(text string) (float64, error) {
	cleaned := strings.ToLower(strings.TrimSpace(text))
	cleaned = strings.TrimPrefix(cleaned, "rp")
	cleaned = strings.NewReplacer(",", "", ".", "", " ", "").Replace(cleaned)
	cleaned = strings.TrimPrefix(cleaned, "-")
	cleaned = strings.TrimPrefix(cleaned, "+")

	if cleaned == "" {
		return 0, common.ErrInvalidAmount
	}
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, common.ErrInvalidAmount
	}
	return amount, nil
}
