// Package model defines the core data types shared across the application.
package model

import "time"

// Layouts used for the values stored in the sheet.
const (
	DateLayout      = "2006-01-02"
	CreatedAtLayout = "2006-01-02 15:04:05"
)

// TransactionType distinguishes money received from money spent. It exists
// only for conversation flow; a stored Record encodes the type solely in the
// sign of Amount.
type TransactionType string

const (
	// TypeIncome is money received.
	TypeIncome TransactionType = "income"
	// TypeExpense is money spent.
	TypeExpense TransactionType = "expense"
)

// Record is one committed ledger row. Amount is positive for income and
// negative for expenses. The sheet assigns no row id, so (OwnerID, CreatedAt)
// is the only handle for re-identifying a record later; two records created
// for the same owner within the same second are indistinguishable.
type Record struct {
	Date        time.Time
	Category    string
	Description string
	OwnerID     string
	CreatedAt   string
	Amount      float64
}

// Type derives the transaction type from the amount sign.
func (r Record) Type() TransactionType {
	if r.Amount > 0 {
		return TypeIncome
	}
	return TypeExpense
}

// Pending is a parsed transaction held in session memory until the owner
// confirms, rejects, or supersedes it.
type Pending struct {
	Date        time.Time
	Category    string
	Description string
	Amount      float64
}

// Type derives the transaction type from the amount sign.
func (p Pending) Type() TransactionType {
	if p.Amount > 0 {
		return TypeIncome
	}
	return TypeExpense
}

// Record converts the pending transaction into a committable record.
func (p Pending) Record(ownerID string, createdAt time.Time) Record {
	return Record{
		Date:        p.Date,
		Amount:      p.Amount,
		Category:    p.Category,
		Description: p.Description,
		OwnerID:     ownerID,
		CreatedAt:   createdAt.Format(CreatedAtLayout),
	}
}

// PendingBatch is an ordered set of pending transactions confirmed as one
// unit. Commit is attempted per item; a failed append does not abort the
// rest.
type PendingBatch []Pending

// DeletionMode selects how delete targets are resolved.
type DeletionMode string

const (
	// DeleteLast removes the owner's most recent record.
	DeleteLast DeletionMode = "last"
	// DeleteSpecific removes one record picked from a recent list.
	DeleteSpecific DeletionMode = "specific"
	// DeleteDateRange removes every record within a date range.
	DeleteDateRange DeletionMode = "date_range"
	// DeleteAll removes every record the owner has.
	DeleteAll DeletionMode = "all"
)

// DeletionSelection captures delete targets at selection time so the later
// delete step matches against a snapshot, not a live re-query.
type DeletionSelection struct {
	Mode    DeletionMode
	Start   time.Time
	End     time.Time
	Targets []Record
}
