package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/ardhimansyah/catatduit/internal/common"
	"github.com/ardhimansyah/catatduit/internal/model"
)

// Ledger implements the record-store protocol over a RowStore.
type Ledger struct {
	store  RowStore
	logger *slog.Logger
}

// New creates a ledger over the given row store.
func New(store RowStore, logger *slog.Logger) *Ledger {
	return &Ledger{store: store, logger: logger}
}

// Append commits one record as a new row.
func (l *Ledger) Append(ctx context.Context, rec model.Record) error {
	row := []string{
		rec.Date.Format(model.DateLayout),
		strconv.FormatFloat(rec.Amount, 'f', -1, 64),
		rec.Category,
		rec.Description,
		rec.OwnerID,
		rec.CreatedAt,
	}
	if err := l.store.Append(ctx, row); err != nil {
		return fmt.Errorf("appending record: %w", err)
	}
	return nil
}

// positioned pairs a parsed record with its 1-based data-row position so a
// later delete can target the row without a second matching pass.
type positioned struct {
	record   model.Record
	position int
}

// scan reads all rows and parses the owner's records with their positions.
// Field lookup is header-derived, not positional, so column reordering in
// the sheet degrades loudly instead of silently corrupting records.
func (l *Ledger) scan(ctx context.Context, ownerID string) ([]positioned, error) {
	rows, err := l.store.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[name] = i
	}
	for _, name := range Header {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("sheet header missing column %q", name)
		}
	}

	var out []positioned
	for pos, row := range rows[1:] {
		rec, ok := parseRow(row, index)
		if !ok {
			l.logger.Warn("skipping malformed row", "position", pos+1)
			continue
		}
		if rec.OwnerID != ownerID {
			continue
		}
		out = append(out, positioned{record: rec, position: pos + 1})
	}
	return out, nil
}

func parseRow(row []string, index map[string]int) (model.Record, bool) {
	field := func(name string) string {
		i := index[name]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	date, err := time.ParseInLocation(model.DateLayout, field("Date"), time.UTC)
	if err != nil {
		return model.Record{}, false
	}
	amount, err := strconv.ParseFloat(field("Amount"), 64)
	if err != nil {
		return model.Record{}, false
	}

	return model.Record{
		Date:        date,
		Amount:      amount,
		Category:    field("Category"),
		Description: field("Description"),
		OwnerID:     field("OwnerID"),
		CreatedAt:   field("CreatedAt"),
	}, true
}

// Records returns the owner's records in sheet order.
func (l *Ledger) Records(ctx context.Context, ownerID string) ([]model.Record, error) {
	scanned, err := l.scan(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	records := make([]model.Record, len(scanned))
	for i, p := range scanned {
		records[i] = p.record
	}
	return records, nil
}

// deleteDescending removes the given data-row positions highest-first so
// earlier deletions never shift the positions of rows still pending
// deletion.
func (l *Ledger) deleteDescending(ctx context.Context, positions []int) (int, error) {
	sort.Sort(sort.Reverse(sort.IntSlice(positions)))

	deleted := 0
	for _, pos := range positions {
		if err := l.store.DeleteRow(ctx, pos); err != nil {
			return deleted, fmt.Errorf("deleting row %d: %w", pos, err)
		}
		deleted++
	}
	return deleted, nil
}

// DeleteByCreatedAt removes the owner's row whose CreatedAt matches exactly.
// The match runs against a fresh scan, not cached positions.
func (l *Ledger) DeleteByCreatedAt(ctx context.Context, ownerID, createdAt string) (model.Record, error) {
	scanned, err := l.scan(ctx, ownerID)
	if err != nil {
		return model.Record{}, err
	}

	for _, p := range scanned {
		if p.record.CreatedAt == createdAt {
			if err := l.store.DeleteRow(ctx, p.position); err != nil {
				return model.Record{}, fmt.Errorf("deleting row %d: %w", p.position, err)
			}
			return p.record, nil
		}
	}
	return model.Record{}, common.ErrNotFound
}

// DeleteRange removes every owner row whose date falls within [start, end]
// and returns how many were deleted.
func (l *Ledger) DeleteRange(ctx context.Context, ownerID string, start, end time.Time) (int, error) {
	scanned, err := l.scan(ctx, ownerID)
	if err != nil {
		return 0, err
	}

	var positions []int
	for _, p := range scanned {
		if !p.record.Date.Before(start) && !p.record.Date.After(end) {
			positions = append(positions, p.position)
		}
	}
	if len(positions) == 0 {
		return 0, common.ErrNotFound
	}
	return l.deleteDescending(ctx, positions)
}

// DeleteAll removes every row belonging to the owner.
func (l *Ledger) DeleteAll(ctx context.Context, ownerID string) (int, error) {
	scanned, err := l.scan(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	if len(scanned) == 0 {
		return 0, nil
	}

	positions := make([]int, len(scanned))
	for i, p := range scanned {
		positions[i] = p.position
	}
	return l.deleteDescending(ctx, positions)
}

// CountRange counts the owner's records within [start, end] without
// mutating anything; used to present the confirmation prompt.
func (l *Ledger) CountRange(ctx context.Context, ownerID string, start, end time.Time) (int, error) {
	records, err := l.Records(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, rec := range records {
		if !rec.Date.Before(start) && !rec.Date.After(end) {
			n++
		}
	}
	return n, nil
}

// Recent returns up to n of the owner's most recently created records,
// newest first.
func Recent(records []model.Record, n int) []model.Record {
	sorted := make([]model.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt > sorted[j].CreatedAt
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
