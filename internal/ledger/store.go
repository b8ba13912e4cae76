// Package ledger mediates create/read/delete operations against the external
// tabular store. The store assigns no row ids, so deletions re-identify rows
// by re-scanning and matching on (OwnerID, CreatedAt) or date-range
// membership, then delete positions in descending order.
package ledger

import "context"

// Header is the contractual column order of the sheet.
var Header = []string{"Date", "Amount", "Category", "Description", "OwnerID", "CreatedAt"}

// RowStore abstracts the primitives the external tabular store must provide.
// Positions are 1-based over data rows; the header occupies position 0.
type RowStore interface {
	// Append adds one data row after the last non-empty row.
	Append(ctx context.Context, row []string) error
	// Rows returns every row including the header at index 0.
	Rows(ctx context.Context) ([][]string, error)
	// DeleteRow removes the data row at the given position.
	DeleteRow(ctx context.Context, position int) error
}
