package ledger

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory RowStore for tests. It records the order of
// DeleteRow calls so tests can assert the descending-position protocol.
type MemoryStore struct {
	mu       sync.Mutex
	rows     [][]string
	Deleted  []int
	FailNext error
}

// NewMemoryStore creates a store seeded with the contractual header.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: [][]string{append([]string(nil), Header...)}}
}

// Append adds one data row.
func (m *MemoryStore) Append(_ context.Context, row []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailNext != nil {
		err := m.FailNext
		m.FailNext = nil
		return err
	}
	m.rows = append(m.rows, append([]string(nil), row...))
	return nil
}

// Rows returns a copy of all rows including the header.
func (m *MemoryStore) Rows(_ context.Context) ([][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]string, len(m.rows))
	for i, row := range m.rows {
		out[i] = append([]string(nil), row...)
	}
	return out, nil
}

// DeleteRow removes the data row at the given 1-based position.
func (m *MemoryStore) DeleteRow(_ context.Context, position int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if position < 1 || position >= len(m.rows) {
		return fmt.Errorf("position %d out of range", position)
	}
	m.Deleted = append(m.Deleted, position)
	m.rows = append(m.rows[:position], m.rows[position+1:]...)
	return nil
}

// Len reports the number of data rows.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows) - 1
}
