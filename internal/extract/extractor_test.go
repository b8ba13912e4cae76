package extract

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/ardhimansyah/catatduit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedOracle returns canned replies in order, cycling the last one.
type scriptedOracle struct {
	replies []string
	err     error
	calls   int
}

func (s *scriptedOracle) Generate(_ context.Context, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	i := s.calls
	if i >= len(s.replies) {
		i = len(s.replies) - 1
	}
	s.calls++
	return s.replies[i], nil
}

func testExtractor(replies ...string) (*Extractor, *scriptedOracle) {
	oracle := &scriptedOracle{replies: replies}
	return NewExtractor(oracle, slog.Default()), oracle
}

func refDate() time.Time {
	return time.Date(2024, time.January, 10, 14, 30, 0, 0, time.UTC)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExtract_CompleteExpense(t *testing.T) {
	e, _ := testExtractor(`{
		"amount": 50000,
		"category": "Makanan",
		"description": "makan siang",
		"transaction_type": "expense",
		"date": "2024-01-10",
		"time_context": null
	}`)

	got, err := e.Extract(context.Background(), "Beli makan siang 50000", refDate())
	require.NoError(t, err)
	require.True(t, got.Complete())
	assert.Equal(t, float64(-50000), *got.Amount)
	assert.Equal(t, "Makanan", got.Category)
	assert.Equal(t, day(2024, time.January, 10), got.Date)
}

func TestExtract_FencedReply(t *testing.T) {
	e, _ := testExtractor("```json\n" + `{"amount": 5000000, "category": "Gaji", "description": "gaji", "transaction_type": "income", "date": "2024-01-10", "time_context": null}` + "\n```")

	got, err := e.Extract(context.Background(), "Terima gaji 5000000", refDate())
	require.NoError(t, err)
	require.True(t, got.Complete())
	assert.Equal(t, float64(5000000), *got.Amount)
}

func TestExtract_NullDateUsesTimeContext(t *testing.T) {
	e, _ := testExtractor(`{"amount": 25000, "category": null, "description": null, "transaction_type": "expense", "date": null, "time_context": "kemarin"}`)

	got, err := e.Extract(context.Background(), "beli bensin kemarin 25000", refDate())
	require.NoError(t, err)
	assert.Equal(t, day(2024, time.January, 9), got.Date)
}

func TestExtract_NullDateNoContextDefaultsToRef(t *testing.T) {
	e, _ := testExtractor(`{"amount": 25000, "category": null, "description": null, "transaction_type": "expense", "date": null, "time_context": null}`)

	got, err := e.Extract(context.Background(), "bayar parkir 25000", refDate())
	require.NoError(t, err)
	assert.Equal(t, day(2024, time.January, 10), got.Date)
}

func TestExtract_NullTypeFallsBackToClassifier(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"income keywords", "terima gaji bulanan 100000", 100000},
		{"expense keywords", "beli pulsa 100000", -100000},
		{"no keywords defaults to expense", "100000 untuk nanti", -100000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := testExtractor(`{"amount": 100000, "category": null, "description": null, "transaction_type": null, "date": null, "time_context": null}`)
			got, err := e.Extract(context.Background(), tt.text, refDate())
			require.NoError(t, err)
			require.True(t, got.Complete())
			assert.Equal(t, tt.want, *got.Amount)
		})
	}
}

func TestExtract_SignOverridesOracleSign(t *testing.T) {
	// The oracle returned a negative amount for income; normalization takes
	// the absolute value and re-applies sign from the type.
	e, _ := testExtractor(`{"amount": -75000, "category": null, "description": null, "transaction_type": "income", "date": null, "time_context": null}`)

	got, err := e.Extract(context.Background(), "dapat kembalian 75000", refDate())
	require.NoError(t, err)
	assert.Equal(t, float64(75000), *got.Amount)
}

func TestExtract_QuotedAmount(t *testing.T) {
	e, _ := testExtractor(`{"amount": "50000", "category": null, "description": null, "transaction_type": "expense", "date": null, "time_context": null}`)

	got, err := e.Extract(context.Background(), "beli kopi 50000", refDate())
	require.NoError(t, err)
	require.True(t, got.Complete())
	assert.Equal(t, float64(-50000), *got.Amount)
}

func TestExtract_MalformedReplyIsIncompleteWithRefDate(t *testing.T) {
	e, _ := testExtractor("sorry, I could not parse that")

	got, err := e.Extract(context.Background(), "apalah ini", refDate())
	require.NoError(t, err)
	assert.False(t, got.Complete())
	assert.Nil(t, got.Amount)
	assert.Equal(t, day(2024, time.January, 10), got.Date)
}

func TestExtract_OracleFailureIsIncomplete(t *testing.T) {
	oracle := &scriptedOracle{err: fmt.Errorf("boom")}
	e := NewExtractor(oracle, slog.Default())

	got, err := e.Extract(context.Background(), "beli kopi 20000", refDate())
	require.NoError(t, err)
	assert.False(t, got.Complete())
}

func TestExtract_EndToEndReference(t *testing.T) {
	// Spec reference case: "Beli makan siang 50000" on 2024-01-10.
	e, _ := testExtractor(`{"amount": 50000, "category": "Makanan", "description": "makan siang", "transaction_type": "expense", "date": "2024-01-10", "time_context": null}`)

	got, err := e.Extract(context.Background(), "Beli makan siang 50000", day(2024, time.January, 10))
	require.NoError(t, err)
	require.True(t, got.Complete())

	p := got.Pending()
	assert.Equal(t, float64(-50000), p.Amount)
	assert.Equal(t, day(2024, time.January, 10), p.Date)
	assert.Equal(t, model.TypeExpense, p.Type())
}
