package extract

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBatch_DropsUnparseableLines(t *testing.T) {
	oracle := &scriptedOracle{replies: []string{
		`{"amount": 5000000, "category": "Gaji", "description": "gaji", "transaction_type": "income", "date": null, "time_context": null}`,
		`{"amount": null, "category": null, "description": null, "transaction_type": null, "date": null, "time_context": null}`,
		`{"amount": 25000, "category": "Transportasi", "description": "bensin", "transaction_type": "expense", "date": null, "time_context": null}`,
	}}
	e := NewExtractor(oracle, slog.Default())

	batch, err := e.ExtractBatch(context.Background(), "Terima gaji 5000000\nentah apa ini\nBeli bensin 25000", refDate())
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, float64(5000000), batch[0].Amount)
	assert.Equal(t, float64(-25000), batch[1].Amount)
}

func TestExtractBatch_SkipsEmptyLines(t *testing.T) {
	oracle := &scriptedOracle{replies: []string{
		`{"amount": 10000, "category": null, "description": null, "transaction_type": "expense", "date": null, "time_context": null}`,
	}}
	e := NewExtractor(oracle, slog.Default())

	batch, err := e.ExtractBatch(context.Background(), "\n\nbeli kopi 10000\n   \n", refDate())
	require.NoError(t, err)
	assert.Len(t, batch, 1)
	assert.Equal(t, 1, oracle.calls)
}

func TestExtractBatch_AllUnparseableYieldsEmpty(t *testing.T) {
	oracle := &scriptedOracle{replies: []string{"not json at all"}}
	e := NewExtractor(oracle, slog.Default())

	batch, err := e.ExtractBatch(context.Background(), "halo\napa kabar", refDate())
	require.NoError(t, err)
	assert.Empty(t, batch)
}

func TestExtractBatch_ReferenceAmounts(t *testing.T) {
	// Spec reference case: two-line input yields amounts [5000000, -25000].
	oracle := &scriptedOracle{replies: []string{
		`{"amount": 5000000, "category": "Gaji", "description": "terima gaji", "transaction_type": "income", "date": "2024-01-10", "time_context": null}`,
		`{"amount": 25000, "category": "Transportasi", "description": "beli bensin", "transaction_type": "expense", "date": "2024-01-10", "time_context": null}`,
	}}
	e := NewExtractor(oracle, slog.Default())

	batch, err := e.ExtractBatch(context.Background(), "Terima gaji 5000000\nBeli bensin 25000", time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, []float64{5000000, -25000}, []float64{batch[0].Amount, batch[1].Amount})
}

func TestCountLines(t *testing.T) {
	assert.Equal(t, 0, CountLines("  \n \n"))
	assert.Equal(t, 1, CountLines("beli kopi 10000"))
	assert.Equal(t, 3, CountLines("a\n\nb\nc\n"))
}
