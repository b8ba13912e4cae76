package report

import (
	"testing"
	"time"

	"github.com/ardhimansyah/catatduit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(amount float64, category, createdAt string) model.Record {
	return model.Record{
		Date:      time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
		Amount:    amount,
		Category:  category,
		OwnerID:   "123",
		CreatedAt: createdAt,
	}
}

func TestBuild(t *testing.T) {
	s := Build([]model.Record{
		rec(5000000, "Gaji", "2024-01-01 09:00:00"),
		rec(-50000, "Makanan", "2024-01-02 09:00:00"),
		rec(-150000, "Makanan", "2024-01-03 09:00:00"),
		rec(-300000, "Tagihan", "2024-01-04 09:00:00"),
	})

	assert.Equal(t, float64(5000000), s.TotalIncome)
	assert.Equal(t, float64(500000), s.TotalExpense)
	assert.Equal(t, float64(4500000), s.Balance)

	require.Len(t, s.Categories, 2)
	assert.Equal(t, "Tagihan", s.Categories[0].Name)
	assert.InDelta(t, 60.0, s.Categories[0].Percent, 1e-9)
	assert.Equal(t, "Makanan", s.Categories[1].Name)
	assert.InDelta(t, 40.0, s.Categories[1].Percent, 1e-9)
}

func TestBuildNoExpensesYieldsZeroPercent(t *testing.T) {
	s := Build([]model.Record{
		rec(1000000, "Gaji", "2024-01-01 09:00:00"),
	})

	assert.Equal(t, float64(0), s.TotalExpense)
	assert.Empty(t, s.Categories)
	assert.Equal(t, float64(1000000), s.Balance)
}

func TestBuildUncategorizedExpenseFallsToLainnya(t *testing.T) {
	s := Build([]model.Record{
		rec(-10000, "", "2024-01-01 09:00:00"),
	})

	require.Len(t, s.Categories, 1)
	assert.Equal(t, "Lainnya", s.Categories[0].Name)
	assert.InDelta(t, 100.0, s.Categories[0].Percent, 1e-9)
}

func TestBuildRecentFiveNewestFirst(t *testing.T) {
	var records []model.Record
	for d := 1; d <= 7; d++ {
		records = append(records, rec(-1000, "Makanan",
			time.Date(2024, time.January, d, 9, 0, 0, 0, time.UTC).Format(model.CreatedAtLayout)))
	}

	s := Build(records)
	require.Len(t, s.Recent, RecentCount)
	assert.Equal(t, "2024-01-07 09:00:00", s.Recent[0].CreatedAt)
	assert.Equal(t, "2024-01-03 09:00:00", s.Recent[4].CreatedAt)
}

func TestBuildEmpty(t *testing.T) {
	s := Build(nil)
	assert.True(t, s.Empty())
	assert.Equal(t, float64(0), s.Balance)
}
