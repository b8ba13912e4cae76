package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardhimansyah/catatduit/internal/model"
	"github.com/ardhimansyah/catatduit/internal/report"
)

func TestFormatRupiah(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"small", 500, "500"},
		{"thousands", 1500, "1.500"},
		{"millions", 1234567, "1.234.567"},
		{"negative uses absolute value", -50000, "50.000"},
		{"zero", 0, "0"},
		{"exact boundary", 1000, "1.000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatRupiah(tt.amount))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 20))
	assert.Equal(t, "exactly twenty chars", truncate("exactly twenty chars", 20))
	assert.Equal(t, "this is definitel...", truncate("this is definitely longer than twenty", 20))
	assert.Len(t, []rune(truncate("makan siang bersama teman kantor di warung", 20)), 20)
}

func TestPendingDetailsUsesDisplayDateAndTypeLabel(t *testing.T) {
	p := model.Pending{
		Date:        time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
		Amount:      -25000,
		Category:    "Makanan",
		Description: "makan siang",
	}

	text := pendingDetails(p)
	assert.Contains(t, text, "31/01/2024")
	assert.Contains(t, text, "Rp 25.000")
	assert.Contains(t, text, "Pengeluaran")
	assert.Contains(t, text, "Makanan")
}

func TestCategoryKeyboardCallbacks(t *testing.T) {
	kb := categoryKeyboard(model.TypeIncome)

	var payloads []string
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			require.NotNil(t, btn.CallbackData)
			payloads = append(payloads, *btn.CallbackData)
		}
	}
	assert.Equal(t, []string{"cat_Gaji", "cat_Bonus", "cat_Investasi", "cat_Hadiah", "cat_Lainnya"}, payloads)

	kb = categoryKeyboard(model.TypeExpense)
	total := 0
	for _, row := range kb.InlineKeyboard {
		total += len(row)
	}
	assert.Equal(t, len(expenseCategories), total)
}

func TestSpecificDeleteKeyboardIndexesMatchTargets(t *testing.T) {
	targets := []model.Record{
		{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Amount: -5000, Description: "parkir"},
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Amount: 100000, Description: "bonus"},
	}

	kb := specificDeleteKeyboard(targets)
	require.Len(t, kb.InlineKeyboard, 3) // two records plus cancel

	require.NotNil(t, kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "del_specific_0", *kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "del_specific_1", *kb.InlineKeyboard[1][0].CallbackData)
	assert.Equal(t, "delete_cancel", *kb.InlineKeyboard[2][0].CallbackData)
}

func TestRecordButtonLabelStaysWithinLimit(t *testing.T) {
	rec := model.Record{
		Date:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Amount:      -1234567,
		Description: "belanja bulanan di supermarket dekat rumah bersama keluarga besar",
	}
	assert.LessOrEqual(t, len([]rune(recordButtonLabel(rec))), maxButtonLabel)
}

func TestReportText(t *testing.T) {
	records := []model.Record{
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Amount: 5000000, Category: "Gaji", Description: "gaji", CreatedAt: "2024-01-01 09:00:00"},
		{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Amount: -30000, Category: "Makanan", Description: "makan siang", CreatedAt: "2024-01-02 12:00:00"},
		{Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), Amount: -20000, Category: "Transportasi", Description: "ojek", CreatedAt: "2024-01-03 08:00:00"},
	}

	text := reportText(report.Build(records))
	assert.Contains(t, text, "Pemasukan: Rp 5.000.000")
	assert.Contains(t, text, "Pengeluaran: Rp 50.000")
	assert.Contains(t, text, "Saldo: Rp 4.950.000")
	assert.Contains(t, text, "Makanan: Rp 30.000 (60.0%)")
	assert.Contains(t, text, "Transportasi: Rp 20.000 (40.0%)")
	assert.NotContains(t, text, "melebihi")
}

func TestReportTextDeficitWarning(t *testing.T) {
	records := []model.Record{
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Amount: 1000, Category: "Gaji", CreatedAt: "2024-01-01 09:00:00"},
		{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Amount: -5000, Category: "Makanan", CreatedAt: "2024-01-02 12:00:00"},
	}
	assert.Contains(t, reportText(report.Build(records)), "melebihi")
}

func TestReportTextEmpty(t *testing.T) {
	assert.Equal(t, noRecordsText, reportText(report.Build(nil)))
}
