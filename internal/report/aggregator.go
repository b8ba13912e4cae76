// Package report computes income/expense summaries over an owner's records.
package report

import (
	"math"
	"sort"

	"github.com/ardhimansyah/catatduit/internal/ledger"
	"github.com/ardhimansyah/catatduit/internal/model"
)

// RecentCount is how many latest records a summary carries.
const RecentCount = 5

// CategoryTotal is one expense category line.
type CategoryTotal struct {
	Name    string
	Amount  float64
	Percent float64
}

// Summary aggregates an owner's ledger.
type Summary struct {
	TotalIncome  float64
	TotalExpense float64
	Balance      float64
	Categories   []CategoryTotal
	Recent       []model.Record
}

// Empty reports whether there was nothing to aggregate.
func (s Summary) Empty() bool {
	return len(s.Recent) == 0
}

// Build computes the summary for the given records. Category percentages are
// shares of total expense; with no expenses every share is 0, never an
// error.
func Build(records []model.Record) Summary {
	var s Summary

	byCategory := make(map[string]float64)
	for _, rec := range records {
		if rec.Amount > 0 {
			s.TotalIncome += rec.Amount
			continue
		}
		expense := math.Abs(rec.Amount)
		s.TotalExpense += expense

		category := rec.Category
		if category == "" {
			category = "Lainnya"
		}
		byCategory[category] += expense
	}
	s.Balance = s.TotalIncome - s.TotalExpense

	s.Categories = make([]CategoryTotal, 0, len(byCategory))
	for name, amount := range byCategory {
		percent := 0.0
		if s.TotalExpense > 0 {
			percent = amount / s.TotalExpense * 100
		}
		s.Categories = append(s.Categories, CategoryTotal{Name: name, Amount: amount, Percent: percent})
	}
	sort.Slice(s.Categories, func(i, j int) bool {
		if s.Categories[i].Amount != s.Categories[j].Amount {
			return s.Categories[i].Amount > s.Categories[j].Amount
		}
		return s.Categories[i].Name < s.Categories[j].Name
	})

	s.Recent = ledger.Recent(records, RecentCount)

	return s
}
