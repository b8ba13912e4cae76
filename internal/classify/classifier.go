// Package classify provides keyword-based income/expense detection. It is
// the fallback consulted when the extraction oracle does not supply a
// confident transaction type.
package classify

import (
	"strings"

	"github.com/ardhimansyah/catatduit/internal/model"
)

// Fixed indicator vocabularies. Matching is substring-based over the
// lower-cased input, mirroring how owners actually phrase transactions.
var incomeWords = []string{
	"terima", "dapat", "pemasukan", "masuk", "diterima",
	"gaji", "bonus", "komisi", "dividen", "bunga", "hadiah",
	"warisan", "penjualan", "refund", "kembalian", "cashback",
	"dibayar oleh", "transfer dari", "kiriman dari", "diberi", "dikasih",
}

var expenseWords = []string{
	"beli", "bayar", "belanja", "pengeluaran", "keluar", "dibayar",
	"membeli", "memesan", "berlangganan", "sewa", "booking",
	"makanan", "transportasi", "bensin", "pulsa", "tagihan", "biaya", "iuran",
	"dibayarkan untuk", "transfer ke", "kirim ke",
}

// DetectType scores the text against both vocabularies and returns the type
// with the higher match count. Expense wins ties and the no-match case:
// under-recording income is safer than under-recording spend for a personal
// ledger.
func DetectType(text string) model.TransactionType {
	text = strings.ToLower(text)

	incomeScore := 0
	for _, word := range incomeWords {
		if strings.Contains(text, word) {
			incomeScore++
		}
	}

	expenseScore := 0
	for _, word := range expenseWords {
		if strings.Contains(text, word) {
			expenseScore++
		}
	}

	if incomeScore > expenseScore {
		return model.TypeIncome
	}
	return model.TypeExpense
}
