package extract

import (
	"fmt"
	"strings"
	"time"

	"github.com/ardhimansyah/catatduit/internal/model"
)

// buildPrompt assembles the one-shot extraction prompt. The reply contract
// is a single JSON object; every field is nullable so the caller can tell
// "missing" apart from "zero".
func buildPrompt(text string, ref time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Extract financial information from this Indonesian text: %q\n", text)
	fmt.Fprintf(&b, "Today's date is %s (%s).\n\n", ref.Format(model.DateLayout), ref.Format("Monday, 02 January 2006"))

	b.WriteString(`Return a JSON object with these fields:
- amount: the monetary amount (numeric value only, without currency symbols)
- category: the spending/income category
- description: brief description of the transaction
- transaction_type: "income" if this is money received, or "expense" if this is money spent
- date: the date of the transaction in YYYY-MM-DD format
- time_context: any time-related information found in the text (e.g., "kemarin", "senin lalu", "2 hari yang lalu")

For the date field, analyze time expressions carefully:
`)
	fmt.Fprintf(&b, "- \"kemarin\", \"yesterday\" -> %s\n", ref.AddDate(0, 0, -1).Format(model.DateLayout))
	fmt.Fprintf(&b, "- \"hari ini\", \"today\", \"sekarang\" -> %s\n", ref.Format(model.DateLayout))
	fmt.Fprintf(&b, "- \"besok\", \"tomorrow\" -> %s\n", ref.AddDate(0, 0, 1).Format(model.DateLayout))
	fmt.Fprintf(&b, "- \"lusa\", \"day after tomorrow\" -> %s\n", ref.AddDate(0, 0, 2).Format(model.DateLayout))
	b.WriteString(`- "2 hari yang lalu", "2 days ago" -> subtract the specified number of days
- "minggu lalu", "last week" -> subtract 7 days
- day names like "Senin" -> the most recent occurrence of that day
- "Senin lalu" -> the previous Monday, never today
- "Senin depan" -> the next Monday, never today
`)
	fmt.Fprintf(&b, "If no date is mentioned, use today's date (%s).\n\n", ref.Format(model.DateLayout))

	b.WriteString(`For transaction_type:
INCOME indicators: terima, dapat, pemasukan, gaji, bonus, komisi, dividen, hadiah, penjualan, refund, kembalian, cashback, transfer dari, kiriman dari.
EXPENSE indicators: beli, bayar, belanja, pengeluaran, membeli, memesan, berlangganan, sewa, bensin, pulsa, tagihan, biaya, iuran, transfer ke.
If still unclear, default to "expense".

For category, prefer:
- Income categories: Gaji, Bonus, Investasi, Hadiah, Penjualan, Bisnis
- Expense categories: Makanan, Transportasi, Belanja, Hiburan, Tagihan, Kesehatan, Pendidikan

If any field is unclear, set it to null.
Return ONLY the JSON object, no extra text.
`)

	return b.String()
}
