package bot

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ardhimansyah/catatduit/internal/model"
	"github.com/ardhimansyah/catatduit/internal/report"
)

// displayDateLayout is how dates are shown in chat; the sheet keeps ISO.
const displayDateLayout = "02/01/2006"

const (
	maxCategoryLabel = 20
	maxButtonLabel   = 64
)

var (
	incomeCategories  = []string{"Gaji", "Bonus", "Investasi", "Hadiah", "Lainnya"}
	expenseCategories = []string{"Makanan", "Transportasi", "Belanja", "Hiburan", "Tagihan", "Lainnya"}
)

const deniedText = "Maaf, bot ini hanya untuk penggunaan pribadi."

const welcomeText = `Halo! 👋 Saya *CatatDuit*, asisten keuangan pribadi Anda.

Kirim saja transaksi dalam bahasa sehari-hari, misalnya:
• _beli makan siang 25rb_
• _gaji bulan ini 5 juta_
• _kemarin bayar listrik 200.000_

Beberapa transaksi sekaligus? Tulis satu per baris.

Perintah:
/catat - cara mencatat transaksi
/laporan - ringkasan keuangan
/sheet - buka spreadsheet
/hapus - hapus transaksi
/hapuspesan - atur pembersihan pesan otomatis
/help - bantuan`

const helpText = `*Bantuan CatatDuit*

*Mencatat transaksi*
Kirim teks bebas, contoh: _beli kopi 15000_, _dapat bonus 500rb kemarin_.
Tanggal relatif seperti _kemarin_, _senin lalu_, atau _3 hari lalu_ dimengerti.
Beberapa transaksi sekaligus: tulis satu per baris.

*Perintah*
/catat - cara mencatat transaksi
/laporan - ringkasan pemasukan, pengeluaran, dan saldo
/sheet - tautan ke spreadsheet
/hapus - hapus transaksi (terakhir, pilih, rentang tanggal, atau semua)
/hapuspesan - nyalakan/matikan pembersihan pesan otomatis`

const recordHintText = `Cukup kirim transaksi dalam bahasa sehari-hari:

• _beli makan siang 25rb_
• _gaji bulan ini 5 juta_
• _kemarin bayar parkir 5000_

Untuk beberapa transaksi sekaligus, tulis satu transaksi per baris.`

const (
	analyzingText     = "🔍 Menganalisis transaksi Anda..."
	savingText        = "💾 Menyimpan transaksi..."
	genericErrorText  = "⚠️ Terjadi kesalahan. Silakan coba lagi nanti."
	extractFailedText = "❌ Maaf, saya tidak bisa memahami transaksi tersebut. Coba tulis ulang, misalnya: beli makan siang 25000"
	cancelledText     = "❌ Transaksi dibatalkan."
	deleteCancelText  = "❌ Penghapusan data dibatalkan."
	invalidAmountText = "⚠️ Mohon masukkan jumlah yang valid (angka saja), contoh: 50000"
	invalidDateText   = "⚠️ Format tanggal tidak valid. Gunakan format YYYY-MM-DD, contoh: 2024-01-31"
	endBeforeStartT   = "⚠️ Tanggal akhir harus setelah tanggal awal. Masukkan tanggal akhir lagi (YYYY-MM-DD):"
	deleteStartPrompt = "Masukkan tanggal awal (YYYY-MM-DD):"
	deleteEndPrompt   = "Masukkan tanggal akhir (YYYY-MM-DD):"
	noRecordsText     = "Belum ada transaksi yang tercatat."
	noRecordsRangeT   = "Tidak ada transaksi pada rentang tanggal tersebut."
)

// formatRupiah renders an amount with dot thousand separators, no sign and
// no decimals: 1234567 becomes "1.234.567".
func formatRupiah(amount float64) string {
	digits := strconv.FormatFloat(math.Abs(amount), 'f', 0, 64)

	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	return b.String()
}

func formatDisplayDate(t time.Time) string {
	return t.Format(displayDateLayout)
}

func typeLabel(t model.TransactionType) string {
	if t == model.TypeIncome {
		return "Pemasukan"
	}
	return "Pengeluaran"
}

func typeEmoji(t model.TransactionType) string {
	if t == model.TypeIncome {
		return "💰"
	}
	return "💸"
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

func pendingDetails(p model.Pending) string {
	return fmt.Sprintf(
		"📅 Tanggal: %s\n%s Jumlah: Rp %s\n📊 Jenis: %s\n🏷 Kategori: %s\n📝 Deskripsi: %s",
		formatDisplayDate(p.Date),
		typeEmoji(p.Type()),
		formatRupiah(p.Amount),
		typeLabel(p.Type()),
		p.Category,
		p.Description,
	)
}

func singleConfirmationText(p model.Pending) string {
	return "📝 Detail Transaksi\n\n" + pendingDetails(p) + "\n\nApakah data ini sudah benar?"
}

func singleConfirmationKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Benar", "confirm_yes"),
			tgbotapi.NewInlineKeyboardButtonData("❌ Salah", "confirm_no"),
		),
	)
}

func batchConfirmationText(batch model.PendingBatch) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📝 Ditemukan %d transaksi:\n", len(batch))
	for i, p := range batch {
		fmt.Fprintf(&b, "\n%d. %s %s - Rp %s (%s)",
			i+1,
			typeEmoji(p.Type()),
			truncate(p.Description, maxCategoryLabel),
			formatRupiah(p.Amount),
			formatDisplayDate(p.Date),
		)
	}
	b.WriteString("\n\nSimpan semua transaksi ini?")
	return b.String()
}

func batchConfirmationKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Simpan Semua", "confirm_all_yes"),
			tgbotapi.NewInlineKeyboardButtonData("❌ Batal", "confirm_all_no"),
		),
	)
}

func commitSuccessText(p model.Pending) string {
	return "✅ Transaksi berhasil dicatat!\n\n" + pendingDetails(p)
}

func batchResultText(saved, total int) string {
	if saved == total {
		return fmt.Sprintf("✅ %d dari %d transaksi berhasil dicatat!", saved, total)
	}
	return fmt.Sprintf("⚠️ %d dari %d transaksi berhasil dicatat. Sisanya gagal disimpan, silakan coba lagi.", saved, total)
}

func typeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💰 Pemasukan", "type_income"),
			tgbotapi.NewInlineKeyboardButtonData("💸 Pengeluaran", "type_expense"),
		),
	)
}

func typePromptText(description string, date time.Time) string {
	return fmt.Sprintf(
		"🤔 Saya belum bisa menentukan jumlahnya.\n\n📅 Tanggal: %s\n📝 Deskripsi: %s\n\nIni pemasukan atau pengeluaran?",
		formatDisplayDate(date),
		truncate(description, maxButtonLabel),
	)
}

func correctionPromptText(description string) string {
	return fmt.Sprintf(
		"Baik, mari perbaiki.\n\n📝 Deskripsi: %s\n\nIni pemasukan atau pengeluaran?",
		truncate(description, maxButtonLabel),
	)
}

func amountPromptText(t model.TransactionType, description string, date time.Time) string {
	return fmt.Sprintf(
		"📅 Tanggal: %s\n\nBerapa jumlah %s untuk \"%s\"?",
		formatDisplayDate(date),
		strings.ToLower(typeLabel(t)),
		truncate(description, maxButtonLabel),
	)
}

func categoryPromptText(t model.TransactionType) string {
	return fmt.Sprintf("Pilih kategori %s:", strings.ToLower(typeLabel(t)))
}

// categoryKeyboard lays the type's categories out two per row.
func categoryKeyboard(t model.TransactionType) tgbotapi.InlineKeyboardMarkup {
	categories := expenseCategories
	if t == model.TypeIncome {
		categories = incomeCategories
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(categories); i += 2 {
		row := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(categories[i], "cat_"+categories[i]),
		}
		if i+1 < len(categories) {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(categories[i+1], "cat_"+categories[i+1]))
		}
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func deleteMenuText() string {
	return "🗑 Pilih data yang ingin dihapus:"
}

func deleteMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🕐 Transaksi terakhir", "delete_last"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 Pilih transaksi", "delete_specific"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📅 Rentang tanggal", "delete_date"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚠️ Semua data", "delete_all"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Batal", "delete_cancel"),
		),
	)
}

// recordButtonLabel is the one-line summary shown on a pick-to-delete button.
func recordButtonLabel(rec model.Record) string {
	label := fmt.Sprintf("%s %s Rp %s - %s",
		formatDisplayDate(rec.Date),
		typeEmoji(rec.Type()),
		formatRupiah(rec.Amount),
		rec.Description,
	)
	return truncate(label, maxButtonLabel)
}

func specificDeleteKeyboard(targets []model.Record) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, rec := range targets {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(recordButtonLabel(rec), fmt.Sprintf("del_specific_%d", i)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("❌ Batal", "delete_cancel"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func recordDetails(rec model.Record) string {
	return fmt.Sprintf(
		"📅 Tanggal: %s\n%s Jumlah: Rp %s\n🏷 Kategori: %s\n📝 Deskripsi: %s",
		formatDisplayDate(rec.Date),
		typeEmoji(rec.Type()),
		formatRupiah(rec.Amount),
		rec.Category,
		rec.Description,
	)
}

func deletedRecordText(rec model.Record) string {
	return "🗑 Transaksi dihapus:\n\n" + recordDetails(rec)
}

func deleteRangeConfirmText(start, end time.Time, count int) string {
	return fmt.Sprintf(
		"⚠️ Ditemukan %d transaksi antara %s dan %s.\n\nYakin ingin menghapus semuanya?",
		count,
		formatDisplayDate(start),
		formatDisplayDate(end),
	)
}

func deleteRangeConfirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Ya, hapus", "confirm_delete_date"),
			tgbotapi.NewInlineKeyboardButtonData("❌ Batal", "delete_cancel"),
		),
	)
}

func deleteAllConfirmText() string {
	return "⚠️ PERHATIAN: ini akan menghapus SEMUA transaksi Anda dan tidak bisa dibatalkan.\n\nYakin ingin melanjutkan?"
}

func deleteAllConfirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Ya, hapus semua", "confirm_delete_all"),
			tgbotapi.NewInlineKeyboardButtonData("❌ Batal", "delete_cancel"),
		),
	)
}

func deletedCountText(count int) string {
	return fmt.Sprintf("🗑 %d transaksi berhasil dihapus.", count)
}

func cleanupToggleText(enabled bool) string {
	if enabled {
		return "🧹 Pembersihan pesan otomatis: AKTIF.\nPesan transaksi akan dihapus beberapa saat setelah tercatat."
	}
	return "🧹 Pembersihan pesan otomatis: NONAKTIF.\nPesan transaksi akan dibiarkan di chat."
}

func sheetLinkText(url string) string {
	return "📊 Spreadsheet Anda:\n" + url
}

// reportText renders the financial summary as Markdown.
func reportText(s report.Summary) string {
	if s.Empty() {
		return noRecordsText
	}

	var b strings.Builder
	b.WriteString("📊 *Laporan Keuangan*\n\n")
	fmt.Fprintf(&b, "💰 Pemasukan: Rp %s\n", formatRupiah(s.TotalIncome))
	fmt.Fprintf(&b, "💸 Pengeluaran: Rp %s\n", formatRupiah(s.TotalExpense))
	fmt.Fprintf(&b, "💵 Saldo: Rp %s\n", formatRupiah(s.Balance))
	if s.Balance < 0 {
		b.WriteString("⚠️ Pengeluaran melebihi pemasukan!\n")
	}

	if len(s.Categories) > 0 {
		b.WriteString("\n🏷 *Pengeluaran per Kategori*\n")
		for _, c := range s.Categories {
			fmt.Fprintf(&b, "• %s: Rp %s (%.1f%%)\n", c.Name, formatRupiah(c.Amount), c.Percent)
		}
	}

	b.WriteString("\n🕐 *Transaksi Terakhir*\n")
	for _, rec := range s.Recent {
		fmt.Fprintf(&b, "• %s %s Rp %s - %s\n",
			formatDisplayDate(rec.Date),
			typeEmoji(rec.Type()),
			formatRupiah(rec.Amount),
			truncate(rec.Description, maxCategoryLabel),
		)
	}
	return b.String()
}
