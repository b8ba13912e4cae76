package classify

import (
	"testing"

	"github.com/ardhimansyah/catatduit/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestDetectType(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.TransactionType
	}{
		{
			name: "empty string defaults to expense",
			text: "",
			want: model.TypeExpense,
		},
		{
			name: "salary is income",
			text: "Terima gaji bulan ini 5000000",
			want: model.TypeIncome,
		},
		{
			name: "purchase is expense",
			text: "Beli makan siang 50000",
			want: model.TypeExpense,
		},
		{
			name: "bill payment is expense",
			text: "Bayar tagihan listrik 350000",
			want: model.TypeExpense,
		},
		{
			name: "refund is income",
			text: "refund dari toko online 120000",
			want: model.TypeIncome,
		},
		{
			name: "tie goes to expense",
			text: "terima barang lalu bayar 50000",
			want: model.TypeExpense,
		},
		{
			name: "no indicators defaults to expense",
			text: "50000 kemarin",
			want: model.TypeExpense,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectType(tt.text))
		})
	}
}
