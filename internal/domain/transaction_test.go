package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTransaction_Creation(t *testing.T) {
	productID := "p-1"
	quantity := 2
	note := "es krim coklat"

	tx := Transaction{
		ID:            "t-1",
		WarungID:      "w-1",
		Type:          TransactionIncome,
		Amount:        24000,
		ProductID:     &productID,
		Quantity:      &quantity,
		Category:      "Penjualan",
		Note:          &note,
		PaymentMethod: PaymentCash,
		CreatedBy:     "u-1",
		CreatedAt:     time.Now(),
	}

	assert.Equal(t, TransactionIncome, tx.Type)
	assert.Equal(t, 24000.0, tx.Amount)
	assert.Equal(t, &productID, tx.ProductID)
	assert.Equal(t, &quantity, tx.Quantity)
	assert.Equal(t, &note, tx.Note)
}

func TestTransaction_TypeConstants(t *testing.T) {
	assert.Equal(t, "income", TransactionIncome)
	assert.Equal(t, "expense", TransactionExpense)
}

func TestTransaction_IsSale(t *testing.T) {
	productID := "p-1"

	tests := []struct {
		name string
		tx   Transaction
		want bool
	}{
		{
			name: "income with product",
			tx:   Transaction{Type: TransactionIncome, ProductID: &productID},
			want: true,
		},
		{
			name: "income without product",
			tx:   Transaction{Type: TransactionIncome},
			want: false,
		},
		{
			name: "expense with product",
			tx:   Transaction{Type: TransactionExpense, ProductID: &productID},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tx.IsSale())
		})
	}
}
