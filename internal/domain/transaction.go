package domain

import "time"

type Transaction struct {
	ID            string
	WarungID      string
	Type          string
	Amount        float64
	ProductID     *string
	Quantity      *int
	Category      string
	Note          *string
	PaymentMethod string
	CreatedBy     string
	CreatedAt     time.Time
}

const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

const (
	PaymentCash = "cash"
	PaymentQRIS = "qris"
)

// IsSale reports whether the transaction is a product sale, i.e. income
// tied to a catalog product. Only sales trigger stock deduction.
func (t Transaction) IsSale() bool {
	return t.Type == TransactionIncome && t.ProductID != nil
}
