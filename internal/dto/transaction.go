package dto

import "time"

type CreateTransactionRequest struct {
	Type          string  `json:"type"`
	Amount        float64 `json:"amount"`
	ProductID     *string `json:"productId"`
	Quantity      *int    `json:"quantity"`
	Category      string  `json:"category"`
	Note          *string `json:"note"`
	PaymentMethod string  `json:"paymentMethod"`
}

type TransactionDTO struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Amount        float64   `json:"amount"`
	ProductID     *string   `json:"productId"`
	Quantity      *int      `json:"quantity"`
	Category      string    `json:"category"`
	Note          *string   `json:"note"`
	PaymentMethod string    `json:"paymentMethod"`
	CreatedBy     string    `json:"createdBy"`
	CreatedAt     time.Time `json:"createdAt"`
}

// RecordResult is the outcome of recording a transaction. The warning list
// carries stock items a sale could not fully cover; the transaction itself
// is committed regardless.
type RecordResult struct {
	Transaction       TransactionDTO `json:"transaction"`
	InsufficientItems []string       `json:"insufficientItems"`
}
