package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"dcreamy/internal/businessday"
	"dcreamy/internal/domain"
	"dcreamy/internal/dto"
	apperrors "dcreamy/internal/errors"
)

type TransactionRepository interface {
	Insert(ctx context.Context, t *domain.Transaction) error
	FindByID(ctx context.Context, id string) (*domain.Transaction, error)
	ListByWarung(ctx context.Context, warungID string, limit int) ([]domain.Transaction, error)
	ListByWarungBetween(ctx context.Context, warungID string, start, end time.Time, limit int) ([]domain.Transaction, error)
	Delete(ctx context.Context, id string) error
}

type ProductRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	DecrementStock(ctx context.Context, id string, quantity int) error
}

type StockDeducter interface {
	Deduct(ctx context.Context, productID string, quantity int) *dto.DeductionResult
}

// RecordService books income and expenses. A sale additionally lowers the
// product's stock count and runs the linked stock-item deduction, both
// best-effort: once the transaction row is committed, no stock problem
// blocks or reverses it.
type RecordService struct {
	transactions TransactionRepository
	products     ProductRepository
	deduction    StockDeducter
	clock        *businessday.Clock
	logger       *zap.Logger
}

func NewRecordService(
	transactions TransactionRepository,
	products ProductRepository,
	deduction StockDeducter,
	clock *businessday.Clock,
	logger *zap.Logger,
) *RecordService {
	return &RecordService{
		transactions: transactions,
		products:     products,
		deduction:    deduction,
		clock:        clock,
		logger:       logger,
	}
}

func (s *RecordService) Record(ctx context.Context, t *domain.Transaction) (*dto.RecordResult, error) {
	quantity := 1
	if t.Quantity != nil && *t.Quantity > 0 {
		quantity = *t.Quantity
	}

	if t.IsSale() {
		product, err := s.products.FindByID(ctx, *t.ProductID)
		if err != nil {
			return nil, err
		}
		if product.WarungID != t.WarungID {
			return nil, apperrors.NewForbiddenError("product belongs to another warung")
		}

		if t.Amount == 0 {
			t.Amount = product.SellPrice * float64(quantity)
		}
		if t.Category == "" {
			t.Category = product.Category
		}
	}

	if err := s.transactions.Insert(ctx, t); err != nil {
		return nil, err
	}

	insufficient := []string{}
	if t.IsSale() {
		// From here on the sale is booked; stock bookkeeping may only warn.
		if err := s.products.DecrementStock(ctx, *t.ProductID, quantity); err != nil {
			s.logger.Error("failed to decrement product stock",
				zap.String("productId", *t.ProductID), zap.Error(err))
		}

		result := s.deduction.Deduct(ctx, *t.ProductID, quantity)
		if !result.Success {
			s.logger.Warn("stock deduction skipped for sale",
				zap.String("transactionId", t.ID), zap.String("productId", *t.ProductID))
		}
		insufficient = result.InsufficientItems
	}

	s.logger.Info("transaction recorded",
		zap.String("transactionId", t.ID),
		zap.String("type", t.Type),
		zap.Float64("amount", t.Amount),
		zap.String("businessDay", s.clock.LabelFor(t.CreatedAt)))

	return &dto.RecordResult{
		Transaction:       toTransactionDTO(*t),
		InsufficientItems: insufficient,
	}, nil
}

// List returns recent transactions, optionally narrowed to the business
// day named by label (YYYY-MM-DD).
func (s *RecordService) List(ctx context.Context, warungID, label string, limit int) ([]dto.TransactionDTO, error) {
	var (
		transactions []domain.Transaction
		err          error
	)

	if label == "" {
		transactions, err = s.transactions.ListByWarung(ctx, warungID, limit)
	} else {
		var start, end time.Time
		start, end, err = s.clock.RangeForLabel(label)
		if err != nil {
			return nil, apperrors.NewValidationError("day must be a YYYY-MM-DD date", apperrors.ValidationDetail{
				Field:   "day",
				Message: "day must be a YYYY-MM-DD date",
			})
		}
		transactions, err = s.transactions.ListByWarungBetween(ctx, warungID, start, end, limit)
	}
	if err != nil {
		return nil, err
	}

	out := make([]dto.TransactionDTO, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, toTransactionDTO(t))
	}
	return out, nil
}

func (s *RecordService) Delete(ctx context.Context, warungID, id string) error {
	t, err := s.transactions.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if t.WarungID != warungID {
		return apperrors.NewForbiddenError("transaction belongs to another warung")
	}
	return s.transactions.Delete(ctx, id)
}

func toTransactionDTO(t domain.Transaction) dto.TransactionDTO {
	return dto.TransactionDTO{
		ID:            t.ID,
		Type:          t.Type,
		Amount:        t.Amount,
		ProductID:     t.ProductID,
		Quantity:      t.Quantity,
		Category:      t.Category,
		Note:          t.Note,
		PaymentMethod: t.PaymentMethod,
		CreatedBy:     t.CreatedBy,
		CreatedAt:     t.CreatedAt,
	}
}
