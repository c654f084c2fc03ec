package service

import (
	"context"

	"go.uber.org/zap"

	"dcreamy/internal/domain"
	"dcreamy/internal/dto"
)

type UsageRuleRepository interface {
	FindByProductID(ctx context.Context, productID string) ([]domain.UsageRule, error)
}

type StockItemRepository interface {
	FindByID(ctx context.Context, id string) (*domain.StockItem, error)
	Deduct(ctx context.Context, id string, required int) (bool, error)
	FloorToZero(ctx context.Context, id string) error
}

// DeductionService decrements the stock items a sold product consumes.
// The deduction is best-effort and never blocks the sale that triggered
// it: per-item failures are logged and skipped, and insufficiency is
// reported as data, not as an error. The store offers no multi-row
// transaction here, so partial application is accepted.
type DeductionService struct {
	usageRules UsageRuleRepository
	stockItems StockItemRepository
	logger     *zap.Logger
}

func NewDeductionService(
	usageRules UsageRuleRepository,
	stockItems StockItemRepository,
	logger *zap.Logger,
) *DeductionService {
	return &DeductionService{
		usageRules: usageRules,
		stockItems: stockItems,
		logger:     logger,
	}
}

// Deduct reduces every linked stock item by quantityUsed * quantity.
// Success is false only when the rule lookup itself fails, in which case
// nothing was deducted. Items that cannot cover the full amount are
// floored at zero and reported by name in InsufficientItems.
func (s *DeductionService) Deduct(ctx context.Context, productID string, quantity int) *dto.DeductionResult {
	if quantity < 1 {
		quantity = 1
	}

	insufficient := []string{}

	rules, err := s.usageRules.FindByProductID(ctx, productID)
	if err != nil {
		s.logger.Error("failed to fetch usage rules",
			zap.String("productId", productID), zap.Error(err))
		return &dto.DeductionResult{Success: false, InsufficientItems: insufficient}
	}

	if len(rules) == 0 {
		// Product consumes no tracked inventory.
		return &dto.DeductionResult{Success: true, InsufficientItems: insufficient}
	}

	for _, rule := range rules {
		required := rule.QuantityUsed * quantity
		if required <= 0 {
			continue
		}

		applied, err := s.stockItems.Deduct(ctx, rule.StockItemID, required)
		if err != nil {
			s.logger.Error("failed to deduct stock item",
				zap.String("stockItemId", rule.StockItemID), zap.Int("required", required), zap.Error(err))
			continue
		}
		if applied {
			continue
		}

		// Either the item is gone or it cannot cover the full amount.
		item, err := s.stockItems.FindByID(ctx, rule.StockItemID)
		if err != nil {
			s.logger.Warn("stock item referenced by usage rule is missing, skipping",
				zap.String("stockItemId", rule.StockItemID), zap.Error(err))
			continue
		}

		s.logger.Warn("insufficient stock",
			zap.String("stockItem", item.Name), zap.Int("have", item.Quantity), zap.Int("need", required))
		insufficient = append(insufficient, item.Name)

		if err := s.stockItems.FloorToZero(ctx, item.ID); err != nil {
			s.logger.Error("failed to floor stock item quantity",
				zap.String("stockItemId", item.ID), zap.Error(err))
		}
	}

	return &dto.DeductionResult{Success: true, InsufficientItems: insufficient}
}
