package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"dcreamy/internal/domain"
	apperrors "dcreamy/internal/errors"
)

// Mock implementations

type mockUsageRuleRepository struct {
	FindByProductIDFunc func(ctx context.Context, productID string) ([]domain.UsageRule, error)
}

func (m *mockUsageRuleRepository) FindByProductID(ctx context.Context, productID string) ([]domain.UsageRule, error) {
	return m.FindByProductIDFunc(ctx, productID)
}

type mockStockItemRepository struct {
	FindByIDFunc    func(ctx context.Context, id string) (*domain.StockItem, error)
	DeductFunc      func(ctx context.Context, id string, required int) (bool, error)
	FloorToZeroFunc func(ctx context.Context, id string) error

	deductCalls []deductCall
	flooredIDs  []string
}

type deductCall struct {
	id       string
	required int
}

func (m *mockStockItemRepository) FindByID(ctx context.Context, id string) (*domain.StockItem, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockStockItemRepository) Deduct(ctx context.Context, id string, required int) (bool, error) {
	m.deductCalls = append(m.deductCalls, deductCall{id: id, required: required})
	return m.DeductFunc(ctx, id, required)
}

func (m *mockStockItemRepository) FloorToZero(ctx context.Context, id string) error {
	m.flooredIDs = append(m.flooredIDs, id)
	if m.FloorToZeroFunc != nil {
		return m.FloorToZeroFunc(ctx, id)
	}
	return nil
}

func newTestDeductionService(rules *mockUsageRuleRepository, items *mockStockItemRepository) *DeductionService {
	return NewDeductionService(rules, items, zap.NewNop())
}

// Tests

func TestDeduct_NoUsageRules_NoWrites(t *testing.T) {
	rules := &mockUsageRuleRepository{
		FindByProductIDFunc: func(ctx context.Context, productID string) ([]domain.UsageRule, error) {
			return nil, nil
		},
	}
	items := &mockStockItemRepository{}

	result := newTestDeductionService(rules, items).Deduct(context.Background(), "p-1", 3)

	assert.True(t, result.Success)
	assert.Empty(t, result.InsufficientItems)
	assert.Empty(t, items.deductCalls, "unlinked product must not touch stock")
}

func TestDeduct_RuleLookupFails_NoDeductions(t *testing.T) {
	rules := &mockUsageRuleRepository{
		FindByProductIDFunc: func(ctx context.Context, productID string) ([]domain.UsageRule, error) {
			return nil, errors.New("connection refused")
		},
	}
	items := &mockStockItemRepository{}

	result := newTestDeductionService(rules, items).Deduct(context.Background(), "p-1", 1)

	assert.False(t, result.Success)
	assert.Empty(t, result.InsufficientItems)
	assert.Empty(t, items.deductCalls)
}

func TestDeduct_SufficientStock_Applied(t *testing.T) {
	rules := &mockUsageRuleRepository{
		FindByProductIDFunc: func(ctx context.Context, productID string) ([]domain.UsageRule, error) {
			return []domain.UsageRule{
				{ProductID: productID, StockItemID: "si-cup", QuantityUsed: 2},
			}, nil
		},
	}
	items := &mockStockItemRepository{
		DeductFunc: func(ctx context.Context, id string, required int) (bool, error) {
			return true, nil
		},
	}

	result := newTestDeductionService(rules, items).Deduct(context.Background(), "p-1", 3)

	assert.True(t, result.Success)
	assert.Empty(t, result.InsufficientItems)
	// quantityUsed 2 * quantity 3
	assert.Equal(t, []deductCall{{id: "si-cup", required: 6}}, items.deductCalls)
	assert.Empty(t, items.flooredIDs)
}

func TestDeduct_InsufficientStock_FlooredAndReported(t *testing.T) {
	rules := &mockUsageRuleRepository{
		FindByProductIDFunc: func(ctx context.Context, productID string) ([]domain.UsageRule, error) {
			return []domain.UsageRule{
				{ProductID: productID, StockItemID: "si-cone", QuantityUsed: 5},
			}, nil
		},
	}
	items := &mockStockItemRepository{
		DeductFunc: func(ctx context.Context, id string, required int) (bool, error) {
			// 3 on hand, 5 needed: conditional decrement does not apply.
			return false, nil
		},
		FindByIDFunc: func(ctx context.Context, id string) (*domain.StockItem, error) {
			return &domain.StockItem{ID: id, Name: "Cone", Quantity: 3}, nil
		},
	}

	result := newTestDeductionService(rules, items).Deduct(context.Background(), "p-1", 1)

	assert.True(t, result.Success, "insufficiency is advisory, not an error")
	assert.Equal(t, []string{"Cone"}, result.InsufficientItems)
	assert.Equal(t, []string{"si-cone"}, items.flooredIDs)
}

func TestDeduct_MultipleItems_Independent(t *testing.T) {
	rules := &mockUsageRuleRepository{
		FindByProductIDFunc: func(ctx context.Context, productID string) ([]domain.UsageRule, error) {
			return []domain.UsageRule{
				{ProductID: productID, StockItemID: "si-cup", QuantityUsed: 1},
				{ProductID: productID, StockItemID: "si-straw", QuantityUsed: 1},
			}, nil
		},
	}
	items := &mockStockItemRepository{
		DeductFunc: func(ctx context.Context, id string, required int) (bool, error) {
			// Cups are plentiful, straws run short.
			return id == "si-cup", nil
		},
		FindByIDFunc: func(ctx context.Context, id string) (*domain.StockItem, error) {
			return &domain.StockItem{ID: id, Name: "Straws", Quantity: 1}, nil
		},
	}

	result := newTestDeductionService(rules, items).Deduct(context.Background(), "p-1", 3)

	assert.True(t, result.Success)
	assert.Equal(t, []string{"Straws"}, result.InsufficientItems)
	assert.Equal(t, []deductCall{
		{id: "si-cup", required: 3},
		{id: "si-straw", required: 3},
	}, items.deductCalls)
}

func TestDeduct_MissingItem_SkippedNotFatal(t *testing.T) {
	rules := &mockUsageRuleRepository{
		FindByProductIDFunc: func(ctx context.Context, productID string) ([]domain.UsageRule, error) {
			return []domain.UsageRule{
				{ProductID: productID, StockItemID: "si-gone", QuantityUsed: 1},
				{ProductID: productID, StockItemID: "si-cup", QuantityUsed: 1},
			}, nil
		},
	}
	items := &mockStockItemRepository{
		DeductFunc: func(ctx context.Context, id string, required int) (bool, error) {
			// The deleted row matches nothing; the live one applies.
			return id == "si-cup", nil
		},
		FindByIDFunc: func(ctx context.Context, id string) (*domain.StockItem, error) {
			return nil, apperrors.NewNotFoundError("stock item si-gone not found")
		},
	}

	result := newTestDeductionService(rules, items).Deduct(context.Background(), "p-1", 1)

	assert.True(t, result.Success)
	assert.Empty(t, result.InsufficientItems, "a dangling rule is skipped, not reported")
	assert.Len(t, items.deductCalls, 2, "remaining rules still processed")
}

func TestDeduct_ItemWriteFailure_ContinuesWithRest(t *testing.T) {
	rules := &mockUsageRuleRepository{
		FindByProductIDFunc: func(ctx context.Context, productID string) ([]domain.UsageRule, error) {
			return []domain.UsageRule{
				{ProductID: productID, StockItemID: "si-a", QuantityUsed: 1},
				{ProductID: productID, StockItemID: "si-b", QuantityUsed: 1},
			}, nil
		},
	}
	items := &mockStockItemRepository{
		DeductFunc: func(ctx context.Context, id string, required int) (bool, error) {
			if id == "si-a" {
				return false, errors.New("write timeout")
			}
			return true, nil
		},
	}

	result := newTestDeductionService(rules, items).Deduct(context.Background(), "p-1", 1)

	assert.True(t, result.Success)
	assert.Len(t, items.deductCalls, 2)
}

func TestDeduct_QuantityDefaultsToOne(t *testing.T) {
	rules := &mockUsageRuleRepository{
		FindByProductIDFunc: func(ctx context.Context, productID string) ([]domain.UsageRule, error) {
			return []domain.UsageRule{
				{ProductID: productID, StockItemID: "si-cup", QuantityUsed: 2},
			}, nil
		},
	}
	items := &mockStockItemRepository{
		DeductFunc: func(ctx context.Context, id string, required int) (bool, error) {
			return true, nil
		},
	}

	newTestDeductionService(rules, items).Deduct(context.Background(), "p-1", 0)

	assert.Equal(t, []deductCall{{id: "si-cup", required: 2}}, items.deductCalls)
}
