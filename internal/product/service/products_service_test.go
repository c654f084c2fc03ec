package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"dcreamy/internal/domain"
	apperrors "dcreamy/internal/errors"
)

type mockRepository struct {
	FindByIDFunc     func(ctx context.Context, id string) (*domain.Product, error)
	ListByWarungFunc func(ctx context.Context, warungID string) ([]domain.Product, error)
	InsertFunc       func(ctx context.Context, p *domain.Product) error
	UpdateFunc       func(ctx context.Context, p *domain.Product) error
	DeactivateFunc   func(ctx context.Context, id string) error
}

func (m *mockRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockRepository) ListByWarung(ctx context.Context, warungID string) ([]domain.Product, error) {
	return m.ListByWarungFunc(ctx, warungID)
}

func (m *mockRepository) Insert(ctx context.Context, p *domain.Product) error {
	return m.InsertFunc(ctx, p)
}

func (m *mockRepository) Update(ctx context.Context, p *domain.Product) error {
	return m.UpdateFunc(ctx, p)
}

func (m *mockRepository) Deactivate(ctx context.Context, id string) error {
	return m.DeactivateFunc(ctx, id)
}

type mockRuleRepository struct {
	FindByProductIDFunc   func(ctx context.Context, productID string) ([]domain.UsageRule, error)
	ReplaceForProductFunc func(ctx context.Context, productID string, rules []domain.UsageRule) error

	replaced []domain.UsageRule
}

func (m *mockRuleRepository) FindByProductID(ctx context.Context, productID string) ([]domain.UsageRule, error) {
	return m.FindByProductIDFunc(ctx, productID)
}

func (m *mockRuleRepository) ReplaceForProduct(ctx context.Context, productID string, rules []domain.UsageRule) error {
	m.replaced = rules
	if m.ReplaceForProductFunc != nil {
		return m.ReplaceForProductFunc(ctx, productID, rules)
	}
	return nil
}

func ownedProduct(warungID string) *domain.Product {
	return &domain.Product{ID: "p-1", WarungID: warungID, Name: "Es Krim Coklat"}
}

func TestSetUsage_DeduplicatesByStockItem(t *testing.T) {
	repo := &mockRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Product, error) {
			return ownedProduct("w-1"), nil
		},
	}
	ruleRepo := &mockRuleRepository{}
	svc := NewService(repo, ruleRepo)

	err := svc.SetUsage(context.Background(), "w-1", "p-1", []domain.UsageRule{
		{StockItemID: "si-cup", QuantityUsed: 1},
		{StockItemID: "si-straw", QuantityUsed: 1},
		{StockItemID: "si-cup", QuantityUsed: 3},
	})

	assert.NoError(t, err)
	assert.Equal(t, []domain.UsageRule{
		{StockItemID: "si-cup", QuantityUsed: 3},
		{StockItemID: "si-straw", QuantityUsed: 1},
	}, ruleRepo.replaced)
}

func TestSetUsage_ForeignProduct_Forbidden(t *testing.T) {
	repo := &mockRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Product, error) {
			return ownedProduct("w-other"), nil
		},
	}
	ruleRepo := &mockRuleRepository{}
	svc := NewService(repo, ruleRepo)

	err := svc.SetUsage(context.Background(), "w-1", "p-1", nil)

	_, ok := apperrors.IsForbiddenError(err)
	assert.True(t, ok)
	assert.Nil(t, ruleRepo.replaced)
}

func TestUpdate_MissingProduct_NotFound(t *testing.T) {
	repo := &mockRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Product, error) {
			return nil, apperrors.NewNotFoundError("product p-9 not found")
		},
	}
	svc := NewService(repo, &mockRuleRepository{})

	err := svc.Update(context.Background(), "w-1", &domain.Product{ID: "p-9"})

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestCreate_ActivatesProduct(t *testing.T) {
	var inserted *domain.Product
	repo := &mockRepository{
		InsertFunc: func(ctx context.Context, p *domain.Product) error {
			inserted = p
			return nil
		},
	}
	svc := NewService(repo, &mockRuleRepository{})

	err := svc.Create(context.Background(), &domain.Product{WarungID: "w-1", Name: "Es Teh"})

	assert.NoError(t, err)
	assert.True(t, inserted.IsActive)
}
