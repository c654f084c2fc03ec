package product

import (
	"context"

	"dcreamy/internal/domain"
)

type Service interface {
	List(ctx context.Context, warungID string) ([]domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, warungID string, p *domain.Product) error
	Deactivate(ctx context.Context, warungID, id string) error
	Usage(ctx context.Context, warungID, productID string) ([]domain.UsageRule, error)
	SetUsage(ctx context.Context, warungID, productID string, rules []domain.UsageRule) error
}

type Repository interface {
	ListByWarung(ctx context.Context, warungID string) ([]domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Insert(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	Deactivate(ctx context.Context, id string) error
}

type UsageRuleRepository interface {
	FindByProductID(ctx context.Context, productID string) ([]domain.UsageRule, error)
	ReplaceForProduct(ctx context.Context, productID string, rules []domain.UsageRule) error
}
