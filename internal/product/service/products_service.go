package service

import (
	"context"
	"fmt"

	"dcreamy/internal/domain"
	apperrors "dcreamy/internal/errors"
)

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

type ProductsService struct {
	repo     Repository
	ruleRepo UsageRuleRepository
}

func NewService(repo Repository, ruleRepo UsageRuleRepository) *ProductsService {
	return &ProductsService{repo: repo, ruleRepo: ruleRepo}
}

func (s *ProductsService) List(ctx context.Context, warungID string) ([]domain.Product, error) {
	return s.repo.ListByWarung(ctx, warungID)
}

func (s *ProductsService) Create(ctx context.Context, p *domain.Product) error {
	p.IsActive = true
	return s.repo.Insert(ctx, p)
}

func (s *ProductsService) Update(ctx context.Context, warungID string, p *domain.Product) error {
	if err := s.requireOwned(ctx, warungID, p.ID); err != nil {
		return err
	}
	return s.repo.Update(ctx, p)
}

func (s *ProductsService) Deactivate(ctx context.Context, warungID, id string) error {
	if err := s.requireOwned(ctx, warungID, id); err != nil {
		return err
	}
	return s.repo.Deactivate(ctx, id)
}

func (s *ProductsService) Usage(ctx context.Context, warungID, productID string) ([]domain.UsageRule, error) {
	if err := s.requireOwned(ctx, warungID, productID); err != nil {
		return nil, err
	}
	return s.ruleRepo.FindByProductID(ctx, productID)
}

// SetUsage replaces the product's usage rules, collapsing duplicate stock
// items (last one wins) to keep the pair unique.
func (s *ProductsService) SetUsage(ctx context.Context, warungID, productID string, rules []domain.UsageRule) error {
	if err := s.requireOwned(ctx, warungID, productID); err != nil {
		return err
	}

	byItem := make(map[string]domain.UsageRule, len(rules))
	order := make([]string, 0, len(rules))
	for _, rule := range rules {
		if _, seen := byItem[rule.StockItemID]; !seen {
			order = append(order, rule.StockItemID)
		}
		byItem[rule.StockItemID] = rule
	}

	deduped := make([]domain.UsageRule, 0, len(byItem))
	for _, itemID := range order {
		deduped = append(deduped, byItem[itemID])
	}

	return s.ruleRepo.ReplaceForProduct(ctx, productID, deduped)
}

func (s *ProductsService) requireOwned(ctx context.Context, warungID, id string) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p.WarungID != warungID {
		return apperrors.NewForbiddenError(fmt.Sprintf("product %s belongs to another warung", id))
	}
	return nil
}
