package service

import (
	"context"
	"fmt"

	"dcreamy/internal/domain"
	apperrors "dcreamy/internal/errors"
)

type ItemRepository interface {
	FindByID(ctx context.Context, id string) (*domain.StockItem, error)
	ListByWarung(ctx context.Context, warungID string) ([]domain.StockItem, error)
	Insert(ctx context.Context, item *domain.StockItem) error
	Update(ctx context.Context, item *domain.StockItem) error
	AddQuantity(ctx context.Context, id string, delta int) error
	Deactivate(ctx context.Context, id string) error
}

type StockItemService struct {
	repo ItemRepository
}

func NewStockItemService(repo ItemRepository) *StockItemService {
	return &StockItemService{repo: repo}
}

func (s *StockItemService) List(ctx context.Context, warungID string) ([]domain.StockItem, error) {
	return s.repo.ListByWarung(ctx, warungID)
}

func (s *StockItemService) Create(ctx context.Context, item *domain.StockItem) error {
	item.IsActive = true
	return s.repo.Insert(ctx, item)
}

func (s *StockItemService) Update(ctx context.Context, warungID string, item *domain.StockItem) error {
	if err := s.requireOwned(ctx, warungID, item.ID); err != nil {
		return err
	}
	return s.repo.Update(ctx, item)
}

// Restock adds delta units and returns the item's new state.
func (s *StockItemService) Restock(ctx context.Context, warungID, id string, delta int) (*domain.StockItem, error) {
	if err := s.requireOwned(ctx, warungID, id); err != nil {
		return nil, err
	}
	if err := s.repo.AddQuantity(ctx, id, delta); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *StockItemService) Deactivate(ctx context.Context, warungID, id string) error {
	if err := s.requireOwned(ctx, warungID, id); err != nil {
		return err
	}
	return s.repo.Deactivate(ctx, id)
}

// requireOwned keeps one warung's staff from touching another's rows; the
// id space is shared, so scoping by id alone is not enough.
func (s *StockItemService) requireOwned(ctx context.Context, warungID, id string) error {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if item.WarungID != warungID {
		return apperrors.NewForbiddenError(fmt.Sprintf("stock item %s belongs to another warung", id))
	}
	return nil
}
