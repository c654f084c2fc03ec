package service

import (
	"context"

	"go.uber.org/zap"

	"dcreamy/internal/domain"
	"dcreamy/internal/dto"
	apperrors "dcreamy/internal/errors"
)

type WarungRepository interface {
	Insert(ctx context.Context, w *domain.Warung) error
	FindByID(ctx context.Context, id string) (*domain.Warung, error)
	FindByOwner(ctx context.Context, ownerID string) (*domain.Warung, error)
	Update(ctx context.Context, w *domain.Warung) error
}

type ProfileBinder interface {
	SetWarung(ctx context.Context, id, warungID string) error
}

// WarungService handles shop onboarding. Creating the warung also binds it
// to the owner's profile, so the next login carries the warung in its token.
type WarungService struct {
	warungs  WarungRepository
	profiles ProfileBinder
	logger   *zap.Logger
}

func NewWarungService(warungs WarungRepository, profiles ProfileBinder, logger *zap.Logger) *WarungService {
	return &WarungService{
		warungs:  warungs,
		profiles: profiles,
		logger:   logger,
	}
}

func (s *WarungService) Create(ctx context.Context, ownerID string, req dto.CreateWarungRequest) (*dto.WarungDTO, error) {
	if _, err := s.warungs.FindByOwner(ctx, ownerID); err == nil {
		return nil, apperrors.NewConflictError("owner already has a warung")
	} else if _, ok := apperrors.IsNotFoundError(err); !ok {
		return nil, err
	}

	warung := domain.Warung{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		OwnerID: ownerID,
	}
	if err := s.warungs.Insert(ctx, &warung); err != nil {
		return nil, err
	}

	if err := s.profiles.SetWarung(ctx, ownerID, warung.ID); err != nil {
		return nil, err
	}

	s.logger.Info("warung created",
		zap.String("warungId", warung.ID), zap.String("ownerId", ownerID))

	out := toWarungDTO(warung)
	return &out, nil
}

func (s *WarungService) Get(ctx context.Context, warungID string) (*dto.WarungDTO, error) {
	warung, err := s.warungs.FindByID(ctx, warungID)
	if err != nil {
		return nil, err
	}
	out := toWarungDTO(*warung)
	return &out, nil
}

func (s *WarungService) Update(ctx context.Context, warungID, ownerID string, req dto.UpdateWarungRequest) (*dto.WarungDTO, error) {
	warung, err := s.warungs.FindByID(ctx, warungID)
	if err != nil {
		return nil, err
	}
	if warung.OwnerID != ownerID {
		return nil, apperrors.NewForbiddenError("only the owner can update the warung")
	}

	warung.Name = req.Name
	warung.Address = req.Address
	warung.Phone = req.Phone
	if err := s.warungs.Update(ctx, warung); err != nil {
		return nil, err
	}

	out := toWarungDTO(*warung)
	return &out, nil
}

func toWarungDTO(w domain.Warung) dto.WarungDTO {
	return dto.WarungDTO{
		ID:        w.ID,
		Name:      w.Name,
		Address:   w.Address,
		Phone:     w.Phone,
		OwnerID:   w.OwnerID,
		CreatedAt: w.CreatedAt,
	}
}
