package service

import (
	"context"

	"go.uber.org/zap"

	"dcreamy/internal/auth"
	"dcreamy/internal/domain"
	"dcreamy/internal/dto"
	apperrors "dcreamy/internal/errors"
)

type ProfilesRepository interface {
	Insert(ctx context.Context, p *domain.Profile) error
	FindByID(ctx context.Context, id string) (*domain.Profile, error)
	FindByEmail(ctx context.Context, email string) (*domain.Profile, error)
	ListStaffByWarung(ctx context.Context, warungID string) ([]domain.Profile, error)
	Deactivate(ctx context.Context, id string) error
}

// AccountService handles registration, login and staff management. Owners
// register themselves; staff accounts are only created by their owner and
// inherit the owner's warung.
type AccountService struct {
	profiles ProfilesRepository
	tokens   *auth.TokenManager
	logger   *zap.Logger
}

func NewAccountService(profiles ProfilesRepository, tokens *auth.TokenManager, logger *zap.Logger) *AccountService {
	return &AccountService{
		profiles: profiles,
		tokens:   tokens,
		logger:   logger,
	}
}

func (s *AccountService) RegisterOwner(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	if _, err := s.profiles.FindByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.NewConflictError("email is already registered")
	} else if _, ok := apperrors.IsNotFoundError(err); !ok {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	profile := domain.Profile{
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         domain.RoleOwner,
		IsActive:     true,
	}
	if err := s.profiles.Insert(ctx, &profile); err != nil {
		return nil, err
	}

	s.logger.Info("owner registered", zap.String("profileId", profile.ID))
	return s.respondWithToken(profile)
}

func (s *AccountService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	profile, err := s.profiles.FindByEmail(ctx, req.Email)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, apperrors.NewUnauthorizedError("invalid email or password")
		}
		return nil, err
	}
	if !profile.IsActive {
		return nil, apperrors.NewUnauthorizedError("account is disabled")
	}
	if !auth.CheckPassword(profile.PasswordHash, req.Password) {
		return nil, apperrors.NewUnauthorizedError("invalid email or password")
	}

	return s.respondWithToken(*profile)
}

func (s *AccountService) Me(ctx context.Context, userID string) (*dto.ProfileDTO, error) {
	profile, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := toProfileDTO(*profile)
	return &out, nil
}

// CreateStaff provisions a staff login bound to the owner's warung.
func (s *AccountService) CreateStaff(ctx context.Context, warungID string, req dto.CreateStaffRequest) (*dto.ProfileDTO, error) {
	if warungID == "" {
		return nil, apperrors.NewForbiddenError("no warung assigned to this account")
	}

	if _, err := s.profiles.FindByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.NewConflictError("email is already registered")
	} else if _, ok := apperrors.IsNotFoundError(err); !ok {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	profile := domain.Profile{
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         domain.RoleStaff,
		WarungID:     &warungID,
		IsActive:     true,
	}
	if err := s.profiles.Insert(ctx, &profile); err != nil {
		return nil, err
	}

	s.logger.Info("staff created",
		zap.String("profileId", profile.ID), zap.String("warungId", warungID))

	out := toProfileDTO(profile)
	return &out, nil
}

func (s *AccountService) ListStaff(ctx context.Context, warungID string) ([]dto.ProfileDTO, error) {
	staff, err := s.profiles.ListStaffByWarung(ctx, warungID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ProfileDTO, 0, len(staff))
	for _, p := range staff {
		out = append(out, toProfileDTO(p))
	}
	return out, nil
}

// RemoveStaff deactivates a staff account. Owners cannot remove themselves
// or accounts of another warung.
func (s *AccountService) RemoveStaff(ctx context.Context, warungID, staffID string) error {
	profile, err := s.profiles.FindByID(ctx, staffID)
	if err != nil {
		return err
	}
	if profile.Role != domain.RoleStaff {
		return apperrors.NewForbiddenError("only staff accounts can be removed")
	}
	if profile.WarungID == nil || *profile.WarungID != warungID {
		return apperrors.NewForbiddenError("staff belongs to another warung")
	}

	return s.profiles.Deactivate(ctx, staffID)
}

func (s *AccountService) respondWithToken(profile domain.Profile) (*dto.AuthResponse, error) {
	warungID := ""
	if profile.WarungID != nil {
		warungID = *profile.WarungID
	}

	token, err := s.tokens.Generate(auth.Identity{
		UserID:   profile.ID,
		Role:     profile.Role,
		WarungID: warungID,
	})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to issue token", err)
	}

	return &dto.AuthResponse{
		Token:   token,
		Profile: toProfileDTO(profile),
	}, nil
}

func toProfileDTO(p domain.Profile) dto.ProfileDTO {
	return dto.ProfileDTO{
		ID:        p.ID,
		FullName:  p.FullName,
		Email:     p.Email,
		Phone:     p.Phone,
		Role:      p.Role,
		WarungID:  p.WarungID,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
	}
}
