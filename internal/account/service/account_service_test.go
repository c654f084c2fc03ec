package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"dcreamy/internal/auth"
	"dcreamy/internal/domain"
	"dcreamy/internal/dto"
	apperrors "dcreamy/internal/errors"
)

type mockProfilesRepository struct {
	insertFunc      func(ctx context.Context, p *domain.Profile) error
	findByIDFunc    func(ctx context.Context, id string) (*domain.Profile, error)
	findByEmailFunc func(ctx context.Context, email string) (*domain.Profile, error)
	listStaffFunc   func(ctx context.Context, warungID string) ([]domain.Profile, error)
	deactivated     []string
}

func (m *mockProfilesRepository) Insert(ctx context.Context, p *domain.Profile) error {
	return m.insertFunc(ctx, p)
}

func (m *mockProfilesRepository) FindByID(ctx context.Context, id string) (*domain.Profile, error) {
	return m.findByIDFunc(ctx, id)
}

func (m *mockProfilesRepository) FindByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	return m.findByEmailFunc(ctx, email)
}

func (m *mockProfilesRepository) ListStaffByWarung(ctx context.Context, warungID string) ([]domain.Profile, error) {
	return m.listStaffFunc(ctx, warungID)
}

func (m *mockProfilesRepository) Deactivate(ctx context.Context, id string) error {
	m.deactivated = append(m.deactivated, id)
	return nil
}

func newTestTokens() *auth.TokenManager {
	return auth.NewTokenManager("test-secret", time.Hour)
}

func strPtr(v string) *string { return &v }

func TestRegisterOwnerIssuesToken(t *testing.T) {
	repo := &mockProfilesRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*domain.Profile, error) {
			return nil, apperrors.NewNotFoundError("profile not found")
		},
		insertFunc: func(ctx context.Context, p *domain.Profile) error {
			p.ID = "user-1"
			return nil
		},
	}

	service := NewAccountService(repo, newTestTokens(), zap.NewNop())

	response, err := service.RegisterOwner(context.Background(), dto.RegisterRequest{
		FullName: "Bu Siti",
		Email:    "siti@example.com",
		Password: "rahasia-banget",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, response.Token)
	assert.Equal(t, domain.RoleOwner, response.Profile.Role)
	assert.True(t, response.Profile.IsActive)
}

func TestRegisterOwnerRejectsDuplicateEmail(t *testing.T) {
	repo := &mockProfilesRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*domain.Profile, error) {
			return &domain.Profile{ID: "user-1", Email: email}, nil
		},
	}

	service := NewAccountService(repo, newTestTokens(), zap.NewNop())

	_, err := service.RegisterOwner(context.Background(), dto.RegisterRequest{
		FullName: "Bu Siti",
		Email:    "siti@example.com",
		Password: "rahasia-banget",
	})

	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("benar-sekali")
	assert.NoError(t, err)

	repo := &mockProfilesRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*domain.Profile, error) {
			return &domain.Profile{ID: "user-1", Email: email, PasswordHash: hash, IsActive: true}, nil
		},
	}

	service := NewAccountService(repo, newTestTokens(), zap.NewNop())

	_, err = service.Login(context.Background(), dto.LoginRequest{Email: "siti@example.com", Password: "salah"})

	_, ok := apperrors.IsUnauthorizedError(err)
	assert.True(t, ok)
}

func TestLoginRejectsDeactivatedAccount(t *testing.T) {
	hash, err := auth.HashPassword("benar-sekali")
	assert.NoError(t, err)

	repo := &mockProfilesRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*domain.Profile, error) {
			return &domain.Profile{ID: "user-1", Email: email, PasswordHash: hash, IsActive: false}, nil
		},
	}

	service := NewAccountService(repo, newTestTokens(), zap.NewNop())

	_, err = service.Login(context.Background(), dto.LoginRequest{Email: "siti@example.com", Password: "benar-sekali"})

	_, ok := apperrors.IsUnauthorizedError(err)
	assert.True(t, ok)
}

func TestLoginCarriesWarungInToken(t *testing.T) {
	hash, err := auth.HashPassword("benar-sekali")
	assert.NoError(t, err)

	repo := &mockProfilesRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*domain.Profile, error) {
			return &domain.Profile{
				ID:           "user-1",
				Email:        email,
				PasswordHash: hash,
				Role:         domain.RoleStaff,
				WarungID:     strPtr("warung-1"),
				IsActive:     true,
			}, nil
		},
	}

	tokens := newTestTokens()
	service := NewAccountService(repo, tokens, zap.NewNop())

	response, err := service.Login(context.Background(), dto.LoginRequest{Email: "siti@example.com", Password: "benar-sekali"})
	assert.NoError(t, err)

	identity, err := tokens.Parse(response.Token)
	assert.NoError(t, err)
	assert.Equal(t, "warung-1", identity.WarungID)
	assert.Equal(t, domain.RoleStaff, identity.Role)
}

func TestCreateStaffInheritsWarung(t *testing.T) {
	var inserted *domain.Profile
	repo := &mockProfilesRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*domain.Profile, error) {
			return nil, apperrors.NewNotFoundError("profile not found")
		},
		insertFunc: func(ctx context.Context, p *domain.Profile) error {
			p.ID = "staff-1"
			inserted = p
			return nil
		},
	}

	service := NewAccountService(repo, newTestTokens(), zap.NewNop())

	profile, err := service.CreateStaff(context.Background(), "warung-1", dto.CreateStaffRequest{
		FullName: "Mas Budi",
		Email:    "budi@example.com",
		Password: "rahasia-banget",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleStaff, profile.Role)
	assert.Equal(t, "warung-1", *inserted.WarungID)
}

func TestRemoveStaffRejectsForeignWarung(t *testing.T) {
	repo := &mockProfilesRepository{
		findByIDFunc: func(ctx context.Context, id string) (*domain.Profile, error) {
			return &domain.Profile{ID: id, Role: domain.RoleStaff, WarungID: strPtr("warung-other")}, nil
		},
	}

	service := NewAccountService(repo, newTestTokens(), zap.NewNop())

	err := service.RemoveStaff(context.Background(), "warung-1", "staff-9")

	_, ok := apperrors.IsForbiddenError(err)
	assert.True(t, ok)
	assert.Empty(t, repo.deactivated)
}

func TestRemoveStaffRejectsOwnerTarget(t *testing.T) {
	repo := &mockProfilesRepository{
		findByIDFunc: func(ctx context.Context, id string) (*domain.Profile, error) {
			return &domain.Profile{ID: id, Role: domain.RoleOwner, WarungID: strPtr("warung-1")}, nil
		},
	}

	service := NewAccountService(repo, newTestTokens(), zap.NewNop())

	err := service.RemoveStaff(context.Background(), "warung-1", "owner-1")

	_, ok := apperrors.IsForbiddenError(err)
	assert.True(t, ok)
}
