package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/domain"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TokenManager issues and parses admin session tokens.
type TokenManager interface {
	Issue(adminID string) (string, error)
	Parse(token string) (string, error)
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfilePatch updates only the fields that are set and non-empty.
type ProfilePatch struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type AdminUsecase struct {
	repo     domain.AdminRepository
	tokens   TokenManager
	hashCost int
	log      *logger.Logger

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAdminUsecase(repo domain.AdminRepository, tokens TokenManager, hashCost int, log *logger.Logger) *AdminUsecase {
	if hashCost == 0 {
		hashCost = bcrypt.DefaultCost
	}
	return &AdminUsecase{repo: repo, tokens: tokens, hashCost: hashCost, log: log.Named("AdminUsecase")}
}

func (uc *AdminUsecase) Register(ctx context.Context, in RegisterInput) (*domain.AuthResult, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: please provide all required fields", domain.ErrValidation)
	}
	if !domain.ValidEmail(email) {
		return nil, fmt.Errorf("%w: please provide a valid email", domain.ErrValidation)
	}
	if len(in.Password) < domain.MinPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, domain.MinPasswordLen)
	}

	if _, err := uc.repo.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: admin already exists with this email", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	admin := &domain.Admin{Name: name, Email: email, PasswordHash: string(hash)}
	if err := uc.repo.Create(ctx, admin); err != nil {
		return nil, err
	}

	uc.log.Info("Admin registered", zap.String("admin_id", admin.ID))
	return uc.authResult(admin)
}

func (uc *AdminUsecase) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: please provide email and password", domain.ErrValidation)
	}

	admin, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		// Spend the same bcrypt time as a real comparison.
		_ = bcrypt.CompareHashAndPassword(uc.dummy(), []byte(password))
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return uc.authResult(admin)
}

// VerifyToken resolves a bearer token to the admin it was issued for.
func (uc *AdminUsecase) VerifyToken(ctx context.Context, token string) (*domain.Admin, error) {
	id, err := uc.tokens.Parse(token)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}
	admin, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrAdminGone
		}
		return nil, err
	}
	return admin, nil
}

func (uc *AdminUsecase) GetProfile(ctx context.Context, adminID string) (*domain.AdminProfile, error) {
	admin, err := uc.repo.FindByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	return &domain.AdminProfile{ID: admin.ID, Name: admin.Name, Email: admin.Email, CreatedAt: admin.CreatedAt}, nil
}

func (uc *AdminUsecase) UpdateProfile(ctx context.Context, adminID string, patch ProfilePatch) (*domain.AuthResult, error) {
	admin, err := uc.repo.FindByID(ctx, adminID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if name := strings.TrimSpace(*patch.Name); name != "" {
			admin.Name = name
		}
	}
	if patch.Email != nil {
		if email := normalizeEmail(*patch.Email); email != "" && email != admin.Email {
			if !domain.ValidEmail(email) {
				return nil, fmt.Errorf("%w: please provide a valid email", domain.ErrValidation)
			}
			other, err := uc.repo.FindByEmail(ctx, email)
			switch {
			case err == nil && other.ID != admin.ID:
				return nil, fmt.Errorf("%w: email already in use", domain.ErrConflict)
			case err != nil && !errors.Is(err, domain.ErrNotFound):
				return nil, err
			}
			admin.Email = email
		}
	}
	if patch.Password != nil && *patch.Password != "" {
		if len(*patch.Password) < domain.MinPasswordLen {
			return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, domain.MinPasswordLen)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), uc.hashCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		admin.PasswordHash = string(hash)
	}

	if err := uc.repo.Update(ctx, admin); err != nil {
		return nil, err
	}
	uc.log.Info("Admin profile updated", zap.String("admin_id", admin.ID))
	return uc.authResult(admin)
}

func (uc *AdminUsecase) authResult(a *domain.Admin) (*domain.AuthResult, error) {
	token, err := uc.tokens.Issue(a.ID)
	if err != nil {
		return nil, err
	}
	return &domain.AuthResult{ID: a.ID, Name: a.Name, Email: a.Email, Token: token}, nil
}

func (uc *AdminUsecase) dummy() []byte {
	uc.dummyOnce.Do(func() {
		uc.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), uc.hashCost)
	})
	return uc.dummyHash
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
