package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	domainErrors "github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/errors"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/repository"
	pkgAuth "github.com/AmanKr31/Farm-Bazzar-sub000/internal/pkg/auth"
)

// AuthUseCase handles account registration and token management.
type AuthUseCase struct {
	accounts repository.AccountRepository
	hasher   pkgAuth.PasswordHasher
	tokens   pkgAuth.Strategy
	logger   *slog.Logger
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(accounts repository.AccountRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy, logger *slog.Logger) *AuthUseCase {
	return &AuthUseCase{accounts: accounts, hasher: hasher, tokens: strategy, logger: logger}
}

// Register creates a farmer or buyer account and returns an auth token.
// Admin accounts cannot be self-registered.
func (u *AuthUseCase) Register(ctx context.Context, login, password string, role model.Role) (*model.Account, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}
	if !role.SelfAssignable() {
		return nil, "", domainErrors.ErrInvalidInput
	}

	acc, err := u.create(ctx, login, password, role)
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(acc.ID, acc.Role)
	if err != nil {
		return nil, "", err
	}

	return acc, token, nil
}

// Authenticate validates credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (*model.Account, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	acc, err := u.accounts.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(acc.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(acc.ID, acc.Role)
	if err != nil {
		return nil, "", err
	}

	return acc, token, nil
}

// ParseToken resolves the identity encoded in token.
func (u *AuthUseCase) ParseToken(token string) (pkgAuth.Identity, error) {
	if token == "" {
		return pkgAuth.Identity{}, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches account by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	return u.accounts.GetByID(ctx, id)
}

// EnsureAdmin creates the configured admin account unless the login is
// already taken.
func (u *AuthUseCase) EnsureAdmin(ctx context.Context, login, password string) error {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil
	}

	if _, err := u.accounts.GetByLogin(ctx, login); err == nil {
		return nil
	} else if !errors.Is(err, domainErrors.ErrNotFound) {
		return err
	}

	acc, err := u.create(ctx, login, password, model.RoleAdmin)
	if errors.Is(err, domainErrors.ErrAlreadyExists) {
		return nil
	}
	if err != nil {
		return err
	}
	u.logger.Info("admin account created", slog.Int64("account_id", acc.ID), slog.String("login", acc.Login))
	return nil
}

func (u *AuthUseCase) create(ctx context.Context, login, password string, role model.Role) (*model.Account, error) {
	hash, err := u.hasher.Hash(password)
	if errors.Is(err, pkgAuth.ErrPasswordTooLong) {
		return nil, domainErrors.ErrInvalidInput
	}
	if err != nil {
		return nil, err
	}
	return u.accounts.Create(ctx, login, hash, role)
}
