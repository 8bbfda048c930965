package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gamenight/backend/internal/apperr"
	"github.com/gamenight/backend/internal/models"
)

// AccountStorage is the slice of the store the credential service needs.
// This keeps it independent of the full storage implementation.
type AccountStorage interface {
	CreateAccount(ctx context.Context, username, passwordHash, passwordSalt string) (*models.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*models.Account, error)
	GetAccountByID(ctx context.Context, id int64) (*models.Account, error)
	UpdateAccountPassword(ctx context.Context, id int64, passwordHash, passwordSalt string) error
}

// CredentialService owns registration, login, password changes and session
// parsing. Tokens are stateless; the only persisted credential material is
// the per-account hash and salt pair.
type CredentialService struct {
	storage AccountStorage
	tokens  *JWTManager
}

// NewCredentialService creates a credential service over the given storage
// and token manager.
func NewCredentialService(storage AccountStorage, tokens *JWTManager) *CredentialService {
	return &CredentialService{storage: storage, tokens: tokens}
}

// Register creates a new account with freshly derived password material.
// The storage layer assigns the role: first account in becomes the
// administrator. A username that is already taken (any casing) fails with
// a conflict.
func (s *CredentialService) Register(ctx context.Context, username, password string) (*models.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperr.Validationf("username is required")
	}
	if len(password) < 8 {
		return nil, apperr.Validationf("password must be at least 8 characters")
	}

	hash, salt, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account, err := s.storage.CreateAccount(ctx, username, hash, salt)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// Login verifies the credentials and issues a signed session token valid
// for the manager's configured duration (24h in production).
func (s *CredentialService) Login(ctx context.Context, username, password string) (string, *models.Account, error) {
	account, err := s.storage.GetAccountByUsername(ctx, username)
	if err != nil {
		// Only a missing account becomes an authentication failure; a
		// storage error stays internal.
		if errors.Is(err, apperr.ErrNotFound) {
			return "", nil, apperr.Authenticationf("not found")
		}
		return "", nil, err
	}

	if !VerifyPassword(password, account.PasswordHash, account.PasswordSalt) {
		return "", nil, apperr.Authenticationf("wrong password")
	}

	token, err := s.tokens.Generate(account)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, account, nil
}

// ChangePassword rotates the account's hash and salt after verifying the
// old password. It fails closed: a missing account or a wrong old password
// both report false without distinguishing which, and without error.
func (s *CredentialService) ChangePassword(ctx context.Context, accountID int64, oldPassword, newPassword string) (bool, error) {
	if len(newPassword) < 8 {
		return false, apperr.Validationf("password must be at least 8 characters")
	}

	account, err := s.storage.GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if !VerifyPassword(oldPassword, account.PasswordHash, account.PasswordSalt) {
		return false, nil
	}

	hash, salt, err := HashPassword(newPassword)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.storage.UpdateAccountPassword(ctx, accountID, hash, salt); err != nil {
		return false, err
	}
	return true, nil
}

// ParseSession decodes a session token into the requester identity. Any
// failure at all yields an authentication error; the caller must fall back
// to the anonymous identity and, if it holds the token, discard it.
func (s *CredentialService) ParseSession(token string) (models.Identity, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return models.Identity{}, err
	}
	return claims.Identity(), nil
}

// TokenTTL is the production session lifetime.
const TokenTTL = 24 * time.Hour
