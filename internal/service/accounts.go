package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gamenight/backend/internal/access"
	"github.com/gamenight/backend/internal/apperr"
	"github.com/gamenight/backend/internal/auth"
	"github.com/gamenight/backend/internal/models"
	"github.com/gamenight/backend/internal/storage"
)

// AccountService covers the administrative account operations: listing,
// deletion, role toggling and password resets. Every operation requires the
// administrator role, and the root account plus the actor's own account are
// guarded per access.CheckAccountTarget.
type AccountService struct {
	store storage.Store
}

// NewAccountService creates an AccountService with the given storage backend.
func NewAccountService(store storage.Store) *AccountService {
	return &AccountService{store: store}
}

func requireAdmin(actor models.Identity) error {
	if actor.Role != models.RoleAdministrator {
		return apperr.Authorizationf("administrator role required")
	}
	return nil
}

// List returns every account in registration order.
func (s *AccountService) List(ctx context.Context, actor models.Identity) ([]models.Account, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.store.ListAccounts(ctx)
}

// Delete removes an account. The root account and the actor's own account
// are always rejected.
func (s *AccountService) Delete(ctx context.Context, actor models.Identity, targetID int64) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := access.CheckAccountTarget(actor, targetID, false); err != nil {
		return err
	}
	if err := s.store.DeleteAccount(ctx, targetID); err != nil {
		return err
	}
	slog.Info("Account deleted", "target_id", targetID, "by", actor.Username)
	return nil
}

// ToggleRole flips an account between standard and administrator. Root and
// self are rejected, which prevents an administrator from demoting
// themselves into a lockout.
func (s *AccountService) ToggleRole(ctx context.Context, actor models.Identity, targetID int64) (models.Role, error) {
	if err := requireAdmin(actor); err != nil {
		return "", err
	}
	if err := access.CheckAccountTarget(actor, targetID, false); err != nil {
		return "", err
	}
	role, err := s.store.ToggleAccountRole(ctx, targetID)
	if err != nil {
		return "", err
	}
	slog.Info("Account role toggled", "target_id", targetID, "new_role", role, "by", actor.Username)
	return role, nil
}

// ResetPassword sets a new password for an account without knowing the old
// one. This is the administrative path, so the root account is rejected;
// resetting one's own password this way is allowed.
func (s *AccountService) ResetPassword(ctx context.Context, actor models.Identity, targetID int64, newPassword string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := access.CheckAccountTarget(actor, targetID, true); err != nil {
		return err
	}
	if len(newPassword) < 8 {
		return apperr.Validationf("password must be at least 8 characters")
	}

	hash, salt, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.store.UpdateAccountPassword(ctx, targetID, hash, salt); err != nil {
		return err
	}
	slog.Info("Account password reset", "target_id", targetID, "by", actor.Username)
	return nil
}
