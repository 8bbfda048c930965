// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/gamenight/backend/internal/models"
)

// Store defines the persistence operations for accounts, backlog items and
// votes. The abstraction allows swapping storage backends (SQLite,
// PostgreSQL, etc.) without changing the service layer.
//
// Implementations must enforce three uniqueness constraints and report
// violations as apperr.ErrConflict: account usernames (case-insensitively),
// item external refs (when set), and the (item, user) vote pair. Lookups of
// absent rows report apperr.ErrNotFound.
type Store interface {
	// CreateAccount persists a new account and returns it with the assigned
	// ID. The very first account is created with RoleAdministrator; every
	// later one with RoleStandard. The role decision and the insert happen
	// in one transaction.
	CreateAccount(ctx context.Context, username, passwordHash, passwordSalt string) (*models.Account, error)

	// GetAccountByUsername looks an account up case-insensitively.
	GetAccountByUsername(ctx context.Context, username string) (*models.Account, error)

	GetAccountByID(ctx context.Context, id int64) (*models.Account, error)

	// ListAccounts returns all accounts in registration order.
	ListAccounts(ctx context.Context) ([]models.Account, error)

	// UpdateAccountPassword replaces hash and salt for the account.
	UpdateAccountPassword(ctx context.Context, id int64, passwordHash, passwordSalt string) error

	// ToggleAccountRole flips the account between standard and
	// administrator, reading and writing the role in one transaction, and
	// returns the new role.
	ToggleAccountRole(ctx context.Context, id int64) (models.Role, error)

	DeleteAccount(ctx context.Context, id int64) error

	// ListItems returns every item ordered by vote count descending with
	// insertion order as the stable tiebreak, each annotated with whether
	// requesterID holds a vote for it. The anonymous sentinel (0) never
	// matches a vote row.
	ListItems(ctx context.Context, requesterID int64) ([]models.ItemView, error)

	GetItem(ctx context.Context, id int64) (*models.Item, error)

	// FindItemByExternalRef returns the item carrying the ref, or
	// apperr.ErrNotFound when no item does.
	FindItemByExternalRef(ctx context.Context, ref int64) (*models.Item, error)

	// CreateItem persists a new item and populates item.ID.
	CreateItem(ctx context.Context, item *models.Item) error

	// UpdateItem overwrites all mutable columns of the item.
	UpdateItem(ctx context.Context, item *models.Item) error

	// DeleteItem removes the item and all votes referencing it.
	DeleteItem(ctx context.Context, id int64) error

	// ListItemsByStatus returns items in the given status, insertion order.
	ListItemsByStatus(ctx context.Context, status models.Status) ([]models.Item, error)

	// TransitionItemStatus moves one item from one status to another in a
	// single guarded write. A missing item reports apperr.ErrNotFound; an
	// item that has already left the from status reports apperr.ErrConflict,
	// so concurrent callers cannot both claim the same transition.
	TransitionItemStatus(ctx context.Context, id int64, from, to models.Status) error

	// AddVote inserts the (itemID, userID) vote row and bumps the item's
	// cached vote count by one, atomically. A second vote for the same pair
	// fails with apperr.ErrConflict and leaves the count untouched.
	AddVote(ctx context.Context, itemID, userID int64) error

	// ListVotesForItem returns the ledger rows for one item. The length of
	// the result is the ground truth the item's cached VoteCount must match.
	ListVotesForItem(ctx context.Context, itemID int64) ([]models.VoteRecord, error)

	// Close releases any resources held by the store.
	Close() error
}
