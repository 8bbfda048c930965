package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gamenight/backend/internal/apperr"
	"github.com/gamenight/backend/internal/models"
)

// CreateAccount inserts a new account. The role is decided inside the same
// transaction as the insert: the first account ever created becomes the
// administrator, all later ones are standard.
func (s *SQLiteStore) CreateAccount(ctx context.Context, username, passwordHash, passwordSalt string) (*models.Account, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM accounts").Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to count accounts: %w", err)
	}

	role := models.RoleStandard
	if count == 0 {
		role = models.RoleAdministrator
	}

	createdAt := time.Now().Unix()
	res, err := tx.ExecContext(ctx,
		"INSERT INTO accounts (username, password_hash, password_salt, role, created_at) VALUES (?, ?, ?, ?, ?)",
		username, passwordHash, passwordSalt, string(role), createdAt,
	)
	if isUniqueViolation(err) {
		return nil, apperr.Conflictf("username %q is already taken", username)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert account: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read account id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.Account{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
		PasswordSalt: passwordSalt,
		Role:         role,
		CreatedAt:    createdAt,
	}, nil
}

const accountColumns = "id, username, password_hash, password_salt, role, created_at"

func scanAccount(row *sql.Row) (*models.Account, error) {
	a := &models.Account{}
	var role string
	err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.PasswordSalt, &role, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("account not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	a.Role = models.Role(role)
	return a, nil
}

// GetAccountByUsername looks an account up case-insensitively; the username
// column is declared COLLATE NOCASE so plain equality matches any casing.
func (s *SQLiteStore) GetAccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE username = ?", username)
	return scanAccount(row)
}

func (s *SQLiteStore) GetAccountByID(ctx context.Context, id int64) (*models.Account, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE id = ?", id)
	return scanAccount(row)
}

// ListAccounts returns all accounts in registration order.
func (s *SQLiteStore) ListAccounts(ctx context.Context) ([]models.Account, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+accountColumns+" FROM accounts ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var a models.Account
		var role string
		if err := rows.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.PasswordSalt, &role, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		a.Role = models.Role(role)
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccountPassword replaces hash and salt for the account.
func (s *SQLiteStore) UpdateAccountPassword(ctx context.Context, id int64, passwordHash, passwordSalt string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE accounts SET password_hash = ?, password_salt = ? WHERE id = ?",
		passwordHash, passwordSalt, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return requireRow(res, "account")
}

// ToggleAccountRole flips the account's role inside one transaction so a
// concurrent toggle cannot interleave between the read and the write.
func (s *SQLiteStore) ToggleAccountRole(ctx context.Context, id int64) (models.Role, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var current string
	err = tx.QueryRowContext(ctx, "SELECT role FROM accounts WHERE id = ?", id).Scan(&current)
	if err == sql.ErrNoRows {
		return "", apperr.NotFoundf("account not found")
	}
	if err != nil {
		return "", fmt.Errorf("failed to read role: %w", err)
	}

	next := models.RoleStandard
	if models.Role(current) == models.RoleStandard {
		next = models.RoleAdministrator
	}

	if _, err := tx.ExecContext(ctx, "UPDATE accounts SET role = ? WHERE id = ?", string(next), id); err != nil {
		return "", fmt.Errorf("failed to update role: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}
	return next, nil
}

func (s *SQLiteStore) DeleteAccount(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM accounts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return requireRow(res, "account")
}

// requireRow converts a zero-row write into a not-found error.
func requireRow(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return apperr.NotFoundf("%s not found", entity)
	}
	return nil
}
