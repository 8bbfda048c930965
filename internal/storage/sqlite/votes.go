package sqlite

import (
	"context"
	"fmt"

	"github.com/gamenight/backend/internal/apperr"
	"github.com/gamenight/backend/internal/models"
)

// AddVote inserts the (itemID, userID) vote row and bumps the item's cached
// count in one transaction. The UNIQUE constraint on the pair is the
// concurrency guard: when two requests race for the same pair, exactly one
// insert succeeds and the loser sees the conflict before any count change.
func (s *SQLiteStore) AddVote(ctx context.Context, itemID, userID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO votes (item_id, user_id) VALUES (?, ?)", itemID, userID)
	if isUniqueViolation(err) {
		return apperr.Conflictf("already voted")
	}
	if err != nil {
		return fmt.Errorf("failed to insert vote: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE items SET vote_count = vote_count + 1 WHERE id = ?", itemID)
	if err != nil {
		return fmt.Errorf("failed to bump vote count: %w", err)
	}
	if err := requireRow(res, "item"); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListVotesForItem returns the ledger rows for one item.
func (s *SQLiteStore) ListVotesForItem(ctx context.Context, itemID int64) ([]models.VoteRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, item_id, user_id FROM votes WHERE item_id = ? ORDER BY id", itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	defer rows.Close()

	var votes []models.VoteRecord
	for rows.Next() {
		var v models.VoteRecord
		if err := rows.Scan(&v.ID, &v.ItemID, &v.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate votes: %w", err)
	}
	return votes, nil
}
