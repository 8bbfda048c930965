package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gamenight/backend/internal/apperr"
	"github.com/gamenight/backend/internal/models"
)

const itemColumns = "id, title, description, cover_url, status, external_ref, secondary_ref, release_date, added_by, vote_count"

// itemRow matches both *sql.Row and *sql.Rows.
type itemRow interface {
	Scan(dest ...any) error
}

func scanItem(row itemRow, item *models.Item) error {
	var (
		description  sql.NullString
		coverURL     sql.NullString
		status       string
		externalRef  sql.NullInt64
		secondaryRef sql.NullString
		releaseDate  sql.NullString
	)
	err := row.Scan(&item.ID, &item.Title, &description, &coverURL, &status,
		&externalRef, &secondaryRef, &releaseDate, &item.AddedBy, &item.VoteCount)
	if err != nil {
		return err
	}
	item.Description = description.String
	item.CoverURL = coverURL.String
	item.Status = models.Status(status)
	item.ExternalRef = externalRef.Int64
	item.SecondaryRef = secondaryRef.String
	item.ReleaseDate = releaseDate.String
	return nil
}

// nullable maps Go zero values onto SQL NULL so the UNIQUE constraint on
// external_ref ignores manual entries.
func nullableInt(v int64) any {
	if v == 0 {
		return nil
	}
	return v
}

func nullableString(v string) any {
	if v == "" {
		return nil
	}
	return v
}

// ListItems returns every item ordered by vote count descending, insertion
// order as the stable tiebreak, annotated with whether requesterID already
// voted for it. The anonymous sentinel (0) matches no vote row, so all
// flags come back false.
func (s *SQLiteStore) ListItems(ctx context.Context, requesterID int64) ([]models.ItemView, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT i.id, i.title, i.description, i.cover_url, i.status,
		       i.external_ref, i.secondary_ref, i.release_date, i.added_by, i.vote_count,
		       CASE WHEN v.user_id IS NULL THEN 0 ELSE 1 END AS voted
		FROM items i
		LEFT JOIN votes v ON v.item_id = i.id AND v.user_id = ?
		ORDER BY i.vote_count DESC, i.id ASC`, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var views []models.ItemView
	for rows.Next() {
		var (
			view  models.ItemView
			voted int
		)
		var (
			description  sql.NullString
			coverURL     sql.NullString
			status       string
			externalRef  sql.NullInt64
			secondaryRef sql.NullString
			releaseDate  sql.NullString
		)
		err := rows.Scan(&view.ID, &view.Title, &description, &coverURL, &status,
			&externalRef, &secondaryRef, &releaseDate, &view.AddedBy, &view.VoteCount, &voted)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		view.Description = description.String
		view.CoverURL = coverURL.String
		view.Status = models.Status(status)
		view.ExternalRef = externalRef.Int64
		view.SecondaryRef = secondaryRef.String
		view.ReleaseDate = releaseDate.String
		view.Voted = voted == 1
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	return views, nil
}

func (s *SQLiteStore) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	item := &models.Item{}
	err := scanItem(s.db.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE id = ?", id), item)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("item not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// FindItemByExternalRef returns the item carrying the catalog ref.
func (s *SQLiteStore) FindItemByExternalRef(ctx context.Context, ref int64) (*models.Item, error) {
	item := &models.Item{}
	err := scanItem(s.db.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE external_ref = ?", ref), item)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("item not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find item by external ref: %w", err)
	}
	return item, nil
}

// CreateItem persists a new item and populates item.ID. A duplicate
// external ref violates the UNIQUE constraint and comes back as a conflict.
func (s *SQLiteStore) CreateItem(ctx context.Context, item *models.Item) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO items (title, description, cover_url, status, external_ref, secondary_ref, release_date, added_by, vote_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.Title, nullableString(item.Description), nullableString(item.CoverURL),
		string(item.Status), nullableInt(item.ExternalRef), nullableString(item.SecondaryRef),
		nullableString(item.ReleaseDate), item.AddedBy, item.VoteCount)
	if isUniqueViolation(err) {
		return apperr.Conflictf("%s is already on the list.", item.Title)
	}
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	item.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read item id: %w", err)
	}
	return nil
}

// UpdateItem overwrites all mutable columns. Partial-update decisions are
// the service's job; by the time a draft reaches here it is fully merged.
func (s *SQLiteStore) UpdateItem(ctx context.Context, item *models.Item) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE items
		SET title = ?, description = ?, cover_url = ?, status = ?, external_ref = ?, secondary_ref = ?, release_date = ?
		WHERE id = ?`,
		item.Title, nullableString(item.Description), nullableString(item.CoverURL),
		string(item.Status), nullableInt(item.ExternalRef), nullableString(item.SecondaryRef),
		nullableString(item.ReleaseDate), item.ID)
	if isUniqueViolation(err) {
		return apperr.Conflictf("%s is already on the list.", item.Title)
	}
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	return requireRow(res, "item")
}

// DeleteItem removes the item; the votes table cascades on the foreign key,
// which keeps the ledger consistent with the cached counts.
func (s *SQLiteStore) DeleteItem(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return requireRow(res, "item")
}

// ListItemsByStatus returns items in the given status in insertion order.
func (s *SQLiteStore) ListItemsByStatus(ctx context.Context, status models.Status) ([]models.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE status = ? ORDER BY id", string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to list items by status: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var item models.Item
		if err := scanItem(rows, &item); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	return items, nil
}

func (s *SQLiteStore) TransitionItemStatus(ctx context.Context, id int64, from, to models.Status) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE items SET status = ? WHERE id = ? AND status = ?",
		string(to), id, string(from))
	if err != nil {
		return fmt.Errorf("failed to transition item status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		// Zero rows means either the item is gone or someone else moved
		// it out of the from status first.
		var count int
		if err := s.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM items WHERE id = ?", id).Scan(&count); err != nil {
			return fmt.Errorf("failed to check item existence: %w", err)
		}
		if count == 0 {
			return apperr.NotFoundf("item not found")
		}
		return apperr.Conflictf("item is no longer %s", string(from))
	}
	return nil
}
