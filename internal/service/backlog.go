package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/gamenight/backend/internal/access"
	"github.com/gamenight/backend/internal/apperr"
	"github.com/gamenight/backend/internal/models"
	"github.com/gamenight/backend/internal/storage"
)

// BacklogService owns the shared backlog: listing, suggesting, editing,
// removing and voting. Every mutation except voting and adding runs through
// the ownership check; voting is bounded instead by the one-vote-per-pair
// ledger constraint.
type BacklogService struct {
	store storage.Store
}

// NewBacklogService creates a BacklogService with the given storage backend.
func NewBacklogService(store storage.Store) *BacklogService {
	return &BacklogService{store: store}
}

// List returns all items sorted by vote count (insertion order breaks
// ties), annotated with the requester's voted flags. The anonymous sentinel
// gets all flags false.
func (s *BacklogService) List(ctx context.Context, requesterID int64) ([]models.ItemView, error) {
	return s.store.ListItems(ctx, requesterID)
}

// Add creates a new suggestion owned by the requester and returns the
// refreshed list. A draft carrying a catalog ref that is already on the
// list is rejected before anything is written; the unique constraint on
// external_ref backstops the race between the check and the insert.
func (s *BacklogService) Add(ctx context.Context, draft models.ItemDraft, requester models.Identity) ([]models.ItemView, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return nil, apperr.Validationf("title is required")
	}

	status := draft.Status
	if status == "" {
		status = models.StatusSuggested
	}
	if !status.Valid() {
		return nil, apperr.Validationf("unknown status %q", string(draft.Status))
	}

	if draft.ExternalRef != 0 {
		existing, err := s.store.FindItemByExternalRef(ctx, draft.ExternalRef)
		if err == nil {
			slog.Info("Duplicate suggestion rejected",
				"external_ref", draft.ExternalRef, "existing_item", existing.ID)
			return nil, apperr.Conflictf("%s is already on the list.", draft.Title)
		}
		if !errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
	}

	item := &models.Item{
		Title:        draft.Title,
		Description:  draft.Description,
		CoverURL:     draft.CoverURL,
		Status:       status,
		ExternalRef:  draft.ExternalRef,
		SecondaryRef: draft.SecondaryRef,
		ReleaseDate:  draft.ReleaseDate,
		AddedBy:      requester.Username,
		VoteCount:    0,
	}
	if err := s.store.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	slog.Info("Item added", "item_id", item.ID, "title", item.Title, "added_by", requester.Username)
	return s.store.ListItems(ctx, requester.ID)
}

// Update edits an existing item and returns the refreshed list. Title,
// description, cover and status overwrite unconditionally; the catalog
// refs and release date only overwrite when the draft supplies a value.
func (s *BacklogService) Update(ctx context.Context, itemID int64, draft models.ItemDraft, requester models.Identity) ([]models.ItemView, error) {
	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !access.CanModify(requester, item) {
		return nil, apperr.Authorizationf("only the owner or an administrator can modify this item")
	}

	if strings.TrimSpace(draft.Title) == "" {
		return nil, apperr.Validationf("title is required")
	}
	if !draft.Status.Valid() {
		return nil, apperr.Validationf("unknown status %q", string(draft.Status))
	}

	item.Title = draft.Title
	item.Description = draft.Description
	item.CoverURL = draft.CoverURL
	item.Status = draft.Status
	if draft.ExternalRef != 0 {
		item.ExternalRef = draft.ExternalRef
	}
	if draft.SecondaryRef != "" {
		item.SecondaryRef = draft.SecondaryRef
	}
	if draft.ReleaseDate != "" {
		item.ReleaseDate = draft.ReleaseDate
	}

	if err := s.store.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	slog.Info("Item updated", "item_id", item.ID, "by", requester.Username)
	return s.store.ListItems(ctx, requester.ID)
}

// Remove deletes an item, cascading its vote rows, and returns the
// refreshed list. Same permission gate as Update.
func (s *BacklogService) Remove(ctx context.Context, itemID int64, requester models.Identity) ([]models.ItemView, error) {
	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !access.CanModify(requester, item) {
		return nil, apperr.Authorizationf("only the owner or an administrator can modify this item")
	}

	if err := s.store.DeleteItem(ctx, itemID); err != nil {
		return nil, err
	}

	slog.Info("Item removed", "item_id", itemID, "by", requester.Username)
	return s.store.ListItems(ctx, requester.ID)
}

// Upvote records one vote by the requester for the item and returns the
// refreshed list. The ledger allows at most one vote per (item, user)
// pair; a second attempt fails with a conflict and leaves the count alone.
func (s *BacklogService) Upvote(ctx context.Context, itemID int64, requester models.Identity) ([]models.ItemView, error) {
	if requester.IsAnonymous() {
		return nil, apperr.Authenticationf("login required to vote")
	}

	if _, err := s.store.GetItem(ctx, itemID); err != nil {
		return nil, err
	}

	if err := s.store.AddVote(ctx, itemID, requester.ID); err != nil {
		return nil, err
	}

	slog.Info("Vote recorded", "item_id", itemID, "user_id", requester.ID)
	return s.store.ListItems(ctx, requester.ID)
}
