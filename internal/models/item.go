package models

// Status is the lifecycle state of a backlog item.
type Status string

const (
	// StatusSuggested items are candidates for the next pick.
	StatusSuggested Status = "suggested"
	// StatusActive is the item currently being played.
	StatusActive Status = "active"
	StatusFinished Status = "finished"
	StatusDeferred Status = "deferred"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusSuggested, StatusActive, StatusFinished, StatusDeferred:
		return true
	}
	return false
}

// Item is a backlog entry the group can vote on.
type Item struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	CoverURL    string `json:"coverUrl,omitempty"`
	Status      Status `json:"status"`

	// ExternalRef is the catalog id of the title, 0 when the entry was added
	// by hand. Non-zero values are unique across all items.
	ExternalRef int64 `json:"externalRef,omitempty"`

	// SecondaryRef is the storefront id, when known.
	SecondaryRef string `json:"secondaryRef,omitempty"`

	// ReleaseDate is the catalog release date (YYYY-MM-DD), when known.
	ReleaseDate string `json:"releaseDate,omitempty"`

	// AddedBy is the username of the account that suggested the item.
	// Ownership checks compare against it.
	AddedBy string `json:"addedBy"`

	// VoteCount caches the number of vote rows referencing this item.
	// Maintained in the same transaction as every vote insert.
	VoteCount int `json:"voteCount"`
}

// ItemDraft carries caller-supplied item fields for add and update.
// On update, ExternalRef, SecondaryRef and ReleaseDate only overwrite the
// stored values when non-zero.
type ItemDraft struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	CoverURL     string `json:"coverUrl"`
	Status       Status `json:"status"`
	ExternalRef  int64  `json:"externalRef"`
	SecondaryRef string `json:"secondaryRef"`
	ReleaseDate  string `json:"releaseDate"`
}

// ItemView is an item annotated for a particular requester.
type ItemView struct {
	Item
	// Voted reports whether the requester has already voted for the item.
	// Always false for anonymous requesters.
	Voted bool `json:"voted"`
}
