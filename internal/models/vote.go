package models

// VoteRecord is one user's vote for one item. Records accumulate and are
// never updated; removing a single vote is not supported. The (ItemID,
// UserID) pair is unique, so an account holds at most one vote per item.
type VoteRecord struct {
	ID     int64 `json:"id"`
	ItemID int64 `json:"itemId"`
	UserID int64 `json:"userId"`
}
