// Package models defines the core domain types for the gamenight backend.
//
// Relationships between entities are id-based only: an Item references the
// suggesting account by username, a VoteRecord references item and account
// by id. No model embeds another, which keeps ownership acyclic; the
// storage layer resolves lookups.
//
// Two invariants live in the data itself rather than in any one component:
//
//   - Item.VoteCount always equals the number of VoteRecord rows for the
//     item; both change inside the same transaction.
//   - The account with ID 1 (RootAccountID) is permanently protected from
//     deletion, demotion and admin password resets.
package models
