// Package access holds the permission predicates. Everything here is a
// pure function over the actor identity and the target entity; no storage,
// no context.
package access

import (
	"github.com/gamenight/backend/internal/apperr"
	"github.com/gamenight/backend/internal/models"
)

// CanModify reports whether the actor may edit or delete the item:
// administrators may touch anything, everyone else only what they added.
// Voting has its own rule (one vote per account per item) and adding needs
// no check, so neither goes through here.
func CanModify(actor models.Identity, item *models.Item) bool {
	if actor.Role == models.RoleAdministrator {
		return true
	}
	return item.AddedBy == actor.Username
}

// CheckAccountTarget guards the administrative account operations (delete,
// role toggle, password reset). The root account is out of bounds for all
// of them, and delete/role-toggle additionally reject the actor's own
// account so an administrator cannot lock themselves out.
func CheckAccountTarget(actor models.Identity, targetID int64, selfAllowed bool) error {
	if targetID == models.RootAccountID {
		return apperr.Conflictf("the root account is protected")
	}
	if !selfAllowed && targetID == actor.ID {
		return apperr.Conflictf("cannot target your own account")
	}
	return nil
}
