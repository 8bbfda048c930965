package access

import (
	"errors"
	"testing"

	"github.com/gamenight/backend/internal/apperr"
	"github.com/gamenight/backend/internal/models"
)

func TestCanModify(t *testing.T) {
	item := &models.Item{ID: 1, Title: "Elden Ring", AddedBy: "admin"}

	tests := []struct {
		name  string
		actor models.Identity
		want  bool
	}{
		{
			name:  "administrator modifies anything",
			actor: models.Identity{ID: 1, Username: "root", Role: models.RoleAdministrator},
			want:  true,
		},
		{
			name:  "owner modifies own item",
			actor: models.Identity{ID: 2, Username: "admin", Role: models.RoleStandard},
			want:  true,
		},
		{
			name:  "administrator who also owns",
			actor: models.Identity{ID: 3, Username: "admin", Role: models.RoleAdministrator},
			want:  true,
		},
		{
			name:  "standard non-owner is rejected",
			actor: models.Identity{ID: 4, Username: "hacker", Role: models.RoleStandard},
			want:  false,
		},
		{
			name:  "anonymous is rejected",
			actor: models.Identity{},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanModify(tt.actor, item); got != tt.want {
				t.Errorf("CanModify(%+v) = %v, want %v", tt.actor, got, tt.want)
			}
		})
	}
}

func TestCheckAccountTarget(t *testing.T) {
	actor := models.Identity{ID: 5, Username: "boss", Role: models.RoleAdministrator}

	tests := []struct {
		name        string
		targetID    int64
		selfAllowed bool
		wantErr     bool
	}{
		{"root is always protected", models.RootAccountID, false, true},
		{"root is protected even when self is allowed", models.RootAccountID, true, true},
		{"self is rejected for delete and role toggle", 5, false, true},
		{"self is allowed for password reset", 5, true, false},
		{"other accounts pass", 9, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckAccountTarget(actor, tt.targetID, tt.selfAllowed)
			if tt.wantErr {
				if !errors.Is(err, apperr.ErrConflict) {
					t.Errorf("error = %v, want conflict", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
