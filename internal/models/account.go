package models

// Role is the closed set of permission levels an account can hold.
type Role string

const (
	// RoleStandard is the default role for every account after the first.
	RoleStandard Role = "standard"
	// RoleAdministrator can manage other accounts and any backlog entry.
	RoleAdministrator Role = "administrator"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleStandard || r == RoleAdministrator
}

// RootAccountID is the permanently protected bootstrap account. It can never
// be deleted, demoted, or have its password reset through the admin path.
const RootAccountID int64 = 1

// AnonymousUserID is the sentinel identity supplied by the transport layer
// when a request carries no valid session.
const AnonymousUserID int64 = 0

// Account represents a registered user of the group.
type Account struct {
	// ID is the storage-assigned identifier.
	ID int64 `json:"id"`

	// Username is unique case-insensitively.
	Username string `json:"username"`

	// PasswordHash is the HMAC of the raw password keyed with PasswordSalt.
	// Never serialized.
	PasswordHash string `json:"-"`

	// PasswordSalt is the per-account random key material for PasswordHash.
	PasswordSalt string `json:"-"`

	Role Role `json:"role"`

	// CreatedAt is the Unix timestamp when the account was registered.
	CreatedAt int64 `json:"createdAt"`
}

// Identity is the decoded requester passed into every call that needs one.
// The transport layer builds it from session claims, or leaves the zero
// value (ID 0) for anonymous requests.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// IsAnonymous reports whether the identity is the anonymous sentinel.
func (i Identity) IsAnonymous() bool {
	return i.ID == AnonymousUserID
}
