package domain

import "errors"

// Role distinguishes trainee sessions from admin sessions.
type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleClient || r == RoleAdmin
}

// ErrInvalidIdentity is returned for identities that break the role/subject invariant.
var ErrInvalidIdentity = errors.New("invalid identity")

// Identity is the locally held authentication record. Its JSON form is the
// persisted session slot.
type Identity struct {
	Role        Role   `json:"role"`
	SubjectID   ID     `json:"traineeId,omitempty"`
	DisplayName string `json:"traineeName"`
	// Token is the bearer token issued by the backend at sign-in, if any.
	Token string `json:"token,omitempty"`
}

// Validate enforces the identity invariants: a known role, and a subject for clients.
func (i Identity) Validate() error {
	if !i.Role.Valid() {
		return &ValidationError{Field: "role", Message: "role must be client or admin", cause: ErrInvalidIdentity}
	}
	if i.Role == RoleClient && i.SubjectID.IsZero() {
		return &ValidationError{Field: "traineeId", Message: "client identity requires a trainee id", cause: ErrInvalidIdentity}
	}
	return nil
}

// Normalized returns a copy with the unused admin subject cleared. Other
// fields are kept exactly as given.
func (i Identity) Normalized() Identity {
	out := i
	if out.Role == RoleAdmin {
		out.SubjectID = ""
	}
	return out
}

// IsAdmin reports whether the identity carries the admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}
