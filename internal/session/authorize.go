package session

import "example.com/trainmate/internal/domain"

// Decision is the outcome of a role-gated access check.
type Decision int

const (
	Allow Decision = iota
	RedirectToLogin
	RedirectToHome
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect_to_login"
	case RedirectToHome:
		return "redirect_to_home"
	default:
		return "unknown"
	}
}

// Authorize decides access for identity against an optional required role.
// An empty required role admits any authenticated identity.
func Authorize(identity *domain.Identity, required domain.Role) Decision {
	if identity == nil {
		return RedirectToLogin
	}
	if required != "" && identity.Role != required {
		return RedirectToHome
	}
	return Allow
}
