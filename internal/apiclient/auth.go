package apiclient

import (
	"context"
	"net/http"
	"strings"

	"example.com/trainmate/internal/domain"
)

// Authenticate submits credentials to the backend and returns the identity it
// vouches for. Wrong credentials surface as a RequestError (typically 401).
func (c *Client) Authenticate(ctx context.Context, creds domain.Credentials) (domain.Identity, error) {
	var identity domain.Identity
	err := c.do(ctx, call{
		resource: "auth", method: http.MethodPost, url: c.endpoints.Auth + "/login",
		body: loginWrite{Role: creds.Role, Name: strings.TrimSpace(creds.Name), Password: creds.Password},
		out:  &identity, fallback: "Login failed",
	})
	if err != nil {
		return domain.Identity{}, err
	}
	if identity.Role == "" {
		identity.Role = creds.Role
	}
	identity.DisplayName = strings.TrimSpace(identity.DisplayName)
	if identity.DisplayName == "" {
		identity.DisplayName = strings.TrimSpace(creds.Name)
	}
	return identity, nil
}
