package apiclient

import (
	"net/http"

	"github.com/google/uuid"
)

// TokenSource yields the bearer token of the current session, or "".
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() string

// Token implements TokenSource.
func (f TokenFunc) Token() string { return f() }

// BearerTransport decorates outgoing requests with the session bearer token
// and a request id.
type BearerTransport struct {
	Base   http.RoundTripper
	Tokens TokenSource
}

// NewBearerTransport wraps base; a nil base uses http.DefaultTransport.
func NewBearerTransport(base http.RoundTripper, tokens TokenSource) *BearerTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &BearerTransport{Base: base, Tokens: tokens}
}

// RoundTrip implements http.RoundTripper.
func (t *BearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	if out.Header.Get("X-Request-ID") == "" {
		out.Header.Set("X-Request-ID", uuid.NewString())
	}
	if t.Tokens != nil && out.Header.Get("Authorization") == "" {
		if token := t.Tokens.Token(); token != "" {
			out.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return t.Base.RoundTrip(out)
}
