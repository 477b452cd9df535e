package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenExpiry(t *testing.T) {
	exp := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	got, ok, err := TokenExpiry(signedToken(t, exp))
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, got.Equal(exp))

	_, ok, err = TokenExpiry("")
	require.NoError(t, err)
	require.False(t, ok)

	_, _, err = TokenExpiry("not-a-jwt")
	require.ErrorIs(t, err, ErrMalformedToken)
}

func TestTokenUsable(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	require.True(t, tokenUsable("", now))
	require.True(t, tokenUsable(signedToken(t, now.Add(time.Minute)), now))
	require.False(t, tokenUsable(signedToken(t, now.Add(-time.Minute)), now))
	require.False(t, tokenUsable("garbage", now))
}
