package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIDDecodesNumbersAndStrings(t *testing.T) {
	var payload struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":17,"b":"abc-1","c":null}`), &payload))
	require.Equal(t, ID("17"), payload.A)
	require.Equal(t, ID("abc-1"), payload.B)
	require.True(t, payload.C.IsZero())
}

func TestIDEncodesCanonicalIntegersAsNumbers(t *testing.T) {
	out, err := json.Marshal(map[string]ID{"n": "17", "s": "007", "u": "a1"})
	require.NoError(t, err)
	require.JSONEq(t, `{"n":17,"s":"007","u":"a1"}`, string(out))
}
