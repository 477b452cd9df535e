// Package storage provides durable key/value slots for the session guard.
package storage

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by every backend when a key holds no value.
var ErrNotFound = errors.New("storage key not found")

// ErrInvalidKey rejects keys that cannot be stored safely.
var ErrInvalidKey = errors.New("invalid storage key")

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
