// Package storage provides the key-value persistence layer for the finanzas application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Validation errors.
var (
	ErrNilContext = errors.New("context cannot be nil")
	ErrInvalidKey = errors.New("invalid slot key")
	ErrNilValue   = errors.New("value cannot be nil")
)

// maxKeyLength bounds slot names.
const maxKeyLength = 255

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateKey accepts printable, non-blank names up to maxKeyLength bytes.
func validateKey(key string) error {
	switch {
	case strings.TrimSpace(key) == "":
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	case len(key) > maxKeyLength:
		return fmt.Errorf("%w: %d bytes, limit is %d", ErrInvalidKey, len(key), maxKeyLength)
	case strings.IndexFunc(key, unicode.IsControl) >= 0:
		return fmt.Errorf("%w: %q contains control characters", ErrInvalidKey, key)
	}
	return nil
}

// checkSlot validates the arguments shared by every slot operation.
func checkSlot(ctx context.Context, key string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return validateKey(key)
}

// validateValue rejects nil payloads. An empty, non-nil slice is allowed.
func validateValue(value []byte) error {
	if value == nil {
		return ErrNilValue
	}
	return nil
}
