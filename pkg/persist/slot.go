package persist

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Slot when the key holds no value.
var ErrNotFound = errors.New("persist: slot not found")

// Slot is a named byte store. A document lives in exactly one slot and every
// Set overwrites it.
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
