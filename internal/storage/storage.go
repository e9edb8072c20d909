package storage

import (
	"context"
	"errors"
)

// Store is the persistent key-value adapter backing local app state.
// Values are JSON-serialized text; keys are plain strings ("cart",
// "user", "notifications", "notificationSettings", ...).
// Consumers define this interface, not the backing implementation.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

var ErrNotFound = errors.New("key not found")
