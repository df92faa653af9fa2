package domain

import "context"

// StoreError represents an error originating from a key-value store.
type StoreError string

func (e StoreError) Error() string {
	return string(e)
}

// ErrKeyNotFound is returned when a key is not present in the store.
const ErrKeyNotFound = StoreError("store: key not found")

// Store is the key-value port behind which progress trees and auxiliary
// exercise blobs are persisted. Implementations: in-memory, Redis and SQL.
type Store interface {
	// Get retrieves the value stored at key.
	// It returns ErrKeyNotFound if the key is not present.
	Get(ctx context.Context, key string) (string, error)

	// Set writes value at key, overwriting unconditionally.
	Set(ctx context.Context, key string, value string) error

	// Delete removes key. It does not return an error if the key is not present.
	Delete(ctx context.Context, key string) error

	// Ping checks the health of the backing service.
	Ping(ctx context.Context) error
}

// TransactionManager runs fn inside one database transaction carried by ctx.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
