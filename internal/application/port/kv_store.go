package port

import "context"

//go:generate mockgen -source=kv_store.go -destination=mocks/mock_kv_store.go -package=mock_port

// KeyValueStore is the persistence contract the window layout is stored through.
// Values are opaque strings (JSON documents in practice).
type KeyValueStore interface {
	// Get returns the value stored under key. ok is false when nothing is stored.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, overwriting any prior value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
