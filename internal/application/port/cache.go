package port

import "time"

// Cache is a bounded, concurrency-safe key-value cache whose entries may
// carry an expiry. Expired entries are never returned.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)

	// Set stores value without an expiry.
	Set(key K, value V)

	// SetUntil stores value until expires. An expiry in the past removes key.
	SetUntil(key K, value V, expires time.Time)

	Remove(key K)

	// Len counts stored entries, expired ones included until they are pruned.
	Len() int
}
