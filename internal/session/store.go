// Package session defines the key-value store for the handful of
// session-scoped flags the gateway shares: the circuit marker and the
// per-resource warning markers.
package session

import (
	"context"
	"time"
)

// Store is the persistence surface for session flags. Implementations must
// be safe for concurrent use.
type Store interface {
	// Get returns the value for key, or "" when the key is absent or expired.
	Get(ctx context.Context, key string) (string, error)

	// Set writes key with an optional TTL. ttl <= 0 means no expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// CircuitKey holds "true" while the backend is assumed unavailable.
// Absence or any other value means the circuit is closed.
const CircuitKey = "backend-unavailable"

const warningPrefix = "mock-warning-"

// WarningKey returns the flag key recording that the fallback warning has
// already been shown for a resource this session.
func WarningKey(resource string) string {
	return warningPrefix + resource
}
