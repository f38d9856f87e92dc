package storage

import "context"

// UnlockStore is the persistent set of password-verified surprise
// identifiers. Implementations must persist a successful MarkUnlocked
// before returning, and must treat missing or unreadable persisted data
// as an empty set rather than an error.
type UnlockStore interface {
	// Load returns all persisted identifiers.
	Load(ctx context.Context) ([]string, error)

	// IsUnlocked reports whether the identifier has been unlocked.
	IsUnlocked(ctx context.Context, id string) (bool, error)

	// MarkUnlocked adds the identifier to the set. It is idempotent:
	// marking an already-unlocked identifier is a no-op.
	MarkUnlocked(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}
