package assets

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a hint or answer resource does not exist.
// Callers use it to distinguish a missing resource from a transport
// failure.
var ErrNotFound = errors.New("asset not found")

// Source provides the plain-text hint and answer resources for a surprise
// identifier.
type Source interface {
	// Hint returns the hint text for the identifier.
	Hint(ctx context.Context, id string) (string, error)

	// Answer returns the expected answer text for the identifier.
	// Answers are fetched on demand and never cached.
	Answer(ctx context.Context, id string) (string, error)
}
