package ports

import (
	"context"

	"freight/internal/core/domain/model/document"
)

// DocumentSequenceRepository hands out daily document sequence values.
type DocumentSequenceRepository interface {
	// Next atomically increments the counter of (prefix, day) and returns the
	// new value, starting at 1. The increment belongs to the caller's
	// transaction: rolling back releases it.
	Next(ctx context.Context, prefix document.Prefix, day string) (int, error)
}
