// Package cache memoizes CPF validity keyed by the cleaned digit string.
//
// Entries are idempotent: a digit string always maps to the same validity,
// so no invalidation is needed and concurrent writers cannot conflict.
// Caches are an optimization only; callers must produce the same result
// on a miss or on any cache error.
package cache

import "context"

// Cache stores validity by cleaned digits. Get returns sentinel.ErrNotFound
// on a miss.
type Cache interface {
	Get(ctx context.Context, digits string) (bool, error)
	Set(ctx context.Context, digits string, valid bool) error
	Clear(ctx context.Context) error
}
