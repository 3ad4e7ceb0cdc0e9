// Package export implements the content-addressed invalidation cache that
// gates expensive, idempotent export operations.
//
// The cache persists a single record: the SHA-256 digest of the input
// artifact as of the last successful export. An export is re-run when the
// record is absent (cold start) or when the digest no longer matches. The
// record is only ever written as the final step of a successful run, so a
// failed or interrupted export always leaves the next check judging the
// input as still stale. Correctness beats efficiency here: the cache may
// over-run, it must never under-run.
package export

import (
	"context"

	"go.trai.ch/pywf/internal/core/domain"
	"go.trai.ch/pywf/internal/core/ports"
)

// Action is the externally-performed export being gated: one or more
// command invocations producing derived artifacts. Failure is signaled by
// a non-nil error.
type Action func(ctx context.Context) error

// Cache decides whether an export action must run for a given input.
type Cache struct {
	store ports.RecordStore
}

// New creates a Cache backed by the given record store.
func New(store ports.RecordStore) *Cache {
	return &Cache{store: store}
}

// NeedsRefresh reports whether the export must run for input. It has no
// side effects.
//
// An absent record is the normal cold-start signal and reports true. A
// record that exists but cannot be parsed is an anomaly and fails with
// domain.ErrRecordCorrupt rather than being guessed around: treating
// corruption as "stale" could paper over a broken store, treating it as
// "fresh" could skip a needed export.
func (c *Cache) NeedsRefresh(input []byte) (bool, error) {
	rec, err := c.store.Get()
	if err != nil {
		return false, err
	}
	if rec == nil {
		return true, nil
	}
	return domain.Digest(input) != rec.Hash, nil
}

// Refresh runs action unconditionally and, only if it completes without
// error, replaces the cache record with the digest of input. A failed
// action leaves the prior record (or its absence) byte-for-byte untouched.
func (c *Cache) Refresh(ctx context.Context, input []byte, action Action) error {
	if err := action(ctx); err != nil {
		return err
	}
	return c.store.Put(domain.NewExportRecord(input))
}

// RunIfNeeded is the entry point ordinary callers use: it refreshes when
// the input changed and reports whether the action ran. NeedsRefresh and
// Refresh are exported separately for testing and for callers that must
// force a refresh.
func (c *Cache) RunIfNeeded(ctx context.Context, input []byte, action Action) (bool, error) {
	stale, err := c.NeedsRefresh(input)
	if err != nil {
		return false, err
	}
	if !stale {
		return false, nil
	}
	if err := c.Refresh(ctx, input, action); err != nil {
		return false, err
	}
	return true, nil
}
