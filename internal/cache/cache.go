// Package cache memoizes base record universes.
//
// A universe depends only on (region, seed, size), so it can be reused across
// pages and requests. Corruption is always applied after a cache read, which
// keeps cached values clean.
package cache

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/fakedata/internal/records"
	"github.com/JonMunkholm/fakedata/internal/region"
)

// Cache stores base universes by key.
type Cache interface {
	// Get returns the cached records and true on a hit.
	Get(ctx context.Context, key string) ([]records.Record, bool, error)
	Set(ctx context.Context, key string, recs []records.Record) error
}

// Key builds the cache key for a universe.
func Key(r region.Region, seed int32, size int) string {
	return fmt.Sprintf("universe:%s:%d:%d", r, seed, size)
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]records.Record, bool, error) { return nil, false, nil }
func (Nop) Set(context.Context, string, []records.Record) error        { return nil }
