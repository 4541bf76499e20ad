// Package activity records what the service generated and exported.
//
// Entries are written best effort: a failing store never fails the request
// that produced the entry. Three stores are provided:
//
//   - PostgresStore: durable log in the activity_log table (pgx)
//   - MemoryStore: bounded in-process ring, used when no database is configured
//   - Nop: discards everything
//
// Old entries are purged periodically by [StartRetentionScheduler].
package activity

import (
	"context"
	"time"
)

// Action identifies the operation an entry describes.
type Action string

const (
	ActionGenerate      Action = "generate"
	ActionExportCSV     Action = "export_csv"
	ActionExportParquet Action = "export_parquet"
)

// Entry is a single activity log row.
type Entry struct {
	ID        string    `json:"id"`
	Action    Action    `json:"action"`
	Region    string    `json:"region,omitempty"`
	Seed      string    `json:"seed,omitempty"`
	Errors    float64   `json:"errors"`
	Page      int       `json:"page,omitempty"`
	Rows      int       `json:"rows"`
	IPAddress string    `json:"ipAddress,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store persists entries.
type Store interface {
	Record(ctx context.Context, e Entry) error
	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]Entry, error)
	// PurgeOlderThan deletes entries created before now-age and returns the count.
	PurgeOlderThan(ctx context.Context, age time.Duration) (int64, error)
}

// Nop discards all entries.
type Nop struct{}

func (Nop) Record(context.Context, Entry) error                         { return nil }
func (Nop) Recent(context.Context, int) ([]Entry, error)                { return nil, nil }
func (Nop) PurgeOlderThan(context.Context, time.Duration) (int64, error) { return 0, nil }
