package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS activity_log (
	id          UUID PRIMARY KEY,
	action      TEXT NOT NULL,
	region      TEXT NOT NULL DEFAULT '',
	seed        TEXT NOT NULL DEFAULT '',
	errors      DOUBLE PRECISION NOT NULL DEFAULT 0,
	page        INTEGER NOT NULL DEFAULT 0,
	row_count   INTEGER NOT NULL DEFAULT 0,
	ip_address  TEXT,
	user_agent  TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS activity_log_created_at_idx ON activity_log (created_at DESC);
`

// PostgresStore writes entries to the activity_log table.
type PostgresStore struct {
	db DBTX
}

// NewPostgresStore wraps a pool or transaction.
func NewPostgresStore(db DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the activity_log table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create activity_log: %w", err)
	}
	return nil
}

func (s *PostgresStore) Record(ctx context.Context, e Entry) error {
	id := uuid.New()
	if e.ID != "" {
		parsed, err := uuid.Parse(e.ID)
		if err != nil {
			return fmt.Errorf("invalid entry id %q: %w", e.ID, err)
		}
		id = parsed
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO activity_log
			(id, action, region, seed, errors, page, row_count, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		toPgUUID(id),
		string(e.Action),
		e.Region,
		e.Seed,
		e.Errors,
		int32(e.Page),
		int32(e.Rows),
		toPgText(e.IPAddress),
		toPgText(e.UserAgent),
		e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (s *PostgresStore) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, action, region, seed, errors, page, row_count, ip_address, user_agent, created_at
		FROM activity_log
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query activity: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e         Entry
			id        pgtype.UUID
			action    string
			page      int32
			rowCount  int32
			ipAddress pgtype.Text
			userAgent pgtype.Text
		)
		if err := rows.Scan(&id, &action, &e.Region, &e.Seed, &e.Errors, &page, &rowCount,
			&ipAddress, &userAgent, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		e.ID = uuid.UUID(id.Bytes).String()
		e.Action = Action(action)
		e.Page = int(page)
		e.Rows = int(rowCount)
		e.IPAddress = ipAddress.String
		e.UserAgent = userAgent.String
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) PurgeOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM activity_log WHERE created_at < $1`, time.Now().Add(-age))
	if err != nil {
		return 0, fmt.Errorf("purge activity: %w", err)
	}
	return tag.RowsAffected(), nil
}

func toPgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func toPgText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}
