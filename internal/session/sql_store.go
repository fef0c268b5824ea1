package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/laporinfra/laporinfra/pkg/database"
	"github.com/laporinfra/laporinfra/pkg/logger"
)

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS kv_store (
		store_key  TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)
`

// SQLStore keeps reporter records in the kv_store table (sqlite or postgres)
type SQLStore struct {
	db     *database.DB
	logger *logger.Logger
	now    func() time.Time
}

// NewSQLStore creates a store on db. Call Migrate once before use.
func NewSQLStore(db *database.DB, log *logger.Logger) *SQLStore {
	if log == nil {
		log = logger.Nop()
	}
	return &SQLStore{db: db, logger: log.WithComponent("session"), now: time.Now}
}

// Migrate creates the kv_store table if it does not exist
func (s *SQLStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to migrate kv_store: %w", err)
	}
	return nil
}

// Load returns the record under key or ErrNotFound
func (s *SQLStore) Load(ctx context.Context, key string) (Reporter, error) {
	var value string
	query := s.db.Rebind(`SELECT value FROM kv_store WHERE store_key = ?`)
	if err := s.db.GetContext(ctx, &value, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Reporter{}, ErrNotFound
		}
		return Reporter{}, fmt.Errorf("failed to load session: %w", err)
	}
	return decode([]byte(value))
}

// Save upserts the record under key
func (s *SQLStore) Save(ctx context.Context, key string, r Reporter) error {
	data, err := encode(r)
	if err != nil {
		return err
	}

	query := s.db.Rebind(`
		INSERT INTO kv_store (store_key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (store_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`)
	if _, err := s.db.ExecContext(ctx, query, key, string(data), s.now().UTC()); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Debug().Str("key", key).Str("village", r.Village).Msg("reporter session saved")
	return nil
}

// Clear deletes the record under key; clearing a missing key is not an error
func (s *SQLStore) Clear(ctx context.Context, key string) error {
	query := s.db.Rebind(`DELETE FROM kv_store WHERE store_key = ?`)
	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
