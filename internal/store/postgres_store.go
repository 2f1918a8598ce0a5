package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rovenko/dungeoncrawl/internal/model"
)

// DefaultSlot is the save slot used when none is configured.
const DefaultSlot = "default"

// PostgresStore persists the session state as a JSONB payload, one row per
// save slot.
type PostgresStore struct {
	pool *pgxpool.Pool
	slot string
}

// NewPostgresStore connects to PostgreSQL and returns a store for the given
// save slot.
func NewPostgresStore(ctx context.Context, dsn, slot string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	if slot == "" {
		slot = DefaultSlot
	}
	return &PostgresStore{pool: pool, slot: slot}, nil
}

// Save upserts the session state into the slot's row.
func (s *PostgresStore) Save(ctx context.Context, state *model.SaveState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding save: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO saves (slot, session_id, saved_at, state)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (slot) DO UPDATE
		 SET session_id = EXCLUDED.session_id,
		     saved_at = EXCLUDED.saved_at,
		     state = EXCLUDED.state`,
		s.slot, state.SessionID, state.SavedAt, payload,
	)
	if err != nil {
		return fmt.Errorf("saving slot %q: %w", s.slot, err)
	}
	return nil
}

// Load reads the slot's session state.
// Returns ErrNoSave when the slot is empty.
func (s *PostgresStore) Load(ctx context.Context) (*model.SaveState, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT state FROM saves WHERE slot = $1`, s.slot,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoSave
		}
		return nil, fmt.Errorf("loading slot %q: %w", s.slot, err)
	}

	var state model.SaveState
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, fmt.Errorf("decoding slot %q: %w", s.slot, err)
	}
	return &state, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
