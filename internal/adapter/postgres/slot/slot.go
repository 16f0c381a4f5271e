package slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	portstore "github.com/alanyang/promptvault/internal/port/store"
)

var _ portstore.SlotStore = (*Store)(nil)

// Store implements the slot store as a single jsonb row per slot name.
// The whole-collection-per-write contract carries over unchanged — an
// upsert replaces the entire document.
// [LSP] Any conforming SlotStore (file, in-memory) can substitute.
type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Load(ctx context.Context, slot string) ([]byte, error) {
	query := `SELECT document FROM library_slots WHERE slot = $1`

	var data []byte
	err := s.pool.QueryRow(ctx, query, slot).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, portstore.ErrSlotNotFound
		}
		return nil, fmt.Errorf("loading slot %s: %w", slot, err)
	}
	return data, nil
}

func (s *Store) Save(ctx context.Context, slot string, data []byte) error {
	query := `
		INSERT INTO library_slots (slot, document, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (slot) DO UPDATE SET document = EXCLUDED.document, updated_at = NOW()`

	_, err := s.pool.Exec(ctx, query, slot, data)
	if err != nil {
		return fmt.Errorf("saving slot %s: %w", slot, err)
	}
	return nil
}
