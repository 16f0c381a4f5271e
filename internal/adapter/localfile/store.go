// Package localfile implements the slot store on the local filesystem:
// one JSON file per slot under a data directory. This is the default
// adapter — the whole collection lives in a single named slot, mirroring
// a browser localStorage key.
package localfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	portstore "github.com/alanyang/promptvault/internal/port/store"
)

var _ portstore.SlotStore = (*Store)(nil)

type Store struct {
	dir string
}

// New creates the store, making sure the data directory exists.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Load(_ context.Context, slot string) ([]byte, error) {
	data, err := os.ReadFile(s.path(slot))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, portstore.ErrSlotNotFound
		}
		return nil, fmt.Errorf("reading slot %s: %w", slot, err)
	}
	return data, nil
}

// Save writes through a temp file and renames, so a failed write never
// corrupts the previous contents of the slot.
func (s *Store) Save(_ context.Context, slot string, data []byte) error {
	path := s.path(slot)

	tmp, err := os.CreateTemp(s.dir, slot+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for slot %s: %w", slot, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing slot %s: %w", slot, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file for slot %s: %w", slot, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing slot %s: %w", slot, err)
	}
	return nil
}

func (s *Store) path(slot string) string {
	return filepath.Join(s.dir, slot+".json")
}
