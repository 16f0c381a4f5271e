package store

import (
	"context"
	"errors"
)

// ErrSlotNotFound is returned by Load when the slot has never been written.
var ErrSlotNotFound = errors.New("store: slot not found")

// SlotStore is the durable key-value slot abstraction the library persists
// through. Every save writes the whole serialized collection — there is no
// delta persistence.
// [DIP] service/library depends on this interface, not on any concrete storage.
// [LSP] File, in-memory, and Postgres implementations are all valid substitutes.
type SlotStore interface {
	// Load returns the raw bytes last saved to the named slot, or
	// ErrSlotNotFound if the slot is empty.
	Load(ctx context.Context, slot string) ([]byte, error)

	// Save overwrites the named slot with data.
	Save(ctx context.Context, slot string, data []byte) error
}
