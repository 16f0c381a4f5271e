// Package library owns the authoritative prompt collection. Every mutation
// goes through the Service, which keeps the in-memory list and the durable
// slot in sync: one whole-collection write per successful mutation, then a
// change event so presentation clients recompute their views.
package library

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/alanyang/promptvault/internal/domain/event"
	domainprompt "github.com/alanyang/promptvault/internal/domain/prompt"
	porteventbus "github.com/alanyang/promptvault/internal/port/eventbus"
	portstore "github.com/alanyang/promptvault/internal/port/store"
)

// Service is the collection store.
// [SRP] Collection ownership and persistence sync only — filtering and
// sorting live in domain/view, serialization for files in interchange.
// [DIP] Depends on the store and bus ports, never on adapters or transport.
type Service struct {
	store portstore.SlotStore
	bus   porteventbus.EventBus
	slot  string

	mu      sync.RWMutex
	prompts []domainprompt.Prompt
}

// NewService loads the collection from the named slot. A missing slot or a
// corrupt payload degrades to an empty collection — the store is never a
// startup failure.
func NewService(ctx context.Context, store portstore.SlotStore, bus porteventbus.EventBus, slot string) *Service {
	s := &Service{store: store, bus: bus, slot: slot, prompts: []domainprompt.Prompt{}}

	data, err := store.Load(ctx, slot)
	switch {
	case errors.Is(err, portstore.ErrSlotNotFound):
		// First run.
	case err != nil:
		slog.ErrorContext(ctx, "library: load failed, starting empty", "slot", slot, "error", err)
	default:
		var prompts []domainprompt.Prompt
		if err := json.Unmarshal(data, &prompts); err != nil {
			slog.ErrorContext(ctx, "library: corrupt slot, starting empty", "slot", slot, "error", err)
		} else {
			s.prompts = prompts
		}
	}
	return s
}

// List returns a snapshot of the collection in storage order (newest first).
func (s *Service) List(_ context.Context) []domainprompt.Prompt {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domainprompt.Prompt, len(s.prompts))
	copy(out, s.prompts)
	return out
}

// Get returns the prompt with the given id.
func (s *Service) Get(_ context.Context, id uuid.UUID) (domainprompt.Prompt, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.prompts {
		if p.ID == id {
			return p, true
		}
	}
	return domainprompt.Prompt{}, false
}

// Create assigns id and timestamps, prepends the record, and persists.
func (s *Service) Create(ctx context.Context, f domainprompt.Fields) domainprompt.Prompt {
	p := domainprompt.New(f)

	s.mu.Lock()
	s.prompts = append([]domainprompt.Prompt{p}, s.prompts...)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.publish(ctx, event.New(event.TypePromptCreated, p.ID))
	return p
}

// Update merges the supplied fields into the matching record and persists.
// Unknown id is a silent no-op: ok is false and nothing is written.
// The record keeps its position — updates never reorder the collection.
func (s *Service) Update(ctx context.Context, id uuid.UUID, u domainprompt.Update) (domainprompt.Prompt, bool) {
	s.mu.Lock()
	var updated domainprompt.Prompt
	found := false
	for i := range s.prompts {
		if s.prompts[i].ID == id {
			s.prompts[i].Apply(u)
			updated = s.prompts[i]
			found = true
			break
		}
	}
	if found {
		s.persistLocked(ctx)
	}
	s.mu.Unlock()

	if !found {
		return domainprompt.Prompt{}, false
	}
	s.publish(ctx, event.New(event.TypePromptUpdated, id))
	return updated, true
}

// Delete removes the matching record if present. Absent id is a no-op.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) bool {
	s.mu.Lock()
	kept := s.prompts[:0]
	found := false
	for _, p := range s.prompts {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	s.prompts = kept
	if found {
		s.persistLocked(ctx)
	}
	s.mu.Unlock()

	if found {
		s.publish(ctx, event.New(event.TypePromptDeleted, id))
	}
	return found
}

// DeleteMany removes every record whose id is in ids as one atomic update
// with a single persist. Returns the number of records removed.
func (s *Service) DeleteMany(ctx context.Context, ids []uuid.UUID) int {
	target := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		target[id] = true
	}

	s.mu.Lock()
	kept := make([]domainprompt.Prompt, 0, len(s.prompts))
	for _, p := range s.prompts {
		if !target[p.ID] {
			kept = append(kept, p)
		}
	}
	removed := len(s.prompts) - len(kept)
	s.prompts = kept
	if removed > 0 {
		s.persistLocked(ctx)
	}
	s.mu.Unlock()

	if removed > 0 {
		s.publish(ctx, event.NewBulk(event.TypePromptsBulkDelete, removed))
	}
	return removed
}

// ImportPrepend merges imported records into the collection: additive, the
// imported list goes first, one persist for the whole batch. Imported
// records keep their ids and timestamps, except that an id colliding with
// an existing record (or another record in the same batch) is re-keyed so
// id uniqueness holds across the collection.
func (s *Service) ImportPrepend(ctx context.Context, imported []domainprompt.Prompt) int {
	if len(imported) == 0 {
		return 0
	}

	s.mu.Lock()
	existing := make(map[uuid.UUID]bool, len(s.prompts))
	for _, p := range s.prompts {
		existing[p.ID] = true
	}

	merged := make([]domainprompt.Prompt, 0, len(imported)+len(s.prompts))
	for _, p := range imported {
		if p.ID == uuid.Nil || existing[p.ID] {
			p.ID = uuid.New()
		}
		existing[p.ID] = true
		merged = append(merged, p)
	}
	merged = append(merged, s.prompts...)
	s.prompts = merged
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.publish(ctx, event.NewBulk(event.TypePromptsImported, len(imported)))
	return len(imported)
}

// persistLocked writes the entire collection to the slot. A failed write is
// logged and the in-memory state stays committed — durable storage runs
// stale until the next successful mutation. Callers hold s.mu.
func (s *Service) persistLocked(ctx context.Context) {
	data, err := json.Marshal(s.prompts)
	if err != nil {
		slog.ErrorContext(ctx, "library: marshal failed, slot not written", "slot", s.slot, "error", err)
		return
	}
	if err := s.store.Save(ctx, s.slot, data); err != nil {
		slog.ErrorContext(ctx, "library: save failed, durable state is stale", "slot", s.slot, "error", err)
	}
}

func (s *Service) publish(ctx context.Context, e event.Event) {
	if err := s.bus.Publish(ctx, e); err != nil {
		slog.ErrorContext(ctx, "library: publish failed", "type", e.Type, "error", err)
	}
}
