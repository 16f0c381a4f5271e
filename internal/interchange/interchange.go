// Package interchange moves the collection across the file boundary:
// export to a pretty-printed JSON download and validated import back.
// Durable-slot persistence uses the same wire shape (RFC3339 timestamps),
// so an exported file and a stored slot are interchangeable.
package interchange

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	domainprompt "github.com/alanyang/promptvault/internal/domain/prompt"
)

// ErrNotArray is the format failure for a top-level value that is not a
// JSON array. The caller leaves the collection untouched.
var ErrNotArray = errors.New("interchange: top-level value is not an array")

// RecordError reports one invalid record skipped during import.
type RecordError struct {
	Index int    `json:"index"`
	Err   string `json:"error"`
}

// Filename returns the dated export name, e.g. prompts-2024-06-01.json.
func Filename(now time.Time) string {
	return "prompts-" + now.Format("2006-01-02") + ".json"
}

// Export writes the entire collection — unfiltered, in storage order — as
// two-space-indented JSON.
func Export(w io.Writer, prompts []domainprompt.Prompt) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(prompts); err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	return nil
}

// record is the raw import shape. Pointers distinguish "absent" from
// "empty" so presence can be validated per field.
type record struct {
	ID        *string  `json:"id"`
	Title     *string  `json:"title"`
	Content   *string  `json:"content"`
	Category  *string  `json:"category"`
	Tags      []string `json:"tags"`
	CreatedAt *string  `json:"createdAt"`
	UpdatedAt *string  `json:"updatedAt"`
}

// Import parses r as a full JSON document. A non-array top level fails the
// whole import with ErrNotArray. Individual records are validated one by
// one: invalid ones are reported and skipped, valid ones are returned.
// This is the one place external data enters the model, so it is strict
// where the rest of the system trusts its own state.
func Import(r io.Reader) ([]domainprompt.Prompt, []RecordError, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("reading import: %w", err)
	}

	var top json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, nil, fmt.Errorf("parsing import: %w", err)
	}

	// A null document unmarshals into a nil slice without error, so it has
	// to be rejected before the array check.
	if bytes.Equal(bytes.TrimSpace(top), []byte("null")) {
		return nil, nil, ErrNotArray
	}

	var raws []record
	if err := json.Unmarshal(top, &raws); err != nil {
		return nil, nil, ErrNotArray
	}

	prompts := make([]domainprompt.Prompt, 0, len(raws))
	var bad []RecordError
	for i, raw := range raws {
		p, err := decode(raw)
		if err != nil {
			bad = append(bad, RecordError{Index: i, Err: err.Error()})
			continue
		}
		prompts = append(prompts, p)
	}
	return prompts, bad, nil
}

func decode(r record) (domainprompt.Prompt, error) {
	if r.ID == nil {
		return domainprompt.Prompt{}, errors.New("missing id")
	}
	if r.Title == nil {
		return domainprompt.Prompt{}, errors.New("missing title")
	}
	if r.Content == nil {
		return domainprompt.Prompt{}, errors.New("missing content")
	}
	if r.Category == nil {
		return domainprompt.Prompt{}, errors.New("missing category")
	}

	id, err := uuid.Parse(*r.ID)
	if err != nil {
		return domainprompt.Prompt{}, fmt.Errorf("invalid id: %w", err)
	}

	createdAt, err := parseTime(r.CreatedAt, "createdAt")
	if err != nil {
		return domainprompt.Prompt{}, err
	}
	updatedAt, err := parseTime(r.UpdatedAt, "updatedAt")
	if err != nil {
		return domainprompt.Prompt{}, err
	}
	// A file claiming an update before creation is clamped rather than rejected.
	if updatedAt.Before(createdAt) {
		updatedAt = createdAt
	}

	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}

	return domainprompt.Prompt{
		ID:        id,
		Title:     *r.Title,
		Content:   *r.Content,
		Category:  *r.Category,
		Tags:      tags,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

func parseTime(s *string, field string) (time.Time, error) {
	if s == nil {
		return time.Time{}, fmt.Errorf("missing %s", field)
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %w", field, err)
	}
	return t, nil
}
