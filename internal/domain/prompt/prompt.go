package prompt

import (
	"time"

	"github.com/google/uuid"
)

// Prompt is a stored reusable text template. The collection is kept
// newest-first in storage order; display order is derived by the view
// pipeline and never written back.
type Prompt struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Fields carries the user-editable fields for create operations.
// Empty strings are accepted — what to require is a presentation concern.
type Fields struct {
	Title    string
	Content  string
	Category string
	Tags     []string
}

// Update carries a partial update. Nil means "leave unchanged".
type Update struct {
	Title    *string
	Content  *string
	Category *string
	Tags     []string
}

func New(f Fields) Prompt {
	now := time.Now().UTC()
	return Prompt{
		ID:        uuid.New(),
		Title:     f.Title,
		Content:   f.Content,
		Category:  f.Category,
		Tags:      normalizeTags(f.Tags),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Apply merges the supplied fields into p and refreshes UpdatedAt.
// CreatedAt is never touched.
func (p *Prompt) Apply(u Update) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Content != nil {
		p.Content = *u.Content
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.Tags != nil {
		p.Tags = normalizeTags(u.Tags)
	}
	p.UpdatedAt = time.Now().UTC()
}

// normalizeTags keeps order and duplicates but guarantees a non-nil slice
// so the JSON encoding is always an array.
func normalizeTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
