// Package view computes the filtered, sorted projection of the prompt
// collection that presentation clients render. Everything here is pure:
// inputs are never mutated and there is no caching — collections are small
// enough to recompute per request.
package view

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	domainprompt "github.com/alanyang/promptvault/internal/domain/prompt"
)

// Option selects the display ordering applied after filtering.
type Option string

const (
	SortNewest   Option = "newest"
	SortOldest   Option = "oldest"
	SortTitle    Option = "title"
	SortCategory Option = "category"
)

// ParseOption maps a raw sort value to an Option, defaulting to newest.
func ParseOption(s string) Option {
	switch Option(s) {
	case SortOldest, SortTitle, SortCategory:
		return Option(s)
	default:
		return SortNewest
	}
}

// Query holds the current UI state the pipeline derives from.
// An empty Search or Category imposes no constraint.
type Query struct {
	Search   string
	Category string
	Sort     Option
}

// collator provides locale-aware ordering for title and category sorts,
// matching what users see in a language-aware UI rather than byte order.
var collator = collate.New(language.Und, collate.Loose)

// Apply returns a fresh slice containing the prompts that pass q's filter,
// ordered by q.Sort. Equal keys keep their relative storage order.
func Apply(prompts []domainprompt.Prompt, q Query) []domainprompt.Prompt {
	out := make([]domainprompt.Prompt, 0, len(prompts))
	for _, p := range prompts {
		if matches(p, q) {
			out = append(out, p)
		}
	}

	switch q.Sort {
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	case SortTitle:
		sort.SliceStable(out, func(i, j int) bool {
			return collator.CompareString(out[i].Title, out[j].Title) < 0
		})
	case SortCategory:
		sort.SliceStable(out, func(i, j int) bool {
			return collator.CompareString(out[i].Category, out[j].Category) < 0
		})
	default: // newest
		sort.SliceStable(out, func(i, j int) bool {
			return out[j].CreatedAt.Before(out[i].CreatedAt)
		})
	}
	return out
}

// matches applies the search and category predicates. Search is a
// case-insensitive substring match against title, content, or any tag.
// Category is an exact, case-sensitive match.
func matches(p domainprompt.Prompt, q Query) bool {
	if q.Category != "" && p.Category != q.Category {
		return false
	}
	if q.Search == "" {
		return true
	}
	needle := strings.ToLower(q.Search)
	if strings.Contains(strings.ToLower(p.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Content), needle) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// Categories returns the distinct category values present in the collection,
// ascending by ordinal comparison.
func Categories(prompts []domainprompt.Prompt) []string {
	seen := make(map[string]bool)
	cats := []string{}
	for _, p := range prompts {
		if !seen[p.Category] {
			seen[p.Category] = true
			cats = append(cats, p.Category)
		}
	}
	sort.Strings(cats)
	return cats
}
