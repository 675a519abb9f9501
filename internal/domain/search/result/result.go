package result

import "github.com/storyline-labs/storylines/internal/domain/storyline"

// Hit is a single search hit: the hydrated record plus any highlight
// fragments keyed by field name.
type Hit struct {
	record     *storyline.Storyline
	highlights map[string]string
}

// NewHit creates a search hit.
func NewHit(record *storyline.Storyline, highlights map[string]string) Hit {
	return Hit{record: record, highlights: highlights}
}

// Storyline returns the hydrated record.
func (h *Hit) Storyline() *storyline.Storyline { return h.record }

// Highlights returns the highlight fragments by field name.
func (h *Hit) Highlights() map[string]string { return h.highlights }

// Highlight returns the highlighted value for a field, falling back to the
// stored value when the engine produced no fragment for it.
func (h *Hit) Highlight(field string) string {
	if v, ok := h.highlights[field]; ok {
		return v
	}
	if v, ok := h.record.Attr(field); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Set is one page of hits together with the collection-wide total.
type Set struct {
	total int
	hits  []Hit
}

// NewSet creates a result set.
func NewSet(total int, hits []Hit) *Set {
	return &Set{total: total, hits: hits}
}

// Total returns the collection-wide hit count.
func (s *Set) Total() int { return s.total }

// Hits returns the hits on this page.
func (s *Set) Hits() []Hit { return s.hits }

// Size returns the number of hits on this page, independent of Total.
func (s *Set) Size() int { return len(s.hits) }

// Empty reports whether this page has no hits.
func (s *Set) Empty() bool { return len(s.hits) == 0 }
