package storyline

import "time"

// Field names as stored in the index.
const (
	FieldID        = "id"
	FieldTitle     = "title"
	FieldBody      = "archieml"
	FieldCreatedAt = "created_at"
)

const (
	displayTextLimit = 80
	truncationMarker = " (...)"
)

// Storyline is an open-ended record: the known fields get typed accessors,
// anything else is kept verbatim and reachable through Attr.
type Storyline struct {
	attrs       map[string]any
	displayText string
}

// New normalizes raw attributes into a Storyline ready for persistence.
// Missing fields stay absent rather than faulting; created_at is stamped
// exactly once (re-normalizing keeps the existing value); the display text
// preview is recomputed from the body on every pass and is never written
// back into the attributes.
func New(attrs map[string]any) *Storyline {
	m := make(map[string]any, len(attrs)+1)
	for k, v := range attrs {
		m[k] = v
	}

	s := &Storyline{attrs: m}
	if s.CreatedAt() == "" {
		m[FieldCreatedAt] = time.Now().UTC().Format(time.RFC3339)
	}
	s.displayText = truncate(s.Body())
	return s
}

// ID returns the document identifier, empty until persisted.
func (s *Storyline) ID() string { return s.str(FieldID) }

// Title returns the storyline title.
func (s *Storyline) Title() string { return s.str(FieldTitle) }

// Body returns the raw ArchieML markup source.
func (s *Storyline) Body() string { return s.str(FieldBody) }

// CreatedAt returns the creation timestamp in RFC3339 UTC.
func (s *Storyline) CreatedAt() string { return s.str(FieldCreatedAt) }

// CreatedTime parses CreatedAt; zero time when absent or malformed.
func (s *Storyline) CreatedTime() time.Time {
	t, err := time.Parse(time.RFC3339, s.CreatedAt())
	if err != nil {
		return time.Time{}
	}
	return t
}

// DisplayText returns the truncated body preview.
func (s *Storyline) DisplayText() string { return s.displayText }

// Attr looks up any attribute by name, including ones without a typed accessor.
func (s *Storyline) Attr(name string) (any, bool) {
	v, ok := s.attrs[name]
	return v, ok
}

// Attrs returns a copy of the attributes for persistence.
func (s *Storyline) Attrs() map[string]any {
	m := make(map[string]any, len(s.attrs))
	for k, v := range s.attrs {
		m[k] = v
	}
	return m
}

func (s *Storyline) str(key string) string {
	if v, ok := s.attrs[key]; ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return ""
}

// truncate caps body at displayTextLimit runes, appending the marker.
func truncate(body string) string {
	r := []rune(body)
	if len(r) <= displayTextLimit {
		return body
	}
	return string(r[:displayTextLimit]) + truncationMarker
}
