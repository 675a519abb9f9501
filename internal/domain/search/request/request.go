package request

import (
	"fmt"

	"github.com/storyline-labs/storylines/internal/domain/search/page"
	"github.com/storyline-labs/storylines/internal/domain/storyline"
)

// MatchAll is the engine expression for an unfiltered listing.
const MatchAll = "*"

// BuildQuery translates the free-text q parameter into an engine query
// expression. Empty input lists everything. Anything else becomes a single
// clause against the title field with the input as written: engine query
// syntax passes straight through, and malformed syntax is the engine's to
// reject. The type hint is accepted alongside q but takes no part in the
// expression.
func BuildQuery(q, _ string) string {
	if q == "" {
		return MatchAll
	}
	return fmt.Sprintf("@%s:(%s)", storyline.FieldTitle, q)
}

// Request is a composed listing query: the query expression plus the page
// window. Sort order and highlighting are fixed per request and applied by
// the repository.
type Request struct {
	query string
	pg    page.Page
}

// New builds a Request from the raw q / type-hint parameters and a page.
func New(q, typeHint string, pg page.Page) Request {
	return Request{query: BuildQuery(q, typeHint), pg: pg}
}

// Query returns the engine query expression.
func (r Request) Query() string { return r.query }

// Page returns the requested page window.
func (r Request) Page() page.Page { return r.pg }

// IsMatchAll reports whether the request is the default unfiltered listing.
func (r Request) IsMatchAll() bool { return r.query == MatchAll }
