package db

// SortOrder is the SORTBY direction.
type SortOrder string

const (
	// SortAsc sorts ascending.
	SortAsc SortOrder = "ASC"
	// SortDesc sorts descending.
	SortDesc SortOrder = "DESC"
)

// Sort names a sortable field and its direction.
type Sort struct {
	Field string
	Order SortOrder
}

// Highlight asks the engine to wrap matched terms in the tag pair on the
// given fields. Fields come back whole, not fragmented.
type Highlight struct {
	Fields  []string
	PreTag  string
	PostTag string
}

// SearchQuery is the input for a paginated FT.SEARCH.
type SearchQuery struct {
	IndexName    string
	Query        string
	Sort         *Sort
	Offset       int
	Limit        int
	ReturnFields []string
	Highlight    *Highlight
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}
