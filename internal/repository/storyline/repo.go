package storyline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/storyline-labs/storylines/internal/db"
	"github.com/storyline-labs/storylines/internal/domain"
	"github.com/storyline-labs/storylines/internal/domain/search/request"
	"github.com/storyline-labs/storylines/internal/domain/search/result"
	domstory "github.com/storyline-labs/storylines/internal/domain/storyline"
)

const (
	keyPrefix = "storylines:"
	indexName = "storylines:idx"
)

// Highlight tag pair wrapped around matched terms in returned fields.
const (
	HighlightPreTag  = `<em class="hl">`
	HighlightPostTag = `</em>`
)

// store is the consumer interface for storylines (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
}

// Repo implements usecase/storyline.Repository over a search-indexed JSON store.
type Repo struct {
	store store
}

// New creates a storyline repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Save persists a storyline, assigning an id when it has none yet, and
// returns the stored record re-normalized with its id. The refresh flag asks
// for the document to be searchable before Save returns; the engine indexes
// a JSON write synchronously, so it is satisfied by command completion.
func (r *Repo) Save(ctx context.Context, sl *domstory.Storyline, _ bool) (*domstory.Storyline, error) {
	id := sl.ID()
	if id == "" {
		id = uuid.NewString()
	}

	doc := buildJSONDoc(sl)
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal storyline: %w", err)
	}

	key := docKey(id)
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return nil, fmt.Errorf("json.set %s: %w", key, err)
	}

	return deserialize(id, doc), nil
}

// Find returns a storyline by id.
func (r *Repo) Find(ctx context.Context, id string) (*domstory.Storyline, error) {
	key := docKey(id)
	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, domain.ErrStorylineNotFound
		}
		return nil, fmt.Errorf("json.get %s: %w", key, err)
	}

	doc, err := parseJSONGetResult(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", key, err)
	}
	return deserialize(id, doc), nil
}

// Update replaces the title and body of an existing storyline. The id and
// created_at fields are left as stored.
func (r *Repo) Update(ctx context.Context, id, title, body string) error {
	key := docKey(id)
	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.ErrStorylineNotFound
		}
		return fmt.Errorf("json.get %s: %w", key, err)
	}

	doc, err := parseJSONGetResult(raw)
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}

	doc[domstory.FieldTitle] = title
	doc[domstory.FieldBody] = body

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal storyline: %w", err)
	}
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return fmt.Errorf("json.set %s: %w", key, err)
	}
	return nil
}

// Delete removes a storyline. A missing id is an error, mirroring Find.
// Refresh carries the same synchronous-indexing guarantee as Save.
func (r *Repo) Delete(ctx context.Context, id string, _ bool) error {
	key := docKey(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrStorylineNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// Search issues the composed query with the always-applied listing options:
// newest-first sort, the request's page window and full-field highlighting
// on the body.
func (r *Repo) Search(ctx context.Context, req request.Request) (*result.Set, error) {
	pg := req.Page()

	res, err := r.store.Search(ctx, &db.SearchQuery{
		IndexName: indexName,
		Query:     req.Query(),
		Sort:      &db.Sort{Field: domstory.FieldCreatedAt, Order: db.SortDesc},
		Offset:    pg.From(),
		Limit:     pg.Size(),
		ReturnFields: []string{
			"$", domstory.FieldBody,
		},
		Highlight: &db.Highlight{
			Fields:  []string{domstory.FieldBody},
			PreTag:  HighlightPreTag,
			PostTag: HighlightPostTag,
		},
	})
	if err != nil {
		if errors.Is(err, db.ErrBadQuery) {
			return nil, domain.ErrQuerySyntax
		}
		return nil, fmt.Errorf("search storylines: %w", err)
	}

	hits := make([]result.Hit, 0, len(res.Entries))
	for _, entry := range res.Entries {
		hits = append(hits, entryToHit(entry))
	}
	return result.NewSet(res.Total, hits), nil
}

// Count returns the number of stored storylines.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.SearchCount(ctx, indexName, request.MatchAll)
	if err != nil {
		return 0, fmt.Errorf("count storylines: %w", err)
	}
	return n, nil
}

func entryToHit(entry db.SearchEntry) result.Hit {
	id := extractID(entry.Key)

	doc := map[string]any{}
	if raw := entry.Fields["$"]; raw != "" {
		_ = json.Unmarshal([]byte(raw), &doc)
	}

	// Returned non-JSON fields carry the tag pair only when the engine
	// marked a match in them.
	highlights := make(map[string]string)
	for name, v := range entry.Fields {
		if name == "$" {
			continue
		}
		if strings.Contains(v, HighlightPreTag) {
			highlights[name] = v
		}
	}

	return result.NewHit(deserialize(id, doc), highlights)
}

func docKey(id string) string {
	return keyPrefix + id
}

func extractID(key string) string {
	return strings.TrimPrefix(key, keyPrefix)
}
