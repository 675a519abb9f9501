package storyline

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/storyline-labs/storylines/internal/domain"
	"github.com/storyline-labs/storylines/internal/domain/search/request"
	"github.com/storyline-labs/storylines/internal/domain/search/result"
	domstory "github.com/storyline-labs/storylines/internal/domain/storyline"
)

// fakeRepo is an in-memory Repository mirroring the real one's contract:
// documents are stored without their id and re-normalized on every read.
type fakeRepo struct {
	docs map[string]map[string]any
	seq  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{docs: make(map[string]map[string]any)}
}

func (f *fakeRepo) Save(_ context.Context, sl *domstory.Storyline, _ bool) (*domstory.Storyline, error) {
	id := sl.ID()
	if id == "" {
		f.seq++
		id = fmt.Sprintf("id-%d", f.seq)
	}
	doc := sl.Attrs()
	delete(doc, domstory.FieldID)
	f.docs[id] = doc
	return f.hydrate(id), nil
}

func (f *fakeRepo) Find(_ context.Context, id string) (*domstory.Storyline, error) {
	if _, ok := f.docs[id]; !ok {
		return nil, domain.ErrStorylineNotFound
	}
	return f.hydrate(id), nil
}

func (f *fakeRepo) Update(_ context.Context, id, title, body string) error {
	doc, ok := f.docs[id]
	if !ok {
		return domain.ErrStorylineNotFound
	}
	doc[domstory.FieldTitle] = title
	doc[domstory.FieldBody] = body
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string, _ bool) error {
	if _, ok := f.docs[id]; !ok {
		return domain.ErrStorylineNotFound
	}
	delete(f.docs, id)
	return nil
}

func (f *fakeRepo) Search(_ context.Context, req request.Request) (*result.Set, error) {
	var matched []*domstory.Storyline
	for id := range f.docs {
		sl := f.hydrate(id)
		if req.IsMatchAll() || matchesTitle(req.Query(), sl.Title()) {
			matched = append(matched, sl)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt() > matched[j].CreatedAt()
	})

	total := len(matched)
	pg := req.Page()
	from, size := pg.From(), pg.Size()
	if from > total {
		from = total
	}
	end := from + size
	if end > total {
		end = total
	}

	hits := make([]result.Hit, 0, end-from)
	for _, sl := range matched[from:end] {
		hits = append(hits, result.NewHit(sl, nil))
	}
	return result.NewSet(total, hits), nil
}

func (f *fakeRepo) hydrate(id string) *domstory.Storyline {
	doc := f.docs[id]
	merged := make(map[string]any, len(doc)+1)
	for k, v := range doc {
		merged[k] = v
	}
	merged[domstory.FieldID] = id
	return domstory.New(merged)
}

// matchesTitle approximates a title-field term query for the expressions the
// builder emits: "@title:(term)".
func matchesTitle(query, title string) bool {
	term := strings.TrimSuffix(strings.TrimPrefix(query, "@title:("), ")")
	return strings.Contains(strings.ToLower(title), strings.ToLower(term))
}
