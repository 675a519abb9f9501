package storyline

import (
	"context"
	"fmt"

	"github.com/storyline-labs/storylines/internal/domain/search/page"
	"github.com/storyline-labs/storylines/internal/domain/search/request"
	"github.com/storyline-labs/storylines/internal/domain/search/result"
	domstory "github.com/storyline-labs/storylines/internal/domain/storyline"
)

// DefaultPageSize is the listing page size when none is configured.
const DefaultPageSize = 25

// Service orchestrates normalization, query building and pagination around
// the repository.
type Service struct {
	repo     Repository
	pageSize int
}

// New creates a storyline service.
func New(repo Repository) *Service {
	return &Service{repo: repo, pageSize: DefaultPageSize}
}

// WithPageSize overrides the listing page size.
func (s *Service) WithPageSize(n int) *Service {
	if n > 0 {
		s.pageSize = n
	}
	return s
}

// List searches storylines newest-first. q and typeHint may be empty; pageNum
// below 1 means the first page. The returned page carries the window that was
// searched, for next-page arithmetic against the set's total.
func (s *Service) List(ctx context.Context, q, typeHint string, pageNum int) (*result.Set, page.Page, error) {
	pg := page.New(pageNum, s.pageSize)
	set, err := s.repo.Search(ctx, request.New(q, typeHint, pg))
	if err != nil {
		return nil, pg, fmt.Errorf("list storylines: %w", err)
	}
	return set, pg, nil
}

// Create normalizes the raw attributes and persists a new storyline with
// immediate search visibility. An empty body is a deliberate no-op, not an
// error: the returned record is nil and nothing is stored.
func (s *Service) Create(ctx context.Context, attrs map[string]any) (*domstory.Storyline, error) {
	sl := domstory.New(attrs)
	if sl.Body() == "" {
		return nil, nil
	}

	saved, err := s.repo.Save(ctx, sl, true)
	if err != nil {
		return nil, fmt.Errorf("create storyline: %w", err)
	}
	return saved, nil
}

// Get returns a storyline by id.
func (s *Service) Get(ctx context.Context, id string) (*domstory.Storyline, error) {
	sl, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get storyline %s: %w", id, err)
	}
	return sl, nil
}

// Update replaces the title and body of an existing storyline.
func (s *Service) Update(ctx context.Context, id, title, body string) error {
	if err := s.repo.Update(ctx, id, title, body); err != nil {
		return fmt.Errorf("update storyline %s: %w", id, err)
	}
	return nil
}

// Delete removes a storyline with immediate search visibility.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id, true); err != nil {
		return fmt.Errorf("delete storyline %s: %w", id, err)
	}
	return nil
}
