package storyline

import (
	"context"

	"github.com/storyline-labs/storylines/internal/domain/search/request"
	"github.com/storyline-labs/storylines/internal/domain/search/result"
	domstory "github.com/storyline-labs/storylines/internal/domain/storyline"
)

// Repository defines the storage contract for storylines.
type Repository interface {
	Search(ctx context.Context, req request.Request) (*result.Set, error)
	Save(ctx context.Context, sl *domstory.Storyline, refresh bool) (*domstory.Storyline, error)
	Find(ctx context.Context, id string) (*domstory.Storyline, error)
	Update(ctx context.Context, id, title, body string) error
	Delete(ctx context.Context, id string, refresh bool) error
}
