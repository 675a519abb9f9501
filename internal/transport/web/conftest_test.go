package web

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/storyline-labs/storylines/internal/domain/search/request"
	"github.com/storyline-labs/storylines/internal/domain/search/result"
	domstory "github.com/storyline-labs/storylines/internal/domain/storyline"
	healthuc "github.com/storyline-labs/storylines/internal/usecase/health"
	storylineuc "github.com/storyline-labs/storylines/internal/usecase/storyline"
)

type fakeRepo struct {
	searchFn func(ctx context.Context, req request.Request) (*result.Set, error)
	saveFn   func(ctx context.Context, sl *domstory.Storyline, refresh bool) (*domstory.Storyline, error)
	findFn   func(ctx context.Context, id string) (*domstory.Storyline, error)
	updateFn func(ctx context.Context, id, title, body string) error
	deleteFn func(ctx context.Context, id string, refresh bool) error
}

func (f *fakeRepo) Search(ctx context.Context, req request.Request) (*result.Set, error) {
	if f.searchFn == nil {
		return result.NewSet(0, nil), nil
	}
	return f.searchFn(ctx, req)
}

func (f *fakeRepo) Save(ctx context.Context, sl *domstory.Storyline, refresh bool) (*domstory.Storyline, error) {
	if f.saveFn == nil {
		return sl, nil
	}
	return f.saveFn(ctx, sl, refresh)
}

func (f *fakeRepo) Find(ctx context.Context, id string) (*domstory.Storyline, error) {
	return f.findFn(ctx, id)
}

func (f *fakeRepo) Update(ctx context.Context, id, title, body string) error {
	if f.updateFn == nil {
		return nil
	}
	return f.updateFn(ctx, id, title, body)
}

func (f *fakeRepo) Delete(ctx context.Context, id string, refresh bool) error {
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(ctx, id, refresh)
}

type fakePinger struct{ err error }

func (f *fakePinger) Ping(context.Context) error { return f.err }

func newTestServer(t *testing.T, repo *fakeRepo) *Server {
	t.Helper()
	srv, err := NewServer(
		storylineuc.New(repo),
		healthuc.New(&fakePinger{}),
		zap.NewNop(),
	)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return srv
}
