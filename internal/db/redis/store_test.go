package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/storyline-labs/storylines/internal/db"
)

// --- client.go tests ---

func TestPing_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.Result(mock.RedisString("PONG")))

	s := NewStoreForTest(c)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPing_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	if err := s.Ping(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestContainsIgnoreCase(t *testing.T) {
	tests := []struct {
		s, sub string
		want   bool
	}{
		{"Index Already Exists", "index already exists", true},
		{"UNKNOWN INDEX NAME", "unknown index name", true},
		{"hello world", "world", true},
		{"short", "longer than input", false},
		{"exact", "exact", true},
		{"", "", true},
		{"notempty", "", true},
	}
	for _, tc := range tests {
		got := containsIgnoreCase(tc.s, tc.sub)
		if got != tc.want {
			t.Errorf("containsIgnoreCase(%q, %q) = %v, want %v", tc.s, tc.sub, got, tc.want)
		}
	}
}

// --- json.go tests ---

func TestJSONSet(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("JSON.SET", "storylines:1", "$", `{"title":"a"}`)).
		Return(mock.Result(mock.RedisString("OK")))

	s := NewStoreForTest(c)
	if err := s.JSONSet(context.Background(), "storylines:1", "$", []byte(`{"title":"a"}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestJSONGet_Missing(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("JSON.GET", "storylines:1", "$")).
		Return(mock.Result(mock.RedisNil()))

	s := NewStoreForTest(c)
	_, err := s.JSONGet(context.Background(), "storylines:1", "$")
	if !errors.Is(err, db.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestExists(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("EXISTS", "storylines:1")).
		Return(mock.Result(mock.RedisInt64(1)))

	s := NewStoreForTest(c)
	ok, err := s.Exists(context.Background(), "storylines:1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected key to exist")
	}
}

// --- index.go tests ---

func TestCreateIndex_AlreadyExists(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "FT.CREATE"
		})).
		Return(mock.Result(mock.RedisError("Index already exists")))

	s := NewStoreForTest(c)
	def := db.NewIndex("storylines:idx").OnJSON().Prefix("storylines:").
		TextAs("$.title", "title").MustBuild()
	err := s.CreateIndex(context.Background(), def)
	if !errors.Is(err, db.ErrIndexExists) {
		t.Fatalf("expected ErrIndexExists, got %v", err)
	}
}

func TestIndexExists_Absent(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT.INFO", "storylines:idx")).
		Return(mock.Result(mock.RedisError("Unknown Index name")))

	s := NewStoreForTest(c)
	ok, err := s.IndexExists(context.Background(), "storylines:idx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected index to be absent")
	}
}

// --- search.go tests ---

func searchCmdContains(cmd []string, want ...string) bool {
	for _, w := range want {
		found := false
		for _, c := range cmd {
			if c == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func TestSearch_BuildsFullCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "FT.SEARCH" &&
				cmd[1] == "storylines:idx" &&
				cmd[2] == "@title:(foo)" &&
				searchCmdContains(cmd,
					"HIGHLIGHT", "FIELDS", "archieml", "TAGS",
					"SORTBY", "created_at", "DESC",
					"LIMIT", "25",
				)
		})).
		Return(mock.Result(mock.RedisArray(
			mock.RedisInt64(1),
			mock.RedisString("storylines:abc"),
			mock.RedisArray(
				mock.RedisString("$"),
				mock.RedisString(`{"title":"foo","archieml":"body"}`),
				mock.RedisString("archieml"),
				mock.RedisString(`<em class="hl">body</em>`),
			),
		)))

	s := NewStoreForTest(c)
	res, err := s.Search(context.Background(), &db.SearchQuery{
		IndexName: "storylines:idx",
		Query:     "@title:(foo)",
		Sort:      &db.Sort{Field: "created_at", Order: db.SortDesc},
		Offset:    0,
		Limit:     25,
		ReturnFields: []string{
			"$", "archieml",
		},
		Highlight: &db.Highlight{
			Fields:  []string{"archieml"},
			PreTag:  `<em class="hl">`,
			PostTag: "</em>",
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 1 || len(res.Entries) != 1 {
		t.Fatalf("total=%d entries=%d", res.Total, len(res.Entries))
	}
	e := res.Entries[0]
	if e.Key != "storylines:abc" {
		t.Errorf("key = %q", e.Key)
	}
	if e.Fields["archieml"] != `<em class="hl">body</em>` {
		t.Errorf("highlighted field = %q", e.Fields["archieml"])
	}
}

func TestSearch_EmptyTotal(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "FT.SEARCH" && cmd[2] == "*"
		})).
		Return(mock.Result(mock.RedisArray(mock.RedisInt64(0))))

	s := NewStoreForTest(c)
	res, err := s.Search(context.Background(), &db.SearchQuery{
		IndexName: "storylines:idx",
		Query:     "*",
		Limit:     25,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 0 || len(res.Entries) != 0 {
		t.Errorf("expected empty result, got total=%d entries=%d", res.Total, len(res.Entries))
	}
}

func TestSearch_SyntaxError(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "FT.SEARCH"
		})).
		Return(mock.Result(mock.RedisError("Syntax error at offset 8 near foo")))

	s := NewStoreForTest(c)
	_, err := s.Search(context.Background(), &db.SearchQuery{
		IndexName: "storylines:idx",
		Query:     `@title:(")`,
		Limit:     25,
	})
	if !errors.Is(err, db.ErrBadQuery) {
		t.Fatalf("expected ErrBadQuery, got %v", err)
	}
}

func TestSearch_Validation(t *testing.T) {
	s := &Store{}
	if _, err := s.Search(context.Background(), &db.SearchQuery{}); err == nil {
		t.Fatal("expected error for missing index name")
	}
}

func TestSearchCount(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT.SEARCH", "storylines:idx", "*", "LIMIT", "0", "0")).
		Return(mock.Result(mock.RedisArray(mock.RedisInt64(42))))

	s := NewStoreForTest(c)
	n, err := s.SearchCount(context.Background(), "storylines:idx", "*")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 42 {
		t.Errorf("count = %d, want 42", n)
	}
}
