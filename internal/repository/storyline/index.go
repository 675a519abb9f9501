package storyline

import (
	"context"
	"errors"
	"fmt"

	"github.com/storyline-labs/storylines/internal/db"
	domstory "github.com/storyline-labs/storylines/internal/domain/storyline"
)

// EnsureIndex creates the storylines FT index if it does not exist yet.
// Title and body are analyzed text fields; created_at is a sortable tag
// (RFC3339 strings order lexicographically in chronological order).
func (r *Repo) EnsureIndex(ctx context.Context) error {
	def, err := db.NewIndex(indexName).
		OnJSON().
		Prefix(keyPrefix).
		TextAs("$."+domstory.FieldTitle, domstory.FieldTitle).
		TextAs("$."+domstory.FieldBody, domstory.FieldBody).
		TagAs("$."+domstory.FieldCreatedAt, domstory.FieldCreatedAt).Sortable().
		Build()
	if err != nil {
		return fmt.Errorf("build index definition: %w", err)
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index %s: %w", indexName, err)
	}
	return nil
}
