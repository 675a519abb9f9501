package storyline

import (
	"encoding/json"
	"fmt"

	domstory "github.com/storyline-labs/storylines/internal/domain/storyline"
)

// buildJSONDoc flattens a storyline's attributes for JSON.SET. The id lives
// in the key, not the document, and derived display fields are never stored.
func buildJSONDoc(sl *domstory.Storyline) map[string]any {
	doc := sl.Attrs()
	delete(doc, domstory.FieldID)
	return doc
}

// deserialize re-normalizes a raw stored document merged with its
// key-derived id, so derived fields are populated no matter how old the
// stored document is.
func deserialize(id string, doc map[string]any) *domstory.Storyline {
	merged := make(map[string]any, len(doc)+1)
	for k, v := range doc {
		merged[k] = v
	}
	merged[domstory.FieldID] = id
	return domstory.New(merged)
}

// parseJSONGetResult unwraps a JSON.GET $ reply. JSONPath replies come back
// as a one-element array around the document object.
func parseJSONGetResult(raw []byte) (map[string]any, error) {
	var docs []map[string]any
	if err := json.Unmarshal(raw, &docs); err != nil {
		// Some engine versions return the bare object for a lone path.
		var doc map[string]any
		if err2 := json.Unmarshal(raw, &doc); err2 == nil {
			return doc, nil
		}
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("empty document reply")
	}
	return docs[0], nil
}
