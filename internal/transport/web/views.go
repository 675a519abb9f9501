package web

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	storylinerepo "github.com/storyline-labs/storylines/internal/repository/storyline"
)

//go:embed views/*.html
var viewsFS embed.FS

const dateDisplayFormat = "02/01/2006 15:04"

var viewFuncs = template.FuncMap{
	"formatDate": formatDate,
	"highlight":  highlightHTML,
}

// newViews parses one template set per page, each sharing the layout.
func newViews() (map[string]*template.Template, error) {
	views := make(map[string]*template.Template)
	for _, name := range []string{"index.html", "new.html", "show.html"} {
		t, err := template.New("layout.html").Funcs(viewFuncs).
			ParseFS(viewsFS, "views/layout.html", "views/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse view %s: %w", name, err)
		}
		views[name] = t
	}
	return views, nil
}

// formatDate renders an RFC 3339 timestamp for display. Values that do not
// parse are shown as stored.
func formatDate(value string) string {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}
	return t.Format(dateDisplayFormat)
}

// highlightHTML escapes a search highlight fragment and then restores the
// tag pair the engine injected, so user content stays inert while the
// highlight markup renders.
func highlightHTML(fragment string) template.HTML {
	escaped := template.HTMLEscapeString(fragment)
	escaped = strings.ReplaceAll(escaped,
		template.HTMLEscapeString(storylinerepo.HighlightPreTag), storylinerepo.HighlightPreTag)
	escaped = strings.ReplaceAll(escaped,
		template.HTMLEscapeString(storylinerepo.HighlightPostTag), storylinerepo.HighlightPostTag)
	return template.HTML(escaped) //nolint:gosec // escaped above, only our tags restored
}
