// Package web serves the server-rendered storyline pages over chi.
package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/storyline-labs/storylines/internal/archieml"
	"github.com/storyline-labs/storylines/internal/db"
	"github.com/storyline-labs/storylines/internal/domain"
	domstory "github.com/storyline-labs/storylines/internal/domain/storyline"
	healthuc "github.com/storyline-labs/storylines/internal/usecase/health"
	storylineuc "github.com/storyline-labs/storylines/internal/usecase/storyline"
)

// Server renders the HTML pages and handles the form submissions.
type Server struct {
	storylines *storylineuc.Service
	health     *healthuc.Service
	logger     *zap.Logger
	views      map[string]*template.Template
}

// NewServer creates the web server. It fails only when the embedded views do
// not parse.
func NewServer(storylines *storylineuc.Service, health *healthuc.Service, logger *zap.Logger) (*Server, error) {
	views, err := newViews()
	if err != nil {
		return nil, err
	}
	return &Server{
		storylines: storylines,
		health:     health,
		logger:     logger,
		views:      views,
	}, nil
}

// Routes returns the router for all pages and form endpoints. PUT and DELETE
// arrive as POSTs with a _method field, so the override middleware runs
// before routing resolves the verb.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(MethodOverride)

	r.Get("/", s.handleIndex)
	r.Post("/", s.handleCreate)
	r.Get("/new", s.handleNew)
	r.Get("/healthz", s.handleHealth)
	r.Get("/{id}", s.handleShow)
	r.Put("/{id}", s.handleUpdate)
	r.Delete("/{id}", s.handleDelete)

	return r
}

type hitView struct {
	ID        string
	Title     string
	Body      string
	Snippet   string
	CreatedAt string
}

type indexPage struct {
	Query    string
	Count    int
	Hits     []hitView
	HasNext  bool
	NextPage int
}

type newPage struct {
	Query string
	Count int
}

type showPage struct {
	Query     string
	Count     int
	Storyline hitView
	ShowJSON  bool
	JSON      string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	typeHint := r.URL.Query().Get("t")
	pageNum, _ := strconv.Atoi(r.URL.Query().Get("p"))

	set, pg, err := s.storylines.List(r.Context(), q, typeHint, pageNum)
	if err != nil {
		s.httpError(w, err)
		return
	}

	hits := make([]hitView, 0, set.Size())
	for _, h := range set.Hits() {
		sl := h.Storyline()
		view := hitView{
			ID:        sl.ID(),
			Title:     sl.Title(),
			Body:      sl.Body(),
			CreatedAt: sl.CreatedAt(),
		}
		if frag, ok := h.Highlights()[domstory.FieldBody]; ok {
			view.Snippet = frag
		}
		hits = append(hits, view)
	}

	s.render(w, "index.html", indexPage{
		Query:    q,
		Count:    set.Total(),
		Hits:     hits,
		HasNext:  pg.HasNext(set.Total()),
		NextPage: pg.Next(),
	})
}

func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	s.render(w, "new.html", newPage{Query: r.URL.Query().Get("q")})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}

	attrs := make(map[string]any, len(r.PostForm))
	for k, vs := range r.PostForm {
		if k == "_method" || len(vs) == 0 {
			continue
		}
		attrs[k] = vs[0]
	}

	if _, err := s.storylines.Create(r.Context(), attrs); err != nil {
		s.httpError(w, err)
		return
	}

	s.redirectBack(w, r)
}

func (s *Server) handleShow(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	sl, err := s.storylines.Get(r.Context(), id)
	if err != nil {
		s.httpError(w, err)
		return
	}

	data := showPage{
		Query: r.URL.Query().Get("q"),
		Storyline: hitView{
			ID:        sl.ID(),
			Title:     sl.Title(),
			Body:      sl.Body(),
			CreatedAt: sl.CreatedAt(),
		},
	}

	if r.URL.Query().Get("format") == "json" {
		doc, err := json.Marshal(archieml.Parse(sl.Body()))
		if err != nil {
			s.httpError(w, err)
			return
		}
		data.ShowJSON = true
		data.JSON = string(doc)
	}

	s.render(w, "show.html", data)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := s.storylines.Update(r.Context(), id, r.PostFormValue("title"), r.PostFormValue("archieml"))
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.redirectBack(w, r)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.storylines.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.httpError(w, err)
		return
	}

	s.redirectBack(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// render buffers the view so a template failure can still produce a clean
// 500 instead of a half-written page.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := s.views[name].Execute(&buf, data); err != nil {
		s.logger.Error("render view", zap.String("view", name), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// redirectBack returns to the referring page, falling back to the listing.
func (s *Server) redirectBack(w http.ResponseWriter, r *http.Request) {
	target := r.Referer()
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrStorylineNotFound):
		http.Error(w, "storyline not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrQuerySyntax):
		http.Error(w, "invalid search query", http.StatusBadRequest)
	default:
		var dbErr *db.Error
		if errors.As(err, &dbErr) {
			s.logger.Error("storage error", zap.Error(err))
			http.Error(w, "storage unavailable", http.StatusBadGateway)
			return
		}
		s.logger.Error("internal error", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
