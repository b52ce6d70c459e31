package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/searchexpr"
	"github.com/aretw0/searchexpr/pkg/domain"
	"github.com/aretw0/searchexpr/pkg/ports"
	"github.com/go-chi/chi/v5"
)

// Resolver is the subset of searchexpr.Handler the HTTP API needs.
type Resolver interface {
	ResolveClientIDs(ctx *domain.SearchContext, expressions string) ([]string, error)
	ResolveComponents(ctx *domain.SearchContext, expressions string, callback domain.Callback) error
	IsValidExpression(ctx *domain.SearchContext, expression string) bool
	IsPassthroughExpression(ctx *domain.SearchContext, expression string) bool
	SplitExpressions(expressions string) []string
	Keywords() []ports.KeywordInfo
	LoadView(id string) (*domain.View, error)
	Watch(ctx context.Context) (<-chan string, error)
}

var _ Resolver = (*searchexpr.Handler)(nil)

// errBadRequest marks client mistakes that are not expression errors.
var errBadRequest = errors.New("bad request")

// Server serves the JSON API.
type Server struct {
	Resolver Resolver
	Store    ports.ViewStore
	Metrics  http.Handler
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithStore enables the /views endpoints and view_id lookups in the store.
func WithStore(store ports.ViewStore) Option {
	return func(s *Server) {
		s.Store = store
	}
}

// WithMetricsHandler mounts h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewHandler creates the HTTP handler for the resolver.
func NewHandler(resolver Resolver, opts ...Option) http.Handler {
	s := &Server{
		Resolver: resolver,
		logger:   slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(MethodRestrictions)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/keywords", s.GetKeywords)
	r.Get("/events", s.SubscribeEvents)
	r.Post("/resolve", s.Resolve)
	r.Post("/validate", s.Validate)
	r.Post("/split", s.Split)

	if s.Store != nil {
		r.Route("/views", func(r chi.Router) {
			r.Get("/", s.ListViews)
			r.Get("/{id}", s.GetView)
			r.Put("/{id}", s.PutView)
			r.Delete("/{id}", s.DeleteView)
		})
	}
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}
	return r
}

// MethodRestrictions completes OPTIONS requests right away, before any
// view is touched, and sets the CORS headers for every response.
func MethodRestrictions(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Resolve handles the POST /resolve request.
func (s *Server) Resolve(w http.ResponseWriter, r *http.Request) {
	var body ResolveRequest
	if !s.decode(w, r, &body) {
		return
	}

	ctx, err := s.searchContext(r.Context(), body.ViewRef, body.Source, body.Hints)
	if err != nil {
		s.fail(w, "Resolve", err)
		return
	}

	var resp ResolveResponse
	switch body.Mode {
	case "", ModeIDs:
		resp.ClientIDs, err = s.Resolver.ResolveClientIDs(ctx, body.Expression)
	case ModeComponents:
		err = s.Resolver.ResolveComponents(ctx, body.Expression, func(c *domain.SearchContext, target *domain.Component) {
			resp.Components = append(resp.Components, ComponentRef{
				ClientID: target.ClientID(c.Separator()),
				ID:       target.ID,
				Family:   target.Family,
			})
		})
	default:
		err = fmt.Errorf("%w: unknown mode %q", errBadRequest, body.Mode)
	}

	status := http.StatusOK
	if err != nil {
		status = statusFor(err)
		resp.Error = err.Error()
		s.logger.Debug("Resolve failed", "expression", body.Expression, "err", err)
	}
	s.write(w, status, resp)
}

// Validate handles the POST /validate request.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	var body ValidateRequest
	if !s.decode(w, r, &body) {
		return
	}

	ctx, err := s.searchContext(r.Context(), body.ViewRef, body.Source, nil)
	if err != nil {
		s.fail(w, "Validate", err)
		return
	}

	s.write(w, http.StatusOK, ValidateResponse{
		Valid:       s.Resolver.IsValidExpression(ctx, body.Expression),
		Passthrough: s.Resolver.IsPassthroughExpression(ctx, body.Expression),
	})
}

// Split handles the POST /split request.
func (s *Server) Split(w http.ResponseWriter, r *http.Request) {
	var body SplitRequest
	if !s.decode(w, r, &body) {
		return
	}
	expressions := s.Resolver.SplitExpressions(body.Expressions)
	if expressions == nil {
		expressions = []string{}
	}
	s.write(w, http.StatusOK, SplitResponse{Expressions: expressions})
}

// GetKeywords handles the GET /keywords request.
func (s *Server) GetKeywords(w http.ResponseWriter, r *http.Request) {
	s.write(w, http.StatusOK, s.Resolver.Keywords())
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.write(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.write(w, http.StatusOK, map[string]string{
		"app":     "searchexpr-http",
		"version": strings.TrimSpace(searchexpr.Version),
	})
}

// ListViews handles the GET /views request.
func (s *Server) ListViews(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Store.List(r.Context())
	if err != nil {
		s.fail(w, "ListViews", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.write(w, http.StatusOK, ids)
}

// GetView handles the GET /views/{id} request.
func (s *Server) GetView(w http.ResponseWriter, r *http.Request) {
	view, err := s.Store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "GetView", err)
		return
	}
	s.write(w, http.StatusOK, view)
}

// PutView handles the PUT /views/{id} request. The path ID wins over the body.
func (s *Server) PutView(w http.ResponseWriter, r *http.Request) {
	var view domain.View
	if !s.decode(w, r, &view) {
		return
	}
	if view.Root == nil {
		s.fail(w, "PutView", fmt.Errorf("%w: view has no root component", errBadRequest))
		return
	}
	view.ID = chi.URLParam(r, "id")
	view.Link()

	if err := s.Store.Save(r.Context(), &view); err != nil {
		s.fail(w, "PutView", err)
		return
	}
	s.logger.Info("View stored", "view", view.ID)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteView handles the DELETE /views/{id} request.
func (s *Server) DeleteView(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, "DeleteView", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SubscribeEvents handles the GET /events request (SSE), forwarding view
// change notifications from the loader.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	events, err := s.Resolver.Watch(r.Context())
	if err != nil {
		s.write(w, http.StatusNotImplemented, ErrorResponse{Error: err.Error()})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case viewID, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", viewID)
			flusher.Flush()
		}
	}
}

// -- Helpers --

// searchContext loads the referenced view and anchors a context at source.
func (s *Server) searchContext(ctx context.Context, ref ViewRef, source string, hints []string) (*domain.SearchContext, error) {
	view, err := s.view(ctx, ref)
	if err != nil {
		return nil, err
	}

	var anchor *domain.Component
	if source != "" {
		if anchor = view.FindByClientID(source); anchor == nil {
			return nil, &domain.NotFoundError{Expression: source}
		}
	}

	parsed := make([]domain.Hint, 0, len(hints))
	for _, name := range hints {
		hint, ok := domain.ParseHint(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown hint %q", errBadRequest, name)
		}
		parsed = append(parsed, hint)
	}
	return domain.NewSearchContext(view, anchor, parsed...), nil
}

// view returns the inline view, else looks ViewID up in the store and then the loader.
func (s *Server) view(ctx context.Context, ref ViewRef) (*domain.View, error) {
	if ref.View != nil {
		if ref.View.Root == nil {
			return nil, fmt.Errorf("%w: view has no root component", errBadRequest)
		}
		ref.View.Link()
		return ref.View, nil
	}
	if ref.ViewID == "" {
		return nil, fmt.Errorf("%w: either view or view_id is required", errBadRequest)
	}

	if s.Store != nil {
		view, err := s.Store.Load(ctx, ref.ViewID)
		if err == nil {
			return view, nil
		}
		if !errors.Is(err, domain.ErrViewNotFound) {
			return nil, err
		}
	}

	view, err := s.Resolver.LoadView(ref.ViewID)
	if errors.Is(err, searchexpr.ErrNoLoader) {
		return nil, fmt.Errorf("%w: %s", domain.ErrViewNotFound, ref.ViewID)
	}
	return view, err
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, domain.ErrInvalidExpression):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrComponentNotFound), errors.Is(err, domain.ErrViewNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.logger.Warn("Invalid request body", "path", r.URL.Path, "err", err)
		s.write(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(op+" failed", "err", err)
	}
	s.write(w, status, ErrorResponse{Error: err.Error()})
}

func (s *Server) write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Response encode failed", "err", err)
	}
}
