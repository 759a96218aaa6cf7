// Package chi exposes configured search scopes over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/pgsearch/internal/db"
	"github.com/kailas-cloud/pgsearch/internal/domain"
	"github.com/kailas-cloud/pgsearch/internal/domain/search/plan"
	"github.com/kailas-cloud/pgsearch/internal/metrics"
	searchrepo "github.com/kailas-cloud/pgsearch/internal/repository/search"
	healthuc "github.com/kailas-cloud/pgsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/pgsearch/internal/usecase/search"
)

// Runner executes rendered search statements.
type Runner interface {
	Run(ctx context.Context, stmt db.Statement) ([]searchrepo.Row, error)
}

// Limits bounds request pagination.
type Limits struct {
	DefaultPageSize int
	MaxPageSize     int
}

// Server serves search scopes declared in configuration.
type Server struct {
	scopes  *Registry
	search  *searchuc.Service
	dialect searchuc.Dialect
	runner  Runner
	health  *healthuc.Service
	logger  *zap.Logger
	limits  Limits
}

// NewServer creates the HTTP API server.
func NewServer(
	scopes *Registry,
	search *searchuc.Service,
	dialect searchuc.Dialect,
	runner Runner,
	health *healthuc.Service,
	logger *zap.Logger,
	limits Limits,
) *Server {
	if limits.DefaultPageSize <= 0 {
		limits.DefaultPageSize = 20
	}
	if limits.MaxPageSize <= 0 {
		limits.MaxPageSize = 100
	}
	return &Server{
		scopes:  scopes,
		search:  search,
		dialect: dialect,
		runner:  runner,
		health:  health,
		logger:  logger,
		limits:  limits,
	}
}

// Router builds the chi router with middleware and routes.
func (s *Server) Router(apiKeys []string) http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.Recoverer)
	r.Use(metrics.Middleware())
	r.Use(BearerAuthMiddleware(apiKeys))

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Post("/v1/scopes/{scope}/search", s.handleSearch)

	return r
}

type searchRequest struct {
	Query    string `json:"query"`
	Operator string `json:"operator,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Offset   int    `json:"offset,omitempty"`
	Headline bool   `json:"headline,omitempty"`
}

type searchResponse struct {
	Results []searchrepo.Row `json:"results"`
	Count   int              `json:"count"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "scope")
	def, ok := s.scopes.Get(name)
	if !ok {
		writeError(w, http.StatusNotFound, "scope_not_found", "unknown search scope "+name)
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	if req.Operator != "" {
		def.Operator = req.Operator
	}
	limit := req.Limit
	if limit <= 0 {
		limit = s.limits.DefaultPageSize
	}
	if limit > s.limits.MaxPageSize {
		limit = s.limits.MaxPageSize
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	stmt, compiled, err := s.compileStatement(def, req, limit, offset)
	if err != nil {
		s.writeDomainError(w, name, err)
		return
	}
	if compiled {
		metrics.SearchPlansTotal.
			WithLabelValues(name, metrics.PlanMode(stmt.Plan.Grouped())).Inc()
	}

	start := time.Now()
	rows, err := s.runner.Run(r.Context(), stmt)
	if err != nil {
		metrics.SearchErrorsTotal.WithLabelValues(name, "query").Inc()
		s.logger.Error("search failed", zap.String("scope", name), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal", "search failed")
		return
	}
	metrics.SearchQueryDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	writeJSON(w, http.StatusOK, searchResponse{Results: rows, Count: len(rows)})
}

// compileStatement builds the statement for one request. Blank query
// text compiles to an unfiltered scan of the scope's table, ordered by
// primary key so pagination stays stable.
func (s *Server) compileStatement(
	def searchuc.Definition, req searchRequest, limit, offset int,
) (db.Statement, bool, error) {
	inv, ok, err := s.search.Compile(def, req.Query)
	if err != nil {
		return db.Statement{}, false, err
	}

	if !ok {
		table := s.dialect.TableIdent(def.Table)
		pk := table + "." + s.dialect.QuoteIdentifier(def.PrimaryKey)
		return db.Statement{
			Table:  table,
			Plan:   plan.New("TRUE", pk+" ASC", ""),
			Limit:  limit,
			Offset: offset,
		}, false, nil
	}

	stmt := db.Statement{
		Table:  inv.Table,
		Joins:  inv.Joins,
		Plan:   inv.Plan,
		Limit:  limit,
		Offset: offset,
	}
	// Headline is per-row; it cannot ride on an aggregated plan.
	if req.Headline && !inv.Plan.Grouped() {
		stmt.Headline = inv.Headline
	}
	return stmt, true, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// writeDomainError maps domain sentinels onto HTTP status codes.
// Compilation errors stem from configuration or the request envelope,
// never from the search text itself, so they all map to 4xx.
func (s *Server) writeDomainError(w http.ResponseWriter, scope string, err error) {
	metrics.SearchErrorsTotal.WithLabelValues(scope, "compile").Inc()

	switch {
	case errors.Is(err, domain.ErrUnknownOperator):
		writeError(w, http.StatusBadRequest, "unknown_operator", err.Error())
	case errors.Is(err, domain.ErrInvalidWeight):
		writeError(w, http.StatusBadRequest, "invalid_weight", err.Error())
	case errors.Is(err, domain.ErrEmptyFieldSet):
		writeError(w, http.StatusBadRequest, "empty_field_set", err.Error())
	case errors.Is(err, domain.ErrInvalidScope):
		writeError(w, http.StatusBadRequest, "invalid_scope", err.Error())
	default:
		s.logger.Error("unexpected compile error", zap.String("scope", scope), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal", "search failed")
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
