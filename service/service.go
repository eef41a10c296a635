// Package service exposes the evaluation parser over HTTP: parse-only,
// parse-and-persist, and retrieval of stored records. It is a thin shim
// around evalparse and store; everything domain-shaped lives there.
package service

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/praxisprep/medeval/evalparse"
	"github.com/praxisprep/medeval/htmltext"
	"github.com/praxisprep/medeval/store"
)

// Service wires the parser, the HTML converter, and the store behind the
// HTTP handlers.
type Service struct {
	parser   *evalparse.Parser
	store    *store.Store
	conv     *htmltext.Converter
	logger   *slog.Logger
	maxInput int // bytes
	authHash string
}

// New creates a Service. store may be nil, in which case the persistence
// endpoints respond 503 and only /api/parse is functional.
func New(parser *evalparse.Parser, st *store.Store, logger *slog.Logger, cfg *Config) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Service{
		parser:   parser,
		store:    st,
		conv:     htmltext.New(),
		logger:   logger,
		maxInput: cfg.MaxInputKB * 1024,
		authHash: cfg.AuthPasswordHash,
	}
}

// Router returns the full HTTP surface.
func (s *Service) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(securityHeaders)
	r.Use(requestID)
	r.Use(s.requestLogger)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		if s.authHash != "" {
			r.Use(basicAuth(s.authHash))
		}
		r.Post("/parse", s.handleParse)
		r.Post("/evaluations", s.handleCreate)
		r.Get("/evaluations", s.handleList)
		r.Get("/evaluations/{id}", s.handleGet)
		r.Get("/evaluations/{id}/raw", s.handleGetRaw)
		r.Delete("/evaluations/{id}", s.handleDelete)
	})

	return r
}
