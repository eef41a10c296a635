package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/praxisprep/medeval/store"
)

// parseRequest is the body of POST /api/parse and POST /api/evaluations.
type parseRequest struct {
	Text      string `json:"text"`
	Format    string `json:"format,omitempty"` // "text" (default) or "html"
	ID        string `json:"id,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// decodeParseRequest enforces the one real contract violation: a missing
// or empty text is a caller bug and gets a 400, unlike unparseable text
// which parses to defaults.
func (s *Service) decodeParseRequest(w http.ResponseWriter, r *http.Request) (*parseRequest, bool) {
	body := http.MaxBytesReader(w, r.Body, int64(s.maxInput))
	var req parseRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		if errors.As(err, new(*http.MaxBytesError)) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Errorf("input exceeds %d bytes", s.maxInput))
			return nil, false
		}
		writeError(w, http.StatusBadRequest, err)
		return nil, false
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, errors.New("text is required"))
		return nil, false
	}
	switch req.Format {
	case "", "text", "html":
	default:
		writeError(w, http.StatusBadRequest, fmt.Errorf("unsupported format %q (use text or html)", req.Format))
		return nil, false
	}
	if req.Format == "html" {
		req.Text = s.conv.ToText(req.Text)
	}
	return &req, true
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleParse parses without persisting. ?report=1 includes diagnostics.
func (s *Service) handleParse(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeParseRequest(w, r)
	if !ok {
		return
	}
	if r.URL.Query().Get("report") != "" {
		ev, report := s.parser.ParseWithReport(req.Text, req.ID, req.Timestamp)
		writeJSON(w, http.StatusOK, map[string]any{"evaluation": ev, "report": report})
		return
	}
	writeJSON(w, http.StatusOK, s.parser.Parse(req.Text, req.ID, req.Timestamp))
}

// handleCreate parses and persists, returning the stored record.
func (s *Service) handleCreate(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("persistence disabled"))
		return
	}
	req, ok := s.decodeParseRequest(w, r)
	if !ok {
		return
	}
	ev := s.parser.Parse(req.Text, req.ID, req.Timestamp)
	stored, err := s.store.Save(r.Context(), ev, req.Text)
	if err != nil {
		s.logger.Error("save evaluation", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

func (s *Service) handleList(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("persistence disabled"))
		return
	}
	evals, err := s.store.List(r.Context(), queryInt(r, "limit", 50))
	if err != nil {
		s.logger.Error("list evaluations", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"evaluations": evals, "count": len(evals)})
}

func (s *Service) handleGet(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("persistence disabled"))
		return
	}
	ev, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

func (s *Service) handleGetRaw(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("persistence disabled"))
		return
	}
	raw, err := s.store.RawText(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.Copy(w, strings.NewReader(raw))
}

func (s *Service) handleDelete(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("persistence disabled"))
		return
	}
	err := s.store.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func queryInt(r *http.Request, key string, def int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
