package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lithoslabs/evidence"
)

// Server exposes the locator pipeline as a JSON API.
type Server struct {
	locator *evidence.Locator
	logger  *slog.Logger
	router  chi.Router
}

// NewServer creates a Server routing extraction and lookup requests to the
// given locator.
func NewServer(locator *evidence.Locator, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{locator: locator, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/api/pdf/extract-highlights", s.handleExtract(evidence.KindPDF))
	r.Post("/api/html/extract-highlights", s.handleExtract(evidence.KindHTML))
	r.Get("/api/pdf/highlights", s.handleLookup)
	r.Get("/api/html/highlights", s.handleLookup)

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type extractRequest struct {
	DocumentURL string `json:"documentUrl"`
	ProjectID   string `json:"projectId"`
}

func (s *Server) handleExtract(kind evidence.DocumentKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req extractRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, r, evidence.Errorf(evidence.EINVALID, "invalid request body"))
			return
		}

		result, err := s.locator.Locate(r.Context(), kind, req.DocumentURL, req.ProjectID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, result)
	}
}

// handleLookup returns the stored record for a document URL. The body is
// always {"highlights": <record|null>}; a missing record is not an error to
// the dashboard, it gets the null form of the same shape.
func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")

	rec, err := s.locator.Lookup(r.Context(), url)
	if err != nil {
		if evidence.ErrorCode(err) == evidence.ENOTFOUND {
			s.writeJSON(w, http.StatusOK, map[string]any{"highlights": nil})
			return
		}
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"highlights": rec})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := evidence.ErrorCode(err)
	status := statusFromCode(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	s.writeJSON(w, status, map[string]string{"error": evidence.ErrorMessage(err)})
}

func statusFromCode(code string) int {
	switch code {
	case evidence.EINVALID:
		return http.StatusBadRequest
	case evidence.ENOTFOUND:
		return http.StatusNotFound
	case evidence.EUNAVAILABLE:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
