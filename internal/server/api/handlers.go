// Package api implements the pngmarkd HTTP handlers: chunk inspection,
// message embedding and extraction, and scan history.
package api

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/systemshift/pngmark/internal/server/index"
	"github.com/systemshift/pngmark/pkg/pngmark"
)

// Server holds the HTTP server dependencies
type Server struct {
	idx       *index.Store
	log       *logrus.Logger
	maxUpload int64
}

// New creates a new API server
func New(idx *index.Store, log *logrus.Logger, maxUpload int64) *Server {
	return &Server{idx: idx, log: log, maxUpload: maxUpload}
}

// Routes registers all API routes on a router
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Route("/api", func(r chi.Router) {
		r.Post("/inspect", s.Inspect)
		r.Post("/embed", s.Embed)
		r.Post("/extract", s.Extract)
		r.Get("/scans", s.ListScans)
		r.Get("/scans/{id}", s.GetScan)
	})
}

// HealthCheck handles GET /health
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// InspectResponse is the response for inspecting a PNG
type InspectResponse struct {
	Scan *index.Scan `json:"scan"`
}

// Inspect handles POST /api/inspect. The request body is the raw PNG;
// an optional ?name= names the scan record.
func (s *Server) Inspect(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxUpload))
	if err != nil {
		http.Error(w, "reading body: "+err.Error(), http.StatusRequestEntityTooLarge)
		return
	}

	f, err := pngmark.FromBytes(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "upload"
	}

	sum := sha256.Sum256(body)
	scan, err := s.idx.SaveScan(r.Context(), name, hex.EncodeToString(sum[:]), int64(len(body)), f.Chunks())
	if err != nil {
		s.log.WithError(err).Error("persisting scan")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.log.WithFields(logrus.Fields{
		"scan":   scan.ID,
		"name":   name,
		"chunks": scan.ChunkCount,
	}).Info("inspected png")

	writeJSON(w, http.StatusOK, InspectResponse{Scan: scan})
}

// EmbedRequest is the request body for embedding a message
type EmbedRequest struct {
	PNG      string `json:"png"` // base64
	Type     string `json:"type"`
	Message  string `json:"message"`
	Compress bool   `json:"compress"`
}

// EmbedResponse carries the modified PNG and the chunk that was added
type EmbedResponse struct {
	PNG   string            `json:"png"` // base64
	Chunk pngmark.ChunkInfo `json:"chunk"`
}

// Embed handles POST /api/embed
func (s *Server) Embed(w http.ResponseWriter, r *http.Request) {
	var req EmbedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	body, err := base64.StdEncoding.DecodeString(req.PNG)
	if err != nil {
		http.Error(w, "decoding png field: "+err.Error(), http.StatusBadRequest)
		return
	}

	f, err := pngmark.FromBytes(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := f.Embed(req.Type, []byte(req.Message), pngmark.EmbedOptions{Compress: req.Compress}); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var added pngmark.ChunkInfo
	for _, info := range f.Chunks() {
		if info.Type == req.Type {
			added = info
		}
	}

	writeJSON(w, http.StatusOK, EmbedResponse{
		PNG:   base64.StdEncoding.EncodeToString(f.Bytes()),
		Chunk: added,
	})
}

// ExtractRequest is the request body for extracting a message
type ExtractRequest struct {
	PNG      string `json:"png"` // base64
	Type     string `json:"type"`
	Compress bool   `json:"compress"`
}

// ExtractResponse carries the recovered message
type ExtractResponse struct {
	Message string `json:"message"`
}

// Extract handles POST /api/extract
func (s *Server) Extract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	body, err := base64.StdEncoding.DecodeString(req.PNG)
	if err != nil {
		http.Error(w, "decoding png field: "+err.Error(), http.StatusBadRequest)
		return
	}

	f, err := pngmark.FromBytes(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	msg, err := f.Extract(req.Type, pngmark.EmbedOptions{Compress: req.Compress})
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, ExtractResponse{Message: string(msg)})
}

// ListScans handles GET /api/scans with an optional ?limit=
func (s *Server) ListScans(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		l, err := strconv.Atoi(lStr)
		if err != nil {
			http.Error(w, "invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = l
	}

	scans, err := s.idx.ListScans(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scans": scans,
		"count": len(scans),
	})
}

// GetScan handles GET /api/scans/{id}
func (s *Server) GetScan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	scan, err := s.idx.GetScan(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, scan)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
