// Package web exposes the scansion pipeline as a JSON REST API.
//
// Endpoints:
//
//	POST /api/scan     body: {"text":"..."} (one or more newline-separated lines)
//	GET  /api/healthz
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rs/cors"

	"github.com/kmantas/sedes/internal/model"
	"github.com/kmantas/sedes/internal/sedes"
)

// Server serves scansion requests over HTTP.
type Server struct {
	analyzer *sedes.Analyzer
	logger   *slog.Logger
	http     *http.Server
}

// NewServer creates a Server listening on addr.
func NewServer(addr string, analyzer *sedes.Analyzer, logger *slog.Logger) *Server {
	s := &Server{
		analyzer: analyzer,
		logger:   logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/scan", s.handleScan)
	mux.HandleFunc("/api/healthz", s.handleHealthz)

	handler := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}).Handler(mux)

	s.http = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

// ListenAndServe blocks until the server stops. It returns nil after a
// graceful Shutdown.
func (s *Server) ListenAndServe() error {
	s.logger.Info("listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// ---- JSON response types ------------------------------------------------

type wordJSON struct {
	Word  string `json:"word"`
	Shape string `json:"metrical_shape,omitempty"`
	Tone  string `json:"tone_shape,omitempty"`
	WordN int    `json:"word_n"`
	Sedes string `json:"sedes,omitempty"`
}

type lineJSON struct {
	Text       string       `json:"text"`
	Status     string       `json:"status"`
	Words      []wordJSON   `json:"words"`
	Candidates [][]wordJSON `json:"candidates,omitempty"`
	Condition  string       `json:"condition,omitempty"`
}

type scanResponse struct {
	Lines []lineJSON `json:"lines"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toWordsJSON(words []sedes.WordSedes) []wordJSON {
	out := make([]wordJSON, 0, len(words))
	for _, w := range words {
		wj := wordJSON{Word: w.Word, Shape: w.Shape, Tone: w.Tone, WordN: w.WordN}
		if w.SedesKnown {
			wj.Sedes = model.FormatSedes(w.Sedes)
		}
		out = append(out, wj)
	}
	return out
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode error", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

// ---- handlers -----------------------------------------------------------

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Text) == "" {
		s.writeError(w, http.StatusBadRequest, "body must be JSON with a non-empty 'text' field")
		return
	}

	var out []lineJSON
	for _, text := range strings.Split(body.Text, "\n") {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		analysis, err := s.analyzer.Analyze(model.NewLine(text))
		if err != nil {
			s.logger.Error("analysis failed", "error", err, "line", text)
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		lj := lineJSON{
			Text:   text,
			Status: string(analysis.Status),
			Words:  toWordsJSON(analysis.Words),
		}
		if analysis.Err != nil {
			lj.Condition = analysis.Err.Error()
		}
		for _, candidate := range analysis.Candidates {
			lj.Candidates = append(lj.Candidates, toWordsJSON(candidate))
		}
		out = append(out, lj)
	}
	if len(out) == 0 {
		s.writeError(w, http.StatusBadRequest, "no lines in request")
		return
	}
	s.writeJSON(w, http.StatusOK, scanResponse{Lines: out})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
