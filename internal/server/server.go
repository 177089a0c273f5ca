// Package server wires the analysis pipeline and the rewrite adapter to
// an HTTP surface. Response shapes mirror the pipeline result types, with
// numeric fields already rounded for display.
package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"readright/internal/analyze"
	"readright/internal/rewrite"
	"readright/internal/store"
)

type Config struct {
	Addr string
	// MinDocumentChars rejects uploads that are probably scans.
	MinDocumentChars int
	// RewriteModel labels cache entries; it must match the generator.
	RewriteModel string

	Analyze analyze.Config
}

// Server is the ReadRight HTTP API server.
type Server struct {
	cfg      Config
	rewriter *rewrite.Rewriter
	cache    *store.Cache
	mux      *http.ServeMux
	server   *http.Server
}

// New assembles the server. rewriter may be unconfigured (it then answers
// with failure outcomes); cache may be nil to disable rewrite caching.
func New(cfg Config, rewriter *rewrite.Rewriter, cache *store.Cache) *Server {
	s := &Server{cfg: cfg, rewriter: rewriter, cache: cache}
	s.mux = http.NewServeMux()
	s.registerRoutes()
	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      withCORS(withRequestLog(s.mux)),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/", requireMethod(http.MethodGet, s.handleRoot))
	s.mux.HandleFunc("/health", requireMethod(http.MethodGet, s.handleHealth))
	s.mux.HandleFunc("/analyze", requireMethod(http.MethodPost, s.handleAnalyze))
	s.mux.HandleFunc("/rewrite", requireMethod(http.MethodPost, s.handleRewrite))
}

// requireMethod emulates the Go 1.22 ServeMux "METHOD /path" patterns on
// older toolchains: wrong methods get 405, and GET also accepts HEAD.
func requireMethod(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method && !(method == http.MethodGet && r.Method == http.MethodHead) {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	log.Printf("readright API server listening on %s", s.cfg.Addr)
	return s.server.ListenAndServe()
}

// Handler returns the full middleware-wrapped handler for testing.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// withCORS allows browser front ends on any origin to call the API.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("request id=%s method=%s path=%s duration=%s", id, r.Method, r.URL.Path, time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("json encode error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func readJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("empty request body")
	}
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
