// Package server exposes documentation generation over HTTP: health and
// discovery endpoints plus code and file documentation endpoints.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/codescribe-ai/codescribe/internal/analysis"
	"github.com/codescribe-ai/codescribe/internal/config"
	"github.com/codescribe-ai/codescribe/internal/logger"
)

// Server provides the CodeScribe HTTP API.
type Server struct {
	cfg            *config.Config
	registry       *analysis.Registry
	version        string
	host           string
	port           int
	allowedOrigins []string
}

// Config holds API server configuration.
type Config struct {
	Config   *config.Config
	Registry *analysis.Registry
	Version  string
	Host     string
	Port     int
	// AllowedOrigins is the CORS allowlist. Empty means localhost-only
	// development origins.
	AllowedOrigins []string
}

// New creates an API server.
func New(cfg Config) *Server {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{
			"http://localhost:3000",
			"http://localhost:8080",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:8080",
		}
	}

	return &Server{
		cfg:            cfg.Config,
		registry:       cfg.Registry,
		version:        cfg.Version,
		host:           cfg.Host,
		port:           cfg.Port,
		allowedOrigins: allowedOrigins,
	}
}

// Handler returns the routed HTTP handler with CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/config", s.handleConfig)
	mux.HandleFunc("/languages", s.handleLanguages)
	mux.HandleFunc("/providers", s.handleProviders)
	mux.HandleFunc("/document/code", s.handleDocumentCode)
	mux.HandleFunc("/document/file", s.handleDocumentFile)

	return s.configureCORS(mux)
}

// Start listens on the configured host and port and serves until the
// listener is closed.
func (s *Server) Start() error {
	lc := net.ListenConfig{}
	listener, err := lc.Listen(context.Background(), "tcp", fmt.Sprintf("%s:%d", s.host, s.port))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	addr := listener.Addr().(*net.TCPAddr)
	logger.Info("API server listening on http://%s:%d", s.host, addr.Port)
	fmt.Printf("CodeScribe API listening on http://%s:%d\n", s.host, addr.Port)

	server := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
	}

	return server.Serve(listener)
}

// configureCORS returns a CORS middleware with origin checking.
func (s *Server) configureCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		allowed := false
		for _, allowedOrigin := range s.allowedOrigins {
			if origin == allowedOrigin {
				allowed = true
				break
			}
		}

		if allowed {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}

		if r.Method == http.MethodOptions {
			if allowed {
				w.WriteHeader(http.StatusOK)
			} else {
				w.WriteHeader(http.StatusForbidden)
			}
			return
		}

		next.ServeHTTP(w, r)
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"success": false, "message": message})
}
