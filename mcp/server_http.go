package mcp

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lukman83/youtube-mcp/internal/dispatch"
	"github.com/lukman83/youtube-mcp/internal/logger"
	"github.com/lukman83/youtube-mcp/internal/models"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	maxRequestBody  = 4 << 20
	shutdownTimeout = 10 * time.Second
)

// HTTPConfig configures the HTTP transport.
type HTTPConfig struct {
	Addr string
	// APIKey enables bearer auth on the MCP endpoints when set.
	APIKey string
	// KeyConfigured reports whether a YouTube API key is present; shown by health.
	KeyConfigured func() bool
}

// NewHTTPHandler returns the full route table: the MCP endpoint at /mcp and
// /api/mcp, health at /healthz and /api/health, and a banner at / and /api.
func NewHTTPHandler(d *dispatch.Dispatcher, tools []Tool, cfg HTTPConfig) http.Handler {
	streamable := server.NewStreamableHTTPServer(NewServer(d, tools), server.WithStateLess(true))

	var mcpHandler http.Handler = unknownToolEnvelope(d, streamable)
	if cfg.APIKey != "" {
		mcpHandler = bearerAuth(cfg.APIKey, mcpHandler)
	}

	mux := http.NewServeMux()
	mux.Handle("/mcp", mcpHandler)
	mux.Handle("/api/mcp", mcpHandler)

	health := func(w http.ResponseWriter, r *http.Request) {
		keyOK := cfg.KeyConfigured != nil && cfg.KeyConfigured()
		writeJSON(w, http.StatusOK, models.Health{
			Status:        "ok",
			Service:       ServerName,
			Version:       Version,
			KeyConfigured: keyOK,
			Timestamp:     time.Now().UTC(),
		})
	}
	mux.HandleFunc("GET /healthz", health)
	mux.HandleFunc("GET /api/health", health)

	banner := func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"name":     ServerName,
			"version":  Version,
			"endpoint": "/mcp",
			"health":   "/healthz",
			"tools":    d.Names(),
		})
	}
	mux.HandleFunc("GET /{$}", banner)
	mux.HandleFunc("GET /api", banner)

	return accessLog(mux)
}

// ServeHTTP listens on cfg.Addr until ctx is cancelled, then drains
// in-flight requests.
func ServeHTTP(ctx context.Context, d *dispatch.Dispatcher, tools []Tool, cfg HTTPConfig) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      NewHTTPHandler(d, tools, cfg),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log := logger.With("http")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("addr", cfg.Addr).Info("MCP HTTP server listening")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// unknownToolEnvelope applies unknownToolResponse to POSTed JSON-RPC bodies.
func unknownToolEnvelope(d *dispatch.Dispatcher, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			next.ServeHTTP(w, r)
			return
		}
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBody))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				http.Error(w, `{"error":"request body too large"}`, http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, `{"error":"read request body"}`, http.StatusBadRequest)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		resp, ok := unknownToolResponse(r.Context(), d, body)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	})
}

func bearerAuth(apiKey string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" {
			w.Header().Set("WWW-Authenticate", `Bearer realm="mcp"`)
			http.Error(w, `{"error":"missing Authorization header"}`, http.StatusUnauthorized)
			return
		}
		token, found := strings.CutPrefix(auth, "Bearer ")
		if !found || subtle.ConstantTimeCompare([]byte(token), []byte(apiKey)) != 1 {
			w.Header().Set("WWW-Authenticate", `Bearer realm="mcp", error="invalid_token"`)
			http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Flush keeps SSE responses streaming through the recorder.
func (s *statusRecorder) Flush() {
	if f, ok := s.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (s *statusRecorder) Unwrap() http.ResponseWriter { return s.ResponseWriter }

// accessLog tags each request with an X-Request-Id and logs its outcome.
func accessLog(next http.Handler) http.Handler {
	log := logger.With("http")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		log.WithFields(logrus.Fields{
			"request_id": id,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.status,
			"duration":   time.Since(start).Round(time.Millisecond).String(),
		}).Info("request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
