// Package server exposes the conversion pipeline over HTTP. It is a thin
// shell: one conversion endpoint plus health and version probes, with typed
// pipeline errors mapped onto HTTP statuses.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/urlmark/urlmark/internal/logger"
	"github.com/urlmark/urlmark/internal/version"
	"github.com/urlmark/urlmark/pkg/fetcher"
	"github.com/urlmark/urlmark/pkg/reader"
)

const readerPrefix = "/url/reader/"

// Converter is the pipeline dependency, satisfied by *reader.Reader.
type Converter interface {
	Convert(ctx context.Context, rawURL string) (*reader.Result, error)
}

// Config holds the HTTP shell settings.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `validate:"required"`
	// RequestTimeout bounds one conversion end to end. It must cover the
	// sum of the per-strategy fetch timeouts.
	RequestTimeout time.Duration `validate:"required,min=1s"`
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `validate:"required,min=1s"`
}

// DefaultConfig returns production settings for the shell.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		RequestTimeout:  60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Server serves the conversion API.
type Server struct {
	cfg       Config
	converter Converter
}

// New validates cfg and creates a Server.
func New(cfg Config, converter Converter) (*Server, error) {
	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}
	return &Server{cfg: cfg, converter: converter}, nil
}

// ServeHTTP routes requests. Routing is by hand because the target URL is
// embedded raw in the path and the standard mux would collapse its double
// slashes into a redirect.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method-not-allowed", "only GET is supported", nil)
		return
	}

	path := r.URL.EscapedPath()
	switch {
	case strings.HasPrefix(path, readerPrefix):
		s.handleConvert(w, r)
	case path == "/healthz":
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	case path == "/version":
		writeJSON(w, http.StatusOK, version.Get())
	default:
		writeError(w, http.StatusNotFound, "not-found", "unknown path", nil)
	}
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	target := targetFromRequest(r)
	start := time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RequestTimeout)
	defer cancel()

	result, err := s.converter.Convert(ctx, target)
	if err != nil {
		status, kind, attempts := classifyError(err)
		logger.Warn("conversion failed",
			"url", target, "kind", kind, "status", status,
			"elapsed", time.Since(start), "error", err)
		writeError(w, status, kind, err.Error(), attempts)
		return
	}

	logger.Info("conversion succeeded",
		"url", target,
		"strategy", result.Metadata["renderer"],
		"words", result.WordCount,
		"elapsed", time.Since(start))
	writeJSON(w, http.StatusOK, result)
}

// schemeSlashRe repairs "https:/example.com", which appears when a proxy in
// front of the service collapses the double slash.
var schemeSlashRe = regexp.MustCompile(`^(https?:)/{1,2}`)

// targetFromRequest reconstructs the target URL from everything after the
// path prefix, accepting both raw and percent-encoded forms.
func targetFromRequest(r *http.Request) string {
	raw := strings.TrimPrefix(r.URL.EscapedPath(), readerPrefix)
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	// The query string of a raw (unencoded) target is split off by the HTTP
	// server; stitch it back on.
	if r.URL.RawQuery != "" {
		raw += "?" + r.URL.RawQuery
	}
	return schemeSlashRe.ReplaceAllString(raw, "$1//")
}

// classifyError maps pipeline errors onto HTTP statuses. Exhaustion carries
// the attempt list so callers can see what was tried.
func classifyError(err error) (status int, kind string, attempts []fetcher.Attempt) {
	var invalid *reader.InvalidURLError
	var exhausted *fetcher.ExhaustedError
	var extraction *reader.ExtractionError
	var render *reader.RenderError

	switch {
	case errors.As(err, &invalid):
		return http.StatusBadRequest, "invalid-url", nil
	case errors.As(err, &exhausted):
		return http.StatusBadGateway, "fetch-exhausted", exhausted.Attempts
	case errors.As(err, &extraction):
		return http.StatusUnprocessableEntity, "extraction-failure", nil
	case errors.As(err, &render):
		return http.StatusInternalServerError, "rendering-failure", nil
	default:
		return http.StatusInternalServerError, "internal", nil
	}
}

type errorBody struct {
	Error    string            `json:"error"`
	Kind     string            `json:"kind"`
	Attempts []fetcher.Attempt `json:"attempts,omitempty"`
}

func writeError(w http.ResponseWriter, status int, kind, msg string, attempts []fetcher.Attempt) {
	writeJSON(w, status, errorBody{Error: msg, Kind: kind, Attempts: attempts})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("writing response", "error", err)
	}
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		// Write timeout must outlast the slowest conversion.
		WriteTimeout: s.cfg.RequestTimeout + 5*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
