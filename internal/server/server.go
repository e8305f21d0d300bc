// Package server exposes the analysis session flow over HTTP so a UI can
// drive it: start from a document, confirm purpose and features, then
// transform for a platform.
package server

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/ternarybob/arbor"

	"github.com/kolah/plugforge/internal/engine"
	"github.com/kolah/plugforge/internal/session"
	"github.com/kolah/plugforge/middleware"
)

//go:embed openapi.yaml
var apiDocument []byte

// Document returns the OpenAPI description of the session API.
func Document() []byte {
	return apiDocument
}

type Server struct {
	logger   arbor.ILogger
	engines  *engine.Loader
	sessions *session.Analyzer
	handler  http.Handler
}

func New(logger arbor.ILogger, engines *engine.Loader, sessions *session.Analyzer) (*Server, error) {
	s := &Server{
		logger:   logger,
		engines:  engines,
		sessions: sessions,
	}

	validation, err := middleware.New(apiDocument, &middleware.Options{
		ValidateRequest: true,
		ErrorHandler:    s.validationFailed,
	})
	if err != nil {
		return nil, fmt.Errorf("loading API document: %w", err)
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Get("/openapi.yaml", s.document)
	r.Route("/v1", func(r chi.Router) {
		r.Use(validation.Handler)
		r.Use(s.logRequests)

		r.Get("/platforms", s.listPlatforms)
		r.Get("/analyses", s.listAnalyses)
		r.Post("/analyses", s.startAnalysis)
		r.Route("/analyses/{id}", func(r chi.Router) {
			r.Get("/", s.getAnalysis)
			r.Delete("/", s.cleanupAnalysis)
			r.Post("/purpose", s.confirmPurpose)
			r.Put("/features", s.updateFeatures)
			r.Patch("/ui-preferences", s.updateUIPreferences)
			r.Patch("/advanced-settings", s.updateAdvancedSettings)
			r.Post("/finalize", s.finalize)
			r.Get("/focus-adjustments", s.focusAdjustments)
			r.Post("/transform", s.transform)
		})
	})
	s.handler = r

	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info().Str("address", addr).Msg("HTTP server starting")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info().Msg("HTTP server stopped")
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("operation", middleware.OperationID(r.Context())).
			Int("status", ww.Status()).
			Msg("HTTP request")
	})
}

func (s *Server) validationFailed(w http.ResponseWriter, r *http.Request, err *middleware.ValidationError) {
	s.logger.Debug().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("violations", len(err.Errors)).
		Msg("Request rejected by validation")

	writeJSON(w, err.StatusCode, errorResponse{
		Error:   err.Message,
		Details: err.Details(),
	})
}

func (s *Server) document(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(apiDocument)
}
