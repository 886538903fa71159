// Package server provides the HTTP server setup for ContosoCrafts.
//
// NewServer wires the product store, the image uploader, the flash session
// manager and the page templates into an *http.Server.
//
// Expected outputs:
// - Server listens on the configured port (default 8080)
// - Stale flash sessions are purged periodically
//
// Usage:
//
//	srv, err := server.NewServer(ctx, cfg, store)
//	srv.ListenAndServe()
//
// See internal/server/routes.go for route registration.
package server

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"contosocrafts/internal/config"
	"contosocrafts/internal/session"
	"contosocrafts/internal/store"
	"contosocrafts/internal/upload"
	"contosocrafts/internal/views"
)

const (
	sessionCleanupInterval = 10 * time.Minute
	sessionMaxAge          = 5 * time.Minute
)

type Server struct {
	port           int
	Store          *store.Store
	Uploads        *upload.Uploader
	SessionManager *session.SessionManager
	Templates      *template.Template
}

// New assembles a Server around st. Uploaded images go to st's web root.
func New(port int, st *store.Store) (*Server, error) {
	tmpl, err := views.Parse()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Server{
		port:           port,
		Store:          st,
		Uploads:        upload.New(st.WebRoot()),
		SessionManager: session.NewSessionManager(),
		Templates:      tmpl,
	}, nil
}

// NewServer builds the HTTP server and starts the flash session cleanup
// loop, which stops when ctx is cancelled.
func NewServer(ctx context.Context, cfg config.Config, st *store.Store) (*http.Server, error) {
	srv, err := New(cfg.Port, st)
	if err != nil {
		return nil, err
	}

	go srv.cleanupSessions(ctx, sessionCleanupInterval)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", srv.port),
		Handler:      srv.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server, nil
}

func (s *Server) cleanupSessions(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.SessionManager.Cleanup(sessionMaxAge); removed > 0 {
				log.Debug().Int("removed", removed).Msg("purged stale flash sessions")
			}
		}
	}
}
