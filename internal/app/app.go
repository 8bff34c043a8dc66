// Package app wires the application together and runs the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/abhisek/mathtutor/internal/api"
	"github.com/abhisek/mathtutor/internal/auth"
	"github.com/abhisek/mathtutor/internal/config"
	"github.com/abhisek/mathtutor/internal/drill"
	"github.com/abhisek/mathtutor/internal/llm"
	"github.com/abhisek/mathtutor/internal/session"
	"github.com/abhisek/mathtutor/internal/store"
)

// App is the assembled application.
type App struct {
	cfg   config.Config
	st    *store.Store
	tutor *drill.Tutor
	srv   *http.Server
}

// New builds the application from configuration: database, completion
// provider, tutor, session service, and HTTP routes.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	st, err := store.Open(ctx, store.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	provider, err := llm.NewProvider(ctx, cfg.LLM, st.LLMEvents())
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("completion provider: %w", err)
	}

	drillCfg := drill.DefaultConfig()
	drillCfg.Correctness = drill.CorrectnessMode(cfg.CorrectnessMode)

	policy, err := session.PolicyFromName(cfg.ScorePolicy)
	if err != nil {
		st.Close()
		return nil, err
	}

	tutor := drill.NewTutor(provider, drillCfg)
	sessions := session.NewService(tutor, policy, st.Sessions())
	tokens := auth.NewService(cfg.AuthSecret, 24*time.Hour)
	handlers := api.NewHandlers(sessions, st.Users(), st.Sessions(), tokens, cfg.DefaultLanguage)

	return &App{
		cfg:   cfg,
		st:    st,
		tutor: tutor,
		srv: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           api.NewRouter(handlers, tokens, cfg.CORSOrigins),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Tutor exposes the tutor for one-shot CLI use.
func (a *App) Tutor() *drill.Tutor {
	return a.tutor
}

// Store exposes the persistence layer.
func (a *App) Store() *store.Store {
	return a.st
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", a.cfg.HTTPAddr)
		if err := a.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close releases the application's resources.
func (a *App) Close() error {
	return a.st.Close()
}
