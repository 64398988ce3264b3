package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"greenhalal/backend/internal/config"
)

const shutdownTimeout = 10 * time.Second

// ConfigFrom maps the loaded application configuration onto server dependencies.
func ConfigFrom(cfg *config.Config) Config {
	return Config{
		DBPath:         cfg.Store.Path,
		SilentDB:       cfg.Store.Silent,
		ReferencePath:  cfg.Reference.Path,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AIConfig:       cfg.AI.Client(),
		DisableAI:      cfg.AI.Disabled,
	}
}

// ListenAndServe runs the router on port until ctx is cancelled, then drains open requests.
func (s *Server) ListenAndServe(ctx context.Context, port string) error {
	router, err := s.Router()
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("starting greenhalal backend on :%s", port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logrus.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Warn("http server shutdown")
		return err
	}
	return nil
}
