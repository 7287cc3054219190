package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/nfrund/myprofile/internal/module"
)

const shutdownTimeout = 10 * time.Second

// Boot registers and boots every module.
func (s *Server) Boot(ctx context.Context) error {
	return module.BootAll(ctx, s.E, s.reg, s.modules...)
}

// Start runs the HTTP server until ctx is canceled, then shuts the server and its
// modules down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "addr", s.Cfg.GetAppAddr())
		if err := s.E.Start(s.Cfg.GetAppAddr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	slog.Info("Shutting down server")
	httpErr := s.E.Shutdown(shutdownCtx)
	modErr := module.ShutdownAll(shutdownCtx, s.modules...)
	return errors.Join(httpErr, modErr)
}
