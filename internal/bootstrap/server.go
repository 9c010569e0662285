package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/safarpk/safarpk/config"
)

const shutdownTimeout = 5 * time.Second

// Run serves handler on cfg.Address and blocks until ctx is cancelled or the
// server fails. Cancellation drains in-flight requests before returning.
func Run(ctx context.Context, cfg config.HTTPConfig, handler http.Handler) error {
	srv := newServer(cfg, handler)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("http server listening on %s", cfg.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen http %s: %w", cfg.Address, err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		log.Printf("http server stopped")
		return nil
	}
}

func newServer(cfg config.HTTPConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		ReadTimeout:       time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
	}
}
