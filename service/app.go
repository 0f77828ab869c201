package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"blogly/app/routes"

	"github.com/rs/zerolog"
)

// RunAppServer serves the blog on cfg.Addr until ctx is cancelled, then
// shuts down gracefully within cfg.ShutdownTimeout.
func RunAppServer(ctx context.Context, cfg Config, log zerolog.Logger) error {
	store, err := OpenStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Addr, err)
	}

	srv := &http.Server{Handler: routes.Setup(store, log)}
	return serve(ctx, srv, listener, cfg, log)
}

func serve(ctx context.Context, srv *http.Server, listener net.Listener, cfg Config, log zerolog.Logger) error {
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", listener.Addr().String()).Str("driver", cfg.Driver).Msg("starting blog service")
		errc <- srv.Serve(listener)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
