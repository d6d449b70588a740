package internal

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/hyraft/pkg/logger"
)

// runtimeConfig holds configuration for running the HTTP server.
type runtimeConfig struct {
	handler         http.Handler
	address         string
	logger          *slog.Logger
	timeouts        Timeouts
	shutdownTimeout time.Duration
	startupHooks    []func(context.Context) error
	shutdownHooks   []func(context.Context) error
	baseCtx         context.Context
}

// runServer starts the HTTP server and blocks until shutdown.
func runServer(cfg runtimeConfig) error {
	// Set defaults
	if cfg.address == "" {
		cfg.address = ":8080"
	}
	if cfg.shutdownTimeout == 0 {
		cfg.shutdownTimeout = defaultShutdownTimeout
	}

	log := cfg.logger
	if log == nil {
		log = logger.NewNope()
	}

	server := &http.Server{
		Addr:              cfg.address,
		Handler:           cfg.handler,
		ReadTimeout:       cmp.Or(cfg.timeouts.Read, defaultReadTimeout),
		WriteTimeout:      cmp.Or(cfg.timeouts.Write, defaultWriteTimeout),
		IdleTimeout:       cmp.Or(cfg.timeouts.Idle, defaultIdleTimeout),
		ReadHeaderTimeout: cmp.Or(cfg.timeouts.ReadHeader, defaultReadHeaderTimeout),
		MaxHeaderBytes:    defaultMaxHeaderBytes,
	}

	baseCtx := cfg.baseCtx
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(baseCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bind before the hooks run so they see a reachable server.
	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return err
	}
	for _, hook := range cfg.startupHooks {
		if err := hook(ctx); err != nil {
			_ = ln.Close()
			return errors.Join(ErrStartup, err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := server.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return shutdown(server, cfg, log)
	})
	return g.Wait()
}

// shutdown stops accepting requests, waits for in-flight ones and then runs
// the shutdown hooks, all within the shutdown timeout.
func shutdown(server *http.Server, cfg runtimeConfig, log *slog.Logger) error {
	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.shutdownTimeout)
	defer cancel()

	errs := []error{server.Shutdown(ctx)}
	for _, hook := range cfg.shutdownHooks {
		if err := hook(ctx); err != nil {
			log.Error("shutdown hook failed", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		log.Error("shutdown completed with errors")
		return err
	}
	log.Info("shutdown completed")
	return nil
}
