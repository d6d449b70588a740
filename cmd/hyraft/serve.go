package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/hyraft"
	"github.com/dmitrymomot/hyraft/middlewares"
	"github.com/dmitrymomot/hyraft/pkg/config"
	"github.com/dmitrymomot/hyraft/pkg/livereload"
)

func (c *cli) serveCmd() *cobra.Command {
	d := config.Default()
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"s"},
		Short:   "Start the preview server",
		Long: `Serve every template by its path: /articles/show renders the template
articles/show and / renders the index template. Files under the public
directory are served as they are.

With --dev, templates are watched and open pages reload on change.`,
		Args: cobra.NoArgs,
		RunE: c.runServe,
	}

	f := cmd.Flags()
	f.StringP("addr", "a", d.Server.Address, "listen address")
	f.Bool("dev", d.Dev, "watch templates and live reload pages")
	f.String("index", d.Index, "template rendered for /")
	c.bind(cmd, "server.address", "addr")
	c.bind(cmd, "dev", "dev")
	c.bind(cmd, "index", "index")
	return cmd
}

func (c *cli) runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := c.cfg

	var hub *livereload.Hub
	reloadPath := ""
	if cfg.Dev {
		hub = livereload.New(livereload.WithLogger(c.log))
		reloadPath = livereload.DefaultPath
	}

	s, err := c.newStack(ctx, reloadPath)
	if err != nil {
		return err
	}
	if err := s.compiler.Preload(ctx); err != nil {
		return errors.Join(err, s.Close())
	}

	app := c.newApp(s, hub)

	opts := []hyraft.RunOption{
		hyraft.Logger(c.log),
		hyraft.ServerTimeouts(hyraft.Timeouts{
			Read:  cfg.Server.ReadTimeout,
			Write: cfg.Server.WriteTimeout,
			Idle:  cfg.Server.IdleTimeout,
		}),
		hyraft.ShutdownTimeout(cfg.Server.ShutdownTimeout),
		hyraft.WithContext(ctx),
	}
	if hub != nil {
		opts = append(opts, hyraft.StartupHook(func(ctx context.Context) error {
			go func() {
				if err := s.compiler.Watch(ctx, hub.Reload); err != nil {
					c.log.ErrorContext(ctx, "template watcher stopped", slog.String("error", err.Error()))
				}
			}()
			return nil
		}))
	}

	c.log.InfoContext(ctx, "serving templates",
		slog.String("root", cfg.Root),
		slog.String("address", cfg.Server.Address),
		slog.Bool("dev", cfg.Dev),
	)
	return app.Run(cfg.Server.Address, opts...)
}

// newApp wires the preview routes, static files and middlewares around s.
func (c *cli) newApp(s *stack, hub *livereload.Hub) *hyraft.App {
	cfg := c.cfg

	var healthOpts []hyraft.HealthOption
	for name, check := range s.checks {
		healthOpts = append(healthOpts, hyraft.WithReadinessCheck(name, check))
	}

	mws := []hyraft.Middleware{
		middlewares.RequestID(),
		middlewares.Recover(middlewares.WithRecoverLogger(c.log)),
		middlewares.Logging(c.log, middlewares.WithSkipPaths("/health", livereload.DefaultPath)),
	}
	if len(cfg.CORSOrigins) > 0 {
		mws = append(mws, middlewares.CORS(cfg.CORSOrigins, middlewares.WithCORSPaths(cfg.APIPrefix)))
	}
	if cfg.Server.RequestTimeout > 0 {
		mws = append(mws, middlewares.Timeout(cfg.Server.RequestTimeout))
	}

	opts := []hyraft.Option{
		hyraft.WithLogger(c.log),
		hyraft.WithMiddleware(mws...),
		hyraft.WithCompiler(s.compiler),
		hyraft.WithWebRoutes(previewRoutes(cfg.Index)),
		hyraft.WithAPIPrefix(cfg.APIPrefix),
		hyraft.WithStaticFiles("/", os.DirFS(cfg.Root), cfg.Public),
		hyraft.WithHealthChecks(healthOpts...),
		hyraft.WithCleanup(func(context.Context) error { return s.Close() }),
	}
	if hub != nil {
		opts = append(opts, hyraft.WithLiveReload(hub, livereload.DefaultPath))
	}
	return hyraft.New(opts...)
}

// previewRoutes renders the template named by the request path.
func previewRoutes(index string) *hyraft.WebRouter {
	return hyraft.DrawWeb(func(r *hyraft.WebRouter) {
		r.GET("/*", func(req *hyraft.Request) (hyraft.Result, error) {
			name := req.Param(0)
			if name == "" {
				name = index
			}
			return hyraft.Render(name, nil), nil
		}, hyraft.Action("preview"))
	})
}
