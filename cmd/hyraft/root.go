package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dmitrymomot/hyraft/middlewares"
	"github.com/dmitrymomot/hyraft/pkg/config"
	"github.com/dmitrymomot/hyraft/pkg/logger"
)

// cli holds state shared by the commands of one invocation.
type cli struct {
	v          *viper.Viper
	configFile string
	cfg        config.Config
	log        *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}
	d := config.Default()

	root := &cobra.Command{
		Use:   "hyraft",
		Short: "Serve and render .hyr templates",
		Long: `hyraft compiles .hyr templates found under ROOT/adapter-intake/*/display
into the shared layout and serves them.

Configuration is read from hyraft.yaml, HYRAFT_* environment variables
(HYRAFT_LOG_LEVEL, HYRAFT_CACHE_BACKEND, ...) and flags, in increasing
order of precedence.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.configFile, "config", "", "config file (default is ./hyraft.yaml)")
	pf.String("root", d.Root, "project root directory")
	pf.String("method", d.Method, "obfuscation method (multi_layer, split_and_reassemble, none)")
	pf.String("log-level", d.Log.Level, "log level (debug, info, warn, error)")
	pf.String("log-format", d.Log.Format, "log format (text, json)")
	c.bind(root, "root", "root")
	c.bind(root, "method", "method")
	c.bind(root, "log.level", "log-level")
	c.bind(root, "log.format", "log-format")

	root.AddCommand(
		c.serveCmd(),
		c.renderCmd(),
		c.obfuscateCmd(),
		c.libsCmd(),
		c.templatesCmd(),
		c.versionCmd(),
	)
	return root
}

// bind maps flag name of cmd to config key. Persistent flags are looked up
// first.
func (c *cli) bind(cmd *cobra.Command, key, name string) {
	f := cmd.PersistentFlags().Lookup(name)
	if f == nil {
		f = cmd.Flags().Lookup(name)
	}
	_ = c.v.BindPFlag(key, f)
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.WithViper(c.v), config.WithFile(c.configFile))
	if err != nil {
		return err
	}

	opts := append(cfg.LoggerOptions(),
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithExtractors(middlewares.RequestIDExtractor()),
	)
	log, err := logger.New(opts...)
	if err != nil {
		return err
	}

	c.cfg = cfg
	c.log = log
	return nil
}
