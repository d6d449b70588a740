package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/dmitrymomot/hyraft/pkg/logger"
	"github.com/dmitrymomot/hyraft/pkg/obfuscator"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "HYRAFT"

// Cache backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type Config struct {
	Server      ServerConfig `mapstructure:"server"`
	Root        string       `mapstructure:"root"`
	Layout      string       `mapstructure:"layout"`
	Intake      string       `mapstructure:"intake"`
	Public      string       `mapstructure:"public"`
	Method      string       `mapstructure:"method"`
	APIPrefix   string       `mapstructure:"api_prefix"`
	CORSOrigins []string     `mapstructure:"cors_origins"`
	Index       string       `mapstructure:"index"`
	Dev         bool         `mapstructure:"dev"`
	Log         LogConfig    `mapstructure:"log"`
	Cache       CacheConfig  `mapstructure:"cache"`
}

type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// RequestTimeout puts a deadline on request contexts. Zero disables it.
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
}

type LogConfig struct {
	Level     string `mapstructure:"level"`
	Format    string `mapstructure:"format"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

type CacheConfig struct {
	Backend  string        `mapstructure:"backend"`
	TTL      time.Duration `mapstructure:"ttl"`
	RedisURL string        `mapstructure:"redis_url"`
}

// Default returns the configuration used when no source overrides a key.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Address:         ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Root:      ".",
		Layout:    "public/index.html",
		Intake:    "adapter-intake",
		Public:    "public",
		Method:    string(obfuscator.MethodMultiLayer),
		APIPrefix: "/api",
		Index:     "index",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Cache: CacheConfig{
			Backend: BackendMemory,
			TTL:     time.Hour,
		},
	}
}

type options struct {
	v    *viper.Viper
	file string
}

// Option configures Load.
type Option func(*options)

// WithViper loads through v, keeping any flags already bound on it.
func WithViper(v *viper.Viper) Option {
	return func(o *options) { o.v = v }
}

// WithFile reads path instead of searching for hyraft.yaml. A named file
// that cannot be read is an error.
func WithFile(path string) Option {
	return func(o *options) { o.file = path }
}

// Load merges defaults, the config file, environment and bound flags, then
// validates the result.
func Load(opts ...Option) (Config, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	v := o.v
	if v == nil {
		v = viper.New()
	}

	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if o.file != "" {
		v.SetConfigFile(o.file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("hyraft")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if o.file != "" || !errors.As(err, &notFound) {
			return Config{}, errors.Join(ErrReadFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Join(ErrDecode, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings no component can start with.
func (c Config) Validate() error {
	if _, err := obfuscator.ParseMethod(c.Method); err != nil {
		return errors.Join(ErrInvalidMethod, err)
	}
	switch c.Cache.Backend {
	case BackendMemory:
	case BackendRedis:
		if c.Cache.RedisURL == "" {
			return ErrMissingRedis
		}
	default:
		return ErrInvalidBackend
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return errors.Join(ErrInvalidLog, err)
	}
	if _, err := logger.ParseFormat(c.Log.Format); err != nil {
		return errors.Join(ErrInvalidLog, err)
	}
	return nil
}

// ObfuscationMethod returns the parsed obfuscation method. Call it on a
// validated config.
func (c Config) ObfuscationMethod() obfuscator.Method {
	m, err := obfuscator.ParseMethod(c.Method)
	if err != nil {
		return obfuscator.MethodMultiLayer
	}
	return m
}

// LoggerOptions translates the log section into logger options.
func (c Config) LoggerOptions() []logger.Option {
	var opts []logger.Option
	if l, err := logger.ParseLevel(c.Log.Level); err == nil {
		opts = append(opts, logger.WithLevel(l))
	}
	if f, err := logger.ParseFormat(c.Log.Format); err == nil {
		opts = append(opts, logger.WithFormat(f))
	}
	if c.Log.SentryDSN != "" {
		opts = append(opts, logger.WithSentry(logger.SentryConfig{DSN: c.Log.SentryDSN}))
	}
	return opts
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("server.address", d.Server.Address)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.idle_timeout", d.Server.IdleTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.request_timeout", d.Server.RequestTimeout)
	v.SetDefault("root", d.Root)
	v.SetDefault("layout", d.Layout)
	v.SetDefault("intake", d.Intake)
	v.SetDefault("public", d.Public)
	v.SetDefault("method", d.Method)
	v.SetDefault("api_prefix", d.APIPrefix)
	v.SetDefault("cors_origins", []string{})
	v.SetDefault("index", d.Index)
	v.SetDefault("dev", d.Dev)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.sentry_dsn", d.Log.SentryDSN)
	v.SetDefault("cache.backend", d.Cache.Backend)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("cache.redis_url", d.Cache.RedisURL)
}
