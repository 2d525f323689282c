package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nomiskit/pkg/buildinfo"
	"github.com/matzehuels/nomiskit/pkg/cache"
	"github.com/matzehuels/nomiskit/pkg/config"
	"github.com/matzehuels/nomiskit/pkg/integrations"
	"github.com/matzehuels/nomiskit/pkg/integrations/nomisweb"
	"github.com/matzehuels/nomiskit/pkg/nomis"
	"github.com/matzehuels/nomiskit/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "nomis"

	// retryDelay is the initial backoff between upstream attempts.
	retryDelay = time.Second
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Out    io.Writer

	verbose    bool
	configPath string
	noCache    bool
	refresh    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "nomis queries UK labour-market statistics from Nomis",
		Long:         `nomis discovers Nomis datasets, maps plain-English dimension values such as "Female" or "Leeds" to service codes, and builds and runs data queries.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
				observability.InstallLogHooks(c.Logger)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/nomis/config.toml)")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable the HTTP response cache")
	flags.BoolVar(&c.refresh, "refresh", false, "ignore cached responses and fetch again")

	// Register all subcommands
	root.AddCommand(c.datasetsCommand())
	root.AddCommand(c.dimensionsCommand())
	root.AddCommand(c.codesCommand())
	root.AddCommand(c.geoCommand())
	root.AddCommand(c.urlCommand())
	root.AddCommand(c.dataCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Client Factory
// =============================================================================

// session is a configured client plus the resources it holds.
type session struct {
	cfg    *config.Config
	client *nomis.Client
	cache  cache.Cache
}

func (s *session) Close() error { return s.cache.Close() }

// newSession loads configuration and builds the cache, transport and client.
func (c *CLI) newSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	ttl, err := cfg.CacheTTL()
	if err != nil {
		return nil, err
	}

	backend, err := c.newCache(ctx, cfg)
	if err != nil {
		return nil, err
	}

	transport := nomisweb.NewClient(backend, ttl,
		integrations.WithTimeout(timeout),
		integrations.WithRetry(cfg.Retries, retryDelay),
		integrations.WithKeyer(cache.NewScopedKeyer(nil, cfg.Cache.Prefix)),
	)
	transport.Refresh = c.refresh

	client := nomis.New(transport,
		nomis.WithBaseURL(cfg.BaseURL),
		nomis.WithLogger(loggerFromContext(ctx)),
	)
	return &session{cfg: cfg, client: client, cache: backend}, nil
}

// newCache opens the configured cache backend. --no-cache always wins.
func (c *CLI) newCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	logger := loggerFromContext(ctx)
	backend := cfg.Cache.Backend
	if c.noCache {
		backend = config.BackendNone
	}

	switch backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		logger.Debug("using redis cache", "addr", cfg.Redis.Addr)
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	case config.BackendMongo:
		logger.Debug("using mongo cache", "database", cfg.Mongo.Database)
		return cache.NewMongoCache(ctx, cache.MongoConfig{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
	default:
		dir, err := cfg.CacheDir()
		if err != nil {
			logger.Warn("no cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		logger.Debug("using file cache", "dir", dir)
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
		return fc, nil
	}
}
