// Package cmd implements the pokedex command line.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/apimgr/pokedex/src/api"
	"github.com/apimgr/pokedex/src/cache"
	"github.com/apimgr/pokedex/src/display"
	"github.com/apimgr/pokedex/src/lookup"
	"github.com/apimgr/pokedex/src/paths"
)

var (
	// Build info - set via -ldflags at build time
	ProjectName = "pokedex"
	Version     = "dev"
	CommitID    = "unknown"
	BuildDate   = "unknown"

	cfgFile  string
	cacheDir string
	noCache  bool
	noColor  bool
	timeout  int
	language string

	// setupHooks run once the config is loaded, before any command
	setupHooks []func() error

	responseCache cache.Cache
	apiClient     *api.Client
	service       *lookup.Service
)

var rootCmd = &cobra.Command{
	Use:   getBinaryName(),
	Short: "Look up Pokémon, moves, abilities, items and types",
	Long: `pokedex queries PokéAPI and prints a compact summary of a pokemon, ability,
move or item. Pokemon and type lookups include the defensive type matchup.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		for _, hook := range setupHooks {
			if err := hook(); err != nil {
				return err
			}
		}

		// Config and version work without an API client
		if skipClient(cmd) {
			return nil
		}
		return initService()
	},
}

// Execute runs the root command until it finishes or the process is
// interrupted. Each hook runs after the config file is read and before the
// selected command.
func Execute(hooks ...func() error) error {
	setupHooks = hooks

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// cobra only copies the root context into commands that have none, so a
	// command run by an earlier Execute would keep its canceled context.
	setContext(ctx, rootCmd)

	err := rootCmd.ExecuteContext(ctx)
	if cerr := closeService(); err == nil {
		err = cerr
	}
	return err
}

func setContext(ctx context.Context, cmd *cobra.Command) {
	cmd.SetContext(ctx)
	for _, c := range cmd.Commands() {
		setContext(ctx, c)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "", "directory for cached API responses")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "do not read or write the response cache")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().IntVar(&timeout, "timeout", 0, "request timeout in seconds")
	rootCmd.PersistentFlags().StringVar(&language, "language", "", "language for names and effects (e.g. en, de, ja-Hrkt)")

	for _, c := range lookupCommands() {
		rootCmd.AddCommand(c)
	}
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(tuiCmd)
}

func initConfig() {
	setDefaults()

	viper.SetConfigFile(getConfigPath())
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("POKEDEX")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// A missing file is fine; defaults apply
	_ = viper.ReadInConfig()
}

func setDefaults() {
	viper.SetDefault("api.base_url", api.DefaultBaseURL)
	viper.SetDefault("api.timeout", int(api.DefaultTimeout/time.Second))
	viper.SetDefault("api.rate_limit", api.DefaultRateLimit)
	viper.SetDefault("api.parallel", api.DefaultParallel)

	viper.SetDefault("cache.backend", "file")
	viper.SetDefault("cache.dir", paths.CacheDir())
	viper.SetDefault("cache.ttl", cache.DefaultTTL.String())
	viper.SetDefault("cache.max_entries", 10000)
	viper.SetDefault("cache.redis.url", "redis://localhost:6379/0")
	viper.SetDefault("cache.redis.prefix", "pokedex:")
	viper.SetDefault("cache.sqlite.path", "")

	viper.SetDefault("logging.level", "warn")
	viper.SetDefault("logging.file", "")
	viper.SetDefault("logging.max_size", 10)
	viper.SetDefault("logging.max_files", 5)

	viper.SetDefault("output.color", "auto")
	viper.SetDefault("output.language", api.DefaultLanguage)
}

func skipClient(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "config", "version", "help", "completion":
			return true
		}
	}
	return false
}

// cacheConfig builds the cache configuration from viper and the flags
func cacheConfig() *cache.Config {
	cfg := &cache.Config{
		Backend:     viper.GetString("cache.backend"),
		Dir:         paths.Expand(viper.GetString("cache.dir")),
		TTL:         viper.GetDuration("cache.ttl"),
		MaxSize:     viper.GetInt("cache.max_entries"),
		RedisURL:    viper.GetString("cache.redis.url"),
		RedisPrefix: viper.GetString("cache.redis.prefix"),
		SQLitePath:  paths.Expand(viper.GetString("cache.sqlite.path")),
	}
	if cacheDir != "" {
		cfg.Dir = paths.Expand(cacheDir)
	}
	if cfg.Dir == "" {
		cfg.Dir = paths.CacheDir()
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = filepath.Join(cfg.Dir, filepath.Base(paths.SQLiteFile()))
	}
	if cfg.TTL <= 0 {
		cfg.TTL = cache.DefaultTTL
	}
	if noCache {
		cfg.Backend = "none"
	}
	return cfg
}

func initService() error {
	c, err := cache.New(cacheConfig())
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}

	timeoutVal := viper.GetInt("api.timeout")
	if timeout > 0 {
		timeoutVal = timeout
	}
	lang := viper.GetString("output.language")
	if language != "" {
		lang = language
	}

	api.ProjectName = ProjectName
	api.Version = Version
	responseCache = c
	apiClient = api.NewClient(api.Options{
		BaseURL:   viper.GetString("api.base_url"),
		Timeout:   time.Duration(timeoutVal) * time.Second,
		Cache:     c,
		TTL:       viper.GetDuration("cache.ttl"),
		RateLimit: viper.GetFloat64("api.rate_limit"),
		Parallel:  viper.GetInt("api.parallel"),
		Language:  lang,
	})

	styler, err := newStyler()
	if err != nil {
		return err
	}
	service = &lookup.Service{Client: apiClient, Styler: styler}
	return nil
}

func closeService() error {
	if responseCache == nil {
		return nil
	}
	err := responseCache.Close()
	responseCache = nil
	apiClient = nil
	service = nil
	return err
}

func newStyler() (*display.Styler, error) {
	if noColor {
		return display.Plain(), nil
	}
	mode, err := display.ParseColorMode(viper.GetString("output.color"))
	if err != nil {
		return nil, err
	}
	return display.NewStyler(mode.Enabled(display.Detect(os.Stdout))), nil
}

func getConfigPath() string {
	return paths.ResolveConfigPath(cfgFile)
}

func getBinaryName() string {
	return filepath.Base(os.Args[0])
}
