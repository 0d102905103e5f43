package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/good-yellow-bee/powerconnect/internal/actions"
	"github.com/good-yellow-bee/powerconnect/internal/api"
	"github.com/good-yellow-bee/powerconnect/internal/api/health"
	"github.com/good-yellow-bee/powerconnect/internal/metrics"
	"github.com/good-yellow-bee/powerconnect/internal/sample"
	"github.com/good-yellow-bee/powerconnect/internal/storage"
	"github.com/good-yellow-bee/powerconnect/internal/toast"
	"github.com/good-yellow-bee/powerconnect/pkg/config"
)

var (
	configFile  string
	httpAddr    string
	metricsAddr string
	seedFile    string
	watchSeed   bool
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "powerconnect",
	Short: "PowerConnect - power outage notification dashboard",
	Long: `PowerConnect serves a dashboard for power outages on feeders and
TC centers, the notification history sent to consumers, and the
notification settings. Outage and notification data come from a
YAML seed file or the built-in sample.`,
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server (default)",
	RunE:  runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.VersionString())
	},
}

var validateSeedCmd = &cobra.Command{
	Use:   "validate-seed <file>",
	Short: "Validate a seed data file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := sample.LoadFile(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d outages, %d notifications\n", args[0], len(data.Outages), len(data.Notifications))
		for _, w := range data.Warnings {
			fmt.Fprintf(out, "warning: %s\n", w)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (optional)")
	rootCmd.PersistentFlags().StringVarP(&httpAddr, "address", "a", "", "HTTP listen address")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-address", "", `metrics listen address ("off" disables)`)
	rootCmd.PersistentFlags().StringVar(&seedFile, "seed", "", "seed data file (default: built-in sample)")
	rootCmd.PersistentFlags().BoolVar(&watchSeed, "watch", false, "reload the seed file when it changes")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(serveCmd, versionCmd, validateSeedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig builds the configuration from file, .env, environment and flags,
// in increasing priority.
func loadConfig(cmd *cobra.Command) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg *Config
	if configFile != "" {
		var err error
		cfg, err = LoadConfig(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	} else {
		cfg = DefaultConfig()
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("address") {
		cfg.Server.HTTPAddress = httpAddr
	}
	if flags.Changed("metrics-address") {
		cfg.Server.MetricsAddress = metricsAddr
	}
	if flags.Changed("seed") {
		cfg.Data.SeedFile = seedFile
	}
	if flags.Changed("watch") {
		cfg.Data.Watch = watchSeed
	}
	if flags.Changed("verbose") {
		cfg.Server.Verbose = verbose
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func loadSeed(cfg *Config) (*sample.Data, error) {
	if cfg.Data.SeedFile == "" {
		return sample.Default()
	}
	return sample.LoadFile(cfg.Data.SeedFile)
}

// publish swaps the store contents and refreshes the active outage gauge.
func publish(store *storage.MemoryStorage, data *sample.Data) {
	store.Load(data.Outages, data.Notifications)
	active := 0
	for _, o := range data.Outages {
		if o.IsActive() {
			active++
		}
	}
	metrics.OutagesActive.Set(float64(active))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	data, err := loadSeed(cfg)
	if err != nil {
		return fmt.Errorf("load seed: %w", err)
	}
	for _, w := range data.Warnings {
		log.Printf("warning: %s", w)
	}

	store := storage.NewMemoryStorage()
	publish(store, data)
	log.Printf("loaded %d outages and %d notifications", len(data.Outages), len(data.Notifications))

	actionCfg, err := cfg.actionsConfig()
	if err != nil {
		return err
	}
	toasts := toast.NewQueue(5, time.Minute)
	var toaster toast.Toaster = toasts
	if cfg.Server.Verbose {
		toaster = toast.Logged{Next: toasts}
	}
	svc := actions.NewService(store, toaster, actionCfg)

	srv, err := api.New(&api.Config{
		Address:          cfg.Server.HTTPAddress,
		CSRFSecret:       cfg.Server.CSRFKey,
		UseSecureCookies: cfg.Server.SecureCookies,
		RateLimitPerIP:   cfg.Server.RateLimitPerIP,
		MapWidth:         cfg.Map.Width,
		MapHeight:        cfg.Map.Height,
		Version:          config.Version,
		Verbose:          cfg.Server.Verbose,
	}, store, svc, toasts)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	// Setup signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			log.Printf("received signal %v, shutting down...", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Data.Watch {
		watcher, err := sample.NewWatcher(cfg.Data.SeedFile, func(d *sample.Data) {
			publish(store, d)
		})
		if err != nil {
			return fmt.Errorf("create seed watcher: %w", err)
		}
		srv.RegisterHealthChecker(health.NewWatcherChecker(watcher.Running))
		g.Go(func() error { return watcher.Run(gctx) })
		log.Printf("watching %s for changes", cfg.Data.SeedFile)
	}

	if cfg.metricsEnabled() {
		metricsSrv := metrics.NewServer(cfg.Server.MetricsAddress)
		g.Go(func() error { return metricsSrv.Run(gctx) })
	}

	g.Go(func() error { return srv.Run(gctx) })

	log.Printf("starting powerconnect %s", config.Version)
	if err := g.Wait(); err != nil {
		return fmt.Errorf("run server: %w", err)
	}

	log.Printf("server stopped")
	return nil
}
