package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/yndnr/respkv/internal/infra/buildinfo"
	"github.com/yndnr/respkv/internal/infra/confloader"
	"github.com/yndnr/respkv/internal/infra/shutdown"
	"github.com/yndnr/respkv/internal/server/config"
	"github.com/yndnr/respkv/internal/server/redisserver"
	"github.com/yndnr/respkv/internal/storage/memory"
	"github.com/yndnr/respkv/internal/telemetry/logger"
	"github.com/yndnr/respkv/internal/telemetry/metric"
	"github.com/yndnr/respkv/pkg/resp"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("respkv-server", flag.ContinueOnError)
	var (
		configFile  = fs.String("config", "", "Path to configuration file")
		showVersion = fs.Bool("version", false, "Show version information")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "respkv-server %s\n", buildinfo.String())
		return nil
	}

	cfg, loader, err := loadConfig(*configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := initLogger(cfg, stdout)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	info := buildinfo.Get()
	log.Info("starting respkv-server",
		"version", info.Version,
		"commit", info.Commit,
		"config", *configFile)

	store := memory.New(memory.WithShardCount(cfg.Storage.Shards))
	metrics := metric.Global()
	metrics.MustRegister(metric.NewKeyspaceCollector(func() map[string]int {
		st := store.Stats()
		return map[string]int{
			"strings": st.Strings,
			"hashes":  st.Hashes,
			"sets":    st.Sets,
		}
	}))

	shutdownHandler := shutdown.NewHandler(shutdownTimeout)
	abort := func(err error) error {
		if serr := shutdownHandler.Shutdown(); serr != nil {
			log.Error("shutdown error", "error", serr)
		}
		return err
	}

	// Hooks run in reverse order: redis first, the watcher last.
	if loader.FilePath() != "" {
		watcher, err := startWatcher(loader, log)
		if err != nil {
			return abort(fmt.Errorf("watch config: %w", err))
		}
		shutdownHandler.OnShutdown("config-watcher", func(context.Context) error {
			return watcher.Stop()
		})
	}

	if cfg.Server.Metrics.Enabled {
		metricsServer := metric.NewServer(cfg.Server.Metrics.Addr, metrics)
		shutdownHandler.OnShutdown("metrics", metricsServer.Shutdown)
		go func() {
			log.Info("metrics server listening", "address", cfg.Server.Metrics.Addr)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server error", "error", err)
				shutdownHandler.Trigger("metrics server failed")
			}
		}()
	}

	redisServer := redisserver.New(redisConfig(cfg), store, metrics, log)
	if err := redisServer.Start(ctx); err != nil {
		return abort(fmt.Errorf("start redis server: %w", err))
	}
	shutdownHandler.OnShutdown("redis", redisServer.Shutdown)

	log.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(ctx); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig merges defaults, the optional file and RESPKV_* variables.
func loadConfig(configFile string) (*config.ServerConfig, *confloader.Loader, error) {
	loader := confloader.NewLoader(
		confloader.WithConfigFile(configFile),
		confloader.WithDefaults(config.DefaultValues()),
	)

	cfg := config.Default()
	if err := loader.Load(cfg); err != nil {
		return nil, nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, loader, nil
}

func initLogger(cfg *config.ServerConfig, out io.Writer) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: out,
	})
	if err != nil {
		return nil, err
	}
	logger.SetDefault(log)
	return log, nil
}

func redisConfig(cfg *config.ServerConfig) *redisserver.Config {
	r := cfg.Server.Redis
	return &redisserver.Config{
		Addr:           r.Addr,
		UnixSocket:     r.UnixSocket,
		UnixSocketPerm: os.FileMode(r.UnixSocketPerm),
		Protocol:       resp.Protocol(r.Protocol),
		ReadTimeout:    r.Timeout.Read,
		WriteTimeout:   r.Timeout.Write,
		IdleTimeout:    r.Timeout.Idle,
		RateLimit:      r.RateLimit,
		Burst:          r.Burst,
	}
}

// startWatcher reloads the configuration file on change and applies the
// keys that can change at runtime. Everything else needs a restart.
func startWatcher(loader *confloader.Loader, log logger.Logger) (*confloader.Watcher, error) {
	watcher, err := confloader.NewWatcher(confloader.WithWatcherLogger(slog.Default()))
	if err != nil {
		return nil, err
	}
	if err := watcher.Watch(loader.FilePath()); err != nil {
		_ = watcher.Stop()
		return nil, err
	}

	watcher.OnChange(func(path string) {
		applyReload(loader, log, path)
	})
	watcher.StartAsync()
	return watcher, nil
}

func applyReload(loader *confloader.Loader, log logger.Logger, path string) {
	next := config.Default()
	if err := loader.Reload(next); err != nil {
		log.Warn("configuration reload failed", "file", path, "error", err)
		return
	}
	if err := config.Verify(next); err != nil {
		log.Warn("reloaded configuration is invalid, keeping previous", "file", path, "error", err)
		return
	}

	if old := logger.GetLevel(); old != next.Log.Level {
		logger.SetLevel(next.Log.Level)
		log.Info("log level changed", "from", old, "to", logger.GetLevel())
	}
}
