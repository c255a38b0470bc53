package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/babilu-online/lootbox-contract/internal/catalog"
	"github.com/babilu-online/lootbox-contract/internal/config"
	"github.com/babilu-online/lootbox-contract/internal/database"
	"github.com/babilu-online/lootbox-contract/internal/database/postgres"
	"github.com/babilu-online/lootbox-contract/internal/engine"
	"github.com/babilu-online/lootbox-contract/internal/event"
	"github.com/babilu-online/lootbox-contract/internal/factory"
	"github.com/babilu-online/lootbox-contract/internal/handler"
	"github.com/babilu-online/lootbox-contract/internal/metrics"
	"github.com/babilu-online/lootbox-contract/internal/rng"
	"github.com/babilu-online/lootbox-contract/internal/server"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	initLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed, err := initialSeed(cfg.EngineSeed)
	if err != nil {
		return err
	}

	fac, provisioner, checkers, cleanup, err := buildFactory(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	bus := event.NewMemoryBus()
	metrics.NewEventCollector().Register(bus)

	svc := engine.NewService(fac, rng.NewSource(seed, rng.ClockEntropy()), bus)

	if cfg.CatalogPath != "" {
		cat, err := catalog.Load(cfg.CatalogPath)
		if err != nil {
			return fmt.Errorf("load option catalog: %w", err)
		}
		names, err := catalog.Apply(ctx, cat, svc)
		if err != nil {
			return fmt.Errorf("apply option catalog: %w", err)
		}
		slog.Info("Option catalog applied", "path", cfg.CatalogPath, "options", len(names))
	}

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, svc, provisioner, checkers...)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("Server forced shutdown", "error", err)
	}
	slog.Info("Server stopped")
	return nil
}

// initialSeed parses ENGINE_SEED or draws a random 256-bit seed when unset
func initialSeed(raw string) (*big.Int, error) {
	if raw == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("draw random seed: %w", err)
		}
		return new(big.Int).SetBytes(buf), nil
	}

	raw = strings.TrimSpace(raw)
	base := 10
	if rest, found := strings.CutPrefix(raw, "0x"); found {
		raw, base = rest, 16
	}
	seed, ok := new(big.Int).SetString(raw, base)
	if !ok {
		return nil, fmt.Errorf("invalid ENGINE_SEED value")
	}
	return seed, nil
}

// buildFactory selects the mint backend. The returned cleanup closes any
// acquired resources and is safe to call once.
func buildFactory(cfg *config.Config) (factory.Factory, factory.Provisioner, []handler.HealthChecker, func(), error) {
	switch cfg.FactoryBackend {
	case config.BackendPostgres:
		connString := cfg.GetDBConnString()

		if cfg.MigrateOnStart {
			if err := database.Migrate(connString, "migrations"); err != nil {
				return nil, nil, nil, nil, fmt.Errorf("run migrations: %w", err)
			}
		}

		pool, err := database.NewPool(connString,
			database.DefaultMaxConnections, database.DefaultMaxIdleTime, database.DefaultMaxLifetime)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("connect to database: %w", err)
		}

		fac, err := postgres.NewFactory(pool)
		if err != nil {
			pool.Close()
			return nil, nil, nil, nil, fmt.Errorf("create postgres factory: %w", err)
		}

		checker := poolChecker(pool)
		return fac, fac, []handler.HealthChecker{checker}, pool.Close, nil

	default:
		mem := factory.NewMemoryFactory()
		return mem, mem, nil, func() {}, nil
	}
}

func poolChecker(pool *pgxpool.Pool) handler.HealthChecker {
	return handler.HealthCheckerFunc(func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
}
