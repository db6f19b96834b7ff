package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/grebnov/neoncity/internal/config"
	"github.com/grebnov/neoncity/internal/db"
	"github.com/grebnov/neoncity/internal/gateway"
	"github.com/grebnov/neoncity/internal/gen"
	"github.com/grebnov/neoncity/internal/world"
)

const ConfigPath = "config/cityserver.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config FIRST to determine log level
	cfgPath := ConfigPath
	if p := os.Getenv("NEONCITY_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadWorldServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("neoncity server starting", "log_level", cfg.LogLevel)

	// Connect to database
	database, err := db.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()
	slog.Info("database connected")

	// Run migrations
	if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database migrations applied")

	// Generate the world
	generator, err := gen.NewGenerator(gen.Config{
		Seed:       cfg.World.Seed,
		NoiseScale: cfg.World.NoiseScale,
		CoreX:      float64(cfg.World.Width) / 2,
		CoreY:      float64(cfg.World.Height) / 2,
		CoreRadius: cfg.World.CoreRadius,
	})
	if err != nil {
		return fmt.Errorf("creating generator: %w", err)
	}

	w, err := world.New(generator, cfg.World.Width, cfg.World.Height, cfg.World.ChunkSize)
	if err != nil {
		return fmt.Errorf("creating world: %w", err)
	}

	start := time.Now()
	if err := w.Generate(ctx); err != nil {
		return fmt.Errorf("generating world: %w", err)
	}
	slog.Info("world generated",
		"seed", cfg.World.Seed,
		"size", fmt.Sprintf("%dx%d", cfg.World.Width, cfg.World.Height),
		"structures", len(w.Structures()),
		"took", time.Since(start))

	// Create repositories
	worldRepo := db.NewWorldRepository(database.Pool())
	accountRepo := db.NewAccountRepository(database.Pool(), cfg.AutoCreateAccounts)

	if cfg.World.Persist {
		if err := persistWorld(ctx, worldRepo, cfg.World, w); err != nil {
			return fmt.Errorf("persisting world: %w", err)
		}
	}

	// Serve browser clients
	gw := gateway.NewServer(cfg.Addr(), w, accountRepo, cfg.SessionBuffer, cfg.WriteTimeout)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("starting gateway", "port", cfg.Port)
		if err := gw.Run(gctx); err != nil {
			return fmt.Errorf("gateway: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// persistWorld stores the generated chunks unless an identical world is
// already fully persisted. A partial save from an earlier crash is
// completed by re-upserting every chunk.
func persistWorld(ctx context.Context, repo *db.WorldRepository, wc config.WorldConfig, w *world.World) error {
	info, err := repo.Find(ctx, wc.Seed, wc.Width, wc.Height, wc.ChunkSize)
	if err != nil {
		return err
	}
	if info != nil {
		n, err := repo.CountChunks(ctx, info.ID)
		if err != nil {
			return err
		}
		if n == w.ChunksX()*w.ChunksY() {
			slog.Info("world already persisted", "world_id", info.ID, "chunks", n)
			return nil
		}
	} else {
		info, err = repo.Create(ctx, wc.Seed, wc.Width, wc.Height, wc.ChunkSize)
		if err != nil {
			return err
		}
	}

	start := time.Now()
	for cy := 0; cy < w.ChunksY(); cy++ {
		for cx := 0; cx < w.ChunksX(); cx++ {
			if err := repo.SaveChunk(ctx, info.ID, cx, cy, w.ChunkTiles(cx, cy), w.ChunkStructures(cx, cy)); err != nil {
				return err
			}
		}
	}
	slog.Info("world persisted",
		"world_id", info.ID,
		"chunks", w.ChunksX()*w.ChunksY(),
		"took", time.Since(start))
	return nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
