package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rovenko/dungeoncrawl/internal/ai"
	"github.com/rovenko/dungeoncrawl/internal/assets"
	"github.com/rovenko/dungeoncrawl/internal/config"
	"github.com/rovenko/dungeoncrawl/internal/game"
	"github.com/rovenko/dungeoncrawl/internal/prefs"
	"github.com/rovenko/dungeoncrawl/internal/store"
)

const DefaultConfigPath = "config/crawler.yaml"

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
	cfgPath := DefaultConfigPath
	if p := os.Getenv("CRAWLER_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))
	ai.EnableDebugLogging(logLevel == slog.LevelDebug)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>32|1))
	slog.Info("starting crawler", "seed", seed, "arena", fmt.Sprintf("%gx%g", cfg.Arena.Width, cfg.Arena.Height))

	st, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening save store: %w", err)
	}
	defer st.Close()

	g, err := game.New(cfg.Arena.Width, cfg.Arena.Height, rng, assets.NewPlaceholder(), prefs.NewManager(rng))
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	if save, err := st.Load(ctx); err == nil {
		g.Load(save)
		slog.Info("resumed session",
			"session", save.SessionID,
			"level", save.Level,
			"savedAt", save.SavedAt)
	} else if !errors.Is(err, store.ErrNoSave) {
		return fmt.Errorf("loading save: %w", err)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return tickLoop(ctx, g, st, cfg.Save.AutosaveSeconds)
	})
	return eg.Wait()
}

// tickLoop runs the fixed-rate simulation until the context is cancelled,
// autosaving periodically and once more on the way out. The loop goroutine
// is the sole owner of the game state.
func tickLoop(ctx context.Context, g *game.Game, st store.Storage, autosaveSeconds int) error {
	ticker := time.NewTicker(time.Second / game.TicksPerSecond)
	defer ticker.Stop()

	autosaveTicks := int64(autosaveSeconds) * game.TicksPerSecond
	var ticks int64

	for {
		select {
		case <-ctx.Done():
			// The loop context is already cancelled here; the final save
			// gets its own deadline.
			saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := st.Save(saveCtx, g.Save()); err != nil {
				slog.Error("final save failed", "err", err)
			}
			return nil
		case <-ticker.C:
			if err := g.Tick(game.Input{}); err != nil {
				return fmt.Errorf("tick: %w", err)
			}
			ticks++

			if autosaveTicks > 0 && ticks%autosaveTicks == 0 {
				if err := st.Save(ctx, g.Save()); err != nil {
					slog.Error("autosave failed", "err", err)
				} else if ai.IsDebugEnabled() {
					slog.Debug("autosaved",
						"level", g.State().DungeonLevel(),
						"monsters", len(g.State().Monsters()))
				}
			}
		}
	}
}

// openStore creates the configured persistence backend, running migrations
// for the Postgres backend first.
func openStore(ctx context.Context, cfg config.Config) (store.Storage, error) {
	switch cfg.Save.Backend {
	case "postgres":
		dsn := cfg.Save.Database.DSN()
		if err := store.RunMigrations(ctx, dsn); err != nil {
			return nil, err
		}
		return store.NewPostgresStore(ctx, dsn, cfg.Save.Slot)
	default:
		return store.NewJSONStore(cfg.Save.Path)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
