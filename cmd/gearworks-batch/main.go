// Command gearworks-batch generates a range of levels and saves them to disk.
// Levels whose generator runs out of attempts are logged and skipped.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"svw.info/gearworks/internal/config"
	"svw.info/gearworks/internal/difficulty"
	"svw.info/gearworks/internal/domain"
	"svw.info/gearworks/internal/generator"
	"svw.info/gearworks/internal/infrastructure/storage"
	"svw.info/gearworks/internal/shape"
	"svw.info/gearworks/internal/usecase"
	"svw.info/gearworks/internal/validator"
)

func main() {
	from := flag.Int("from", 1, "first level index")
	to := flag.Int("to", 10, "last level index (inclusive)")
	seed := flag.Int64("seed", 0, "base seed; 0 seeds from the clock")
	out := flag.String("out", "./data", "save directory")
	tiers := flag.String("tiers", "", "YAML tier table (default: built-in)")
	preview := flag.Bool("print", false, "print an ASCII preview of each level")
	levelStr := flag.String("log-level", "info", "debug|info|warn|error")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.LogConfig{Level: *levelStr}.SlogLevel(),
	}))
	if *from < 1 || *to < *from {
		logger.Error("bad range", "from", *from, "to", *to)
		os.Exit(2)
	}

	table := difficulty.Default()
	if *tiers != "" {
		t, err := difficulty.LoadTable(*tiers)
		if err != nil {
			logger.Error("tier table", "path", *tiers, "err", err)
			os.Exit(1)
		}
		table = t
	}

	g := generator.NewLevelGenerator(shape.New(), table, validator.New())
	g.Logger = logger
	uc := usecase.NewService(g, table, storage.NewFS(*out))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var base *int64
	if *seed != 0 {
		base = seed
	}
	saved, failed, err := run(ctx, uc, *from, *to, base, *preview, logger)
	logger.Info("batch done", "saved", saved, "failed", failed, "dir", *out)
	if err != nil {
		logger.Error("batch aborted", "err", err)
		os.Exit(1)
	}
}

// run generates and saves one level at a time so a long batch leaves its
// finished levels on disk even when interrupted.
func run(ctx context.Context, uc *usecase.Service, from, to int, seed *int64, preview bool, logger *slog.Logger) (saved, failed int, err error) {
	for idx := from; idx <= to; idx++ {
		items, err := uc.Batch(ctx, idx, idx, seed)
		if err != nil {
			return saved, failed, err
		}
		for _, it := range items {
			if it.Err != nil {
				failed++
				if errors.Is(it.Err, domain.ErrExhausted) {
					logger.Warn("level skipped", "level", it.LevelIndex, "attempts", it.Stats.Attempts, "err", it.Err)
					continue
				}
				logger.Error("level failed", "level", it.LevelIndex, "err", it.Err)
				continue
			}
			if err := uc.Save(ctx, it.Level); err != nil {
				return saved, failed, fmt.Errorf("save level %d: %w", it.LevelIndex, err)
			}
			saved++
			logger.Info("level saved", "level", it.LevelIndex, "id", it.Level.ID, "attempts", it.Stats.Attempts, "dur", it.Stats.Duration)
			if preview {
				fmt.Printf("%s (tier %d, seed %d)\n%s\n", it.Level.ID, it.Level.Tier, it.Level.Seed, it.Level.Preview())
			}
		}
	}
	return saved, failed, nil
}
