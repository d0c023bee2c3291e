// Package generator builds gear puzzle levels: it composes blocks, grows a
// power path through them, places the power and target gears, decorates the
// surrounding grid and validates the result, retrying with fresh seeds.
package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/zyedidia/generic/mapset"

	"svw.info/gearworks/internal/domain"
	"svw.info/gearworks/internal/ports"
)

const (
	// DefaultSpacing is the world distance between neighbouring cells.
	DefaultSpacing = 1.0

	attemptStride = 7919
	levelStride   = 100003
)

// LevelGenerator runs the full pipeline under a bounded retry loop.
type LevelGenerator struct {
	Composer   *Composer
	Difficulty ports.DifficultyResolver
	Validator  ports.LevelValidator
	Spacing    float64
	Logger     *slog.Logger
	Now        func() time.Time
}

// NewLevelGenerator wires a generator with the default spacing and clock.
func NewLevelGenerator(shapes ports.ShapeTable, d ports.DifficultyResolver, v ports.LevelValidator) *LevelGenerator {
	return &LevelGenerator{
		Composer:   NewComposer(shapes),
		Difficulty: d,
		Validator:  v,
		Spacing:    DefaultSpacing,
		Now:        time.Now,
	}
}

// Generate resolves the difficulty for levelIndex and generates a level.
// A nil seed falls back to the tier's fixed seed, then to the clock.
func (g *LevelGenerator) Generate(ctx context.Context, levelIndex int, seed *int64) (*domain.Level, ports.Stats, error) {
	cfg := g.Difficulty.Resolve(levelIndex)
	return g.GenerateWith(ctx, cfg, seed)
}

// GenerateWith generates a level for an explicit config.
func (g *LevelGenerator) GenerateWith(ctx context.Context, cfg domain.DifficultyConfig, seed *int64) (*domain.Level, ports.Stats, error) {
	start := time.Now()
	log := g.logger().With("level", cfg.LevelIndex, "tier", cfg.Tier)

	if seed == nil {
		seed = cfg.FixedSeed
	}
	lvl, attempt, err := retry(max(cfg.MaxGenerationAttempts, 1), func(attempt int) (*domain.Level, error) {
		if err := ctx.Err(); err != nil {
			return nil, permanent(err)
		}
		s := g.attemptSeed(seed, cfg.LevelIndex, attempt)
		lvl, err := g.attempt(ctx, cfg, s)
		if err != nil {
			if errors.Is(err, domain.ErrCoverageInvariant) {
				log.Error("coverage invariant violated", "attempt", attempt, "seed", s, "err", err)
			} else {
				log.Debug("attempt failed", "attempt", attempt, "seed", s, "stage", stageOf(err), "err", err)
			}
			return nil, err
		}
		return lvl, nil
	})
	st := ports.Stats{Attempts: attempt + 1, Duration: time.Since(start)}
	if err != nil {
		if ctx.Err() != nil {
			return nil, st, err
		}
		st.Attempts = attempt
		log.Warn("generation exhausted", "attempts", attempt, "err", err)
		return nil, st, fmt.Errorf("%w: level %d after %d attempts (last: %v)", domain.ErrExhausted, cfg.LevelIndex, attempt, err)
	}
	lvl.Attempts = attempt + 1
	log.Info("level generated", "id", lvl.ID, "attempts", lvl.Attempts, "blocks", len(lvl.Blocks), "dur", st.Duration.Round(time.Microsecond))
	return lvl, st, nil
}

func (g *LevelGenerator) attemptSeed(seed *int64, levelIndex, attempt int) int64 {
	if seed != nil {
		return *seed + int64(attempt)*attemptStride
	}
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	return now().UnixNano() + int64(levelIndex)*levelStride + int64(attempt)*attemptStride
}

// attempt runs one pass of the pipeline with its own random source.
func (g *LevelGenerator) attempt(ctx context.Context, cfg domain.DifficultyConfig, seed int64) (*domain.Level, error) {
	rng := rand.New(rand.NewSource(seed))

	blocks, err := g.Composer.Compose(rng, cfg)
	if err != nil {
		return nil, err
	}
	path, err := DesignPath(rng, blocks, cfg)
	if err != nil {
		return nil, err
	}
	occupied := mapset.New[domain.Cell]()
	for _, b := range blocks {
		for _, c := range b.Cells {
			occupied.Put(c)
		}
	}
	gears, err := PlaceGears(rng, path, occupied)
	if err != nil {
		return nil, err
	}
	kept, err := MarkGears(rng, blocks, path, cfg)
	if err != nil {
		return nil, err
	}
	m, err := BuildMap(rng, kept, gears, cfg)
	if err != nil {
		return nil, err
	}
	if err := g.Validator.Validate(ctx, kept, m); err != nil {
		return nil, err
	}
	return g.assemble(cfg, seed, kept, gears, m), nil
}

// assemble converts the validated attempt into external coordinates.
func (g *LevelGenerator) assemble(cfg domain.DifficultyConfig, seed int64, blocks []domain.BlockPlacement, gears *domain.GearPlacement, m *domain.MapData) *domain.Level {
	f := m.Frame
	spacing := g.Spacing
	if spacing <= 0 {
		spacing = DefaultSpacing
	}
	ext := func(orig domain.Cell) domain.Cell { return f.ToExternal(f.Internal(orig)) }
	point := func(orig domain.Cell) domain.GearPoint {
		in := f.Internal(orig)
		return domain.GearPoint{Pos: f.ToExternal(in), World: f.World(in, spacing)}
	}

	lvl := &domain.Level{
		ID:         LevelID(cfg.LevelIndex, seed),
		LevelIndex: cfg.LevelIndex,
		Tier:       cfg.Tier,
		Seed:       seed,
		Width:      f.Width,
		Height:     f.Height,
		Offset:     f.Offset,
		Spacing:    spacing,
		Cells:      m.Clone().Cells,
	}
	for _, b := range blocks {
		in := f.Internal(b.Center)
		lvl.Blocks = append(lvl.Blocks, domain.LevelBlock{
			Type:        b.Type,
			Rotation:    b.Rotation,
			Center:      f.ToExternal(in),
			World:       f.World(in, spacing),
			GearEnabled: b.GearEnabled,
		})
	}
	for _, c := range gears.Power {
		lvl.PowerGears = append(lvl.PowerGears, point(c))
	}
	for _, c := range gears.Targets {
		lvl.TargetGears = append(lvl.TargetGears, point(c))
	}
	for _, c := range m.Obstacles {
		lvl.Obstacles = append(lvl.Obstacles, ext(c))
	}
	for _, c := range m.Missing {
		lvl.MissingBins = append(lvl.MissingBins, ext(c))
	}
	return lvl
}

// LevelID names a level after its index and the seed that produced it.
func LevelID(levelIndex int, seed int64) string {
	return fmt.Sprintf("lvl-%03d-%016x", levelIndex, uint64(seed))
}

func stageOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrComposition):
		return "compose"
	case errors.Is(err, domain.ErrPath):
		return "path"
	case errors.Is(err, domain.ErrPlacement):
		return "place"
	case errors.Is(err, domain.ErrCoverageInvariant):
		return "mark"
	case errors.Is(err, domain.ErrValidation):
		return "validate"
	default:
		return "unknown"
	}
}

func (g *LevelGenerator) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
