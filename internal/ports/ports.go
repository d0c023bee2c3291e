package ports

import (
	"context"
	"time"

	"svw.info/gearworks/internal/domain"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Attempts int
	Duration time.Duration
}

// ShapeTable maps a block type and rotation to its ordered slot offsets.
// The first offset is always the block centre (0,0).
type ShapeTable interface {
	RotatedSlotPositions(t domain.BlockType, rotation int) []domain.Cell
}

// DifficultyResolver turns a level index into its tuning.
type DifficultyResolver interface {
	Resolve(levelIndex int) domain.DifficultyConfig
}

// Generator creates validated levels. A nil seed means time-derived seeding.
type Generator interface {
	Generate(ctx context.Context, levelIndex int, seed *int64) (*domain.Level, Stats, error)
}

// LevelValidator rejects overlapping blocks and unreachable targets.
type LevelValidator interface {
	Validate(ctx context.Context, blocks []domain.BlockPlacement, m *domain.MapData) error
}

// Storage persists and retrieves levels as JSON.
type Storage interface {
	Save(ctx context.Context, l *domain.Level) error
	Load(ctx context.Context, id string) (*domain.Level, error)
	List(ctx context.Context) ([]domain.LevelMeta, error)
}
