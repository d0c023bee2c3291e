package usecase

import (
	"context"
	"errors"
	"time"

	"svw.info/gearworks/internal/domain"
	"svw.info/gearworks/internal/ports"
)

type Service struct {
	Generator  ports.Generator
	Difficulty ports.DifficultyResolver
	Storage    ports.Storage
	Now        func() time.Time
}

func NewService(g ports.Generator, d ports.DifficultyResolver, st ports.Storage) *Service {
	return &Service{Generator: g, Difficulty: d, Storage: st, Now: time.Now}
}

var errNotConfigured = errors.New("usecase dependency not configured")

func (u *Service) Generate(ctx context.Context, levelIndex int, seed *int64) (*domain.Level, ports.Stats, error) {
	if u.Generator == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	return u.Generator.Generate(ctx, levelIndex, seed)
}

func (u *Service) Resolve(levelIndex int) (domain.DifficultyConfig, error) {
	if u.Difficulty == nil {
		return domain.DifficultyConfig{}, errNotConfigured
	}
	return u.Difficulty.Resolve(levelIndex), nil
}

// BatchItem is the outcome for one level index of a batch.
type BatchItem struct {
	LevelIndex int
	Level      *domain.Level
	Stats      ports.Stats
	Err        error
}

// Batch generates levels from..to inclusive, one after another. A fixed seed
// is offset by the level index so each level gets its own stream. Exhausted
// levels are reported per item and do not stop the batch; only context
// cancellation does.
func (u *Service) Batch(ctx context.Context, from, to int, seed *int64) ([]BatchItem, error) {
	if u.Generator == nil {
		return nil, errNotConfigured
	}
	if to < from {
		return nil, nil
	}
	out := make([]BatchItem, 0, to-from+1)
	for idx := from; idx <= to; idx++ {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		var s *int64
		if seed != nil {
			v := *seed + int64(idx)
			s = &v
		}
		lvl, st, err := u.Generator.Generate(ctx, idx, s)
		if err != nil && ctx.Err() != nil {
			return out, ctx.Err()
		}
		out = append(out, BatchItem{LevelIndex: idx, Level: lvl, Stats: st, Err: err})
	}
	return out, nil
}

// Persistence
func (u *Service) Save(ctx context.Context, l *domain.Level) error {
	if u.Storage == nil {
		return errNotConfigured
	}
	if l != nil && l.CreatedAt == 0 && u.Now != nil {
		l.CreatedAt = u.Now().UnixNano()
	}
	return u.Storage.Save(ctx, l)
}
func (u *Service) Load(ctx context.Context, id string) (*domain.Level, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.Load(ctx, id)
}
func (u *Service) List(ctx context.Context) ([]domain.LevelMeta, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.List(ctx)
}
