package difficulty

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"sync/atomic"

	"gopkg.in/yaml.v3"

	"svw.info/gearworks/internal/domain"
)

var (
	ErrEmptyTable   = errors.New("difficulty: tier table is empty")
	ErrInvalidTier  = errors.New("difficulty: invalid tier")
	ErrTierCoverage = errors.New("difficulty: tiers must be contiguous from level 1")
)

// Table is an ordered step table of tiers.
type Table struct {
	Tiers []Tier `yaml:"tiers"`
}

// Default returns the built-in table.
func Default() *Table { return &Table{Tiers: DefaultTiers()} }

// Resolve maps a level index to its tier's config. Indices below the first
// tier use the first tier; indices past a bounded last tier use the last.
func (t *Table) Resolve(levelIndex int) domain.DifficultyConfig {
	idx := len(t.Tiers) - 1
	for i, tier := range t.Tiers {
		if levelIndex < tier.FromLevel {
			idx = max(i-1, 0)
			break
		}
		if tier.ToLevel == 0 || levelIndex <= tier.ToLevel {
			idx = i
			break
		}
	}
	cfg := t.Tiers[idx].Config
	cfg.Tier = idx + 1
	cfg.LevelIndex = levelIndex
	cfg.BlockTypes = slices.Clone(cfg.BlockTypes)
	if cfg.FixedSeed != nil {
		s := *cfg.FixedSeed
		cfg.FixedSeed = &s
	}
	return cfg
}

// Validate checks tier ordering and each config's internal consistency.
func (t *Table) Validate() error {
	if len(t.Tiers) == 0 {
		return ErrEmptyTable
	}
	next := 1
	for i, tier := range t.Tiers {
		if tier.FromLevel != next {
			return fmt.Errorf("%w: tier %d starts at %d, want %d", ErrTierCoverage, i+1, tier.FromLevel, next)
		}
		last := i == len(t.Tiers)-1
		if tier.ToLevel == 0 && !last {
			return fmt.Errorf("%w: tier %d is unbounded but not last", ErrInvalidTier, i+1)
		}
		if tier.ToLevel != 0 && tier.ToLevel < tier.FromLevel {
			return fmt.Errorf("%w: tier %d ends before it starts", ErrInvalidTier, i+1)
		}
		if err := CheckConfig(tier.Config); err != nil {
			return fmt.Errorf("tier %d: %w", i+1, err)
		}
		next = tier.ToLevel + 1
	}
	return nil
}

// CheckConfig rejects configs the generator cannot run with.
func CheckConfig(c domain.DifficultyConfig) error {
	switch {
	case c.MinBlocks < 1 || c.MaxBlocks < c.MinBlocks:
		return fmt.Errorf("%w: block count range [%d,%d]", ErrInvalidTier, c.MinBlocks, c.MaxBlocks)
	case c.MinPathLength < 2 || c.MaxPathLength < c.MinPathLength:
		return fmt.Errorf("%w: path length range [%d,%d]", ErrInvalidTier, c.MinPathLength, c.MaxPathLength)
	case c.MinEndpoints < 1 || c.MaxEndpoints < c.MinEndpoints:
		return fmt.Errorf("%w: endpoint range [%d,%d]", ErrInvalidTier, c.MinEndpoints, c.MaxEndpoints)
	case c.MinCoveredBlocks > c.MaxBlocks:
		return fmt.Errorf("%w: min covered blocks %d exceeds max blocks %d", ErrInvalidTier, c.MinCoveredBlocks, c.MaxBlocks)
	case c.MaxGridSize < c.MinGridSize:
		return fmt.Errorf("%w: grid size range [%d,%d]", ErrInvalidTier, c.MinGridSize, c.MaxGridSize)
	case len(c.BlockTypes) == 0:
		return fmt.Errorf("%w: no block types", ErrInvalidTier)
	case c.MaxGenerationAttempts < 1:
		return fmt.Errorf("%w: max generation attempts %d", ErrInvalidTier, c.MaxGenerationAttempts)
	}
	for _, r := range []float64{c.ExtraSlotRatio, c.MissingCellRatio, c.ObstacleRatio, c.OuterRimDensity, c.OuterRimCornerShare, c.OuterRimObstacleShare} {
		if r < 0 || r > 1 {
			return fmt.Errorf("%w: ratio %v outside [0,1]", ErrInvalidTier, r)
		}
	}
	for _, bt := range c.BlockTypes {
		if bt == domain.BlockSingle {
			return fmt.Errorf("%w: the single-cell block is reserved", ErrInvalidTier)
		}
	}
	return nil
}

// LoadTable reads and validates a YAML tier table.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("difficulty: read %s: %w", path, err)
	}
	return ParseTable(data)
}

// ParseTable decodes a YAML tier table. Omitted decoration shares fall back
// to the built-in defaults.
func ParseTable(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("difficulty: unmarshal: %w", err)
	}
	for i := range t.Tiers {
		c := &t.Tiers[i].Config
		if c.OuterRimCornerShare == 0 {
			c.OuterRimCornerShare = DefaultCornerShare
		}
		if c.OuterRimObstacleShare == 0 {
			c.OuterRimObstacleShare = DefaultRimObstacleShare
		}
		if c.MaxGenerationAttempts == 0 {
			c.MaxGenerationAttempts = DefaultMaxAttempts
		}
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Store holds the active table and may be swapped while readers resolve.
type Store struct {
	cur atomic.Pointer[Table]
}

func NewStore(t *Table) *Store {
	s := &Store{}
	s.cur.Store(t)
	return s
}

func (s *Store) Resolve(levelIndex int) domain.DifficultyConfig {
	return s.cur.Load().Resolve(levelIndex)
}

// Swap installs t and returns the previous table.
func (s *Store) Swap(t *Table) *Table { return s.cur.Swap(t) }

func (s *Store) Table() *Table { return s.cur.Load() }
