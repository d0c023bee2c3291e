package difficulty

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/gearworks/internal/domain"
)

func TestDefaultTableIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestResolveTierBoundaries(t *testing.T) {
	tbl := Default()
	cases := []struct {
		level int
		tier  int
	}{
		{-3, 1}, {0, 1}, {1, 1}, {10, 1},
		{11, 2}, {20, 2},
		{21, 3}, {30, 3},
		{31, 4}, {40, 4},
		{41, 5}, {50, 5},
		{51, 6}, {500, 6},
	}
	for _, tc := range cases {
		cfg := tbl.Resolve(tc.level)
		assert.Equal(t, tc.tier, cfg.Tier, "level %d", tc.level)
		assert.Equal(t, tc.level, cfg.LevelIndex)
	}
}

func TestTutorialTier(t *testing.T) {
	cfg := Default().Resolve(5)
	assert.Equal(t, 5, cfg.MinGridSize)
	assert.Equal(t, 6, cfg.MaxGridSize)
	assert.Equal(t, 2, cfg.MinBlocks)
	assert.Equal(t, 3, cfg.MaxBlocks)
	assert.Equal(t, 3, cfg.MinPathLength)
	assert.Equal(t, 5, cfg.MaxPathLength)
	assert.Equal(t, 2, cfg.MinEndpoints)
	assert.Equal(t, 2, cfg.MaxEndpoints)
	assert.False(t, cfg.AllowBranching)
	assert.False(t, cfg.AllowDisconnectedBlocks)
}

func TestResolveReturnsIndependentCopies(t *testing.T) {
	tbl := Default()
	a := tbl.Resolve(45)
	a.BlockTypes[0] = domain.BlockSingle
	b := tbl.Resolve(45)
	assert.NotEqual(t, domain.BlockSingle, b.BlockTypes[0])
}

func TestBlockTypesWidenWithTier(t *testing.T) {
	tbl := Default()
	prev := 0
	for _, lvl := range []int{1, 11, 21, 31} {
		n := len(tbl.Resolve(lvl).BlockTypes)
		assert.Greater(t, n, prev, "level %d", lvl)
		prev = n
	}
}

const sampleYAML = `
tiers:
  - from_level: 1
    to_level: 5
    config:
      min_grid_size: 4
      max_grid_size: 6
      min_blocks: 2
      max_blocks: 2
      block_types: [I, O]
      min_path_length: 3
      max_path_length: 4
      min_covered_blocks: 2
      min_endpoints: 2
      max_endpoints: 2
      extra_slot_ratio: 0.1
      obstacle_ratio: 0.1
      outer_rim_density: 0.2
      fixed_seed: 77
  - from_level: 6
    config:
      min_grid_size: 6
      max_grid_size: 9
      min_blocks: 3
      max_blocks: 5
      block_types: [I, O, L, T, Z]
      min_path_length: 5
      max_path_length: 8
      min_covered_blocks: 2
      min_endpoints: 2
      max_endpoints: 3
      distractor_block: true
      max_generation_attempts: 25
`

func TestParseTable(t *testing.T) {
	tbl, err := ParseTable([]byte(sampleYAML))
	require.NoError(t, err)
	require.Len(t, tbl.Tiers, 2)

	first := tbl.Resolve(3)
	assert.Equal(t, []domain.BlockType{domain.BlockI, domain.BlockO}, first.BlockTypes)
	require.NotNil(t, first.FixedSeed)
	assert.Equal(t, int64(77), *first.FixedSeed)
	assert.Equal(t, DefaultCornerShare, first.OuterRimCornerShare)
	assert.Equal(t, DefaultRimObstacleShare, first.OuterRimObstacleShare)
	assert.Equal(t, DefaultMaxAttempts, first.MaxGenerationAttempts)

	second := tbl.Resolve(99)
	assert.Equal(t, 2, second.Tier)
	assert.True(t, second.DistractorBlock)
	assert.Equal(t, 25, second.MaxGenerationAttempts)
	assert.Len(t, second.BlockTypes, 5)
}

func TestLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))
	tbl, err := LoadTable(path)
	require.NoError(t, err)
	assert.Len(t, tbl.Tiers, 2)

	_, err = LoadTable(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidateRejects(t *testing.T) {
	good := DefaultTiers()[0].Config

	cases := []struct {
		name  string
		tiers []Tier
		want  error
	}{
		{"empty", nil, ErrEmptyTable},
		{"gap", []Tier{{FromLevel: 1, ToLevel: 5, Config: good}, {FromLevel: 7, Config: good}}, ErrTierCoverage},
		{"not from one", []Tier{{FromLevel: 2, Config: good}}, ErrTierCoverage},
		{"unbounded middle", []Tier{{FromLevel: 1, Config: good}, {FromLevel: 1, Config: good}}, ErrInvalidTier},
		{"bad blocks", []Tier{{FromLevel: 1, Config: func() domain.DifficultyConfig {
			c := good
			c.MaxBlocks = 1
			return c
		}()}}, ErrInvalidTier},
		{"bad ratio", []Tier{{FromLevel: 1, Config: func() domain.DifficultyConfig {
			c := good
			c.ObstacleRatio = 1.5
			return c
		}()}}, ErrInvalidTier},
		{"reserved shape", []Tier{{FromLevel: 1, Config: func() domain.DifficultyConfig {
			c := good
			c.BlockTypes = []domain.BlockType{domain.BlockSingle}
			return c
		}()}}, ErrInvalidTier},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := (&Table{Tiers: tc.tiers}).Validate()
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestStoreSwap(t *testing.T) {
	s := NewStore(Default())
	assert.Equal(t, 6, s.Resolve(80).Tier)

	tbl, err := ParseTable([]byte(sampleYAML))
	require.NoError(t, err)
	old := s.Swap(tbl)
	assert.Len(t, old.Tiers, 6)
	assert.Equal(t, 2, s.Resolve(80).Tier)
	assert.Same(t, tbl, s.Table())
}
