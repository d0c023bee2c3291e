package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/gearworks/internal/domain"
)

func checkPath(t *testing.T, p *domain.PathData, blocks []domain.BlockPlacement, cfg domain.DifficultyConfig) {
	t.Helper()
	footprint := map[domain.Cell]bool{}
	for _, b := range blocks {
		for _, c := range b.Cells {
			footprint[c] = true
		}
	}
	onPath := cellSet(p.Cells)
	assert.Len(t, onPath, len(p.Cells), "path revisits a cell")
	for _, c := range p.Cells {
		assert.True(t, footprint[c], "path leaves the footprint at %v", c)
	}
	assert.Equal(t, p.Start, p.Cells[0])
	assert.NotContains(t, p.Endpoints, p.Start)
	for _, e := range p.Endpoints {
		assert.True(t, onPath[e], "endpoint %v off path", e)
	}
	assert.GreaterOrEqual(t, len(p.Cells), cfg.MinPathLength)
	assert.GreaterOrEqual(t, len(p.Endpoints), max(1, cfg.MinEndpoints-1))
	assert.LessOrEqual(t, len(p.Endpoints), max(1, cfg.MaxEndpoints-1))
	assert.GreaterOrEqual(t, p.CoveredBlockCount, cfg.MinCoveredBlocks)
	assert.True(t, cellsConnected(p.Cells))
}

func TestDesignPathOnComposedBlocks(t *testing.T) {
	c := NewComposer(testShapes)
	cfg := tutorial()
	found := 0
	for seed := int64(1); seed <= 20; seed++ {
		rng := newRNG(seed)
		blocks, err := c.Compose(rng, cfg)
		if err != nil {
			continue
		}
		p, err := DesignPath(rng, blocks, cfg)
		if err != nil {
			assert.ErrorIs(t, err, domain.ErrPath)
			continue
		}
		found++
		checkPath(t, p, blocks, cfg)
	}
	assert.Greater(t, found, 10)
}

// Two I blocks side by side: a length-4 path only covers both blocks when it
// crosses the seam between x=3 and x=4.
func TestDesignPathMustCrossIntoSecondBlock(t *testing.T) {
	blocks := []domain.BlockPlacement{hline(0, 0), hline(4, 0)}
	cfg := tutorial()
	cfg.MinPathLength, cfg.MaxPathLength = 4, 4
	cfg.MinCoveredBlocks = 2

	found := 0
	for seed := int64(0); seed < 20; seed++ {
		p, err := DesignPath(newRNG(seed), blocks, cfg)
		if err != nil {
			assert.ErrorIs(t, err, domain.ErrPath)
			continue
		}
		found++
		checkPath(t, p, blocks, cfg)
		left, right := false, false
		for _, c := range p.Cells {
			left = left || c.X <= 3
			right = right || c.X >= 4
		}
		assert.True(t, left && right, "seed %d: path %v stays in one block", seed, p.Cells)
	}
	assert.Positive(t, found)
}

func TestDesignPathUnreachableCoverage(t *testing.T) {
	blocks := []domain.BlockPlacement{hline(0, 0), hline(4, 0)}
	cfg := tutorial()
	cfg.MinPathLength, cfg.MaxPathLength = 3, 3
	cfg.MinCoveredBlocks = 3

	_, err := DesignPath(newRNG(9), blocks, cfg)
	assert.ErrorIs(t, err, domain.ErrPath)
}

func TestDesignPathBackfillsEndpoints(t *testing.T) {
	// a 2x4 slab, every cell on the footprint edge
	blocks := []domain.BlockPlacement{hline(0, 0), hline(0, 1)}
	cfg := tutorial()
	cfg.MinPathLength, cfg.MaxPathLength = 6, 6
	cfg.MinCoveredBlocks = 2
	cfg.MinEndpoints, cfg.MaxEndpoints = 4, 4

	p, err := DesignPath(newRNG(4), blocks, cfg)
	require.NoError(t, err)
	checkPath(t, p, blocks, cfg)
	assert.Len(t, p.Endpoints, 3)
}

func TestDesignPathDownsamplesEndpoints(t *testing.T) {
	blocks := []domain.BlockPlacement{hline(0, 0), hline(0, 1)}
	cfg := tutorial()
	cfg.MinPathLength, cfg.MaxPathLength = 5, 8
	cfg.MinCoveredBlocks = 1
	cfg.MinEndpoints, cfg.MaxEndpoints = 1, 1
	cfg.AllowBranching = true

	for seed := int64(0); seed < 10; seed++ {
		p, err := DesignPath(newRNG(seed), blocks, cfg)
		require.NoError(t, err)
		checkPath(t, p, blocks, cfg)
		assert.Len(t, p.Endpoints, 1)
	}
}

func TestDesignPathIsDeterministic(t *testing.T) {
	blocks := []domain.BlockPlacement{hline(0, 0), hline(4, 0), hline(2, 1)}
	cfg := tutorial()
	a, errA := DesignPath(newRNG(42), blocks, cfg)
	b, errB := DesignPath(newRNG(42), blocks, cfg)
	assert.Equal(t, errA, errB)
	assert.Equal(t, a, b)
}

func TestCellsConnected(t *testing.T) {
	assert.True(t, cellsConnected([]domain.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}))
	assert.False(t, cellsConnected([]domain.Cell{{X: 0, Y: 0}, {X: 1, Y: 1}}))
	assert.False(t, cellsConnected(nil))
}
