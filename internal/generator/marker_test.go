package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/gearworks/internal/domain"
)

func TestMarkGearsFollowsPath(t *testing.T) {
	blocks := []domain.BlockPlacement{hline(0, 0), hline(4, 0), hline(0, 2)}
	path := &domain.PathData{Cells: []domain.Cell{{X: 2, Y: 0}, {X: 3, Y: 0}, {X: 4, Y: 0}}}
	cfg := tutorial()
	cfg.DistractorBlock = false

	kept, err := MarkGears(newRNG(1), blocks, path, cfg)
	require.NoError(t, err)
	require.Len(t, kept, 2)

	// hline cells are ordered x0+1, x0, x0+2, x0+3
	assert.Equal(t, [4]bool{false, false, true, true}, kept[0].GearEnabled)
	assert.Equal(t, [4]bool{false, true, false, false}, kept[1].GearEnabled)
	for _, b := range kept {
		assert.Positive(t, b.EnabledCount())
	}
}

func TestMarkGearsKeepsOneDistractor(t *testing.T) {
	blocks := []domain.BlockPlacement{hline(0, 0), hline(0, 2), hline(0, 4)}
	path := &domain.PathData{Cells: []domain.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}}}
	cfg := tutorial()
	cfg.DistractorBlock = true

	kept, err := MarkGears(newRNG(7), blocks, path, cfg)
	require.NoError(t, err)
	require.Len(t, kept, 2)
	assert.Equal(t, 2, kept[0].EnabledCount())
	assert.Equal(t, 1, kept[1].EnabledCount(), "distractor carries exactly one gear")
	assert.NotEqual(t, blocks[0].Center, kept[1].Center)
}

func TestMarkGearsResetsFlags(t *testing.T) {
	b := hline(0, 0)
	b.GearEnabled = [4]bool{true, true, true, true}
	path := &domain.PathData{Cells: []domain.Cell{{X: 0, Y: 0}}}
	cfg := tutorial()

	kept, err := MarkGears(newRNG(1), []domain.BlockPlacement{b}, path, cfg)
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, [4]bool{false, true, false, false}, kept[0].GearEnabled)
}
