package generator

import (
	"fmt"
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"svw.info/gearworks/internal/domain"
)

// MarkGears enables the slots that lie on the path and drops blocks with none.
// With cfg.DistractorBlock one uncovered block survives with a single random
// slot enabled. Blocks are updated in place; the kept ones are returned in
// their original order.
func MarkGears(rng *rand.Rand, blocks []domain.BlockPlacement, path *domain.PathData, cfg domain.DifficultyConfig) ([]domain.BlockPlacement, error) {
	onPath := mapset.New[domain.Cell]()
	for _, c := range path.Cells {
		onPath.Put(c)
	}

	keep := make([]bool, len(blocks))
	var uncovered []int
	for i := range blocks {
		b := &blocks[i]
		b.GearEnabled = [domain.MaxSlots]bool{}
		for j, c := range b.Cells {
			if j < domain.MaxSlots && onPath.Has(c) {
				b.GearEnabled[j] = true
				keep[i] = true
			}
		}
		if !keep[i] {
			uncovered = append(uncovered, i)
		}
	}

	if cfg.DistractorBlock && len(uncovered) > 0 {
		i := uncovered[rng.Intn(len(uncovered))]
		if slots := min(len(blocks[i].Cells), domain.MaxSlots); slots > 0 {
			blocks[i].GearEnabled[rng.Intn(slots)] = true
			keep[i] = true
		}
	}

	kept := make([]domain.BlockPlacement, 0, len(blocks))
	for i, b := range blocks {
		if keep[i] {
			kept = append(kept, b)
		}
	}
	for i := range kept {
		if kept[i].EnabledCount() == 0 {
			return nil, fmt.Errorf("%w: %v block at %v", domain.ErrCoverageInvariant, kept[i].Type, kept[i].Center)
		}
	}
	return kept, nil
}
