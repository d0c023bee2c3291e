package generator

import (
	"fmt"
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"svw.info/gearworks/internal/domain"
	"svw.info/gearworks/internal/ports"
	"svw.info/gearworks/internal/shape"
)

const (
	composeAttempts       = 20
	disconnectedChance    = 0.3
	disconnectedSamples   = 10
	disconnectedBoxGrowth = 3
)

// Composer picks block types and lays them out without overlap.
type Composer struct {
	Shapes  ports.ShapeTable
	Weights map[domain.BlockType]int
}

// NewComposer wires a composer over the given shape table and the default weights.
func NewComposer(s ports.ShapeTable) *Composer {
	return &Composer{Shapes: s, Weights: shape.Weights}
}

// Compose returns a non-overlapping block set, connected unless the config
// allows disconnected blocks.
func (c *Composer) Compose(rng *rand.Rand, cfg domain.DifficultyConfig) ([]domain.BlockPlacement, error) {
	var last error
	for i := 0; i < composeAttempts; i++ {
		blocks, err := c.composeOnce(rng, cfg)
		if err == nil {
			return blocks, nil
		}
		last = err
	}
	return nil, last
}

func (c *Composer) composeOnce(rng *rand.Rand, cfg domain.DifficultyConfig) ([]domain.BlockPlacement, error) {
	count := cfg.MinBlocks
	if cfg.MaxBlocks > cfg.MinBlocks {
		count += rng.Intn(cfg.MaxBlocks - cfg.MinBlocks + 1)
	}
	types, err := c.pickTypes(rng, count, cfg.BlockTypes)
	if err != nil {
		return nil, err
	}

	occupied := mapset.New[domain.Cell]()
	var covered []domain.Cell
	blocks := make([]domain.BlockPlacement, 0, count)
	add := func(b domain.BlockPlacement) {
		blocks = append(blocks, b)
		for _, cell := range b.Cells {
			occupied.Put(cell)
			covered = append(covered, cell)
		}
	}

	add(c.place(types[0], domain.Cell{}, domain.Rotations[rng.Intn(len(domain.Rotations))]))

	for i := 1; i < len(types); i++ {
		var (
			b  domain.BlockPlacement
			ok bool
		)
		if cfg.AllowDisconnectedBlocks && rng.Float64() < disconnectedChance {
			b, ok = c.placeDisconnected(rng, types[i], covered, occupied)
		}
		if !ok {
			b, ok = c.placeAdjacent(rng, types[i], covered, occupied)
		}
		if !ok {
			return nil, fmt.Errorf("%w: block %d (%v) has no free placement", domain.ErrComposition, i, types[i])
		}
		add(b)
	}

	if cfg.MaxGridSize > 0 {
		box, _ := domain.BoundsOf(covered)
		if box.Width() > cfg.MaxGridSize || box.Height() > cfg.MaxGridSize {
			return nil, fmt.Errorf("%w: footprint %dx%d exceeds grid size %d", domain.ErrComposition, box.Width(), box.Height(), cfg.MaxGridSize)
		}
	}
	if !cfg.AllowDisconnectedBlocks && !blocksConnected(blocks) {
		return nil, fmt.Errorf("%w: blocks are not connected", domain.ErrComposition)
	}
	return blocks, nil
}

// pickTypes draws n types by weight from the allowed subset.
func (c *Composer) pickTypes(rng *rand.Rand, n int, allowed []domain.BlockType) ([]domain.BlockType, error) {
	total := 0
	for _, t := range allowed {
		total += c.Weights[t]
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w: no weighted block types available", domain.ErrComposition)
	}
	out := make([]domain.BlockType, n)
	for i := range out {
		roll := rng.Intn(total)
		for _, t := range allowed {
			roll -= c.Weights[t]
			if roll < 0 {
				out[i] = t
				break
			}
		}
	}
	return out, nil
}

func (c *Composer) place(t domain.BlockType, center domain.Cell, rot int) domain.BlockPlacement {
	offs := c.Shapes.RotatedSlotPositions(t, rot)
	cells := make([]domain.Cell, len(offs))
	for i, o := range offs {
		cells[i] = center.Add(o)
	}
	return domain.BlockPlacement{Type: t, Center: center, Rotation: rot, Cells: cells}
}

func (c *Composer) placeDisconnected(rng *rand.Rand, t domain.BlockType, covered []domain.Cell, occupied mapset.Set[domain.Cell]) (domain.BlockPlacement, bool) {
	box, _ := domain.BoundsOf(covered)
	box = box.Expand(disconnectedBoxGrowth)
	for i := 0; i < disconnectedSamples; i++ {
		center := domain.Cell{
			X: box.Min.X + rng.Intn(box.Width()),
			Y: box.Min.Y + rng.Intn(box.Height()),
		}
		b := c.place(t, center, domain.Rotations[rng.Intn(len(domain.Rotations))])
		if isolated(b.Cells, occupied) {
			return b, true
		}
	}
	return domain.BlockPlacement{}, false
}

func (c *Composer) placeAdjacent(rng *rand.Rand, t domain.BlockType, covered []domain.Cell, occupied mapset.Set[domain.Cell]) (domain.BlockPlacement, bool) {
	seen := mapset.New[domain.Cell]()
	var candidates []domain.Cell
	for _, cell := range covered {
		for _, n := range cell.Neighbors() {
			if occupied.Has(n) || seen.Has(n) {
				continue
			}
			seen.Put(n)
			candidates = append(candidates, n)
		}
	}
	rng.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })

	rots := domain.Rotations
	for _, center := range candidates {
		rng.Shuffle(len(rots), func(i, j int) { rots[i], rots[j] = rots[j], rots[i] })
		for _, rot := range rots {
			b := c.place(t, center, rot)
			if !overlaps(b.Cells, occupied) {
				return b, true
			}
		}
	}
	return domain.BlockPlacement{}, false
}

func overlaps(cells []domain.Cell, occupied mapset.Set[domain.Cell]) bool {
	for _, cell := range cells {
		if occupied.Has(cell) {
			return true
		}
	}
	return false
}

// isolated reports that no cell overlaps or touches an occupied cell.
func isolated(cells []domain.Cell, occupied mapset.Set[domain.Cell]) bool {
	for _, cell := range cells {
		if occupied.Has(cell) {
			return false
		}
		for _, n := range cell.Neighbors() {
			if occupied.Has(n) {
				return false
			}
		}
	}
	return true
}

// blocksConnected runs a BFS over blocks, two blocks being linked when any of
// their cells are 4-adjacent.
func blocksConnected(blocks []domain.BlockPlacement) bool {
	if len(blocks) <= 1 {
		return true
	}
	owner := make(map[domain.Cell]int)
	for i, b := range blocks {
		for _, cell := range b.Cells {
			owner[cell] = i
		}
	}
	visited := make([]bool, len(blocks))
	visited[0] = true
	queue := []int{0}
	reached := 1
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, cell := range blocks[cur].Cells {
			for _, n := range cell.Neighbors() {
				j, ok := owner[n]
				if !ok || visited[j] {
					continue
				}
				visited[j] = true
				reached++
				queue = append(queue, j)
			}
		}
	}
	return reached == len(blocks)
}
