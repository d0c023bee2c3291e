package generator

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"svw.info/gearworks/internal/domain"
)

// BuildMap lays the kept blocks and gears on a padded grid and decorates the
// remaining empty cells.
func BuildMap(rng *rand.Rand, blocks []domain.BlockPlacement, gears *domain.GearPlacement, cfg domain.DifficultyConfig) (*domain.MapData, error) {
	var required, enabled []domain.Cell
	for _, b := range blocks {
		for j, c := range b.Cells {
			required = append(required, c)
			if j < domain.MaxSlots && b.GearEnabled[j] {
				enabled = append(enabled, c)
			}
		}
	}
	required = append(required, gears.Power...)
	required = append(required, gears.Targets...)

	box, ok := domain.BoundsOf(required)
	if !ok {
		return nil, fmt.Errorf("%w: nothing to lay out", domain.ErrValidation)
	}
	frame := domain.NewFrame(box)
	m := &domain.MapData{
		Frame:    frame,
		Cells:    make([][]domain.CellType, frame.Height),
		Required: required,
		Gears:    enabled,
	}
	for y := range m.Cells {
		m.Cells[y] = make([]domain.CellType, frame.Width)
	}

	for _, b := range blocks {
		for _, c := range b.Cells {
			m.Set(frame.Internal(c), domain.Normal)
		}
	}
	for _, c := range gears.Power {
		m.Set(frame.Internal(c), domain.PowerGear)
	}
	for _, c := range gears.Targets {
		m.Set(frame.Internal(c), domain.TargetGear)
	}

	decorateInner(rng, m, cfg)
	decorateRim(rng, m, cfg)

	for _, c := range m.Find(domain.Obstacle) {
		m.Obstacles = append(m.Obstacles, frame.Original(c))
	}
	for _, c := range m.Find(domain.Empty) {
		m.Missing = append(m.Missing, frame.Original(c))
	}
	return m, nil
}

// decorateInner fills empty non-rim cells that touch content with a grown,
// contiguous patch of decoy slots and obstacles.
func decorateInner(rng *rand.Rand, m *domain.MapData, cfg domain.DifficultyConfig) {
	cands := candidates(m, false, domain.CellType.IsContent)
	n := len(cands)
	if n == 0 {
		return
	}
	extra := roundCount(n, cfg.ExtraSlotRatio)
	obstacles := roundCount(n, cfg.ObstacleRatio)
	reserved := roundCount(n, cfg.MissingCellRatio)
	total := min(extra+obstacles, n-reserved)
	if total <= 0 {
		return
	}

	picked := growSelection(rng, cands, total)
	rng.Shuffle(len(picked), func(i, j int) { picked[i], picked[j] = picked[j], picked[i] })
	for i, c := range picked {
		if i < extra {
			m.Set(c, domain.Normal)
		} else {
			m.Set(c, domain.Obstacle)
		}
	}
}

// decorateRim sparsely fills the outermost ring next to slot content,
// favouring cells near the grid corners.
func decorateRim(rng *rand.Rand, m *domain.MapData, cfg domain.DifficultyConfig) {
	cands := candidates(m, true, domain.CellType.IsSlotContent)
	keep := roundCount(len(cands), cfg.OuterRimDensity)
	if keep == 0 {
		return
	}

	var corners, rest []domain.Cell
	for _, c := range cands {
		if nearCorner(m.Frame, c) {
			corners = append(corners, c)
		} else {
			rest = append(rest, c)
		}
	}
	rng.Shuffle(len(corners), func(i, j int) { corners[i], corners[j] = corners[j], corners[i] })
	rng.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })

	quota := min(roundCount(keep, cfg.OuterRimCornerShare), len(corners))
	kept := append([]domain.Cell{}, corners[:quota]...)
	pool := append(append([]domain.Cell{}, corners[quota:]...), rest...)
	for _, c := range pool {
		if len(kept) >= keep {
			break
		}
		kept = append(kept, c)
	}

	rng.Shuffle(len(kept), func(i, j int) { kept[i], kept[j] = kept[j], kept[i] })
	obstacles := roundCount(len(kept), cfg.OuterRimObstacleShare)
	for i, c := range kept {
		if i < obstacles {
			m.Set(c, domain.Obstacle)
		} else {
			m.Set(c, domain.Normal)
		}
	}
}

// candidates lists, in row-major order, the empty cells of the rim (or of the
// interior) that are 4-adjacent to a cell satisfying touches.
func candidates(m *domain.MapData, rim bool, touches func(domain.CellType) bool) []domain.Cell {
	var out []domain.Cell
	for y := 0; y < m.Frame.Height; y++ {
		for x := 0; x < m.Frame.Width; x++ {
			c := domain.Cell{X: x, Y: y}
			if m.Frame.OnRim(c) != rim || m.At(c) != domain.Empty {
				continue
			}
			for _, n := range c.Neighbors() {
				if m.Frame.InBounds(n) && touches(m.At(n)) {
					out = append(out, c)
					break
				}
			}
		}
	}
	return out
}

// growSelection picks want cells from cands, starting at a random one and
// preferring cells adjacent to the current selection.
func growSelection(rng *rand.Rand, cands []domain.Cell, want int) []domain.Cell {
	selected := mapset.New[domain.Cell]()
	picked := make([]domain.Cell, 0, want)
	take := func(c domain.Cell) {
		selected.Put(c)
		picked = append(picked, c)
	}
	take(cands[rng.Intn(len(cands))])

	for len(picked) < want {
		var frontier, other []domain.Cell
		for _, c := range cands {
			if selected.Has(c) {
				continue
			}
			if touchesAny(c, selected) {
				frontier = append(frontier, c)
			} else {
				other = append(other, c)
			}
		}
		switch {
		case len(frontier) > 0:
			take(frontier[rng.Intn(len(frontier))])
		case len(other) > 0:
			take(other[rng.Intn(len(other))])
		default:
			return picked
		}
	}
	return picked
}

func touchesAny(c domain.Cell, set mapset.Set[domain.Cell]) bool {
	for _, n := range c.Neighbors() {
		if set.Has(n) {
			return true
		}
	}
	return false
}

// nearCorner reports whether an internal cell is within one step of a grid corner.
func nearCorner(f domain.Frame, c domain.Cell) bool {
	corners := [4]domain.Cell{
		{X: 0, Y: 0},
		{X: f.Width - 1, Y: 0},
		{X: 0, Y: f.Height - 1},
		{X: f.Width - 1, Y: f.Height - 1},
	}
	for _, k := range corners {
		if c.Manhattan(k) <= 1 {
			return true
		}
	}
	return false
}

func roundCount(n int, ratio float64) int {
	return int(math.Round(float64(n) * ratio))
}
