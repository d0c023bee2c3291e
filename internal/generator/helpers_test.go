package generator

import (
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"svw.info/gearworks/internal/difficulty"
	"svw.info/gearworks/internal/domain"
	"svw.info/gearworks/internal/shape"
)

func newRNG(seed int64) *rand.Rand { return rand.New(rand.NewSource(seed)) }

func tutorial() domain.DifficultyConfig { return difficulty.Default().Resolve(5) }

// hline builds an I block lying along y from x0 to x0+3.
func hline(x0, y int) domain.BlockPlacement {
	cells := []domain.Cell{{X: x0 + 1, Y: y}, {X: x0, Y: y}, {X: x0 + 2, Y: y}, {X: x0 + 3, Y: y}}
	return domain.BlockPlacement{Type: domain.BlockI, Center: cells[0], Cells: cells}
}

func cellSet(cells []domain.Cell) map[domain.Cell]bool {
	out := make(map[domain.Cell]bool, len(cells))
	for _, c := range cells {
		out[c] = true
	}
	return out
}

var testShapes = shape.New()

func toSet(cells []domain.Cell) mapset.Set[domain.Cell] {
	s := mapset.New[domain.Cell]()
	for _, c := range cells {
		s.Put(c)
	}
	return s
}
