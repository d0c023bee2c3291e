// Package shape holds the static block shape table.
package shape

import "svw.info/gearworks/internal/domain"

// base offsets at rotation 0; the centre comes first.
var base = map[domain.BlockType][]domain.Cell{
	domain.BlockSingle: {{X: 0, Y: 0}},
	domain.BlockI:      {{X: 0, Y: 0}, {X: -1, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}},
	domain.BlockO:      {{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
	domain.BlockT:      {{X: 0, Y: 0}, {X: -1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}},
	domain.BlockL:      {{X: 0, Y: 0}, {X: 0, Y: -1}, {X: 0, Y: 1}, {X: 1, Y: 1}},
	domain.BlockZ:      {{X: 0, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
}

// Weights is the relative draw weight of each composable shape.
var Weights = map[domain.BlockType]int{
	domain.BlockI: 25,
	domain.BlockO: 20,
	domain.BlockT: 15,
	domain.BlockL: 25,
	domain.BlockZ: 15,
}

// Table is the default ShapeTable.
type Table struct {
	rotated map[domain.BlockType][4][]domain.Cell
}

// New precomputes all four rotations of every shape.
func New() *Table {
	t := &Table{rotated: make(map[domain.BlockType][4][]domain.Cell, len(base))}
	for bt, offs := range base {
		var rots [4][]domain.Cell
		cur := offs
		for i := range rots {
			rots[i] = cur
			cur = rotate90(cur)
		}
		t.rotated[bt] = rots
	}
	return t
}

// RotatedSlotPositions returns the offsets of bt rotated clockwise by
// rotation degrees. Unknown types yield nil; the angle is normalised to a
// multiple of 90.
func (t *Table) RotatedSlotPositions(bt domain.BlockType, rotation int) []domain.Cell {
	rots, ok := t.rotated[bt]
	if !ok {
		return nil
	}
	idx := ((rotation/90)%4 + 4) % 4
	out := make([]domain.Cell, len(rots[idx]))
	copy(out, rots[idx])
	return out
}

// rotate90 turns offsets a quarter turn in screen space (y grows downward).
func rotate90(in []domain.Cell) []domain.Cell {
	out := make([]domain.Cell, len(in))
	for i, c := range in {
		out[i] = domain.Cell{X: -c.Y, Y: c.X}
	}
	return out
}
