package domain

// Cell is an integer grid coordinate.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Directions in the fixed N, E, S, W order used by every neighbour scan.
var Directions = [4]Cell{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

func (c Cell) Add(d Cell) Cell { return Cell{X: c.X + d.X, Y: c.Y + d.Y} }

func (c Cell) Sub(d Cell) Cell { return Cell{X: c.X - d.X, Y: c.Y - d.Y} }

// Neighbors returns the four orthogonal neighbours.
func (c Cell) Neighbors() [4]Cell {
	var out [4]Cell
	for i, d := range Directions {
		out[i] = c.Add(d)
	}
	return out
}

func (c Cell) Manhattan(o Cell) int {
	return abs(c.X-o.X) + abs(c.Y-o.Y)
}

// Adjacent reports 4-directional adjacency.
func (c Cell) Adjacent(o Cell) bool { return c.Manhattan(o) == 1 }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Bounds is an inclusive axis-aligned box over cells.
type Bounds struct {
	Min Cell
	Max Cell
}

// BoundsOf returns the bounding box of cells; ok is false for an empty input.
func BoundsOf(cells []Cell) (b Bounds, ok bool) {
	if len(cells) == 0 {
		return Bounds{}, false
	}
	b = Bounds{Min: cells[0], Max: cells[0]}
	for _, c := range cells[1:] {
		b.Min.X = min(b.Min.X, c.X)
		b.Min.Y = min(b.Min.Y, c.Y)
		b.Max.X = max(b.Max.X, c.X)
		b.Max.Y = max(b.Max.Y, c.Y)
	}
	return b, true
}

func (b Bounds) Width() int  { return b.Max.X - b.Min.X + 1 }
func (b Bounds) Height() int { return b.Max.Y - b.Min.Y + 1 }

// Expand grows the box by n cells on every side.
func (b Bounds) Expand(n int) Bounds {
	return Bounds{
		Min: Cell{X: b.Min.X - n, Y: b.Min.Y - n},
		Max: Cell{X: b.Max.X + n, Y: b.Max.Y + n},
	}
}
