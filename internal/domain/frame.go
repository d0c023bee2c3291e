package domain

// Padding is the number of empty cells added around the required cells.
const Padding = 1

// Vec2 is a world-space position.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Frame maps between the three coordinate spaces of a level:
//
//   - original: the generator's working coordinates (first block at 0,0)
//   - internal: 0-based indices into the dense grid
//   - external: 1-based serialized coordinates
//
// Offset is added to an original cell to obtain its internal index.
type Frame struct {
	Offset Cell `json:"offset"`
	Width  int  `json:"width"`
	Height int  `json:"height"`
}

// NewFrame sizes a frame around b with Padding on every side.
func NewFrame(b Bounds) Frame {
	return Frame{
		Offset: Cell{X: Padding - b.Min.X, Y: Padding - b.Min.Y},
		Width:  b.Width() + 2*Padding,
		Height: b.Height() + 2*Padding,
	}
}

func (f Frame) Internal(orig Cell) Cell { return orig.Add(f.Offset) }

func (f Frame) Original(internal Cell) Cell { return internal.Sub(f.Offset) }

// ToExternal converts an internal index: external = internal - offset + 1.
func (f Frame) ToExternal(internal Cell) Cell {
	return Cell{X: internal.X - f.Offset.X + 1, Y: internal.Y - f.Offset.Y + 1}
}

// FromExternal is the inverse of ToExternal.
func (f Frame) FromExternal(external Cell) Cell {
	return Cell{X: external.X + f.Offset.X - 1, Y: external.Y + f.Offset.Y - 1}
}

func (f Frame) InBounds(internal Cell) bool {
	return internal.X >= 0 && internal.X < f.Width && internal.Y >= 0 && internal.Y < f.Height
}

// OnRim reports whether an internal cell lies on the outermost ring.
func (f Frame) OnRim(internal Cell) bool {
	return internal.X == 0 || internal.Y == 0 || internal.X == f.Width-1 || internal.Y == f.Height-1
}

// World centres the grid on the origin:
// (internal - offset) * spacing - (dim-1) * 0.5 * spacing.
// Block centres and gears must go through the same call to line up.
func (f Frame) World(internal Cell, spacing float64) Vec2 {
	return Vec2{
		X: float64(internal.X-f.Offset.X)*spacing - float64(f.Width-1)*0.5*spacing,
		Y: float64(internal.Y-f.Offset.Y)*spacing - float64(f.Height-1)*0.5*spacing,
	}
}
