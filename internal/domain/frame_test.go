package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameRoundTrip(t *testing.T) {
	frames := []Frame{
		NewFrame(Bounds{Min: Cell{X: -3, Y: 2}, Max: Cell{X: 4, Y: 5}}),
		NewFrame(Bounds{Min: Cell{X: 0, Y: 0}, Max: Cell{X: 0, Y: 0}}),
		{Offset: Cell{X: 7, Y: -2}, Width: 3, Height: 3},
	}
	for _, f := range frames {
		for x := -5; x <= 5; x++ {
			for y := -5; y <= 5; y++ {
				ext := Cell{X: x, Y: y}
				assert.Equal(t, ext, f.ToExternal(f.FromExternal(ext)))
				orig := Cell{X: x, Y: y}
				assert.Equal(t, orig, f.Original(f.Internal(orig)))
			}
		}
	}
}

func TestNewFrameSizing(t *testing.T) {
	b := Bounds{Min: Cell{X: -2, Y: 1}, Max: Cell{X: 3, Y: 4}}
	f := NewFrame(b)
	assert.Equal(t, 6+2*Padding, f.Width)
	assert.Equal(t, 4+2*Padding, f.Height)
	assert.Equal(t, Cell{X: Padding, Y: Padding}, f.Internal(b.Min))
	assert.Equal(t, Cell{X: f.Width - 1 - Padding, Y: f.Height - 1 - Padding}, f.Internal(b.Max))
	// external coordinates are the original ones shifted to 1-based
	assert.Equal(t, Cell{X: -1, Y: 2}, f.ToExternal(f.Internal(b.Min)))
}

func TestFrameRimAndBounds(t *testing.T) {
	f := Frame{Width: 4, Height: 3}
	assert.True(t, f.OnRim(Cell{X: 0, Y: 1}))
	assert.True(t, f.OnRim(Cell{X: 2, Y: 2}))
	assert.False(t, f.OnRim(Cell{X: 1, Y: 1}))
	assert.True(t, f.InBounds(Cell{X: 3, Y: 2}))
	assert.False(t, f.InBounds(Cell{X: 4, Y: 0}))
	assert.False(t, f.InBounds(Cell{X: 0, Y: -1}))
}

func TestFrameWorld(t *testing.T) {
	f := Frame{Offset: Cell{X: 1, Y: 1}, Width: 5, Height: 3}
	assert.Equal(t, Vec2{X: -3, Y: -2}, f.World(Cell{X: 0, Y: 0}, 1))
	assert.Equal(t, Vec2{X: 2 * 2.5, Y: 1 * 2.5}, f.World(Cell{X: 5, Y: 3}, 2.5))
}

func TestCellHelpers(t *testing.T) {
	c := Cell{X: 2, Y: 3}
	assert.Equal(t, [4]Cell{{2, 2}, {3, 3}, {2, 4}, {1, 3}}, c.Neighbors())
	assert.Equal(t, 5, c.Manhattan(Cell{X: 0, Y: 0}))
	assert.True(t, c.Adjacent(Cell{X: 2, Y: 4}))
	assert.False(t, c.Adjacent(Cell{X: 3, Y: 4}))

	b, ok := BoundsOf([]Cell{{1, 1}, {-2, 4}, {0, 0}})
	assert.True(t, ok)
	assert.Equal(t, Bounds{Min: Cell{-2, 0}, Max: Cell{1, 4}}, b)
	assert.Equal(t, 4, b.Width())
	assert.Equal(t, 5, b.Height())
	assert.Equal(t, Bounds{Min: Cell{-3, -1}, Max: Cell{2, 5}}, b.Expand(1))

	_, ok = BoundsOf(nil)
	assert.False(t, ok)
}
