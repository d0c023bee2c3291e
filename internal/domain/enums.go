package domain

import "fmt"

// BlockType identifies a block shape.
type BlockType int

const (
	BlockSingle BlockType = iota // reserved, never composed
	BlockI
	BlockO
	BlockT
	BlockL
	BlockZ
)

var blockNames = map[BlockType]string{
	BlockSingle: "single",
	BlockI:      "I",
	BlockO:      "O",
	BlockT:      "T",
	BlockL:      "L",
	BlockZ:      "Z",
}

func (b BlockType) String() string {
	if s, ok := blockNames[b]; ok {
		return s
	}
	return fmt.Sprintf("BlockType(%d)", int(b))
}

// MarshalText encodes the shape by name so persisted levels stay readable.
func (b BlockType) MarshalText() ([]byte, error) {
	s, ok := blockNames[b]
	if !ok {
		return nil, fmt.Errorf("unknown block type %d", int(b))
	}
	return []byte(s), nil
}

func (b *BlockType) UnmarshalText(text []byte) error {
	for k, v := range blockNames {
		if v == string(text) {
			*b = k
			return nil
		}
	}
	return fmt.Errorf("unknown block type %q", string(text))
}

// Rotations lists the legal rotation angles in degrees.
var Rotations = [4]int{0, 90, 180, 270}

// CellType tags a grid cell.
type CellType int

const (
	Empty CellType = iota
	Normal
	Obstacle
	PowerGear
	TargetGear
	PlacedGear // validator scratch state only
)

func (c CellType) String() string {
	switch c {
	case Empty:
		return "empty"
	case Normal:
		return "normal"
	case Obstacle:
		return "obstacle"
	case PowerGear:
		return "power"
	case TargetGear:
		return "target"
	case PlacedGear:
		return "placed"
	default:
		return fmt.Sprintf("CellType(%d)", int(c))
	}
}

// Symbol is a one-character preview glyph.
func (c CellType) Symbol() byte {
	switch c {
	case Empty:
		return '.'
	case Normal:
		return 'o'
	case Obstacle:
		return '#'
	case PowerGear:
		return 'P'
	case TargetGear:
		return 'T'
	case PlacedGear:
		return '@'
	default:
		return '?'
	}
}

// IsContent reports whether the cell counts as map content when looking for
// decoration candidates. PlacedGear never exists outside validation.
func (c CellType) IsContent() bool {
	switch c {
	case Normal, Obstacle, PowerGear, TargetGear:
		return true
	case Empty, PlacedGear:
		return false
	default:
		return false
	}
}

// IsSlotContent reports whether the cell holds a slot or gear, which is what
// the outer rim hugs.
func (c CellType) IsSlotContent() bool {
	switch c {
	case Normal, PowerGear, TargetGear:
		return true
	case Empty, Obstacle, PlacedGear:
		return false
	default:
		return false
	}
}

// Conducts reports whether the power chain may step into the cell.
func (c CellType) Conducts() bool {
	switch c {
	case PlacedGear, TargetGear:
		return true
	case Empty, Normal, Obstacle, PowerGear:
		return false
	default:
		return false
	}
}

func (c CellType) MarshalText() ([]byte, error) {
	if c < Empty || c > PlacedGear {
		return nil, fmt.Errorf("unknown cell type %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *CellType) UnmarshalText(text []byte) error {
	for t := Empty; t <= PlacedGear; t++ {
		if t.String() == string(text) {
			*c = t
			return nil
		}
	}
	return fmt.Errorf("unknown cell type %q", string(text))
}
