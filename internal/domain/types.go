package domain

// MaxSlots is the number of gear slots carried by a block.
const MaxSlots = 4

// BlockPlacement is one instantiated block. Cells[0] is the centre.
type BlockPlacement struct {
	Type        BlockType
	Center      Cell
	Rotation    int
	Cells       []Cell
	GearEnabled [MaxSlots]bool
}

// EnabledCount returns how many slots carry a live gear.
func (b *BlockPlacement) EnabledCount() int {
	n := 0
	for i := range b.Cells {
		if i < MaxSlots && b.GearEnabled[i] {
			n++
		}
	}
	return n
}

// PathData is the grown connectivity path. Cells is in growth order.
type PathData struct {
	Cells             []Cell
	Start             Cell
	Endpoints         []Cell
	CoveredBlockCount int
}

// GearPlacement holds the power and target cells in original coordinates.
type GearPlacement struct {
	Power   []Cell
	Targets []Cell
}

// MapData is the decorated grid. Cells is indexed [y][x] by internal
// coordinates; the cell lists are kept in original coordinates.
type MapData struct {
	Frame     Frame
	Cells     [][]CellType
	Required  []Cell
	Obstacles []Cell
	Missing   []Cell
	Gears     []Cell
}

// At returns the type of an internal cell, Empty when out of bounds.
func (m *MapData) At(internal Cell) CellType {
	if !m.Frame.InBounds(internal) {
		return Empty
	}
	return m.Cells[internal.Y][internal.X]
}

func (m *MapData) Set(internal Cell, t CellType) {
	m.Cells[internal.Y][internal.X] = t
}

// Clone deep-copies the grid; the coordinate lists are shared.
func (m *MapData) Clone() *MapData {
	out := *m
	out.Cells = make([][]CellType, len(m.Cells))
	for y := range m.Cells {
		out.Cells[y] = make([]CellType, len(m.Cells[y]))
		copy(out.Cells[y], m.Cells[y])
	}
	return &out
}

// Find returns every internal cell of type t in row-major order.
func (m *MapData) Find(t CellType) []Cell {
	var out []Cell
	for y := range m.Cells {
		for x, ct := range m.Cells[y] {
			if ct == t {
				out = append(out, Cell{X: x, Y: y})
			}
		}
	}
	return out
}

// DifficultyConfig is the resolved tuning for one level index.
type DifficultyConfig struct {
	Tier       int `json:"tier" yaml:"-"`
	LevelIndex int `json:"levelIndex" yaml:"-"`

	MinGridSize int `json:"minGridSize" yaml:"min_grid_size"`
	MaxGridSize int `json:"maxGridSize" yaml:"max_grid_size"`

	MinBlocks               int         `json:"minBlocks" yaml:"min_blocks"`
	MaxBlocks               int         `json:"maxBlocks" yaml:"max_blocks"`
	AllowDisconnectedBlocks bool        `json:"allowDisconnectedBlocks" yaml:"allow_disconnected_blocks"`
	BlockTypes              []BlockType `json:"blockTypes" yaml:"block_types"`

	MinPathLength    int  `json:"minPathLength" yaml:"min_path_length"`
	MaxPathLength    int  `json:"maxPathLength" yaml:"max_path_length"`
	MinCoveredBlocks int  `json:"minCoveredBlocks" yaml:"min_covered_blocks"`
	MinEndpoints     int  `json:"minEndpoints" yaml:"min_endpoints"`
	MaxEndpoints     int  `json:"maxEndpoints" yaml:"max_endpoints"`
	AllowBranching   bool `json:"allowBranching" yaml:"allow_branching"`
	DistractorBlock  bool `json:"distractorBlock" yaml:"distractor_block"`

	ExtraSlotRatio        float64 `json:"extraSlotRatio" yaml:"extra_slot_ratio"`
	MissingCellRatio      float64 `json:"missingCellRatio" yaml:"missing_cell_ratio"`
	ObstacleRatio         float64 `json:"obstacleRatio" yaml:"obstacle_ratio"`
	OuterRimDensity       float64 `json:"outerRimDensity" yaml:"outer_rim_density"`
	OuterRimCornerShare   float64 `json:"outerRimCornerShare" yaml:"outer_rim_corner_share"`
	OuterRimObstacleShare float64 `json:"outerRimObstacleShare" yaml:"outer_rim_obstacle_share"`

	MaxGenerationAttempts int    `json:"maxGenerationAttempts" yaml:"max_generation_attempts"`
	FixedSeed             *int64 `json:"fixedSeed,omitempty" yaml:"fixed_seed"`
}

// GearPoint is a gear position in external coordinates plus its world position.
type GearPoint struct {
	Pos   Cell `json:"pos"`
	World Vec2 `json:"world"`
}

// LevelBlock is a kept block as handed to the runtime.
type LevelBlock struct {
	Type        BlockType      `json:"type"`
	Rotation    int            `json:"rotation"`
	Center      Cell           `json:"center"`
	World       Vec2           `json:"world"`
	GearEnabled [MaxSlots]bool `json:"gearEnabled"`
}

// Level is a generated, validated level.
type Level struct {
	ID          string       `json:"id"`
	LevelIndex  int          `json:"levelIndex"`
	Tier        int          `json:"tier"`
	Seed        int64        `json:"seed"`
	Attempts    int          `json:"attempts"`
	Width       int          `json:"width"`
	Height      int          `json:"height"`
	Offset      Cell         `json:"offset"`
	Spacing     float64      `json:"spacing"`
	Blocks      []LevelBlock `json:"blocks"`
	Cells       [][]CellType `json:"cells"`
	PowerGears  []GearPoint  `json:"powerGears"`
	TargetGears []GearPoint  `json:"targetGears"`
	Obstacles   []Cell       `json:"obstacles,omitempty"`
	MissingBins []Cell       `json:"missingBins,omitempty"`
	CreatedAt   int64        `json:"createdAt,omitempty"`
	// Optional user metadata
	Name string `json:"name,omitempty"`
}

// Preview renders the grid one row per line.
func (l *Level) Preview() string {
	buf := make([]byte, 0, (l.Width+1)*l.Height)
	for _, row := range l.Cells {
		for _, c := range row {
			buf = append(buf, c.Symbol())
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}

// LevelMeta is a lightweight listing entry.
type LevelMeta struct {
	ID         string `json:"id"`
	Name       string `json:"name,omitempty"`
	LevelIndex int    `json:"levelIndex"`
	Tier       int    `json:"tier"`
	CreatedAt  int64  `json:"createdAt"`
}
