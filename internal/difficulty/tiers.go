// Package difficulty resolves a level index into its DifficultyConfig through a
// step-function tier table.
package difficulty

import "svw.info/gearworks/internal/domain"

// Tier is one row of the step table. It applies to level indices in
// [FromLevel, ToLevel]; ToLevel 0 means unbounded.
type Tier struct {
	FromLevel int                     `yaml:"from_level"`
	ToLevel   int                     `yaml:"to_level"`
	Config    domain.DifficultyConfig `yaml:"config"`
}

// Decoration constants shared by every built-in tier.
const (
	DefaultCornerShare      = 0.4
	DefaultRimObstacleShare = 0.1
	DefaultMaxAttempts      = 50
)

var (
	earlyShapes = []domain.BlockType{domain.BlockI, domain.BlockO}
	midShapes   = []domain.BlockType{domain.BlockI, domain.BlockO, domain.BlockL}
	lateShapes  = []domain.BlockType{domain.BlockI, domain.BlockO, domain.BlockL, domain.BlockT}
	allShapes   = []domain.BlockType{domain.BlockI, domain.BlockO, domain.BlockL, domain.BlockT, domain.BlockZ}
)

// DefaultTiers is the built-in table: 1-10, 11-20, 21-30, 31-40, 41-50, 51+.
func DefaultTiers() []Tier {
	return []Tier{
		{FromLevel: 1, ToLevel: 10, Config: domain.DifficultyConfig{
			MinGridSize: 5, MaxGridSize: 6,
			MinBlocks: 2, MaxBlocks: 3,
			BlockTypes:    earlyShapes,
			MinPathLength: 3, MaxPathLength: 5,
			MinCoveredBlocks: 2,
			MinEndpoints:     2, MaxEndpoints: 2,
			ExtraSlotRatio: 0.15, MissingCellRatio: 0.1, ObstacleRatio: 0.1,
			OuterRimDensity: 0.2, OuterRimCornerShare: DefaultCornerShare, OuterRimObstacleShare: DefaultRimObstacleShare,
			MaxGenerationAttempts: 40,
		}},
		{FromLevel: 11, ToLevel: 20, Config: domain.DifficultyConfig{
			MinGridSize: 6, MaxGridSize: 7,
			MinBlocks: 3, MaxBlocks: 4,
			BlockTypes:    midShapes,
			MinPathLength: 5, MaxPathLength: 7,
			MinCoveredBlocks: 2,
			MinEndpoints:     2, MaxEndpoints: 3,
			DistractorBlock: true,
			ExtraSlotRatio:  0.2, MissingCellRatio: 0.1, ObstacleRatio: 0.15,
			OuterRimDensity: 0.25, OuterRimCornerShare: DefaultCornerShare, OuterRimObstacleShare: DefaultRimObstacleShare,
			MaxGenerationAttempts: DefaultMaxAttempts,
		}},
		{FromLevel: 21, ToLevel: 30, Config: domain.DifficultyConfig{
			MinGridSize: 7, MaxGridSize: 8,
			MinBlocks: 4, MaxBlocks: 5,
			BlockTypes:    lateShapes,
			MinPathLength: 6, MaxPathLength: 9,
			MinCoveredBlocks: 3,
			MinEndpoints:     2, MaxEndpoints: 3,
			DistractorBlock: true,
			ExtraSlotRatio:  0.25, MissingCellRatio: 0.1, ObstacleRatio: 0.15,
			OuterRimDensity: 0.3, OuterRimCornerShare: DefaultCornerShare, OuterRimObstacleShare: DefaultRimObstacleShare,
			MaxGenerationAttempts: DefaultMaxAttempts,
		}},
		{FromLevel: 31, ToLevel: 40, Config: domain.DifficultyConfig{
			MinGridSize: 8, MaxGridSize: 10,
			MinBlocks: 5, MaxBlocks: 6,
			BlockTypes:    allShapes,
			MinPathLength: 8, MaxPathLength: 11,
			MinCoveredBlocks: 3,
			MinEndpoints:     3, MaxEndpoints: 4,
			DistractorBlock: true,
			ExtraSlotRatio:  0.25, MissingCellRatio: 0.15, ObstacleRatio: 0.2,
			OuterRimDensity: 0.3, OuterRimCornerShare: DefaultCornerShare, OuterRimObstacleShare: DefaultRimObstacleShare,
			MaxGenerationAttempts: 60,
		}},
		{FromLevel: 41, ToLevel: 50, Config: domain.DifficultyConfig{
			MinGridSize: 9, MaxGridSize: 11,
			MinBlocks: 6, MaxBlocks: 7,
			AllowDisconnectedBlocks: true,
			BlockTypes:              allShapes,
			MinPathLength:           9, MaxPathLength: 13,
			MinCoveredBlocks: 4,
			MinEndpoints:     3, MaxEndpoints: 4,
			DistractorBlock: true,
			ExtraSlotRatio:  0.3, MissingCellRatio: 0.15, ObstacleRatio: 0.2,
			OuterRimDensity: 0.35, OuterRimCornerShare: DefaultCornerShare, OuterRimObstacleShare: DefaultRimObstacleShare,
			MaxGenerationAttempts: 80,
		}},
		{FromLevel: 51, Config: domain.DifficultyConfig{
			MinGridSize: 10, MaxGridSize: 12,
			MinBlocks: 7, MaxBlocks: 8,
			AllowDisconnectedBlocks: true,
			BlockTypes:              allShapes,
			MinPathLength:           10, MaxPathLength: 15,
			MinCoveredBlocks: 4,
			MinEndpoints:     3, MaxEndpoints: 5,
			DistractorBlock: true,
			ExtraSlotRatio:  0.3, MissingCellRatio: 0.2, ObstacleRatio: 0.25,
			OuterRimDensity: 0.4, OuterRimCornerShare: DefaultCornerShare, OuterRimObstacleShare: DefaultRimObstacleShare,
			MaxGenerationAttempts: 100,
		}},
	}
}
