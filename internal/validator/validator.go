package validator

import (
	"context"
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"svw.info/gearworks/internal/domain"
	"svw.info/gearworks/internal/solver"
)

// ChainValidator checks that blocks do not overlap and that power reaches
// every target through enabled block gears.
type ChainValidator struct {
	Solver *solver.ChainSolver
}

func New() *ChainValidator { return &ChainValidator{Solver: solver.NewChainSolver()} }

// Validate leaves m untouched; gear marking happens on a scratch copy.
func (v *ChainValidator) Validate(ctx context.Context, blocks []domain.BlockPlacement, m *domain.MapData) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkOverlap(blocks); err != nil {
		return err
	}

	scratch := m.Clone()
	for _, b := range blocks {
		for j, c := range b.Cells {
			if j >= domain.MaxSlots || !b.GearEnabled[j] {
				continue
			}
			in := scratch.Frame.Internal(c)
			if scratch.At(in) == domain.Normal {
				scratch.Set(in, domain.PlacedGear)
			}
		}
	}

	tr := v.Solver.Trace(scratch)
	switch {
	case len(tr.Sources) == 0:
		return fmt.Errorf("%w: %w: no power gear", domain.ErrValidation, domain.ErrUnreachable)
	case len(tr.Reached)+len(tr.Missed) == 0:
		return fmt.Errorf("%w: %w: no target gear", domain.ErrValidation, domain.ErrUnreachable)
	case !tr.Complete():
		first := m.Frame.Original(tr.Missed[0])
		return fmt.Errorf("%w: %w: %d of %d targets unpowered, first at (%d,%d)",
			domain.ErrValidation, domain.ErrUnreachable,
			len(tr.Missed), len(tr.Reached)+len(tr.Missed), first.X, first.Y)
	}
	return nil
}

func checkOverlap(blocks []domain.BlockPlacement) error {
	seen := mapset.New[domain.Cell]()
	for i, b := range blocks {
		for _, c := range b.Cells {
			if seen.Has(c) {
				return fmt.Errorf("%w: %w: block %d collides at (%d,%d)", domain.ErrValidation, domain.ErrOverlap, i, c.X, c.Y)
			}
			seen.Put(c)
		}
	}
	return nil
}
