// Package solver traces how power spreads across a level grid.
package solver

import (
	"github.com/zyedidia/generic/mapset"

	"svw.info/gearworks/internal/domain"
)

// ChainSolver propagates power from the power gears through adjacent placed
// gears and target gears.
type ChainSolver struct{}

func NewChainSolver() *ChainSolver { return &ChainSolver{} }

// Trace is the outcome of one propagation. Cells are internal grid coordinates.
type Trace struct {
	Sources []domain.Cell
	Powered []domain.Cell // BFS order, sources first
	Reached []domain.Cell
	Missed  []domain.Cell
}

// Complete reports whether every target was powered.
func (t Trace) Complete() bool { return len(t.Missed) == 0 }

// Trace runs a breadth-first search from every PowerGear cell, stepping only
// into 4-adjacent PlacedGear or TargetGear cells.
func (s *ChainSolver) Trace(m *domain.MapData) Trace {
	var tr Trace
	tr.Sources = m.Find(domain.PowerGear)

	seen := mapset.New[domain.Cell]()
	queue := make([]domain.Cell, 0, len(tr.Sources))
	for _, c := range tr.Sources {
		seen.Put(c)
		queue = append(queue, c)
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		tr.Powered = append(tr.Powered, cur)
		for _, n := range cur.Neighbors() {
			if seen.Has(n) || !m.At(n).Conducts() {
				continue
			}
			seen.Put(n)
			queue = append(queue, n)
		}
	}

	for _, t := range m.Find(domain.TargetGear) {
		if seen.Has(t) {
			tr.Reached = append(tr.Reached, t)
		} else {
			tr.Missed = append(tr.Missed, t)
		}
	}
	return tr
}
