package generator

import (
	"fmt"
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"svw.info/gearworks/internal/domain"
)

// PlaceGears puts one power cell next to the path start and one target cell
// next to each endpoint. occupied holds every block-covered cell; it is not
// modified.
func PlaceGears(rng *rand.Rand, path *domain.PathData, occupied mapset.Set[domain.Cell]) (*domain.GearPlacement, error) {
	taken := mapset.New[domain.Cell]()
	free := func(c domain.Cell) bool { return !occupied.Has(c) && !taken.Has(c) }

	claim := func(anchor domain.Cell) (domain.Cell, bool) {
		ns := anchor.Neighbors()
		rng.Shuffle(len(ns), func(i, j int) { ns[i], ns[j] = ns[j], ns[i] })
		for _, n := range ns {
			if free(n) {
				taken.Put(n)
				return n, true
			}
		}
		return domain.Cell{}, false
	}

	out := &domain.GearPlacement{}
	power, ok := claim(path.Start)
	if !ok {
		return nil, fmt.Errorf("%w: start %v is boxed in", domain.ErrPlacement, path.Start)
	}
	out.Power = append(out.Power, power)

	for _, e := range path.Endpoints {
		t, ok := claim(e)
		if !ok {
			return nil, fmt.Errorf("%w: endpoint %v is boxed in", domain.ErrPlacement, e)
		}
		out.Targets = append(out.Targets, t)
	}

	if err := checkGears(out, path); err != nil {
		return nil, err
	}
	return out, nil
}

// checkGears re-verifies that every gear touches the path and that the power
// cell is not also a target.
func checkGears(g *domain.GearPlacement, path *domain.PathData) error {
	onPath := mapset.New[domain.Cell]()
	for _, c := range path.Cells {
		onPath.Put(c)
	}
	touches := func(c domain.Cell) bool {
		for _, n := range c.Neighbors() {
			if onPath.Has(n) {
				return true
			}
		}
		return false
	}
	for _, p := range g.Power {
		if !touches(p) {
			return fmt.Errorf("%w: power %v is not next to the path", domain.ErrPlacement, p)
		}
		for _, t := range g.Targets {
			if p == t {
				return fmt.Errorf("%w: power and target share %v", domain.ErrPlacement, p)
			}
		}
	}
	for _, t := range g.Targets {
		if !touches(t) {
			return fmt.Errorf("%w: target %v is not next to the path", domain.ErrPlacement, t)
		}
	}
	return nil
}
