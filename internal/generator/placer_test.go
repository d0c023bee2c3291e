package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/gearworks/internal/domain"
)

func TestPlaceGears(t *testing.T) {
	blocks := []domain.BlockPlacement{hline(0, 0), hline(4, 0)}
	occupied := toSet(append(append([]domain.Cell{}, blocks[0].Cells...), blocks[1].Cells...))
	path := &domain.PathData{
		Cells:     []domain.Cell{{X: 2, Y: 0}, {X: 3, Y: 0}, {X: 4, Y: 0}, {X: 5, Y: 0}},
		Start:     domain.Cell{X: 2, Y: 0},
		Endpoints: []domain.Cell{{X: 5, Y: 0}, {X: 3, Y: 0}},
	}

	for seed := int64(0); seed < 10; seed++ {
		g, err := PlaceGears(newRNG(seed), path, occupied)
		require.NoError(t, err)
		require.Len(t, g.Power, 1)
		require.Len(t, g.Targets, 2)

		all := append(append([]domain.Cell{}, g.Power...), g.Targets...)
		assert.Len(t, cellSet(all), 3, "gear cells must be distinct")
		for _, c := range all {
			assert.False(t, occupied.Has(c), "gear on block cell %v", c)
		}
		assert.True(t, g.Power[0].Adjacent(path.Start))
		assert.True(t, g.Targets[0].Adjacent(path.Endpoints[0]))
		assert.True(t, g.Targets[1].Adjacent(path.Endpoints[1]))
	}
	assert.Equal(t, 8, occupied.Size(), "occupied set must not grow")
}

func TestPlaceGearsBoxedEndpoint(t *testing.T) {
	end := domain.Cell{X: 5, Y: 5}
	var blocked []domain.Cell
	for _, n := range end.Neighbors() {
		blocked = append(blocked, n)
	}
	path := &domain.PathData{
		Cells:     []domain.Cell{{X: 0, Y: 0}, end},
		Start:     domain.Cell{X: 0, Y: 0},
		Endpoints: []domain.Cell{end},
	}
	g, err := PlaceGears(newRNG(1), path, toSet(blocked))
	assert.Nil(t, g)
	assert.ErrorIs(t, err, domain.ErrPlacement)
}

func TestPlaceGearsBoxedStart(t *testing.T) {
	start := domain.Cell{}
	var blocked []domain.Cell
	for _, n := range start.Neighbors() {
		blocked = append(blocked, n)
	}
	path := &domain.PathData{Cells: []domain.Cell{start}, Start: start}
	_, err := PlaceGears(newRNG(1), path, toSet(blocked))
	assert.ErrorIs(t, err, domain.ErrPlacement)
}

// The only free neighbour of the endpoint is claimed by the power gear first.
func TestPlaceGearsSharedNeighbour(t *testing.T) {
	start, end := domain.Cell{X: 0, Y: 0}, domain.Cell{X: 2, Y: 0}
	shared := domain.Cell{X: 1, Y: 0}
	occupied := toSet([]domain.Cell{
		start, end,
		{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0},
		{X: 2, Y: -1}, {X: 2, Y: 1}, {X: 3, Y: 0},
	})
	path := &domain.PathData{Cells: []domain.Cell{start, shared, end}, Start: start, Endpoints: []domain.Cell{end}}
	_, err := PlaceGears(newRNG(1), path, occupied)
	assert.ErrorIs(t, err, domain.ErrPlacement)
}

func TestCheckGears(t *testing.T) {
	path := &domain.PathData{Cells: []domain.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}}}

	ok := &domain.GearPlacement{Power: []domain.Cell{{X: -1, Y: 0}}, Targets: []domain.Cell{{X: 2, Y: 0}}}
	assert.NoError(t, checkGears(ok, path))

	far := &domain.GearPlacement{Power: []domain.Cell{{X: -1, Y: 0}}, Targets: []domain.Cell{{X: 5, Y: 5}}}
	assert.ErrorIs(t, checkGears(far, path), domain.ErrPlacement)

	same := &domain.GearPlacement{Power: []domain.Cell{{X: 0, Y: 1}}, Targets: []domain.Cell{{X: 0, Y: 1}}}
	assert.ErrorIs(t, checkGears(same, path), domain.ErrPlacement)
}
