package generator

import (
	"fmt"
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"svw.info/gearworks/internal/domain"
)

const (
	pathAttempts     = 30
	growthIterations = 100
	greedyChance     = 0.7
	// BranchChance is the per-step split probability once a tier enables
	// branching. No built-in tier does.
	BranchChance = 0.25
)

// footprint indexes every block-covered cell.
type footprint struct {
	cells []domain.Cell
	set   mapset.Set[domain.Cell]
	owner map[domain.Cell]int
}

func newFootprint(blocks []domain.BlockPlacement) *footprint {
	f := &footprint{set: mapset.New[domain.Cell](), owner: make(map[domain.Cell]int)}
	for i, b := range blocks {
		for _, c := range b.Cells {
			if f.set.Has(c) {
				continue
			}
			f.set.Put(c)
			f.owner[c] = i
			f.cells = append(f.cells, c)
		}
	}
	return f
}

// isEdge reports whether c has a 4-neighbour outside the footprint.
func (f *footprint) isEdge(c domain.Cell) bool {
	for _, n := range c.Neighbors() {
		if !f.set.Has(n) {
			return true
		}
	}
	return false
}

func (f *footprint) edges() []domain.Cell {
	var out []domain.Cell
	for _, c := range f.cells {
		if f.isEdge(c) {
			out = append(out, c)
		}
	}
	return out
}

// bullet is one growth head. origin is where this head started.
type bullet struct {
	head   domain.Cell
	origin domain.Cell
	active bool
}

// DesignPath grows a path across the block footprint that meets the length,
// endpoint and coverage minimums of cfg.
func DesignPath(rng *rand.Rand, blocks []domain.BlockPlacement, cfg domain.DifficultyConfig) (*domain.PathData, error) {
	f := newFootprint(blocks)
	edges := f.edges()
	if len(edges) == 0 {
		return nil, fmt.Errorf("%w: footprint has no edge cells", domain.ErrPath)
	}
	var last error
	for i := 0; i < pathAttempts; i++ {
		p, err := designOnce(rng, f, edges, cfg)
		if err == nil {
			return p, nil
		}
		last = err
	}
	return nil, last
}

func designOnce(rng *rand.Rand, f *footprint, edges []domain.Cell, cfg domain.DifficultyConfig) (*domain.PathData, error) {
	start := edges[rng.Intn(len(edges))]
	target := cfg.MinPathLength
	if cfg.MaxPathLength > cfg.MinPathLength {
		target += rng.Intn(cfg.MaxPathLength - cfg.MinPathLength + 1)
	}

	visited := mapset.New[domain.Cell]()
	path := []domain.Cell{start}
	visited.Put(start)
	visit := func(c domain.Cell) {
		visited.Put(c)
		path = append(path, c)
	}

	endSet := mapset.New[domain.Cell]()
	var endpoints []domain.Cell
	freeze := func(b *bullet) {
		b.active = false
		if !endSet.Has(b.head) {
			endSet.Put(b.head)
			endpoints = append(endpoints, b.head)
		}
	}

	bullets := []*bullet{{head: start, origin: start, active: true}}
	for iter := 0; iter < growthIterations && anyActive(bullets); iter++ {
		// heads split off this round start moving next round
		n := len(bullets)
		for i := 0; i < n; i++ {
			b := bullets[i]
			if !b.active {
				continue
			}
			if len(path) >= target {
				freeze(b)
				continue
			}
			cands := unvisitedNeighbors(b.head, f, visited)
			if len(cands) == 0 {
				freeze(b)
				continue
			}
			next := chooseNext(rng, b, cands)
			visit(next)
			if cfg.AllowBranching && len(cands) > 1 && len(path) < target && rng.Float64() < BranchChance {
				other := pickOther(rng, cands, next)
				visit(other)
				bullets = append(bullets, &bullet{head: other, origin: b.head, active: true})
			}
			b.head = next
		}
	}
	for _, b := range bullets {
		if b.active {
			freeze(b)
		}
	}

	endpoints = without(endpoints, start)
	minEnd := max(1, cfg.MinEndpoints-1)
	maxEnd := max(1, cfg.MaxEndpoints-1)

	if len(endpoints) < minEnd {
		endpoints = backfillEndpoints(rng, f, path, start, endpoints, minEnd)
	}
	if len(endpoints) > maxEnd {
		rng.Shuffle(len(endpoints), func(i, j int) { endpoints[i], endpoints[j] = endpoints[j], endpoints[i] })
		endpoints = endpoints[:maxEnd]
	}

	covered := coveredBlocks(f, path)
	switch {
	case len(path) < cfg.MinPathLength:
		return nil, fmt.Errorf("%w: length %d below %d", domain.ErrPath, len(path), cfg.MinPathLength)
	case len(endpoints) < minEnd:
		return nil, fmt.Errorf("%w: %d endpoints below %d", domain.ErrPath, len(endpoints), minEnd)
	case covered < cfg.MinCoveredBlocks:
		return nil, fmt.Errorf("%w: covers %d blocks, need %d", domain.ErrPath, covered, cfg.MinCoveredBlocks)
	case !cellsConnected(path):
		return nil, fmt.Errorf("%w: path is disconnected", domain.ErrPath)
	}

	return &domain.PathData{
		Cells:             path,
		Start:             start,
		Endpoints:         endpoints,
		CoveredBlockCount: covered,
	}, nil
}

func anyActive(bullets []*bullet) bool {
	for _, b := range bullets {
		if b.active {
			return true
		}
	}
	return false
}

func unvisitedNeighbors(c domain.Cell, f *footprint, visited mapset.Set[domain.Cell]) []domain.Cell {
	var out []domain.Cell
	for _, n := range c.Neighbors() {
		if f.set.Has(n) && !visited.Has(n) {
			out = append(out, n)
		}
	}
	return out
}

// chooseNext prefers the candidate farthest from the bullet's origin.
func chooseNext(rng *rand.Rand, b *bullet, cands []domain.Cell) domain.Cell {
	if rng.Float64() < greedyChance {
		best := cands[0]
		for _, c := range cands[1:] {
			if c.Manhattan(b.origin) > best.Manhattan(b.origin) {
				best = c
			}
		}
		return best
	}
	return cands[rng.Intn(len(cands))]
}

func pickOther(rng *rand.Rand, cands []domain.Cell, taken domain.Cell) domain.Cell {
	rest := make([]domain.Cell, 0, len(cands)-1)
	for _, c := range cands {
		if c != taken {
			rest = append(rest, c)
		}
	}
	return rest[rng.Intn(len(rest))]
}

// backfillEndpoints tops endpoints up to want with footprint-edge path cells
// other than the start.
func backfillEndpoints(rng *rand.Rand, f *footprint, path []domain.Cell, start domain.Cell, endpoints []domain.Cell, want int) []domain.Cell {
	have := mapset.New[domain.Cell]()
	for _, e := range endpoints {
		have.Put(e)
	}
	var pool []domain.Cell
	for _, c := range path {
		if c != start && !have.Has(c) && f.isEdge(c) {
			pool = append(pool, c)
		}
	}
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	for _, c := range pool {
		if len(endpoints) >= want {
			break
		}
		endpoints = append(endpoints, c)
	}
	return endpoints
}

func coveredBlocks(f *footprint, path []domain.Cell) int {
	seen := make(map[int]bool)
	for _, c := range path {
		if i, ok := f.owner[c]; ok {
			seen[i] = true
		}
	}
	return len(seen)
}

func without(cells []domain.Cell, drop domain.Cell) []domain.Cell {
	out := cells[:0]
	for _, c := range cells {
		if c != drop {
			out = append(out, c)
		}
	}
	return out
}

// cellsConnected reports whether cells form one 4-connected component.
func cellsConnected(cells []domain.Cell) bool {
	if len(cells) == 0 {
		return false
	}
	set := mapset.New[domain.Cell]()
	for _, c := range cells {
		set.Put(c)
	}
	seen := mapset.New[domain.Cell]()
	seen.Put(cells[0])
	queue := []domain.Cell{cells[0]}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range cur.Neighbors() {
			if set.Has(n) && !seen.Has(n) {
				seen.Put(n)
				queue = append(queue, n)
			}
		}
	}
	return seen.Size() == set.Size()
}
