package slot

import (
	"hash/maphash"
	"math/rand/v2"

	"go.uber.org/zap"
)

const (
	DefaultBlobMin    = 5
	DefaultBlobMax    = 9
	blobStartAttempts = 50
)

// Generator produces random symbols and boards, and can rig a board with a
// guaranteed cluster or a fixed number of scatters. It is not safe for
// concurrent use because it owns its random source.
type Generator struct {
	pool    []Symbol
	r       *rand.Rand
	blobMin int
	blobMax int
}

type GeneratorOption func(*Generator)

// WithPool restricts baseline fill to the given pay symbols. Non-pay
// symbols are dropped; an empty result keeps the default pool.
func WithPool(pool []Symbol) GeneratorOption {
	return func(g *Generator) {
		var out []Symbol
		for _, s := range pool {
			if s.IsPay() {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			g.pool = out
		}
	}
}

// WithRand injects the random source, mostly for deterministic tests.
func WithRand(r *rand.Rand) GeneratorOption {
	return func(g *Generator) {
		if r != nil {
			g.r = r
		}
	}
}

// WithBlobSize bounds the size of forced blobs. lo is clamped to at least
// DefaultMinClusterSize so a forced blob always wins.
func WithBlobSize(lo, hi int) GeneratorOption {
	return func(g *Generator) {
		if lo < DefaultMinClusterSize {
			lo = DefaultMinClusterSize
		}
		if hi < lo {
			hi = lo
		}
		g.blobMin, g.blobMax = lo, hi
	}
}

func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		pool:    PaySymbols(),
		blobMin: DefaultBlobMin,
		blobMax: DefaultBlobMax,
	}
	for _, o := range opts {
		o(g)
	}
	if g.r == nil {
		g.r = newRand()
	}
	return g
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64()))
}

// Symbol draws one symbol uniformly from the pool.
func (g *Generator) Symbol() Symbol {
	return g.pool[g.r.IntN(len(g.pool))]
}

// Generate returns a fully populated cols×rows board. Baseline fill only
// ever uses the pool, so it never contains Wild or Scatter.
func (g *Generator) Generate(cols, rows int) *Grid {
	out := NewGrid(cols, rows)
	for i := range out.cells {
		out.cells[i] = g.Symbol()
	}
	return out
}

// ForceBlob overwrites a connected region of 5 to 9 cells with a single
// pool symbol and turns one of them into a Wild, guaranteeing at least one
// cluster. Scatter cells are never overwritten. Up to 50 random start
// cells are tried; if none reaches the minimum size the grid is left
// untouched and false is returned.
func (g *Generator) ForceBlob(grid *Grid) bool {
	if grid.Size() == 0 {
		return false
	}
	target := g.blobMin + g.r.IntN(g.blobMax-g.blobMin+1)
	for attempt := 0; attempt < blobStartAttempts; attempt++ {
		start := g.r.IntN(grid.Size())
		if grid.cells[start] == Scatter {
			continue
		}
		blob := g.growBlob(grid, start, target)
		if len(blob) < g.blobMin {
			continue
		}
		sym := g.Symbol()
		for _, i := range blob {
			grid.cells[i] = sym
		}
		wild := blob[g.r.IntN(len(blob))]
		grid.cells[wild] = Wild
		Log.Debug("forced blob",
			zap.Stringer("symbol", sym),
			zap.Int("size", len(blob)),
			zap.Any("wild", grid.cell(wild)))
		return true
	}
	Log.Debug("forced blob skipped, no region large enough", zap.Int("target", target))
	return false
}

// growBlob walks outward from start breadth-first until size cells are
// collected, stepping around scatters.
func (g *Generator) growBlob(grid *Grid, start, size int) []int {
	used := make([]bool, grid.Size())
	queue := []int{start}
	var blob []int
	for len(queue) > 0 && len(blob) < size {
		i := queue[0]
		queue = queue[1:]
		if used[i] {
			continue
		}
		used[i] = true
		if grid.cells[i] == Scatter {
			continue
		}
		blob = append(blob, i)
		c := grid.cell(i)
		for _, d := range directions {
			nc, nr := c.Col+d[0], c.Row+d[1]
			if !grid.InBounds(nc, nr) {
				continue
			}
			j := grid.index(nc, nr)
			if !used[j] && grid.cells[j] != Scatter {
				queue = append(queue, j)
			}
		}
	}
	return blob
}

// ForceScatters places count scatters on distinct cells that do not
// already hold one. It returns false and leaves the grid untouched when
// there are not enough candidate cells.
func (g *Generator) ForceScatters(grid *Grid, count int) bool {
	if count <= 0 {
		return false
	}
	var candidates []int
	for i, s := range grid.cellsOrNil() {
		if s != Scatter {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) < count {
		return false
	}
	g.r.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	for _, i := range candidates[:count] {
		grid.cells[i] = Scatter
	}
	Log.Debug("forced scatters", zap.Int("count", count))
	return true
}
