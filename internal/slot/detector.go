package slot

const DefaultMinClusterSize = 5

// up, down, left, right as (dcol, drow)
var directions = [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// Cluster is a winning group of orthogonally connected cells sharing one
// pay symbol, possibly joined through wilds. Cells are in discovery order
// starting with the seed.
type Cluster struct {
	Symbol  Symbol `json:"symbol"`
	Cells   []Cell `json:"cells"`
	HasWild bool   `json:"hasWild"`
}

func (c Cluster) Size() int { return len(c.Cells) }

// Detector finds winning clusters on a board.
type Detector struct {
	minSize int
}

// NewDetector returns a detector requiring at least minSize cells per
// cluster. Non-positive values fall back to DefaultMinClusterSize.
func NewDetector(minSize int) Detector {
	if minSize <= 0 {
		minSize = DefaultMinClusterSize
	}
	return Detector{minSize: minSize}
}

func (d Detector) MinSize() int {
	if d.minSize <= 0 {
		return DefaultMinClusterSize
	}
	return d.minSize
}

// Detect returns every cluster of at least MinSize cells.
//
// Seeds are scanned row-major from the top-left corner, so the result is
// deterministic for a given board. Only pay symbols seed. A wild joins
// whichever cluster reaches it from a seed-symbol cell and extends the
// search through itself for the seed's symbol only. A wild next to
// another wild does not carry the search on. It is reserved for the first
// qualifying cluster, so
// no cell is reported twice. A wild reached by a cluster that falls short
// of MinSize stays available to later seeds. Scatter and Empty cells never
// seed or join.
func (d Detector) Detect(g *Grid) []Cluster {
	if g.Size() == 0 {
		return nil
	}
	minSize := d.MinSize()
	n := g.Size()
	visited := make([]bool, n) // pay cells already assigned to a search
	claimed := make([]bool, n) // wilds owned by a reported cluster
	stamp := make([]int, n)    // last search that touched a wild, seed index + 1

	var out []Cluster
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			seed := g.index(col, row)
			sym := g.cells[seed]
			if visited[seed] || !sym.IsPay() {
				continue
			}
			visited[seed] = true
			queue := []int{seed}
			var wilds []int
			for head := 0; head < len(queue); head++ {
				c := g.cell(queue[head])
				viaWild := g.cells[queue[head]] == Wild
				for _, dir := range directions {
					nc, nr := c.Col+dir[0], c.Row+dir[1]
					if !g.InBounds(nc, nr) {
						continue
					}
					j := g.index(nc, nr)
					switch g.cells[j] {
					case sym:
						if visited[j] {
							continue
						}
						visited[j] = true
					case Wild:
						// a wild only bridges to the seed symbol, never to another wild
						if viaWild || claimed[j] || stamp[j] == seed+1 {
							continue
						}
						stamp[j] = seed + 1
						wilds = append(wilds, j)
					default:
						continue
					}
					queue = append(queue, j)
				}
			}
			if len(queue) < minSize {
				continue
			}
			for _, w := range wilds {
				claimed[w] = true
			}
			cells := make([]Cell, len(queue))
			for i, idx := range queue {
				cells[i] = g.cell(idx)
			}
			out = append(out, Cluster{Symbol: sym, Cells: cells, HasWild: len(wilds) > 0})
		}
	}
	return out
}

// Detect runs a detector with the default minimum cluster size.
func Detect(g *Grid) []Cluster {
	return NewDetector(DefaultMinClusterSize).Detect(g)
}

// AnyWild reports whether any cluster absorbed a wild.
func AnyWild(clusters []Cluster) bool {
	for _, c := range clusters {
		if c.HasWild {
			return true
		}
	}
	return false
}

// ClearedCells is the number of distinct cells the clusters will clear.
func ClearedCells(clusters []Cluster) int {
	n := 0
	for _, c := range clusters {
		n += len(c.Cells)
	}
	return n
}
