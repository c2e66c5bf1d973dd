package slot

// Explode returns a copy of g with every cell of every cluster set to
// Empty. The input grid is not modified.
func Explode(g *Grid, clusters []Cluster) *Grid {
	out := g.Clone()
	for _, c := range clusters {
		for _, cell := range c.Cells {
			out.Set(cell.Col, cell.Row, Empty)
		}
	}
	return out
}

// Collapse returns a copy of g where, in each column, surviving symbols
// fall to the bottom keeping their relative order and the freed top cells
// are refilled from fill, or left Empty when fill is nil. Columns are
// refilled left to right, top to bottom, so a deterministic fill yields a
// deterministic board.
func Collapse(g *Grid, fill func() Symbol) *Grid {
	out := g.Clone()
	for c := 0; c < out.cols; c++ {
		col := out.cells[c*out.rows : (c+1)*out.rows]
		w := len(col) - 1
		for r := len(col) - 1; r >= 0; r-- {
			if col[r] != Empty {
				col[w] = col[r]
				w--
			}
		}
		for r := 0; r <= w; r++ {
			if fill == nil {
				col[r] = Empty
				continue
			}
			col[r] = fill()
		}
	}
	return out
}

// CountScatters returns the number of Scatter cells on the board.
func CountScatters(g *Grid) int {
	return g.Count(Scatter)
}
