package slot

import (
	"errors"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var ErrMalformedGrid = errors.New("slot: malformed grid")

// Cell addresses one slot of the board. Row 0 is the top row.
type Cell struct {
	Col int `json:"c"`
	Row int `json:"r"`
}

// Grid is a fixed-size board stored column-major in a single arena:
// cell (col,row) lives at cells[col*rows+row]. Dimensions never change
// after construction, so every column always has the same length.
type Grid struct {
	cols, rows int
	cells      []Symbol
}

// NewGrid allocates an empty cols×rows grid. Non-positive dimensions yield
// a zero-size grid.
func NewGrid(cols, rows int) *Grid {
	if cols <= 0 || rows <= 0 {
		return &Grid{}
	}
	return &Grid{cols: cols, rows: rows, cells: make([]Symbol, cols*rows)}
}

// FromColumns builds a grid from grid[col][row] data. Ragged input is
// rejected with ErrMalformedGrid.
func FromColumns(columns [][]Symbol) (*Grid, error) {
	if len(columns) == 0 {
		return &Grid{}, nil
	}
	rows := len(columns[0])
	for _, col := range columns {
		if len(col) != rows {
			return nil, ErrMalformedGrid
		}
	}
	g := NewGrid(len(columns), rows)
	for c, col := range columns {
		copy(g.cells[c*rows:(c+1)*rows], col)
	}
	return g, nil
}

// Fill builds a cols×rows grid with every cell set to s.
func Fill(cols, rows int, s Symbol) *Grid {
	g := NewGrid(cols, rows)
	for i := range g.cells {
		g.cells[i] = s
	}
	return g
}

func (g *Grid) Columns() int {
	if g == nil {
		return 0
	}
	return g.cols
}

func (g *Grid) Rows() int {
	if g == nil {
		return 0
	}
	return g.rows
}

// Size is the number of cells.
func (g *Grid) Size() int {
	if g == nil {
		return 0
	}
	return len(g.cells)
}

func (g *Grid) InBounds(col, row int) bool {
	return g != nil && col >= 0 && col < g.cols && row >= 0 && row < g.rows
}

func (g *Grid) index(col, row int) int {
	return col*g.rows + row
}

func (g *Grid) cell(i int) Cell {
	return Cell{Col: i / g.rows, Row: i % g.rows}
}

// At returns the symbol at (col,row), or Empty when out of bounds.
func (g *Grid) At(col, row int) Symbol {
	if !g.InBounds(col, row) {
		return Empty
	}
	return g.cells[g.index(col, row)]
}

// Set writes s at (col,row). Out of bounds writes are ignored.
func (g *Grid) Set(col, row int, s Symbol) {
	if !g.InBounds(col, row) {
		return
	}
	g.cells[g.index(col, row)] = s
}

func (g *Grid) Clone() *Grid {
	if g == nil {
		return &Grid{}
	}
	out := &Grid{cols: g.cols, rows: g.rows, cells: make([]Symbol, len(g.cells))}
	copy(out.cells, g.cells)
	return out
}

// Column returns a copy of one column, top to bottom.
func (g *Grid) Column(col int) []Symbol {
	if col < 0 || col >= g.Columns() {
		return nil
	}
	out := make([]Symbol, g.rows)
	copy(out, g.cells[col*g.rows:(col+1)*g.rows])
	return out
}

// ToColumns returns the grid[col][row] view.
func (g *Grid) ToColumns() [][]Symbol {
	out := make([][]Symbol, g.Columns())
	for c := range out {
		out[c] = g.Column(c)
	}
	return out
}

// Count returns how many cells hold s.
func (g *Grid) Count(s Symbol) int {
	n := 0
	for _, v := range g.cellsOrNil() {
		if v == s {
			n++
		}
	}
	return n
}

// Full reports whether no cell is Empty.
func (g *Grid) Full() bool {
	return g.Size() > 0 && g.Count(Empty) == 0
}

func (g *Grid) cellsOrNil() []Symbol {
	if g == nil {
		return nil
	}
	return g.cells
}

// Equal reports whether both grids have the same shape and content.
func (g *Grid) Equal(o *Grid) bool {
	if g.Columns() != o.Columns() || g.Rows() != o.Rows() {
		return false
	}
	for i, v := range g.cellsOrNil() {
		if o.cells[i] != v {
			return false
		}
	}
	return true
}

// String renders the board row by row, top row first.
func (g *Grid) String() string {
	var b strings.Builder
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Columns(); c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(g.At(c, r).String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (g *Grid) MarshalJSON() ([]byte, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(g.ToColumns())
}

func (g *Grid) UnmarshalJSON(data []byte) error {
	var columns [][]Symbol
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &columns); err != nil {
		return err
	}
	out, err := FromColumns(columns)
	if err != nil {
		return err
	}
	*g = *out
	return nil
}
