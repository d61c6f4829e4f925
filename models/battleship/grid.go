package battleship

import (
	cerr "github.com/saeidalz13/battleship-tracker/internal/error"
)

type CellState uint8

const (
	CellUnfired CellState = iota
	CellFiredMiss
	CellFiredHit
)

type Coordinates struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewCoordinates(row, col int) Coordinates {
	return Coordinates{Row: row, Col: col}
}

type Cell struct {
	Coordinates
	HasShipTruth bool
	State        CellState
	AutoExcluded bool
	Sunk         bool
}

func (c Cell) Fired() bool {
	return c.State != CellUnfired
}

func (c Cell) ConfirmedShip() bool {
	return c.State == CellFiredHit
}

// Layout is the ship truth of a board, true where a ship cell sits.
type Layout [][]bool

// Validate checks the layout is rectangular and rows x cols.
func (l Layout) Validate(rows, cols int) error {
	if len(l) != rows {
		width := 0
		if len(l) > 0 {
			width = len(l[0])
		}
		return cerr.ErrLayoutDimensions(len(l), width, rows, cols)
	}
	for r := range l {
		if len(l[r]) != cols {
			if r == 0 {
				return cerr.ErrLayoutDimensions(rows, len(l[r]), rows, cols)
			}
			return cerr.ErrLayoutNotRectangular(r)
		}
	}
	return nil
}

// BoardView is the read only side of a Grid handed to renderers.
type BoardView interface {
	Rows() int
	Cols() int
	CellAt(row, col int) (Cell, error)
}

type Grid struct {
	rows  int
	cols  int
	cells [][]Cell
}

var _ BoardView = (*Grid)(nil)

// Creates a new grid where every position is unfired
// and holds no ship truth.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, cerr.ErrInvalidGridSize(rows, cols)
	}

	grid := &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([][]Cell, rows),
	}
	for r := 0; r < rows; r++ {
		grid.cells[r] = make([]Cell, cols)
		for c := 0; c < cols; c++ {
			grid.cells[r][c].Coordinates = NewCoordinates(r, c)
		}
	}
	return grid, nil
}

// NewGridWithLayout builds the owning side's grid, which is the
// only one that knows where its ships are.
func NewGridWithLayout(layout Layout) (*Grid, error) {
	if len(layout) == 0 {
		return nil, cerr.ErrInvalidGridSize(0, 0)
	}
	if err := layout.Validate(len(layout), len(layout[0])); err != nil {
		return nil, err
	}

	grid, err := NewGrid(len(layout), len(layout[0]))
	if err != nil {
		return nil, err
	}
	for r := range layout {
		for c, hasShip := range layout[r] {
			grid.cells[r][c].HasShipTruth = hasShip
		}
	}
	return grid, nil
}

func (g *Grid) Rows() int {
	return g.rows
}

func (g *Grid) Cols() int {
	return g.cols
}

func (g *Grid) InRange(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

func (g *Grid) CellAt(row, col int) (Cell, error) {
	if !g.InRange(row, col) {
		return Cell{}, cerr.ErrRowOrColOutOfGridBound(row, col)
	}
	return g.cells[row][col], nil
}

func (g *Grid) MarkFired(row, col int) error {
	if !g.InRange(row, col) {
		return cerr.ErrRowOrColOutOfGridBound(row, col)
	}
	if g.cells[row][col].Fired() {
		return cerr.ErrPositionAlreadyFired(row, col)
	}

	g.cells[row][col].State = CellFiredMiss
	return nil
}

func (g *Grid) MarkConfirmedShip(row, col int) error {
	if !g.InRange(row, col) {
		return cerr.ErrRowOrColOutOfGridBound(row, col)
	}
	if !g.cells[row][col].Fired() {
		return cerr.ErrPositionNotFired(row, col)
	}

	g.cells[row][col].State = CellFiredHit
	return nil
}

// Up, down, left, right; positions off the grid are left out.
func (g *Grid) Neighbors4(row, col int) []Coordinates {
	offsets := [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

	neighbors := make([]Coordinates, 0, len(offsets))
	for _, offset := range offsets {
		r, c := row+offset[0], col+offset[1]
		if g.InRange(r, c) {
			neighbors = append(neighbors, NewCoordinates(r, c))
		}
	}
	return neighbors
}

// All eight surrounding positions in row-major order.
func (g *Grid) Neighbors8(row, col int) []Coordinates {
	neighbors := make([]Coordinates, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := row+dr, col+dc
			if g.InRange(r, c) {
				neighbors = append(neighbors, NewCoordinates(r, c))
			}
		}
	}
	return neighbors
}

func (g *Grid) CountConfirmedShipCells() int {
	count := 0
	for r := range g.cells {
		for c := range g.cells[r] {
			if g.cells[r][c].ConfirmedShip() {
				count++
			}
		}
	}
	return count
}

func (g *Grid) CountFired() int {
	count := 0
	for r := range g.cells {
		for c := range g.cells[r] {
			if g.cells[r][c].Fired() {
				count++
			}
		}
	}
	return count
}

// the two helpers below are only used by the locator and the match,
// callers have already checked the position is in range.
func (g *Grid) markExcluded(row, col int) {
	g.cells[row][col].State = CellFiredMiss
	g.cells[row][col].AutoExcluded = true
}

func (g *Grid) markSunk(row, col int) {
	g.cells[row][col].Sunk = true
}

func (g *Grid) confirmed(row, col int) bool {
	return g.InRange(row, col) && g.cells[row][col].ConfirmedShip()
}

func (g *Grid) hasShipTruth(row, col int) bool {
	return g.InRange(row, col) && g.cells[row][col].HasShipTruth
}
