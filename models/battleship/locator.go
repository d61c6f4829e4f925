package battleship

import (
	"github.com/dolthub/swiss"

	cerr "github.com/saeidalz13/battleship-tracker/internal/error"
)

// Sinking describes a ship the locator recognised as sunk.
type Sinking struct {
	Size         int
	Cells        []Coordinates
	AutoExcluded []Coordinates
}

// run is the known extent of the ship a hit belongs to. Boundaries are
// the first non confirmed positions on either side and may be off grid.
type run struct {
	cells          []Coordinates
	start, end     Coordinates
	hasOrientation bool
}

// ShipLocator infers ships on the opponent-facing grid from revealed
// information only and scores sinkings against the defending fleet.
type ShipLocator struct {
	grid  *Grid
	fleet *Fleet
}

func NewShipLocator(grid *Grid, fleet *Fleet) *ShipLocator {
	return &ShipLocator{grid: grid, fleet: fleet}
}

// Locate examines the ship under a freshly confirmed hit. It reports
// whether the ship is now known to be sunk; if so the fleet is updated
// and the ring around the ship is excluded.
func (l *ShipLocator) Locate(hit Coordinates) (Sinking, bool, error) {
	cell, err := l.grid.CellAt(hit.Row, hit.Col)
	if err != nil {
		return Sinking{}, false, err
	}
	if !cell.ConfirmedShip() {
		return Sinking{}, false, cerr.ErrPositionNotConfirmedShip(hit.Row, hit.Col)
	}
	if cell.Sunk {
		return Sinking{}, false, cerr.ErrPositionAlreadySunk(hit.Row, hit.Col)
	}

	shipRun := l.findRun(hit)
	if !l.isSunk(hit, shipRun) {
		return Sinking{}, false, nil
	}

	sinking, err := l.commit(shipRun)
	if err != nil {
		return Sinking{}, false, err
	}
	return sinking, true, nil
}

// Sweep re-examines every confirmed run that is not sunk yet, until a
// pass sinks nothing. A run becomes sinkable later when a miss closes its
// boundary or when its size becomes the largest unsunk one.
func (l *ShipLocator) Sweep() ([]Sinking, error) {
	var sinkings []Sinking

	for {
		passed := swiss.NewMap[Coordinates, struct{}](uint32(l.fleet.TotalCells()))
		sankInPass := false

		for r := 0; r < l.grid.Rows(); r++ {
			for c := 0; c < l.grid.Cols(); c++ {
				pos := NewCoordinates(r, c)
				if passed.Has(pos) {
					continue
				}
				cell := l.grid.cells[r][c]
				if !cell.ConfirmedShip() || cell.Sunk {
					continue
				}

				shipRun := l.findRun(pos)
				for _, shipCell := range shipRun.cells {
					passed.Put(shipCell, struct{}{})
				}
				if !l.isSunk(pos, shipRun) {
					continue
				}

				sinking, err := l.commit(shipRun)
				if err != nil {
					return sinkings, err
				}
				sinkings = append(sinkings, sinking)
				sankInPass = true
			}
		}

		if !sankInPass {
			return sinkings, nil
		}
	}
}

func (l *ShipLocator) orientation(hit Coordinates) (dr, dc int, ok bool) {
	for _, n := range l.grid.Neighbors4(hit.Row, hit.Col) {
		if !l.grid.confirmed(n.Row, n.Col) {
			continue
		}
		if n.Row == hit.Row {
			return 0, 1, true
		}
		return 1, 0, true
	}
	return 0, 0, false
}

func (l *ShipLocator) findRun(hit Coordinates) run {
	dr, dc, ok := l.orientation(hit)
	if !ok {
		return run{
			cells: []Coordinates{hit},
			start: hit,
			end:   hit,
		}
	}

	start := hit
	for l.grid.confirmed(start.Row-dr, start.Col-dc) {
		start = NewCoordinates(start.Row-dr, start.Col-dc)
	}

	shipRun := run{
		start:          NewCoordinates(start.Row-dr, start.Col-dc),
		hasOrientation: true,
	}
	pos := start
	for l.grid.confirmed(pos.Row, pos.Col) {
		shipRun.cells = append(shipRun.cells, pos)
		pos = NewCoordinates(pos.Row+dr, pos.Col+dc)
	}
	shipRun.end = pos
	return shipRun
}

// A run is a whole ship when its length is the largest unsunk size, or
// when no unexplored cell around it could continue it.
func (l *ShipLocator) isSunk(hit Coordinates, shipRun run) bool {
	size := len(shipRun.cells)
	if !l.fleet.IsUnsunk(size) {
		return false
	}

	if largest, ok := l.fleet.LargestUnsunkSize(); ok && size == largest {
		return true
	}

	if !shipRun.hasOrientation {
		for _, n := range l.grid.Neighbors8(hit.Row, hit.Col) {
			if !l.grid.cells[n.Row][n.Col].Fired() {
				return false
			}
		}
		return true
	}

	return l.knownNotShip(shipRun.start) && l.knownNotShip(shipRun.end)
}

// Off grid positions count as known, an unfired one does not.
func (l *ShipLocator) knownNotShip(pos Coordinates) bool {
	if !l.grid.InRange(pos.Row, pos.Col) {
		return true
	}
	return l.grid.cells[pos.Row][pos.Col].Fired()
}

func (l *ShipLocator) commit(shipRun run) (Sinking, error) {
	size := len(shipRun.cells)
	if err := l.fleet.MarkSunkBySize(size); err != nil {
		return Sinking{}, err
	}

	sinking := Sinking{
		Size:  size,
		Cells: shipRun.cells,
	}
	for _, shipCell := range shipRun.cells {
		l.grid.markSunk(shipCell.Row, shipCell.Col)
	}

	// ships never touch, not even diagonally, so the ring is empty
	for _, shipCell := range shipRun.cells {
		for _, n := range l.grid.Neighbors8(shipCell.Row, shipCell.Col) {
			if l.grid.cells[n.Row][n.Col].Fired() {
				continue
			}
			l.grid.markExcluded(n.Row, n.Col)
			sinking.AutoExcluded = append(sinking.AutoExcluded, n)
		}
	}
	return sinking, nil
}
