package battleship_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	cerr "github.com/saeidalz13/battleship-tracker/internal/error"
	mb "github.com/saeidalz13/battleship-tracker/models/battleship"
)

// reveal plays one shot at the opponent-facing grid the way a match
// does: fire, confirm on a hit, locate, then sweep.
func reveal(t *testing.T, grid *mb.Grid, locator *mb.ShipLocator, truth mb.Layout, pos mb.Coordinates) []mb.Sinking {
	t.Helper()

	require.NoError(t, grid.MarkFired(pos.Row, pos.Col))

	var sinkings []mb.Sinking
	if truth[pos.Row][pos.Col] {
		require.NoError(t, grid.MarkConfirmedShip(pos.Row, pos.Col))
		sinking, sunk, err := locator.Locate(pos)
		require.NoError(t, err)
		if sunk {
			sinkings = append(sinkings, sinking)
		}
	}

	swept, err := locator.Sweep()
	require.NoError(t, err)
	return append(sinkings, swept...)
}

func layoutFromCells(rows, cols int, cells ...mb.Coordinates) mb.Layout {
	layout := make(mb.Layout, rows)
	for r := range layout {
		layout[r] = make([]bool, cols)
	}
	for _, c := range cells {
		layout[c.Row][c.Col] = true
	}
	return layout
}

func newLocator(t *testing.T, rows, cols, numberOfShips int) (*mb.Grid, *mb.Fleet, *mb.ShipLocator) {
	t.Helper()

	grid, err := mb.NewGrid(rows, cols)
	require.NoError(t, err)
	fleet, err := mb.NewFleet(numberOfShips)
	require.NoError(t, err)
	return grid, fleet, mb.NewShipLocator(grid, fleet)
}

func TestLocatePreconditions(t *testing.T) {
	grid, _, locator := newLocator(t, 3, 3, 2)

	_, _, err := locator.Locate(mb.NewCoordinates(5, 0))
	require.ErrorIs(t, err, cerr.ErrOutOfRange)

	_, _, err = locator.Locate(mb.NewCoordinates(0, 0))
	require.ErrorIs(t, err, cerr.ErrPrecondition)

	require.NoError(t, grid.MarkFired(0, 0))
	_, _, err = locator.Locate(mb.NewCoordinates(0, 0))
	require.ErrorIs(t, err, cerr.ErrPrecondition)
}

func TestLocateLargestShipSinksWithoutBoundaries(t *testing.T) {
	grid, fleet, locator := newLocator(t, 5, 5, 3)
	truth := layoutFromCells(5, 5,
		mb.NewCoordinates(1, 1), mb.NewCoordinates(2, 1), mb.NewCoordinates(3, 1),
	)

	require.Empty(t, reveal(t, grid, locator, truth, mb.NewCoordinates(2, 1)))
	require.Empty(t, reveal(t, grid, locator, truth, mb.NewCoordinates(1, 1)))

	sinkings := reveal(t, grid, locator, truth, mb.NewCoordinates(3, 1))
	require.Len(t, sinkings, 1)
	require.Equal(t, 3, sinkings[0].Size)
	require.Equal(t, []mb.Coordinates{{Row: 1, Col: 1}, {Row: 2, Col: 1}, {Row: 3, Col: 1}}, sinkings[0].Cells)
	// 3x5 block around the ship minus the ship itself
	require.Len(t, sinkings[0].AutoExcluded, 12)
	require.False(t, fleet.IsUnsunk(3))

	for _, c := range sinkings[0].Cells {
		cell, _ := grid.CellAt(c.Row, c.Col)
		require.True(t, cell.Sunk)
	}
	for _, c := range sinkings[0].AutoExcluded {
		cell, _ := grid.CellAt(c.Row, c.Col)
		require.True(t, cell.AutoExcluded)
		require.False(t, cell.ConfirmedShip())
	}
}

func TestLocateSmallerShipWaitsForBoundaries(t *testing.T) {
	grid, fleet, locator := newLocator(t, 4, 4, 3)
	truth := layoutFromCells(4, 4,
		mb.NewCoordinates(0, 0), mb.NewCoordinates(0, 1),
		mb.NewCoordinates(2, 0), mb.NewCoordinates(2, 1), mb.NewCoordinates(2, 2),
		mb.NewCoordinates(0, 3),
	)

	require.Empty(t, reveal(t, grid, locator, truth, mb.NewCoordinates(0, 0)))
	// run of 2 while 3 is still afloat and (0, 2) is unexplored
	require.Empty(t, reveal(t, grid, locator, truth, mb.NewCoordinates(0, 1)))

	// the miss closes the run: (0, -1) is off grid and (0, 2) is fired
	sinkings := reveal(t, grid, locator, truth, mb.NewCoordinates(0, 2))
	require.Len(t, sinkings, 1)
	require.Equal(t, 2, sinkings[0].Size)
	require.Equal(t, []mb.Coordinates{{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}}, sinkings[0].AutoExcluded)

	largest, ok := fleet.LargestUnsunkSize()
	require.True(t, ok)
	require.Equal(t, 3, largest)
}

func TestLocateIsolatedHitWithFiredSurroundings(t *testing.T) {
	grid, fleet, locator := newLocator(t, 3, 3, 2)
	truth := layoutFromCells(3, 3, mb.NewCoordinates(1, 1))

	for _, pos := range grid.Neighbors8(1, 1) {
		require.Empty(t, reveal(t, grid, locator, truth, pos))
	}

	sinkings := reveal(t, grid, locator, truth, mb.NewCoordinates(1, 1))
	require.Len(t, sinkings, 1)
	require.Equal(t, 1, sinkings[0].Size)
	require.Empty(t, sinkings[0].AutoExcluded)
	require.True(t, fleet.IsUnsunk(2))
}

func TestSweepCascadesToSmallerShips(t *testing.T) {
	grid, fleet, locator := newLocator(t, 5, 5, 3)
	truth := layoutFromCells(5, 5,
		mb.NewCoordinates(0, 0), mb.NewCoordinates(0, 1), mb.NewCoordinates(0, 2),
		mb.NewCoordinates(2, 4), mb.NewCoordinates(3, 4),
		mb.NewCoordinates(4, 0),
	)

	require.Empty(t, reveal(t, grid, locator, truth, mb.NewCoordinates(4, 0)))
	require.Empty(t, reveal(t, grid, locator, truth, mb.NewCoordinates(0, 0)))
	require.Empty(t, reveal(t, grid, locator, truth, mb.NewCoordinates(0, 1)))

	sinkings := reveal(t, grid, locator, truth, mb.NewCoordinates(0, 2))
	require.Len(t, sinkings, 1)
	require.Equal(t, 3, sinkings[0].Size)

	require.Empty(t, reveal(t, grid, locator, truth, mb.NewCoordinates(2, 4)))

	// sinking 2 makes 1 the largest, so the lone hit at (4, 0) goes too
	sinkings = reveal(t, grid, locator, truth, mb.NewCoordinates(3, 4))
	require.Len(t, sinkings, 2)
	require.Equal(t, 2, sinkings[0].Size)
	require.Equal(t, 1, sinkings[1].Size)
	require.Equal(t, []mb.Coordinates{{Row: 4, Col: 0}}, sinkings[1].Cells)

	require.True(t, fleet.AllSunk())
	require.Equal(t, fleet.TotalCells(), grid.CountConfirmedShipCells())
}

func TestSweepWithoutConfirmedCells(t *testing.T) {
	_, _, locator := newLocator(t, 3, 3, 1)

	sinkings, err := locator.Sweep()
	require.NoError(t, err)
	require.Empty(t, sinkings)
}

// randomLayout places ships 1..n so that no two ships share an edge or
// a corner.
func randomLayout(rng *rand.Rand, rows, cols, numberOfShips int) mb.Layout {
	for {
		layout := layoutFromCells(rows, cols)
		placedAll := true

		for size := numberOfShips; size >= 1 && placedAll; size-- {
			placed := false
			for attempt := 0; attempt < 200 && !placed; attempt++ {
				dr, dc := 0, 1
				if rng.Intn(2) == 0 {
					dr, dc = 1, 0
				}
				row, col := rng.Intn(rows), rng.Intn(cols)

				cells := make([]mb.Coordinates, 0, size)
				for i := 0; i < size; i++ {
					cells = append(cells, mb.NewCoordinates(row+i*dr, col+i*dc))
				}
				if !fitsLayout(layout, cells) {
					continue
				}
				for _, c := range cells {
					layout[c.Row][c.Col] = true
				}
				placed = true
			}
			placedAll = placed
		}

		if placedAll {
			return layout
		}
	}
}

func fitsLayout(layout mb.Layout, cells []mb.Coordinates) bool {
	rows, cols := len(layout), len(layout[0])
	for _, c := range cells {
		if c.Row < 0 || c.Row >= rows || c.Col < 0 || c.Col >= cols {
			return false
		}
		for r := c.Row - 1; r <= c.Row+1; r++ {
			for col := c.Col - 1; col <= c.Col+1; col++ {
				if r >= 0 && r < rows && col >= 0 && col < cols && layout[r][col] {
					return false
				}
			}
		}
	}
	return true
}

func TestAutoExcludedCellsNeverHoldShips(t *testing.T) {
	configs := []struct {
		rows, cols, numberOfShips int
	}{
		{rows: 5, cols: 5, numberOfShips: 3},
		{rows: 8, cols: 8, numberOfShips: 4},
		{rows: 10, cols: 10, numberOfShips: 5},
		{rows: 6, cols: 9, numberOfShips: 4},
	}

	for _, config := range configs {
		for seed := int64(1); seed <= 40; seed++ {
			rng := rand.New(rand.NewSource(seed))
			truth := randomLayout(rng, config.rows, config.cols, config.numberOfShips)
			grid, fleet, locator := newLocator(t, config.rows, config.cols, config.numberOfShips)

			for _, i := range rng.Perm(config.rows * config.cols) {
				pos := mb.NewCoordinates(i/config.cols, i%config.cols)
				if cell, _ := grid.CellAt(pos.Row, pos.Col); cell.Fired() {
					continue
				}

				for _, sinking := range reveal(t, grid, locator, truth, pos) {
					require.Len(t, sinking.Cells, sinking.Size)
					for _, c := range sinking.Cells {
						require.True(t, truth[c.Row][c.Col], "seed %d: sunk cell %+v has no ship", seed, c)
					}
					for _, c := range sinking.AutoExcluded {
						require.False(t, truth[c.Row][c.Col], "seed %d: excluded cell %+v holds a ship", seed, c)
					}
				}
				require.LessOrEqual(t, grid.CountConfirmedShipCells(), fleet.TotalCells())
			}

			require.True(t, fleet.AllSunk(), "seed %d", seed)
			require.Equal(t, fleet.TotalCells(), grid.CountConfirmedShipCells())
		}
	}
}
