package battleship_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	cerr "github.com/saeidalz13/battleship-tracker/internal/error"
	mb "github.com/saeidalz13/battleship-tracker/models/battleship"
)

func TestMatchManager(t *testing.T) {
	bmm := mb.NewBattleshipMatchManager()
	layout := layoutFromCells(3, 3, mb.NewCoordinates(0, 0))
	config := mb.Config{Rows: 3, Cols: 3, NumberOfShips: 1}

	_, err := bmm.CreateMatch(mb.Config{}, layout, truthOracle(layout))
	require.ErrorIs(t, err, cerr.ErrInvalidConfig)
	require.Zero(t, bmm.Count())

	match, err := bmm.CreateMatch(config, layout, truthOracle(layout))
	require.NoError(t, err)

	found, err := bmm.GetMatch(match.Uuid())
	require.NoError(t, err)
	require.Same(t, match, found)

	bmm.TerminateMatch(match.Uuid())
	_, err = bmm.GetMatch(match.Uuid())
	require.ErrorIs(t, err, cerr.ErrMatchNotExists)
}

func TestMatchManagerConcurrentAccess(t *testing.T) {
	bmm := mb.NewBattleshipMatchManager()
	layout := layoutFromCells(3, 3, mb.NewCoordinates(0, 0))
	config := mb.Config{Rows: 3, Cols: 3, NumberOfShips: 1}

	var wg sync.WaitGroup
	uuids := make(chan string, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			match, err := bmm.CreateMatch(config, layout, truthOracle(layout))
			if err != nil {
				return
			}
			uuids <- match.Uuid()
		}()
	}
	wg.Wait()
	close(uuids)

	for matchUuid := range uuids {
		_, err := bmm.GetMatch(matchUuid)
		require.NoError(t, err)
	}
	require.Equal(t, 20, bmm.Count())
}
