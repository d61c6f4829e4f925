package battleship_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	cerr "github.com/saeidalz13/battleship-tracker/internal/error"
	mb "github.com/saeidalz13/battleship-tracker/models/battleship"
)

func TestNewFleet(t *testing.T) {
	_, err := mb.NewFleet(0)
	require.ErrorIs(t, err, cerr.ErrInvalidConfig)

	fleet, err := mb.NewFleet(4)
	require.NoError(t, err)
	require.Equal(t, 10, fleet.TotalCells())
	require.Equal(t, []mb.Ship{{Size: 1}, {Size: 2}, {Size: 3}, {Size: 4}}, fleet.Ships())
	require.False(t, fleet.AllSunk())
}

func TestLargestUnsunkSizeDecreases(t *testing.T) {
	fleet, err := mb.NewFleet(3)
	require.NoError(t, err)

	largest, ok := fleet.LargestUnsunkSize()
	require.True(t, ok)
	require.Equal(t, 3, largest)

	// sinking a smaller ship leaves the largest alone
	require.NoError(t, fleet.MarkSunkBySize(2))
	largest, _ = fleet.LargestUnsunkSize()
	require.Equal(t, 3, largest)

	for _, size := range []int{3, 1} {
		before, _ := fleet.LargestUnsunkSize()
		require.NoError(t, fleet.MarkSunkBySize(size))
		after, ok := fleet.LargestUnsunkSize()
		if ok {
			require.Less(t, after, before)
		}
	}

	_, ok = fleet.LargestUnsunkSize()
	require.False(t, ok)
	require.True(t, fleet.AllSunk())
	require.Equal(t, 3, fleet.SunkCount())
}

func TestMarkSunkBySizeErrors(t *testing.T) {
	fleet, err := mb.NewFleet(2)
	require.NoError(t, err)

	tests := []struct {
		name        string
		size        int
		expectedErr error
	}{
		{name: "size not in fleet", size: 3, expectedErr: cerr.ErrNoSuchSize},
		{name: "zero size", size: 0, expectedErr: cerr.ErrNoSuchSize},
		{name: "first sink", size: 2},
		{name: "second sink of same size", size: 2, expectedErr: cerr.ErrAlreadySunk},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := fleet.MarkSunkBySize(test.size)
			if test.expectedErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, test.expectedErr)
			require.ErrorIs(t, err, cerr.ErrPrecondition)
		})
	}

	require.False(t, fleet.IsUnsunk(2))
	require.True(t, fleet.IsUnsunk(1))
}
