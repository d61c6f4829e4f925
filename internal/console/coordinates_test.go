package console_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/saeidalz13/battleship-tracker/internal/console"
	cerr "github.com/saeidalz13/battleship-tracker/internal/error"
	mb "github.com/saeidalz13/battleship-tracker/models/battleship"
)

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		text    string
		want    mb.Coordinates
		wantErr bool
	}{
		{text: "A1", want: mb.NewCoordinates(0, 0)},
		{text: "b3", want: mb.NewCoordinates(2, 1)},
		{text: " J10 ", want: mb.NewCoordinates(9, 9)},
		{text: "K1", wantErr: true},
		{text: "A11", wantErr: true},
		{text: "A0", wantErr: true},
		{text: "3B", wantErr: true},
		{text: "B", wantErr: true},
		{text: "", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.text, func(t *testing.T) {
			got, err := console.ParseCoordinates(test.text, 10, 10)
			if test.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.want, got)
		})
	}
}

func TestFormatCoordinatesRoundTrip(t *testing.T) {
	pos := mb.NewCoordinates(2, 1)
	require.Equal(t, "B3", console.FormatCoordinates(pos))

	parsed, err := console.ParseCoordinates(console.FormatCoordinates(pos), 5, 5)
	require.NoError(t, err)
	require.Equal(t, pos, parsed)
}

func TestParsePlacement(t *testing.T) {
	cells, err := console.ParsePlacement("B2 v", 3, 5, 5)
	require.NoError(t, err)
	require.Equal(t, []mb.Coordinates{{Row: 1, Col: 1}, {Row: 2, Col: 1}, {Row: 3, Col: 1}}, cells)

	cells, err = console.ParsePlacement("C5", 1, 5, 5)
	require.NoError(t, err)
	require.Equal(t, []mb.Coordinates{{Row: 4, Col: 2}}, cells)

	_, err = console.ParsePlacement("D1 h", 3, 5, 5)
	require.ErrorIs(t, err, cerr.ErrOutOfRange)

	_, err = console.ParsePlacement("A1 d", 2, 5, 5)
	require.Error(t, err)
}
