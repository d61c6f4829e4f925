package console

import (
	"fmt"
	"strconv"
	"strings"

	cerr "github.com/saeidalz13/battleship-tracker/internal/error"
	mb "github.com/saeidalz13/battleship-tracker/models/battleship"
)

// MaxCols is the widest board a single column letter can address.
const MaxCols = 26

// ParseCoordinates reads a position such as "B3": column letter, then
// 1-based row. Rows and cols bound the accepted range.
func ParseCoordinates(text string, rows, cols int) (mb.Coordinates, error) {
	text = strings.ToUpper(strings.TrimSpace(text))
	if len(text) < 2 {
		return mb.Coordinates{}, cerr.ErrInvalidCoordinatesText(text)
	}

	letter := text[0]
	if letter < 'A' || letter > 'Z' {
		return mb.Coordinates{}, cerr.ErrInvalidCoordinatesText(text)
	}

	rowNumber, err := strconv.Atoi(text[1:])
	if err != nil {
		return mb.Coordinates{}, cerr.ErrInvalidCoordinatesText(text)
	}

	pos := mb.NewCoordinates(rowNumber-1, int(letter-'A'))
	if pos.Row < 0 || pos.Row >= rows || pos.Col >= cols {
		return mb.Coordinates{}, cerr.ErrRowOrColOutOfGridBound(pos.Row, pos.Col)
	}
	return pos, nil
}

func FormatCoordinates(pos mb.Coordinates) string {
	return fmt.Sprintf("%c%d", 'A'+rune(pos.Col), pos.Row+1)
}

// ParsePlacement reads "B2 h" or "B2 v" and returns the cells of a ship
// of the given size starting there.
func ParsePlacement(text string, size, rows, cols int) ([]mb.Coordinates, error) {
	fields := strings.Fields(text)
	if len(fields) == 1 && size == 1 {
		fields = append(fields, "h")
	}
	if len(fields) != 2 {
		return nil, cerr.ErrInvalidPlacementText(text)
	}

	start, err := ParseCoordinates(fields[0], rows, cols)
	if err != nil {
		return nil, err
	}

	dr, dc := 0, 1
	switch strings.ToLower(fields[1]) {
	case "h":
	case "v":
		dr, dc = 1, 0
	default:
		return nil, cerr.ErrInvalidPlacementText(text)
	}

	cells := make([]mb.Coordinates, 0, size)
	for i := 0; i < size; i++ {
		pos := mb.NewCoordinates(start.Row+i*dr, start.Col+i*dc)
		if pos.Row >= rows || pos.Col >= cols {
			return nil, cerr.ErrRowOrColOutOfGridBound(pos.Row, pos.Col)
		}
		cells = append(cells, pos)
	}
	return cells, nil
}
