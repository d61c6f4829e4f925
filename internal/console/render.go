package console

import (
	"fmt"
	"strings"

	mb "github.com/saeidalz13/battleship-tracker/models/battleship"
)

const (
	symbolUnknown  = '.'
	symbolShip     = 'S'
	symbolMiss     = 'o'
	symbolHit      = 'x'
	symbolSunk     = '#'
	symbolExcluded = '-'
)

func cellSymbol(cell mb.Cell) rune {
	switch {
	case cell.Sunk:
		return symbolSunk
	case cell.State == mb.CellFiredHit:
		return symbolHit
	case cell.State == mb.CellFiredMiss:
		return symbolMiss
	case cell.AutoExcluded:
		return symbolExcluded
	case cell.HasShipTruth:
		return symbolShip
	default:
		return symbolUnknown
	}
}

// RenderBoard draws a board with column letters on top and 1-based row
// numbers on the left.
func RenderBoard(board mb.BoardView) string {
	var sb strings.Builder

	sb.WriteString("    ")
	for c := 0; c < board.Cols(); c++ {
		sb.WriteString(fmt.Sprintf("%c ", 'A'+rune(c)))
	}
	sb.WriteString("\n")

	for r := 0; r < board.Rows(); r++ {
		sb.WriteString(fmt.Sprintf("%3d ", r+1))
		for c := 0; c < board.Cols(); c++ {
			cell, err := board.CellAt(r, c)
			if err != nil {
				sb.WriteRune('?')
			} else {
				sb.WriteRune(cellSymbol(cell))
			}
			sb.WriteRune(' ')
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func RenderFleet(ships []mb.Ship) string {
	parts := make([]string, 0, len(ships))
	for _, ship := range ships {
		status := "afloat"
		if ship.Sunk {
			status = "sunk"
		}
		parts = append(parts, fmt.Sprintf("%d:%s", ship.Size, status))
	}
	return strings.Join(parts, "  ")
}
