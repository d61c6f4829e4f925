package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mitchellh/go-wordwrap"

	cerr "github.com/saeidalz13/battleship-tracker/internal/error"
	mb "github.com/saeidalz13/battleship-tracker/models/battleship"
)

const defaultWrapWidth uint = 60

// Prompter asks the operator questions until a valid answer arrives.
// Invalid input is reported and asked again; only read errors end a
// prompt early.
type Prompter struct {
	in    *bufio.Reader
	out   io.Writer
	width uint
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:    bufio.NewReader(in),
		out:   out,
		width: defaultWrapWidth,
	}
}

func (p *Prompter) Say(text string) {
	fmt.Fprintln(p.out, wordwrap.WrapString(text, p.width))
}

func (p *Prompter) Print(text string) {
	fmt.Fprint(p.out, text)
}

func (p *Prompter) ask(question string) (string, error) {
	fmt.Fprintf(p.out, "%s ", wordwrap.WrapString(question, p.width))

	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *Prompter) AskYesNo(question string) (bool, error) {
	for {
		answer, err := p.ask(question + " (y/n):")
		if err != nil {
			return false, err
		}

		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		log.Debug("console [AskYesNo]", "answer", answer)
		p.Say("Please answer y or n.")
	}
}

func (p *Prompter) AskCoordinates(question string, rows, cols int) (mb.Coordinates, error) {
	for {
		answer, err := p.ask(question)
		if err != nil {
			return mb.Coordinates{}, err
		}

		pos, err := ParseCoordinates(answer, rows, cols)
		if err == nil {
			return pos, nil
		}
		p.Say(err.Error())
	}
}

// AskLayout places ships from the largest down, one prompt per ship.
// Placements that leave the grid, overlap another ship or touch one
// (diagonals included) are refused; touching ships would read as one
// longer ship once hit.
func (p *Prompter) AskLayout(config mb.Config) (mb.Layout, error) {
	layout := make(mb.Layout, config.Rows)
	for r := range layout {
		layout[r] = make([]bool, config.Cols)
	}

	for size := config.NumberOfShips; size >= 1; size-- {
		for {
			answer, err := p.ask(fmt.Sprintf("Place your ship of size %d (e.g. B2 h, ships may not touch):", size))
			if err != nil {
				return nil, err
			}

			cells, err := ParsePlacement(answer, size, config.Rows, config.Cols)
			if err == nil {
				err = placeShip(layout, cells)
			}
			if err != nil {
				p.Say(err.Error())
				continue
			}
			break
		}
	}
	return layout, nil
}

func placeShip(layout mb.Layout, cells []mb.Coordinates) error {
	for _, c := range cells {
		if layout[c.Row][c.Col] {
			return cerr.ErrShipPlacementOverlap(c.Row, c.Col)
		}
	}
	for _, c := range cells {
		for r := c.Row - 1; r <= c.Row+1; r++ {
			for col := c.Col - 1; col <= c.Col+1; col++ {
				if r >= 0 && r < len(layout) && col >= 0 && col < len(layout[r]) && layout[r][col] {
					return cerr.ErrShipPlacementTouching(c.Row, c.Col)
				}
			}
		}
	}
	for _, c := range cells {
		layout[c.Row][c.Col] = true
	}
	return nil
}
