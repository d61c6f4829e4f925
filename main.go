package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/saeidalz13/battleship-tracker/internal/console"
	cerr "github.com/saeidalz13/battleship-tracker/internal/error"
	mb "github.com/saeidalz13/battleship-tracker/models/battleship"
)

func main() {
	rows := flag.Int("rows", 10, "number of grid rows")
	cols := flag.Int("cols", 10, "number of grid columns (at most 26)")
	numberOfShips := flag.Int("ships", 5, "number of ships, sized 1..n")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	log.SetReportTimestamp(false)
	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	config := mb.Config{Rows: *rows, Cols: *cols, NumberOfShips: *numberOfShips}
	if err := config.Validate(); err != nil {
		log.Fatal("main", "err", err)
	}
	if config.Cols > console.MaxCols {
		log.Fatal("main", "err", cerr.ErrInvalidGridSize(config.Rows, config.Cols), "max cols", console.MaxCols)
	}

	prompter := console.NewPrompter(os.Stdin, os.Stdout)
	if err := play(prompter, config); err != nil {
		if errors.Is(err, io.EOF) {
			prompter.Say("\nInput closed, leaving the match.")
			return
		}
		log.Fatal("main", "err", err)
	}
}

// play runs one match in the terminal. The human opponent's answers
// come in through the prompter whenever the player fires.
func play(p *console.Prompter, config mb.Config) error {
	p.Say(fmt.Sprintf("Place your %d ships on the %dx%d board.", config.NumberOfShips, config.Rows, config.Cols))
	layout, err := p.AskLayout(config)
	if err != nil {
		return err
	}

	oracle := mb.OracleFunc(func(_ mb.Side, pos mb.Coordinates) (bool, error) {
		return p.AskYesNo(fmt.Sprintf("Does opponent have a ship at %s?", console.FormatCoordinates(pos)))
	})

	playerGoesFirst, err := p.AskYesNo("Do you go first?")
	if err != nil {
		return err
	}

	match, err := mb.StartMatch(config, playerGoesFirst, layout, oracle)
	if err != nil {
		return err
	}
	log.Debug("main [play]", "match", match.Uuid())

	for match.Outcome() == mb.OutcomeOngoing {
		renderMatch(p, match)

		turn, err := match.CurrentTurn()
		if err != nil {
			return err
		}

		question := "Where do you want to fire?"
		if turn == mb.SideOpponent {
			question = "Where did your opponent fire?"
		}
		pos, err := p.AskCoordinates(question, config.Rows, config.Cols)
		if err != nil {
			return err
		}

		result, err := match.Fire(turn, pos.Row, pos.Col)
		if errors.Is(err, cerr.ErrAlreadyFired) {
			p.Say(fmt.Sprintf("%s was already fired at, pick another position.", console.FormatCoordinates(pos)))
			continue
		}
		if err != nil {
			return err
		}
		p.Say(describeShot(result))
	}

	renderMatch(p, match)
	if match.Outcome() == mb.OutcomeWonByPlayer {
		p.Say("You won, every opponent ship is sunk!")
	} else {
		p.Say("Your opponent won this time.")
	}
	return nil
}

func renderMatch(p *console.Prompter, match *mb.Match) {
	p.Print("\nOpponent board\n")
	p.Print(console.RenderBoard(match.Board(mb.SideOpponent)))
	p.Say("Opponent fleet  " + console.RenderFleet(match.Fleet(mb.SideOpponent)))
	p.Print("\nYour board\n")
	p.Print(console.RenderBoard(match.Board(mb.SidePlayer)))
	p.Say("Your fleet  " + console.RenderFleet(match.Fleet(mb.SidePlayer)))
}

func describeShot(result mb.FireResult) string {
	who := "You"
	if result.Attacker == mb.SideOpponent {
		who = "Your opponent"
	}
	at := console.FormatCoordinates(result.Coordinates)

	var text string
	switch result.Result {
	case mb.ShotMiss:
		text = fmt.Sprintf("%s missed at %s.", who, at)
	case mb.ShotHit:
		text = fmt.Sprintf("%s hit at %s.", who, at)
	default:
		text = fmt.Sprintf("%s hit and sank the ship of size %d at %s.", who, result.SunkShipSize, at)
	}

	for _, size := range result.SunkShipSizes {
		if size != result.SunkShipSize {
			text += fmt.Sprintf(" The ship of size %d is sunk too.", size)
		}
	}
	return text
}
