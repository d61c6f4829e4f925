package api

import (
	cerr "github.com/saeidalz13/battleship-tracker/internal/error"
	mb "github.com/saeidalz13/battleship-tracker/models/battleship"
)

// answerOracle relays the answer that came with the current Fire
// request. It holds nothing between requests, so a match never reuses
// a stale answer.
type answerOracle struct {
	pos    mb.Coordinates
	isShip *bool
}

var _ mb.Oracle = (*answerOracle)(nil)

func (o *answerOracle) setAnswer(pos mb.Coordinates, isShip *bool) {
	o.pos = pos
	o.isShip = isShip
}

func (o *answerOracle) clear() {
	o.isShip = nil
}

func (o *answerOracle) HasShip(_ mb.Side, pos mb.Coordinates) (bool, error) {
	if o.isShip == nil || o.pos != pos {
		return false, cerr.ErrAnswerMissingForPosition(pos.Row, pos.Col)
	}
	return *o.isShip, nil
}
