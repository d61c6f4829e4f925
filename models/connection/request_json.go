package connection

import (
	mb "github.com/saeidalz13/battleship-tracker/models/battleship"
)

// Zero values mean the server defaults apply.
type ReqCreateMatch struct {
	Rows             int       `json:"rows"`
	Cols             int       `json:"cols"`
	NumberOfShips    int       `json:"number_of_ships"`
	PlayerShipLayout mb.Layout `json:"player_ship_layout"`
	PlayerGoesFirst  *bool     `json:"player_goes_first,omitempty"`
}

type ReqChooseFirstMove struct {
	MatchUuid       string `json:"match_uuid"`
	PlayerGoesFirst bool   `json:"player_goes_first"`
}

// IsShip carries the human answer and is required when the player fires.
type ReqFire struct {
	MatchUuid string   `json:"match_uuid"`
	Attacker  *mb.Side `json:"attacker"`
	Row       int      `json:"row"`
	Col       int      `json:"col"`
	IsShip    *bool    `json:"is_ship,omitempty"`
}

type ReqMatchState struct {
	MatchUuid string `json:"match_uuid"`
}
