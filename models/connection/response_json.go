package connection

import (
	mb "github.com/saeidalz13/battleship-tracker/models/battleship"
)

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespCreateMatch struct {
	MatchUuid string        `json:"match_uuid"`
	Config    mb.Config     `json:"config"`
	Phase     mb.MatchPhase `json:"phase"`
	Turn      *mb.Side      `json:"turn,omitempty"`
}

type RespChooseFirstMove struct {
	Phase mb.MatchPhase `json:"phase"`
	Turn  mb.Side       `json:"turn"`
}

type RespFire struct {
	mb.FireResult
	Turn    mb.Side    `json:"turn"`
	Outcome mb.Outcome `json:"outcome"`
}

type RespMatchState struct {
	MatchUuid                  string        `json:"match_uuid"`
	Phase                      mb.MatchPhase `json:"phase"`
	Turn                       *mb.Side      `json:"turn,omitempty"`
	Outcome                    mb.Outcome    `json:"outcome"`
	PlayerFleet                []mb.Ship     `json:"player_fleet"`
	OpponentFleet              []mb.Ship     `json:"opponent_fleet"`
	PlayerConfirmedShipCells   int           `json:"player_confirmed_ship_cells"`
	OpponentConfirmedShipCells int           `json:"opponent_confirmed_ship_cells"`
	PlayerShotsReceived        int           `json:"player_shots_received"`
	OpponentShotsReceived      int           `json:"opponent_shots_received"`
	ShotsFired                 int           `json:"shots_fired"`
}

type RespEndMatch struct {
	Outcome mb.Outcome `json:"outcome"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}
