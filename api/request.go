package api

import (
	"encoding/json"

	"github.com/charmbracelet/log"

	cerr "github.com/saeidalz13/battleship-tracker/internal/error"
	mb "github.com/saeidalz13/battleship-tracker/models/battleship"
	mc "github.com/saeidalz13/battleship-tracker/models/connection"
)

// MaxGridSide bounds rows and cols of matches created over the wire.
const MaxGridSide = 100

type RequestHandler interface {
	HandleCreateMatch(mm mb.MatchManager, defaults mb.Config, oracle mb.Oracle) (*mb.Match, mc.Message[mc.RespCreateMatch])
	HandleChooseFirstMove(mm mb.MatchManager, sessionMatch *mb.Match) mc.Message[mc.RespChooseFirstMove]
	HandleFire(mm mb.MatchManager, sessionMatch *mb.Match, oracle *answerOracle) mc.Message[mc.RespFire]
	HandleMatchState(mm mb.MatchManager, sessionMatch *mb.Match) mc.Message[mc.RespMatchState]
}

// Request wraps one incoming frame; each Handle method decodes the
// payload it expects and builds the reply.
type Request struct {
	payload []byte
}

var _ RequestHandler = (*Request)(nil)

func NewRequest(payload ...[]byte) Request {
	if len(payload) > 1 {
		log.Warn("api [NewRequest]", "msg", "only the first payload is used")
	}
	if len(payload) == 0 {
		return Request{}
	}
	return Request{payload: payload[0]}
}

// findSessionMatch resolves matchUuid and makes sure it is the match the
// session owns; a session cannot drive another session's match.
func findSessionMatch(mm mb.MatchManager, sessionMatch *mb.Match, matchUuid string) (*mb.Match, error) {
	match, err := mm.GetMatch(matchUuid)
	if err != nil {
		return nil, err
	}
	if match != sessionMatch {
		return nil, cerr.ErrMatchNotExist(matchUuid)
	}
	return match, nil
}

func (r Request) HandleCreateMatch(mm mb.MatchManager, defaults mb.Config, oracle mb.Oracle) (*mb.Match, mc.Message[mc.RespCreateMatch]) {
	resp := mc.NewMessage[mc.RespCreateMatch](mc.CodeCreateMatch)

	var req mc.Message[mc.ReqCreateMatch]
	if err := json.Unmarshal(r.payload, &req); err != nil {
		resp.AddError(err.Error(), cerr.ConstErrInvalidPayload)
		return nil, resp
	}

	config := defaults
	if req.Payload.Rows != 0 {
		config.Rows = req.Payload.Rows
	}
	if req.Payload.Cols != 0 {
		config.Cols = req.Payload.Cols
	}
	if req.Payload.NumberOfShips != 0 {
		config.NumberOfShips = req.Payload.NumberOfShips
	}

	if config.Rows > MaxGridSide || config.Cols > MaxGridSide {
		resp.AddError(cerr.ErrGridTooLarge(config.Rows, config.Cols, MaxGridSide).Error(), cerr.ConstErrCreateMatch)
		return nil, resp
	}

	match, err := mm.CreateMatch(config, req.Payload.PlayerShipLayout, oracle)
	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrCreateMatch)
		return nil, resp
	}

	payload := mc.RespCreateMatch{
		MatchUuid: match.Uuid(),
		Config:    match.Config(),
	}
	if req.Payload.PlayerGoesFirst != nil {
		if err := match.ChooseFirstMove(*req.Payload.PlayerGoesFirst); err != nil {
			mm.TerminateMatch(match.Uuid())
			resp.AddError(err.Error(), cerr.ConstErrCreateMatch)
			return nil, resp
		}
		turn, _ := match.CurrentTurn()
		payload.Turn = &turn
	}
	payload.Phase = match.Phase()

	resp.AddPayload(payload)
	return match, resp
}

func (r Request) HandleChooseFirstMove(mm mb.MatchManager, sessionMatch *mb.Match) mc.Message[mc.RespChooseFirstMove] {
	resp := mc.NewMessage[mc.RespChooseFirstMove](mc.CodeChooseFirstMove)

	var req mc.Message[mc.ReqChooseFirstMove]
	if err := json.Unmarshal(r.payload, &req); err != nil {
		resp.AddError(err.Error(), cerr.ConstErrInvalidPayload)
		return resp
	}

	match, err := findSessionMatch(mm, sessionMatch, req.Payload.MatchUuid)
	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrChooseFirstMove)
		return resp
	}

	if err := match.ChooseFirstMove(req.Payload.PlayerGoesFirst); err != nil {
		resp.AddError(err.Error(), cerr.ConstErrChooseFirstMove)
		return resp
	}

	turn, _ := match.CurrentTurn()
	resp.AddPayload(mc.RespChooseFirstMove{Phase: match.Phase(), Turn: turn})
	return resp
}

// HandleFire fires for the attacker in the payload. When the player
// fires, is_ship is the human opponent's answer and is handed to the
// match through the session's answer oracle.
func (r Request) HandleFire(mm mb.MatchManager, sessionMatch *mb.Match, oracle *answerOracle) mc.Message[mc.RespFire] {
	resp := mc.NewMessage[mc.RespFire](mc.CodeFire)

	var req mc.Message[mc.ReqFire]
	if err := json.Unmarshal(r.payload, &req); err != nil {
		resp.AddError(err.Error(), cerr.ConstErrInvalidPayload)
		return resp
	}
	if req.Payload.Attacker == nil {
		resp.AddError(cerr.ErrKeyNotExists("attacker").Error(), cerr.ConstErrInvalidPayload)
		return resp
	}

	match, err := findSessionMatch(mm, sessionMatch, req.Payload.MatchUuid)
	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrFireFailed)
		return resp
	}

	pos := mb.NewCoordinates(req.Payload.Row, req.Payload.Col)
	oracle.setAnswer(pos, req.Payload.IsShip)
	defer oracle.clear()

	result, err := match.Fire(*req.Payload.Attacker, pos.Row, pos.Col)
	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrFireFailed)
		return resp
	}

	turn, _ := match.CurrentTurn()
	resp.AddPayload(mc.RespFire{
		FireResult: result,
		Turn:       turn,
		Outcome:    match.Outcome(),
	})
	return resp
}

func (r Request) HandleMatchState(mm mb.MatchManager, sessionMatch *mb.Match) mc.Message[mc.RespMatchState] {
	resp := mc.NewMessage[mc.RespMatchState](mc.CodeMatchState)

	var req mc.Message[mc.ReqMatchState]
	if err := json.Unmarshal(r.payload, &req); err != nil {
		resp.AddError(err.Error(), cerr.ConstErrInvalidPayload)
		return resp
	}

	match, err := findSessionMatch(mm, sessionMatch, req.Payload.MatchUuid)
	if err != nil {
		resp.AddError(err.Error(), cerr.ConstErrMatchState)
		return resp
	}

	payload := mc.RespMatchState{
		MatchUuid:                  match.Uuid(),
		Phase:                      match.Phase(),
		Outcome:                    match.Outcome(),
		PlayerFleet:                match.Fleet(mb.SidePlayer),
		OpponentFleet:              match.Fleet(mb.SideOpponent),
		PlayerConfirmedShipCells:   match.ConfirmedShipCells(mb.SidePlayer),
		OpponentConfirmedShipCells: match.ConfirmedShipCells(mb.SideOpponent),
		PlayerShotsReceived:        match.ShotsReceived(mb.SidePlayer),
		OpponentShotsReceived:      match.ShotsReceived(mb.SideOpponent),
		ShotsFired:                 len(match.History()),
	}
	if turn, err := match.CurrentTurn(); err == nil {
		payload.Turn = &turn
	}

	resp.AddPayload(payload)
	return resp
}
