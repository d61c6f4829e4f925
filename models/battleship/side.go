package battleship

import (
	cerr "github.com/saeidalz13/battleship-tracker/internal/error"
)

type Side uint8

const (
	SidePlayer Side = iota
	SideOpponent
)

func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideOpponent:
		return "opponent"
	default:
		return "unknown"
	}
}

func (s Side) Other() Side {
	if s == SidePlayer {
		return SideOpponent
	}
	return SidePlayer
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(text []byte) error {
	switch string(text) {
	case "player":
		*s = SidePlayer
	case "opponent":
		*s = SideOpponent
	default:
		return cerr.ErrInvalidSide(string(text))
	}
	return nil
}

type MatchPhase uint8

const (
	PhaseAwaitingFirstMoveChoice MatchPhase = iota
	PhasePlayerTurn
	PhaseOpponentTurn
	PhaseMatchOver
)

func (p MatchPhase) String() string {
	switch p {
	case PhaseAwaitingFirstMoveChoice:
		return "awaiting-first-move-choice"
	case PhasePlayerTurn:
		return "player-turn"
	case PhaseOpponentTurn:
		return "opponent-turn"
	case PhaseMatchOver:
		return "match-over"
	default:
		return "unknown"
	}
}

func (p MatchPhase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

type Outcome uint8

const (
	OutcomeOngoing Outcome = iota
	OutcomeWonByPlayer
	OutcomeWonByOpponent
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOngoing:
		return "ongoing"
	case OutcomeWonByPlayer:
		return "won-by-player"
	case OutcomeWonByOpponent:
		return "won-by-opponent"
	default:
		return "unknown"
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

type ShotResult uint8

const (
	ShotMiss ShotResult = iota
	ShotHit
	ShotHitAndSunk
)

func (r ShotResult) String() string {
	switch r {
	case ShotMiss:
		return "miss"
	case ShotHit:
		return "hit"
	case ShotHitAndSunk:
		return "hit-and-sunk"
	default:
		return "unknown"
	}
}

func (r ShotResult) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (p *MatchPhase) UnmarshalText(text []byte) error {
	for candidate := PhaseAwaitingFirstMoveChoice; candidate <= PhaseMatchOver; candidate++ {
		if candidate.String() == string(text) {
			*p = candidate
			return nil
		}
	}
	return cerr.ErrUnknownEnumValue("match phase", string(text))
}

func (o *Outcome) UnmarshalText(text []byte) error {
	for candidate := OutcomeOngoing; candidate <= OutcomeWonByOpponent; candidate++ {
		if candidate.String() == string(text) {
			*o = candidate
			return nil
		}
	}
	return cerr.ErrUnknownEnumValue("outcome", string(text))
}

func (r *ShotResult) UnmarshalText(text []byte) error {
	for candidate := ShotMiss; candidate <= ShotHitAndSunk; candidate++ {
		if candidate.String() == string(text) {
			*r = candidate
			return nil
		}
	}
	return cerr.ErrUnknownEnumValue("shot result", string(text))
}
