package error

import (
	"errors"
	"fmt"
)

const (
	ConstErrFireFailed = "fire operation failed"
)

var (
	ErrOutOfRange        = errors.New("position is out of grid bound")
	ErrAlreadyFired      = errors.New("position has already been fired at")
	ErrPrecondition      = errors.New("precondition violated")
	ErrNoSuchSize        = errors.New("no ship of this size in fleet")
	ErrAlreadySunk       = errors.New("ship is already sunk")
	ErrInvalidMatchState = errors.New("invalid match state")
	ErrInvalidConfig     = errors.New("invalid match configuration")
	ErrInvalidLayout     = errors.New("invalid ship layout")
	ErrMatchNotExists    = errors.New("match does not exist")
	ErrSessionNotFound   = errors.New("session not found")
	ErrAnswerMissing     = errors.New("hit or miss answer is missing")
)

func ErrRowOrColOutOfGridBound(row, col int) error {
	return fmt.Errorf("%w\trow: %d\tcol: %d", ErrOutOfRange, row, col)
}

func ErrPositionAlreadyFired(row, col int) error {
	return fmt.Errorf("%w\trow: %d\tcol: %d", ErrAlreadyFired, row, col)
}

func ErrPositionNotFired(row, col int) error {
	return fmt.Errorf("%w: position must be fired before it is confirmed as ship\trow: %d\tcol: %d", ErrPrecondition, row, col)
}

func ErrPositionNotConfirmedShip(row, col int) error {
	return fmt.Errorf("%w: ship locator needs a confirmed hit\trow: %d\tcol: %d", ErrPrecondition, row, col)
}

func ErrPositionAlreadySunk(row, col int) error {
	return fmt.Errorf("%w: position belongs to a sunk ship\trow: %d\tcol: %d", ErrPrecondition, row, col)
}

// Fleet mutations on a missing or sunk size are caller misuse, hence
// both wrap ErrPrecondition as well.
func ErrShipSizeNotInFleet(size int) error {
	return fmt.Errorf("%w: %w\tsize: %d", ErrPrecondition, ErrNoSuchSize, size)
}

func ErrShipSizeAlreadySunk(size int) error {
	return fmt.Errorf("%w: %w\tsize: %d", ErrPrecondition, ErrAlreadySunk, size)
}

func ErrFirstMoveNotChosen() error {
	return fmt.Errorf("%w: first move has not been chosen yet", ErrInvalidMatchState)
}

func ErrFirstMoveAlreadyChosen() error {
	return fmt.Errorf("%w: first move has already been chosen", ErrInvalidMatchState)
}

func ErrMatchIsOver(matchUuid string) error {
	return fmt.Errorf("%w: match is over, uuid: %s", ErrInvalidMatchState, matchUuid)
}

func ErrNotSideTurn(side string) error {
	return fmt.Errorf("%w: it is not the %s's turn", ErrInvalidMatchState, side)
}

func ErrInvalidGridSize(rows, cols int) error {
	return fmt.Errorf("%w: grid must be at least 1x1\trows: %d\tcols: %d", ErrInvalidConfig, rows, cols)
}

func ErrInvalidNumberOfShips(numberOfShips int) error {
	return fmt.Errorf("%w: number of ships must be positive\tnumber of ships: %d", ErrInvalidConfig, numberOfShips)
}

func ErrFleetDoesNotFit(numberOfShips, rows, cols int) error {
	return fmt.Errorf("%w: a fleet of %d ships does not fit a %dx%d grid", ErrInvalidConfig, numberOfShips, rows, cols)
}

func ErrGridTooLarge(rows, cols, maxSide int) error {
	return fmt.Errorf("%w: grid sides are limited to %d\trows: %d\tcols: %d", ErrInvalidConfig, maxSide, rows, cols)
}

func ErrNilOracle() error {
	return fmt.Errorf("%w: oracle must not be nil", ErrInvalidConfig)
}

func ErrLayoutDimensions(rows, cols, wantRows, wantCols int) error {
	return fmt.Errorf("%w: layout is %dx%d but grid is %dx%d", ErrInvalidLayout, rows, cols, wantRows, wantCols)
}

func ErrLayoutNotRectangular(row int) error {
	return fmt.Errorf("%w: row %d has a different length", ErrInvalidLayout, row)
}

func ErrShipPlacementOverlap(row, col int) error {
	return fmt.Errorf("%w: ships overlap\trow: %d\tcol: %d", ErrInvalidLayout, row, col)
}

func ErrShipPlacementTouching(row, col int) error {
	return fmt.Errorf("%w: ships may not touch, not even diagonally\trow: %d\tcol: %d", ErrInvalidLayout, row, col)
}

func ErrMatchNotExist(matchUuid string) error {
	return fmt.Errorf("%w, uuid: %s", ErrMatchNotExists, matchUuid)
}

func ErrSessionIdNotFound(sessionId string) error {
	return fmt.Errorf("%w, session id: %s", ErrSessionNotFound, sessionId)
}

func ErrAnswerMissingForPosition(row, col int) error {
	return fmt.Errorf("%w\trow: %d\tcol: %d", ErrAnswerMissing, row, col)
}

func ErrKeyNotExists(key string) error {
	return fmt.Errorf("the key does not exist:\t%s", key)
}

func ErrInvalidSide(side string) error {
	return fmt.Errorf("side must be either player or opponent:\t%s", side)
}

func ErrUnknownEnumValue(kind, value string) error {
	return fmt.Errorf("unknown %s:\t%s", kind, value)
}

func ErrInvalidStage(stage string) error {
	return fmt.Errorf("%w: stage must be either dev or prod\tstage: %s", ErrInvalidConfig, stage)
}

func ErrInvalidEnvValue(key, value string) error {
	return fmt.Errorf("%w: invalid value for %s:\t%s", ErrInvalidConfig, key, value)
}

func ErrInvalidCoordinatesText(text string) error {
	return fmt.Errorf("coordinates must look like B3:\t%s", text)
}

func ErrInvalidPlacementText(text string) error {
	return fmt.Errorf("placement must look like B2 h or B2 v:\t%s", text)
}

const (
	ConstErrCreateMatch     = "failed to create match"
	ConstErrChooseFirstMove = "failed to choose first move"
	ConstErrMatchState      = "failed to fetch match state"
	ConstErrInvalidPayload  = "invalid payload"
)
