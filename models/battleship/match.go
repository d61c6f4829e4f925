package battleship

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/saeidalz13/battleship-tracker/internal"
	cerr "github.com/saeidalz13/battleship-tracker/internal/error"
)

type Config struct {
	Rows          int `json:"rows"`
	Cols          int `json:"cols"`
	NumberOfShips int `json:"number_of_ships"`
}

func (c Config) Validate() error {
	if c.Rows < 1 || c.Cols < 1 {
		return cerr.ErrInvalidGridSize(c.Rows, c.Cols)
	}
	if c.NumberOfShips < 1 {
		return cerr.ErrInvalidNumberOfShips(c.NumberOfShips)
	}
	if c.Rows > math.MaxInt/c.Cols {
		return cerr.ErrInvalidGridSize(c.Rows, c.Cols)
	}

	// n ships take at least n cells; the exact total is computed without
	// overflowing int
	area := c.Rows * c.Cols
	if c.NumberOfShips > area {
		return cerr.ErrFleetDoesNotFit(c.NumberOfShips, c.Rows, c.Cols)
	}
	hi, lo := bits.Mul64(uint64(c.NumberOfShips), uint64(c.NumberOfShips)+1)
	if hi != 0 || lo/2 > uint64(area) {
		return cerr.ErrFleetDoesNotFit(c.NumberOfShips, c.Rows, c.Cols)
	}
	return nil
}

type FireResult struct {
	Coordinates
	Attacker          Side          `json:"attacker"`
	Result            ShotResult    `json:"result"`
	SunkShipSize      int           `json:"sunk_ship_size,omitempty"`
	SunkShipSizes     []int         `json:"sunk_ship_sizes,omitempty"`
	AutoExcludedCells []Coordinates `json:"auto_excluded_cells"`
}

// Match drives the turns of one match. It is not safe for concurrent
// use; hosts serialize calls per match.
type Match struct {
	uuid    string
	config  Config
	phase   MatchPhase
	outcome Outcome

	// last side that fired, reported as the turn once the match is over
	lastAttacker Side

	playerGrid    *Grid
	opponentGrid  *Grid
	playerFleet   *Fleet
	opponentFleet *Fleet
	locator       *ShipLocator
	oracle        Oracle
	history       []FireResult
}

// NewMatch creates a match waiting for the first move choice. The
// oracle answers for the opponent's hidden board; shots at the player
// are answered from playerShipLayout.
func NewMatch(config Config, playerShipLayout Layout, oracle Oracle) (*Match, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if oracle == nil {
		return nil, cerr.ErrNilOracle()
	}
	if err := playerShipLayout.Validate(config.Rows, config.Cols); err != nil {
		return nil, err
	}

	playerGrid, err := NewGridWithLayout(playerShipLayout)
	if err != nil {
		return nil, err
	}
	opponentGrid, err := NewGrid(config.Rows, config.Cols)
	if err != nil {
		return nil, err
	}
	playerFleet, err := NewFleet(config.NumberOfShips)
	if err != nil {
		return nil, err
	}
	opponentFleet, err := NewFleet(config.NumberOfShips)
	if err != nil {
		return nil, err
	}

	return &Match{
		uuid:          internal.NewMatchUuid(),
		config:        config,
		phase:         PhaseAwaitingFirstMoveChoice,
		outcome:       OutcomeOngoing,
		playerGrid:    playerGrid,
		opponentGrid:  opponentGrid,
		playerFleet:   playerFleet,
		opponentFleet: opponentFleet,
		locator:       NewShipLocator(opponentGrid, opponentFleet),
		oracle:        layoutOracle{grid: playerGrid, opponent: oracle},
	}, nil
}

func StartMatch(config Config, playerGoesFirst bool, playerShipLayout Layout, oracle Oracle) (*Match, error) {
	match, err := NewMatch(config, playerShipLayout, oracle)
	if err != nil {
		return nil, err
	}
	if err := match.ChooseFirstMove(playerGoesFirst); err != nil {
		return nil, err
	}
	return match, nil
}

func (m *Match) ChooseFirstMove(playerGoesFirst bool) error {
	if m.phase != PhaseAwaitingFirstMoveChoice {
		return cerr.ErrFirstMoveAlreadyChosen()
	}

	if playerGoesFirst {
		m.phase = PhasePlayerTurn
		m.lastAttacker = SideOpponent
	} else {
		m.phase = PhaseOpponentTurn
		m.lastAttacker = SidePlayer
	}
	return nil
}

// Fire resolves one shot of attacker at (row, col) on the defender's
// board. Nothing changes when an error is returned.
func (m *Match) Fire(attacker Side, row, col int) (FireResult, error) {
	if err := m.checkTurn(attacker); err != nil {
		return FireResult{}, err
	}

	defender := attacker.Other()
	grid := m.grid(defender)
	cell, err := grid.CellAt(row, col)
	if err != nil {
		return FireResult{}, err
	}
	if cell.Fired() {
		return FireResult{}, cerr.ErrPositionAlreadyFired(row, col)
	}

	pos := NewCoordinates(row, col)
	isShip, err := m.oracle.HasShip(defender, pos)
	if err != nil {
		return FireResult{}, fmt.Errorf("%s: %w", cerr.ConstErrFireFailed, err)
	}

	if err := grid.MarkFired(row, col); err != nil {
		return FireResult{}, err
	}
	result := FireResult{
		Coordinates:       pos,
		Attacker:          attacker,
		Result:            ShotMiss,
		AutoExcludedCells: []Coordinates{},
	}
	if isShip {
		if err := grid.MarkConfirmedShip(row, col); err != nil {
			return FireResult{}, err
		}
		result.Result = ShotHit
	}

	var sinkings []Sinking
	if attacker == SidePlayer {
		sinkings, err = m.locateOpponentShips(pos, isShip)
	} else if isShip {
		sinkings = m.scorePlayerBoard(pos)
	}
	if err != nil {
		return FireResult{}, err
	}

	for _, sinking := range sinkings {
		result.SunkShipSizes = append(result.SunkShipSizes, sinking.Size)
		result.AutoExcludedCells = append(result.AutoExcludedCells, sinking.AutoExcluded...)
		if isShip && containsCoordinates(sinking.Cells, pos) {
			result.Result = ShotHitAndSunk
			result.SunkShipSize = sinking.Size
		}
	}

	m.advance(attacker)
	m.history = append(m.history, result)
	return result, nil
}

func (m *Match) CurrentTurn() (Side, error) {
	switch m.phase {
	case PhaseAwaitingFirstMoveChoice:
		return SidePlayer, cerr.ErrFirstMoveNotChosen()
	case PhasePlayerTurn:
		return SidePlayer, nil
	case PhaseOpponentTurn:
		return SideOpponent, nil
	default:
		return m.lastAttacker, nil
	}
}

func (m *Match) Outcome() Outcome {
	return m.outcome
}

func (m *Match) Phase() MatchPhase {
	return m.phase
}

func (m *Match) Uuid() string {
	return m.uuid
}

func (m *Match) Config() Config {
	return m.config
}

// Board returns the board side owns: for the player that is their own
// board, for the opponent it is the board the player fires at.
func (m *Match) Board(side Side) BoardView {
	return m.grid(side)
}

func (m *Match) Fleet(side Side) []Ship {
	return m.fleet(side).Ships()
}

func (m *Match) ConfirmedShipCells(side Side) int {
	return m.grid(side).CountConfirmedShipCells()
}

// ShotsReceived counts the cells already fired at on side's board.
func (m *Match) ShotsReceived(side Side) int {
	return m.grid(side).CountFired()
}

func (m *Match) History() []FireResult {
	history := make([]FireResult, len(m.history))
	copy(history, m.history)
	return history
}

func (m *Match) checkTurn(attacker Side) error {
	switch m.phase {
	case PhaseAwaitingFirstMoveChoice:
		return cerr.ErrFirstMoveNotChosen()
	case PhaseMatchOver:
		return cerr.ErrMatchIsOver(m.uuid)
	case PhasePlayerTurn:
		if attacker != SidePlayer {
			return cerr.ErrNotSideTurn(attacker.String())
		}
	case PhaseOpponentTurn:
		if attacker != SideOpponent {
			return cerr.ErrNotSideTurn(attacker.String())
		}
	}
	return nil
}

func (m *Match) grid(side Side) *Grid {
	if side == SidePlayer {
		return m.playerGrid
	}
	return m.opponentGrid
}

func (m *Match) fleet(side Side) *Fleet {
	if side == SidePlayer {
		return m.playerFleet
	}
	return m.opponentFleet
}

func (m *Match) locateOpponentShips(pos Coordinates, isShip bool) ([]Sinking, error) {
	var sinkings []Sinking
	if isShip {
		sinking, sunk, err := m.locator.Locate(pos)
		if err != nil {
			return nil, err
		}
		if sunk {
			sinkings = append(sinkings, sinking)
		}
	}

	swept, err := m.locator.Sweep()
	if err != nil {
		return nil, err
	}
	return append(sinkings, swept...), nil
}

// The player's layout is known, so a ship there is sunk exactly when
// every cell of it has been hit.
func (m *Match) scorePlayerBoard(pos Coordinates) []Sinking {
	ship := []Coordinates{pos}
	for _, axis := range [2][2]int{{0, 1}, {1, 0}} {
		dr, dc := axis[0], axis[1]
		if !m.playerGrid.hasShipTruth(pos.Row+dr, pos.Col+dc) && !m.playerGrid.hasShipTruth(pos.Row-dr, pos.Col-dc) {
			continue
		}
		for r, c := pos.Row-dr, pos.Col-dc; m.playerGrid.hasShipTruth(r, c); r, c = r-dr, c-dc {
			ship = append(ship, NewCoordinates(r, c))
		}
		for r, c := pos.Row+dr, pos.Col+dc; m.playerGrid.hasShipTruth(r, c); r, c = r+dr, c+dc {
			ship = append(ship, NewCoordinates(r, c))
		}
		break
	}

	for _, shipCell := range ship {
		if !m.playerGrid.confirmed(shipCell.Row, shipCell.Col) {
			return nil
		}
	}
	if !m.playerFleet.IsUnsunk(len(ship)) {
		return nil
	}
	// IsUnsunk guarantees the size exists and is afloat
	_ = m.playerFleet.MarkSunkBySize(len(ship))
	for _, shipCell := range ship {
		m.playerGrid.markSunk(shipCell.Row, shipCell.Col)
	}
	return []Sinking{{Size: len(ship), Cells: ship}}
}

func (m *Match) advance(attacker Side) {
	m.lastAttacker = attacker

	defender := attacker.Other()
	defenderFleet := m.fleet(defender)
	if defenderFleet.AllSunk() || m.grid(defender).CountConfirmedShipCells() >= defenderFleet.TotalCells() {
		m.phase = PhaseMatchOver
		if attacker == SidePlayer {
			m.outcome = OutcomeWonByPlayer
		} else {
			m.outcome = OutcomeWonByOpponent
		}
		return
	}

	if attacker == SidePlayer {
		m.phase = PhaseOpponentTurn
	} else {
		m.phase = PhasePlayerTurn
	}
}

func containsCoordinates(cells []Coordinates, pos Coordinates) bool {
	for _, c := range cells {
		if c == pos {
			return true
		}
	}
	return false
}
