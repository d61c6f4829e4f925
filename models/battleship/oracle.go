package battleship

// Oracle tells whether the defender has a ship at a position. For the
// opponent's hidden board this is a human answering the question.
type Oracle interface {
	HasShip(defender Side, pos Coordinates) (bool, error)
}

type OracleFunc func(defender Side, pos Coordinates) (bool, error)

func (f OracleFunc) HasShip(defender Side, pos Coordinates) (bool, error) {
	return f(defender, pos)
}

// layoutOracle answers shots at the player from the player's own grid
// and hands everything else to the external oracle.
type layoutOracle struct {
	grid     *Grid
	opponent Oracle
}

func (o layoutOracle) HasShip(defender Side, pos Coordinates) (bool, error) {
	if defender == SidePlayer {
		cell, err := o.grid.CellAt(pos.Row, pos.Col)
		if err != nil {
			return false, err
		}
		return cell.HasShipTruth, nil
	}
	return o.opponent.HasShip(defender, pos)
}
