package battleship

import (
	cerr "github.com/saeidalz13/battleship-tracker/internal/error"
)

type Ship struct {
	Size int  `json:"size"`
	Sunk bool `json:"sunk"`
}

// Fleet holds one ship per size from 1 to N, addressed by size.
type Fleet struct {
	ships map[int]*Ship
	n     int
}

func NewFleet(numberOfShips int) (*Fleet, error) {
	if numberOfShips < 1 {
		return nil, cerr.ErrInvalidNumberOfShips(numberOfShips)
	}

	ships := make(map[int]*Ship, numberOfShips)
	for size := 1; size <= numberOfShips; size++ {
		ships[size] = &Ship{Size: size}
	}
	return &Fleet{ships: ships, n: numberOfShips}, nil
}

// Total ship cells of a fleet of n ships.
func ShipCellCount(numberOfShips int) int {
	return numberOfShips * (numberOfShips + 1) / 2
}

func (f *Fleet) TotalCells() int {
	return ShipCellCount(f.n)
}

func (f *Fleet) LargestUnsunkSize() (int, bool) {
	for size := f.n; size >= 1; size-- {
		if !f.ships[size].Sunk {
			return size, true
		}
	}
	return 0, false
}

func (f *Fleet) IsUnsunk(size int) bool {
	ship, prs := f.ships[size]
	return prs && !ship.Sunk
}

func (f *Fleet) MarkSunkBySize(size int) error {
	ship, prs := f.ships[size]
	if !prs {
		return cerr.ErrShipSizeNotInFleet(size)
	}
	if ship.Sunk {
		return cerr.ErrShipSizeAlreadySunk(size)
	}

	ship.Sunk = true
	return nil
}

func (f *Fleet) AllSunk() bool {
	_, prs := f.LargestUnsunkSize()
	return !prs
}

func (f *Fleet) SunkCount() int {
	count := 0
	for _, ship := range f.ships {
		if ship.Sunk {
			count++
		}
	}
	return count
}

// returns copies of the ships, smallest first.
func (f *Fleet) Ships() []Ship {
	ships := make([]Ship, 0, f.n)
	for size := 1; size <= f.n; size++ {
		ships = append(ships, *f.ships[size])
	}
	return ships
}
