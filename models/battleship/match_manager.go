package battleship

import (
	"sync"

	cerr "github.com/saeidalz13/battleship-tracker/internal/error"
)

type MatchManager interface {
	CreateMatch(config Config, playerShipLayout Layout, oracle Oracle) (*Match, error)
	GetMatch(matchUuid string) (*Match, error)
	TerminateMatch(matchUuid string)
	Count() int
}

type BattleshipMatchManager struct {
	matches map[string]*Match
	mu      sync.RWMutex
}

var _ MatchManager = (*BattleshipMatchManager)(nil)

func NewBattleshipMatchManager() *BattleshipMatchManager {
	return &BattleshipMatchManager{
		matches: make(map[string]*Match, 10),
	}
}

func (bmm *BattleshipMatchManager) CreateMatch(config Config, playerShipLayout Layout, oracle Oracle) (*Match, error) {
	match, err := NewMatch(config, playerShipLayout, oracle)
	if err != nil {
		return nil, err
	}

	bmm.mu.Lock()
	bmm.matches[match.Uuid()] = match
	bmm.mu.Unlock()

	return match, nil
}

func (bmm *BattleshipMatchManager) GetMatch(matchUuid string) (*Match, error) {
	bmm.mu.RLock()
	match, prs := bmm.matches[matchUuid]
	bmm.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrMatchNotExist(matchUuid)
	}

	return match, nil
}

func (bmm *BattleshipMatchManager) TerminateMatch(matchUuid string) {
	bmm.mu.Lock()
	delete(bmm.matches, matchUuid)
	bmm.mu.Unlock()
}

func (bmm *BattleshipMatchManager) Count() int {
	bmm.mu.RLock()
	defer bmm.mu.RUnlock()
	return len(bmm.matches)
}
