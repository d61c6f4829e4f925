package connection

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/saeidalz13/battleship-tracker/internal"
	cerr "github.com/saeidalz13/battleship-tracker/internal/error"
)

const (
	DefaultCleanupInterval = time.Minute * 20
	DefaultGracePeriod     = time.Minute * 2
)

type SessionManager interface {
	GenerateNewSession(conn *websocket.Conn) *Session
	FindSession(sessionId string) (*Session, error)
	TerminateSession(sessionId string)
	ReconnectSession(sessionId string, conn *websocket.Conn) error
	WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error
	ReadFromSessionConn(session *Session) (int, []byte, error)
	CleanupPeriodically(ctx context.Context)
	Count() int
}

type BattleshipSessionManager struct {
	cleanupInterval time.Duration
	gracePeriod     time.Duration
	sessions        map[string]*Session
	mu              sync.RWMutex
}

// Non-positive durations fall back to the defaults.
func NewBattleshipSessionManager(cleanupInterval, gracePeriod time.Duration) *BattleshipSessionManager {
	if cleanupInterval <= 0 {
		cleanupInterval = DefaultCleanupInterval
	}
	if gracePeriod <= 0 {
		gracePeriod = DefaultGracePeriod
	}

	initMapSize := 10
	return &BattleshipSessionManager{
		sessions:        make(map[string]*Session, initMapSize),
		cleanupInterval: cleanupInterval,
		gracePeriod:     gracePeriod,
	}
}

var _ SessionManager = (*BattleshipSessionManager)(nil)

func (bsm *BattleshipSessionManager) GenerateNewSession(conn *websocket.Conn) *Session {
	session := NewSession(internal.NewSessionId(), conn)

	bsm.mu.Lock()
	bsm.sessions[session.id] = session
	bsm.mu.Unlock()

	return session
}

func (bsm *BattleshipSessionManager) FindSession(sessionId string) (*Session, error) {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()

	session, prs := bsm.sessions[sessionId]
	if !prs || session == nil {
		return nil, cerr.ErrSessionIdNotFound(sessionId)
	}
	return session, nil
}

func (bsm *BattleshipSessionManager) TerminateSession(sessionId string) {
	bsm.mu.Lock()
	defer bsm.mu.Unlock()
	delete(bsm.sessions, sessionId)
}

func (bsm *BattleshipSessionManager) ReconnectSession(sessionId string, conn *websocket.Conn) error {
	session, err := bsm.FindSession(sessionId)
	if err != nil {
		return err
	}

	session.reconnect(conn)
	log.Info("session manager [ReconnectSession]", "session", sessionId, "remote", conn.RemoteAddr().String())
	return nil
}

func (bsm *BattleshipSessionManager) Count() int {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()
	return len(bsm.sessions)
}

// CleanupPeriodically drops sessions that have been idle for longer
// than the cleanup interval so no dangling connection outlives its
// operator. It returns when ctx is done.
func (bsm *BattleshipSessionManager) CleanupPeriodically(ctx context.Context) {
	ticker := time.NewTicker(bsm.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			bsm.cleanupStale()
		}
	}
}

func (bsm *BattleshipSessionManager) cleanupStale() {
	bsm.mu.Lock()
	defer bsm.mu.Unlock()

	for id, session := range bsm.sessions {
		if time.Since(session.LastActivity()) <= bsm.cleanupInterval {
			continue
		}
		if conn := session.Conn(); conn != nil {
			_ = conn.Close()
		}
		delete(bsm.sessions, id)
		log.Info("session manager [cleanupStale]", "removed", id)
	}
}

// waitForReconnection blocks until the session gets a new connection or
// the grace period runs out.
func (bsm *BattleshipSessionManager) waitForReconnection(session *Session, reconnected <-chan struct{}) error {
	timer := time.NewTimer(bsm.gracePeriod)
	defer timer.Stop()

	select {
	case <-reconnected:
		log.Info("session manager [waitForReconnection]", "session", session.id, "msg", "reconnected")
		return nil
	case <-timer.C:
		log.Warn("session manager [waitForReconnection]", "session", session.id, "msg", "grace period is over")
		return NewConnErr(ConnLoopBreak).AddDesc("grace period is over for session: " + session.id)
	}
}

func (bsm *BattleshipSessionManager) WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error {
	reconnected := session.reconnectionSignal()
	err := session.writeToConnWithRetry(msg, msgType)
	if err == nil {
		return nil
	}

	connErr, ok := err.(ConnErr)
	if !ok || connErr.Code() != ConnLoopAbnormalClosureRetry {
		return err
	}

	if err := bsm.waitForReconnection(session, reconnected); err != nil {
		return err
	}
	return session.writeToConnWithRetry(msg, msgType)
}

func (bsm *BattleshipSessionManager) ReadFromSessionConn(session *Session) (int, []byte, error) {
	var retries uint8

	for {
		reconnected := session.reconnectionSignal()
		messageType, payload, err := session.Conn().ReadMessage()
		if err == nil {
			session.touch()
			return messageType, payload, nil
		}

		// the connection was swapped while reading from the old one
		select {
		case <-reconnected:
			continue
		default:
		}

		switch session.handleReadFromConnErr(err, retries) {
		case ConnLoopContinue:
			retries++

		case ConnLoopAbnormalClosureRetry:
			if err := bsm.waitForReconnection(session, reconnected); err != nil {
				return -1, nil, err
			}
			retries = 0

		default:
			return -1, nil, err
		}
	}
}

// FetchCodeFromMsg reads the signal code of a raw frame. A frame
// without a code yields CodeSignalAbsent.
func FetchCodeFromMsg(payload []byte) (uint8, error) {
	var signal Signal
	if err := json.Unmarshal(payload, &signal); err != nil {
		return CodeInvalidSignal, err
	}
	if signal.Code == nil {
		return CodeSignalAbsent, nil
	}
	return *signal.Code, nil
}
