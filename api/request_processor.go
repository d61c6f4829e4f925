package api

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/sqlc-dev/pqtype"

	"github.com/saeidalz13/battleship-tracker/db/sqlc"
	mb "github.com/saeidalz13/battleship-tracker/models/battleship"
	mc "github.com/saeidalz13/battleship-tracker/models/connection"
)

const (
	URLQuerySessionIDKeyword string = "sessionID"
)

type RequestProcessor struct {
	sessionManager mc.SessionManager
	matchManager   mb.MatchManager
	dbManager      *sqlc.DbManager
	matchDefaults  mb.Config
	upgrader       websocket.Upgrader
	ipnet          net.IPNet
}

// NewRequestProcessor wires the managers into an http.Handler. q may be
// nil, in which case no analytics are recorded.
func NewRequestProcessor(
	sessionManager mc.SessionManager,
	matchManager mb.MatchManager,
	q sqlc.Querier,
	matchDefaults mb.Config,
	checkOrigin func(r *http.Request) bool,
) RequestProcessor {
	rp := RequestProcessor{
		sessionManager: sessionManager,
		matchManager:   matchManager,
		matchDefaults:  matchDefaults,
		upgrader: websocket.Upgrader{
			// not a high latency stream, a few seconds is plenty
			HandshakeTimeout: time.Second * 5,
			ReadBufferSize:   2048,
			WriteBufferSize:  2048,
			CheckOrigin:      checkOrigin,
		},
		ipnet: serverIpNet(),
	}

	if q != nil {
		dbManager := sqlc.NewDbManager(q)
		rp.dbManager = &dbManager
	}
	return rp
}

// serverIpNet picks the first non-loopback IPv4 address of this host;
// analytics rows are keyed by it. Loopback is the fallback.
func serverIpNet() net.IPNet {
	loopback := net.IPNet{IP: net.IPv4(127, 0, 0, 1).To4(), Mask: net.CIDRMask(32, 32)}

	ifaces, err := net.Interfaces()
	if err != nil {
		log.Warn("api [serverIpNet]", "err", err)
		return loopback
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}

			if ip4 := ip.To4(); ip4 != nil && !ip4.IsLoopback() {
				return net.IPNet{IP: ip4, Mask: net.CIDRMask(32, 32)}
			}
		}
	}
	return loopback
}

// Expose this method to use it in testing
func (rp RequestProcessor) GetIpNet() net.IPNet {
	return rp.ipnet
}

func (rp RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := rp.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error
		log.Warn("api [ServeHTTP]", "remote", r.RemoteAddr, "err", err)
		return
	}

	sessionIdQuery := r.URL.Query().Get(URLQuerySessionIDKeyword)
	if sessionIdQuery == "" {
		log.Info("api [ServeHTTP]", "msg", "new connection", "remote", conn.RemoteAddr().String())
		rp.processSessionRequests(rp.sessionManager.GenerateNewSession(conn))
		return
	}

	if err := rp.sessionManager.ReconnectSession(sessionIdQuery, conn); err != nil {
		// Either an expired session or an invalid session ID
		msg := mc.NewMessage[mc.NoPayload](mc.CodeReceivedInvalidSessionID)
		msg.AddError(err.Error(), "")
		_ = conn.WriteJSON(msg)
		_ = conn.Close()
	}
}

func (rp RequestProcessor) recordAnalytics(record func(ctx context.Context, serverIpNet pqtype.Inet) error) {
	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()

	// analytics never break a match
	if err := record(ctx, pqtype.Inet{IPNet: rp.ipnet, Valid: true}); err != nil {
		log.Error("api [recordAnalytics]", "err", err)
	}
}

// logMatchTotals reports this server's running match counts.
func (rp RequestProcessor) logMatchTotals() {
	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()

	serverIpNet := pqtype.Inet{IPNet: rp.ipnet, Valid: true}
	created, err := rp.dbManager.Analytics.GetMatchesCreatedCount(ctx, serverIpNet)
	if err != nil {
		log.Error("api [logMatchTotals]", "err", err)
		return
	}
	finished, err := rp.dbManager.Analytics.GetMatchesFinishedCount(ctx, serverIpNet)
	if err != nil {
		log.Error("api [logMatchTotals]", "err", err)
		return
	}
	log.Info("api [logMatchTotals]", "created", created, "finished", finished)
}

func (rp RequestProcessor) processSessionRequests(session *mc.Session) {
	var (
		sessionId = session.Id()
		oracle    = &answerOracle{}
	)

	defer func() {
		if match := session.Match(); match != nil {
			rp.matchManager.TerminateMatch(match.Uuid())
		}
		if conn := session.Conn(); conn != nil {
			_ = conn.Close()
		}
		rp.sessionManager.TerminateSession(sessionId)
		log.Info("api [processSessionRequests]", "msg", "session ended", "session", sessionId)
	}()

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: sessionId})
	if err := rp.sessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON); err != nil {
		return
	}

sessionLoop:
	for {
		_, payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			// retries and the grace period are already spent
			break sessionLoop
		}

		code, err := mc.FetchCodeFromMsg(payload)
		if err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			msg.AddError(err.Error(), "incoming payload must be a JSON object")
			if err := rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}
		log.Debug("api [processSessionRequests]", "session", sessionId, "code", code)

		switch code {
		case mc.CodeSignalAbsent:
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError("", "incoming payload must contain 'code' field")
			if err := rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		// A session owns one match; creating another replaces it.
		case mc.CodeCreateMatch:
			match, respMsg := NewRequest(payload).HandleCreateMatch(rp.matchManager, rp.matchDefaults, oracle)
			if match != nil {
				if previous := session.Match(); previous != nil {
					rp.matchManager.TerminateMatch(previous.Uuid())
				}
				session.SetMatch(match)

				if rp.dbManager != nil {
					rp.recordAnalytics(rp.dbManager.Analytics.IncrementMatchesCreatedCount)
				}
			}

			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		case mc.CodeChooseFirstMove:
			respMsg := NewRequest(payload).HandleChooseFirstMove(rp.matchManager, session.Match())
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		// After every shot the outcome is checked; a finished match is
		// announced with an extra EndMatch push.
		case mc.CodeFire:
			respMsg := NewRequest(payload).HandleFire(rp.matchManager, session.Match(), oracle)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

			if respMsg.Error != nil || respMsg.Payload.Outcome == mb.OutcomeOngoing {
				continue sessionLoop
			}

			if rp.dbManager != nil {
				rp.recordAnalytics(rp.dbManager.Analytics.IncrementMatchesFinishedCount)
				rp.logMatchTotals()
			}

			respEnd := mc.NewMessage[mc.RespEndMatch](mc.CodeEndMatch)
			respEnd.AddPayload(mc.RespEndMatch{Outcome: respMsg.Payload.Outcome})
			if err := rp.sessionManager.WriteToSessionConn(session, respEnd, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		case mc.CodeMatchState:
			respMsg := NewRequest(payload).HandleMatchState(rp.matchManager, session.Match())
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		default:
			respInvalidSignal := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			respInvalidSignal.AddError("", "invalid code in the incoming payload")
			if err := rp.sessionManager.WriteToSessionConn(session, respInvalidSignal, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
		}
	}
}
