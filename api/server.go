package api

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/saeidalz13/battleship-tracker/db/sqlc"
	"github.com/saeidalz13/battleship-tracker/internal/config"
	cerr "github.com/saeidalz13/battleship-tracker/internal/error"
	mb "github.com/saeidalz13/battleship-tracker/models/battleship"
	mc "github.com/saeidalz13/battleship-tracker/models/connection"
)

const (
	defaultPort     = "8000"
	shutdownTimeout = time.Second * 10
)

var defaultMatchConfig = mb.Config{Rows: 10, Cols: 10, NumberOfShips: 5}

type Server struct {
	port           string
	stage          string
	db             *sql.DB
	matchDefaults  mb.Config
	allowedOrigins map[string]bool
	sessionManager mc.SessionManager
	matchManager   mb.MatchManager
}

type Option func(*Server) error

func NewServer(optFuncs ...Option) (*Server, error) {
	server := Server{
		port:          defaultPort,
		stage:         config.StageDev,
		matchDefaults: defaultMatchConfig,
	}
	for _, opt := range optFuncs {
		if err := opt(&server); err != nil {
			return nil, err
		}
	}

	if server.sessionManager == nil {
		server.sessionManager = mc.NewBattleshipSessionManager(mc.DefaultCleanupInterval, mc.DefaultGracePeriod)
	}
	if server.matchManager == nil {
		server.matchManager = mb.NewBattleshipMatchManager()
	}
	return &server, nil
}

func WithPort(port string) Option {
	return func(s *Server) error {
		if _, err := strconv.Atoi(port); err != nil {
			return cerr.ErrInvalidEnvValue("PORT", port)
		}
		s.port = port
		return nil
	}
}

func WithStage(stage string) Option {
	return func(s *Server) error {
		if stage != config.StageProd && stage != config.StageDev {
			return cerr.ErrInvalidStage(stage)
		}
		s.stage = stage
		return nil
	}
}

func WithDb(db *sql.DB) Option {
	return func(s *Server) error {
		s.db = db
		return nil
	}
}

// WithMatchDefaults sets what CreateMatch uses for omitted fields.
func WithMatchDefaults(matchDefaults mb.Config) Option {
	return func(s *Server) error {
		if err := matchDefaults.Validate(); err != nil {
			return err
		}
		if matchDefaults.Rows > MaxGridSide || matchDefaults.Cols > MaxGridSide {
			return cerr.ErrGridTooLarge(matchDefaults.Rows, matchDefaults.Cols, MaxGridSide)
		}
		s.matchDefaults = matchDefaults
		return nil
	}
}

func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) error {
		s.allowedOrigins = make(map[string]bool, len(origins))
		for _, origin := range origins {
			s.allowedOrigins[origin] = true
		}
		return nil
	}
}

func WithSessionManager(sessionManager mc.SessionManager) Option {
	return func(s *Server) error {
		s.sessionManager = sessionManager
		return nil
	}
}

func (s *Server) Port() string {
	return s.port
}

func (s *Server) MatchManager() mb.MatchManager {
	return s.matchManager
}

// checkOrigin accepts any origin in dev. In prod only the allowed
// origins pass; requests without an Origin header are not from a
// browser and pass as well.
func (s *Server) checkOrigin(r *http.Request) bool {
	if s.stage != config.StageProd {
		return true
	}
	origin := r.Header.Get("Origin")
	return origin == "" || s.allowedOrigins[origin]
}

func (s *Server) RequestProcessor() RequestProcessor {
	var q sqlc.Querier
	if s.db != nil {
		q = sqlc.New(s.db)
	}
	return NewRequestProcessor(s.sessionManager, s.matchManager, q, s.matchDefaults, s.checkOrigin)
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /battleship", s.RequestProcessor())
	return mux
}

// Run serves until ctx is done, then shuts the listener down. Session
// cleanup runs for as long as the server does.
func (s *Server) Run(ctx context.Context) error {
	go s.sessionManager.CleanupPeriodically(ctx)

	httpServer := &http.Server{
		Addr:              "0.0.0.0:" + s.port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: time.Second * 5,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("api [Run]", "msg", "listening", "port", s.port, "stage", s.stage)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		log.Info("api [Run]", "msg", "server stopped")
		return nil
	}
}
