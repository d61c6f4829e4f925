package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

const (
	maxOpenConns = 30
	maxIdleConns = 10
	connMaxLife  = time.Minute * 15

	DefaultMigrationDir = "file://db/migration"
)

func MustMigrate(db *sql.DB, migrationDir string) {
	driver, err := postgres.WithInstance(db, &postgres.Config{
		DatabaseName: "battleship_tracker",
	})
	if err != nil {
		log.Fatal("db [MustMigrate]", "err", err)
	}

	m, err := migrate.NewWithDatabaseInstance(migrationDir, "battleship_tracker", driver)
	if err != nil {
		log.Fatal("db [MustMigrate]", "err", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		log.Fatal("db [MustMigrate]", "err", err)
	}
	if dirty {
		log.Fatal("db [MustMigrate]", "msg", "database is dirty", "version", version)
	}
	log.Info("db [MustMigrate]", "version", version)

	if err = m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return
		}
		log.Fatal("db [MustMigrate]", "err", err)
	}
	log.Info("db [MustMigrate]", "msg", "migration successful")
}

func MustConnectToDb(psqlUrl, migrationDir string) *sql.DB {
	// Open may only validate its arguments, the ping makes the connection
	db, err := sql.Open("postgres", psqlUrl)
	if err != nil {
		log.Fatal("db [MustConnectToDb]", "err", err)
	}

	if err := db.Ping(); err != nil {
		log.Fatal("db [MustConnectToDb]", "err", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLife)

	MustMigrate(db, migrationDir)
	return db
}
