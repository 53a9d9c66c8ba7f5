package store

import (
	"embed"
	"fmt"
	logstd "log"
	"os"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Store is the SQLite-backed persistence for preferences, subjects,
// conversations and user-approved suggestion save-backs.
type Store struct {
	db     *sqlx.DB
	logger *log.Logger
}

// NewStore opens (or creates) the SQLite database at dbPath, enables WAL
// mode and runs all pending migrations.
func NewStore(logger *log.Logger, dbPath string) (*Store, error) {
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite: %w", err)
	}

	// WAL for better concurrency under the HTTP surface.
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db, logger); err != nil {
		return nil, err
	}

	return &Store{db: db, logger: logger}, nil
}

func runMigrations(db *sqlx.DB, logger *log.Logger) error {
	goose.SetLogger(logstd.New(os.Stderr, "", 0))
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db.DB, "migrations"); err != nil {
		logger.Error("Database migrations failed", "error", err)
		return err
	}
	logger.Debug("Database migrations completed")
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
