package store

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"time"

	config "example.com/socialnet/internal/init"
	"example.com/socialnet/internal/logger"
	"example.com/socialnet/internal/models"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var logg = logger.New()

// --- Errors ---

// ErrUsernameTaken is returned when an insert hits the unique
// constraint on users.username.
var ErrUsernameTaken = errors.New("username already exists")

// ErrUserNotFound is returned when a post references a user id that is
// not present in the users table.
var ErrUserNotFound = errors.New("user does not exist")

// --- Interfaces ---

type StoreInterface interface {
	ListUsers() ([]models.User, error)
	CreateUser(username, role string) (models.User, error)
	ListPosts() ([]models.Post, error)
	CreatePost(title, body string, userID int64) (models.Post, error)
	Close()
}

// --- Store Implementation ---

type Store struct {
	DB *sqlx.DB
}

// New opens the SQLite store using the config package. On the first
// run the store file does not exist yet; the schema is created and the
// seed rows inserted before the connection is handed out.
func New() (StoreInterface, error) {
	cfg := config.Get()
	return Open(cfg.DBPath, cfg.DBBusyTimeout)
}

// Open opens (and if necessary creates) the store at the given path.
func Open(path string, busyTimeout time.Duration) (*Store, error) {
	fresh, err := storeMissing(path)
	if err != nil {
		return nil, fmt.Errorf("failed to check store file: %w", err)
	}

	if fresh {
		logg.Info("store", "Store file not found, creating schema and seed data")
		if err := createStore(path); err != nil {
			return nil, fmt.Errorf("failed to create store: %w", err)
		}
	}

	// Foreign keys are off by default in SQLite; turn them on so the
	// declared posts.user_id and follows constraints actually hold.
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(ON)&_pragma=busy_timeout(%d)",
		path, busyTimeout.Milliseconds())

	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	logg.Info("store", "Connected to SQLite store")
	return &Store{DB: db}, nil
}

// storeMissing reports whether the store file has not been created yet.
func storeMissing(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if os.IsNotExist(err) {
		return true, nil
	}
	return false, err
}

// --- Schema creation (first run only) ---

func createStore(path string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	dbURL := fmt.Sprintf("sqlite://%s", path)
	m, err := migrate.NewWithSourceInstance("iofs", src, dbURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration up failed: %w", err)
	}

	logg.Info("store", "Schema created and seed data inserted")
	return nil
}

// constraintCode extracts the extended SQLite result code from a
// constraint violation, or 0 for any other error.
func constraintCode(err error) int {
	var serr *sqlite.Error
	if errors.As(err, &serr) {
		return serr.Code()
	}
	return 0
}

// Close gracefully closes the store connection.
func (s *Store) Close() {
	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			logg.Error("store", "Error closing store", err)
			return
		}
		logg.Info("store", "Store closed")
	}
}
