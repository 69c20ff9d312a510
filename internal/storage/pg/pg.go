package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/wirechan-dev/wirechan/internal/config"
	"github.com/wirechan-dev/wirechan/internal/domain"
	"github.com/wirechan-dev/wirechan/internal/logger"
)

// undefined_table; a board whose table does not exist yet is an empty board,
// not an error (namespaces materialize lazily on first write).
const pqUndefinedTable = "42P01"

type Storage struct {
	db *sql.DB
}

func New(cfg config.Pg) (*Storage, error) {
	logger.Log.Info("connecting to db", "host", cfg.Host, "dbname", cfg.Dbname)
	db, err := Connect(cfg)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("successfully connected to db")
	return NewWithDB(db), nil
}

// NewWithDB wraps an existing connection. Used by tests.
func NewWithDB(db *sql.DB) *Storage {
	return &Storage{db: db}
}

func Connect(cfg config.Pg) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err = db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

func (s *Storage) Ping() error {
	return s.db.Ping()
}

func postsTableName(board domain.BoardName) string {
	return fmt.Sprintf("posts_%s", board)
}

// PostsTableName returns the quoted per-board table identifier. The board
// name must already be sanitized; quoting is the second line of defense.
func PostsTableName(board domain.BoardName) string {
	return pq.QuoteIdentifier(postsTableName(board))
}

func feedIndexName(board domain.BoardName) string {
	return pq.QuoteIdentifier(fmt.Sprintf("posts_%s_feed_idx", board))
}

func isUndefinedTable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUndefinedTable
	}
	return false
}
