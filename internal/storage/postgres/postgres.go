package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventReport/internal/config"
	"eventReport/internal/storage"

	_ "github.com/lib/pq"
)

type Storage struct {
	DB *sql.DB
}

func InitDB(dbCfg *config.Database) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		quote(dbCfg.Host),
		dbCfg.Port,
		quote(dbCfg.User),
		quote(dbCfg.Password),
		quote(dbCfg.DBName),
		quote(dbCfg.SSLMode),
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	// Connections are opened per lookup or report and closed afterwards.
	db.SetMaxIdleConns(0)

	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	return &Storage{DB: db}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

// EventIDByName returns the id of the most recently created event with
// exactly this name.
func (s *Storage) EventIDByName(ctx context.Context, name string) (int64, error) {
	const op = "storage.postgres.EventIDByName"

	conn, err := s.DB.Conn(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to acquire connection: %w", op, err)
	}
	defer conn.Close()

	query := `
		SELECT id
		FROM events
		WHERE "eventName" = $1
		ORDER BY "createdAt" DESC
		LIMIT 1`

	var id int64
	err = conn.QueryRowContext(ctx, query, name).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%s: %w", op, storage.ErrEventNotFound)
		}
		return 0, fmt.Errorf("%s: failed to find event: %w", op, err)
	}

	return id, nil
}

// OpenSession opens the read cursor for one report. A sequential session
// pins a single connection; a concurrent one runs its queries on the pool so
// that they can proceed in parallel.
func (s *Storage) OpenSession(ctx context.Context, concurrent bool) (storage.Session, error) {
	const op = "storage.postgres.OpenSession"

	if concurrent {
		return &Session{q: s.DB, close: func() error { return nil }}, nil
	}

	conn, err := s.DB.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to acquire connection: %w", op, err)
	}

	return &Session{q: conn, close: conn.Close}, nil
}

// quote escapes a value for a libpq key/value connection string.
func quote(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)

	return "'" + v + "'"
}
