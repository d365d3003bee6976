package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS runs (
	run_id      TEXT PRIMARY KEY,
	created_at  TEXT NOT NULL,
	backend     TEXT NOT NULL,
	objective   INTEGER NOT NULL,
	continuity  INTEGER NOT NULL,
	protected   INTEGER NOT NULL,
	artifact    TEXT NOT NULL
)`

// SqliteStore archives runs in a SQLite database. The whole artifact is kept as a JSON column next to
// the summary columns
type SqliteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// OpenSqlite connects to the database at dsn, applies the pragmas and creates the runs table
func OpenSqlite(dsn string, logger *zap.Logger) (*SqliteStore, error) {
	if dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &SqliteStore{db: db, logger: logger}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (store *SqliteStore) DB() *sql.DB {
	return store.db
}

func (store *SqliteStore) Save(ctx context.Context, artifact Artifact) error {
	bytes, err := json.Marshal(artifact)
	if err != nil {
		return fmt.Errorf("marshal run: %w", err)
	}

	_, err = store.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, created_at, backend, objective, continuity, protected, artifact) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		artifact.RunID.String(),
		artifact.CreatedAt.UTC().Format(time.RFC3339),
		artifact.Backend,
		artifact.Objective,
		artifact.Continuity.Total,
		artifact.Continuity.Protected,
		string(bytes),
	)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}

	store.logger.Info("run saved", zap.Stringer("run_id", artifact.RunID))
	return nil
}

func (store *SqliteStore) Get(ctx context.Context, id uuid.UUID) (Artifact, error) {
	var document string
	err := store.db.QueryRowContext(ctx, `SELECT artifact FROM runs WHERE run_id = ?`, id.String()).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return Artifact{}, fmt.Errorf("%v: %w", id, ErrNotFound)
	} else if err != nil {
		return Artifact{}, fmt.Errorf("query run: %w", err)
	}
	return decode(document)
}

func (store *SqliteStore) List(ctx context.Context) ([]Artifact, error) {
	rows, err := store.db.QueryContext(ctx, `SELECT artifact FROM runs ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	artifacts := make([]Artifact, 0)
	for rows.Next() {
		var document string
		if err := rows.Scan(&document); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		artifact, err := decode(document)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, artifact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return artifacts, nil
}

// Close closes the database connection.
func (store *SqliteStore) Close() error {
	return store.db.Close()
}

func decode(document string) (Artifact, error) {
	var artifact Artifact
	if err := json.Unmarshal([]byte(document), &artifact); err != nil {
		return Artifact{}, fmt.Errorf("decode run: %w", err)
	}
	return artifact, nil
}

// applyPragmas configures SQLite for a single local writer.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}
