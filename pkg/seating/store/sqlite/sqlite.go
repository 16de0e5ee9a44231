package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/seating/pkg/seating/assign"
	"github.com/cognicore/seating/pkg/seating/internalerr"
	"github.com/cognicore/seating/pkg/seating/roster"
	"github.com/cognicore/seating/pkg/seating/store"
)

// timeLayout keeps a fixed width so created_at sorts lexically
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	seed INTEGER NOT NULL,
	max_table_size INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS run_people (
	run_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	description TEXT NOT NULL,
	PRIMARY KEY(run_id, position),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS run_seats (
	run_id TEXT NOT NULL,
	table_id INTEGER NOT NULL,
	seat INTEGER NOT NULL,
	name TEXT NOT NULL,
	description TEXT NOT NULL,
	PRIMARY KEY(run_id, table_id, seat),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveRun inserts or replaces a run with its roster and seating
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) error {
	if r.ID == "" {
		return fmt.Errorf("%w: run id is required", internalerr.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const stmt = `
INSERT INTO runs (id, created_at, seed, max_table_size)
VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	created_at=excluded.created_at,
	seed=excluded.seed,
	max_table_size=excluded.max_table_size;
`
	_, err = tx.ExecContext(ctx, stmt,
		r.ID,
		r.CreatedAt.UTC().Format(timeLayout),
		int64(r.Seed),
		r.MaxTableSize,
	)
	if err != nil {
		return err
	}

	if err := replacePeople(ctx, tx, r.ID, r.People); err != nil {
		return err
	}
	if err := replaceSeats(ctx, tx, r.ID, r.Tables); err != nil {
		return err
	}

	return tx.Commit()
}

func replacePeople(ctx context.Context, tx *sql.Tx, runID string, people []roster.Person) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM run_people WHERE run_id=?`, runID); err != nil {
		return err
	}
	if len(people) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO run_people (run_id, position, name, description) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, p := range people {
		if _, err := stmt.ExecContext(ctx, runID, i, p.Name, p.Description); err != nil {
			return err
		}
	}
	return nil
}

func replaceSeats(ctx context.Context, tx *sql.Tx, runID string, tables []assign.Table) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM run_seats WHERE run_id=?`, runID); err != nil {
		return err
	}
	if len(tables) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO run_seats (run_id, table_id, seat, name, description) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, t := range tables {
		for seat, p := range t.Members {
			if _, err := stmt.ExecContext(ctx, runID, t.ID, seat, p.Name, p.Description); err != nil {
				return err
			}
		}
	}
	return nil
}

// GetRun loads a run by ID
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, bool, error) {
	var (
		run       store.Run
		createdAt string
		seed      int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, seed, max_table_size FROM runs WHERE id=?`, id,
	).Scan(&run.ID, &createdAt, &seed, &run.MaxTableSize)
	if err == sql.ErrNoRows {
		return store.Run{}, false, nil
	}
	if err != nil {
		return store.Run{}, false, err
	}

	run.Seed = uint64(seed)
	if run.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return store.Run{}, false, fmt.Errorf("parse created_at: %w", err)
	}

	if run.People, err = s.loadPeople(ctx, id); err != nil {
		return store.Run{}, false, err
	}
	if run.Tables, err = s.loadTables(ctx, id); err != nil {
		return store.Run{}, false, err
	}

	return run, true, nil
}

// ListRuns returns the most recent runs first
func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.RunInfo, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT r.id, r.created_at,
	(SELECT COUNT(*) FROM run_people p WHERE p.run_id = r.id),
	(SELECT COUNT(DISTINCT t.table_id) FROM run_seats t WHERE t.run_id = r.id)
FROM runs r
ORDER BY r.created_at DESC, r.id DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []store.RunInfo
	for rows.Next() {
		var (
			info      store.RunInfo
			createdAt string
		)
		if err := rows.Scan(&info.ID, &createdAt, &info.People, &info.Tables); err != nil {
			return nil, err
		}
		if info.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

func (s *sqliteStore) loadPeople(ctx context.Context, runID string) ([]roster.Person, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, description FROM run_people WHERE run_id=? ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var people []roster.Person
	for rows.Next() {
		var p roster.Person
		if err := rows.Scan(&p.Name, &p.Description); err != nil {
			return nil, err
		}
		people = append(people, p)
	}
	return people, rows.Err()
}

func (s *sqliteStore) loadTables(ctx context.Context, runID string) ([]assign.Table, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT table_id, name, description FROM run_seats WHERE run_id=? ORDER BY table_id, seat`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []assign.Table
	for rows.Next() {
		var (
			tableID int
			p       roster.Person
		)
		if err := rows.Scan(&tableID, &p.Name, &p.Description); err != nil {
			return nil, err
		}
		if len(tables) == 0 || tables[len(tables)-1].ID != tableID {
			tables = append(tables, assign.Table{ID: tableID})
		}
		last := &tables[len(tables)-1]
		last.Members = append(last.Members, p)
	}
	return tables, rows.Err()
}
