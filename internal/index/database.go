// Package index persists the project's item collection and relationship
// graph to a SQLite database under .packsmith/.
package index

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Database is the SQLite index handle.
type Database struct {
	db *sql.DB
}

var (
	// ErrItemNotFound indicates the requested project path is not indexed.
	ErrItemNotFound = errors.New("item not found in index")
	// ErrIndexLocked indicates another process is rebuilding the index.
	ErrIndexLocked = errors.New("index is locked for rebuild")
)

// DB returns the underlying sql.DB for advanced queries.
func (d *Database) DB() *sql.DB {
	return d.db
}

// Open opens or creates the index database under projectPath.
func Open(projectPath string) (*Database, error) {
	dbDir := filepath.Join(projectPath, ".packsmith")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .packsmith directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, "index.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	d := &Database{db: db}
	if err := d.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// OpenWithRebuild opens the index, recreating it when the on-disk schema
// is incompatible with this build. Returns (database, wasRebuilt, error).
func OpenWithRebuild(projectPath string) (*Database, bool, error) {
	dbDir := filepath.Join(projectPath, ".packsmith")
	dbPath := filepath.Join(dbDir, "index.db")

	lock, err := acquireIndexLock(dbDir)
	if err != nil {
		return nil, false, err
	}
	defer lock.Release()

	if _, err := os.Stat(dbPath); err == nil {
		db, err := sql.Open("sqlite", dbPath)
		if err == nil {
			compatible := isSchemaCompatible(db)
			db.Close()
			if !compatible {
				if err := removeDatabaseFiles(dbPath); err != nil {
					return nil, false, err
				}
				fresh, err := Open(projectPath)
				return fresh, true, err
			}
		}
	}

	db, err := Open(projectPath)
	return db, false, err
}

// OpenInMemory opens an in-memory index (for testing).
func OpenInMemory() (*Database, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	d := &Database{db: db}
	if err := d.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the database.
func (d *Database) Close() error {
	return d.db.Close()
}

// Analyze refreshes SQLite's query planner statistics. Call after bulk
// writes.
func (d *Database) Analyze() error {
	_, err := d.db.Exec("ANALYZE")
	return err
}

type indexLock struct {
	file *os.File
}

func acquireIndexLock(dbDir string) (*indexLock, error) {
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .packsmith directory: %w", err)
	}

	lockPath := filepath.Join(dbDir, "index.lock")
	lockFile, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open index lock: %w", err)
	}

	if err := lockFileExclusiveNonBlocking(lockFile); err != nil {
		lockFile.Close()
		if isWouldBlockError(err) {
			return nil, ErrIndexLocked
		}
		return nil, fmt.Errorf("failed to acquire index lock: %w", err)
	}
	return &indexLock{file: lockFile}, nil
}

func (l *indexLock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	unlockErr := unlockFile(l.file)
	closeErr := l.file.Close()
	if unlockErr != nil {
		return unlockErr
	}
	return closeErr
}

func removeDatabaseFiles(dbPath string) error {
	paths := []string{dbPath, dbPath + "-wal", dbPath + "-shm"}
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", p, err)
		}
	}
	return nil
}

// CurrentDBVersion is the index schema version. Bump on any incompatible
// table change; an old database is rebuilt from a fresh scan.
const CurrentDBVersion = 1

// isSchemaCompatible checks the stored schema version against this build.
func isSchemaCompatible(db *sql.DB) bool {
	var value string
	err := db.QueryRow("SELECT value FROM meta WHERE key = 'version'").Scan(&value)
	if err != nil {
		return false
	}
	return value == fmt.Sprintf("%d", CurrentDBVersion)
}

// initialize creates the schema.
func (d *Database) initialize() error {
	schema := `
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		-- One row per project item; the record column carries the full
		-- durable representation as JSON.
		CREATE TABLE IF NOT EXISTS items (
			project_path TEXT PRIMARY KEY COLLATE NOCASE,
			item_type TEXT NOT NULL,
			name TEXT NOT NULL,
			record TEXT NOT NULL,
			indexed_at INTEGER
		);

		-- Parent/child relationship edges between items.
		CREATE TABLE IF NOT EXISTS edges (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			parent_path TEXT NOT NULL COLLATE NOCASE,
			child_path TEXT NOT NULL COLLATE NOCASE,
			UNIQUE(parent_path, child_path)
		);

		-- References that resolved to no item.
		CREATE TABLE IF NOT EXISTS unfulfilled (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			parent_path TEXT NOT NULL COLLATE NOCASE,
			ref_path TEXT NOT NULL,
			ref_type TEXT NOT NULL,
			vanilla INTEGER NOT NULL DEFAULT 0,
			UNIQUE(parent_path, ref_path)
		);

		-- Project-wide variant label registry.
		CREATE TABLE IF NOT EXISTS variant_labels (
			label TEXT PRIMARY KEY
		);

		CREATE INDEX IF NOT EXISTS idx_items_type ON items(item_type);
		CREATE INDEX IF NOT EXISTS idx_edges_parent ON edges(parent_path);
		CREATE INDEX IF NOT EXISTS idx_edges_child ON edges(child_path);
		CREATE INDEX IF NOT EXISTS idx_unfulfilled_parent ON unfulfilled(parent_path);
	`
	if _, err := d.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	_, err := d.db.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES ('version', ?)",
		fmt.Sprintf("%d", CurrentDBVersion),
	)
	return err
}

func nowUnix() int64 {
	return time.Now().Unix()
}
