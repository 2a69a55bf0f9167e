package index

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/packsmith/packsmith/internal/item"
	"github.com/packsmith/packsmith/internal/sqlutil"
)

// EdgeRecord is one persisted relationship edge, keyed by project paths.
type EdgeRecord struct {
	ParentPath string `json:"parentPath"`
	ChildPath  string `json:"childPath"`
}

// UnfulfilledRecord is one persisted unresolved reference.
type UnfulfilledRecord struct {
	ParentPath string `json:"parentPath"`
	Path       string `json:"path"`
	Type       string `json:"type"`
	Vanilla    bool   `json:"vanilla"`
}

// Snapshot is the full persisted state of a project's item collection.
type Snapshot struct {
	Items         []item.ItemRecord
	Edges         []EdgeRecord
	Unfulfilled   []UnfulfilledRecord
	VariantLabels []string
}

// ReplaceAll atomically replaces the index content with the snapshot.
func (d *Database) ReplaceAll(snap Snapshot) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin index write: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"items", "edges", "unfulfilled", "variant_labels"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	now := nowUnix()
	itemStmt, err := tx.Prepare(
		"INSERT INTO items (project_path, item_type, name, record, indexed_at) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		return err
	}
	defer itemStmt.Close()
	for _, rec := range snap.Items {
		encoded, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to encode item %s: %w", rec.ProjectPath, err)
		}
		if _, err := itemStmt.Exec(rec.ProjectPath, rec.ItemType, rec.Name, string(encoded), now); err != nil {
			return fmt.Errorf("failed to write item %s: %w", rec.ProjectPath, err)
		}
	}

	edgeStmt, err := tx.Prepare(
		"INSERT OR IGNORE INTO edges (parent_path, child_path) VALUES (?, ?)",
	)
	if err != nil {
		return err
	}
	defer edgeStmt.Close()
	for _, e := range snap.Edges {
		if _, err := edgeStmt.Exec(e.ParentPath, e.ChildPath); err != nil {
			return fmt.Errorf("failed to write edge %s -> %s: %w", e.ParentPath, e.ChildPath, err)
		}
	}

	unfulfilledStmt, err := tx.Prepare(
		"INSERT OR IGNORE INTO unfulfilled (parent_path, ref_path, ref_type, vanilla) VALUES (?, ?, ?, ?)",
	)
	if err != nil {
		return err
	}
	defer unfulfilledStmt.Close()
	for _, u := range snap.Unfulfilled {
		vanilla := 0
		if u.Vanilla {
			vanilla = 1
		}
		if _, err := unfulfilledStmt.Exec(u.ParentPath, u.Path, u.Type, vanilla); err != nil {
			return fmt.Errorf("failed to write unfulfilled ref %s: %w", u.Path, err)
		}
	}

	for _, label := range snap.VariantLabels {
		if _, err := tx.Exec("INSERT OR IGNORE INTO variant_labels (label) VALUES (?)", label); err != nil {
			return fmt.Errorf("failed to write variant label %s: %w", label, err)
		}
	}

	return tx.Commit()
}

// LoadSnapshot reads the full persisted state back.
func (d *Database) LoadSnapshot() (Snapshot, error) {
	var snap Snapshot

	items, err := d.ItemRecordsByTypes(nil)
	if err != nil {
		return snap, err
	}
	snap.Items = items

	edgeRows, err := d.db.Query("SELECT parent_path, child_path FROM edges ORDER BY parent_path, child_path")
	if err != nil {
		return snap, err
	}
	snap.Edges, err = sqlutil.ScanRows(edgeRows, func(rows *sql.Rows) (EdgeRecord, error) {
		var e EdgeRecord
		err := rows.Scan(&e.ParentPath, &e.ChildPath)
		return e, err
	})
	if err != nil {
		return snap, err
	}

	unfulfilledRows, err := d.db.Query(
		"SELECT parent_path, ref_path, ref_type, vanilla FROM unfulfilled ORDER BY parent_path, ref_path",
	)
	if err != nil {
		return snap, err
	}
	snap.Unfulfilled, err = sqlutil.ScanRows(unfulfilledRows, func(rows *sql.Rows) (UnfulfilledRecord, error) {
		var u UnfulfilledRecord
		var vanilla int
		if err := rows.Scan(&u.ParentPath, &u.Path, &u.Type, &vanilla); err != nil {
			return u, err
		}
		u.Vanilla = vanilla != 0
		return u, nil
	})
	if err != nil {
		return snap, err
	}

	labelRows, err := d.db.Query("SELECT label FROM variant_labels ORDER BY label")
	if err != nil {
		return snap, err
	}
	snap.VariantLabels, err = sqlutil.ScanRows(labelRows, func(rows *sql.Rows) (string, error) {
		var label string
		err := rows.Scan(&label)
		return label, err
	})
	return snap, err
}

// ItemRecordsByTypes returns the records whose item type is in types,
// ordered by project path. An empty types slice returns every record.
func (d *Database) ItemRecordsByTypes(types []string) ([]item.ItemRecord, error) {
	query := "SELECT record FROM items ORDER BY project_path"
	var args []any
	if len(types) > 0 {
		placeholders, inArgs := sqlutil.InClauseArgs(types)
		query = "SELECT record FROM items WHERE item_type IN (" + placeholders + ") ORDER BY project_path"
		args = inArgs
	}
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	return sqlutil.ScanRows(rows, func(rows *sql.Rows) (item.ItemRecord, error) {
		var encoded string
		if err := rows.Scan(&encoded); err != nil {
			return item.ItemRecord{}, err
		}
		var rec item.ItemRecord
		if err := json.Unmarshal([]byte(encoded), &rec); err != nil {
			return item.ItemRecord{}, fmt.Errorf("failed to decode item record: %w", err)
		}
		return rec, nil
	})
}

// ItemRecord fetches one item's record by project path.
func (d *Database) ItemRecord(projectPath string) (item.ItemRecord, error) {
	var encoded string
	err := d.db.QueryRow(
		"SELECT record FROM items WHERE project_path = ?", projectPath,
	).Scan(&encoded)
	if err == sql.ErrNoRows {
		return item.ItemRecord{}, ErrItemNotFound
	}
	if err != nil {
		return item.ItemRecord{}, err
	}
	var rec item.ItemRecord
	if err := json.Unmarshal([]byte(encoded), &rec); err != nil {
		return item.ItemRecord{}, fmt.Errorf("failed to decode item record: %w", err)
	}
	return rec, nil
}

// ChildPaths returns the child project paths recorded for a parent.
func (d *Database) ChildPaths(parentPath string) ([]string, error) {
	return d.pathColumn(
		"SELECT child_path FROM edges WHERE parent_path = ? ORDER BY child_path", parentPath,
	)
}

// ParentPaths returns the parent project paths recorded for a child.
func (d *Database) ParentPaths(childPath string) ([]string, error) {
	return d.pathColumn(
		"SELECT parent_path FROM edges WHERE child_path = ? ORDER BY parent_path", childPath,
	)
}

func (d *Database) pathColumn(query, arg string) ([]string, error) {
	rows, err := d.db.Query(query, arg)
	if err != nil {
		return nil, err
	}
	return sqlutil.ScanRows(rows, func(rows *sql.Rows) (string, error) {
		var p string
		err := rows.Scan(&p)
		return p, err
	})
}
