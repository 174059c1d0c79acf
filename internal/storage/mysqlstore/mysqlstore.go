// Package mysqlstore persists collections in MySQL behind the same
// read-all/write-all gateway the CSV store implements. Intended for
// deployments where the data directory cannot live on local disk; the
// write-amplification caveat of the gateway contract applies here too.
package mysqlstore

import (
	"database/sql"
	"fmt"
	"strings"

	"tourmate/internal/storage"
)

// Store implements storage.Gateway over a MySQL database, one table per
// entity kind with a TEXT column per schema column.
type Store struct {
	db *sql.DB
}

// New wraps an open database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ensureTable(kind storage.EntityKind, cols []string) error {
	defs := make([]string, 0, len(cols)+1)
	defs = append(defs, "`seq` BIGINT AUTO_INCREMENT PRIMARY KEY")
	for _, c := range cols {
		defs = append(defs, fmt.Sprintf("`%s` TEXT", c))
	}
	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS `%s` (%s)", kind, strings.Join(defs, ", "))
	_, err := s.db.Exec(ddl)
	return err
}

// LoadAll reads every row of the collection in insertion order. A missing
// table is created empty.
func (s *Store) LoadAll(kind storage.EntityKind) ([][]string, error) {
	cols, ok := storage.Schemas[kind]
	if !ok {
		return nil, fmt.Errorf("unknown entity kind %q", kind)
	}
	if err := s.ensureTable(kind, cols); err != nil {
		return nil, fmt.Errorf("ensure %s: %w", kind, err)
	}

	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = "`" + c + "`"
	}
	query := fmt.Sprintf("SELECT %s FROM `%s` ORDER BY `seq`", strings.Join(quoted, ", "), kind)

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", kind, err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		vals := make([]sql.NullString, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", kind, err)
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			row[i] = v.String
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", kind, err)
	}
	if out == nil {
		out = [][]string{}
	}
	return out, nil
}

// SaveAll replaces the collection inside a single transaction.
func (s *Store) SaveAll(kind storage.EntityKind, rows [][]string) error {
	cols, ok := storage.Schemas[kind]
	if !ok {
		return fmt.Errorf("unknown entity kind %q", kind)
	}
	if err := s.ensureTable(kind, cols); err != nil {
		return fmt.Errorf("ensure %s: %w", kind, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin %s: %w", kind, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(fmt.Sprintf("DELETE FROM `%s`", kind)); err != nil {
		return fmt.Errorf("clear %s: %w", kind, err)
	}

	quoted := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = "`" + c + "`"
		marks[i] = "?"
	}
	insert := fmt.Sprintf("INSERT INTO `%s` (%s) VALUES (%s)",
		kind, strings.Join(quoted, ", "), strings.Join(marks, ", "))

	stmt, err := tx.Prepare(insert)
	if err != nil {
		return fmt.Errorf("prepare %s: %w", kind, err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if len(row) != len(cols) {
			return fmt.Errorf("%s row has %d fields, want %d", kind, len(row), len(cols))
		}
		args := make([]any, len(row))
		for i, v := range row {
			args[i] = v
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("insert %s: %w", kind, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", kind, err)
	}
	return nil
}
