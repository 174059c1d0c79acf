// Package csvstore persists collections as headered CSV files in a data
// directory, one file per entity kind.
package csvstore

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"tourmate/internal/storage"
)

// Store implements storage.Gateway over flat CSV files.
type Store struct {
	dir string
}

// New prepares a store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(kind storage.EntityKind) string {
	return filepath.Join(s.dir, string(kind)+".csv")
}

// LoadAll reads every data row of the collection. A missing file is treated
// as an empty collection and created with its header row.
func (s *Store) LoadAll(kind storage.EntityKind) ([][]string, error) {
	if _, ok := storage.Schemas[kind]; !ok {
		return nil, fmt.Errorf("unknown entity kind %q", kind)
	}

	f, err := os.Open(s.path(kind))
	if os.IsNotExist(err) {
		if err := s.SaveAll(kind, nil); err != nil {
			return nil, err
		}
		return [][]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", kind, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	all, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", kind, err)
	}

	rows := make([][]string, 0, len(all))
	for i, rec := range all {
		if i == 0 {
			continue // header
		}
		if len(rec) == 0 || (len(rec) == 1 && rec[0] == "") {
			continue
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// SaveAll rewrites the collection file. The write goes to a temp file first
// and is renamed into place so a crash mid-write cannot truncate data.
func (s *Store) SaveAll(kind storage.EntityKind, rows [][]string) error {
	header, ok := storage.Schemas[kind]
	if !ok {
		return fmt.Errorf("unknown entity kind %q", kind)
	}

	tmp, err := os.CreateTemp(s.dir, string(kind)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", kind, err)
	}
	tmpName := tmp.Name()

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s header: %w", kind, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("write %s row: %w", kind, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flush %s: %w", kind, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", kind, err)
	}

	if err := os.Rename(tmpName, s.path(kind)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", kind, err)
	}
	return nil
}
