package repositories

import (
	"tourmate/internal/domain/models"
	"tourmate/internal/storage"
	"tourmate/internal/utils"
)

// SalesRepository holds the settled sales ledger in insertion order.
type SalesRepository struct {
	gw      storage.Gateway
	records []models.SalesRecord
	index   map[string]int
}

func (r *SalesRepository) load() error {
	rows, err := r.gw.LoadAll(storage.KindSales)
	if err != nil {
		return err
	}
	records := make([]models.SalesRecord, 0, len(rows))
	for _, row := range rows {
		s, err := models.SalesRecordFromRow(row)
		if err != nil {
			utils.LogEvent("", "STORAGE", "load_sales", "skipping bad row: "+err.Error())
			continue
		}
		records = append(records, s)
	}
	r.install(records)
	return nil
}

func (r *SalesRepository) persist(records []models.SalesRecord) error {
	rows := make([][]string, len(records))
	for i, s := range records {
		rows[i] = s.Row()
	}
	return r.gw.SaveAll(storage.KindSales, rows)
}

func (r *SalesRepository) install(records []models.SalesRecord) {
	r.records = records
	r.index = make(map[string]int, len(records))
	for i, s := range records {
		r.index[s.ID] = i
	}
}

// All returns a copy of the ledger in insertion order.
func (r *SalesRepository) All() []models.SalesRecord {
	out := make([]models.SalesRecord, len(r.records))
	copy(out, r.records)
	return out
}

// Get looks a sales record up by id.
func (r *SalesRepository) Get(id string) (models.SalesRecord, bool) {
	i, ok := r.index[id]
	if !ok {
		return models.SalesRecord{}, false
	}
	return r.records[i], true
}

// Exists reports whether the id is taken.
func (r *SalesRepository) Exists(id string) bool {
	_, ok := r.index[id]
	return ok
}

// NextID allocates the next sales id.
func (r *SalesRepository) NextID() string {
	ids := make([]string, len(r.records))
	for i, s := range r.records {
		ids[i] = s.ID
	}
	return nextSequentialID("SAL", ids)
}

// StageAppend returns the ledger with s appended, ready for Apply.
func (r *SalesRepository) StageAppend(s models.SalesRecord) []models.SalesRecord {
	out := make([]models.SalesRecord, 0, len(r.records)+1)
	out = append(out, r.records...)
	return append(out, s)
}

// StageReplace returns the ledger with the record of the same id replaced.
func (r *SalesRepository) StageReplace(s models.SalesRecord) []models.SalesRecord {
	out := r.All()
	if i, ok := r.index[s.ID]; ok {
		out[i] = s
	}
	return out
}

// StageRemove returns the ledger without the given id.
func (r *SalesRepository) StageRemove(id string) []models.SalesRecord {
	out := make([]models.SalesRecord, 0, len(r.records))
	for _, s := range r.records {
		if s.ID == id {
			continue
		}
		out = append(out, s)
	}
	return out
}
