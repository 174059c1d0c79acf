package repositories

import (
	"tourmate/internal/domain/models"
	"tourmate/internal/storage"
	"tourmate/internal/utils"
)

// VehicleRepository holds the fleet in insertion order.
type VehicleRepository struct {
	gw      storage.Gateway
	records []models.Vehicle
	index   map[string]int
}

func (r *VehicleRepository) load() error {
	rows, err := r.gw.LoadAll(storage.KindVehicles)
	if err != nil {
		return err
	}
	records := make([]models.Vehicle, 0, len(rows))
	for _, row := range rows {
		v, err := models.VehicleFromRow(row)
		if err != nil {
			utils.LogEvent("", "STORAGE", "load_vehicles", "skipping bad row: "+err.Error())
			continue
		}
		records = append(records, v)
	}
	r.install(records)
	return nil
}

func (r *VehicleRepository) persist(records []models.Vehicle) error {
	rows := make([][]string, len(records))
	for i, v := range records {
		rows[i] = v.Row()
	}
	return r.gw.SaveAll(storage.KindVehicles, rows)
}

func (r *VehicleRepository) install(records []models.Vehicle) {
	r.records = records
	r.index = make(map[string]int, len(records))
	for i, v := range records {
		r.index[v.ID] = i
	}
}

// All returns a copy of the fleet in insertion order.
func (r *VehicleRepository) All() []models.Vehicle {
	out := make([]models.Vehicle, len(r.records))
	copy(out, r.records)
	return out
}

// Get looks a vehicle up by id.
func (r *VehicleRepository) Get(id string) (models.Vehicle, bool) {
	i, ok := r.index[id]
	if !ok {
		return models.Vehicle{}, false
	}
	return r.records[i], true
}

// Exists reports whether the id is taken.
func (r *VehicleRepository) Exists(id string) bool {
	_, ok := r.index[id]
	return ok
}

// StageAppend returns the fleet with v appended, ready for Apply.
func (r *VehicleRepository) StageAppend(v models.Vehicle) []models.Vehicle {
	out := make([]models.Vehicle, 0, len(r.records)+1)
	out = append(out, r.records...)
	return append(out, v)
}

// StageReplace returns the fleet with the record of the same id replaced.
func (r *VehicleRepository) StageReplace(v models.Vehicle) []models.Vehicle {
	out := r.All()
	if i, ok := r.index[v.ID]; ok {
		out[i] = v
	}
	return out
}

// StageRemove returns the fleet without the given id.
func (r *VehicleRepository) StageRemove(id string) []models.Vehicle {
	out := make([]models.Vehicle, 0, len(r.records))
	for _, v := range r.records {
		if v.ID == id {
			continue
		}
		out = append(out, v)
	}
	return out
}
