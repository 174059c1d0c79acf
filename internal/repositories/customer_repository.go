package repositories

import (
	"tourmate/internal/domain/models"
	"tourmate/internal/storage"
	"tourmate/internal/utils"
)

// CustomerRepository holds the customer collection in insertion order.
type CustomerRepository struct {
	gw      storage.Gateway
	records []models.Customer
	index   map[string]int
}

func (r *CustomerRepository) load() error {
	rows, err := r.gw.LoadAll(storage.KindCustomers)
	if err != nil {
		return err
	}
	records := make([]models.Customer, 0, len(rows))
	for _, row := range rows {
		c, err := models.CustomerFromRow(row)
		if err != nil {
			utils.LogEvent("", "STORAGE", "load_customers", "skipping bad row: "+err.Error())
			continue
		}
		records = append(records, c)
	}
	r.install(records)
	return nil
}

func (r *CustomerRepository) persist(records []models.Customer) error {
	rows := make([][]string, len(records))
	for i, c := range records {
		rows[i] = c.Row()
	}
	return r.gw.SaveAll(storage.KindCustomers, rows)
}

func (r *CustomerRepository) install(records []models.Customer) {
	r.records = records
	r.index = make(map[string]int, len(records))
	for i, c := range records {
		r.index[c.ID] = i
	}
}

// All returns a copy of the collection in insertion order.
func (r *CustomerRepository) All() []models.Customer {
	out := make([]models.Customer, len(r.records))
	copy(out, r.records)
	return out
}

// Get looks a customer up by id.
func (r *CustomerRepository) Get(id string) (models.Customer, bool) {
	i, ok := r.index[id]
	if !ok {
		return models.Customer{}, false
	}
	return r.records[i], true
}

// Exists reports whether the id is taken.
func (r *CustomerRepository) Exists(id string) bool {
	_, ok := r.index[id]
	return ok
}

// FindByEmail returns the customer with the exact email, if any.
func (r *CustomerRepository) FindByEmail(email string) (models.Customer, bool) {
	for _, c := range r.records {
		if c.Email == email {
			return c, true
		}
	}
	return models.Customer{}, false
}

// FindByPhone returns the customer with the exact phone number, if any.
func (r *CustomerRepository) FindByPhone(phone string) (models.Customer, bool) {
	for _, c := range r.records {
		if c.Phone == phone {
			return c, true
		}
	}
	return models.Customer{}, false
}

// NextID allocates the next customer id.
func (r *CustomerRepository) NextID() string {
	ids := make([]string, len(r.records))
	for i, c := range r.records {
		ids[i] = c.ID
	}
	return nextSequentialID("CU", ids)
}

// StageAppend returns the collection with c appended, ready for Apply.
func (r *CustomerRepository) StageAppend(c models.Customer) []models.Customer {
	out := make([]models.Customer, 0, len(r.records)+1)
	out = append(out, r.records...)
	return append(out, c)
}

// StageReplace returns the collection with the record of the same id replaced.
func (r *CustomerRepository) StageReplace(c models.Customer) []models.Customer {
	out := r.All()
	if i, ok := r.index[c.ID]; ok {
		out[i] = c
	}
	return out
}

// StageRemove returns the collection without the given id.
func (r *CustomerRepository) StageRemove(id string) []models.Customer {
	out := make([]models.Customer, 0, len(r.records))
	for _, c := range r.records {
		if c.ID == id {
			continue
		}
		out = append(out, c)
	}
	return out
}
