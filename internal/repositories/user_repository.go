package repositories

import (
	"tourmate/internal/domain/models"
	"tourmate/internal/storage"
	"tourmate/internal/utils"
)

// UserRepository holds operator accounts, keyed by username.
type UserRepository struct {
	gw      storage.Gateway
	records []models.User
	index   map[string]int
}

func (r *UserRepository) load() error {
	rows, err := r.gw.LoadAll(storage.KindUsers)
	if err != nil {
		return err
	}
	records := make([]models.User, 0, len(rows))
	for _, row := range rows {
		u, err := models.UserFromRow(row)
		if err != nil {
			utils.LogEvent("", "STORAGE", "load_users", "skipping bad row: "+err.Error())
			continue
		}
		records = append(records, u)
	}
	r.install(records)
	return nil
}

func (r *UserRepository) persist(records []models.User) error {
	rows := make([][]string, len(records))
	for i, u := range records {
		rows[i] = u.Row()
	}
	return r.gw.SaveAll(storage.KindUsers, rows)
}

func (r *UserRepository) install(records []models.User) {
	r.records = records
	r.index = make(map[string]int, len(records))
	for i, u := range records {
		r.index[u.Username] = i
	}
}

// All returns a copy of the accounts in insertion order.
func (r *UserRepository) All() []models.User {
	out := make([]models.User, len(r.records))
	copy(out, r.records)
	return out
}

// Get looks an account up by username.
func (r *UserRepository) Get(username string) (models.User, bool) {
	i, ok := r.index[username]
	if !ok {
		return models.User{}, false
	}
	return r.records[i], true
}

// Exists reports whether the username is taken.
func (r *UserRepository) Exists(username string) bool {
	_, ok := r.index[username]
	return ok
}

// StageAppend returns the accounts with u appended, ready for Apply.
func (r *UserRepository) StageAppend(u models.User) []models.User {
	out := make([]models.User, 0, len(r.records)+1)
	out = append(out, r.records...)
	return append(out, u)
}

// StageRemove returns the accounts without the given username.
func (r *UserRepository) StageRemove(username string) []models.User {
	out := make([]models.User, 0, len(r.records))
	for _, u := range r.records {
		if u.Username == username {
			continue
		}
		out = append(out, u)
	}
	return out
}
