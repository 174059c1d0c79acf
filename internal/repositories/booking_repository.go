package repositories

import (
	"tourmate/internal/domain/models"
	"tourmate/internal/storage"
	"tourmate/internal/utils"
)

// BookingRepository holds the booking collection in insertion order.
type BookingRepository struct {
	gw      storage.Gateway
	records []models.Booking
	index   map[string]int
}

func (r *BookingRepository) load() error {
	rows, err := r.gw.LoadAll(storage.KindBookings)
	if err != nil {
		return err
	}
	records := make([]models.Booking, 0, len(rows))
	for _, row := range rows {
		b, err := models.BookingFromRow(row)
		if err != nil {
			utils.LogEvent("", "STORAGE", "load_bookings", "skipping bad row: "+err.Error())
			continue
		}
		records = append(records, b)
	}
	r.install(records)
	return nil
}

func (r *BookingRepository) persist(records []models.Booking) error {
	rows := make([][]string, len(records))
	for i, b := range records {
		rows[i] = b.Row()
	}
	return r.gw.SaveAll(storage.KindBookings, rows)
}

func (r *BookingRepository) install(records []models.Booking) {
	r.records = records
	r.index = make(map[string]int, len(records))
	for i, b := range records {
		r.index[b.ID] = i
	}
}

// All returns a copy of the collection in insertion order.
func (r *BookingRepository) All() []models.Booking {
	out := make([]models.Booking, len(r.records))
	copy(out, r.records)
	return out
}

// Get looks a booking up by id.
func (r *BookingRepository) Get(id string) (models.Booking, bool) {
	i, ok := r.index[id]
	if !ok {
		return models.Booking{}, false
	}
	return r.records[i], true
}

// ByCustomer returns the customer's bookings in insertion order.
func (r *BookingRepository) ByCustomer(customerID string) []models.Booking {
	out := []models.Booking{}
	for _, b := range r.records {
		if b.CustomerID == customerID {
			out = append(out, b)
		}
	}
	return out
}

// ByVehicle returns the vehicle's bookings in insertion order.
func (r *BookingRepository) ByVehicle(vehicleID string) []models.Booking {
	out := []models.Booking{}
	for _, b := range r.records {
		if b.VehicleID == vehicleID {
			out = append(out, b)
		}
	}
	return out
}

// ByStatus returns bookings in the given status, insertion order.
func (r *BookingRepository) ByStatus(status models.BookingStatus) []models.Booking {
	out := []models.Booking{}
	for _, b := range r.records {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out
}

// NextID allocates the next booking id.
func (r *BookingRepository) NextID() string {
	ids := make([]string, len(r.records))
	for i, b := range r.records {
		ids[i] = b.ID
	}
	return nextSequentialID("BK", ids)
}

// StageAppend returns the collection with b appended, ready for Apply.
func (r *BookingRepository) StageAppend(b models.Booking) []models.Booking {
	out := make([]models.Booking, 0, len(r.records)+1)
	out = append(out, r.records...)
	return append(out, b)
}

// StageReplace returns the collection with the record of the same id replaced.
func (r *BookingRepository) StageReplace(b models.Booking) []models.Booking {
	out := r.All()
	if i, ok := r.index[b.ID]; ok {
		out[i] = b
	}
	return out
}
