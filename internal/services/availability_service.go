package services

import (
	"time"

	"tourmate/internal/domain"
	"tourmate/internal/domain/models"
	"tourmate/internal/repositories"
)

// AvailabilityService answers whether a vehicle can take a trip over a
// candidate window. A vehicle is available when its own status is Available
// and no booking holding the vehicle (Confirmed or In Progress) overlaps the
// window. Pending and finished bookings never block.
type AvailabilityService struct {
	Store *repositories.Store
}

// Check reports availability over the half-open window [start, end).
func (s AvailabilityService) Check(actor domain.Actor, vehicleID string, start, end time.Time) (bool, error) {
	if err := requireView(actor); err != nil {
		return false, err
	}
	if !end.After(start) {
		return false, domain.E(domain.KindInvalidData, "window end must be after start")
	}

	s.Store.Lock()
	defer s.Store.Unlock()

	if _, ok := s.Store.Vehicles.Get(vehicleID); !ok {
		return false, domain.Ef(domain.KindNotFound, "vehicle %s not found", vehicleID)
	}
	return s.isAvailable(vehicleID, start, end), nil
}

// isAvailable is the lock-free core. Callers must hold the store lock.
func (s AvailabilityService) isAvailable(vehicleID string, start, end time.Time) bool {
	v, ok := s.Store.Vehicles.Get(vehicleID)
	if !ok || v.Status != models.VehicleAvailable {
		return false
	}
	for _, b := range s.Store.Bookings.ByVehicle(vehicleID) {
		if b.Status != models.StatusConfirmed && b.Status != models.StatusInProgress {
			continue
		}
		if b.Overlaps(start, end) {
			return false
		}
	}
	return true
}
