package services

import (
	"time"

	"tourmate/internal/audit"
	"tourmate/internal/domain"
	"tourmate/internal/domain/models"
	"tourmate/internal/repositories"
	"tourmate/internal/utils"
)

// VehicleService manages the fleet roster the availability checks run over.
type VehicleService struct {
	Store     *repositories.Store
	Audit     audit.Sink
	RequestID string
	Now       func() time.Time
}

// VehicleInput is the caller-supplied portion of a vehicle record.
type VehicleInput struct {
	ID        string  `json:"vehicleId"`
	Model     string  `json:"model"`
	FarePerKm float64 `json:"farePerKm"`
	Status    string  `json:"status"`
}

// Add registers a vehicle. Status defaults to Available.
func (s VehicleService) Add(actor domain.Actor, in VehicleInput) (models.Vehicle, error) {
	if err := requireManage(actor); err != nil {
		return models.Vehicle{}, err
	}

	id := utils.TrimOrEmpty(in.ID)
	model := utils.TrimOrEmpty(in.Model)
	if id == "" {
		return models.Vehicle{}, domain.E(domain.KindInvalidData, "vehicle id is required")
	}
	if model == "" {
		return models.Vehicle{}, domain.E(domain.KindInvalidData, "vehicle model is required")
	}
	if in.FarePerKm <= 0 {
		return models.Vehicle{}, domain.E(domain.KindInvalidData, "farePerKm must be positive")
	}

	status := models.VehicleAvailable
	if in.Status != "" {
		status = models.ParseVehicleStatus(in.Status)
		if status == models.VehicleUnknown {
			return models.Vehicle{}, domain.Ef(domain.KindInvalidData, "unknown vehicle status %q", in.Status)
		}
	}

	s.Store.Lock()
	defer s.Store.Unlock()

	if s.Store.Vehicles.Exists(id) {
		return models.Vehicle{}, domain.Ef(domain.KindDuplicateID, "vehicle %s already exists", id)
	}

	v := models.Vehicle{ID: id, Model: model, FarePerKm: in.FarePerKm, Status: status}
	if err := s.Store.Apply(repositories.Staged{Vehicles: s.Store.Vehicles.StageAppend(v)}); err != nil {
		return models.Vehicle{}, domain.Wrap(domain.KindFileError, "save vehicles", err)
	}

	s.Audit.Append(actor.Username, "ADD_VEHICLE", v.ID, v.Model)
	utils.LogEvent(s.RequestID, "VEHICLE", "add", "created "+v.ID)
	return v, nil
}

// Get returns one vehicle by id.
func (s VehicleService) Get(actor domain.Actor, id string) (models.Vehicle, error) {
	if err := requireView(actor); err != nil {
		return models.Vehicle{}, err
	}
	s.Store.Lock()
	defer s.Store.Unlock()

	v, ok := s.Store.Vehicles.Get(id)
	if !ok {
		return models.Vehicle{}, domain.Ef(domain.KindNotFound, "vehicle %s not found", id)
	}
	return v, nil
}

// All lists the fleet in registration order.
func (s VehicleService) All(actor domain.Actor) ([]models.Vehicle, error) {
	if err := requireView(actor); err != nil {
		return nil, err
	}
	s.Store.Lock()
	defer s.Store.Unlock()
	return s.Store.Vehicles.All(), nil
}

// SetStatus moves a vehicle between Available, In Service, and Maintenance.
func (s VehicleService) SetStatus(actor domain.Actor, id, status string) (models.Vehicle, error) {
	if err := requireManage(actor); err != nil {
		return models.Vehicle{}, err
	}

	parsed := models.ParseVehicleStatus(status)
	if parsed == models.VehicleUnknown {
		return models.Vehicle{}, domain.Ef(domain.KindInvalidData, "unknown vehicle status %q", status)
	}

	s.Store.Lock()
	defer s.Store.Unlock()

	v, ok := s.Store.Vehicles.Get(id)
	if !ok {
		return models.Vehicle{}, domain.Ef(domain.KindNotFound, "vehicle %s not found", id)
	}
	v.Status = parsed

	if err := s.Store.Apply(repositories.Staged{Vehicles: s.Store.Vehicles.StageReplace(v)}); err != nil {
		return models.Vehicle{}, domain.Wrap(domain.KindFileError, "save vehicles", err)
	}

	s.Audit.Append(actor.Username, "UPDATE_VEHICLE", v.ID, string(v.Status))
	utils.LogEvent(s.RequestID, "VEHICLE", "set_status", id+" -> "+string(parsed))
	return v, nil
}

// Remove deletes a vehicle from the roster. Bookings referencing the id are
// kept as history.
func (s VehicleService) Remove(actor domain.Actor, id string) error {
	if err := requireDelete(actor); err != nil {
		return err
	}

	s.Store.Lock()
	defer s.Store.Unlock()

	v, ok := s.Store.Vehicles.Get(id)
	if !ok {
		return domain.Ef(domain.KindNotFound, "vehicle %s not found", id)
	}

	if err := s.Store.Apply(repositories.Staged{Vehicles: s.Store.Vehicles.StageRemove(id)}); err != nil {
		return domain.Wrap(domain.KindFileError, "save vehicles", err)
	}

	s.Audit.Append(actor.Username, "DELETE_VEHICLE", id, v.Model)
	utils.LogEvent(s.RequestID, "VEHICLE", "remove", "deleted "+id)
	return nil
}
