package services

import (
	"time"

	"tourmate/internal/audit"
	"tourmate/internal/domain"
	"tourmate/internal/domain/models"
	"tourmate/internal/repositories"
	"tourmate/internal/utils"
)

// DefaultTripDistance is used for fare quoting when the caller supplies no
// distance estimate. The fare is recomputed from the actual distance at trip
// completion.
const DefaultTripDistance = 50.0

// BookingService drives the booking state machine:
//
//	Pending -> Confirmed -> In Progress -> Completed -> Refunded
//
// with Cancelled reachable from any non-terminal state. Each transition
// commits every touched collection in one Apply, so a failed write leaves
// both memory and disk on the pre-transition state.
type BookingService struct {
	Store     *repositories.Store
	Audit     audit.Sink
	RequestID string
	Now       func() time.Time

	// TripDuration is the booked vehicle-hold window. Zero means one hour.
	TripDuration time.Duration
}

// BookingInput is the caller-supplied portion of a new booking.
type BookingInput struct {
	CustomerID      string  `json:"customerId"`
	VehicleID       string  `json:"vehicleId"`
	FromLocation    string  `json:"fromLocation"`
	ToLocation      string  `json:"toLocation"`
	DepartureTime   string  `json:"departureTime"`
	TripType        string  `json:"tripType"`
	Passengers      int     `json:"passengers"`
	Distance        float64 `json:"distance"`
	SpecialRequests string  `json:"specialRequests"`
}

func (s BookingService) tripDuration() time.Duration {
	if s.TripDuration > 0 {
		return s.TripDuration
	}
	return time.Hour
}

// Create quotes a fare and records a Pending booking. Pending bookings do
// not hold the vehicle; the window is only checked again at confirmation.
func (s BookingService) Create(actor domain.Actor, in BookingInput) (models.Booking, error) {
	if err := requireManage(actor); err != nil {
		return models.Booking{}, err
	}

	from := utils.TrimOrEmpty(in.FromLocation)
	to := utils.TrimOrEmpty(in.ToLocation)
	if from == "" || to == "" {
		return models.Booking{}, domain.E(domain.KindInvalidData, "fromLocation and toLocation are required")
	}
	if in.Passengers <= 0 {
		return models.Booking{}, domain.E(domain.KindInvalidData, "passengers must be positive")
	}
	if in.Distance < 0 {
		return models.Booking{}, domain.E(domain.KindInvalidData, "distance cannot be negative")
	}
	departure, err := utils.ParseDateTime(in.DepartureTime)
	if err != nil {
		return models.Booking{}, domain.Wrap(domain.KindInvalidData, "departureTime", err)
	}
	tripType := models.ParseTripType(in.TripType)
	if tripType == models.TripUnknown {
		return models.Booking{}, domain.Ef(domain.KindInvalidData, "unknown trip type %q", in.TripType)
	}
	arrival := departure.Add(s.tripDuration())

	s.Store.Lock()
	defer s.Store.Unlock()

	customer, ok := s.Store.Customers.Get(in.CustomerID)
	if !ok {
		return models.Booking{}, domain.Ef(domain.KindNotFound, "customer %s not found", in.CustomerID)
	}
	vehicle, ok := s.Store.Vehicles.Get(in.VehicleID)
	if !ok {
		return models.Booking{}, domain.Ef(domain.KindNotFound, "vehicle %s not found", in.VehicleID)
	}

	oracle := AvailabilityService{Store: s.Store}
	if !oracle.isAvailable(vehicle.ID, departure, arrival) {
		return models.Booking{}, domain.Ef(domain.KindVehicleUnavailable,
			"vehicle %s is not available from %s", vehicle.ID, utils.FormatDateTime(departure))
	}

	distance := in.Distance
	if distance == 0 {
		distance = DefaultTripDistance
	}
	fare := utils.ComputeFare(vehicle.FarePerKm, distance, customer.Profile())

	b := models.Booking{
		ID:              s.Store.Bookings.NextID(),
		CustomerID:      customer.ID,
		VehicleID:       vehicle.ID,
		FromLocation:    from,
		ToLocation:      to,
		DepartureAt:     departure,
		ArrivalAt:       arrival,
		TripType:        tripType,
		Passengers:      in.Passengers,
		BaseFare:        fare.Base,
		TotalFare:       fare.Total,
		Discount:        fare.Discount,
		PaymentMethod:   models.PaymentUnknown,
		Status:          models.StatusPending,
		SpecialRequests: utils.TrimOrEmpty(in.SpecialRequests),
		CreatedAt:       clock(s.Now),
		CreatedBy:       actor.Username,
	}

	if err := s.Store.Apply(repositories.Staged{Bookings: s.Store.Bookings.StageAppend(b)}); err != nil {
		return models.Booking{}, domain.Wrap(domain.KindFileError, "save bookings", err)
	}

	s.Audit.Append(actor.Username, "CREATE_BOOKING", b.ID, customer.ID+" -> "+vehicle.ID)
	utils.LogEvent(s.RequestID, "BOOKING", "create", "created "+b.ID)
	return b, nil
}

// Confirm moves a Pending booking to Confirmed, records the payment method,
// and accrues the fare on the customer's spending stats. The vehicle window
// is re-checked here because Pending bookings never held it.
func (s BookingService) Confirm(actor domain.Actor, id, paymentMethod string) (models.Booking, error) {
	if err := requireManage(actor); err != nil {
		return models.Booking{}, err
	}

	method := models.ParsePaymentMethod(paymentMethod)
	if method == models.PaymentUnknown {
		return models.Booking{}, domain.Ef(domain.KindPaymentFailed, "unsupported payment method %q", paymentMethod)
	}

	s.Store.Lock()
	defer s.Store.Unlock()

	b, ok := s.Store.Bookings.Get(id)
	if !ok {
		return models.Booking{}, domain.Ef(domain.KindNotFound, "booking %s not found", id)
	}
	if b.Status != models.StatusPending {
		return models.Booking{}, domain.Ef(domain.KindInvalidData, "booking %s is %s, not %s", id, b.Status, models.StatusPending)
	}

	for _, other := range s.Store.Bookings.ByVehicle(b.VehicleID) {
		if other.ID == b.ID {
			continue
		}
		if other.Status != models.StatusConfirmed && other.Status != models.StatusInProgress {
			continue
		}
		if other.Overlaps(b.DepartureAt, b.ArrivalAt) {
			return models.Booking{}, domain.Ef(domain.KindBookingConflict,
				"vehicle %s already booked over that window by %s", b.VehicleID, other.ID)
		}
	}

	b.Status = models.StatusConfirmed
	b.PaymentMethod = method

	staged := repositories.Staged{Bookings: s.Store.Bookings.StageReplace(b)}

	// Customer stats accrue at confirmation and are never reversed later.
	if c, ok := s.Store.Customers.Get(b.CustomerID); ok {
		c.TotalBookings++
		c.TotalSpent += b.TotalFare
		if c.TotalBookings > 5 && c.TotalSpent > 500 {
			c.IsVip = true
		}
		staged.Customers = s.Store.Customers.StageReplace(c)
	}

	if err := s.Store.Apply(staged); err != nil {
		return models.Booking{}, domain.Wrap(domain.KindFileError, "save booking confirmation", err)
	}

	s.Audit.Append(actor.Username, "CONFIRM_BOOKING", b.ID, string(method))
	utils.LogEvent(s.RequestID, "BOOKING", "confirm", "confirmed "+b.ID)
	return b, nil
}

// StartTrip moves a Confirmed booking to In Progress and marks the vehicle
// In Service.
func (s BookingService) StartTrip(actor domain.Actor, id string) (models.Booking, error) {
	if err := requireManage(actor); err != nil {
		return models.Booking{}, err
	}

	s.Store.Lock()
	defer s.Store.Unlock()

	b, ok := s.Store.Bookings.Get(id)
	if !ok {
		return models.Booking{}, domain.Ef(domain.KindNotFound, "booking %s not found", id)
	}
	if b.Status != models.StatusConfirmed {
		return models.Booking{}, domain.Ef(domain.KindInvalidData, "booking %s is %s, not %s", id, b.Status, models.StatusConfirmed)
	}

	b.Status = models.StatusInProgress
	staged := repositories.Staged{Bookings: s.Store.Bookings.StageReplace(b)}

	if v, ok := s.Store.Vehicles.Get(b.VehicleID); ok {
		v.Status = models.VehicleInService
		staged.Vehicles = s.Store.Vehicles.StageReplace(v)
	}

	if err := s.Store.Apply(staged); err != nil {
		return models.Booking{}, domain.Wrap(domain.KindFileError, "save trip start", err)
	}

	s.Audit.Append(actor.Username, "START_TRIP", b.ID, b.Route())
	utils.LogEvent(s.RequestID, "BOOKING", "start_trip", "started "+b.ID)
	return b, nil
}

// CompleteTrip finishes an In Progress booking. If actualDistance is
// positive the fare is recomputed from it and the booking's fare fields
// overwritten. Exactly one sales record is written per completion, and the
// vehicle returns to Available.
func (s BookingService) CompleteTrip(actor domain.Actor, id string, actualDistance float64) (models.Booking, error) {
	if err := requireManage(actor); err != nil {
		return models.Booking{}, err
	}
	if actualDistance < 0 {
		return models.Booking{}, domain.E(domain.KindInvalidData, "distance cannot be negative")
	}

	s.Store.Lock()
	defer s.Store.Unlock()

	b, ok := s.Store.Bookings.Get(id)
	if !ok {
		return models.Booking{}, domain.Ef(domain.KindNotFound, "booking %s not found", id)
	}
	if b.Status != models.StatusInProgress {
		return models.Booking{}, domain.Ef(domain.KindInvalidData, "booking %s is %s, not %s", id, b.Status, models.StatusInProgress)
	}

	customer, customerKnown := s.Store.Customers.Get(b.CustomerID)
	vehicle, vehicleKnown := s.Store.Vehicles.Get(b.VehicleID)

	if actualDistance > 0 && vehicleKnown {
		profile := utils.CustomerProfile{}
		if customerKnown {
			profile = customer.Profile()
		}
		fare := utils.ComputeFare(vehicle.FarePerKm, actualDistance, profile)
		b.BaseFare = fare.Base
		b.Discount = fare.Discount
		b.TotalFare = fare.Total
	}
	b.Status = models.StatusCompleted

	customerName := "Unknown"
	if customerKnown {
		customerName = customer.Name
	}
	sale := models.SalesRecord{
		ID:            s.Store.Sales.NextID(),
		VehicleID:     b.VehicleID,
		CustomerID:    b.CustomerID,
		CustomerName:  customerName,
		TotalAmount:   b.TotalFare,
		SoldAt:        clock(s.Now),
		PaymentMethod: b.PaymentMethod,
	}

	staged := repositories.Staged{
		Bookings: s.Store.Bookings.StageReplace(b),
		Sales:    s.Store.Sales.StageAppend(sale),
	}
	if vehicleKnown {
		vehicle.Status = models.VehicleAvailable
		staged.Vehicles = s.Store.Vehicles.StageReplace(vehicle)
	}

	if err := s.Store.Apply(staged); err != nil {
		return models.Booking{}, domain.Wrap(domain.KindFileError, "save trip completion", err)
	}

	s.Audit.Append(actor.Username, "COMPLETE_TRIP", b.ID, "sale "+sale.ID)
	utils.LogEvent(s.RequestID, "BOOKING", "complete_trip", "completed "+b.ID)
	return b, nil
}

// Cancel moves any non-terminal booking to Cancelled. Fare and customer
// stats accrued at confirmation are deliberately not reversed. The vehicle
// is released if the trip had already started.
func (s BookingService) Cancel(actor domain.Actor, id, reason string) (models.Booking, error) {
	if err := requireManage(actor); err != nil {
		return models.Booking{}, err
	}

	s.Store.Lock()
	defer s.Store.Unlock()

	b, ok := s.Store.Bookings.Get(id)
	if !ok {
		return models.Booking{}, domain.Ef(domain.KindNotFound, "booking %s not found", id)
	}
	if b.Status.IsTerminal() {
		return models.Booking{}, domain.Ef(domain.KindInvalidData, "booking %s is already %s", id, b.Status)
	}

	wasInProgress := b.Status == models.StatusInProgress
	b.Status = models.StatusCancelled

	staged := repositories.Staged{Bookings: s.Store.Bookings.StageReplace(b)}
	if wasInProgress {
		if v, ok := s.Store.Vehicles.Get(b.VehicleID); ok {
			v.Status = models.VehicleAvailable
			staged.Vehicles = s.Store.Vehicles.StageReplace(v)
		}
	}

	if err := s.Store.Apply(staged); err != nil {
		return models.Booking{}, domain.Wrap(domain.KindFileError, "save cancellation", err)
	}

	details := utils.TrimOrEmpty(reason)
	if details == "" {
		details = "no reason given"
	}
	s.Audit.Append(actor.Username, "CANCEL_BOOKING", b.ID, details)
	utils.LogEvent(s.RequestID, "BOOKING", "cancel", "cancelled "+b.ID)
	return b, nil
}

// Refund administratively reverses a Completed booking. The matching sales
// record stays on the ledger; the reversal shows up in reports as a refund.
func (s BookingService) Refund(actor domain.Actor, id, reason string) (models.Booking, error) {
	if err := requireDelete(actor); err != nil {
		return models.Booking{}, err
	}

	s.Store.Lock()
	defer s.Store.Unlock()

	b, ok := s.Store.Bookings.Get(id)
	if !ok {
		return models.Booking{}, domain.Ef(domain.KindNotFound, "booking %s not found", id)
	}
	if b.Status != models.StatusCompleted {
		return models.Booking{}, domain.Ef(domain.KindInvalidData, "booking %s is %s, not %s", id, b.Status, models.StatusCompleted)
	}

	b.Status = models.StatusRefunded
	if err := s.Store.Apply(repositories.Staged{Bookings: s.Store.Bookings.StageReplace(b)}); err != nil {
		return models.Booking{}, domain.Wrap(domain.KindFileError, "save refund", err)
	}

	details := utils.TrimOrEmpty(reason)
	if details == "" {
		details = "no reason given"
	}
	s.Audit.Append(actor.Username, "REFUND_BOOKING", b.ID, details)
	utils.LogEvent(s.RequestID, "BOOKING", "refund", "refunded "+b.ID)
	return b, nil
}

// Get returns one booking by id.
func (s BookingService) Get(actor domain.Actor, id string) (models.Booking, error) {
	if err := requireView(actor); err != nil {
		return models.Booking{}, err
	}
	s.Store.Lock()
	defer s.Store.Unlock()

	b, ok := s.Store.Bookings.Get(id)
	if !ok {
		return models.Booking{}, domain.Ef(domain.KindNotFound, "booking %s not found", id)
	}
	return b, nil
}

// All lists bookings in creation order.
func (s BookingService) All(actor domain.Actor) ([]models.Booking, error) {
	if err := requireView(actor); err != nil {
		return nil, err
	}
	s.Store.Lock()
	defer s.Store.Unlock()
	return s.Store.Bookings.All(), nil
}

// ByCustomer lists a customer's bookings in creation order.
func (s BookingService) ByCustomer(actor domain.Actor, customerID string) ([]models.Booking, error) {
	if err := requireView(actor); err != nil {
		return nil, err
	}
	s.Store.Lock()
	defer s.Store.Unlock()
	return s.Store.Bookings.ByCustomer(customerID), nil
}

// ByVehicle lists a vehicle's bookings in creation order.
func (s BookingService) ByVehicle(actor domain.Actor, vehicleID string) ([]models.Booking, error) {
	if err := requireView(actor); err != nil {
		return nil, err
	}
	s.Store.Lock()
	defer s.Store.Unlock()
	return s.Store.Bookings.ByVehicle(vehicleID), nil
}

// ByStatus lists bookings in the given status, creation order.
func (s BookingService) ByStatus(actor domain.Actor, status string) ([]models.Booking, error) {
	if err := requireView(actor); err != nil {
		return nil, err
	}
	parsed := models.ParseBookingStatus(status)
	if parsed == models.StatusUnknown {
		return nil, domain.Ef(domain.KindInvalidData, "unknown booking status %q", status)
	}
	s.Store.Lock()
	defer s.Store.Unlock()
	return s.Store.Bookings.ByStatus(parsed), nil
}
