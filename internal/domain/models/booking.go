package models

import (
	"fmt"
	"strconv"
	"time"

	"tourmate/internal/utils"
)

// Booking is a reservation of a vehicle over the half-open window
// [DepartureAt, ArrivalAt). Bookings are never physically deleted;
// cancellation is a status.
type Booking struct {
	ID              string        `json:"bookingId"`
	CustomerID      string        `json:"customerId"`
	VehicleID       string        `json:"vehicleId"`
	FromLocation    string        `json:"fromLocation"`
	ToLocation      string        `json:"toLocation"`
	DepartureAt     time.Time     `json:"departureTime"`
	ArrivalAt       time.Time     `json:"arrivalTime"`
	TripType        TripType      `json:"tripType"`
	Passengers      int           `json:"passengers"`
	BaseFare        float64       `json:"baseFare"`
	TotalFare       float64       `json:"totalFare"`
	Discount        float64       `json:"discount"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	Status          BookingStatus `json:"status"`
	SpecialRequests string        `json:"specialRequests"`
	CreatedAt       time.Time     `json:"bookingDate"`
	CreatedBy       string        `json:"bookedBy"`
}

// Route renders the canonical "from -> to" route key used by analytics.
func (b Booking) Route() string {
	return b.FromLocation + " -> " + b.ToLocation
}

// Overlaps reports whether [start, end) intersects the booking's window.
func (b Booking) Overlaps(start, end time.Time) bool {
	return !(end.Before(b.DepartureAt) || end.Equal(b.DepartureAt) ||
		start.After(b.ArrivalAt) || start.Equal(b.ArrivalAt))
}

// Row serializes the booking in persisted column order.
func (b Booking) Row() []string {
	return []string{
		b.ID,
		b.CustomerID,
		b.VehicleID,
		b.FromLocation,
		b.ToLocation,
		utils.FormatDateTime(b.DepartureAt),
		utils.FormatDateTime(b.ArrivalAt),
		string(b.TripType),
		strconv.Itoa(b.Passengers),
		utils.FormatMoney(b.BaseFare),
		utils.FormatMoney(b.TotalFare),
		utils.FormatMoney(b.Discount),
		string(b.PaymentMethod),
		string(b.Status),
		b.SpecialRequests,
		utils.FormatDateTime(b.CreatedAt),
		b.CreatedBy,
	}
}

// BookingFromRow decodes a persisted row.
func BookingFromRow(row []string) (Booking, error) {
	if len(row) < 17 {
		return Booking{}, fmt.Errorf("booking row has %d fields, want 17", len(row))
	}
	departure, err := utils.ParseDateTime(row[5])
	if err != nil {
		return Booking{}, fmt.Errorf("departureTime: %w", err)
	}
	arrival, err := utils.ParseDateTime(row[6])
	if err != nil {
		return Booking{}, fmt.Errorf("arrivalTime: %w", err)
	}
	passengers, err := strconv.Atoi(row[8])
	if err != nil {
		return Booking{}, fmt.Errorf("passengers: %w", err)
	}
	baseFare, err := utils.ParseMoney(row[9])
	if err != nil {
		return Booking{}, fmt.Errorf("baseFare: %w", err)
	}
	totalFare, err := utils.ParseMoney(row[10])
	if err != nil {
		return Booking{}, fmt.Errorf("totalFare: %w", err)
	}
	discount, err := utils.ParseMoney(row[11])
	if err != nil {
		return Booking{}, fmt.Errorf("discount: %w", err)
	}
	created, err := utils.ParseDateTime(row[15])
	if err != nil {
		return Booking{}, fmt.Errorf("bookingDate: %w", err)
	}
	return Booking{
		ID:              row[0],
		CustomerID:      row[1],
		VehicleID:       row[2],
		FromLocation:    row[3],
		ToLocation:      row[4],
		DepartureAt:     departure,
		ArrivalAt:       arrival,
		TripType:        ParseTripType(row[7]),
		Passengers:      passengers,
		BaseFare:        baseFare,
		TotalFare:       totalFare,
		Discount:        discount,
		PaymentMethod:   ParsePaymentMethod(row[12]),
		Status:          ParseBookingStatus(row[13]),
		SpecialRequests: row[14],
		CreatedAt:       created,
		CreatedBy:       row[16],
	}, nil
}
