package models

// Enumerations serialize to their human-readable label and must round-trip
// exactly through the Parse* functions; anything unrecognized maps to the
// Unknown member instead of failing.

// PaymentMethod is how a confirmed booking is paid.
type PaymentMethod string

const (
	PaymentCash          PaymentMethod = "Cash"
	PaymentCreditCard    PaymentMethod = "Credit Card"
	PaymentDebitCard     PaymentMethod = "Debit Card"
	PaymentDigitalWallet PaymentMethod = "Digital Wallet"
	PaymentBankTransfer  PaymentMethod = "Bank Transfer"
	PaymentUnknown       PaymentMethod = "Unknown"
)

func ParsePaymentMethod(s string) PaymentMethod {
	switch PaymentMethod(s) {
	case PaymentCash, PaymentCreditCard, PaymentDebitCard, PaymentDigitalWallet, PaymentBankTransfer:
		return PaymentMethod(s)
	default:
		return PaymentUnknown
	}
}

// BookingStatus is the booking state machine value.
type BookingStatus string

const (
	StatusPending    BookingStatus = "Pending"
	StatusConfirmed  BookingStatus = "Confirmed"
	StatusInProgress BookingStatus = "In Progress"
	StatusCompleted  BookingStatus = "Completed"
	StatusCancelled  BookingStatus = "Cancelled"
	StatusRefunded   BookingStatus = "Refunded"
	StatusUnknown    BookingStatus = "Unknown"
)

func ParseBookingStatus(s string) BookingStatus {
	switch BookingStatus(s) {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled, StatusRefunded:
		return BookingStatus(s)
	default:
		return StatusUnknown
	}
}

// IsTerminal reports whether no further transition is permitted.
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusRefunded
}

// TripType describes the shape of the booked trip.
type TripType string

const (
	TripOneWay    TripType = "One Way"
	TripRoundTrip TripType = "Round Trip"
	TripMultiStop TripType = "Multi Stop"
	TripCharter   TripType = "Charter"
	TripUnknown   TripType = "Unknown"
)

func ParseTripType(s string) TripType {
	switch TripType(s) {
	case TripOneWay, TripRoundTrip, TripMultiStop, TripCharter:
		return TripType(s)
	default:
		return TripUnknown
	}
}

// VehicleStatus mirrors the vehicle collaborator's status values.
type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "Available"
	VehicleInService   VehicleStatus = "In Service"
	VehicleMaintenance VehicleStatus = "Maintenance"
	VehicleUnknown     VehicleStatus = "Unknown"
)

func ParseVehicleStatus(s string) VehicleStatus {
	switch VehicleStatus(s) {
	case VehicleAvailable, VehicleInService, VehicleMaintenance:
		return VehicleStatus(s)
	default:
		return VehicleUnknown
	}
}
