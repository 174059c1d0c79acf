package domain

import (
	"errors"
	"fmt"
)

// Kind classifies an operation failure. Every service call returns at most one
// Error value; there is no shared "last error" state.
type Kind string

const (
	KindNone                   Kind = "NONE"
	KindInvalidData            Kind = "INVALID_DATA"
	KindDuplicateID            Kind = "DUPLICATE_ID"
	KindNotFound               Kind = "NOT_FOUND"
	KindPermissionDenied       Kind = "PERMISSION_DENIED"
	KindFileError              Kind = "FILE_ERROR"
	KindAuthenticationRequired Kind = "AUTHENTICATION_REQUIRED"
	KindVehicleUnavailable     Kind = "VEHICLE_UNAVAILABLE"
	KindPaymentFailed          Kind = "PAYMENT_FAILED"
	KindBookingConflict        Kind = "BOOKING_CONFLICT"
)

// Error carries the failure kind together with a human message.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	case e.Msg != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return string(e.Kind)
	}
}

func (e Error) Unwrap() error { return e.Err }

// E builds an Error from a kind and message.
func E(kind Kind, msg string) Error {
	return Error{Kind: kind, Msg: msg}
}

// Ef builds an Error with a formatted message.
func Ef(kind Kind, format string, args ...any) Error {
	return Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, msg string, err error) Error {
	return Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf extracts the failure kind, or KindNone for nil errors.
// Errors without a kind are treated as internal file/storage failures.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var de Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindFileError
}

func IsInvalidData(err error) bool { return KindOf(err) == KindInvalidData }

func IsDuplicateID(err error) bool { return KindOf(err) == KindDuplicateID }

func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

func IsPermissionDenied(err error) bool { return KindOf(err) == KindPermissionDenied }

func IsFileError(err error) bool { return KindOf(err) == KindFileError }

func IsAuthenticationRequired(err error) bool { return KindOf(err) == KindAuthenticationRequired }

func IsVehicleUnavailable(err error) bool { return KindOf(err) == KindVehicleUnavailable }
