package services

import (
	"time"

	"tourmate/internal/auth"
	"tourmate/internal/domain"
	"tourmate/internal/utils"
)

// Permission gates shared by every service. All return a domain error with
// AUTHENTICATION_REQUIRED for anonymous callers and PERMISSION_DENIED for
// callers whose role lacks the capability.

func requireView(actor domain.Actor) error {
	if !actor.IsLoggedIn() {
		return domain.E(domain.KindAuthenticationRequired, "login required")
	}
	if !auth.CanView(actor.Role) {
		return domain.Ef(domain.KindPermissionDenied, "role %q may not view records", actor.Role)
	}
	return nil
}

func requireManage(actor domain.Actor) error {
	if !actor.IsLoggedIn() {
		return domain.E(domain.KindAuthenticationRequired, "login required")
	}
	if !auth.CanManage(actor.Role) {
		return domain.Ef(domain.KindPermissionDenied, "role %q may not modify records", actor.Role)
	}
	return nil
}

func requireDelete(actor domain.Actor) error {
	if !actor.IsLoggedIn() {
		return domain.E(domain.KindAuthenticationRequired, "login required")
	}
	if !auth.CanDelete(actor.Role) {
		return domain.Ef(domain.KindPermissionDenied, "role %q may not delete records", actor.Role)
	}
	return nil
}

func requireReports(actor domain.Actor) error {
	if !actor.IsLoggedIn() {
		return domain.E(domain.KindAuthenticationRequired, "login required")
	}
	if !auth.CanViewReports(actor.Role) {
		return domain.Ef(domain.KindPermissionDenied, "role %q may not view reports", actor.Role)
	}
	return nil
}

// clock resolves the injected time source, defaulting to UTC wall clock.
func clock(now func() time.Time) time.Time {
	if now != nil {
		return now()
	}
	return utils.NowUTC()
}
