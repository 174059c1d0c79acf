// Package auth covers operator roles, password hashing, and session tokens.
package auth

// Operator roles, in descending order of capability.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
	RoleViewer  = "viewer"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleStaff, RoleViewer:
		return true
	}
	return false
}

// CanView reports whether the role may read records. Every known role can.
func CanView(role string) bool {
	return ValidRole(role)
}

// CanManage reports whether the role may create and modify records.
func CanManage(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleStaff:
		return true
	}
	return false
}

// CanDelete reports whether the role may delete records or reverse
// settled transactions.
func CanDelete(role string) bool {
	return role == RoleAdmin || role == RoleManager
}

// CanViewReports reports whether the role may read financial reports.
func CanViewReports(role string) bool {
	return role == RoleAdmin || role == RoleManager
}
