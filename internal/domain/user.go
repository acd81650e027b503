package domain

// UserRole represents the role of a requester
type UserRole string

const (
	RoleStudent    UserRole = "student"
	RoleAdmin      UserRole = "admin"
	RoleSuperAdmin UserRole = "super_admin"
)

// IsValid returns true for a known role value
func (r UserRole) IsValid() bool {
	switch r {
	case RoleStudent, RoleAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// IsAtLeastAdmin returns true for admin and super_admin.
// Admins get auto-confirmed bookings and may act on other users' bookings.
func (r UserRole) IsAtLeastAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// User represents the requester acting on a booking.
// Identity is resolved by the upstream gateway; the service only trusts
// what it is told.
type User struct {
	ID          int64
	DisplayName string
	Email       string
	Role        UserRole
}

// IsAdmin returns true if the user may act on bookings they do not own
func (u *User) IsAdmin() bool {
	return u.Role.IsAtLeastAdmin()
}

// IsSuperAdmin returns true for the super_admin role
func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}
