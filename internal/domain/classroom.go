package domain

import "time"

// ClassroomPermission defines who may book a classroom
type ClassroomPermission string

const (
	// PermissionStudent — бронировать могут все роли
	PermissionStudent ClassroomPermission = "student"
	// PermissionAdminOnly — бронировать могут только администраторы
	PermissionAdminOnly ClassroomPermission = "admin_only"
)

// IsValid returns true for a known permission value
func (p ClassroomPermission) IsValid() bool {
	return p == PermissionStudent || p == PermissionAdminOnly
}

// Classroom represents a bookable room and its booking policy.
// The booking engine only reads this configuration, it never mutates it.
type Classroom struct {
	ID          int64
	Name        string
	Description *string

	Active           bool
	Permission       ClassroomPermission
	RequiresApproval bool

	// MaxTimePerDay дневной лимит в минутах на пользователя:
	// 0 = используется глобальный default, -1 = без лимита, >0 = явный лимит
	MaxTimePerDay int

	// AssignedAdmins администраторы, закреплённые за аудиторией
	// Пустой список означает, что аудиторией управляет любой администратор
	AssignedAdmins []int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AllowsStudentBooking returns true if students may book this classroom
func (c *Classroom) AllowsStudentBooking() bool {
	return c.Permission == PermissionStudent
}

// EffectiveDailyCap resolves the per-day minute limit actually applied:
// the classroom override when set, otherwise the global default.
// A result <= 0 means unlimited.
func (c *Classroom) EffectiveDailyCap(defaultCap int) int {
	switch {
	case c.MaxTimePerDay > 0:
		return c.MaxTimePerDay
	case c.MaxTimePerDay == CapUnlimited:
		return CapUnlimited
	default:
		return defaultCap
	}
}

// IsAdminAuthorized reports whether the user may administer this classroom.
// Super admins manage everything; assigned admins manage their classrooms;
// a classroom without assigned admins is managed by any admin.
func (c *Classroom) IsAdminAuthorized(u *User) bool {
	if !u.IsAdmin() {
		return false
	}
	if u.IsSuperAdmin() || len(c.AssignedAdmins) == 0 {
		return true
	}
	for _, id := range c.AssignedAdmins {
		if id == u.ID {
			return true
		}
	}
	return false
}
