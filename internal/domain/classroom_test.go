package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassroom_EffectiveDailyCap(t *testing.T) {
	tests := []struct {
		name          string
		maxTimePerDay int
		defaultCap    int
		want          int
	}{
		{name: "explicit override wins", maxTimePerDay: 120, defaultCap: 60, want: 120},
		{name: "unlimited override", maxTimePerDay: CapUnlimited, defaultCap: 60, want: CapUnlimited},
		{name: "zero falls back to default", maxTimePerDay: CapUseDefault, defaultCap: 60, want: 60},
		{name: "zero with unlimited default", maxTimePerDay: CapUseDefault, defaultCap: CapUnlimited, want: CapUnlimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Classroom{MaxTimePerDay: tt.maxTimePerDay}
			assert.Equal(t, tt.want, c.EffectiveDailyCap(tt.defaultCap))
		})
	}
}

func TestClassroom_IsAdminAuthorized(t *testing.T) {
	student := &User{ID: 1, Role: RoleStudent}
	admin := &User{ID: 2, Role: RoleAdmin}
	otherAdmin := &User{ID: 3, Role: RoleAdmin}
	superAdmin := &User{ID: 4, Role: RoleSuperAdmin}

	t.Run("without assigned admins any admin manages", func(t *testing.T) {
		c := &Classroom{}
		assert.False(t, c.IsAdminAuthorized(student))
		assert.True(t, c.IsAdminAuthorized(admin))
		assert.True(t, c.IsAdminAuthorized(superAdmin))
	})

	t.Run("assigned admins restrict moderation", func(t *testing.T) {
		c := &Classroom{AssignedAdmins: []int64{2}}
		assert.True(t, c.IsAdminAuthorized(admin))
		assert.False(t, c.IsAdminAuthorized(otherAdmin))
		// Супер-администратор управляет любой аудиторией
		assert.True(t, c.IsAdminAuthorized(superAdmin))
	})
}

func TestSettings_ContainsInterval(t *testing.T) {
	s := &Settings{OperatingStart: "08:00", OperatingEnd: "18:00"}

	assert.True(t, s.ContainsInterval("08:00", "09:00"))
	assert.True(t, s.ContainsInterval("17:00", "18:00"))
	assert.True(t, s.ContainsInterval("08:00", "18:00"))

	assert.False(t, s.ContainsInterval("07:30", "09:00"))
	assert.False(t, s.ContainsInterval("17:30", "18:30"))
}
