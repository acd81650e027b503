package domain

import (
	"time"

	"github.com/m04kA/SMC-ClassroomService/pkg/types"
)

// Settings represents the global operating policy applied to all classrooms
type Settings struct {
	OperatingStart types.TimeString // начало рабочего окна, HH:MM
	OperatingEnd   types.TimeString // конец рабочего окна, HH:MM

	// DefaultMaxTimePerDay дневной лимит в минутах, если аудитория
	// не задаёт свой: -1 = без лимита, >0 = лимит
	DefaultMaxTimePerDay int

	// SlotDurationMinutes шаг сетки слотов (5/10/15/30/60)
	SlotDurationMinutes int

	UpdatedAt time.Time
	UpdatedBy int64
}

// DefaultSettings возвращает политику по умолчанию
// Используется, пока глобальные настройки не сохранены
func DefaultSettings() *Settings {
	return &Settings{
		OperatingStart:       DefaultOperatingStart,
		OperatingEnd:         DefaultOperatingEnd,
		DefaultMaxTimePerDay: DefaultMaxTimePerDay,
		SlotDurationMinutes:  DefaultSlotDurationMinutes,
	}
}

// ContainsInterval reports whether [start, end) lies fully inside the
// operating-hours window. end == OperatingEnd is allowed: the terminal
// boundary is a valid end time even though it is never a slot start.
func (s *Settings) ContainsInterval(start, end types.TimeString) bool {
	return !start.IsBefore(s.OperatingStart) && !end.IsAfter(s.OperatingEnd)
}
