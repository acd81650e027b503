package domain

import "github.com/m04kA/SMC-ClassroomService/pkg/types"

// Default operating policy values
const (
	DefaultOperatingStart      types.TimeString = "08:00"
	DefaultOperatingEnd        types.TimeString = "18:00"
	DefaultMaxTimePerDay                        = 60 // minutes per user per classroom per day
	DefaultSlotDurationMinutes                  = 15
)

// CapUnlimited значение лимита "без ограничений"
const CapUnlimited = -1

// CapUseDefault значение лимита аудитории "использовать глобальный default"
const CapUseDefault = 0

// ValidSlotDurations допустимые шаги сетки слотов
var ValidSlotDurations = []int{5, 10, 15, 30, 60}

// IsValidSlotDuration returns true if minutes is an allowed grid step
func IsValidSlotDuration(minutes int) bool {
	for _, d := range ValidSlotDurations {
		if d == minutes {
			return true
		}
	}
	return false
}

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
