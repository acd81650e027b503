package get_available_slots

import (
	"context"

	"github.com/m04kA/SMC-ClassroomService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByClassroomWithFilter(ctx context.Context, filter domain.ClassroomBookingsFilter) ([]*domain.Booking, error)
}

// ClassroomRepository интерфейс репозитория аудиторий
type ClassroomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Classroom, error)
}

// SettingsRepository интерфейс репозитория глобальных настроек
type SettingsRepository interface {
	GetGlobal(ctx context.Context) (*domain.Settings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
