package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClassroomService/internal/domain"
	"github.com/m04kA/SMC-ClassroomService/internal/integrations/notify"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByClassroomWithFilter(ctx context.Context, filter domain.ClassroomBookingsFilter) ([]*domain.Booking, error)
	GetByUserClassroomAndDate(ctx context.Context, userID, classroomID int64, date time.Time) ([]*domain.Booking, error)
}

// ClassroomRepository интерфейс репозитория аудиторий
type ClassroomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Classroom, error)
}

// SettingsRepository интерфейс репозитория глобальных настроек
type SettingsRepository interface {
	GetGlobal(ctx context.Context) (*domain.Settings, error)
}

// EventPublisher интерфейс публикации событий бронирования
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, event *notify.BookingEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
