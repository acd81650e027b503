package settings

import (
	"context"

	"github.com/m04kA/SMC-ClassroomService/internal/domain"
)

// SettingsRepository интерфейс репозитория глобальных настроек
type SettingsRepository interface {
	GetGlobal(ctx context.Context) (*domain.Settings, error)
	Update(ctx context.Context, settings *domain.Settings, updatedBy int64) (*domain.Settings, error)
}

// ClassroomRepository интерфейс репозитория аудиторий
type ClassroomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Classroom, error)
	GetAll(ctx context.Context) ([]*domain.Classroom, error)
	UpdateConfig(ctx context.Context, id int64, classroom *domain.Classroom) (*domain.Classroom, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
