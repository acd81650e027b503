package get_classroom_config

import (
	"context"

	"github.com/m04kA/SMC-ClassroomService/internal/service/settings/models"
)

type SettingsService interface {
	GetClassroomConfig(ctx context.Context, classroomID int64) (*models.ClassroomResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
