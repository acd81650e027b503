package get_classrooms

import (
	"context"

	"github.com/m04kA/SMC-ClassroomService/internal/service/settings/models"
)

type SettingsService interface {
	ListClassrooms(ctx context.Context) (*models.ClassroomListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
