package get_pending_bookings

import (
	"context"

	"github.com/m04kA/SMC-ClassroomService/internal/domain"
	"github.com/m04kA/SMC-ClassroomService/internal/service/bookings/models"
)

type BookingService interface {
	GetPending(ctx context.Context, classroomID *int64, user domain.User) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
