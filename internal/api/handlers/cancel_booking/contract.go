package cancel_booking

import (
	"context"

	"github.com/m04kA/SMC-ClassroomService/internal/domain"
)

type BookingService interface {
	Cancel(ctx context.Context, bookingID int64, user domain.User) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
