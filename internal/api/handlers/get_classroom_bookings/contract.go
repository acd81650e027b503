package get_classroom_bookings

import (
	"context"

	"github.com/m04kA/SMC-ClassroomService/internal/domain"
	"github.com/m04kA/SMC-ClassroomService/internal/service/bookings/models"
)

type BookingService interface {
	GetClassroomBookings(ctx context.Context, req *models.GetClassroomBookingsRequest, user domain.User) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
