package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClassroomService/internal/domain"
	"github.com/m04kA/SMC-ClassroomService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClassroomID <= 0 {
		return fmt.Errorf("%w: classroomID must be positive", ErrInvalidInput)
	}

	if req.User.ID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if !req.User.Role.IsValid() {
		return fmt.Errorf("%w: unknown user role %q", ErrInvalidInput, req.User.Role)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if req.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом
func validateDate(bookingDate, now time.Time) error {
	dateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, bookingDate.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}

	return nil
}

// validateTimeRange проверяет интервал бронирования относительно рабочих часов.
// Интервал полуоткрытый [start, end), поэтому окончание ровно в конец
// рабочего дня допустимо. Выход за рабочие часы проверяется раньше
// корректности самого интервала
func validateTimeRange(start, end types.TimeString, settings *domain.Settings) error {
	if !settings.ContainsInterval(start, end) {
		return fmt.Errorf("%w: operating hours are %s - %s",
			ErrOutsideOperatingHours, settings.OperatingStart, settings.OperatingEnd)
	}

	if !start.IsBefore(end) {
		return ErrInvalidTimeRange
	}

	return nil
}

// resolveStatus определяет статус нового бронирования.
// Администраторы и аудитории без модерации получают подтверждение сразу.
func resolveStatus(classroom *domain.Classroom, user domain.User) domain.BookingStatus {
	if user.Role.IsAtLeastAdmin() || !classroom.RequiresApproval {
		return domain.StatusConfirmed
	}
	return domain.StatusPending
}
