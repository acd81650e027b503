package modify_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClassroomService/internal/domain"
	"github.com/m04kA/SMC-ClassroomService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.User.ID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if !req.User.Role.IsValid() {
		return fmt.Errorf("%w: unknown user role %q", ErrInvalidInput, req.User.Role)
	}

	if req.Date == nil && req.StartTime == nil && req.EndTime == nil {
		return fmt.Errorf("%w: nothing to modify", ErrInvalidInput)
	}

	if req.Date != nil && req.Date.IsZero() {
		return fmt.Errorf("%w: date must not be zero", ErrInvalidInput)
	}

	if req.StartTime != nil {
		if err := req.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
		}
	}

	if req.EndTime != nil {
		if err := req.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
		}
	}

	return nil
}

// mergeSchedule собирает итоговое расписание из запроса и текущего бронирования
func mergeSchedule(req *Request, booking *domain.Booking) (time.Time, types.TimeString, types.TimeString) {
	date := booking.BookingDate
	if req.Date != nil {
		date = *req.Date
	}

	start := booking.StartTime
	if req.StartTime != nil {
		start = *req.StartTime
	}

	end := booking.EndTime
	if req.EndTime != nil {
		end = *req.EndTime
	}

	return date, start, end
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

// validateTimeRange проверяет интервал относительно рабочих часов.
// Интервал полуоткрытый [start, end), окончание ровно в конец рабочего
// дня допустимо. Выход за рабочие часы проверяется раньше корректности
// самого интервала
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

// bookedMinutesExcluding суммирует занятые минуты активных бронирований,
// пропуская переносимое бронирование
func bookedMinutesExcluding(bookings []*domain.Booking, excludeID int64) int {
	total := 0
	for _, b := range bookings {
		if b.ID == excludeID || !b.IsActive() {
			continue
		}
		total += b.DurationMinutes()
	}
	return total
}
