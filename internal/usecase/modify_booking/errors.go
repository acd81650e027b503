package modify_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("modify_booking: booking not found")

	// ErrPermissionDenied возвращается, когда пользователь не владелец и не администратор
	ErrPermissionDenied = errors.New("modify_booking: user is not allowed to modify this booking")

	// ErrAlreadyCancelled возвращается при попытке изменить отмененное бронирование
	ErrAlreadyCancelled = errors.New("modify_booking: booking is already cancelled")

	// ErrClassroomNotFound возвращается, когда аудитория бронирования не найдена
	ErrClassroomNotFound = errors.New("modify_booking: classroom not found")

	// ErrClassroomInactive возвращается, когда аудитория отключена для бронирования
	ErrClassroomInactive = errors.New("modify_booking: classroom is inactive")

	// ErrInvalidTimeRange возвращается, когда время начала не раньше времени окончания
	ErrInvalidTimeRange = errors.New("modify_booking: start time must be before end time")

	// ErrOutsideOperatingHours возвращается, когда интервал выходит за рабочие часы
	ErrOutsideOperatingHours = errors.New("modify_booking: requested time is outside operating hours")

	// ErrTimeConflict возвращается, когда интервал пересекается с другим активным бронированием
	ErrTimeConflict = errors.New("modify_booking: time slot conflicts with an existing booking")

	// ErrDailyCapExceeded возвращается, когда превышен дневной лимит пользователя в аудитории
	ErrDailyCapExceeded = errors.New("modify_booking: daily booking limit exceeded")

	// ErrInvalidDate возвращается при попытке переноса на прошедшую дату
	ErrInvalidDate = errors.New("modify_booking: invalid booking date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("modify_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("modify_booking: internal error")
)
