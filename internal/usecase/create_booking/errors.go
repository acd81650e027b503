package create_booking

import "errors"

var (
	// ErrClassroomNotFound возвращается, когда аудитория не найдена
	ErrClassroomNotFound = errors.New("create_booking: classroom not found")

	// ErrClassroomInactive возвращается, когда аудитория отключена для бронирования
	ErrClassroomInactive = errors.New("create_booking: classroom is inactive")

	// ErrPermissionDenied возвращается, когда аудитория доступна только администраторам
	ErrPermissionDenied = errors.New("create_booking: classroom is restricted to administrators")

	// ErrInvalidTimeRange возвращается, когда время начала не раньше времени окончания
	ErrInvalidTimeRange = errors.New("create_booking: start time must be before end time")

	// ErrOutsideOperatingHours возвращается, когда интервал выходит за рабочие часы
	ErrOutsideOperatingHours = errors.New("create_booking: requested time is outside operating hours")

	// ErrTimeConflict возвращается, когда интервал пересекается с активным бронированием
	ErrTimeConflict = errors.New("create_booking: time slot conflicts with an existing booking")

	// ErrDailyCapExceeded возвращается, когда превышен дневной лимит пользователя в аудитории
	ErrDailyCapExceeded = errors.New("create_booking: daily booking limit exceeded")

	// ErrInvalidDate возвращается при попытке бронирования на прошедшую дату
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
