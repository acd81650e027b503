package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClassroomService/internal/api/handlers"
	"github.com/m04kA/SMC-ClassroomService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-ClassroomService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDateTime       = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUser           = "отсутствует идентификация пользователя"
	msgClassroomNotFound     = "аудитория не найдена"
	msgClassroomInactive     = "аудитория недоступна для бронирования"
	msgForbidden             = "аудитория доступна только администраторам"
	msgTimeConflict          = "выбранное время пересекается с существующим бронированием"
	msgDailyCapExceeded      = "превышен дневной лимит бронирования"
	msgOutsideOperatingHours = "выбранное время выходит за рабочие часы"
	msgInvalidTimeRange      = "время начала должно быть раньше времени окончания"
	msgInvalidDate           = "некорректная дата бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Получаем пользователя из контекста (через middleware Auth)
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user identity")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(user)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrTimeConflict):
			h.logger.Warn("POST /bookings - Time conflict: user_id=%d, classroom_id=%d", user.ID, req.ClassroomID)
			handlers.RespondConflict(w, msgTimeConflict)

		case errors.Is(err, createBooking.ErrDailyCapExceeded):
			h.logger.Warn("POST /bookings - Daily cap exceeded: user_id=%d, classroom_id=%d", user.ID, req.ClassroomID)
			handlers.RespondConflict(w, msgDailyCapExceeded)

		case errors.Is(err, createBooking.ErrClassroomNotFound):
			h.logger.Warn("POST /bookings - Classroom not found: classroom_id=%d", req.ClassroomID)
			handlers.RespondNotFound(w, msgClassroomNotFound)

		case errors.Is(err, createBooking.ErrClassroomInactive):
			h.logger.Warn("POST /bookings - Classroom inactive: classroom_id=%d", req.ClassroomID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgClassroomInactive)

		case errors.Is(err, createBooking.ErrPermissionDenied):
			h.logger.Warn("POST /bookings - Permission denied: user_id=%d, classroom_id=%d", user.ID, req.ClassroomID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createBooking.ErrOutsideOperatingHours):
			h.logger.Warn("POST /bookings - Outside operating hours: user_id=%d, classroom_id=%d", user.ID, req.ClassroomID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgOutsideOperatingHours)

		case errors.Is(err, createBooking.ErrInvalidTimeRange):
			h.logger.Warn("POST /bookings - Invalid time range: user_id=%d, classroom_id=%d", user.ID, req.ClassroomID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: user_id=%d, classroom_id=%d", user.ID, req.ClassroomID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, classroom_id=%d: %v", user.ID, req.ClassroomID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, classroom_id=%d, error=%v",
				user.ID, req.ClassroomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, classroom_id=%d, status=%s",
		result.ID, user.ID, req.ClassroomID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
