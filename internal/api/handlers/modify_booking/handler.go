package modify_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClassroomService/internal/api/handlers"
	"github.com/m04kA/SMC-ClassroomService/internal/api/middleware"
	modifyBooking "github.com/m04kA/SMC-ClassroomService/internal/usecase/modify_booking"
)

const (
	msgInvalidBookingID      = "некорректный ID бронирования"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDateTime       = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUser           = "отсутствует идентификация пользователя"
	msgNotFound              = "бронирование не найдено"
	msgClassroomNotFound     = "аудитория не найдена"
	msgForbidden             = "доступ запрещен"
	msgAlreadyCancelled      = "бронирование уже отменено"
	msgClassroomInactive     = "аудитория недоступна для бронирования"
	msgTimeConflict          = "выбранное время пересекается с существующим бронированием"
	msgDailyCapExceeded      = "превышен дневной лимит бронирования"
	msgOutsideOperatingHours = "выбранное время выходит за рабочие часы"
	msgInvalidTimeRange      = "время начала должно быть раньше времени окончания"
	msgInvalidDate           = "некорректная дата бронирования"
)

type Handler struct {
	useCase ModifyBookingUseCase
	logger  Logger
}

func NewHandler(useCase ModifyBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем bookingId из URL
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req ModifyBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Получаем пользователя из контекста (через middleware Auth)
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id} - Missing user identity")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID, user)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, modifyBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, modifyBooking.ErrClassroomNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Classroom not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgClassroomNotFound)

		case errors.Is(err, modifyBooking.ErrPermissionDenied):
			h.logger.Warn("PATCH /bookings/{id} - Access denied: booking_id=%d, user_id=%d", bookingID, user.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, modifyBooking.ErrAlreadyCancelled):
			h.logger.Warn("PATCH /bookings/{id} - Already cancelled: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgAlreadyCancelled)

		case errors.Is(err, modifyBooking.ErrClassroomInactive):
			h.logger.Warn("PATCH /bookings/{id} - Classroom inactive: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgClassroomInactive)

		case errors.Is(err, modifyBooking.ErrTimeConflict):
			h.logger.Warn("PATCH /bookings/{id} - Time conflict: booking_id=%d, user_id=%d", bookingID, user.ID)
			handlers.RespondConflict(w, msgTimeConflict)

		case errors.Is(err, modifyBooking.ErrDailyCapExceeded):
			h.logger.Warn("PATCH /bookings/{id} - Daily cap exceeded: booking_id=%d, user_id=%d", bookingID, user.ID)
			handlers.RespondConflict(w, msgDailyCapExceeded)

		case errors.Is(err, modifyBooking.ErrOutsideOperatingHours):
			h.logger.Warn("PATCH /bookings/{id} - Outside operating hours: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgOutsideOperatingHours)

		case errors.Is(err, modifyBooking.ErrInvalidTimeRange):
			h.logger.Warn("PATCH /bookings/{id} - Invalid time range: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, modifyBooking.ErrInvalidDate):
			h.logger.Warn("PATCH /bookings/{id} - Invalid booking date: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, modifyBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id} - Invalid input: booking_id=%d: %v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /bookings/{id} - Failed to modify booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("PATCH /bookings/{id} - Booking rescheduled successfully: booking_id=%d, user_id=%d",
		result.ID, user.ID)
	handlers.RespondJSON(w, http.StatusOK, response)
}
