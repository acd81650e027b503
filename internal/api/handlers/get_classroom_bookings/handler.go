package get_classroom_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClassroomService/internal/api/handlers"
	"github.com/m04kA/SMC-ClassroomService/internal/api/middleware"
	"github.com/m04kA/SMC-ClassroomService/internal/service/bookings"
)

const (
	msgInvalidClassroomID = "некорректный ID аудитории"
	msgInvalidQuery       = "некорректные параметры фильтрации"
	msgMissingUser        = "отсутствует идентификация пользователя"
	msgClassroomNotFound  = "аудитория не найдена"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/classrooms/{classroomId}/bookings?startDate=&endDate=&status=&includeCancelled=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	classroomID, err := strconv.ParseInt(vars["classroomId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /classrooms/{id}/bookings - Invalid classroom ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClassroomID)
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /classrooms/{id}/bookings - Missing user identity")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	req, err := ParseQuery(classroomID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /classrooms/{id}/bookings - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.GetClassroomBookings(r.Context(), req, user)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrClassroomNotFound):
			h.logger.Warn("GET /classrooms/{id}/bookings - Classroom not found: classroom_id=%d", classroomID)
			handlers.RespondNotFound(w, msgClassroomNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /classrooms/{id}/bookings - Access denied: classroom_id=%d, user_id=%d",
				classroomID, user.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /classrooms/{id}/bookings - Invalid filter: classroom_id=%d", classroomID)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /classrooms/{id}/bookings - Failed to get bookings: classroom_id=%d, error=%v",
				classroomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /classrooms/{id}/bookings - Retrieved %d bookings for classroom_id=%d",
		len(result.Bookings), classroomID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
