package get_pending_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ClassroomService/internal/api/handlers"
	"github.com/m04kA/SMC-ClassroomService/internal/api/middleware"
	"github.com/m04kA/SMC-ClassroomService/internal/service/bookings"
)

const (
	msgInvalidClassroomID = "некорректный ID аудитории"
	msgMissingUser        = "отсутствует идентификация пользователя"
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

// Handle GET /api/v1/bookings/pending?classroomId=5
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/pending - Missing user identity")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	// Опциональный фильтр по аудитории
	var classroomID *int64
	if raw := r.URL.Query().Get("classroomId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			h.logger.Warn("GET /bookings/pending - Invalid classroom ID: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidClassroomID)
			return
		}
		classroomID = &id
	}

	result, err := h.service.GetPending(r.Context(), classroomID, user)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings/pending - Access denied: user_id=%d", user.ID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /bookings/pending - Failed to get pending bookings: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/pending - Retrieved %d pending bookings for admin_id=%d",
		len(result.Bookings), user.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
