package update_classroom_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClassroomService/internal/api/handlers"
	"github.com/m04kA/SMC-ClassroomService/internal/api/middleware"
	"github.com/m04kA/SMC-ClassroomService/internal/service/settings"
	"github.com/m04kA/SMC-ClassroomService/internal/service/settings/models"
)

const (
	msgInvalidClassroomID = "некорректный ID аудитории"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUser        = "отсутствует идентификация пользователя"
	msgClassroomNotFound  = "аудитория не найдена"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/classrooms/{classroomId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	classroomID, err := strconv.ParseInt(vars["classroomId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /classrooms/{id}/config - Invalid classroom ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClassroomID)
		return
	}

	var req models.UpdateClassroomConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /classrooms/{id}/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.logger.Warn("PUT /classrooms/{id}/config - Missing user identity")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	result, err := h.service.UpdateClassroomConfig(r.Context(), classroomID, &req, user)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrClassroomNotFound):
			h.logger.Warn("PUT /classrooms/{id}/config - Classroom not found: classroom_id=%d", classroomID)
			handlers.RespondNotFound(w, msgClassroomNotFound)

		case errors.Is(err, settings.ErrAccessDenied):
			h.logger.Warn("PUT /classrooms/{id}/config - Access denied: classroom_id=%d, user_id=%d",
				classroomID, user.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("PUT /classrooms/{id}/config - Invalid input: classroom_id=%d: %v", classroomID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /classrooms/{id}/config - Failed to update config: classroom_id=%d, error=%v",
				classroomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /classrooms/{id}/config - Config updated successfully: classroom_id=%d, admin_id=%d",
		classroomID, user.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
