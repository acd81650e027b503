package get_classroom_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClassroomService/internal/api/handlers"
	"github.com/m04kA/SMC-ClassroomService/internal/service/settings"
)

const (
	msgInvalidClassroomID = "некорректный ID аудитории"
	msgClassroomNotFound  = "аудитория не найдена"
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

// Handle GET /api/v1/classrooms/{classroomId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	classroomID, err := strconv.ParseInt(vars["classroomId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /classrooms/{id}/config - Invalid classroom ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClassroomID)
		return
	}

	config, err := h.service.GetClassroomConfig(r.Context(), classroomID)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrClassroomNotFound):
			h.logger.Warn("GET /classrooms/{id}/config - Classroom not found: classroom_id=%d", classroomID)
			handlers.RespondNotFound(w, msgClassroomNotFound)

		default:
			h.logger.Error("GET /classrooms/{id}/config - Failed to get config: classroom_id=%d, error=%v",
				classroomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /classrooms/{id}/config - Config retrieved successfully: classroom_id=%d", classroomID)
	handlers.RespondJSON(w, http.StatusOK, config)
}
