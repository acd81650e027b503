package get_classrooms

import (
	"net/http"

	"github.com/m04kA/SMC-ClassroomService/internal/api/handlers"
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

// Handle GET /api/v1/classrooms
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListClassrooms(r.Context())
	if err != nil {
		h.logger.Error("GET /classrooms - Failed to list classrooms: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /classrooms - Retrieved %d classrooms", len(result.Classrooms))
	handlers.RespondJSON(w, http.StatusOK, result)
}
