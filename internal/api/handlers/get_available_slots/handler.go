package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClassroomService/internal/api/handlers"
	"github.com/m04kA/SMC-ClassroomService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ClassroomService/internal/usecase/get_available_slots"
)

const (
	msgInvalidClassroomID = "некорректный ID аудитории"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDate        = "отсутствует обязательный параметр date"
	msgClassroomNotFound  = "аудитория не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/classrooms/{classroomId}/available-slots?date=2025-10-15
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	classroomID, err := strconv.ParseInt(vars["classroomId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /classrooms/{id}/available-slots - Invalid classroom ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClassroomID)
		return
	}

	rawDate := r.URL.Query().Get("date")
	if rawDate == "" {
		h.logger.Warn("GET /classrooms/{id}/available-slots - Missing date parameter")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		h.logger.Warn("GET /classrooms/{id}/available-slots - Invalid date %q: %v", rawDate, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		ClassroomID: classroomID,
		Date:        date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrClassroomNotFound):
			h.logger.Warn("GET /classrooms/{id}/available-slots - Classroom not found: classroom_id=%d", classroomID)
			handlers.RespondNotFound(w, msgClassroomNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /classrooms/{id}/available-slots - Invalid input: classroom_id=%d: %v", classroomID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /classrooms/{id}/available-slots - Failed to get slots: classroom_id=%d, error=%v",
				classroomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /classrooms/{id}/available-slots - Generated %d slots for classroom_id=%d, date=%s",
		len(response.Slots), classroomID, rawDate)
	handlers.RespondJSON(w, http.StatusOK, response)
}
