package get_classroom_bookings

import (
	"net/url"
	"time"

	"github.com/m04kA/SMC-ClassroomService/internal/domain"
	"github.com/m04kA/SMC-ClassroomService/internal/service/bookings/models"
)

// ParseQuery собирает фильтр бронирований аудитории из query-параметров
func ParseQuery(classroomID int64, query url.Values) (*models.GetClassroomBookingsRequest, error) {
	req := &models.GetClassroomBookingsRequest{ClassroomID: classroomID}

	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	req.IncludeCancelled = query.Get("includeCancelled") == "true"

	return req, nil
}
