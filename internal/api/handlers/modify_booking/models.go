package modify_booking

import (
	"time"

	"github.com/m04kA/SMC-ClassroomService/internal/domain"
	modifyBooking "github.com/m04kA/SMC-ClassroomService/internal/usecase/modify_booking"
	"github.com/m04kA/SMC-ClassroomService/pkg/types"
)

// ModifyBookingRequest HTTP request model
// Незаполненные поля сохраняют текущее расписание
type ModifyBookingRequest struct {
	BookingDate *string `json:"bookingDate,omitempty"` // "2025-10-15"
	StartTime   *string `json:"startTime,omitempty"`   // "10:00"
	EndTime     *string `json:"endTime,omitempty"`     // "11:30"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          int64  `json:"id"`
	ClassroomID int64  `json:"classroomId"`
	UserID      int64  `json:"userId"`
	UserName    string `json:"userName"`
	UserEmail   string `json:"userEmail"`
	BookingDate string `json:"bookingDate"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ModifyBookingRequest) ToUseCaseRequest(bookingID int64, user domain.User) (*modifyBooking.Request, error) {
	req := &modifyBooking.Request{
		BookingID: bookingID,
		User:      user,
	}

	if r.BookingDate != nil {
		bookingDate, err := time.Parse(domain.DateFormat, *r.BookingDate)
		if err != nil {
			return nil, err
		}
		req.Date = &bookingDate
	}

	if r.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &startTime
	}

	if r.EndTime != nil {
		endTime, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, err
		}
		req.EndTime = &endTime
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *modifyBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:          resp.ID,
		ClassroomID: resp.ClassroomID,
		UserID:      resp.UserID,
		UserName:    resp.UserName,
		UserEmail:   resp.UserEmail,
		BookingDate: resp.BookingDate.Format(domain.DateFormat),
		StartTime:   resp.StartTime.String(),
		EndTime:     resp.EndTime.String(),
		Status:      resp.Status,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}
}
