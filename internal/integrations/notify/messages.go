package notify

import "time"

// Типы событий бронирования, публикуемых в очередь уведомлений
const (
	EventBookingCreated   = "booking.created"
	EventBookingModified  = "booking.modified"
	EventBookingCancelled = "booking.cancelled"
	EventBookingApproved  = "booking.approved"
	EventBookingRejected  = "booking.rejected"
)

// BookingEvent событие изменения бронирования для сервиса уведомлений
type BookingEvent struct {
	EventID       string    `json:"event_id"`
	Type          string    `json:"type"`
	OccurredAt    time.Time `json:"occurred_at"`
	BookingID     int64     `json:"booking_id"`
	ClassroomID   int64     `json:"classroom_id"`
	ClassroomName string    `json:"classroom_name,omitempty"`
	UserID        int64     `json:"user_id"`
	UserName      string    `json:"user_name"`
	UserEmail     string    `json:"user_email"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Status        string    `json:"status"`

	// Кто выполнил действие (для отмены и модерации администратором)
	ActorID int64 `json:"actor_id,omitempty"`

	// Прежнее расписание при переносе бронирования
	OldDate      string `json:"old_date,omitempty"`
	OldStartTime string `json:"old_start_time,omitempty"`
	OldEndTime   string `json:"old_end_time,omitempty"`
}
