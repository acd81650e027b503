package domain

import (
	"time"

	"github.com/m04kA/SMC-ClassroomService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a claim on a classroom for a time interval on one calendar date
type Booking struct {
	ID          int64
	ClassroomID int64
	UserID      int64
	UserName    string
	UserEmail   string
	BookingDate time.Time // календарный день, время обнулено
	StartTime   types.TimeString
	EndTime     types.TimeString
	Status      BookingStatus

	CancelledBy *int64
	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still blocks its slot.
// Pending bookings block the slot as well as confirmed ones.
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsPending returns true if the booking awaits admin approval
func (b *Booking) IsPending() bool {
	return b.Status == StatusPending
}

// IsConfirmed returns true if the booking is confirmed
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled.
// Cancelled is a terminal state.
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsOwnedBy returns true if the booking belongs to the given user
func (b *Booking) IsOwnedBy(userID int64) bool {
	return b.UserID == userID
}

// DurationMinutes returns the booked interval length in minutes
func (b *Booking) DurationMinutes() int {
	minutes, err := DurationMinutes(b.StartTime, b.EndTime)
	if err != nil {
		return 0
	}
	return minutes
}

// Overlaps reports whether the booking interval overlaps [start, end).
// Adjacent intervals do not overlap.
func (b *Booking) Overlaps(start, end types.TimeString) bool {
	return Overlaps(b.StartTime, b.EndTime, start, end)
}

// ClassroomBookingsFilter фильтр для выборки бронирований аудитории
type ClassroomBookingsFilter struct {
	ClassroomID      int64          // Обязательный параметр
	StartDate        *time.Time     // Начало периода (опционально)
	EndDate          *time.Time     // Конец периода (опционально)
	Status           *BookingStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool           // Включать ли отменённые бронирования
}
