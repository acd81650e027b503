package domain

import (
	"fmt"

	"github.com/m04kA/SMC-ClassroomService/pkg/types"
)

// TimeSlot represents one cell of the availability grid.
// Slots are a display/snapping unit, they are never persisted.
type TimeSlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Available bool
	Booking   *Booking // занявшее слот бронирование, если есть
}

// GenerateSlots генерирует начала слотов от operatingStart с шагом
// slotDuration, строго до operatingEnd. Сам operatingEnd началом слота
// не является — это допустимое время конца последнего слота.
func GenerateSlots(operatingStart, operatingEnd types.TimeString, slotDuration int) ([]types.TimeString, error) {
	if slotDuration <= 0 {
		return nil, fmt.Errorf("slot duration must be positive, got %d", slotDuration)
	}

	slots := make([]types.TimeString, 0)
	current := operatingStart

	for current.IsBefore(operatingEnd) {
		slots = append(slots, current)

		next, err := current.AddMinutes(slotDuration)
		if err != nil {
			// Шаг вышел за границу суток — сетка закончилась
			break
		}
		current = next
	}

	return slots, nil
}

// Overlaps reports whether half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Strict inequalities: adjacent intervals
// (aEnd == bStart) do NOT overlap, so back-to-back bookings are allowed.
func Overlaps(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && aEnd.IsAfter(bStart)
}

// DurationMinutes returns end - start in minutes.
// Negative or zero results indicate an invalid interval rejected upstream.
func DurationMinutes(start, end types.TimeString) (int, error) {
	return end.Sub(start)
}

// FindConflict возвращает первое активное бронирование, пересекающееся
// с интервалом [start, end), пропуская бронирование excludeID (0 = ничего
// не исключать). Отменённые бронирования слот не занимают.
func FindConflict(bookings []*Booking, start, end types.TimeString, excludeID int64) *Booking {
	for _, booking := range bookings {
		if excludeID != 0 && booking.ID == excludeID {
			continue
		}
		if !booking.IsActive() {
			continue
		}
		if booking.Overlaps(start, end) {
			return booking
		}
	}
	return nil
}

// TotalBookedMinutes суммирует длительность активных бронирований
// Отменённые бронирования дают ноль
func TotalBookedMinutes(bookings []*Booking) int {
	total := 0
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		total += booking.DurationMinutes()
	}
	return total
}

// BuildTimeSlotGrid строит сетку доступности аудитории на день.
// Слот занят, если его начало попадает в полуинтервал
// [StartTime, EndTime) какого-либо активного бронирования.
// Без бронирований все слоты свободны.
func BuildTimeSlotGrid(
	operatingStart, operatingEnd types.TimeString,
	slotDuration int,
	bookings []*Booking,
) ([]TimeSlot, error) {
	starts, err := GenerateSlots(operatingStart, operatingEnd, slotDuration)
	if err != nil {
		return nil, err
	}

	grid := make([]TimeSlot, len(starts))

	for i, start := range starts {
		// Конец последнего слота упирается в конец рабочего окна
		end := operatingEnd
		if i+1 < len(starts) {
			end = starts[i+1]
		}

		var occupying *Booking
		for _, booking := range bookings {
			if !booking.IsActive() {
				continue
			}
			if !start.IsBefore(booking.StartTime) && start.IsBefore(booking.EndTime) {
				occupying = booking
				break
			}
		}

		grid[i] = TimeSlot{
			StartTime: start,
			EndTime:   end,
			Available: occupying == nil,
			Booking:   occupying,
		}
	}

	return grid, nil
}
