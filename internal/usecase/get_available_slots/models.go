package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ClassroomService/pkg/types"
)

// Request модель запроса сетки доступности аудитории на дату
type Request struct {
	ClassroomID int64     // ID аудитории
	Date        time.Time // Дата, на которую строится сетка (без времени)
}

// Slot один слот сетки доступности
type Slot struct {
	StartTime types.TimeString // Время начала слота
	EndTime   types.TimeString // Время окончания слота
	Available bool             // Свободен ли слот
	BookingID *int64           // ID занявшего бронирования, если слот занят
	BookedBy  *string          // Имя забронировавшего пользователя, если слот занят
	Status    *string          // Статус занявшего бронирования (pending или confirmed)
}

// Response модель ответа с сеткой доступности
type Response struct {
	ClassroomID    int64            // ID аудитории
	Date           time.Time        // Дата сетки
	SlotDuration   int              // Длительность слота в минутах
	Slots          []Slot           // Сетка слотов рабочего дня
	OperatingStart types.TimeString // Начало рабочих часов
	OperatingEnd   types.TimeString // Конец рабочих часов
}
