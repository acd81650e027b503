package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ClassroomService/internal/domain"
	"github.com/m04kA/SMC-ClassroomService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClassroomID int64            // ID аудитории
	User        domain.User      // Пользователь, создающий бронирование
	Date        time.Time        // Дата бронирования (без времени)
	StartTime   types.TimeString // Время начала (например, "10:00")
	EndTime     types.TimeString // Время окончания (не включается в интервал)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64            // ID созданного бронирования
	ClassroomID int64            // ID аудитории
	UserID      int64            // ID пользователя
	UserName    string           // Имя пользователя
	UserEmail   string           // Email пользователя
	BookingDate time.Time        // Дата бронирования
	StartTime   types.TimeString // Время начала
	EndTime     types.TimeString // Время окончания
	Status      string           // Статус бронирования (pending или confirmed)
	CreatedAt   time.Time        // Время создания
	UpdatedAt   time.Time        // Время обновления
}
