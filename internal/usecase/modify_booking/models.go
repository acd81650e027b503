package modify_booking

import (
	"time"

	"github.com/m04kA/SMC-ClassroomService/internal/domain"
	"github.com/m04kA/SMC-ClassroomService/pkg/types"
)

// Request модель запроса на перенос бронирования.
// Незаполненные поля расписания наследуются от текущего бронирования.
type Request struct {
	BookingID int64             // ID бронирования
	User      domain.User       // Пользователь, выполняющий перенос
	Date      *time.Time        // Новая дата (опционально)
	StartTime *types.TimeString // Новое время начала (опционально)
	EndTime   *types.TimeString // Новое время окончания (опционально)
}

// Response модель ответа с обновленным бронированием
type Response struct {
	ID          int64            // ID бронирования
	ClassroomID int64            // ID аудитории
	UserID      int64            // ID владельца
	UserName    string           // Имя владельца
	UserEmail   string           // Email владельца
	BookingDate time.Time        // Дата бронирования
	StartTime   types.TimeString // Время начала
	EndTime     types.TimeString // Время окончания
	Status      string           // Статус бронирования
	CreatedAt   time.Time        // Время создания
	UpdatedAt   time.Time        // Время обновления
}
