package modify_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClassroomService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ClassroomService/internal/infra/storage/booking"
	classroomRepo "github.com/m04kA/SMC-ClassroomService/internal/infra/storage/classroom"
	settingsRepo "github.com/m04kA/SMC-ClassroomService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-ClassroomService/internal/integrations/notify"
)

// UseCase use case переноса бронирования на другое время
type UseCase struct {
	bookingRepo   BookingRepository
	classroomRepo ClassroomRepository
	settingsRepo  SettingsRepository
	events        EventPublisher
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	classroomRepo ClassroomRepository,
	settingsRepo SettingsRepository,
	events EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		classroomRepo: classroomRepo,
		settingsRepo:  settingsRepo,
		events:        events,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case переноса бронирования.
// Новое расписание проходит те же проверки, что и при создании:
// рабочие часы, пересечения и дневной лимит.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ModifyBooking: booking=%d, user=%d", req.BookingID, req.User.ID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ModifyBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("ModifyBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("ModifyBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Переносить может владелец или администратор
	if !booking.IsOwnedBy(req.User.ID) && !req.User.Role.IsAtLeastAdmin() {
		uc.logger.Warn("ModifyBooking: user=%d is not allowed to modify booking id=%d", req.User.ID, req.BookingID)
		return nil, ErrPermissionDenied
	}

	// 4. Отмененное бронирование изменить нельзя
	if booking.IsCancelled() {
		uc.logger.Warn("ModifyBooking: booking id=%d is already cancelled", req.BookingID)
		return nil, ErrAlreadyCancelled
	}

	// 5. Получаем аудиторию
	classroom, err := uc.classroomRepo.GetByID(ctx, booking.ClassroomID)
	if err != nil {
		if errors.Is(err, classroomRepo.ErrClassroomNotFound) {
			uc.logger.Warn("ModifyBooking: classroom id=%d not found", booking.ClassroomID)
			return nil, ErrClassroomNotFound
		}
		uc.logger.Error("ModifyBooking: failed to get classroom id=%d: %v", booking.ClassroomID, err)
		return nil, fmt.Errorf("%w: failed to get classroom: %v", ErrInternal, err)
	}

	if !classroom.Active {
		uc.logger.Warn("ModifyBooking: classroom id=%d is inactive", booking.ClassroomID)
		return nil, ErrClassroomInactive
	}

	// 6. Собираем итоговое расписание и проверяем дату
	newDate, newStart, newEnd := mergeSchedule(req, booking)

	if err := validateDate(newDate, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("ModifyBooking: date %s is in the past", newDate.Format(domain.DateFormat))
		return nil, err
	}

	// 7. Получаем глобальные настройки расписания
	settings, err := uc.settingsRepo.GetGlobal(ctx)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Error("ModifyBooking: failed to get settings: %v", err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		settings = domain.DefaultSettings()
		uc.logger.Info("ModifyBooking: settings not initialized, using defaults")
	}

	// 8. Валидация интервала относительно рабочих часов
	if err := validateTimeRange(newStart, newEnd, settings); err != nil {
		uc.logger.Warn("ModifyBooking: time range validation failed: %v", err)
		return nil, err
	}

	duration, err := domain.DurationMinutes(newStart, newEnd)
	if err != nil {
		uc.logger.Error("ModifyBooking: failed to compute duration: %v", err)
		return nil, fmt.Errorf("%w: failed to compute duration: %v", ErrInternal, err)
	}

	// Прежнее расписание для события
	oldDate := booking.BookingDate
	oldStart := booking.StartTime
	oldEnd := booking.EndTime

	// Переменная для хранения результата
	var result *domain.Booking

	// 9. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 9.1. Получаем все активные бронирования аудитории на новую дату с блокировкой (FOR UPDATE)
		filter := domain.ClassroomBookingsFilter{
			ClassroomID: booking.ClassroomID,
			StartDate:   &newDate,
			EndDate:     &newDate,
		}

		bookings, err := uc.bookingRepo.GetByClassroomWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("ModifyBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 9.2. Проверяем пересечения, исключая само переносимое бронирование
		if conflict := domain.FindConflict(bookings, newStart, newEnd, booking.ID); conflict != nil {
			uc.logger.Warn("ModifyBooking: conflict with booking id=%d (%s-%s)",
				conflict.ID, conflict.StartTime, conflict.EndTime)
			return fmt.Errorf("%w: overlaps with booking %s-%s", ErrTimeConflict, conflict.StartTime, conflict.EndTime)
		}

		// 9.3. Проверяем дневной лимит, минуты текущего бронирования не учитываем
		dailyCap := classroom.EffectiveDailyCap(settings.DefaultMaxTimePerDay)
		if dailyCap > 0 {
			userBookings, err := uc.bookingRepo.GetByUserClassroomAndDate(txCtx, booking.UserID, booking.ClassroomID, newDate)
			if err != nil {
				uc.logger.Error("ModifyBooking: failed to get user bookings: %v", err)
				return fmt.Errorf("%w: failed to get user bookings: %v", ErrInternal, err)
			}

			used := bookedMinutesExcluding(userBookings, booking.ID)
			if used+duration > dailyCap {
				remaining := dailyCap - used
				if remaining < 0 {
					remaining = 0
				}
				uc.logger.Warn("ModifyBooking: daily cap exceeded for user=%d, classroom=%d: used=%d, requested=%d, cap=%d",
					booking.UserID, booking.ClassroomID, used, duration, dailyCap)
				return fmt.Errorf("%w: %d minutes remaining today", ErrDailyCapExceeded, remaining)
			}
		}

		// 9.4. Сохраняем новое расписание
		updated, err := uc.bookingRepo.UpdateSchedule(txCtx, booking.ID, newDate, newStart, newEnd)
		if err != nil {
			uc.logger.Error("ModifyBooking: failed to update schedule: %v", err)
			return fmt.Errorf("%w: failed to update schedule: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ModifyBooking: successfully rescheduled booking id=%d to %s %s-%s",
		result.ID, result.BookingDate.Format(domain.DateFormat), result.StartTime, result.EndTime)

	// 10. Публикуем событие, ошибка доставки не влияет на результат
	event := &notify.BookingEvent{
		Type:          notify.EventBookingModified,
		BookingID:     result.ID,
		ClassroomID:   result.ClassroomID,
		ClassroomName: classroom.Name,
		UserID:        result.UserID,
		UserName:      result.UserName,
		UserEmail:     result.UserEmail,
		Date:          result.BookingDate.Format(domain.DateFormat),
		StartTime:     result.StartTime.String(),
		EndTime:       result.EndTime.String(),
		Status:        string(result.Status),
		ActorID:       req.User.ID,
		OldDate:       oldDate.Format(domain.DateFormat),
		OldStartTime:  oldStart.String(),
		OldEndTime:    oldEnd.String(),
	}
	if err := uc.events.PublishBookingEvent(ctx, event); err != nil {
		uc.logger.Warn("ModifyBooking: failed to publish event for booking id=%d: %v", result.ID, err)
	}

	return &Response{
		ID:          result.ID,
		ClassroomID: result.ClassroomID,
		UserID:      result.UserID,
		UserName:    result.UserName,
		UserEmail:   result.UserEmail,
		BookingDate: result.BookingDate,
		StartTime:   result.StartTime,
		EndTime:     result.EndTime,
		Status:      string(result.Status),
		CreatedAt:   result.CreatedAt,
		UpdatedAt:   result.UpdatedAt,
	}, nil
}
