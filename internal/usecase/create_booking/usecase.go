package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClassroomService/internal/domain"
	classroomRepo "github.com/m04kA/SMC-ClassroomService/internal/infra/storage/classroom"
	settingsRepo "github.com/m04kA/SMC-ClassroomService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-ClassroomService/internal/integrations/notify"
)

// UseCase use case для создания бронирования
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

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения гонки данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, classroom=%d, date=%s, time=%s-%s",
		req.User.ID, req.ClassroomID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что дата не в прошлом
	if err := validateDate(req.Date, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	// 3. Получаем аудиторию
	classroom, err := uc.classroomRepo.GetByID(ctx, req.ClassroomID)
	if err != nil {
		if errors.Is(err, classroomRepo.ErrClassroomNotFound) {
			uc.logger.Warn("CreateBooking: classroom id=%d not found", req.ClassroomID)
			return nil, ErrClassroomNotFound
		}
		uc.logger.Error("CreateBooking: failed to get classroom id=%d: %v", req.ClassroomID, err)
		return nil, fmt.Errorf("%w: failed to get classroom: %v", ErrInternal, err)
	}

	// 4. Аудитория должна быть активна
	if !classroom.Active {
		uc.logger.Warn("CreateBooking: classroom id=%d is inactive", req.ClassroomID)
		return nil, ErrClassroomInactive
	}

	// 5. Проверяем права доступа к аудитории
	if !classroom.AllowsStudentBooking() && !req.User.Role.IsAtLeastAdmin() {
		uc.logger.Warn("CreateBooking: classroom id=%d is admin-only, user=%d role=%s",
			req.ClassroomID, req.User.ID, req.User.Role)
		return nil, ErrPermissionDenied
	}

	// 6. Получаем глобальные настройки расписания
	settings, err := uc.settingsRepo.GetGlobal(ctx)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Error("CreateBooking: failed to get settings: %v", err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		settings = domain.DefaultSettings()
		uc.logger.Info("CreateBooking: settings not initialized, using defaults")
	}

	// 7. Валидация интервала относительно рабочих часов
	if err := validateTimeRange(req.StartTime, req.EndTime, settings); err != nil {
		uc.logger.Warn("CreateBooking: time range validation failed: %v", err)
		return nil, err
	}

	duration, err := domain.DurationMinutes(req.StartTime, req.EndTime)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to compute duration: %v", err)
		return nil, fmt.Errorf("%w: failed to compute duration: %v", ErrInternal, err)
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 8. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Получаем все активные бронирования аудитории на эту дату с блокировкой (FOR UPDATE)
		filter := domain.ClassroomBookingsFilter{
			ClassroomID: req.ClassroomID,
			StartDate:   &req.Date,
			EndDate:     &req.Date,
		}

		bookings, err := uc.bookingRepo.GetByClassroomWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 8.2. Проверяем пересечение с активными бронированиями.
		// Ожидающие подтверждения бронирования тоже блокируют интервал.
		if conflict := domain.FindConflict(bookings, req.StartTime, req.EndTime, 0); conflict != nil {
			uc.logger.Warn("CreateBooking: conflict with booking id=%d (%s-%s)",
				conflict.ID, conflict.StartTime, conflict.EndTime)
			return fmt.Errorf("%w: overlaps with booking %s-%s", ErrTimeConflict, conflict.StartTime, conflict.EndTime)
		}

		// 8.3. Проверяем дневной лимит пользователя в этой аудитории
		dailyCap := classroom.EffectiveDailyCap(settings.DefaultMaxTimePerDay)
		if dailyCap > 0 {
			userBookings, err := uc.bookingRepo.GetByUserClassroomAndDate(txCtx, req.User.ID, req.ClassroomID, req.Date)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to get user bookings: %v", err)
				return fmt.Errorf("%w: failed to get user bookings: %v", ErrInternal, err)
			}

			used := domain.TotalBookedMinutes(userBookings)
			if used+duration > dailyCap {
				remaining := dailyCap - used
				if remaining < 0 {
					remaining = 0
				}
				uc.logger.Warn("CreateBooking: daily cap exceeded for user=%d, classroom=%d: used=%d, requested=%d, cap=%d",
					req.User.ID, req.ClassroomID, used, duration, dailyCap)
				return fmt.Errorf("%w: %d minutes remaining today", ErrDailyCapExceeded, remaining)
			}
		}

		// 8.4. Создаем бронирование
		booking := &domain.Booking{
			ClassroomID: req.ClassroomID,
			UserID:      req.User.ID,
			UserName:    req.User.DisplayName,
			UserEmail:   req.User.Email,
			BookingDate: req.Date,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			Status:      resolveStatus(classroom, req.User),
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d status=%s", result.ID, result.Status)

	// 9. Публикуем событие, ошибка доставки не влияет на результат
	event := &notify.BookingEvent{
		Type:          notify.EventBookingCreated,
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
	}
	if err := uc.events.PublishBookingEvent(ctx, event); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish event for booking id=%d: %v", result.ID, err)
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
