package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClassroomService/internal/domain"
	classroomRepo "github.com/m04kA/SMC-ClassroomService/internal/infra/storage/classroom"
	settingsRepo "github.com/m04kA/SMC-ClassroomService/internal/infra/storage/settings"
)

// UseCase use case для получения сетки доступности аудитории
type UseCase struct {
	bookingRepo   BookingRepository
	classroomRepo ClassroomRepository
	settingsRepo  SettingsRepository
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	classroomRepo ClassroomRepository,
	settingsRepo SettingsRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		classroomRepo: classroomRepo,
		settingsRepo:  settingsRepo,
		logger:        logger,
	}
}

// Execute выполняет use case построения сетки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: classroom=%d, date=%s",
		req.ClassroomID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование аудитории
	if _, err := uc.classroomRepo.GetByID(ctx, req.ClassroomID); err != nil {
		if errors.Is(err, classroomRepo.ErrClassroomNotFound) {
			uc.logger.Warn("GetAvailableSlots: classroom id=%d not found", req.ClassroomID)
			return nil, ErrClassroomNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get classroom id=%d: %v", req.ClassroomID, err)
		return nil, fmt.Errorf("%w: failed to get classroom: %v", ErrInternal, err)
	}

	// 3. Получаем глобальные настройки расписания
	settings, err := uc.settingsRepo.GetGlobal(ctx)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Error("GetAvailableSlots: failed to get settings: %v", err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		settings = domain.DefaultSettings()
		uc.logger.Info("GetAvailableSlots: settings not initialized, using defaults")
	}

	// 4. Получаем активные бронирования аудитории на дату
	filter := domain.ClassroomBookingsFilter{
		ClassroomID: req.ClassroomID,
		StartDate:   &req.Date,
		EndDate:     &req.Date,
	}

	bookings, err := uc.bookingRepo.GetByClassroomWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 5. Строим сетку слотов
	grid, err := domain.BuildTimeSlotGrid(
		settings.OperatingStart,
		settings.OperatingEnd,
		settings.SlotDurationMinutes,
		bookings,
	)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to build slot grid: %v", err)
		return nil, fmt.Errorf("%w: failed to build slot grid: %v", ErrInternal, err)
	}

	slots := make([]Slot, len(grid))
	for i, cell := range grid {
		slot := Slot{
			StartTime: cell.StartTime,
			EndTime:   cell.EndTime,
			Available: cell.Available,
		}
		if cell.Booking != nil {
			slot.BookingID = &cell.Booking.ID
			slot.BookedBy = &cell.Booking.UserName
			status := string(cell.Booking.Status)
			slot.Status = &status
		}
		slots[i] = slot
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for classroom=%d, date=%s",
		len(slots), req.ClassroomID, req.Date.Format(domain.DateFormat))

	return &Response{
		ClassroomID:    req.ClassroomID,
		Date:           req.Date,
		SlotDuration:   settings.SlotDurationMinutes,
		Slots:          slots,
		OperatingStart: settings.OperatingStart,
		OperatingEnd:   settings.OperatingEnd,
	}, nil
}
