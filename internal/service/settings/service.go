package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClassroomService/internal/domain"
	classroomRepo "github.com/m04kA/SMC-ClassroomService/internal/infra/storage/classroom"
	settingsRepo "github.com/m04kA/SMC-ClassroomService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-ClassroomService/internal/service/settings/models"
	"github.com/m04kA/SMC-ClassroomService/pkg/types"
)

// Service сервис глобальных настроек расписания и политик аудиторий
type Service struct {
	settingsRepo  SettingsRepository
	classroomRepo ClassroomRepository
	logger        Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	settingsRepo SettingsRepository,
	classroomRepo ClassroomRepository,
	logger Logger,
) *Service {
	return &Service{
		settingsRepo:  settingsRepo,
		classroomRepo: classroomRepo,
		logger:        logger,
	}
}

// GetSettings получает глобальные настройки расписания
// Если настройки не инициализированы, возвращает дефолтные значения
func (s *Service) GetSettings(ctx context.Context) (*models.SettingsResponse, error) {
	s.logger.Info("GetSettings: fetching global settings")

	settings, err := s.settingsRepo.GetGlobal(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Info("GetSettings: settings not initialized, returning defaults")
			return models.FromDomainSettings(domain.DefaultSettings()), nil
		}
		s.logger.Error("GetSettings: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetSettings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettings(settings), nil
}

// UpdateSettings обновляет глобальные настройки расписания
// Доступно только администраторам. Незаполненные поля сохраняют
// текущие значения
func (s *Service) UpdateSettings(ctx context.Context, req *models.UpdateSettingsRequest, user domain.User) (*models.SettingsResponse, error) {
	s.logger.Info("UpdateSettings: updating global settings by user=%d", user.ID)

	if !user.Role.IsAtLeastAdmin() {
		s.logger.Warn("UpdateSettings: access denied for user=%d role=%s", user.ID, user.Role)
		return nil, ErrAccessDenied
	}

	current, err := s.settingsRepo.GetGlobal(ctx)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Error("UpdateSettings: repository error: %v", err)
			return nil, fmt.Errorf("%w: UpdateSettings - repository error: %v", ErrInternal, err)
		}
		current = domain.DefaultSettings()
	}

	merged, err := mergeSettings(current, req)
	if err != nil {
		s.logger.Warn("UpdateSettings: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.settingsRepo.Update(ctx, merged, user.ID)
	if err != nil {
		s.logger.Error("UpdateSettings: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateSettings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSettings: successfully updated settings: hours=%s-%s, defaultCap=%d, slot=%d",
		updated.OperatingStart, updated.OperatingEnd, updated.DefaultMaxTimePerDay, updated.SlotDurationMinutes)
	return models.FromDomainSettings(updated), nil
}

// ListClassrooms получает список всех аудиторий
func (s *Service) ListClassrooms(ctx context.Context) (*models.ClassroomListResponse, error) {
	s.logger.Info("ListClassrooms: fetching all classrooms")

	classrooms, err := s.classroomRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("ListClassrooms: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListClassrooms - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListClassrooms: successfully fetched %d classrooms", len(classrooms))
	return models.FromDomainClassroomList(classrooms), nil
}

// GetClassroomConfig получает конфигурацию аудитории
func (s *Service) GetClassroomConfig(ctx context.Context, classroomID int64) (*models.ClassroomResponse, error) {
	s.logger.Info("GetClassroomConfig: fetching classroom id=%d", classroomID)

	classroom, err := s.classroomRepo.GetByID(ctx, classroomID)
	if err != nil {
		if errors.Is(err, classroomRepo.ErrClassroomNotFound) {
			s.logger.Warn("GetClassroomConfig: classroom id=%d not found", classroomID)
			return nil, ErrClassroomNotFound
		}
		s.logger.Error("GetClassroomConfig: repository error for classroom id=%d: %v", classroomID, err)
		return nil, fmt.Errorf("%w: GetClassroomConfig - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainClassroom(classroom), nil
}

// UpdateClassroomConfig обновляет политику бронирования аудитории
// Доступно только администраторам, закрепленным за аудиторией
// Незаполненные поля сохраняют текущие значения
func (s *Service) UpdateClassroomConfig(ctx context.Context, classroomID int64, req *models.UpdateClassroomConfigRequest, user domain.User) (*models.ClassroomResponse, error) {
	s.logger.Info("UpdateClassroomConfig: updating classroom id=%d by user=%d", classroomID, user.ID)

	if !user.Role.IsAtLeastAdmin() {
		s.logger.Warn("UpdateClassroomConfig: access denied for user=%d role=%s", user.ID, user.Role)
		return nil, ErrAccessDenied
	}

	classroom, err := s.classroomRepo.GetByID(ctx, classroomID)
	if err != nil {
		if errors.Is(err, classroomRepo.ErrClassroomNotFound) {
			s.logger.Warn("UpdateClassroomConfig: classroom id=%d not found", classroomID)
			return nil, ErrClassroomNotFound
		}
		s.logger.Error("UpdateClassroomConfig: repository error for classroom id=%d: %v", classroomID, err)
		return nil, fmt.Errorf("%w: UpdateClassroomConfig - repository error: %v", ErrInternal, err)
	}

	if !classroom.IsAdminAuthorized(&user) {
		s.logger.Warn("UpdateClassroomConfig: user=%d is not assigned to classroom id=%d", user.ID, classroomID)
		return nil, ErrAccessDenied
	}

	if err := applyClassroomConfig(classroom, req); err != nil {
		s.logger.Warn("UpdateClassroomConfig: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.classroomRepo.UpdateConfig(ctx, classroomID, classroom)
	if err != nil {
		if errors.Is(err, classroomRepo.ErrClassroomNotFound) {
			s.logger.Warn("UpdateClassroomConfig: classroom id=%d not found during update", classroomID)
			return nil, ErrClassroomNotFound
		}
		s.logger.Error("UpdateClassroomConfig: repository error for classroom id=%d: %v", classroomID, err)
		return nil, fmt.Errorf("%w: UpdateClassroomConfig - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateClassroomConfig: successfully updated classroom id=%d", classroomID)
	return models.FromDomainClassroom(updated), nil
}

// Вспомогательные функции

// mergeSettings накладывает запрос на текущие настройки и валидирует результат
func mergeSettings(current *domain.Settings, req *models.UpdateSettingsRequest) (*domain.Settings, error) {
	merged := *current

	if req.OperatingStart != nil {
		start, err := types.NewTimeStringFromString(*req.OperatingStart)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid operatingStart: %v", ErrInvalidInput, err)
		}
		merged.OperatingStart = start
	}

	if req.OperatingEnd != nil {
		end, err := types.NewTimeStringFromString(*req.OperatingEnd)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid operatingEnd: %v", ErrInvalidInput, err)
		}
		merged.OperatingEnd = end
	}

	if req.DefaultMaxTimePerDay != nil {
		merged.DefaultMaxTimePerDay = *req.DefaultMaxTimePerDay
	}

	if req.SlotDurationMinutes != nil {
		merged.SlotDurationMinutes = *req.SlotDurationMinutes
	}

	if !merged.OperatingStart.IsBefore(merged.OperatingEnd) {
		return nil, fmt.Errorf("%w: operatingStart must be before operatingEnd", ErrInvalidInput)
	}

	if merged.DefaultMaxTimePerDay <= 0 {
		return nil, fmt.Errorf("%w: defaultMaxTimePerDay must be positive", ErrInvalidInput)
	}

	if !domain.IsValidSlotDuration(merged.SlotDurationMinutes) {
		return nil, fmt.Errorf("%w: slotDurationMinutes must be one of %v", ErrInvalidInput, domain.ValidSlotDurations)
	}

	return &merged, nil
}

// applyClassroomConfig накладывает запрос на конфигурацию аудитории
func applyClassroomConfig(classroom *domain.Classroom, req *models.UpdateClassroomConfigRequest) error {
	if req.Active != nil {
		classroom.Active = *req.Active
	}

	if req.Permission != nil {
		permission := domain.ClassroomPermission(*req.Permission)
		if !permission.IsValid() {
			return fmt.Errorf("%w: unknown permission %q", ErrInvalidInput, *req.Permission)
		}
		classroom.Permission = permission
	}

	if req.RequiresApproval != nil {
		classroom.RequiresApproval = *req.RequiresApproval
	}

	if req.MaxTimePerDay != nil {
		if *req.MaxTimePerDay < domain.CapUnlimited {
			return fmt.Errorf("%w: maxTimePerDay must be -1, 0 or positive", ErrInvalidInput)
		}
		classroom.MaxTimePerDay = *req.MaxTimePerDay
	}

	if req.AssignedAdmins != nil {
		classroom.AssignedAdmins = *req.AssignedAdmins
	}

	return nil
}
