package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClassroomService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ClassroomService/internal/infra/storage/booking"
	classroomRepo "github.com/m04kA/SMC-ClassroomService/internal/infra/storage/classroom"
	"github.com/m04kA/SMC-ClassroomService/internal/integrations/notify"
	"github.com/m04kA/SMC-ClassroomService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo   BookingRepository
	classroomRepo ClassroomRepository
	events        EventPublisher
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	classroomRepo ClassroomRepository,
	events EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		classroomRepo: classroomRepo,
		events:        events,
		logger:        logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только свое бронирование, администратор - любое
func (s *Service) GetByID(ctx context.Context, id int64, user domain.User) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, user.ID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !booking.IsOwnedBy(user.ID) && !user.Role.IsAtLeastAdmin() {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", user.ID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Пользователь видит только свою историю, администратор - любую
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest, user domain.User) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	if req.UserID != user.ID && !user.Role.IsAtLeastAdmin() {
		s.logger.Warn("GetUserBookings: access denied for user=%d to bookings of user=%d", user.ID, req.UserID)
		return nil, ErrAccessDenied
	}

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetClassroomBookings получает бронирования аудитории с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению отмененных бронирований
// Доступно только администраторам
func (s *Service) GetClassroomBookings(ctx context.Context, req *models.GetClassroomBookingsRequest, user domain.User) (*models.BookingListResponse, error) {
	s.logger.Info("GetClassroomBookings: fetching bookings for classroom=%d, user=%d", req.ClassroomID, user.ID)

	if !user.Role.IsAtLeastAdmin() {
		s.logger.Warn("GetClassroomBookings: access denied for user=%d role=%s", user.ID, user.Role)
		return nil, ErrAccessDenied
	}

	// Проверяем существование аудитории
	if _, err := s.classroomRepo.GetByID(ctx, req.ClassroomID); err != nil {
		if errors.Is(err, classroomRepo.ErrClassroomNotFound) {
			s.logger.Warn("GetClassroomBookings: classroom id=%d not found", req.ClassroomID)
			return nil, ErrClassroomNotFound
		}
		s.logger.Error("GetClassroomBookings: failed to get classroom id=%d: %v", req.ClassroomID, err)
		return nil, fmt.Errorf("%w: GetClassroomBookings - failed to get classroom: %v", ErrInternal, err)
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetClassroomBookings: invalid filter for classroom=%d: %v", req.ClassroomID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByClassroomWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetClassroomBookings: repository error for classroom=%d: %v", req.ClassroomID, err)
		return nil, fmt.Errorf("%w: GetClassroomBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClassroomBookings: successfully fetched %d bookings for classroom=%d", len(bookings), req.ClassroomID)
	return models.FromDomainBookingList(bookings), nil
}

// GetPending получает бронирования, ожидающие подтверждения
// Опционально фильтрует по аудитории
// Доступно только администраторам
func (s *Service) GetPending(ctx context.Context, classroomID *int64, user domain.User) (*models.BookingListResponse, error) {
	s.logger.Info("GetPending: fetching pending bookings, classroom=%v, user=%d", classroomID, user.ID)

	if !user.Role.IsAtLeastAdmin() {
		s.logger.Warn("GetPending: access denied for user=%d role=%s", user.ID, user.Role)
		return nil, ErrAccessDenied
	}

	bookings, err := s.bookingRepo.GetPending(ctx, classroomID)
	if err != nil {
		s.logger.Error("GetPending: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetPending - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPending: successfully fetched %d pending bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Пользователь может отменить только свое бронирование,
// администратор - любое. Отмена необратима
func (s *Service) Cancel(ctx context.Context, bookingID int64, user domain.User) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, user.ID)

	booking, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return err
	}

	if !booking.IsOwnedBy(user.ID) && !user.Role.IsAtLeastAdmin() {
		s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", user.ID, bookingID)
		return ErrAccessDenied
	}

	if booking.IsCancelled() {
		s.logger.Warn("Cancel: booking id=%d is already cancelled", bookingID)
		return ErrAlreadyCancelled
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, user.ID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)

	booking.Status = domain.StatusCancelled
	s.publishEvent(ctx, notify.EventBookingCancelled, booking, user.ID)
	return nil
}

// Approve подтверждает ожидающее бронирование
// Доступно только администраторам, закрепленным за аудиторией
func (s *Service) Approve(ctx context.Context, bookingID int64, user domain.User) (*models.BookingResponse, error) {
	s.logger.Info("Approve: approving booking id=%d by user=%d", bookingID, user.ID)

	booking, err := s.moderatedBooking(ctx, "Approve", bookingID, user)
	if err != nil {
		return nil, err
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.StatusConfirmed); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Approve: booking id=%d not found during update", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Approve: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Approve - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Approve: successfully approved booking id=%d", bookingID)

	booking.Status = domain.StatusConfirmed
	s.publishEvent(ctx, notify.EventBookingApproved, booking, user.ID)

	return models.FromDomainBooking(booking), nil
}

// Reject отклоняет ожидающее бронирование
// Отклонение переводит бронирование в статус cancelled и освобождает слот
// Доступно только администраторам, закрепленным за аудиторией
func (s *Service) Reject(ctx context.Context, bookingID int64, user domain.User) error {
	s.logger.Info("Reject: rejecting booking id=%d by user=%d", bookingID, user.ID)

	booking, err := s.moderatedBooking(ctx, "Reject", bookingID, user)
	if err != nil {
		return err
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, user.ID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Reject: booking id=%d not found during rejection", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Reject: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Reject - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Reject: successfully rejected booking id=%d", bookingID)

	booking.Status = domain.StatusCancelled
	s.publishEvent(ctx, notify.EventBookingRejected, booking, user.ID)
	return nil
}

// Вспомогательные методы

// getBooking получает бронирование, транслируя ошибки репозитория
func (s *Service) getBooking(ctx context.Context, op string, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// moderatedBooking получает бронирование для модерации и проверяет,
// что оно ожидает подтверждения, а пользователь закреплен за аудиторией
func (s *Service) moderatedBooking(ctx context.Context, op string, bookingID int64, user domain.User) (*domain.Booking, error) {
	booking, err := s.getBooking(ctx, op, bookingID)
	if err != nil {
		return nil, err
	}

	if !user.Role.IsAtLeastAdmin() {
		s.logger.Warn("%s: access denied for user=%d role=%s", op, user.ID, user.Role)
		return nil, ErrAccessDenied
	}

	classroom, err := s.classroomRepo.GetByID(ctx, booking.ClassroomID)
	if err != nil {
		if errors.Is(err, classroomRepo.ErrClassroomNotFound) {
			s.logger.Warn("%s: classroom id=%d not found", op, booking.ClassroomID)
			return nil, ErrClassroomNotFound
		}
		s.logger.Error("%s: failed to get classroom id=%d: %v", op, booking.ClassroomID, err)
		return nil, fmt.Errorf("%w: %s - failed to get classroom: %v", ErrInternal, op, err)
	}

	if !classroom.IsAdminAuthorized(&user) {
		s.logger.Warn("%s: user=%d is not assigned to classroom id=%d", op, user.ID, booking.ClassroomID)
		return nil, ErrAccessDenied
	}

	if !booking.IsPending() {
		s.logger.Warn("%s: booking id=%d is not pending, status=%s", op, bookingID, booking.Status)
		return nil, ErrNotPending
	}

	return booking, nil
}

// publishEvent публикует событие бронирования
// Ошибка доставки логируется и не влияет на результат операции
func (s *Service) publishEvent(ctx context.Context, eventType string, booking *domain.Booking, actorID int64) {
	event := &notify.BookingEvent{
		Type:        eventType,
		BookingID:   booking.ID,
		ClassroomID: booking.ClassroomID,
		UserID:      booking.UserID,
		UserName:    booking.UserName,
		UserEmail:   booking.UserEmail,
		Date:        booking.BookingDate.Format(domain.DateFormat),
		StartTime:   booking.StartTime.String(),
		EndTime:     booking.EndTime.String(),
		Status:      string(booking.Status),
		ActorID:     actorID,
	}

	if classroom, err := s.classroomRepo.GetByID(ctx, booking.ClassroomID); err == nil {
		event.ClassroomName = classroom.Name
	}

	if err := s.events.PublishBookingEvent(ctx, event); err != nil {
		s.logger.Warn("publishEvent: failed to publish %s for booking id=%d: %v", eventType, booking.ID, err)
	}
}
