package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClassroomService/internal/domain"
	bookingStorage "github.com/m04kA/SMC-ClassroomService/internal/infra/storage/booking"
	classroomStorage "github.com/m04kA/SMC-ClassroomService/internal/infra/storage/classroom"
	"github.com/m04kA/SMC-ClassroomService/internal/integrations/notify"
	"github.com/m04kA/SMC-ClassroomService/internal/service/bookings/models"
)

// Фейки зависимостей сервиса

type fakeBookingRepo struct {
	booking  *domain.Booking
	bookings []*domain.Booking
	getErr   error

	cancelledID  int64
	cancelledBy  int64
	statusID     int64
	statusValue  domain.BookingStatus
	statusCalled bool
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, _ int64, _ *domain.BookingStatus) ([]*domain.Booking, error) {
	return f.bookings, nil
}

func (f *fakeBookingRepo) GetByClassroomWithFilter(_ context.Context, _ domain.ClassroomBookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, nil
}

func (f *fakeBookingRepo) GetPending(_ context.Context, _ *int64) ([]*domain.Booking, error) {
	return f.bookings, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	f.statusCalled = true
	f.statusID = id
	f.statusValue = status
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, cancelledBy int64) error {
	f.cancelledID = id
	f.cancelledBy = cancelledBy
	return nil
}

type fakeClassroomRepo struct {
	classroom *domain.Classroom
	err       error
}

func (f *fakeClassroomRepo) GetByID(_ context.Context, _ int64) (*domain.Classroom, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.classroom, nil
}

type fakePublisher struct {
	events []*notify.BookingEvent
}

func (f *fakePublisher) PublishBookingEvent(_ context.Context, event *notify.BookingEvent) error {
	f.events = append(f.events, event)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Вспомогательные конструкторы

func testBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:          5,
		ClassroomID: 1,
		UserID:      10,
		UserName:    "Ivan",
		UserEmail:   "ivan@example.com",
		BookingDate: time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
		EndTime:     "11:00",
		Status:      status,
	}
}

func testClassroom() *domain.Classroom {
	return &domain.Classroom{ID: 1, Name: "Room 101", Active: true}
}

func newTestService(bookings *fakeBookingRepo, classrooms *fakeClassroomRepo, events *fakePublisher) *Service {
	return NewService(bookings, classrooms, events, nopLogger{})
}

func owner() domain.User {
	return domain.User{ID: 10, Role: domain.RoleStudent}
}

func admin() domain.User {
	return domain.User{ID: 20, Role: domain.RoleAdmin}
}

// Тесты

func TestGetByID(t *testing.T) {
	t.Run("owner sees own booking", func(t *testing.T) {
		svc := newTestService(
			&fakeBookingRepo{booking: testBooking(domain.StatusConfirmed)},
			&fakeClassroomRepo{classroom: testClassroom()},
			&fakePublisher{},
		)

		resp, err := svc.GetByID(context.Background(), 5, owner())
		require.NoError(t, err)
		assert.Equal(t, int64(5), resp.ID)
		assert.Equal(t, "2025-10-16", resp.BookingDate)
		assert.Equal(t, "10:00", resp.StartTime)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		svc := newTestService(
			&fakeBookingRepo{booking: testBooking(domain.StatusConfirmed)},
			&fakeClassroomRepo{classroom: testClassroom()},
			&fakePublisher{},
		)

		_, err := svc.GetByID(context.Background(), 5, domain.User{ID: 99, Role: domain.RoleStudent})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("admin sees any booking", func(t *testing.T) {
		svc := newTestService(
			&fakeBookingRepo{booking: testBooking(domain.StatusConfirmed)},
			&fakeClassroomRepo{classroom: testClassroom()},
			&fakePublisher{},
		)

		_, err := svc.GetByID(context.Background(), 5, admin())
		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		svc := newTestService(
			&fakeBookingRepo{getErr: bookingStorage.ErrBookingNotFound},
			&fakeClassroomRepo{classroom: testClassroom()},
			&fakePublisher{},
		)

		_, err := svc.GetByID(context.Background(), 5, owner())
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestGetUserBookings(t *testing.T) {
	t.Run("user reads own history", func(t *testing.T) {
		svc := newTestService(
			&fakeBookingRepo{bookings: []*domain.Booking{testBooking(domain.StatusConfirmed)}},
			&fakeClassroomRepo{classroom: testClassroom()},
			&fakePublisher{},
		)

		resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 10}, owner())
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 1)
	})

	t.Run("student cannot read someone else's history", func(t *testing.T) {
		svc := newTestService(&fakeBookingRepo{}, &fakeClassroomRepo{classroom: testClassroom()}, &fakePublisher{})

		_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 99}, owner())
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("admin reads any history", func(t *testing.T) {
		svc := newTestService(&fakeBookingRepo{}, &fakeClassroomRepo{classroom: testClassroom()}, &fakePublisher{})

		_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 10}, admin())
		assert.NoError(t, err)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		svc := newTestService(&fakeBookingRepo{}, &fakeClassroomRepo{classroom: testClassroom()}, &fakePublisher{})

		badStatus := "expired"
		req := &models.GetUserBookingsRequest{UserID: 10, Status: &badStatus}
		_, err := svc.GetUserBookings(context.Background(), req, owner())
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetClassroomBookings(t *testing.T) {
	t.Run("admin only", func(t *testing.T) {
		svc := newTestService(&fakeBookingRepo{}, &fakeClassroomRepo{classroom: testClassroom()}, &fakePublisher{})

		req := &models.GetClassroomBookingsRequest{ClassroomID: 1}
		_, err := svc.GetClassroomBookings(context.Background(), req, owner())
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("classroom must exist", func(t *testing.T) {
		svc := newTestService(
			&fakeBookingRepo{},
			&fakeClassroomRepo{err: classroomStorage.ErrClassroomNotFound},
			&fakePublisher{},
		)

		req := &models.GetClassroomBookingsRequest{ClassroomID: 1}
		_, err := svc.GetClassroomBookings(context.Background(), req, admin())
		assert.ErrorIs(t, err, ErrClassroomNotFound)
	})

	t.Run("successful fetch", func(t *testing.T) {
		svc := newTestService(
			&fakeBookingRepo{bookings: []*domain.Booking{testBooking(domain.StatusConfirmed)}},
			&fakeClassroomRepo{classroom: testClassroom()},
			&fakePublisher{},
		)

		req := &models.GetClassroomBookingsRequest{ClassroomID: 1}
		resp, err := svc.GetClassroomBookings(context.Background(), req, admin())
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 1)
	})
}

func TestGetPending(t *testing.T) {
	t.Run("admin only", func(t *testing.T) {
		svc := newTestService(&fakeBookingRepo{}, &fakeClassroomRepo{classroom: testClassroom()}, &fakePublisher{})

		_, err := svc.GetPending(context.Background(), nil, owner())
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("admin fetches pending queue", func(t *testing.T) {
		svc := newTestService(
			&fakeBookingRepo{bookings: []*domain.Booking{testBooking(domain.StatusPending)}},
			&fakeClassroomRepo{classroom: testClassroom()},
			&fakePublisher{},
		)

		resp, err := svc.GetPending(context.Background(), nil, admin())
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 1)
	})
}

func TestCancel(t *testing.T) {
	t.Run("owner cancels own booking", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: testBooking(domain.StatusConfirmed)}
		events := &fakePublisher{}
		svc := newTestService(repo, &fakeClassroomRepo{classroom: testClassroom()}, events)

		require.NoError(t, svc.Cancel(context.Background(), 5, owner()))
		assert.Equal(t, int64(5), repo.cancelledID)
		assert.Equal(t, int64(10), repo.cancelledBy)

		require.Len(t, events.events, 1)
		assert.Equal(t, notify.EventBookingCancelled, events.events[0].Type)
		assert.Equal(t, string(domain.StatusCancelled), events.events[0].Status)
	})

	t.Run("admin cancels someone else's booking", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: testBooking(domain.StatusPending)}
		svc := newTestService(repo, &fakeClassroomRepo{classroom: testClassroom()}, &fakePublisher{})

		require.NoError(t, svc.Cancel(context.Background(), 5, admin()))
		assert.Equal(t, int64(20), repo.cancelledBy)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: testBooking(domain.StatusConfirmed)}
		svc := newTestService(repo, &fakeClassroomRepo{classroom: testClassroom()}, &fakePublisher{})

		err := svc.Cancel(context.Background(), 5, domain.User{ID: 99, Role: domain.RoleStudent})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("cancellation is not repeatable", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: testBooking(domain.StatusCancelled)}
		svc := newTestService(repo, &fakeClassroomRepo{classroom: testClassroom()}, &fakePublisher{})

		err := svc.Cancel(context.Background(), 5, owner())
		assert.ErrorIs(t, err, ErrAlreadyCancelled)
	})
}

func TestApprove(t *testing.T) {
	t.Run("assigned admin approves pending booking", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: testBooking(domain.StatusPending)}
		classroom := testClassroom()
		classroom.AssignedAdmins = []int64{20}
		events := &fakePublisher{}
		svc := newTestService(repo, &fakeClassroomRepo{classroom: classroom}, events)

		resp, err := svc.Approve(context.Background(), 5, admin())
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
		assert.True(t, repo.statusCalled)
		assert.Equal(t, domain.StatusConfirmed, repo.statusValue)

		require.Len(t, events.events, 1)
		assert.Equal(t, notify.EventBookingApproved, events.events[0].Type)
		assert.Equal(t, int64(20), events.events[0].ActorID)
	})

	t.Run("unassigned admin is denied", func(t *testing.T) {
		classroom := testClassroom()
		classroom.AssignedAdmins = []int64{77}
		svc := newTestService(
			&fakeBookingRepo{booking: testBooking(domain.StatusPending)},
			&fakeClassroomRepo{classroom: classroom},
			&fakePublisher{},
		)

		_, err := svc.Approve(context.Background(), 5, admin())
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("super admin bypasses assignment", func(t *testing.T) {
		classroom := testClassroom()
		classroom.AssignedAdmins = []int64{77}
		svc := newTestService(
			&fakeBookingRepo{booking: testBooking(domain.StatusPending)},
			&fakeClassroomRepo{classroom: classroom},
			&fakePublisher{},
		)

		_, err := svc.Approve(context.Background(), 5, domain.User{ID: 1, Role: domain.RoleSuperAdmin})
		assert.NoError(t, err)
	})

	t.Run("student cannot approve", func(t *testing.T) {
		svc := newTestService(
			&fakeBookingRepo{booking: testBooking(domain.StatusPending)},
			&fakeClassroomRepo{classroom: testClassroom()},
			&fakePublisher{},
		)

		_, err := svc.Approve(context.Background(), 5, owner())
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("only pending bookings are moderated", func(t *testing.T) {
		svc := newTestService(
			&fakeBookingRepo{booking: testBooking(domain.StatusConfirmed)},
			&fakeClassroomRepo{classroom: testClassroom()},
			&fakePublisher{},
		)

		_, err := svc.Approve(context.Background(), 5, admin())
		assert.ErrorIs(t, err, ErrNotPending)
	})
}

func TestReject(t *testing.T) {
	t.Run("rejection cancels the booking", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: testBooking(domain.StatusPending)}
		events := &fakePublisher{}
		svc := newTestService(repo, &fakeClassroomRepo{classroom: testClassroom()}, events)

		require.NoError(t, svc.Reject(context.Background(), 5, admin()))

		// Отклонение фиксирует администратора как инициатора отмены
		assert.Equal(t, int64(5), repo.cancelledID)
		assert.Equal(t, int64(20), repo.cancelledBy)

		require.Len(t, events.events, 1)
		assert.Equal(t, notify.EventBookingRejected, events.events[0].Type)
		assert.Equal(t, string(domain.StatusCancelled), events.events[0].Status)
	})

	t.Run("only pending bookings can be rejected", func(t *testing.T) {
		svc := newTestService(
			&fakeBookingRepo{booking: testBooking(domain.StatusCancelled)},
			&fakeClassroomRepo{classroom: testClassroom()},
			&fakePublisher{},
		)

		err := svc.Reject(context.Background(), 5, admin())
		assert.ErrorIs(t, err, ErrNotPending)
	})
}
