package modify_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClassroomService/internal/domain"
	storage "github.com/m04kA/SMC-ClassroomService/internal/infra/storage/booking"
	classroomStorage "github.com/m04kA/SMC-ClassroomService/internal/infra/storage/classroom"
	"github.com/m04kA/SMC-ClassroomService/internal/integrations/notify"
	"github.com/m04kA/SMC-ClassroomService/pkg/types"
)

// Фейки зависимостей use case

type fakeBookingRepo struct {
	booking           *domain.Booking
	getErr            error
	classroomBookings []*domain.Booking
	userBookings      []*domain.Booking

	updatedDate  time.Time
	updatedStart types.TimeString
	updatedEnd   types.TimeString
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) GetByClassroomWithFilter(_ context.Context, _ domain.ClassroomBookingsFilter) ([]*domain.Booking, error) {
	return f.classroomBookings, nil
}

func (f *fakeBookingRepo) GetByUserClassroomAndDate(_ context.Context, _, _ int64, _ time.Time) ([]*domain.Booking, error) {
	return f.userBookings, nil
}

func (f *fakeBookingRepo) UpdateSchedule(_ context.Context, id int64, date time.Time, start, end types.TimeString) (*domain.Booking, error) {
	f.updatedDate = date
	f.updatedStart = start
	f.updatedEnd = end

	updated := *f.booking
	updated.ID = id
	updated.BookingDate = date
	updated.StartTime = start
	updated.EndTime = end
	updated.UpdatedAt = time.Now()
	return &updated, nil
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

type fakeSettingsRepo struct {
	settings *domain.Settings
}

func (f *fakeSettingsRepo) GetGlobal(_ context.Context) (*domain.Settings, error) {
	return f.settings, nil
}

type fakePublisher struct {
	events []*notify.BookingEvent
}

func (f *fakePublisher) PublishBookingEvent(_ context.Context, event *notify.BookingEvent) error {
	f.events = append(f.events, event)
	return nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Вспомогательные конструкторы

var testNow = time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC)

func testDate() time.Time {
	return time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC)
}

func ownedBooking() *domain.Booking {
	return &domain.Booking{
		ID:          5,
		ClassroomID: 1,
		UserID:      10,
		UserName:    "Ivan",
		UserEmail:   "ivan@example.com",
		BookingDate: testDate(),
		StartTime:   "10:00",
		EndTime:     "11:00",
		Status:      domain.StatusConfirmed,
	}
}

func activeClassroom() *domain.Classroom {
	return &domain.Classroom{
		ID:         1,
		Name:       "Room 101",
		Active:     true,
		Permission: domain.PermissionStudent,
	}
}

func defaultTestSettings() *domain.Settings {
	return &domain.Settings{
		OperatingStart:       "08:00",
		OperatingEnd:         "18:00",
		DefaultMaxTimePerDay: 60,
		SlotDurationMinutes:  15,
	}
}

func newTestUseCase(bookings *fakeBookingRepo, classroom *domain.Classroom, events *fakePublisher) *UseCase {
	uc := NewUseCase(
		bookings,
		&fakeClassroomRepo{classroom: classroom},
		&fakeSettingsRepo{settings: defaultTestSettings()},
		events,
		&fakeTxManager{},
		nopLogger{},
	)
	uc.timeProvider = &fakeTimeProvider{now: testNow}
	return uc
}

func owner() domain.User {
	return domain.User{ID: 10, DisplayName: "Ivan", Role: domain.RoleStudent}
}

func timePtr(s types.TimeString) *types.TimeString {
	return &s
}

// Тесты

func TestExecute_RescheduleTime(t *testing.T) {
	bookings := &fakeBookingRepo{
		booking:      ownedBooking(),
		userBookings: []*domain.Booking{ownedBooking()},
	}
	events := &fakePublisher{}
	uc := newTestUseCase(bookings, activeClassroom(), events)

	req := &Request{
		BookingID: 5,
		User:      owner(),
		StartTime: timePtr("14:00"),
		EndTime:   timePtr("15:00"),
	}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, types.TimeString("14:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("15:00"), resp.EndTime)
	// Дата не менялась и наследуется от текущего бронирования
	assert.Equal(t, testDate(), bookings.updatedDate)

	require.Len(t, events.events, 1)
	event := events.events[0]
	assert.Equal(t, notify.EventBookingModified, event.Type)
	assert.Equal(t, "10:00", event.OldStartTime)
	assert.Equal(t, "14:00", event.StartTime)
	assert.Equal(t, int64(10), event.ActorID)
}

func TestExecute_OwnBookingExcludedFromConflictCheck(t *testing.T) {
	current := ownedBooking()
	bookings := &fakeBookingRepo{
		booking:           current,
		classroomBookings: []*domain.Booking{current},
		userBookings:      []*domain.Booking{current},
	}
	uc := newTestUseCase(bookings, activeClassroom(), &fakePublisher{})

	// Новый интервал пересекается только с самим переносимым бронированием
	req := &Request{
		BookingID: 5,
		User:      owner(),
		StartTime: timePtr("10:30"),
		EndTime:   timePtr("11:30"),
	}

	_, err := uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_OwnMinutesExcludedFromCap(t *testing.T) {
	current := ownedBooking()
	bookings := &fakeBookingRepo{
		booking:      current,
		userBookings: []*domain.Booking{current},
	}
	uc := newTestUseCase(bookings, activeClassroom(), &fakePublisher{})

	// Часовое бронирование при лимите 60 минут можно перенести целиком
	req := &Request{
		BookingID: 5,
		User:      owner(),
		StartTime: timePtr("15:00"),
		EndTime:   timePtr("16:00"),
	}

	_, err := uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_ConflictWithAnotherBooking(t *testing.T) {
	current := ownedBooking()
	other := &domain.Booking{
		ID:          6,
		ClassroomID: 1,
		UserID:      99,
		StartTime:   "14:00",
		EndTime:     "15:00",
		Status:      domain.StatusConfirmed,
	}
	bookings := &fakeBookingRepo{
		booking:           current,
		classroomBookings: []*domain.Booking{current, other},
		userBookings:      []*domain.Booking{current},
	}
	uc := newTestUseCase(bookings, activeClassroom(), &fakePublisher{})

	req := &Request{
		BookingID: 5,
		User:      owner(),
		StartTime: timePtr("14:30"),
		EndTime:   timePtr("15:30"),
	}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTimeConflict)
}

func TestExecute_PermissionChecks(t *testing.T) {
	t.Run("stranger cannot modify", func(t *testing.T) {
		bookings := &fakeBookingRepo{booking: ownedBooking()}
		uc := newTestUseCase(bookings, activeClassroom(), &fakePublisher{})

		req := &Request{
			BookingID: 5,
			User:      domain.User{ID: 99, Role: domain.RoleStudent},
			StartTime: timePtr("14:00"),
			EndTime:   timePtr("15:00"),
		}

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("admin can modify any booking", func(t *testing.T) {
		current := ownedBooking()
		bookings := &fakeBookingRepo{
			booking:      current,
			userBookings: []*domain.Booking{current},
		}
		uc := newTestUseCase(bookings, activeClassroom(), &fakePublisher{})

		req := &Request{
			BookingID: 5,
			User:      domain.User{ID: 20, Role: domain.RoleAdmin},
			StartTime: timePtr("14:00"),
			EndTime:   timePtr("15:00"),
		}

		_, err := uc.Execute(context.Background(), req)
		assert.NoError(t, err)
	})
}

func TestExecute_TerminalAndMissingStates(t *testing.T) {
	t.Run("cancelled booking cannot be modified", func(t *testing.T) {
		cancelled := ownedBooking()
		cancelled.Status = domain.StatusCancelled

		uc := newTestUseCase(&fakeBookingRepo{booking: cancelled}, activeClassroom(), &fakePublisher{})

		req := &Request{BookingID: 5, User: owner(), StartTime: timePtr("14:00"), EndTime: timePtr("15:00")}
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrAlreadyCancelled)
	})

	t.Run("booking not found", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{getErr: storage.ErrBookingNotFound}, activeClassroom(), &fakePublisher{})

		req := &Request{BookingID: 5, User: owner(), StartTime: timePtr("14:00"), EndTime: timePtr("15:00")}
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("classroom not found", func(t *testing.T) {
		uc := NewUseCase(
			&fakeBookingRepo{booking: ownedBooking()},
			&fakeClassroomRepo{err: classroomStorage.ErrClassroomNotFound},
			&fakeSettingsRepo{settings: defaultTestSettings()},
			&fakePublisher{},
			&fakeTxManager{},
			nopLogger{},
		)
		uc.timeProvider = &fakeTimeProvider{now: testNow}

		req := &Request{BookingID: 5, User: owner(), StartTime: timePtr("14:00"), EndTime: timePtr("15:00")}
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrClassroomNotFound)
	})

	t.Run("inactive classroom blocks reschedule", func(t *testing.T) {
		classroom := activeClassroom()
		classroom.Active = false

		uc := newTestUseCase(&fakeBookingRepo{booking: ownedBooking()}, classroom, &fakePublisher{})

		req := &Request{BookingID: 5, User: owner(), StartTime: timePtr("14:00"), EndTime: timePtr("15:00")}
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrClassroomInactive)
	})
}

func TestExecute_ScheduleValidation(t *testing.T) {
	t.Run("nothing to modify", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{booking: ownedBooking()}, activeClassroom(), &fakePublisher{})

		_, err := uc.Execute(context.Background(), &Request{BookingID: 5, User: owner()})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("merged interval must stay valid", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{booking: ownedBooking()}, activeClassroom(), &fakePublisher{})

		// Новое начало позже унаследованного конца 11:00
		req := &Request{BookingID: 5, User: owner(), StartTime: timePtr("12:00")}
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("outside operating hours", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{booking: ownedBooking()}, activeClassroom(), &fakePublisher{})

		req := &Request{BookingID: 5, User: owner(), StartTime: timePtr("17:30"), EndTime: timePtr("18:30")}
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrOutsideOperatingHours)
	})

	t.Run("operating hours reported before inverted interval", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{booking: ownedBooking()}, activeClassroom(), &fakePublisher{})

		// Интервал и перевернут, и выходит за рабочие часы:
		// первой причиной отказа должны быть рабочие часы
		req := &Request{BookingID: 5, User: owner(), StartTime: timePtr("19:00"), EndTime: timePtr("18:30")}
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrOutsideOperatingHours)
	})

	t.Run("past date is rejected", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{booking: ownedBooking()}, activeClassroom(), &fakePublisher{})

		past := testNow.AddDate(0, 0, -1)
		req := &Request{BookingID: 5, User: owner(), Date: &past}
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}

func TestExecute_MoveToAnotherDate(t *testing.T) {
	current := ownedBooking()
	bookings := &fakeBookingRepo{
		booking:      current,
		userBookings: []*domain.Booking{},
	}
	events := &fakePublisher{}
	uc := newTestUseCase(bookings, activeClassroom(), events)

	newDate := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
	req := &Request{BookingID: 5, User: owner(), Date: &newDate}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Время наследуется от текущего бронирования
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, newDate, bookings.updatedDate)

	require.Len(t, events.events, 1)
	assert.Equal(t, "2025-10-16", events.events[0].OldDate)
	assert.Equal(t, "2025-10-20", events.events[0].Date)
}
