package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClassroomService/internal/domain"
	storage "github.com/m04kA/SMC-ClassroomService/internal/infra/storage/classroom"
	settingsStorage "github.com/m04kA/SMC-ClassroomService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-ClassroomService/internal/integrations/notify"
	"github.com/m04kA/SMC-ClassroomService/pkg/types"
)

// Фейки зависимостей use case

type fakeBookingRepo struct {
	classroomBookings []*domain.Booking
	userBookings      []*domain.Booking
	created           *domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	created := *booking
	created.ID = 42
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.created = &created
	return &created, nil
}

func (f *fakeBookingRepo) GetByClassroomWithFilter(_ context.Context, _ domain.ClassroomBookingsFilter) ([]*domain.Booking, error) {
	return f.classroomBookings, nil
}

func (f *fakeBookingRepo) GetByUserClassroomAndDate(_ context.Context, _, _ int64, _ time.Time) ([]*domain.Booking, error) {
	return f.userBookings, nil
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
	err      error
}

func (f *fakeSettingsRepo) GetGlobal(_ context.Context) (*domain.Settings, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.settings, nil
}

type fakePublisher struct {
	events []*notify.BookingEvent
	err    error
}

func (f *fakePublisher) PublishBookingEvent(_ context.Context, event *notify.BookingEvent) error {
	if f.err != nil {
		return f.err
	}
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

func newTestUseCase(
	bookings *fakeBookingRepo,
	classrooms *fakeClassroomRepo,
	settings *fakeSettingsRepo,
	events *fakePublisher,
) *UseCase {
	uc := NewUseCase(bookings, classrooms, settings, events, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: testNow}
	return uc
}

func student() domain.User {
	return domain.User{ID: 10, DisplayName: "Ivan", Email: "ivan@example.com", Role: domain.RoleStudent}
}

func admin() domain.User {
	return domain.User{ID: 20, DisplayName: "Olga", Email: "olga@example.com", Role: domain.RoleAdmin}
}

func validRequest(user domain.User) *Request {
	return &Request{
		ClassroomID: 1,
		User:        user,
		Date:        testDate(),
		StartTime:   "10:00",
		EndTime:     "11:00",
	}
}

// Тесты

func TestExecute_Success(t *testing.T) {
	bookings := &fakeBookingRepo{}
	events := &fakePublisher{}
	uc := newTestUseCase(
		bookings,
		&fakeClassroomRepo{classroom: activeClassroom()},
		&fakeSettingsRepo{settings: defaultTestSettings()},
		events,
	)

	resp, err := uc.Execute(context.Background(), validRequest(student()))
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("11:00"), resp.EndTime)

	require.NotNil(t, bookings.created)
	assert.Equal(t, int64(10), bookings.created.UserID)

	require.Len(t, events.events, 1)
	assert.Equal(t, notify.EventBookingCreated, events.events[0].Type)
	assert.Equal(t, "Room 101", events.events[0].ClassroomName)
}

func TestExecute_TimeConflict(t *testing.T) {
	existing := &domain.Booking{
		ID:        1,
		StartTime: "10:30",
		EndTime:   "11:30",
		Status:    domain.StatusConfirmed,
	}
	bookings := &fakeBookingRepo{classroomBookings: []*domain.Booking{existing}}
	uc := newTestUseCase(
		bookings,
		&fakeClassroomRepo{classroom: activeClassroom()},
		&fakeSettingsRepo{settings: defaultTestSettings()},
		&fakePublisher{},
	)

	_, err := uc.Execute(context.Background(), validRequest(student()))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeConflict)
	assert.Nil(t, bookings.created)
}

func TestExecute_PendingBookingBlocksSlot(t *testing.T) {
	pending := &domain.Booking{
		ID:        1,
		StartTime: "10:00",
		EndTime:   "11:00",
		Status:    domain.StatusPending,
	}
	uc := newTestUseCase(
		&fakeBookingRepo{classroomBookings: []*domain.Booking{pending}},
		&fakeClassroomRepo{classroom: activeClassroom()},
		&fakeSettingsRepo{settings: defaultTestSettings()},
		&fakePublisher{},
	)

	_, err := uc.Execute(context.Background(), validRequest(student()))
	assert.ErrorIs(t, err, ErrTimeConflict)
}

func TestExecute_AdjacentBookingAllowed(t *testing.T) {
	existing := &domain.Booking{
		ID:        1,
		StartTime: "09:00",
		EndTime:   "10:00",
		Status:    domain.StatusConfirmed,
	}
	uc := newTestUseCase(
		&fakeBookingRepo{classroomBookings: []*domain.Booking{existing}},
		&fakeClassroomRepo{classroom: activeClassroom()},
		&fakeSettingsRepo{settings: defaultTestSettings()},
		&fakePublisher{},
	)

	// Лимит 60 минут как раз вмещает новый час
	resp, err := uc.Execute(context.Background(), validRequest(student()))
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
}

func TestExecute_DailyCapExceeded(t *testing.T) {
	used := &domain.Booking{
		ID:        1,
		UserID:    10,
		StartTime: "08:00",
		EndTime:   "08:30",
		Status:    domain.StatusConfirmed,
	}
	uc := newTestUseCase(
		&fakeBookingRepo{userBookings: []*domain.Booking{used}},
		&fakeClassroomRepo{classroom: activeClassroom()},
		&fakeSettingsRepo{settings: defaultTestSettings()},
		&fakePublisher{},
	)

	// Занято 30 минут при лимите 60, запрошен ещё час
	_, err := uc.Execute(context.Background(), validRequest(student()))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDailyCapExceeded)
	assert.Contains(t, err.Error(), "30 minutes remaining")
}

func TestExecute_CancelledBookingsDoNotCountTowardsCap(t *testing.T) {
	cancelled := &domain.Booking{
		ID:        1,
		UserID:    10,
		StartTime: "08:00",
		EndTime:   "09:00",
		Status:    domain.StatusCancelled,
	}
	uc := newTestUseCase(
		&fakeBookingRepo{userBookings: []*domain.Booking{cancelled}},
		&fakeClassroomRepo{classroom: activeClassroom()},
		&fakeSettingsRepo{settings: defaultTestSettings()},
		&fakePublisher{},
	)

	_, err := uc.Execute(context.Background(), validRequest(student()))
	assert.NoError(t, err)
}

func TestExecute_ClassroomCapOverride(t *testing.T) {
	t.Run("unlimited classroom ignores global cap", func(t *testing.T) {
		classroom := activeClassroom()
		classroom.MaxTimePerDay = domain.CapUnlimited

		used := &domain.Booking{
			ID:        1,
			UserID:    10,
			StartTime: "08:00",
			EndTime:   "10:00",
			Status:    domain.StatusConfirmed,
		}
		uc := newTestUseCase(
			&fakeBookingRepo{userBookings: []*domain.Booking{used}},
			&fakeClassroomRepo{classroom: classroom},
			&fakeSettingsRepo{settings: defaultTestSettings()},
			&fakePublisher{},
		)

		_, err := uc.Execute(context.Background(), validRequest(student()))
		assert.NoError(t, err)
	})

	t.Run("explicit classroom cap wins over default", func(t *testing.T) {
		classroom := activeClassroom()
		classroom.MaxTimePerDay = 30

		uc := newTestUseCase(
			&fakeBookingRepo{},
			&fakeClassroomRepo{classroom: classroom},
			&fakeSettingsRepo{settings: defaultTestSettings()},
			&fakePublisher{},
		)

		// Запрошен час при лимите аудитории 30 минут
		_, err := uc.Execute(context.Background(), validRequest(student()))
		assert.ErrorIs(t, err, ErrDailyCapExceeded)
	})
}

func TestExecute_StatusResolution(t *testing.T) {
	t.Run("student booking needs approval", func(t *testing.T) {
		classroom := activeClassroom()
		classroom.RequiresApproval = true

		uc := newTestUseCase(
			&fakeBookingRepo{},
			&fakeClassroomRepo{classroom: classroom},
			&fakeSettingsRepo{settings: defaultTestSettings()},
			&fakePublisher{},
		)

		resp, err := uc.Execute(context.Background(), validRequest(student()))
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusPending), resp.Status)
	})

	t.Run("admin booking is auto-confirmed", func(t *testing.T) {
		classroom := activeClassroom()
		classroom.RequiresApproval = true

		uc := newTestUseCase(
			&fakeBookingRepo{},
			&fakeClassroomRepo{classroom: classroom},
			&fakeSettingsRepo{settings: defaultTestSettings()},
			&fakePublisher{},
		)

		resp, err := uc.Execute(context.Background(), validRequest(admin()))
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	})
}

func TestExecute_ClassroomChecks(t *testing.T) {
	t.Run("classroom not found", func(t *testing.T) {
		uc := newTestUseCase(
			&fakeBookingRepo{},
			&fakeClassroomRepo{err: storage.ErrClassroomNotFound},
			&fakeSettingsRepo{settings: defaultTestSettings()},
			&fakePublisher{},
		)

		_, err := uc.Execute(context.Background(), validRequest(student()))
		assert.ErrorIs(t, err, ErrClassroomNotFound)
	})

	t.Run("inactive classroom", func(t *testing.T) {
		classroom := activeClassroom()
		classroom.Active = false

		uc := newTestUseCase(
			&fakeBookingRepo{},
			&fakeClassroomRepo{classroom: classroom},
			&fakeSettingsRepo{settings: defaultTestSettings()},
			&fakePublisher{},
		)

		_, err := uc.Execute(context.Background(), validRequest(student()))
		assert.ErrorIs(t, err, ErrClassroomInactive)
	})

	t.Run("admin-only classroom rejects students", func(t *testing.T) {
		classroom := activeClassroom()
		classroom.Permission = domain.PermissionAdminOnly

		uc := newTestUseCase(
			&fakeBookingRepo{},
			&fakeClassroomRepo{classroom: classroom},
			&fakeSettingsRepo{settings: defaultTestSettings()},
			&fakePublisher{},
		)

		_, err := uc.Execute(context.Background(), validRequest(student()))
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("admin-only classroom allows admins", func(t *testing.T) {
		classroom := activeClassroom()
		classroom.Permission = domain.PermissionAdminOnly

		uc := newTestUseCase(
			&fakeBookingRepo{},
			&fakeClassroomRepo{classroom: classroom},
			&fakeSettingsRepo{settings: defaultTestSettings()},
			&fakePublisher{},
		)

		_, err := uc.Execute(context.Background(), validRequest(admin()))
		assert.NoError(t, err)
	})
}

func TestExecute_TimeValidation(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeClassroomRepo{classroom: activeClassroom()},
		&fakeSettingsRepo{settings: defaultTestSettings()},
		&fakePublisher{},
	)

	t.Run("start must be before end", func(t *testing.T) {
		req := validRequest(student())
		req.StartTime = "11:00"
		req.EndTime = "10:00"

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("zero-length interval", func(t *testing.T) {
		req := validRequest(student())
		req.StartTime = "10:00"
		req.EndTime = "10:00"

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("outside operating hours", func(t *testing.T) {
		req := validRequest(student())
		req.StartTime = "07:00"
		req.EndTime = "08:00"

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrOutsideOperatingHours)
	})

	t.Run("operating hours reported before inverted interval", func(t *testing.T) {
		// Интервал и перевернут, и выходит за рабочие часы:
		// первой причиной отказа должны быть рабочие часы
		req := validRequest(student())
		req.StartTime = "19:00"
		req.EndTime = "18:30"

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrOutsideOperatingHours)
	})

	t.Run("end exactly at operating end is allowed", func(t *testing.T) {
		req := validRequest(student())
		req.StartTime = "17:00"
		req.EndTime = "18:00"

		_, err := uc.Execute(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("past date is rejected", func(t *testing.T) {
		req := validRequest(student())
		req.Date = testNow.AddDate(0, 0, -1)

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("booking for today is allowed", func(t *testing.T) {
		req := validRequest(student())
		req.Date = testNow

		_, err := uc.Execute(context.Background(), req)
		assert.NoError(t, err)
	})
}

func TestExecute_SettingsFallback(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeClassroomRepo{classroom: activeClassroom()},
		&fakeSettingsRepo{err: settingsStorage.ErrSettingsNotFound},
		&fakePublisher{},
	)

	// Без сохранённых настроек действуют дефолтные рабочие часы 08:00-18:00
	resp, err := uc.Execute(context.Background(), validRequest(student()))
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
}

func TestExecute_PublishFailureDoesNotFailBooking(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeClassroomRepo{classroom: activeClassroom()},
		&fakeSettingsRepo{settings: defaultTestSettings()},
		&fakePublisher{err: errors.New("broker unavailable")},
	)

	resp, err := uc.Execute(context.Background(), validRequest(student()))
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
}

func TestExecute_InputValidation(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeClassroomRepo{classroom: activeClassroom()},
		&fakeSettingsRepo{settings: defaultTestSettings()},
		&fakePublisher{},
	)

	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{name: "zero classroom id", mutate: func(r *Request) { r.ClassroomID = 0 }},
		{name: "zero user id", mutate: func(r *Request) { r.User.ID = 0 }},
		{name: "unknown role", mutate: func(r *Request) { r.User.Role = "teacher" }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "empty start time", mutate: func(r *Request) { r.StartTime = "" }},
		{name: "empty end time", mutate: func(r *Request) { r.EndTime = "" }},
		{name: "malformed start time", mutate: func(r *Request) { r.StartTime = "8am" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(student())
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
