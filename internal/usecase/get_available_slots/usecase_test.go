package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClassroomService/internal/domain"
	storage "github.com/m04kA/SMC-ClassroomService/internal/infra/storage/classroom"
	settingsStorage "github.com/m04kA/SMC-ClassroomService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-ClassroomService/pkg/types"
)

// Фейки зависимостей use case

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetByClassroomWithFilter(_ context.Context, _ domain.ClassroomBookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeClassroomRepo struct {
	err error
}

func (f *fakeClassroomRepo) GetByID(_ context.Context, id int64) (*domain.Classroom, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Classroom{ID: id, Name: "Room 101", Active: true}, nil
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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testDate() time.Time {
	return time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC)
}

func defaultTestSettings() *domain.Settings {
	return &domain.Settings{
		OperatingStart:       "08:00",
		OperatingEnd:         "18:00",
		DefaultMaxTimePerDay: 60,
		SlotDurationMinutes:  15,
	}
}

// Тесты

func TestExecute_EmptyDay(t *testing.T) {
	uc := NewUseCase(
		&fakeBookingRepo{},
		&fakeClassroomRepo{},
		&fakeSettingsRepo{settings: defaultTestSettings()},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{ClassroomID: 1, Date: testDate()})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ClassroomID)
	assert.Equal(t, 15, resp.SlotDuration)
	assert.Equal(t, types.TimeString("08:00"), resp.OperatingStart)
	assert.Equal(t, types.TimeString("18:00"), resp.OperatingEnd)

	// 10 часов * 4 слота
	require.Len(t, resp.Slots, 40)
	for _, slot := range resp.Slots {
		assert.True(t, slot.Available)
		assert.Nil(t, slot.BookingID)
	}
	assert.Equal(t, types.TimeString("17:45"), resp.Slots[39].StartTime)
	assert.Equal(t, types.TimeString("18:00"), resp.Slots[39].EndTime)
}

func TestExecute_OccupiedSlotsCarryBookingInfo(t *testing.T) {
	booking := &domain.Booking{
		ID:        7,
		UserName:  "Ivan",
		StartTime: "10:00",
		EndTime:   "11:00",
		Status:    domain.StatusPending,
	}
	uc := NewUseCase(
		&fakeBookingRepo{bookings: []*domain.Booking{booking}},
		&fakeClassroomRepo{},
		&fakeSettingsRepo{settings: defaultTestSettings()},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{ClassroomID: 1, Date: testDate()})
	require.NoError(t, err)

	occupied := 0
	for _, slot := range resp.Slots {
		if slot.Available {
			continue
		}
		occupied++
		require.NotNil(t, slot.BookingID)
		assert.Equal(t, int64(7), *slot.BookingID)
		require.NotNil(t, slot.BookedBy)
		assert.Equal(t, "Ivan", *slot.BookedBy)
		require.NotNil(t, slot.Status)
		assert.Equal(t, string(domain.StatusPending), *slot.Status)
	}
	// Час с шагом 15 минут занимает 4 слота
	assert.Equal(t, 4, occupied)
}

func TestExecute_SettingsFallback(t *testing.T) {
	uc := NewUseCase(
		&fakeBookingRepo{},
		&fakeClassroomRepo{},
		&fakeSettingsRepo{err: settingsStorage.ErrSettingsNotFound},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{ClassroomID: 1, Date: testDate()})
	require.NoError(t, err)

	// Дефолтная сетка 08:00-18:00 с шагом 15 минут
	assert.Len(t, resp.Slots, 40)
	assert.Equal(t, domain.DefaultSlotDurationMinutes, resp.SlotDuration)
}

func TestExecute_ClassroomNotFound(t *testing.T) {
	uc := NewUseCase(
		&fakeBookingRepo{},
		&fakeClassroomRepo{err: storage.ErrClassroomNotFound},
		&fakeSettingsRepo{settings: defaultTestSettings()},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{ClassroomID: 1, Date: testDate()})
	assert.ErrorIs(t, err, ErrClassroomNotFound)
}

func TestExecute_InputValidation(t *testing.T) {
	uc := NewUseCase(
		&fakeBookingRepo{},
		&fakeClassroomRepo{},
		&fakeSettingsRepo{settings: defaultTestSettings()},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{ClassroomID: 0, Date: testDate()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ClassroomID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
