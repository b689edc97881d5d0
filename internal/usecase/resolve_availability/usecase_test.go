package resolve_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanieLevy/RamelBarbershop-sub005/internal/domain"
	"github.com/DanieLevy/RamelBarbershop-sub005/internal/integrations/userservice"
	"github.com/DanieLevy/RamelBarbershop-sub005/internal/schedtime"
	"github.com/DanieLevy/RamelBarbershop-sub005/pkg/ptr"
	"github.com/DanieLevy/RamelBarbershop-sub005/pkg/types"
)

// Фейки зависимостей

type fakeScheduleRepo struct {
	workDays  []*domain.WorkDay
	breakouts []*domain.Breakout
	closures  *domain.ClosureSet
	shopHours *domain.ShopHours
	hoursErr  error
}

func (f *fakeScheduleRepo) GetWorkDays(_ context.Context, _ int64) ([]*domain.WorkDay, error) {
	return f.workDays, nil
}

func (f *fakeScheduleRepo) GetBreakoutsForDate(_ context.Context, _ int64, _, _ string) ([]*domain.Breakout, error) {
	return f.breakouts, nil
}

func (f *fakeScheduleRepo) GetClosures(_ context.Context, _ int64, _ string) (*domain.ClosureSet, error) {
	if f.closures != nil {
		return f.closures, nil
	}
	return &domain.ClosureSet{}, nil
}

func (f *fakeScheduleRepo) GetShopDefaultHours(_ context.Context) (*domain.ShopHours, error) {
	if f.hoursErr != nil {
		return nil, f.hoursErr
	}
	if f.shopHours != nil {
		return f.shopHours, nil
	}
	return &domain.ShopHours{Start: "09:00", End: "21:00"}, nil
}

type fakeReservationRepo struct {
	times []domain.ReservationTime
}

func (f *fakeReservationRepo) GetConfirmedTimes(_ context.Context, _ int64, _, _ time.Time) ([]domain.ReservationTime, error) {
	return f.times, nil
}

type fakeUserClient struct {
	user *userservice.User
	err  error
}

func (f *fakeUserClient) GetUser(_ context.Context, _ int64) (*userservice.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Вспомогательные конструкторы

func barberUser() *userservice.User {
	return &userservice.User{ID: 7, Role: userservice.RoleBarber}
}

type testEnv struct {
	normalizer *schedtime.Normalizer
	dayStart   time.Time
	schedule   *fakeScheduleRepo
	repo       *fakeReservationRepo
	users      *fakeUserClient
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	n, err := schedtime.NewNormalizer("Asia/Jerusalem")
	require.NoError(t, err)

	// 2026-08-30 - воскресенье
	dayStart, err := n.DayStart(time.Date(2026, 8, 30, 12, 0, 0, 0, n.Location()))
	require.NoError(t, err)

	return &testEnv{
		normalizer: n,
		dayStart:   dayStart,
		schedule:   &fakeScheduleRepo{},
		repo:       &fakeReservationRepo{},
		users:      &fakeUserClient{user: barberUser()},
	}
}

func (e *testEnv) useCase(now time.Time) *UseCase {
	uc := NewUseCase(e.schedule, e.repo, e.users, e.normalizer, nopLogger{})
	uc.timeProvider = fixedClock{now: now}
	return uc
}

func (e *testEnv) at(t *testing.T, hhmm string) time.Time {
	t.Helper()
	instant, err := e.normalizer.At(e.dayStart, types.TimeString(hhmm))
	require.NoError(t, err)
	return instant
}

func TestExecute_SundayMorningShift(t *testing.T) {
	env := newTestEnv(t)

	env.schedule.workDays = []*domain.WorkDay{
		{BarberID: 7, Weekday: domain.WeekdaySunday, IsWorking: true, StartTime: "09:00", EndTime: "13:00"},
	}
	env.schedule.breakouts = []*domain.Breakout{
		{BarberID: 7, Weekday: ptr.Ptr(domain.WeekdaySunday), StartTime: "11:00", EndTime: "11:30"},
	}
	env.repo.times = []domain.ReservationTime{
		{ID: 100, Time: env.at(t, "10:00")},
	}

	// "Сейчас" за день до целевой даты - ни один слот не past
	uc := env.useCase(env.dayStart.AddDate(0, 0, -1))

	resp, err := uc.Execute(context.Background(), &Request{BarberID: 7, Date: env.dayStart})
	require.NoError(t, err)

	require.Len(t, resp.All, 8)
	assert.Len(t, resp.Available, 6)
	assert.Nil(t, resp.ClosedReason)

	statusAt := make(map[int64]domain.SlotStatus, len(resp.All))
	for _, slot := range resp.All {
		statusAt[slot.Timestamp.Unix()] = slot.Status
	}

	assert.Equal(t, domain.SlotReserved, statusAt[env.at(t, "10:00").Unix()])
	assert.Equal(t, domain.SlotBreakout, statusAt[env.at(t, "11:00").Unix()])
	assert.Equal(t, domain.SlotAvailable, statusAt[env.at(t, "09:00").Unix()])
	assert.Equal(t, domain.SlotAvailable, statusAt[env.at(t, "12:30").Unix()])
}

func TestExecute_PastSlotsExcludedToday(t *testing.T) {
	env := newTestEnv(t)

	env.schedule.workDays = []*domain.WorkDay{
		{BarberID: 7, Weekday: domain.WeekdaySunday, IsWorking: true, StartTime: "09:00", EndTime: "13:00"},
	}

	// Сейчас 10:45 целевого дня: слоты 09:00, 09:30, 10:00, 10:30 - past
	uc := env.useCase(env.at(t, "10:45"))

	resp, err := uc.Execute(context.Background(), &Request{BarberID: 7, Date: env.dayStart})
	require.NoError(t, err)

	require.Len(t, resp.All, 8)
	assert.Len(t, resp.Available, 4)

	for _, slot := range resp.All {
		if slot.Timestamp.Before(env.at(t, "10:45")) {
			assert.Equal(t, domain.SlotPast, slot.Status, "slot %s", slot.Timestamp)
		} else {
			assert.Equal(t, domain.SlotAvailable, slot.Status, "slot %s", slot.Timestamp)
		}
	}
}

func TestExecute_SelfExclusion(t *testing.T) {
	env := newTestEnv(t)

	env.schedule.workDays = []*domain.WorkDay{
		{BarberID: 7, Weekday: domain.WeekdaySunday, IsWorking: true, StartTime: "09:00", EndTime: "13:00"},
	}
	env.repo.times = []domain.ReservationTime{
		{ID: 100, Time: env.at(t, "10:00")},
		{ID: 200, Time: env.at(t, "12:00")},
	}

	// Сейчас 11:00: собственный слот 10:00 уже в прошлом, но помечается current
	uc := env.useCase(env.at(t, "11:00"))

	resp, err := uc.Execute(context.Background(), &Request{
		BarberID:             7,
		Date:                 env.dayStart,
		ExcludeReservationID: ptr.Ptr(int64(100)),
	})
	require.NoError(t, err)

	statusAt := make(map[int64]domain.SlotStatus, len(resp.All))
	for _, slot := range resp.All {
		statusAt[slot.Timestamp.Unix()] = slot.Status
	}

	assert.Equal(t, domain.SlotCurrent, statusAt[env.at(t, "10:00").Unix()])
	assert.Equal(t, domain.SlotReserved, statusAt[env.at(t, "12:00").Unix()])
}

func TestExecute_ShopClosureWins(t *testing.T) {
	env := newTestEnv(t)

	shopReason := "renovation"
	barberReason := "vacation"
	env.schedule.closures = &domain.ClosureSet{
		Shop: []*domain.Closure{
			{StartDate: env.dayStart, EndDate: env.dayStart, Reason: &shopReason},
		},
		Barber: []*domain.Closure{
			{BarberID: ptr.Ptr(int64(7)), StartDate: env.dayStart, EndDate: env.dayStart, Reason: &barberReason},
		},
	}

	uc := env.useCase(env.dayStart)

	resp, err := uc.Execute(context.Background(), &Request{BarberID: 7, Date: env.dayStart})
	require.NoError(t, err)

	assert.Empty(t, resp.All)
	assert.Empty(t, resp.Available)
	require.NotNil(t, resp.ClosedReason)
	assert.Equal(t, shopReason, *resp.ClosedReason)
}

func TestExecute_BarberClosure(t *testing.T) {
	env := newTestEnv(t)

	reason := "vacation"
	env.schedule.closures = &domain.ClosureSet{
		Barber: []*domain.Closure{
			{BarberID: ptr.Ptr(int64(7)), StartDate: env.dayStart.AddDate(0, 0, -1), EndDate: env.dayStart.AddDate(0, 0, 3), Reason: &reason},
		},
	}

	uc := env.useCase(env.dayStart)

	resp, err := uc.Execute(context.Background(), &Request{BarberID: 7, Date: env.dayStart})
	require.NoError(t, err)

	assert.Empty(t, resp.All)
	require.NotNil(t, resp.ClosedReason)
	assert.Equal(t, reason, *resp.ClosedReason)
}

func TestExecute_ExplicitNonWorkingDay(t *testing.T) {
	env := newTestEnv(t)

	// Явный выходной: fallback на часы барбершопа не выполняется
	env.schedule.workDays = []*domain.WorkDay{
		{BarberID: 7, Weekday: domain.WeekdaySunday, IsWorking: false},
	}

	uc := env.useCase(env.dayStart)

	resp, err := uc.Execute(context.Background(), &Request{BarberID: 7, Date: env.dayStart})
	require.NoError(t, err)

	assert.Empty(t, resp.All)
	assert.Empty(t, resp.Available)
	assert.Nil(t, resp.ClosedReason)
}

func TestExecute_FallbackToShopHours(t *testing.T) {
	env := newTestEnv(t)

	// Нет строки WorkDay на воскресенье - работаем по часам барбершопа
	env.schedule.shopHours = &domain.ShopHours{Start: "10:00", End: "12:00"}

	uc := env.useCase(env.dayStart)

	resp, err := uc.Execute(context.Background(), &Request{BarberID: 7, Date: env.dayStart})
	require.NoError(t, err)

	require.Len(t, resp.All, 4)
	assert.True(t, resp.All[0].Timestamp.Equal(env.at(t, "10:00")))
}

func TestExecute_BarberNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.users.err = userservice.ErrUserNotFound

	uc := env.useCase(env.dayStart)

	_, err := uc.Execute(context.Background(), &Request{BarberID: 7, Date: env.dayStart})
	require.ErrorIs(t, err, ErrBarberNotFound)
}

func TestExecute_UserIsNotBarber(t *testing.T) {
	env := newTestEnv(t)
	env.users.user = &userservice.User{ID: 7, Role: userservice.RoleCustomer}

	uc := env.useCase(env.dayStart)

	_, err := uc.Execute(context.Background(), &Request{BarberID: 7, Date: env.dayStart})
	require.ErrorIs(t, err, ErrBarberNotFound)
}

func TestExecute_Validation(t *testing.T) {
	env := newTestEnv(t)
	uc := env.useCase(env.dayStart)

	_, err := uc.Execute(context.Background(), &Request{BarberID: 0, Date: env.dayStart})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{BarberID: 7})
	require.ErrorIs(t, err, ErrInvalidTimestamp)

	_, err = uc.Execute(context.Background(), &Request{BarberID: 7, Date: env.dayStart, ExcludeReservationID: ptr.Ptr(int64(-1))})
	require.ErrorIs(t, err, ErrInvalidInput)
}
