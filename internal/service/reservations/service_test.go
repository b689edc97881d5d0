package reservations

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanieLevy/RamelBarbershop-sub005/internal/domain"
	reservationRepo "github.com/DanieLevy/RamelBarbershop-sub005/internal/infra/storage/reservation"
	"github.com/DanieLevy/RamelBarbershop-sub005/internal/integrations/pushservice"
	"github.com/DanieLevy/RamelBarbershop-sub005/internal/integrations/userservice"
	"github.com/DanieLevy/RamelBarbershop-sub005/internal/schedtime"
	"github.com/DanieLevy/RamelBarbershop-sub005/internal/service/reservations/models"
)

// Фейки зависимостей

type fakeReservationRepo struct {
	reservation *domain.Reservation
	getErr      error

	dayReservations []*domain.Reservation
	gotInclude      bool

	cancelErr   error
	cancelCalls int
	gotReason   string
}

func (f *fakeReservationRepo) GetByID(_ context.Context, _ int64) (*domain.Reservation, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.reservation, nil
}

func (f *fakeReservationRepo) GetByBarberForDay(_ context.Context, _ int64, _, _ time.Time, includeTerminal bool) ([]*domain.Reservation, error) {
	f.gotInclude = includeTerminal
	return f.dayReservations, nil
}

func (f *fakeReservationRepo) Cancel(_ context.Context, _ int64, reason string) error {
	f.cancelCalls++
	f.gotReason = reason
	return f.cancelErr
}

type fakeUserClient struct {
	users map[int64]*userservice.User
}

func (f *fakeUserClient) GetUser(_ context.Context, userID int64) (*userservice.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, userservice.ErrUserNotFound
	}
	return user, nil
}

type fakePushClient struct {
	notifications []*pushservice.Notification
	err           error
}

func (f *fakePushClient) Notify(_ context.Context, n *pushservice.Notification) error {
	f.notifications = append(f.notifications, n)
	return f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Тестовое окружение

const (
	customerID = int64(42)
	barberID   = int64(7)
	adminID    = int64(1)
	strangerID = int64(99)
)

type testEnv struct {
	normalizer *schedtime.Normalizer
	repo       *fakeReservationRepo
	users      *fakeUserClient
	push       *fakePushClient
	service    *Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	n, err := schedtime.NewNormalizer("Asia/Jerusalem")
	require.NoError(t, err)

	env := &testEnv{
		normalizer: n,
		repo:       &fakeReservationRepo{},
		push:       &fakePushClient{},
		users: &fakeUserClient{users: map[int64]*userservice.User{
			customerID: {ID: customerID, Role: userservice.RoleCustomer},
			barberID:   {ID: barberID, Role: userservice.RoleBarber},
			adminID:    {ID: adminID, Role: userservice.RoleAdmin},
			strangerID: {ID: strangerID, Role: userservice.RoleCustomer},
		}},
	}

	start := time.Date(2026, 8, 30, 10, 0, 0, 0, n.Location())
	env.repo.reservation = &domain.Reservation{
		ID:            10,
		BarberID:      barberID,
		CustomerID:    customerID,
		ServiceID:     3,
		DateTimestamp: time.Date(2026, 8, 30, 0, 0, 0, 0, n.Location()),
		TimeTimestamp: start,
		Status:        domain.StatusConfirmed,
		Version:       2,
		ServiceName:   "Haircut",
		ServicePrice:  80,
	}

	env.service = NewService(env.repo, env.users, env.push, n, nopLogger{})
	return env
}

func TestGetByID(t *testing.T) {
	t.Run("owner sees own reservation", func(t *testing.T) {
		env := newTestEnv(t)

		resp, err := env.service.GetByID(context.Background(), 10, customerID)
		require.NoError(t, err)

		assert.Equal(t, int64(10), resp.ID)
		assert.Equal(t, "2026-08-30", resp.Date)
		assert.Equal(t, "10:00", resp.StartTime)
		assert.Equal(t, int64(2), resp.Version)
	})

	t.Run("barber and admin allowed", func(t *testing.T) {
		env := newTestEnv(t)

		for _, userID := range []int64{barberID, adminID} {
			_, err := env.service.GetByID(context.Background(), 10, userID)
			require.NoError(t, err, "user %d", userID)
		}
	})

	t.Run("stranger denied", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.service.GetByID(context.Background(), 10, strangerID)
		require.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("not found", func(t *testing.T) {
		env := newTestEnv(t)
		env.repo.getErr = reservationRepo.ErrReservationNotFound

		_, err := env.service.GetByID(context.Background(), 10, customerID)
		require.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestGetBarberReservations(t *testing.T) {
	date := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("barber sees own day", func(t *testing.T) {
		env := newTestEnv(t)
		env.repo.dayReservations = []*domain.Reservation{env.repo.reservation}

		resp, err := env.service.GetBarberReservations(context.Background(), &models.GetBarberReservationsRequest{
			BarberID: barberID,
			UserID:   barberID,
			Date:     date,
		})
		require.NoError(t, err)

		require.Len(t, resp.Reservations, 1)
		assert.False(t, env.repo.gotInclude)
	})

	t.Run("include inactive passed through", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.service.GetBarberReservations(context.Background(), &models.GetBarberReservationsRequest{
			BarberID:        barberID,
			UserID:          adminID,
			Date:            date,
			IncludeInactive: true,
		})
		require.NoError(t, err)
		assert.True(t, env.repo.gotInclude)
	})

	t.Run("customer denied", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.service.GetBarberReservations(context.Background(), &models.GetBarberReservationsRequest{
			BarberID: barberID,
			UserID:   customerID,
			Date:     date,
		})
		require.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("other barber denied", func(t *testing.T) {
		env := newTestEnv(t)
		otherBarber := int64(8)
		env.users.users[otherBarber] = &userservice.User{ID: otherBarber, Role: userservice.RoleBarber}

		_, err := env.service.GetBarberReservations(context.Background(), &models.GetBarberReservationsRequest{
			BarberID: barberID,
			UserID:   otherBarber,
			Date:     date,
		})
		require.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestCancel(t *testing.T) {
	t.Run("customer cancels own reservation", func(t *testing.T) {
		env := newTestEnv(t)

		err := env.service.Cancel(context.Background(), 10, &models.CancelReservationRequest{
			UserID:             customerID,
			CancellationReason: "running late",
		})
		require.NoError(t, err)

		assert.Equal(t, 1, env.repo.cancelCalls)
		assert.Equal(t, "running late", env.repo.gotReason)

		// Уведомлена вторая сторона - барбер
		require.Len(t, env.push.notifications, 1)
		n := env.push.notifications[0]
		assert.Equal(t, pushservice.EventCancelled, n.Event)
		assert.Equal(t, barberID, n.RecipientID)
		assert.Equal(t, customerID, n.InitiatorID)
	})

	t.Run("barber cancel notifies customer", func(t *testing.T) {
		env := newTestEnv(t)

		err := env.service.Cancel(context.Background(), 10, &models.CancelReservationRequest{
			UserID:             barberID,
			CancellationReason: "sick day",
		})
		require.NoError(t, err)

		require.Len(t, env.push.notifications, 1)
		assert.Equal(t, customerID, env.push.notifications[0].RecipientID)
	})

	t.Run("already cancelled", func(t *testing.T) {
		env := newTestEnv(t)
		env.repo.reservation.Status = domain.StatusCancelled

		err := env.service.Cancel(context.Background(), 10, &models.CancelReservationRequest{UserID: customerID})
		require.ErrorIs(t, err, ErrCannotCancel)
		assert.Zero(t, env.repo.cancelCalls)
	})

	t.Run("stranger denied", func(t *testing.T) {
		env := newTestEnv(t)

		err := env.service.Cancel(context.Background(), 10, &models.CancelReservationRequest{UserID: strangerID})
		require.ErrorIs(t, err, ErrAccessDenied)
		assert.Zero(t, env.repo.cancelCalls)
		assert.Empty(t, env.push.notifications)
	})

	t.Run("push failure does not surface", func(t *testing.T) {
		env := newTestEnv(t)
		env.push.err = fmt.Errorf("push service down")

		err := env.service.Cancel(context.Background(), 10, &models.CancelReservationRequest{UserID: customerID})
		require.NoError(t, err)
	})
}
