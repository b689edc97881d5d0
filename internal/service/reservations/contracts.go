package reservations

import (
	"context"
	"time"

	"github.com/DanieLevy/RamelBarbershop-sub005/internal/domain"
	"github.com/DanieLevy/RamelBarbershop-sub005/internal/integrations/pushservice"
	"github.com/DanieLevy/RamelBarbershop-sub005/internal/integrations/userservice"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByBarberForDay(ctx context.Context, barberID int64, dayStart, dayEnd time.Time, includeTerminal bool) ([]*domain.Reservation, error)
	Cancel(ctx context.Context, id int64, reason string) error
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUser(ctx context.Context, userID int64) (*userservice.User, error)
}

// PushServiceClient интерфейс клиента для PushService
type PushServiceClient interface {
	Notify(ctx context.Context, n *pushservice.Notification) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
