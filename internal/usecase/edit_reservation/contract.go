package edit_reservation

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
	// EditGuarded выполняет единственный условный UPDATE: применяется только
	// если версия совпала И целевой слот не занят другой confirmed бронью
	EditGuarded(ctx context.Context, id int64, expectedVersion int64, patch domain.ReservationPatch) (*domain.Reservation, error)
}

// ScheduleRepository интерфейс для чтения услуг
type ScheduleRepository interface {
	GetService(ctx context.Context, serviceID int64) (*domain.Service, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUser(ctx context.Context, userID int64) (*userservice.User, error)
}

// PushServiceClient интерфейс клиента для PushService
// Вызывается fire-and-forget только после успешной мутации
type PushServiceClient interface {
	Notify(ctx context.Context, n *pushservice.Notification) error
}

// TransactionManager интерфейс для управления транзакциями
// Условная запись идёт через сериализуемую транзакцию: конкурентные
// EditGuarded на разных строках с одним целевым слотом не видят
// незакоммиченные записи друг друга на меньших уровнях изоляции
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
