package resolve_availability

import (
	"context"
	"time"

	"github.com/DanieLevy/RamelBarbershop-sub005/internal/domain"
	"github.com/DanieLevy/RamelBarbershop-sub005/internal/integrations/userservice"
)

// ScheduleRepository интерфейс репозитория источников ограничений расписания
// Возвращает консистентные снапшоты на момент начала вызова; актуальность
// перепроверяется при записи мутатором броней
type ScheduleRepository interface {
	GetWorkDays(ctx context.Context, barberID int64) ([]*domain.WorkDay, error)
	GetBreakoutsForDate(ctx context.Context, barberID int64, dateKey, weekdayKey string) ([]*domain.Breakout, error)
	GetClosures(ctx context.Context, barberID int64, fromDate string) (*domain.ClosureSet, error)
	GetShopDefaultHours(ctx context.Context) (*domain.ShopHours, error)
}

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	// GetConfirmedTimes возвращает (id, время) confirmed броней барбера в [dayStart, dayEnd)
	GetConfirmedTimes(ctx context.Context, barberID int64, dayStart, dayEnd time.Time) ([]domain.ReservationTime, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUser(ctx context.Context, userID int64) (*userservice.User, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
// "Сейчас" читается один раз на вызов, чтобы вся разметка слотов была
// внутренне консистентной, даже если реальное время сдвинулось по ходу вычисления
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
