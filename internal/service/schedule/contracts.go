package schedule

import (
	"context"

	"github.com/DanieLevy/RamelBarbershop-sub005/internal/domain"
	"github.com/DanieLevy/RamelBarbershop-sub005/internal/integrations/userservice"
)

// ScheduleRepository интерфейс репозитория источников ограничений расписания
type ScheduleRepository interface {
	GetWorkDays(ctx context.Context, barberID int64) ([]*domain.WorkDay, error)
	GetClosures(ctx context.Context, barberID int64, fromDate string) (*domain.ClosureSet, error)
	GetShopDefaultHours(ctx context.Context) (*domain.ShopHours, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUser(ctx context.Context, userID int64) (*userservice.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
