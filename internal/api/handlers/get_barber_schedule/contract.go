package get_barber_schedule

import (
	"context"

	"github.com/DanieLevy/RamelBarbershop-sub005/internal/service/schedule/models"
)

type ScheduleService interface {
	GetBarberSchedule(ctx context.Context, barberID int64) (*models.BarberScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
