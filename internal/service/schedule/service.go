package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/DanieLevy/RamelBarbershop-sub005/internal/domain"
	scheduleRepo "github.com/DanieLevy/RamelBarbershop-sub005/internal/infra/storage/schedule"
	userClient "github.com/DanieLevy/RamelBarbershop-sub005/internal/integrations/userservice"
	"github.com/DanieLevy/RamelBarbershop-sub005/internal/schedtime"
	"github.com/DanieLevy/RamelBarbershop-sub005/internal/service/schedule/models"
)

// weekdayOrder порядок дней в ответе, неделя барбершопа начинается с воскресенья
var weekdayOrder = []string{
	domain.WeekdaySunday,
	domain.WeekdayMonday,
	domain.WeekdayTuesday,
	domain.WeekdayWednesday,
	domain.WeekdayThursday,
	domain.WeekdayFriday,
	domain.WeekdaySaturday,
}

// Service сервис расписания барбера: read-only представление источников
// ограничений (рабочие часы + предстоящие закрытия) для публичной витрины
type Service struct {
	scheduleRepo ScheduleRepository
	userClient   UserServiceClient
	normalizer   *schedtime.Normalizer
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	scheduleRepo ScheduleRepository,
	userClient UserServiceClient,
	normalizer *schedtime.Normalizer,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		userClient:   userClient,
		normalizer:   normalizer,
		logger:       logger,
	}
}

// GetBarberSchedule получает расписание барбера на неделю и предстоящие закрытия
func (s *Service) GetBarberSchedule(ctx context.Context, barberID int64) (*models.BarberScheduleResponse, error) {
	s.logger.Info("GetBarberSchedule: fetching schedule for barber=%d", barberID)

	if barberID <= 0 {
		return nil, fmt.Errorf("%w: barber_id must be positive", ErrInvalidInput)
	}

	barber, err := s.userClient.GetUser(ctx, barberID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			s.logger.Warn("GetBarberSchedule: barber id=%d not found", barberID)
			return nil, ErrBarberNotFound
		}
		s.logger.Error("GetBarberSchedule: failed to get barber id=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
	}
	if !barber.IsBarber() {
		s.logger.Warn("GetBarberSchedule: user id=%d is not a barber", barberID)
		return nil, ErrBarberNotFound
	}

	workDays, err := s.scheduleRepo.GetWorkDays(ctx, barberID)
	if err != nil {
		s.logger.Error("GetBarberSchedule: failed to get work days for barber=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: failed to get work days: %v", ErrInternal, err)
	}

	shopHours, err := s.scheduleRepo.GetShopDefaultHours(ctx)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrShopHoursNotFound) {
			s.logger.Error("GetBarberSchedule: failed to get shop hours: %v", err)
			return nil, fmt.Errorf("%w: failed to get shop hours: %v", ErrInternal, err)
		}
		shopHours = &domain.ShopHours{Start: domain.DefaultShopOpenTime, End: domain.DefaultShopCloseTime}
	}

	todayKey, err := s.normalizer.DateKey(s.normalizer.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve current date: %v", ErrInternal, err)
	}
	closures, err := s.scheduleRepo.GetClosures(ctx, barberID, todayKey)
	if err != nil {
		s.logger.Error("GetBarberSchedule: failed to get closures for barber=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: failed to get closures: %v", ErrInternal, err)
	}

	resp := &models.BarberScheduleResponse{
		BarberID: barberID,
		WorkDays: buildWorkDayViews(workDays, shopHours),
		Closures: buildClosureViews(closures),
	}

	s.logger.Info("GetBarberSchedule: successfully fetched schedule for barber=%d, %d closures",
		barberID, len(resp.Closures))
	return resp, nil
}

// buildWorkDayViews собирает недельное представление
// Семантика как у резолвера: нет строки - часы барбершопа,
// IsWorking=false - явный выходной, строка без часов - часы барбершопа
func buildWorkDayViews(workDays []*domain.WorkDay, shopHours *domain.ShopHours) []models.WorkDayView {
	byWeekday := make(map[string]*domain.WorkDay, len(workDays))
	for _, wd := range workDays {
		byWeekday[wd.Weekday] = wd
	}

	views := make([]models.WorkDayView, 0, len(weekdayOrder))
	for _, weekday := range weekdayOrder {
		view := models.WorkDayView{Weekday: weekday}

		wd, ok := byWeekday[weekday]
		switch {
		case ok && !wd.IsWorking:
			view.IsWorking = false
		case ok && wd.HasHours():
			view.IsWorking = true
			view.StartTime = wd.StartTime.String()
			view.EndTime = wd.EndTime.String()
		default:
			view.IsWorking = true
			view.StartTime = shopHours.Start.String()
			view.EndTime = shopHours.End.String()
		}

		views = append(views, view)
	}

	return views
}

// buildClosureViews собирает список предстоящих закрытий, сначала общие
func buildClosureViews(closures *domain.ClosureSet) []models.ClosureView {
	views := make([]models.ClosureView, 0, len(closures.Shop)+len(closures.Barber))

	for _, c := range closures.Shop {
		views = append(views, closureView(c))
	}
	for _, c := range closures.Barber {
		views = append(views, closureView(c))
	}

	return views
}

func closureView(c *domain.Closure) models.ClosureView {
	return models.ClosureView{
		StartDate: c.StartDate.Format(domain.DateFormat),
		EndDate:   c.EndDate.Format(domain.DateFormat),
		Reason:    c.Reason,
		ShopWide:  c.IsShopWide(),
	}
}
