package resolve_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DanieLevy/RamelBarbershop-sub005/internal/domain"
	scheduleRepo "github.com/DanieLevy/RamelBarbershop-sub005/internal/infra/storage/schedule"
	userClient "github.com/DanieLevy/RamelBarbershop-sub005/internal/integrations/userservice"
	"github.com/DanieLevy/RamelBarbershop-sub005/internal/schedtime"
)

// UseCase use case разметки слотов барбера на день
//
// Единственный авторитетный алгоритм "что можно записать прямо сейчас".
// Чистое синхронное вычисление поверх снапшотов источников ограничений;
// ничего не пишет, результат - снапшот на момент чтения (advisory),
// окончательную проверку выполняет мутатор броней при записи.
type UseCase struct {
	scheduleRepo    ScheduleRepository
	reservationRepo ReservationRepository
	userClient      UserServiceClient
	normalizer      *schedtime.Normalizer
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	reservationRepo ReservationRepository,
	userClient UserServiceClient,
	normalizer *schedtime.Normalizer,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo:    scheduleRepo,
		reservationRepo: reservationRepo,
		userClient:      userClient,
		normalizer:      normalizer,
		timeProvider:    normalizer,
		logger:          logger,
	}
}

// Execute выполняет разметку слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ResolveAvailability: barber=%d, date=%s, exclude=%v",
		req.BarberID, req.Date.Format(domain.DateFormat), req.ExcludeReservationID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ResolveAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Читаем "сейчас" один раз на весь вызов
	now := uc.timeProvider.Now()

	// 3. Проверяем, что барбер существует
	barber, err := uc.userClient.GetUser(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			uc.logger.Warn("ResolveAvailability: barber id=%d not found", req.BarberID)
			return nil, ErrBarberNotFound
		}
		uc.logger.Error("ResolveAvailability: failed to get barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
	}
	if !barber.IsBarber() {
		uc.logger.Warn("ResolveAvailability: user id=%d is not a barber", req.BarberID)
		return nil, ErrBarberNotFound
	}

	// 4. Нормализуем целевой день в таймзоне барбершопа
	dayStart, err := uc.normalizer.DayStart(req.Date)
	if err != nil {
		uc.logger.Warn("ResolveAvailability: invalid date: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimestamp, err)
	}
	dayEnd, err := uc.normalizer.DayEnd(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimestamp, err)
	}
	dateKey, err := uc.normalizer.DateKey(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimestamp, err)
	}
	weekdayKey, err := uc.normalizer.DayKey(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimestamp, err)
	}

	// 5. Закрытия: день внутри Closure барбершопа или барбера - пустой результат
	closures, err := uc.scheduleRepo.GetClosures(ctx, req.BarberID, dateKey)
	if err != nil {
		uc.logger.Error("ResolveAvailability: failed to get closures: %v", err)
		return nil, fmt.Errorf("%w: failed to get closures: %v", ErrInternal, err)
	}
	if reason, closed := resolveClosure(closures, dateKey); closed {
		uc.logger.Info("ResolveAvailability: date %s is closed for barber=%d", dateKey, req.BarberID)
		return emptyResponse(req.BarberID, dayStart, reason), nil
	}

	// 6. Эффективные рабочие часы на целевой день
	workDays, err := uc.scheduleRepo.GetWorkDays(ctx, req.BarberID)
	if err != nil {
		uc.logger.Error("ResolveAvailability: failed to get work days: %v", err)
		return nil, fmt.Errorf("%w: failed to get work days: %v", ErrInternal, err)
	}

	hours, working, err := uc.resolveWorkingHours(ctx, workDays, weekdayKey)
	if err != nil {
		return nil, err
	}
	if !working {
		uc.logger.Info("ResolveAvailability: barber=%d does not work on %s", req.BarberID, weekdayKey)
		return emptyResponse(req.BarberID, dayStart, nil), nil
	}

	// 7. Генерируем сырые моменты слотов
	slotTimes, err := generateSlotTimes(uc.normalizer, dayStart, hours.Start, hours.End)
	if err != nil {
		uc.logger.Error("ResolveAvailability: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	// 8. Занятые слоты: confirmed брони барбера за день
	// Редактируемая бронь исключается из занятых, её слот помечается current
	reservations, err := uc.reservationRepo.GetConfirmedTimes(ctx, req.BarberID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("ResolveAvailability: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	reserved := make(map[int64]struct{}, len(reservations))
	var currentKey *time.Time
	for _, rt := range reservations {
		key, err := uc.normalizer.SlotKey(rt.Time)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to compute slot key: %v", ErrInternal, err)
		}
		if req.ExcludeReservationID != nil && rt.ID == *req.ExcludeReservationID {
			currentKey = &key
			continue
		}
		reserved[key.Unix()] = struct{}{}
	}

	// 9. Перерывы барбера на целевой день
	breakouts, err := uc.scheduleRepo.GetBreakoutsForDate(ctx, req.BarberID, dateKey, weekdayKey)
	if err != nil {
		uc.logger.Error("ResolveAvailability: failed to get breakouts: %v", err)
		return nil, fmt.Errorf("%w: failed to get breakouts: %v", ErrInternal, err)
	}
	intervals, err := resolveBreakoutIntervals(uc.normalizer, dayStart, dateKey, weekdayKey, breakouts)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve breakouts: %v", ErrInternal, err)
	}

	// 10. Классифицируем каждый слот
	all := make([]domain.Slot, 0, len(slotTimes))
	available := make([]domain.Slot, 0, len(slotTimes))

	for _, st := range slotTimes {
		slot := domain.Slot{
			Timestamp: st,
			Status:    classifySlot(st, now, currentKey, reserved, intervals),
		}
		all = append(all, slot)
		if slot.IsAvailable() {
			available = append(available, slot)
		}
	}

	uc.logger.Info("ResolveAvailability: barber=%d, date=%s: %d slots, %d available",
		req.BarberID, dateKey, len(all), len(available))

	return &Response{
		BarberID:  req.BarberID,
		Date:      dayStart,
		All:       all,
		Available: available,
	}, nil
}

// resolveWorkingHours определяет эффективные рабочие часы на день недели
//
// Строка WorkDay с is_working=false - явно нерабочий день, fallback на часы
// барбершопа НЕ выполняется. Отсутствие строки - барбер работает по дефолтным
// часам барбершопа.
func (uc *UseCase) resolveWorkingHours(ctx context.Context, workDays []*domain.WorkDay, weekdayKey string) (*domain.ShopHours, bool, error) {
	for _, wd := range workDays {
		if wd.Weekday != weekdayKey {
			continue
		}
		if !wd.IsWorking {
			return nil, false, nil
		}
		if wd.HasHours() {
			return &domain.ShopHours{Start: wd.StartTime, End: wd.EndTime}, true, nil
		}
		// is_working=true без часов - пользуемся часами барбершопа
		break
	}

	hours, err := uc.scheduleRepo.GetShopDefaultHours(ctx)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrShopHoursNotFound) {
			return &domain.ShopHours{Start: domain.DefaultShopOpenTime, End: domain.DefaultShopCloseTime}, true, nil
		}
		uc.logger.Error("ResolveAvailability: failed to get shop hours: %v", err)
		return nil, false, fmt.Errorf("%w: failed to get shop hours: %v", ErrInternal, err)
	}

	return hours, true, nil
}

// resolveClosure проверяет, закрыт ли день
// При одновременном закрытии барбершопа и барбера причина барбершопа важнее
func resolveClosure(closures *domain.ClosureSet, dateKey string) (*string, bool) {
	for _, c := range closures.Shop {
		if c.Covers(dateKey) {
			return c.Reason, true
		}
	}
	for _, c := range closures.Barber {
		if c.Covers(dateKey) {
			return c.Reason, true
		}
	}
	return nil, false
}
