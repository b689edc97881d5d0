// Package schedule тонкий read-only доступ к источникам ограничений расписания:
// рабочие дни, перерывы, закрытия и дефолтные часы барбершопа.
//
// Транзакционные гарантии здесь не нужны: резолвер доступности работает
// со снапшотом на момент начала вызова, а актуальность перепроверяется
// при записи условным UPDATE в репозитории броней.
package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/DanieLevy/RamelBarbershop-sub005/internal/domain"
	"github.com/DanieLevy/RamelBarbershop-sub005/pkg/dbmetrics"
	"github.com/DanieLevy/RamelBarbershop-sub005/pkg/psqlbuilder"
)

// Repository репозиторий источников ограничений расписания
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWorkDays получает все строки рабочих часов барбера (до одной на день недели)
func (r *Repository) GetWorkDays(ctx context.Context, barberID int64) ([]*domain.WorkDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"barber_id",
		"weekday",
		"is_working",
		"start_time",
		"end_time",
		"created_at",
		"updated_at",
	).
		From("work_days").
		Where(squirrel.Eq{"barber_id": barberID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkDays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkDays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	workDays := make([]*domain.WorkDay, 0)
	for rows.Next() {
		var wd domain.WorkDay
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&wd.ID,
			&wd.BarberID,
			&wd.Weekday,
			&wd.IsWorking,
			&wd.StartTime,
			&wd.EndTime,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWorkDays - scan row: %v", ErrScanRow, err)
		}

		wd.CreatedAt = createdAt.Time
		wd.UpdatedAt = updatedAt.Time
		workDays = append(workDays, &wd)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWorkDays - rows error: %v", ErrScanRow, err)
	}

	return workDays, nil
}

// GetBreakoutsForDate получает перерывы барбера, действующие в указанный день:
// разовые с совпадающей датой и еженедельные с совпадающим днём недели
func (r *Repository) GetBreakoutsForDate(ctx context.Context, barberID int64, dateKey, weekdayKey string) ([]*domain.Breakout, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"barber_id",
		"breakout_date",
		"weekday",
		"start_time",
		"end_time",
		"created_at",
	).
		From("breakouts").
		Where(squirrel.Eq{"barber_id": barberID}).
		Where(squirrel.Or{
			squirrel.Expr("breakout_date = ?::date", dateKey),
			squirrel.Eq{"weekday": weekdayKey},
		}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBreakoutsForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBreakoutsForDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	breakouts := make([]*domain.Breakout, 0)
	for rows.Next() {
		var b domain.Breakout
		var createdAt sql.NullTime

		err := rows.Scan(
			&b.ID,
			&b.BarberID,
			&b.Date,
			&b.Weekday,
			&b.StartTime,
			&b.EndTime,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetBreakoutsForDate - scan row: %v", ErrScanRow, err)
		}

		b.CreatedAt = createdAt.Time
		breakouts = append(breakouts, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBreakoutsForDate - rows error: %v", ErrScanRow, err)
	}

	return breakouts, nil
}

// GetClosures получает закрытия, заканчивающиеся не раньше календарного дня
// fromDate (ключ YYYY-MM-DD в таймзоне барбершопа): общие для барбершопа
// (barber_id IS NULL) и персональные для барбера.
// Сравнение по календарному ключу, а не по моменту: DATE-колонка против
// timestamptz кастуется в полночь зоны сессии и может срезать последний день
func (r *Repository) GetClosures(ctx context.Context, barberID int64, fromDate string) (*domain.ClosureSet, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"barber_id",
		"start_date",
		"end_date",
		"reason",
		"created_at",
	).
		From("closures").
		Where(squirrel.GtOrEq{"end_date": fromDate}).
		Where(squirrel.Or{
			squirrel.Eq{"barber_id": nil},
			squirrel.Eq{"barber_id": barberID},
		}).
		OrderBy("start_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetClosures - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetClosures - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	set := &domain.ClosureSet{
		Shop:   make([]*domain.Closure, 0),
		Barber: make([]*domain.Closure, 0),
	}

	for rows.Next() {
		var c domain.Closure
		var createdAt sql.NullTime

		err := rows.Scan(
			&c.ID,
			&c.BarberID,
			&c.StartDate,
			&c.EndDate,
			&c.Reason,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetClosures - scan row: %v", ErrScanRow, err)
		}

		c.CreatedAt = createdAt.Time
		if c.IsShopWide() {
			set.Shop = append(set.Shop, &c)
		} else {
			set.Barber = append(set.Barber, &c)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetClosures - rows error: %v", ErrScanRow, err)
	}

	return set, nil
}

// GetShopDefaultHours получает дефолтные часы работы барбершопа из shop_settings
func (r *Repository) GetShopDefaultHours(ctx context.Context) (*domain.ShopHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("open_time", "close_time").
		From("shop_settings").
		OrderBy("id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetShopDefaultHours - build select query: %v", ErrBuildQuery, err)
	}

	var hours domain.ShopHours
	err = executor.QueryRowContext(ctx, query, args...).Scan(&hours.Start, &hours.End)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrShopHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetShopDefaultHours - scan row: %v", ErrScanRow, err)
	}

	return &hours, nil
}

// GetService получает услугу по ID
func (r *Repository) GetService(ctx context.Context, serviceID int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "price").
		From("services").
		Where(squirrel.Eq{"id": serviceID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var svc domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(&svc.ID, &svc.Name, &svc.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan row: %v", ErrScanRow, err)
	}

	return &svc, nil
}
