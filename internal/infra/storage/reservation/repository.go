package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/DanieLevy/RamelBarbershop-sub005/internal/domain"
	"github.com/DanieLevy/RamelBarbershop-sub005/pkg/dbmetrics"
	"github.com/DanieLevy/RamelBarbershop-sub005/pkg/psqlbuilder"
)

// reservationColumns полный набор колонок брони для SELECT/RETURNING
var reservationColumns = []string{
	"id",
	"barber_id",
	"customer_id",
	"service_id",
	"date_timestamp",
	"time_timestamp",
	"status",
	"version",
	"service_name",
	"service_price",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория броней
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает бронь по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	res, err := scanReservation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// GetConfirmedTimes получает (id, время начала) всех confirmed броней барбера
// в полуинтервале [dayStart, dayEnd)
// Используется резолвером доступности для разметки занятых слотов
func (r *Repository) GetConfirmedTimes(ctx context.Context, barberID int64, dayStart, dayEnd time.Time) ([]domain.ReservationTime, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "time_timestamp").
		From("reservations").
		Where(squirrel.Eq{"barber_id": barberID, "status": domain.StatusConfirmed}).
		Where(squirrel.GtOrEq{"time_timestamp": dayStart}).
		Where(squirrel.Lt{"time_timestamp": dayEnd}).
		OrderBy("time_timestamp ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedTimes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedTimes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	times := make([]domain.ReservationTime, 0)
	for rows.Next() {
		var rt domain.ReservationTime
		if err := rows.Scan(&rt.ID, &rt.Time); err != nil {
			return nil, fmt.Errorf("%w: GetConfirmedTimes - scan row: %v", ErrScanRow, err)
		}
		times = append(times, rt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedTimes - rows error: %v", ErrScanRow, err)
	}

	return times, nil
}

// GetByBarberForDay получает все брони барбера за календарный день [dayStart, dayEnd)
// Для дашборда барбера; отменённые включаются по флагу
func (r *Repository) GetByBarberForDay(ctx context.Context, barberID int64, dayStart, dayEnd time.Time, includeTerminal bool) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"barber_id": barberID}).
		Where(squirrel.GtOrEq{"time_timestamp": dayStart}).
		Where(squirrel.Lt{"time_timestamp": dayEnd}).
		OrderBy("time_timestamp ASC")

	if !includeTerminal {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.StatusConfirmed})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBarberForDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBarberForDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// EditGuarded атомарно переносит бронь на новый слот (и опционально меняет услугу)
//
// Выполняется одним условным UPDATE: строка меняется только если
// (a) version всё ещё равен expectedVersion,
// (b) статус confirmed,
// (c) у этого барбера нет другой confirmed брони на целевой time_timestamp.
// Оба условия проверяются атомарно относительно конкурентных писателей -
// два одновременных вызова не могут оба пройти проверку для одного слота.
//
// Все поля патча применяются вместе с инкрементом версии, либо не применяется ничего.
// Если UPDATE не затронул строк, выполняется диагностическое чтение, чтобы
// вернуть точную причину: ErrReservationNotFound, ErrNotEditable,
// ErrVersionMismatch или ErrSlotTaken.
func (r *Repository) EditGuarded(ctx context.Context, id int64, expectedVersion int64, patch domain.ReservationPatch) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("reservations").
		Set("date_timestamp", patch.DateTimestamp).
		Set("time_timestamp", patch.TimeTimestamp).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":      id,
			"version": expectedVersion,
			"status":  domain.StatusConfirmed,
		}).
		Where(squirrel.Expr(
			`NOT EXISTS (
				SELECT 1 FROM reservations other
				WHERE other.barber_id = reservations.barber_id
				  AND other.time_timestamp = ?
				  AND other.status = ?
				  AND other.id <> reservations.id
			)`,
			patch.TimeTimestamp, domain.StatusConfirmed,
		)).
		Suffix("RETURNING " + strings.Join(reservationColumns, ", "))

	// Смена услуги применяется в том же UPDATE
	if patch.HasServiceChange() {
		updateBuilder = updateBuilder.
			Set("service_id", *patch.ServiceID).
			Set("service_name", *patch.ServiceName).
			Set("service_price", *patch.ServicePrice)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: EditGuarded - build update query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	updated, err := scanReservation(row)
	if errors.Is(err, sql.ErrNoRows) {
		// Условный UPDATE не прошёл - выясняем почему
		return nil, r.diagnoseEditFailure(ctx, id, expectedVersion)
	}
	if err != nil {
		// Страхующий уникальный индекс по (barber_id, time_timestamp) сработал
		// раньше условия NOT EXISTS - слот занят конкурентной бронью
		if isUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: EditGuarded - execute update: %w", ErrExecQuery, err)
	}

	return updated, nil
}

// uniqueViolationCode код ошибки PostgreSQL при нарушении уникального ограничения
const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolationCode
	}
	return false
}

// diagnoseEditFailure определяет причину несработавшего условного UPDATE
// Порядок проверок: существование -> редактируемость -> версия -> занятость слота
func (r *Repository) diagnoseEditFailure(ctx context.Context, id int64, expectedVersion int64) error {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		return err
	}

	if !current.CanBeEdited() {
		return ErrNotEditable
	}

	if current.Version != expectedVersion {
		return ErrVersionMismatch
	}

	// Версия совпала, статус confirmed - единственная оставшаяся причина
	// это конфликтующая бронь на целевом слоте
	return ErrSlotTaken
}

// Cancel отменяет бронь с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusConfirmed}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Либо брони нет, либо она уже в терминальном статусе
		if _, err := r.GetByID(ctx, id); errors.Is(err, ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		return ErrNotEditable
	}

	return nil
}

// UpdateStatus переводит бронь в указанный статус (completed и т.п.)
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanReservation сканирует одну бронь из строки результата
func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.BarberID,
		&res.CustomerID,
		&res.ServiceID,
		&res.DateTimestamp,
		&res.TimeTimestamp,
		&res.Status,
		&res.Version,
		&res.ServiceName,
		&res.ServicePrice,
		&res.CancellationReason,
		&res.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// scanReservations сканирует результаты запроса в слайс броней
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
