package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBooking/pkg/psqlbuilder"
)

// Коды ошибок PostgreSQL
const (
	pqExclusionViolation = "23P01"
	pqUniqueViolation    = "23505"
	pqCheckViolation     = "23514"
)

var bookingColumns = []string{
	"id",
	"service_name",
	"package_name",
	"scheduling_mode",
	"duration_hours",
	"booking_date",
	"start_time",
	"end_time",
	"client_name",
	"email",
	"phone",
	"venue_city",
	"venue_place",
	"notes",
	"promo_code",
	"gift_card_code",
	"price",
	"original_price",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Нарушение ограничения bookings_no_overlap возвращается как ErrSlotNotAvailable
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"service_name",
			"package_name",
			"scheduling_mode",
			"duration_hours",
			"booking_date",
			"start_time",
			"end_time",
			"client_name",
			"email",
			"phone",
			"venue_city",
			"venue_place",
			"notes",
			"promo_code",
			"gift_card_code",
			"price",
			"original_price",
			"status",
		).
		Values(
			booking.ServiceName,
			booking.PackageName,
			booking.SchedulingMode,
			booking.DurationHours,
			booking.BookingDate.Format(domain.DateFormat),
			booking.StartTime,
			booking.EndTime,
			booking.ClientName,
			booking.Email,
			booking.Phone,
			booking.VenueCity,
			booking.VenuePlace,
			booking.Notes,
			booking.PromoCode,
			booking.GiftCardCode,
			booking.Price,
			booking.OriginalPrice,
			booking.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, mapWriteError("Create - execute insert", err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE) до конца транзакции
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// List получает бронирования с фильтрацией по периоду и статусу
//
// Примеры использования:
//
// 1. Все бронирования на конкретную дату (включая отменённые):
//    filter := domain.BookingsFilter{StartDate: &date, EndDate: &date}
//
// 2. Подтвержденные бронирования за месяц:
//    status := domain.StatusConfirmed
//    filter := domain.BookingsFilter{StartDate: &start, EndDate: &end, Status: &status}
//
// Для одной даты внутри транзакции строки блокируются (FOR UPDATE),
// этим пользуется фиксация нового бронирования
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings")

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": filter.StartDate.Format(domain.DateFormat)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": filter.EndDate.Format(domain.DateFormat)})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	selectBuilder = selectBuilder.OrderBy("booking_date ASC", "start_time ASC NULLS FIRST", "id ASC")

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(filter.Limit)
	}

	if dbmetrics.IsInTransaction(ctx) && filter.IsSingleDay() {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError("UpdateStatus - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Update перезаписывает изменяемые администратором поля бронирования.
// Снимки каталога (услуга, пакет, режим, длительность) и коды скидок не меняются
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("booking_date", booking.BookingDate.Format(domain.DateFormat)).
		Set("start_time", booking.StartTime).
		Set("end_time", booking.EndTime).
		Set("client_name", booking.ClientName).
		Set("email", booking.Email).
		Set("phone", booking.Phone).
		Set("venue_city", booking.VenueCity).
		Set("venue_place", booking.VenuePlace).
		Set("notes", booking.Notes).
		Set("price", booking.Price).
		Set("original_price", booking.OriginalPrice).
		Set("status", booking.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt time.Time
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBookingNotFound
	}
	if err != nil {
		return mapWriteError("Update - execute update", err)
	}

	booking.UpdatedAt = updatedAt
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.ServiceName,
		&booking.PackageName,
		&booking.SchedulingMode,
		&booking.DurationHours,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.EndTime,
		&booking.ClientName,
		&booking.Email,
		&booking.Phone,
		&booking.VenueCity,
		&booking.VenuePlace,
		&booking.Notes,
		&booking.PromoCode,
		&booking.GiftCardCode,
		&booking.Price,
		&booking.OriginalPrice,
		&booking.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings вспомогательная функция для сканирования списка бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan booking: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

// mapWriteError переводит нарушение ограничения на пересечение в ErrSlotNotAvailable,
// нарушение CHECK в ErrInvalidData.
// Исходная ошибка сохраняется в цепочке, чтобы txmanager видел коды сериализации
func mapWriteError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqExclusionViolation, pqUniqueViolation:
			return fmt.Errorf("%w: %s: %w", ErrSlotNotAvailable, op, err)
		case pqCheckViolation:
			return fmt.Errorf("%w: %s: %w", ErrInvalidData, op, err)
		}
	}
	return fmt.Errorf("%w: %s: %w", ErrExecQuery, op, err)
}
