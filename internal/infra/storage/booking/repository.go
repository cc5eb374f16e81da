package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ActivityService/internal/domain"
	"github.com/m04kA/SMC-ActivityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ActivityService/pkg/psqlbuilder"
)

// bookingColumns полный набор колонок таблицы bookings
var bookingColumns = []string{
	"id",
	"activity_id",
	"business_id",
	"consumer_id",
	"booking_date",
	"start_time",
	"duration_minutes",
	"participants_count",
	"status",
	"activity_snapshot",
	"business_snapshot",
	"selection_snapshot",
	"price_snapshot",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий журнала бронирований
// Единственный источник правды о занятости слотов: резолвер агрегирует
// занятость заново при каждом чтении, никаких промежуточных счётчиков
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Снапшоты сериализуются в JSONB и пишутся одним INSERT вместе со строкой
// журнала - частичной записи бронирования не бывает.
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activitySnap, err := json.Marshal(booking.ActivitySnapshot)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - activity snapshot: %v", ErrEncodeSnapshot, err)
	}
	businessSnap, err := json.Marshal(booking.BusinessSnapshot)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - business snapshot: %v", ErrEncodeSnapshot, err)
	}
	selectionSnap, err := json.Marshal(booking.SelectionSnapshot)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - selection snapshot: %v", ErrEncodeSnapshot, err)
	}
	priceSnap, err := json.Marshal(booking.PriceSnapshot)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - price snapshot: %v", ErrEncodeSnapshot, err)
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"activity_id",
			"business_id",
			"consumer_id",
			"booking_date",
			"start_time",
			"duration_minutes",
			"participants_count",
			"status",
			"activity_snapshot",
			"business_snapshot",
			"selection_snapshot",
			"price_snapshot",
			"notes",
		).
		Values(
			booking.ActivityID,
			booking.BusinessID,
			booking.ConsumerID,
			booking.BookingDate,
			booking.StartTime,
			booking.DurationMinutes,
			booking.ParticipantsCount,
			booking.Status,
			activitySnap,
			businessSnap,
			selectionSnap,
			priceSnap,
			booking.Notes,
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
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, ErrBookingNotFound
	}

	return bookings[0], nil
}

// GetByConsumerID получает список бронирований потребителя
// Опционально фильтрует по статусу
func (r *Repository) GetByConsumerID(ctx context.Context, consumerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"consumer_id": consumerID}).
		OrderBy("booking_date DESC, start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByConsumerID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByConsumerID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetLedgerForSlotDate получает все НЕотменённые бронирования активности
// на конкретную дату одним запросом - основа агрегации занятости слотов.
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы конкурентные
// создания бронирований на одну дату сериализовались по проверке ёмкости
func (r *Repository) GetLedgerForSlotDate(ctx context.Context, activityID int64, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"activity_id": activityID}).
		Where(squirrel.Eq{"booking_date": date}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetLedgerForSlotDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetLedgerForSlotDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByBusinessWithFilter получает бронирования бизнеса с гибкой фильтрацией
// Поддерживает фильтрацию по активности, периоду, статусу и включению
// отменённых бронирований
func (r *Repository) GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"business_id": filter.BusinessID})

	if filter.ActivityID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"activity_id": *filter.ActivityID})
	}

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": string(domain.StatusCancelled)})
	}

	// Для конкретной даты сортируем по времени начала, для периода - сначала новые
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate) {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
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
		return ErrBookingNotFound
	}

	return nil
}

// CompleteElapsed переводит активные бронирования с истекшим временем
// слота в статус completed. Возвращает количество обновленных строк.
// Используется фоновым sweep-воркером
func (r *Repository) CompleteElapsed(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCompleted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.StatusActive}).
		Where(squirrel.Expr(
			"(booking_date + start_time::time + make_interval(mins => duration_minutes)) < ?",
			now,
		)).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CompleteElapsed - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CompleteElapsed - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CompleteElapsed - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime
		var activitySnap, businessSnap, selectionSnap, priceSnap []byte

		err := rows.Scan(
			&booking.ID,
			&booking.ActivityID,
			&booking.BusinessID,
			&booking.ConsumerID,
			&booking.BookingDate,
			&booking.StartTime,
			&booking.DurationMinutes,
			&booking.ParticipantsCount,
			&booking.Status,
			&activitySnap,
			&businessSnap,
			&selectionSnap,
			&priceSnap,
			&booking.Notes,
			&booking.CancellationReason,
			&booking.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		if err := json.Unmarshal(activitySnap, &booking.ActivitySnapshot); err != nil {
			return nil, fmt.Errorf("%w: scanBookings - activity snapshot: %v", ErrDecodeSnapshot, err)
		}
		if err := json.Unmarshal(businessSnap, &booking.BusinessSnapshot); err != nil {
			return nil, fmt.Errorf("%w: scanBookings - business snapshot: %v", ErrDecodeSnapshot, err)
		}
		if err := json.Unmarshal(selectionSnap, &booking.SelectionSnapshot); err != nil {
			return nil, fmt.Errorf("%w: scanBookings - selection snapshot: %v", ErrDecodeSnapshot, err)
		}
		if err := json.Unmarshal(priceSnap, &booking.PriceSnapshot); err != nil {
			return nil, fmt.Errorf("%w: scanBookings - price snapshot: %v", ErrDecodeSnapshot, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
