package servicebooking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	"github.com/m04kA/HMS-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/HMS-ReservationService/pkg/psqlbuilder"
)

// Repository репозиторий бронирований услуг
type Repository struct {
	db DBExecutor
}

// NewRepository создает репозиторий бронирований услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование услуги
func (r *Repository) Create(ctx context.Context, b *domain.ServiceBooking) (*domain.ServiceBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("service_bookings").
		Columns(
			"hotel_id",
			"customer_id",
			"service_id",
			"booking_date",
			"required_resources",
			"cost",
			"status",
			"refund_amount",
		).
		Values(
			b.HotelID,
			b.CustomerID,
			b.ServiceID,
			b.BookingDate,
			b.RequiredResources,
			b.Cost,
			b.Status,
			b.RefundAmount,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование услуги по ID.
// Внутри транзакции строка блокируется FOR UPDATE.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ServiceBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"hotel_id",
		"customer_id",
		"service_id",
		"booking_date",
		"required_resources",
		"cost",
		"status",
		"refund_amount",
		"cancellation_reason",
		"cancelled_at",
		"created_at",
		"updated_at",
	).
		From("service_bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var b domain.ServiceBooking
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&b.HotelID,
		&b.CustomerID,
		&b.ServiceID,
		&b.BookingDate,
		&b.RequiredResources,
		&b.Cost,
		&b.Status,
		&b.RefundAmount,
		&b.CancellationReason,
		&b.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service booking: %v", ErrScanRow, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// CancelIf условно отменяет бронирование услуги одним UPDATE: статус,
// сумма возврата и причина записываются только если бронирование все еще
// в статусе confirmed.
func (r *Repository) CancelIf(ctx context.Context, id int64, refund float64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("service_bookings").
		Set("status", domain.ServiceBookingCancelled).
		Set("refund_amount", refund).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.ServiceBookingConfirmed}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CancelIf - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: CancelIf - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: CancelIf - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusNotChanged
	}

	return nil
}
