package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	"github.com/m04kA/HMS-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/HMS-ReservationService/pkg/psqlbuilder"
)

// Repository репозиторий бронирований номеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает репозиторий бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование. Номера привязываются отдельно через AddRooms
// в той же транзакции.
func (r *Repository) Create(ctx context.Context, b *domain.RoomBooking) (*domain.RoomBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"hotel_id",
			"customer_id",
			"check_in",
			"check_out",
			"status",
			"total_amount",
			"payment_status",
			"cancellation_grace_hours",
		).
		Values(
			b.HotelID,
			b.CustomerID,
			b.CheckIn,
			b.CheckOut,
			b.Status,
			b.TotalAmount,
			b.PaymentStatus,
			b.CancellationGraceHours,
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

// AddRooms привязывает номера к бронированию
func (r *Repository) AddRooms(ctx context.Context, bookingID int64, roomIDs []int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("booking_rooms").
		Columns("booking_id", "room_id")
	for _, roomID := range roomIDs {
		insertBuilder = insertBuilder.Values(bookingID, roomID)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddRooms - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: AddRooms - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает бронирование по ID вместе со списком номеров.
// Внутри транзакции строка бронирования блокируется FOR UPDATE.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.RoomBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"hotel_id",
		"customer_id",
		"check_in",
		"check_out",
		"status",
		"total_amount",
		"payment_status",
		"cancellation_grace_hours",
		"checked_out_at",
		"created_at",
		"updated_at",
	).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var b domain.RoomBooking
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&b.HotelID,
		&b.CustomerID,
		&b.CheckIn,
		&b.CheckOut,
		&b.Status,
		&b.TotalAmount,
		&b.PaymentStatus,
		&b.CancellationGraceHours,
		&b.CheckedOutAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	roomIDs, err := r.GetRoomIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	b.RoomIDs = roomIDs

	return &b, nil
}

// GetRoomIDs получает список номеров бронирования
func (r *Repository) GetRoomIDs(ctx context.Context, bookingID int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("room_id").
		From("booking_rooms").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("room_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRoomIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRoomIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	roomIDs := make([]int64, 0)
	for rows.Next() {
		var roomID int64
		if err := rows.Scan(&roomID); err != nil {
			return nil, fmt.Errorf("%w: GetRoomIDs - scan room_id: %v", ErrScanRow, err)
		}
		roomIDs = append(roomIDs, roomID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetRoomIDs - rows error: %v", ErrScanRow, err)
	}

	return roomIDs, nil
}

// UpdateStatusIf условно переводит бронирование из статуса from в статус to
// одним UPDATE. Guard на текущем статусе защищает state machine от гонок.
func (r *Repository) UpdateStatusIf(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatusIf - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusIf - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusIf - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusNotChanged
	}

	return nil
}

// SetPaymentStatus обновляет платежный статус бронирования
func (r *Repository) SetPaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetPaymentStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetPaymentStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetPaymentStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// SetCheckedOut переводит бронирование в checked_out одним условным UPDATE:
// статус, отметка времени выезда и платежный статус меняются атомарно.
func (r *Repository) SetCheckedOut(ctx context.Context, id int64, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCheckedOut).
		Set("checked_out_at", at).
		Set("payment_status", domain.PaymentPaid).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusCheckedIn}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetCheckedOut - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetCheckedOut - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetCheckedOut - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusNotChanged
	}

	return nil
}
