package room

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

// Repository репозиторий номеров отеля
type Repository struct {
	db DBExecutor
}

// NewRepository создает репозиторий номеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByIDs получает номера отеля по списку id.
// Внутри транзакции строки блокируются FOR UPDATE, чтобы конкурентные
// бронирования одного номера сериализовались.
func (r *Repository) GetByIDs(ctx context.Context, hotelID int64, ids []int64) ([]*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"hotel_id",
		"room_number",
		"type",
		"status",
		"price_per_night",
	).
		From("rooms").
		Where(squirrel.Eq{"id": ids, "hotel_id": hotelID}).
		OrderBy("id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rooms := make([]*domain.Room, 0, len(ids))
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(
			&room.ID,
			&room.HotelID,
			&room.RoomNumber,
			&room.Type,
			&room.Status,
			&room.PricePerNight,
		); err != nil {
			return nil, fmt.Errorf("%w: GetByIDs - scan room: %v", ErrScanRow, err)
		}
		rooms = append(rooms, &room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - rows error: %v", ErrScanRow, err)
	}

	return rooms, nil
}

// HasOverlappingBooking проверяет, пересекается ли интервал
// [checkIn, checkOut) с активным бронированием номера
func (r *Repository) HasOverlappingBooking(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatuses := make([]string, len(domain.ActiveBookingStatuses))
	for i, s := range domain.ActiveBookingStatuses {
		activeStatuses[i] = string(s)
	}

	query, args, err := psqlbuilder.Select("1").
		From("bookings b").
		Join("booking_rooms br ON br.booking_id = b.id").
		Where(squirrel.Eq{"br.room_id": roomID}).
		Where(squirrel.Eq{"b.status": activeStatuses}).
		Where(squirrel.Lt{"b.check_in": checkOut}).
		Where(squirrel.Gt{"b.check_out": checkIn}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasOverlappingBooking - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasOverlappingBooking - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// SetStatusIf условно переводит номер из статуса from в статус to
// одним UPDATE ("set booked only if currently available").
// Возвращает true, если строка была изменена.
func (r *Repository) SetStatusIf(ctx context.Context, roomID int64, from, to domain.RoomStatus) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("rooms").
		Set("status", to).
		Where(squirrel.Eq{"id": roomID, "status": from}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: SetStatusIf - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: SetStatusIf - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: SetStatusIf - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// SetStatus переводит номера в указанный статус
func (r *Repository) SetStatus(ctx context.Context, roomIDs []int64, to domain.RoomStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("rooms").
		Set("status", to).
		Where(squirrel.Eq{"id": roomIDs}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRoomNotFound
	}

	return nil
}
