package cancellation

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	"github.com/m04kA/HMS-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/HMS-ReservationService/pkg/psqlbuilder"
)

// Repository репозиторий append-only записей об отменах бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает репозиторий записей об отменах
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись об отмене бронирования
func (r *Repository) Create(ctx context.Context, record *domain.CancellationRecord) (*domain.CancellationRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("cancellation_records").
		Columns("booking_id", "canceled_by", "penalty_applied", "penalty_paid").
		Values(record.BookingID, record.CanceledBy, record.PenaltyApplied, record.PenaltyPaid).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	created := *record
	err = executor.QueryRowContext(ctx, query, args...).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - scan returning: %v", ErrScanRow, err)
	}

	return &created, nil
}

// MarkPenaltyPaid помечает штраф по записи оплаченным.
// Единственная мутация, разрешенная для записи об отмене.
func (r *Repository) MarkPenaltyPaid(ctx context.Context, recordID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("cancellation_records").
		Set("penalty_paid", true).
		Where(squirrel.Eq{"id": recordID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkPenaltyPaid - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkPenaltyPaid - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkPenaltyPaid - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}
