package capacity

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	"github.com/m04kA/HMS-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/HMS-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

// Repository репозиторий capacity ledger.
//
// Все мутации счетчиков выполняются одним guarded UPDATE: проверка и
// изменение происходят в одном атомарном выражении на стороне БД.
// Read-modify-write на уровне приложения здесь недопустим.
type Repository struct {
	db DBExecutor
}

// NewRepository создает репозиторий capacity ledger
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByHotelAndService получает ledger с картой ресурсов
func (r *Repository) GetByHotelAndService(ctx context.Context, hotelID, serviceID int64) (*domain.CapacityLedgerEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"hotel_id",
		"service_id",
		"max_concurrent_bookings",
		"current_bookings",
		"is_available",
		"notes",
		"created_at",
		"updated_at",
	).
		From("capacity_ledgers").
		Where(squirrel.Eq{"hotel_id": hotelID, "service_id": serviceID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByHotelAndService - build select query: %v", ErrBuildQuery, err)
	}

	var entry domain.CapacityLedgerEntry
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&entry.ID,
		&entry.HotelID,
		&entry.ServiceID,
		&entry.MaxConcurrentBookings,
		&entry.CurrentBookings,
		&entry.IsAvailable,
		&entry.Notes,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrLedgerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByHotelAndService - scan ledger: %v", ErrScanRow, err)
	}

	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time

	resources, err := r.getResources(ctx, entry.ID)
	if err != nil {
		return nil, err
	}
	entry.Resources = resources

	return &entry, nil
}

func (r *Repository) getResources(ctx context.Context, ledgerID int64) (types.ResourceMap, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("resource_id", "quantity").
		From("capacity_resources").
		Where(squirrel.Eq{"ledger_id": ledgerID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getResources - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getResources - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	resources := make(types.ResourceMap)
	for rows.Next() {
		var resourceID string
		var quantity int64
		if err := rows.Scan(&resourceID, &quantity); err != nil {
			return nil, fmt.Errorf("%w: getResources - scan resource: %v", ErrScanRow, err)
		}
		resources[resourceID] = quantity
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getResources - rows error: %v", ErrScanRow, err)
	}

	return resources, nil
}

// ReserveSlot занимает один слот одновременного бронирования.
// Guard "current_bookings < max_concurrent_bookings" входит в сам UPDATE,
// поэтому две конкурентные резервации последнего слота не пройдут обе.
func (r *Repository) ReserveSlot(ctx context.Context, ledgerID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("capacity_ledgers").
		Set("current_bookings", squirrel.Expr("current_bookings + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ledgerID, "is_available": true}).
		Where(squirrel.Expr("current_bookings < max_concurrent_bookings")).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReserveSlot - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ReserveSlot - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ReserveSlot - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNoFreeSlots
	}

	return nil
}

// ReleaseSlot освобождает слот одновременного бронирования,
// счетчик не опускается ниже нуля
func (r *Repository) ReleaseSlot(ctx context.Context, ledgerID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("capacity_ledgers").
		Set("current_bookings", squirrel.Expr("GREATEST(current_bookings - 1, 0)")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ledgerID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReleaseSlot - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ReleaseSlot - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ReleaseSlot - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrLedgerNotFound
	}

	return nil
}

// ReserveResource списывает количество ресурса.
// Guard "quantity >= требуемого" входит в сам UPDATE.
func (r *Repository) ReserveResource(ctx context.Context, ledgerID int64, resourceID string, qty int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("capacity_resources").
		Set("quantity", squirrel.Expr("quantity - ?", qty)).
		Where(squirrel.Eq{"ledger_id": ledgerID, "resource_id": resourceID}).
		Where(squirrel.GtOrEq{"quantity": qty}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReserveResource - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ReserveResource - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ReserveResource - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: resource %s", ErrResourceShort, resourceID)
	}

	return nil
}

// ReleaseResource возвращает количество ресурса в пул. Инкремент без
// верхней границы: система не хранит квитанций по каждому reserve на
// уровне ledger, поэтому release неизвестного ресурса создает строку.
func (r *Repository) ReleaseResource(ctx context.Context, ledgerID int64, resourceID string, qty int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("capacity_resources").
		Columns("ledger_id", "resource_id", "quantity").
		Values(ledgerID, resourceID, qty).
		Suffix("ON CONFLICT (ledger_id, resource_id) DO UPDATE SET quantity = capacity_resources.quantity + EXCLUDED.quantity").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReleaseResource - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReleaseResource - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}
