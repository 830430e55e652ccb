package stock

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

// Repository репозиторий stock ledger.
// Инвариант reserved_quantity <= total_quantity держится guarded UPDATE-ами,
// история мутаций пишется append-only в stock_history.
type Repository struct {
	db DBExecutor
}

// NewRepository создает репозиторий stock ledger
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByHotelAndService получает stock ledger с картами inventory/reserved
func (r *Repository) GetByHotelAndService(ctx context.Context, hotelID, serviceID int64) (*domain.StockLedgerEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"hotel_id",
		"service_id",
		"created_at",
		"updated_at",
	).
		From("stock_ledgers").
		Where(squirrel.Eq{"hotel_id": hotelID, "service_id": serviceID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByHotelAndService - build select query: %v", ErrBuildQuery, err)
	}

	var entry domain.StockLedgerEntry
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&entry.ID,
		&entry.HotelID,
		&entry.ServiceID,
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

	inventory, reserved, err := r.getItems(ctx, entry.ID)
	if err != nil {
		return nil, err
	}
	entry.Inventory = inventory
	entry.ReservedStock = reserved

	return &entry, nil
}

func (r *Repository) getItems(ctx context.Context, ledgerID int64) (types.ResourceMap, types.ResourceMap, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("resource_id", "total_quantity", "reserved_quantity").
		From("stock_items").
		Where(squirrel.Eq{"ledger_id": ledgerID}).
		ToSql()

	if err != nil {
		return nil, nil, fmt.Errorf("%w: getItems - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: getItems - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	inventory := make(types.ResourceMap)
	reserved := make(types.ResourceMap)
	for rows.Next() {
		var resourceID string
		var total, res int64
		if err := rows.Scan(&resourceID, &total, &res); err != nil {
			return nil, nil, fmt.Errorf("%w: getItems - scan item: %v", ErrScanRow, err)
		}
		inventory[resourceID] = total
		reserved[resourceID] = res
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: getItems - rows error: %v", ErrScanRow, err)
	}

	return inventory, reserved, nil
}

// ReserveItem резервирует количество позиции склада.
// Guard "reserved + qty <= total" входит в сам UPDATE, поэтому
// резерв никогда не превышает inventory даже под гонками.
func (r *Repository) ReserveItem(ctx context.Context, ledgerID int64, resourceID string, qty int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("stock_items").
		Set("reserved_quantity", squirrel.Expr("reserved_quantity + ?", qty)).
		Where(squirrel.Eq{"ledger_id": ledgerID, "resource_id": resourceID}).
		Where(squirrel.Expr("reserved_quantity + ? <= total_quantity", qty)).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReserveItem - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ReserveItem - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ReserveItem - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: resource %s", ErrInsufficientStock, resourceID)
	}

	return nil
}

// ReleaseItem снимает резерв позиции склада, не опускаясь ниже нуля
func (r *Repository) ReleaseItem(ctx context.Context, ledgerID int64, resourceID string, qty int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("stock_items").
		Set("reserved_quantity", squirrel.Expr("GREATEST(reserved_quantity - ?, 0)", qty)).
		Where(squirrel.Eq{"ledger_id": ledgerID, "resource_id": resourceID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReleaseItem - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ReleaseItem - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ReleaseItem - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: resource %s", ErrItemNotFound, resourceID)
	}

	return nil
}

// SetTotal устанавливает общее количество позиции (floor на нуле),
// резерв не трогает. Отсутствующая позиция создается.
func (r *Repository) SetTotal(ctx context.Context, ledgerID int64, resourceID string, total int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if total < 0 {
		total = 0
	}

	query, args, err := psqlbuilder.Insert("stock_items").
		Columns("ledger_id", "resource_id", "total_quantity", "reserved_quantity").
		Values(ledgerID, resourceID, total, 0).
		Suffix("ON CONFLICT (ledger_id, resource_id) DO UPDATE SET total_quantity = EXCLUDED.total_quantity").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetTotal - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SetTotal - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// AppendHistory добавляет запись в append-only историю ledger-а
func (r *Repository) AppendHistory(ctx context.Context, entry *domain.StockHistoryEntry) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("stock_history").
		Columns("ledger_id", "action", "booking_id", "resources", "snapshot", "reason").
		Values(entry.LedgerID, entry.Action, entry.BookingID, entry.Resources, entry.Snapshot, entry.Reason).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AppendHistory - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: AppendHistory - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// LowStock возвращает позиции, доля резерва которых достигла порога
func (r *Repository) LowStock(ctx context.Context, ledgerID int64, threshold float64) ([]domain.LowStockAlert, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("resource_id", "total_quantity", "reserved_quantity").
		From("stock_items").
		Where(squirrel.Eq{"ledger_id": ledgerID}).
		Where(squirrel.Gt{"total_quantity": 0}).
		Where(squirrel.Expr("reserved_quantity::float / total_quantity >= ?", threshold)).
		OrderBy("resource_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: LowStock - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: LowStock - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	alerts := make([]domain.LowStockAlert, 0)
	for rows.Next() {
		var alert domain.LowStockAlert
		if err := rows.Scan(&alert.ResourceID, &alert.Total, &alert.Reserved); err != nil {
			return nil, fmt.Errorf("%w: LowStock - scan alert: %v", ErrScanRow, err)
		}
		alert.UsageRatio = float64(alert.Reserved) / float64(alert.Total)
		alerts = append(alerts, alert)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: LowStock - rows error: %v", ErrScanRow, err)
	}

	return alerts, nil
}
