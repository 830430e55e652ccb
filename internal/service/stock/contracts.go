package stock

import (
	"context"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

// LedgerRepository интерфейс репозитория stock ledger
type LedgerRepository interface {
	GetByHotelAndService(ctx context.Context, hotelID, serviceID int64) (*domain.StockLedgerEntry, error)
	ReserveItem(ctx context.Context, ledgerID int64, resourceID string, qty int64) error
	ReleaseItem(ctx context.Context, ledgerID int64, resourceID string, qty int64) error
	SetTotal(ctx context.Context, ledgerID int64, resourceID string, total int64) error
	AppendHistory(ctx context.Context, entry *domain.StockHistoryEntry) error
	LowStock(ctx context.Context, ledgerID int64, threshold float64) ([]domain.LowStockAlert, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
