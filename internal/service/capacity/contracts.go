package capacity

import (
	"context"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

// LedgerRepository интерфейс репозитория capacity ledger
type LedgerRepository interface {
	GetByHotelAndService(ctx context.Context, hotelID, serviceID int64) (*domain.CapacityLedgerEntry, error)
	ReserveSlot(ctx context.Context, ledgerID int64) error
	ReleaseSlot(ctx context.Context, ledgerID int64) error
	ReserveResource(ctx context.Context, ledgerID int64, resourceID string, qty int64) error
	ReleaseResource(ctx context.Context, ledgerID int64, resourceID string, qty int64) error
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

// Claim квитанция резервации: ledger и точные количества,
// которые были списаны и которые нужно вернуть при отмене
type Claim struct {
	LedgerID  int64
	Resources types.ResourceMap
}
