package check_out

import (
	"context"
	"time"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.RoomBooking, error)
	SetCheckedOut(ctx context.Context, id int64, at time.Time) error
}

// RoomRepository интерфейс репозитория номеров
type RoomRepository interface {
	SetStatus(ctx context.Context, roomIDs []int64, to domain.RoomStatus) error
}

// FinanceRepository интерфейс репозитория финансовых записей
type FinanceRepository interface {
	CreatePayment(ctx context.Context, tx *domain.PaymentTransaction) (*domain.PaymentTransaction, error)
	CreateInvoice(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
