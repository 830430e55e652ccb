package cancel_booking

import (
	"context"
	"time"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.RoomBooking, error)
	UpdateStatusIf(ctx context.Context, id int64, from, to domain.BookingStatus) error
	SetPaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error
}

// RoomRepository интерфейс репозитория номеров
type RoomRepository interface {
	SetStatus(ctx context.Context, roomIDs []int64, to domain.RoomStatus) error
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByID(ctx context.Context, customerID int64) (*domain.Customer, error)
	Debit(ctx context.Context, customerID int64, amount float64) error
}

// CancellationRepository интерфейс репозитория записей об отменах
type CancellationRepository interface {
	Create(ctx context.Context, record *domain.CancellationRecord) (*domain.CancellationRecord, error)
}

// FinanceRepository интерфейс репозитория финансовых записей
type FinanceRepository interface {
	CreatePayment(ctx context.Context, tx *domain.PaymentTransaction) (*domain.PaymentTransaction, error)
	CreateInvoice(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
