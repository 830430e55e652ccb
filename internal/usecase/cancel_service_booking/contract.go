package cancel_service_booking

import (
	"context"
	"time"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

// ServiceBookingRepository интерфейс репозитория бронирований услуг
type ServiceBookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceBooking, error)
	CancelIf(ctx context.Context, id int64, refund float64, reason string) error
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	Credit(ctx context.Context, customerID int64, amount float64) error
}

// CapacityService интерфейс сервиса capacity ledger
type CapacityService interface {
	Release(ctx context.Context, hotelID, serviceID int64, resources types.ResourceMap) error
}

// FinanceRepository интерфейс репозитория финансовых записей
type FinanceRepository interface {
	CreatePayment(ctx context.Context, tx *domain.PaymentTransaction) (*domain.PaymentTransaction, error)
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
