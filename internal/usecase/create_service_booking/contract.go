package create_service_booking

import (
	"context"
	"time"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	capacityService "github.com/m04kA/HMS-ReservationService/internal/service/capacity"
	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	GetService(ctx context.Context, hotelID, serviceID int64) (*domain.HotelService, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByID(ctx context.Context, customerID int64) (*domain.Customer, error)
	Debit(ctx context.Context, customerID int64, amount float64) error
}

// ServiceBookingRepository интерфейс репозитория бронирований услуг
type ServiceBookingRepository interface {
	Create(ctx context.Context, b *domain.ServiceBooking) (*domain.ServiceBooking, error)
}

// CapacityService интерфейс сервиса capacity ledger
type CapacityService interface {
	Reserve(ctx context.Context, hotelID, serviceID int64, required types.ResourceMap) (*capacityService.Claim, error)
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
