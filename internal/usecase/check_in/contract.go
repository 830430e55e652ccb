package check_in

import (
	"context"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.RoomBooking, error)
	UpdateStatusIf(ctx context.Context, id int64, from, to domain.BookingStatus) error
}

// RoomRepository интерфейс репозитория номеров
type RoomRepository interface {
	SetStatus(ctx context.Context, roomIDs []int64, to domain.RoomStatus) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
