package create_service_booking

import (
	"context"

	createServiceBooking "github.com/m04kA/HMS-ReservationService/internal/usecase/create_service_booking"
)

type CreateServiceBookingUseCase interface {
	Execute(ctx context.Context, req *createServiceBooking.Request) (*createServiceBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
