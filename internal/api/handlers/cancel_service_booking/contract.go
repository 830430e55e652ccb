package cancel_service_booking

import (
	"context"

	cancelServiceBooking "github.com/m04kA/HMS-ReservationService/internal/usecase/cancel_service_booking"
)

type CancelServiceBookingUseCase interface {
	Execute(ctx context.Context, req *cancelServiceBooking.Request) (*cancelServiceBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
