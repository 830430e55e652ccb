package release_stock

import (
	"context"

	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

type StockService interface {
	Release(ctx context.Context, hotelID, serviceID int64, resources types.ResourceMap, bookingID *int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
