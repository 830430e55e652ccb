package update_stock

import (
	"context"

	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

type StockService interface {
	UpdateTotals(ctx context.Context, hotelID, serviceID int64, totals types.ResourceMap, reason *string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
