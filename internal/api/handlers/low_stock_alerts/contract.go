package low_stock_alerts

import (
	"context"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

type StockService interface {
	LowStockAlerts(ctx context.Context, hotelID, serviceID int64, threshold float64) ([]domain.LowStockAlert, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
