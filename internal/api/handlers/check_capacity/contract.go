package check_capacity

import (
	"context"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

type CapacityService interface {
	Check(ctx context.Context, hotelID, serviceID int64, required types.ResourceMap) (*domain.CapacityReport, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
