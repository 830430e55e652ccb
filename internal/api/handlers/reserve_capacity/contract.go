package reserve_capacity

import (
	"context"

	capacityService "github.com/m04kA/HMS-ReservationService/internal/service/capacity"
	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

type CapacityService interface {
	Reserve(ctx context.Context, hotelID, serviceID int64, required types.ResourceMap) (*capacityService.Claim, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
