package release_capacity

import (
	"context"

	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

type CapacityService interface {
	Release(ctx context.Context, hotelID, serviceID int64, resources types.ResourceMap) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
