package create_booking

import (
	"fmt"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.HotelID <= 0 {
		return fmt.Errorf("%w: hotelID must be positive", ErrInvalidInput)
	}

	if len(req.RoomIDs) == 0 {
		return fmt.Errorf("%w: at least one room is required", ErrInvalidInput)
	}

	if len(req.RoomIDs) > domain.MaxRoomsPerBooking {
		return fmt.Errorf("%w: at most %d rooms per booking", ErrInvalidInput, domain.MaxRoomsPerBooking)
	}

	seen := make(map[int64]struct{}, len(req.RoomIDs))
	for _, id := range req.RoomIDs {
		if id <= 0 {
			return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate roomID %d", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	if req.CheckIn.IsZero() || req.CheckOut.IsZero() {
		return fmt.Errorf("%w: checkIn and checkOut are required", ErrInvalidInput)
	}

	if !req.CheckOut.After(req.CheckIn) {
		return fmt.Errorf("%w: checkOut must be after checkIn", ErrInvalidDateRange)
	}

	return nil
}
