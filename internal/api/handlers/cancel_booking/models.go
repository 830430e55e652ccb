package cancel_booking

import (
	cancelBooking "github.com/m04kA/HMS-ReservationService/internal/usecase/cancel_booking"
)

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	ID             int64   `json:"id"`
	Status         string  `json:"status"`
	PenaltyApplied float64 `json:"penaltyApplied"`
	PenaltyPaid    bool    `json:"penaltyPaid"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		ID:             resp.ID,
		Status:         resp.Status,
		PenaltyApplied: resp.PenaltyApplied,
		PenaltyPaid:    resp.PenaltyPaid,
	}
}
