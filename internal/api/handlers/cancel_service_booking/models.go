package cancel_service_booking

import (
	cancelServiceBooking "github.com/m04kA/HMS-ReservationService/internal/usecase/cancel_service_booking"
)

// CancelServiceBookingRequest HTTP request model
type CancelServiceBookingRequest struct {
	Reason string `json:"reason,omitempty"`
}

// CancelServiceBookingResponse HTTP response model
type CancelServiceBookingResponse struct {
	ID           int64   `json:"id"`
	Status       string  `json:"status"`
	RefundAmount float64 `json:"refundAmount"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelServiceBooking.Response) *CancelServiceBookingResponse {
	return &CancelServiceBookingResponse{
		ID:           resp.ID,
		Status:       resp.Status,
		RefundAmount: resp.RefundAmount,
	}
}
