package check_out

import (
	"time"

	checkOut "github.com/m04kA/HMS-ReservationService/internal/usecase/check_out"
)

// CheckOutResponse HTTP response model
type CheckOutResponse struct {
	ID            int64   `json:"id"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"paymentStatus"`
	PaymentID     int64   `json:"paymentId"`
	Amount        float64 `json:"amount"`
	CheckedOutAt  string  `json:"checkedOutAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkOut.Response) *CheckOutResponse {
	return &CheckOutResponse{
		ID:            resp.ID,
		Status:        resp.Status,
		PaymentStatus: resp.PaymentStatus,
		PaymentID:     resp.PaymentID,
		Amount:        resp.Amount,
		CheckedOutAt:  resp.CheckedOutAt.Format(time.RFC3339),
	}
}
