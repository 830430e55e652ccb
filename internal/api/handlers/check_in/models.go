package check_in

import (
	"time"

	checkIn "github.com/m04kA/HMS-ReservationService/internal/usecase/check_in"
)

// CheckInResponse HTTP response model
type CheckInResponse struct {
	ID        int64   `json:"id"`
	Status    string  `json:"status"`
	RoomIDs   []int64 `json:"roomIds"`
	UpdatedAt string  `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkIn.Response) *CheckInResponse {
	return &CheckInResponse{
		ID:        resp.ID,
		Status:    resp.Status,
		RoomIDs:   resp.RoomIDs,
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
