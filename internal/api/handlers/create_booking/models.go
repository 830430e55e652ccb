package create_booking

import (
	"time"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	createBooking "github.com/m04kA/HMS-ReservationService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CustomerID int64   `json:"customerId"`
	HotelID    int64   `json:"hotelId"`
	RoomIDs    []int64 `json:"roomIds"`
	CheckIn    string  `json:"checkIn"`  // "2026-09-15"
	CheckOut   string  `json:"checkOut"` // "2026-09-18"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                     int64   `json:"id"`
	HotelID                int64   `json:"hotelId"`
	CustomerID             int64   `json:"customerId"`
	RoomIDs                []int64 `json:"roomIds"`
	CheckIn                string  `json:"checkIn"`
	CheckOut               string  `json:"checkOut"`
	Status                 string  `json:"status"`
	TotalAmount            float64 `json:"totalAmount"`
	PaymentStatus          string  `json:"paymentStatus"`
	CancellationGraceHours int     `json:"cancellationGraceHours"`
	CreatedAt              string  `json:"createdAt"`
	UpdatedAt              string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	checkIn, err := time.Parse(domain.DateFormat, r.CheckIn)
	if err != nil {
		return nil, err
	}

	checkOut, err := time.Parse(domain.DateFormat, r.CheckOut)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CustomerID: r.CustomerID,
		HotelID:    r.HotelID,
		RoomIDs:    r.RoomIDs,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                     resp.ID,
		HotelID:                resp.HotelID,
		CustomerID:             resp.CustomerID,
		RoomIDs:                resp.RoomIDs,
		CheckIn:                resp.CheckIn.Format(domain.DateFormat),
		CheckOut:               resp.CheckOut.Format(domain.DateFormat),
		Status:                 resp.Status,
		TotalAmount:            resp.TotalAmount,
		PaymentStatus:          resp.PaymentStatus,
		CancellationGraceHours: resp.CancellationGraceHours,
		CreatedAt:              resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:              resp.UpdatedAt.Format(time.RFC3339),
	}
}
