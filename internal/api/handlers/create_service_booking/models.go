package create_service_booking

import (
	"time"

	createServiceBooking "github.com/m04kA/HMS-ReservationService/internal/usecase/create_service_booking"
	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

// CreateServiceBookingRequest HTTP request model
type CreateServiceBookingRequest struct {
	CustomerID        int64            `json:"customerId"`
	HotelID           int64            `json:"hotelId"`
	ServiceID         int64            `json:"serviceId"`
	BookingDate       string           `json:"bookingDate"` // RFC3339, "2026-09-15T14:00:00Z"
	ResourceOverrides map[string]int64 `json:"resourceOverrides,omitempty"`
}

// ServiceBookingResponse HTTP response model
type ServiceBookingResponse struct {
	ID                int64            `json:"id"`
	HotelID           int64            `json:"hotelId"`
	CustomerID        int64            `json:"customerId"`
	ServiceID         int64            `json:"serviceId"`
	BookingDate       string           `json:"bookingDate"`
	RequiredResources map[string]int64 `json:"requiredResources"`
	Cost              float64          `json:"cost"`
	Status            string           `json:"status"`
	CreatedAt         string           `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateServiceBookingRequest) ToUseCaseRequest() (*createServiceBooking.Request, error) {
	bookingDate, err := time.Parse(time.RFC3339, r.BookingDate)
	if err != nil {
		return nil, err
	}

	return &createServiceBooking.Request{
		CustomerID:        r.CustomerID,
		HotelID:           r.HotelID,
		ServiceID:         r.ServiceID,
		BookingDate:       bookingDate,
		ResourceOverrides: types.ResourceMap(r.ResourceOverrides),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createServiceBooking.Response) *ServiceBookingResponse {
	return &ServiceBookingResponse{
		ID:                resp.ID,
		HotelID:           resp.HotelID,
		CustomerID:        resp.CustomerID,
		ServiceID:         resp.ServiceID,
		BookingDate:       resp.BookingDate.Format(time.RFC3339),
		RequiredResources: resp.RequiredResources,
		Cost:              resp.Cost,
		Status:            resp.Status,
		CreatedAt:         resp.CreatedAt.Format(time.RFC3339),
	}
}
