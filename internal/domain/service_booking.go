package domain

import (
	"time"

	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

// ServiceBookingStatus represents the status of an ancillary-service booking
type ServiceBookingStatus string

const (
	ServiceBookingConfirmed ServiceBookingStatus = "confirmed"
	ServiceBookingCancelled ServiceBookingStatus = "cancelled"
)

// ServiceBooking represents a booking of an ancillary hotel service
// (spa slot, equipment rental, event space, ...). RequiredResources stores
// the exact resource claim reserved against the capacity ledger at creation;
// cancellation releases precisely this map.
type ServiceBooking struct {
	ID                 int64
	HotelID            int64
	CustomerID         int64
	ServiceID          int64
	BookingDate        time.Time
	RequiredResources  types.ResourceMap
	Cost               float64
	Status             ServiceBookingStatus
	RefundAmount       float64
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled returns true if the booking has been cancelled
func (s *ServiceBooking) IsCancelled() bool {
	return s.Status == ServiceBookingCancelled
}

// CanBeCancelled returns true if the booking may be cancelled
func (s *ServiceBooking) CanBeCancelled() bool {
	return s.Status == ServiceBookingConfirmed
}

// HoursUntilBookingDate returns the number of hours between now and the
// booking date. Negative once the booking date has passed.
func (s *ServiceBooking) HoursUntilBookingDate(now time.Time) float64 {
	return s.BookingDate.Sub(now).Hours()
}
