package domain

import "time"

// BookingStatus represents the status of a room booking
type BookingStatus string

const (
	StatusBooked     BookingStatus = "booked"
	StatusCheckedIn  BookingStatus = "checked_in"
	StatusCheckedOut BookingStatus = "checked_out"
	StatusCancelled  BookingStatus = "cancelled"
)

// PaymentStatus represents the payment state of a room booking
type PaymentStatus string

const (
	PaymentWaiting     PaymentStatus = "waiting"
	PaymentPaid        PaymentStatus = "paid"
	PaymentNoPenalties PaymentStatus = "no_penalties"
)

// RoomBooking represents a room booking in the system.
// TotalAmount is fixed at creation (nights × nightly rate per room) and is
// never recomputed afterwards.
type RoomBooking struct {
	ID                     int64
	HotelID                int64
	CustomerID             int64
	RoomIDs                []int64
	CheckIn                time.Time
	CheckOut               time.Time
	Status                 BookingStatus
	TotalAmount            float64
	PaymentStatus          PaymentStatus
	CancellationGraceHours int
	CheckedOutAt           *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Nights returns the number of nights covered by the booking
func (b *RoomBooking) Nights() int {
	n := int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
	if n <= 0 {
		n = 1
	}
	return n
}

// CanCheckIn returns true if the booking may transition to checked_in
func (b *RoomBooking) CanCheckIn() bool {
	return b.Status == StatusBooked
}

// CanCheckOut returns true if the booking may transition to checked_out
func (b *RoomBooking) CanCheckOut() bool {
	return b.Status == StatusCheckedIn
}

// CanBeCancelled returns true if the booking may be cancelled
func (b *RoomBooking) CanBeCancelled() bool {
	return b.Status == StatusBooked || b.Status == StatusCheckedIn
}

// IsTerminal returns true if the booking reached a terminal state
func (b *RoomBooking) IsTerminal() bool {
	return b.Status == StatusCheckedOut || b.Status == StatusCancelled
}

// HoursUntilCheckIn returns the number of hours between now and check-in.
// Negative once check-in time has passed.
func (b *RoomBooking) HoursUntilCheckIn(now time.Time) float64 {
	return b.CheckIn.Sub(now).Hours()
}

// ActiveBookingStatuses statuses that hold a claim on rooms.
// Used by the interval overlap guard at creation time.
var ActiveBookingStatuses = []BookingStatus{
	StatusBooked,
	StatusCheckedIn,
}
