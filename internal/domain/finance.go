package domain

import "time"

// TransactionKind kind of a payment transaction
type TransactionKind string

const (
	TransactionPayment TransactionKind = "payment"
	TransactionPenalty TransactionKind = "penalty"
	TransactionRefund  TransactionKind = "refund"
)

// TransactionStatus status of a payment transaction
type TransactionStatus string

const (
	TransactionWaiting   TransactionStatus = "waiting"
	TransactionApproved  TransactionStatus = "approved"
	TransactionCompleted TransactionStatus = "completed"
)

// PaymentTransaction is a financial record produced as a side effect of a
// lifecycle transition. Written inside the same transaction as the
// transition itself, so it is recorded exactly once per transition.
type PaymentTransaction struct {
	ID               int64
	HotelID          int64
	CustomerID       int64
	BookingID        *int64
	ServiceBookingID *int64
	Amount           float64
	Kind             TransactionKind
	Status           TransactionStatus
	CreatedAt        time.Time
}

// Invoice is issued for a payment transaction
type Invoice struct {
	ID          int64
	PaymentID   int64
	HotelID     int64
	CustomerID  int64
	Amount      float64
	Description string
	IssuedAt    time.Time
}
