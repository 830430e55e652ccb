package domain

import "time"

// CancellationRecord append-only record of a booking cancellation.
// One record per cancellation event; the only mutation ever applied is
// flagging the penalty as paid.
type CancellationRecord struct {
	ID             int64
	BookingID      int64
	CanceledBy     int64
	PenaltyApplied float64
	PenaltyPaid    bool
	CreatedAt      time.Time
}
