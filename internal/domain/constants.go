package domain

// Cancellation policy constants
const (
	// DefaultCancellationGraceHours grace window before check-in during
	// which cancellation incurs the reduced penalty
	DefaultCancellationGraceHours = 24

	// LateCancellationPenaltyRate share of the booking total charged when
	// cancelling inside the grace window
	LateCancellationPenaltyRate = 0.5

	// FullRefundNoticeHours cancelling a service booking earlier than this
	// many hours before the booking date refunds the full cost
	FullRefundNoticeHours = 24.0

	// NoRefundNoticeHours cancelling later than this many hours before the
	// booking date refunds nothing
	NoRefundNoticeHours = 2.0

	// PartialRefundRate share of the service cost refunded between the
	// full-refund and no-refund windows
	PartialRefundRate = 0.5
)

// Business validation constants
const (
	MaxRoomsPerBooking          = 10
	MaxCancellationReasonLength = 500
	DefaultLowStockThreshold    = 0.8
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
