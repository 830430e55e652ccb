package domain

// CancellationPenalty computes the penalty for cancelling a room booking.
// Pure function of the booking state and timing policy; the caller applies
// the result as balance mutations and transaction records.
//
//   - checked-in bookings forfeit the full amount, grace does not apply
//   - inside the grace window before check-in: half the amount
//   - earlier than the grace window: no penalty
func CancellationPenalty(status BookingStatus, hoursUntilCheckIn float64, graceHours int, totalAmount float64) float64 {
	if status == StatusCheckedIn {
		return totalAmount
	}
	if hoursUntilCheckIn <= float64(graceHours) {
		return totalAmount * LateCancellationPenaltyRate
	}
	return 0
}

// ServiceBookingRefund computes the refund for cancelling a service
// booking. Pure function of the notice given and the service cost.
//
//   - more than 24h notice: full refund
//   - between 2h and 24h: half refund
//   - 2h or less: no refund
func ServiceBookingRefund(hoursUntilBookingDate float64, cost float64) float64 {
	switch {
	case hoursUntilBookingDate > FullRefundNoticeHours:
		return cost
	case hoursUntilBookingDate > NoRefundNoticeHours:
		return cost * PartialRefundRate
	default:
		return 0
	}
}
