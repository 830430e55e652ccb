package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	d, err := time.Parse(DateFormat, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRoomBooking_Nights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		want     int
	}{
		{"single night", "2026-09-01", "2026-09-02", 1},
		{"full week", "2026-09-01", "2026-09-08", 7},
		{"same day counts as one night", "2026-09-01", "2026-09-01", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &RoomBooking{CheckIn: date(tt.checkIn), CheckOut: date(tt.checkOut)}
			assert.Equal(t, tt.want, b.Nights())
		})
	}
}

func TestRoomBooking_Transitions(t *testing.T) {
	tests := []struct {
		status         BookingStatus
		canCheckIn     bool
		canCheckOut    bool
		canBeCancelled bool
		isTerminal     bool
	}{
		{StatusBooked, true, false, true, false},
		{StatusCheckedIn, false, true, true, false},
		{StatusCheckedOut, false, false, false, true},
		{StatusCancelled, false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			b := &RoomBooking{Status: tt.status}
			assert.Equal(t, tt.canCheckIn, b.CanCheckIn())
			assert.Equal(t, tt.canCheckOut, b.CanCheckOut())
			assert.Equal(t, tt.canBeCancelled, b.CanBeCancelled())
			assert.Equal(t, tt.isTerminal, b.IsTerminal())
		})
	}
}

func TestRoomBooking_HoursUntilCheckIn(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	b := &RoomBooking{CheckIn: now.Add(36 * time.Hour)}
	assert.InDelta(t, 36.0, b.HoursUntilCheckIn(now), 0.001)

	past := &RoomBooking{CheckIn: now.Add(-2 * time.Hour)}
	assert.InDelta(t, -2.0, past.HoursUntilCheckIn(now), 0.001)
}

func TestServiceBooking_Lifecycle(t *testing.T) {
	confirmed := &ServiceBooking{Status: ServiceBookingConfirmed}
	assert.False(t, confirmed.IsCancelled())
	assert.True(t, confirmed.CanBeCancelled())

	cancelled := &ServiceBooking{Status: ServiceBookingCancelled}
	assert.True(t, cancelled.IsCancelled())
	assert.False(t, cancelled.CanBeCancelled())
}
