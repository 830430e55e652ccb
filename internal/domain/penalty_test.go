package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCancellationPenalty(t *testing.T) {
	tests := []struct {
		name              string
		status            BookingStatus
		hoursUntilCheckIn float64
		graceHours        int
		totalAmount       float64
		want              float64
	}{
		{
			name:              "checked-in booking forfeits full amount",
			status:            StatusCheckedIn,
			hoursUntilCheckIn: 100,
			graceHours:        24,
			totalAmount:       200,
			want:              200,
		},
		{
			name:              "inside grace window charges half",
			status:            StatusBooked,
			hoursUntilCheckIn: 10,
			graceHours:        24,
			totalAmount:       200,
			want:              100,
		},
		{
			name:              "exactly at grace boundary charges half",
			status:            StatusBooked,
			hoursUntilCheckIn: 24,
			graceHours:        24,
			totalAmount:       200,
			want:              100,
		},
		{
			name:              "odd amount keeps fractional half penalty",
			status:            StatusBooked,
			hoursUntilCheckIn: 10,
			graceHours:        24,
			totalAmount:       101,
			want:              50.5,
		},
		{
			name:              "outside grace window is free",
			status:            StatusBooked,
			hoursUntilCheckIn: 48,
			graceHours:        24,
			totalAmount:       200,
			want:              0,
		},
		{
			name:              "check-in time already passed charges half",
			status:            StatusBooked,
			hoursUntilCheckIn: -3,
			graceHours:        24,
			totalAmount:       200,
			want:              100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CancellationPenalty(tt.status, tt.hoursUntilCheckIn, tt.graceHours, tt.totalAmount)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestServiceBookingRefund(t *testing.T) {
	tests := []struct {
		name                  string
		hoursUntilBookingDate float64
		cost                  float64
		want                  float64
	}{
		{
			name:                  "more than 24h notice refunds full cost",
			hoursUntilBookingDate: 30,
			cost:                  50,
			want:                  50,
		},
		{
			name:                  "between 2h and 24h refunds half",
			hoursUntilBookingDate: 10,
			cost:                  50,
			want:                  25,
		},
		{
			name:                  "odd cost keeps fractional half refund",
			hoursUntilBookingDate: 10,
			cost:                  101,
			want:                  50.5,
		},
		{
			name:                  "exactly 24h refunds half",
			hoursUntilBookingDate: 24,
			cost:                  50,
			want:                  25,
		},
		{
			name:                  "exactly 2h refunds nothing",
			hoursUntilBookingDate: 2,
			cost:                  50,
			want:                  0,
		},
		{
			name:                  "less than 2h refunds nothing",
			hoursUntilBookingDate: 1,
			cost:                  50,
			want:                  0,
		},
		{
			name:                  "booking date already passed refunds nothing",
			hoursUntilBookingDate: -5,
			cost:                  50,
			want:                  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ServiceBookingRefund(tt.hoursUntilBookingDate, tt.cost)
			assert.Equal(t, tt.want, got)
		})
	}
}
