package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

func TestCapacityLedgerEntry_HasFreeSlots(t *testing.T) {
	tests := []struct {
		name        string
		current     int64
		max         int64
		isAvailable bool
		want        bool
	}{
		{"slots free", 2, 5, true, true},
		{"at capacity", 5, 5, true, false},
		{"ledger disabled", 0, 5, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &CapacityLedgerEntry{
				CurrentBookings:       tt.current,
				MaxConcurrentBookings: tt.max,
				IsAvailable:           tt.isAvailable,
			}
			assert.Equal(t, tt.want, e.HasFreeSlots())
		})
	}
}

func TestCapacityLedgerEntry_MissingResources(t *testing.T) {
	e := &CapacityLedgerEntry{
		Resources: types.ResourceMap{"staff": 2, "towel": 10},
	}

	tests := []struct {
		name     string
		required types.ResourceMap
		want     []string
	}{
		{"everything available", types.ResourceMap{"staff": 2, "towel": 5}, []string{}},
		{"one resource short", types.ResourceMap{"staff": 3, "towel": 5}, []string{"staff"}},
		{"unknown resource is missing", types.ResourceMap{"sauna": 1}, []string{"sauna"}},
		{"result is sorted", types.ResourceMap{"towel": 20, "staff": 5}, []string{"staff", "towel"}},
		{"empty requirement", types.ResourceMap{}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.MissingResources(tt.required))
		})
	}
}
