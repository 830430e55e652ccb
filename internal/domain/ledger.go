package domain

import (
	"time"

	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

// CapacityLedgerEntry tracks, per (hotel, service), a pool of named
// sub-resources and a concurrent-booking-slot counter. The ledger is the
// source of truth for availability; bookings hold claims on its quantities.
//
// Invariants, enforced by guarded UPDATEs in storage (never by
// read-modify-write at the application layer):
//   - CurrentBookings <= MaxConcurrentBookings
//   - every Resources[r] >= 0
type CapacityLedgerEntry struct {
	ID                    int64
	HotelID               int64
	ServiceID             int64
	Resources             types.ResourceMap
	MaxConcurrentBookings int64
	CurrentBookings       int64
	IsAvailable           bool
	Notes                 *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasFreeSlots returns true if at least one concurrent-booking slot is free
func (e *CapacityLedgerEntry) HasFreeSlots() bool {
	return e.IsAvailable && e.CurrentBookings < e.MaxConcurrentBookings
}

// MissingResources returns the resource ids whose available quantity is
// below the required quantity, sorted for deterministic reporting.
func (e *CapacityLedgerEntry) MissingResources(required types.ResourceMap) []string {
	missing := make([]string, 0)
	for _, id := range required.Keys() {
		if e.Resources[id] < required[id] {
			missing = append(missing, id)
		}
	}
	return missing
}

// CapacityReport is the read-only answer of a capacity check
type CapacityReport struct {
	HasCapacity      bool
	MissingResources []string
}
