package domain

import (
	"time"

	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

// StockAction kind of a stock ledger mutation recorded in history
type StockAction string

const (
	StockActionReserve StockAction = "reserve"
	StockActionRelease StockAction = "release"
	StockActionUpdate  StockAction = "update"
)

// StockLedgerEntry tracks, per (hotel, service), consumable or reusable
// inventory split into total vs. currently reserved quantities.
//
// Invariant, enforced by guarded UPDATEs in storage:
// ReservedStock[r] <= Inventory[r] for every r.
type StockLedgerEntry struct {
	ID            int64
	HotelID       int64
	ServiceID     int64
	Inventory     types.ResourceMap
	ReservedStock types.ResourceMap

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AvailableStock returns inventory minus reserved for a resource,
// floored at zero.
func (e *StockLedgerEntry) AvailableStock(resourceID string) int64 {
	available := e.Inventory[resourceID] - e.ReservedStock[resourceID]
	if available < 0 {
		return 0
	}
	return available
}

// AvailableMap returns available quantities for every inventoried resource
func (e *StockLedgerEntry) AvailableMap() types.ResourceMap {
	out := make(types.ResourceMap, len(e.Inventory))
	for id := range e.Inventory {
		out[id] = e.AvailableStock(id)
	}
	return out
}

// MissingStock returns the resource ids whose available stock is below the
// required quantity, sorted for deterministic reporting.
func (e *StockLedgerEntry) MissingStock(required types.ResourceMap) []string {
	missing := make([]string, 0)
	for _, id := range required.Keys() {
		if e.AvailableStock(id) < required[id] {
			missing = append(missing, id)
		}
	}
	return missing
}

// StockHistoryEntry append-only record of a stock ledger mutation with a
// post-mutation snapshot of reserved quantities
type StockHistoryEntry struct {
	ID        int64
	LedgerID  int64
	Action    StockAction
	BookingID *int64
	Resources types.ResourceMap
	Snapshot  types.ResourceMap
	Reason    *string
	CreatedAt time.Time
}

// StockReport is the read-only answer of a stock availability check
type StockReport struct {
	HasStock         bool
	MissingResources []string
	AvailableStock   types.ResourceMap
}

// LowStockAlert reports a resource whose reserved share reached a threshold
type LowStockAlert struct {
	ResourceID string
	Total      int64
	Reserved   int64
	UsageRatio float64
}
