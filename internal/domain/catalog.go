package domain

import "github.com/m04kA/HMS-ReservationService/pkg/types"

// HotelService read-only master data of an ancillary service offered by a
// hotel. RequiredResources doubles as the resource schema: reservation
// requests may override quantities but may not introduce resource ids the
// service does not declare.
type HotelService struct {
	ID                int64
	HotelID           int64
	Name              string
	Cost              float64
	RequiredResources types.ResourceMap
	IsActive          bool
}

// Customer balance surface of the customer record. Balance moves only
// through guarded atomic debit/credit in storage.
type Customer struct {
	ID       int64
	FullName string
	Balance  float64
}
