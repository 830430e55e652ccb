package domain

// RoomStatus represents the current physical status of a room
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomBooked      RoomStatus = "booked"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
)

// Room represents a hotel room. The status field answers "what is the room
// doing now"; whether a date range is free is answered by the interval
// overlap check against active bookings, not by this field.
type Room struct {
	ID            int64
	HotelID       int64
	RoomNumber    string
	Type          string
	Status        RoomStatus
	PricePerNight float64
}

// IsBookable returns true if the room can accept new bookings at all.
// Rooms under maintenance never accept bookings.
func (r *Room) IsBookable() bool {
	return r.Status != RoomMaintenance
}
