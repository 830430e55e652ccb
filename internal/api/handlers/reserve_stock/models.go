package reserve_stock

// ReserveStockRequest HTTP request model
type ReserveStockRequest struct {
	Resources map[string]int64 `json:"resources"`
	BookingID *int64           `json:"bookingId,omitempty"`
}

// ReserveStockResponse HTTP response model
type ReserveStockResponse struct {
	Reserved bool `json:"reserved"`
}
