package release_stock

// ReleaseStockRequest HTTP request model
type ReleaseStockRequest struct {
	Resources map[string]int64 `json:"resources"`
	BookingID *int64           `json:"bookingId,omitempty"`
}

// ReleaseStockResponse HTTP response model
type ReleaseStockResponse struct {
	Released bool `json:"released"`
}
