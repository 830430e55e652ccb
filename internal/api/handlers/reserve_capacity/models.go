package reserve_capacity

// ReserveCapacityRequest HTTP request model
type ReserveCapacityRequest struct {
	Resources map[string]int64 `json:"resources"`
}

// ReserveCapacityResponse HTTP response model
type ReserveCapacityResponse struct {
	Reserved  bool             `json:"reserved"`
	Resources map[string]int64 `json:"resources"`
}
