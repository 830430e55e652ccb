package release_capacity

// ReleaseCapacityRequest HTTP request model
type ReleaseCapacityRequest struct {
	Resources map[string]int64 `json:"resources"`
}

// ReleaseCapacityResponse HTTP response model
type ReleaseCapacityResponse struct {
	Released bool `json:"released"`
}
