package update_stock

// UpdateStockRequest HTTP request model
type UpdateStockRequest struct {
	Totals map[string]int64 `json:"totals"`
	Reason *string          `json:"reason,omitempty"`
}

// UpdateStockResponse HTTP response model
type UpdateStockResponse struct {
	Updated bool `json:"updated"`
}
