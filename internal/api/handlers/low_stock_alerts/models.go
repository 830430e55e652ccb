package low_stock_alerts

import "github.com/m04kA/HMS-ReservationService/internal/domain"

// LowStockAlertResponse HTTP response model одной позиции
type LowStockAlertResponse struct {
	ResourceID string  `json:"resourceId"`
	Total      int64   `json:"total"`
	Reserved   int64   `json:"reserved"`
	UsageRatio float64 `json:"usageRatio"`
}

// AlertListResponse HTTP response model списка позиций
type AlertListResponse struct {
	Alerts []LowStockAlertResponse `json:"alerts"`
}

// FromDomainAlerts конвертирует список в HTTP response
func FromDomainAlerts(alerts []domain.LowStockAlert) *AlertListResponse {
	out := make([]LowStockAlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, LowStockAlertResponse{
			ResourceID: a.ResourceID,
			Total:      a.Total,
			Reserved:   a.Reserved,
			UsageRatio: a.UsageRatio,
		})
	}
	return &AlertListResponse{Alerts: out}
}
