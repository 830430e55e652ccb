package check_stock

import "github.com/m04kA/HMS-ReservationService/internal/domain"

// StockReportResponse HTTP response model
type StockReportResponse struct {
	HasStock         bool             `json:"hasStock"`
	MissingResources []string         `json:"missingResources"`
	AvailableStock   map[string]int64 `json:"availableStock"`
}

// FromDomainReport конвертирует отчет в HTTP response
func FromDomainReport(report *domain.StockReport) *StockReportResponse {
	return &StockReportResponse{
		HasStock:         report.HasStock,
		MissingResources: report.MissingResources,
		AvailableStock:   report.AvailableStock,
	}
}
