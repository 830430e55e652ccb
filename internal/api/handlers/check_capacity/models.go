package check_capacity

import "github.com/m04kA/HMS-ReservationService/internal/domain"

// CapacityReportResponse HTTP response model
type CapacityReportResponse struct {
	HasCapacity      bool     `json:"hasCapacity"`
	MissingResources []string `json:"missingResources"`
}

// FromDomainReport конвертирует отчет в HTTP response
func FromDomainReport(report *domain.CapacityReport) *CapacityReportResponse {
	return &CapacityReportResponse{
		HasCapacity:      report.HasCapacity,
		MissingResources: report.MissingResources,
	}
}
