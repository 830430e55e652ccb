package low_stock_alerts

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HMS-ReservationService/internal/api/handlers"
	stockService "github.com/m04kA/HMS-ReservationService/internal/service/stock"
)

const (
	msgInvalidID        = "некорректный ID отеля или услуги"
	msgInvalidThreshold = "некорректный параметр threshold, ожидается число в (0, 1]"
	msgLedgerNotFound   = "складской учет для услуги не настроен"
)

type Handler struct {
	service StockService
	logger  Logger
}

func NewHandler(service StockService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/hotels/{hotelId}/services/{serviceId}/stock/alerts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	hotelID, err1 := strconv.ParseInt(vars["hotelId"], 10, 64)
	serviceID, err2 := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err1 != nil || err2 != nil {
		h.logger.Warn("GET /stock/alerts - Invalid path parameters: %v %v", err1, err2)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var threshold float64
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 || parsed > 1 {
			h.logger.Warn("GET /stock/alerts - Invalid threshold: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidThreshold)
			return
		}
		threshold = parsed
	}

	alerts, err := h.service.LowStockAlerts(r.Context(), hotelID, serviceID, threshold)
	if err != nil {
		switch {
		case errors.Is(err, stockService.ErrLedgerNotFound):
			h.logger.Warn("GET /stock/alerts - Ledger not found: hotel_id=%d, service_id=%d", hotelID, serviceID)
			handlers.RespondNotFound(w, msgLedgerNotFound)

		default:
			h.logger.Error("GET /stock/alerts - Failed: hotel_id=%d, service_id=%d, error=%v", hotelID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainAlerts(alerts))
}
