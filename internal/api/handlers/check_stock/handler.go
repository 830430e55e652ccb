package check_stock

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
	msgInvalidResources = "некорректный параметр resources, ожидается id:qty[,id:qty]"
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

// Handle GET /api/v1/hotels/{hotelId}/services/{serviceId}/stock
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	hotelID, err1 := strconv.ParseInt(vars["hotelId"], 10, 64)
	serviceID, err2 := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err1 != nil || err2 != nil {
		h.logger.Warn("GET /stock - Invalid path parameters: %v %v", err1, err2)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	required, err := handlers.ParseResourceParam(r.URL.Query().Get("resources"))
	if err != nil {
		h.logger.Warn("GET /stock - Invalid resources param: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResources)
		return
	}

	report, err := h.service.Check(r.Context(), hotelID, serviceID, required)
	if err != nil {
		switch {
		case errors.Is(err, stockService.ErrLedgerNotFound):
			h.logger.Warn("GET /stock - Ledger not found: hotel_id=%d, service_id=%d", hotelID, serviceID)
			handlers.RespondNotFound(w, msgLedgerNotFound)

		default:
			h.logger.Error("GET /stock - Failed: hotel_id=%d, service_id=%d, error=%v", hotelID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainReport(report))
}
