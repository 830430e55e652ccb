package update_stock

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HMS-ReservationService/internal/api/handlers"
	stockService "github.com/m04kA/HMS-ReservationService/internal/service/stock"
	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

const (
	msgInvalidID      = "некорректный ID отеля или услуги"
	msgInvalidBody    = "некорректное тело запроса"
	msgLedgerNotFound = "складской учет для услуги не настроен"
	msgConflict       = "не удалось завершить обновление, попробуйте еще раз"
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

// Handle PUT /api/v1/hotels/{hotelId}/services/{serviceId}/stock
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	hotelID, err1 := strconv.ParseInt(vars["hotelId"], 10, 64)
	serviceID, err2 := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err1 != nil || err2 != nil {
		h.logger.Warn("PUT /stock - Invalid path parameters: %v %v", err1, err2)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req UpdateStockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /stock - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	err := h.service.UpdateTotals(r.Context(), hotelID, serviceID, types.ResourceMap(req.Totals), req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, stockService.ErrLedgerNotFound):
			h.logger.Warn("PUT /stock - Ledger not found: hotel_id=%d, service_id=%d", hotelID, serviceID)
			handlers.RespondNotFound(w, msgLedgerNotFound)

		case errors.Is(err, stockService.ErrInvalidInput):
			h.logger.Warn("PUT /stock - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBody)

		case handlers.IsTxRetryExhausted(err):
			h.logger.Warn("PUT /stock - Transaction retries exhausted: hotel_id=%d, service_id=%d", hotelID, serviceID)
			handlers.RespondError(w, http.StatusConflict, msgConflict)

		default:
			h.logger.Error("PUT /stock - Failed: hotel_id=%d, service_id=%d, error=%v", hotelID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /stock - Updated: hotel_id=%d, service_id=%d", hotelID, serviceID)
	handlers.RespondJSON(w, http.StatusOK, UpdateStockResponse{Updated: true})
}
