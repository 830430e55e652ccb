package release_capacity

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HMS-ReservationService/internal/api/handlers"
	capacityService "github.com/m04kA/HMS-ReservationService/internal/service/capacity"
	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

const (
	msgInvalidID      = "некорректный ID отеля или услуги"
	msgInvalidBody    = "некорректное тело запроса"
	msgLedgerNotFound = "учет ресурсов для услуги не настроен"
	msgConflict       = "не удалось завершить возврат, попробуйте еще раз"
)

type Handler struct {
	service CapacityService
	logger  Logger
}

func NewHandler(service CapacityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/hotels/{hotelId}/services/{serviceId}/capacity/release
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	hotelID, err1 := strconv.ParseInt(vars["hotelId"], 10, 64)
	serviceID, err2 := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err1 != nil || err2 != nil {
		h.logger.Warn("POST /capacity/release - Invalid path parameters: %v %v", err1, err2)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req ReleaseCapacityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /capacity/release - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	resources := types.ResourceMap(req.Resources)
	if err := resources.Validate(); err != nil {
		h.logger.Warn("POST /capacity/release - Invalid resource map: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	err := h.service.Release(r.Context(), hotelID, serviceID, resources)
	if err != nil {
		switch {
		case errors.Is(err, capacityService.ErrLedgerNotFound):
			h.logger.Warn("POST /capacity/release - Ledger not found: hotel_id=%d, service_id=%d", hotelID, serviceID)
			handlers.RespondNotFound(w, msgLedgerNotFound)

		case handlers.IsTxRetryExhausted(err):
			h.logger.Warn("POST /capacity/release - Transaction retries exhausted: hotel_id=%d, service_id=%d", hotelID, serviceID)
			handlers.RespondError(w, http.StatusConflict, msgConflict)

		default:
			h.logger.Error("POST /capacity/release - Failed: hotel_id=%d, service_id=%d, error=%v", hotelID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /capacity/release - Released: hotel_id=%d, service_id=%d", hotelID, serviceID)
	handlers.RespondJSON(w, http.StatusOK, ReleaseCapacityResponse{Released: true})
}
