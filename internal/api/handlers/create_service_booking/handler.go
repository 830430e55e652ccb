package create_service_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/HMS-ReservationService/internal/api/handlers"
	createServiceBooking "github.com/m04kA/HMS-ReservationService/internal/usecase/create_service_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается RFC3339"
	msgServiceNotFound     = "услуга не найдена"
	msgCustomerNotFound    = "клиент не найден"
	msgLedgerNotFound      = "учет ресурсов для услуги не настроен"
	msgCapacityUnavailable = "недостаточно ресурсов или свободных слотов"
	msgInsufficientFunds   = "недостаточно средств для оплаты услуги"
	msgUnknownResource     = "запрошен неизвестный услуге ресурс"
	msgConflict            = "не удалось завершить бронирование, попробуйте еще раз"
)

type Handler struct {
	useCase CreateServiceBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateServiceBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/service-bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateServiceBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /service-bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /service-bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createServiceBooking.ErrServiceNotFound):
			h.logger.Warn("POST /service-bookings - Service not found: hotel_id=%d, service_id=%d", req.HotelID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createServiceBooking.ErrCustomerNotFound):
			h.logger.Warn("POST /service-bookings - Customer not found: customer_id=%d", req.CustomerID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, createServiceBooking.ErrLedgerNotFound):
			h.logger.Warn("POST /service-bookings - Ledger not found: hotel_id=%d, service_id=%d", req.HotelID, req.ServiceID)
			handlers.RespondNotFound(w, msgLedgerNotFound)

		case errors.Is(err, createServiceBooking.ErrCapacityUnavailable):
			h.logger.Warn("POST /service-bookings - Capacity unavailable: hotel_id=%d, service_id=%d, error=%v", req.HotelID, req.ServiceID, err)
			var capErr *createServiceBooking.CapacityUnavailableError
			if errors.As(err, &capErr) {
				handlers.RespondCapacityUnavailable(w, msgCapacityUnavailable, capErr.MissingResources)
				return
			}
			handlers.RespondError(w, http.StatusConflict, msgCapacityUnavailable)

		case errors.Is(err, createServiceBooking.ErrInsufficientFunds):
			h.logger.Warn("POST /service-bookings - Insufficient funds: customer_id=%d", req.CustomerID)
			handlers.RespondError(w, http.StatusPaymentRequired, msgInsufficientFunds)

		case errors.Is(err, createServiceBooking.ErrUnknownResource):
			h.logger.Warn("POST /service-bookings - Unknown resource: %v", err)
			handlers.RespondBadRequest(w, msgUnknownResource)

		case errors.Is(err, createServiceBooking.ErrInvalidInput):
			h.logger.Warn("POST /service-bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case handlers.IsTxRetryExhausted(err):
			h.logger.Warn("POST /service-bookings - Transaction retries exhausted: customer_id=%d", req.CustomerID)
			handlers.RespondError(w, http.StatusConflict, msgConflict)

		default:
			h.logger.Error("POST /service-bookings - Failed: customer_id=%d, error=%v", req.CustomerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /service-bookings - Created: booking_id=%d, customer_id=%d", result.ID, req.CustomerID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
