package cancel_service_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HMS-ReservationService/internal/api/handlers"
	"github.com/m04kA/HMS-ReservationService/internal/api/middleware"
	cancelServiceBooking "github.com/m04kA/HMS-ReservationService/internal/usecase/cancel_service_booking"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования услуги"
	msgInvalidBody      = "некорректное тело запроса"
	msgNotFound         = "бронирование услуги не найдено"
	msgForbidden        = "доступ запрещен"
	msgAlreadyCancelled = "бронирование услуги уже отменено"
	msgConflict         = "не удалось завершить отмену, попробуйте еще раз"
	msgUnauthorized     = "пользователь не аутентифицирован"
)

type Handler struct {
	useCase CancelServiceBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelServiceBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/service-bookings/{serviceBookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["serviceBookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /service-bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("PATCH /service-bookings/{id}/cancel - Missing user in context: booking_id=%d", bookingID)
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var req CancelServiceBookingRequest
	if r.ContentLength > 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("PATCH /service-bookings/{id}/cancel - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBody)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &cancelServiceBooking.Request{
		ServiceBookingID: bookingID,
		CustomerID:       userID,
		Reason:           req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelServiceBooking.ErrServiceBookingNotFound):
			h.logger.Warn("PATCH /service-bookings/{id}/cancel - Not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelServiceBooking.ErrAccessDenied):
			h.logger.Warn("PATCH /service-bookings/{id}/cancel - Access denied: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, cancelServiceBooking.ErrAlreadyCancelled):
			h.logger.Warn("PATCH /service-bookings/{id}/cancel - Already cancelled: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyCancelled)

		case errors.Is(err, cancelServiceBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /service-bookings/{id}/cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBody)

		case handlers.IsTxRetryExhausted(err):
			h.logger.Warn("PATCH /service-bookings/{id}/cancel - Transaction retries exhausted: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgConflict)

		default:
			h.logger.Error("PATCH /service-bookings/{id}/cancel - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /service-bookings/{id}/cancel - Cancelled: booking_id=%d, refund=%.2f", result.ID, result.RefundAmount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
