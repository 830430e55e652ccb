package cancel_service_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	serviceBookingRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/servicebooking"
)

// UseCase use case отмены бронирования услуги
type UseCase struct {
	serviceBookingRepo ServiceBookingRepository
	customerRepo       CustomerRepository
	capacitySvc        CapacityService
	financeRepo        FinanceRepository
	txManager          TransactionManager
	timeProvider       TimeProvider
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceBookingRepo ServiceBookingRepository,
	customerRepo CustomerRepository,
	capacitySvc CapacityService,
	financeRepo FinanceRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceBookingRepo: serviceBookingRepo,
		customerRepo:       customerRepo,
		capacitySvc:        capacitySvc,
		financeRepo:        financeRepo,
		txManager:          txManager,
		timeProvider:       &RealTimeProvider{},
		logger:             logger,
	}
}

// Execute выполняет use case отмены бронирования услуги.
// Возврат ресурсов в capacity ledger, возврат средств и смена статуса
// выполняются в одной сериализуемой транзакции. Возвращается ровно та
// карта ресурсов, что была зарезервирована при создании.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelServiceBooking: booking=%d, customer=%d", req.ServiceBookingID, req.CustomerID)

	if req.ServiceBookingID <= 0 {
		uc.logger.Warn("CancelServiceBooking: invalid booking id=%d", req.ServiceBookingID)
		return nil, fmt.Errorf("%w: serviceBookingID must be positive", ErrInvalidInput)
	}
	if req.CustomerID <= 0 {
		uc.logger.Warn("CancelServiceBooking: invalid customer id=%d", req.CustomerID)
		return nil, fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}
	if len(req.Reason) > domain.MaxCancellationReasonLength {
		uc.logger.Warn("CancelServiceBooking: reason too long (%d chars)", len(req.Reason))
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	now := uc.timeProvider.Now()

	var result *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Получаем бронирование услуги с блокировкой (FOR UPDATE)
		booking, err := uc.serviceBookingRepo.GetByID(txCtx, req.ServiceBookingID)
		if err != nil {
			if errors.Is(err, serviceBookingRepo.ErrServiceBookingNotFound) {
				uc.logger.Warn("CancelServiceBooking: booking id=%d not found", req.ServiceBookingID)
				return ErrServiceBookingNotFound
			}
			uc.logger.Error("CancelServiceBooking: failed to get booking id=%d: %v", req.ServiceBookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2. Отменять может только владелец бронирования
		if booking.CustomerID != req.CustomerID {
			uc.logger.Warn("CancelServiceBooking: customer id=%d is not the owner of booking id=%d",
				req.CustomerID, booking.ID)
			return ErrAccessDenied
		}

		// 3. Повторная отмена отклоняется
		if booking.IsCancelled() {
			uc.logger.Warn("CancelServiceBooking: booking id=%d is already cancelled", booking.ID)
			return ErrAlreadyCancelled
		}

		// 4. Считаем возврат по политике уведомления
		refund := domain.ServiceBookingRefund(booking.HoursUntilBookingDate(now), booking.Cost)

		// 5. Переводим бронирование в cancelled условным UPDATE
		if err := uc.serviceBookingRepo.CancelIf(txCtx, booking.ID, refund, req.Reason); err != nil {
			if errors.Is(err, serviceBookingRepo.ErrStatusNotChanged) {
				uc.logger.Warn("CancelServiceBooking: booking id=%d changed status concurrently", booking.ID)
				return ErrAlreadyCancelled
			}
			uc.logger.Error("CancelServiceBooking: failed to cancel booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}

		// 6. Возвращаем в capacity ledger ровно ту карту ресурсов,
		// что была зарезервирована при создании
		if err := uc.capacitySvc.Release(txCtx, booking.HotelID, booking.ServiceID, booking.RequiredResources); err != nil {
			uc.logger.Error("CancelServiceBooking: failed to release capacity for booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to release capacity: %v", ErrInternal, err)
		}

		// 7. Если возврат начислен, зачисляем его на баланс и пишем
		// финансовую запись
		if refund > 0 {
			if err := uc.customerRepo.Credit(txCtx, booking.CustomerID, refund); err != nil {
				uc.logger.Error("CancelServiceBooking: failed to credit customer id=%d: %v", booking.CustomerID, err)
				return fmt.Errorf("%w: failed to credit customer: %v", ErrInternal, err)
			}

			if _, err := uc.financeRepo.CreatePayment(txCtx, &domain.PaymentTransaction{
				HotelID:          booking.HotelID,
				CustomerID:       booking.CustomerID,
				ServiceBookingID: &booking.ID,
				Amount:           refund,
				Kind:             domain.TransactionRefund,
				Status:           domain.TransactionCompleted,
			}); err != nil {
				uc.logger.Error("CancelServiceBooking: failed to create refund payment for booking id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to create refund payment: %v", ErrInternal, err)
			}
		}

		result = &Response{
			ID:           booking.ID,
			Status:       string(domain.ServiceBookingCancelled),
			RefundAmount: refund,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelServiceBooking: booking id=%d cancelled, refund=%.2f", result.ID, result.RefundAmount)
	return result, nil
}
