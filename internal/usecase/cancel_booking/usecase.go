package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/customer"
)

// UseCase use case отмены бронирования номеров
type UseCase struct {
	bookingRepo      BookingRepository
	roomRepo         RoomRepository
	customerRepo     CustomerRepository
	cancellationRepo CancellationRepository
	financeRepo      FinanceRepository
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	customerRepo CustomerRepository,
	cancellationRepo CancellationRepository,
	financeRepo FinanceRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		roomRepo:         roomRepo,
		customerRepo:     customerRepo,
		cancellationRepo: cancellationRepo,
		financeRepo:      financeRepo,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case отмены бронирования.
// Расчет штрафа, списание с баланса, смена статусов и финансовые записи
// выполняются в одной сериализуемой транзакции: либо все эффекты отмены
// применяются, либо ни один.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d, canceledBy=%d", req.BookingID, req.CanceledBy)

	if req.BookingID <= 0 {
		uc.logger.Warn("CancelBooking: invalid booking id=%d", req.BookingID)
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.CanceledBy <= 0 {
		uc.logger.Warn("CancelBooking: invalid canceledBy=%d", req.CanceledBy)
		return nil, fmt.Errorf("%w: canceledBy must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	var result *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Получаем бронирование с блокировкой (FOR UPDATE)
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2. Проверяем допустимость отмены. Повторная отмена или отмена
		// после выселения отклоняются.
		if !booking.CanBeCancelled() {
			uc.logger.Warn("CancelBooking: booking id=%d is in status %s", booking.ID, booking.Status)
			return fmt.Errorf("%w: cannot cancel from status %s", ErrInvalidTransition, booking.Status)
		}

		// 3. Считаем штраф по политике отмены
		penalty := domain.CancellationPenalty(
			booking.Status,
			booking.HoursUntilCheckIn(now),
			booking.CancellationGraceHours,
			booking.TotalAmount,
		)

		// 4. Если штраф начислен, списываем его с баланса клиента.
		// Guard "balance >= penalty" входит в сам UPDATE.
		if penalty > 0 {
			if err := uc.customerRepo.Debit(txCtx, booking.CustomerID, penalty); err != nil {
				if errors.Is(err, customerRepo.ErrInsufficientFunds) {
					uc.logger.Warn("CancelBooking: customer id=%d cannot cover penalty %.2f",
						booking.CustomerID, penalty)
					return ErrInsufficientFunds
				}
				uc.logger.Error("CancelBooking: failed to debit customer id=%d: %v", booking.CustomerID, err)
				return fmt.Errorf("%w: failed to debit customer: %v", ErrInternal, err)
			}
		}

		// 5. Переводим бронирование в cancelled условным UPDATE
		if err := uc.bookingRepo.UpdateStatusIf(txCtx, booking.ID, booking.Status, domain.StatusCancelled); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusNotChanged) {
				uc.logger.Warn("CancelBooking: booking id=%d changed status concurrently", booking.ID)
				return fmt.Errorf("%w: booking status changed", ErrInvalidTransition)
			}
			uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking status: %v", ErrInternal, err)
		}

		// 6. Освобождаем номера
		if err := uc.roomRepo.SetStatus(txCtx, booking.RoomIDs, domain.RoomAvailable); err != nil {
			uc.logger.Error("CancelBooking: failed to release rooms for booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update room statuses: %v", ErrInternal, err)
		}

		// 7. Пишем запись об отмене
		if _, err := uc.cancellationRepo.Create(txCtx, &domain.CancellationRecord{
			BookingID:      booking.ID,
			CanceledBy:     req.CanceledBy,
			PenaltyApplied: penalty,
			PenaltyPaid:    penalty > 0,
		}); err != nil {
			uc.logger.Error("CancelBooking: failed to create cancellation record for booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to create cancellation record: %v", ErrInternal, err)
		}

		// 8. Финансовые эффекты: штрафная транзакция с инвойсом либо
		// отметка, что платить нечего
		if penalty > 0 {
			payment, err := uc.financeRepo.CreatePayment(txCtx, &domain.PaymentTransaction{
				HotelID:    booking.HotelID,
				CustomerID: booking.CustomerID,
				BookingID:  &booking.ID,
				Amount:     penalty,
				Kind:       domain.TransactionPenalty,
				Status:     domain.TransactionCompleted,
			})
			if err != nil {
				uc.logger.Error("CancelBooking: failed to create penalty payment for booking id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to create penalty payment: %v", ErrInternal, err)
			}

			if _, err := uc.financeRepo.CreateInvoice(txCtx, &domain.Invoice{
				PaymentID:   payment.ID,
				HotelID:     booking.HotelID,
				CustomerID:  booking.CustomerID,
				Amount:      penalty,
				Description: fmt.Sprintf("Cancellation penalty for booking #%d", booking.ID),
			}); err != nil {
				uc.logger.Error("CancelBooking: failed to create penalty invoice for booking id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to create penalty invoice: %v", ErrInternal, err)
			}

			if err := uc.bookingRepo.SetPaymentStatus(txCtx, booking.ID, domain.PaymentPaid); err != nil {
				uc.logger.Error("CancelBooking: failed to set payment status for booking id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to set payment status: %v", ErrInternal, err)
			}
		} else {
			if err := uc.bookingRepo.SetPaymentStatus(txCtx, booking.ID, domain.PaymentNoPenalties); err != nil {
				uc.logger.Error("CancelBooking: failed to set payment status for booking id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to set payment status: %v", ErrInternal, err)
			}
		}

		result = &Response{
			ID:             booking.ID,
			Status:         string(domain.StatusCancelled),
			PenaltyApplied: penalty,
			PenaltyPaid:    penalty > 0,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelBooking: booking id=%d cancelled, penalty=%.2f", result.ID, result.PenaltyApplied)
	return result, nil
}
