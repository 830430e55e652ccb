package check_out

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/booking"
)

// UseCase use case выселения по бронированию
type UseCase struct {
	bookingRepo  BookingRepository
	roomRepo     RoomRepository
	financeRepo  FinanceRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	financeRepo FinanceRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		roomRepo:     roomRepo,
		financeRepo:  financeRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case выселения.
// Переход checked_in -> checked_out, освобождение номеров и финансовая
// запись выполняются в одной транзакции, поэтому платеж создается ровно
// один раз на переход.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckOut: booking=%d", req.BookingID)

	if req.BookingID <= 0 {
		uc.logger.Warn("CheckOut: invalid booking id=%d", req.BookingID)
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	var result *domain.RoomBooking
	var payment *domain.PaymentTransaction

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем бронирование с блокировкой (FOR UPDATE)
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CheckOut: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CheckOut: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2. Проверяем допустимость перехода
		if !booking.CanCheckOut() {
			uc.logger.Warn("CheckOut: booking id=%d is in status %s", booking.ID, booking.Status)
			return fmt.Errorf("%w: cannot check out from status %s", ErrInvalidTransition, booking.Status)
		}

		// 3. Переводим бронирование в checked_out условным UPDATE:
		// статус, отметка выезда и платежный статус меняются атомарно
		if err := uc.bookingRepo.SetCheckedOut(txCtx, booking.ID, now); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusNotChanged) {
				uc.logger.Warn("CheckOut: booking id=%d changed status concurrently", booking.ID)
				return fmt.Errorf("%w: booking status changed", ErrInvalidTransition)
			}
			uc.logger.Error("CheckOut: failed to set checked out for booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		// 4. Освобождаем номера
		if err := uc.roomRepo.SetStatus(txCtx, booking.RoomIDs, domain.RoomAvailable); err != nil {
			uc.logger.Error("CheckOut: failed to release rooms for booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update room statuses: %v", ErrInternal, err)
		}

		// 5. Создаем платежную транзакцию на полную стоимость проживания
		created, err := uc.financeRepo.CreatePayment(txCtx, &domain.PaymentTransaction{
			HotelID:    booking.HotelID,
			CustomerID: booking.CustomerID,
			BookingID:  &booking.ID,
			Amount:     booking.TotalAmount,
			Kind:       domain.TransactionPayment,
			Status:     domain.TransactionApproved,
		})
		if err != nil {
			uc.logger.Error("CheckOut: failed to create payment for booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to create payment: %v", ErrInternal, err)
		}

		// 6. Выставляем инвойс по платежу
		if _, err := uc.financeRepo.CreateInvoice(txCtx, &domain.Invoice{
			PaymentID:   created.ID,
			HotelID:     booking.HotelID,
			CustomerID:  booking.CustomerID,
			Amount:      created.Amount,
			Description: fmt.Sprintf("Room booking #%d, %d night(s)", booking.ID, booking.Nights()),
		}); err != nil {
			uc.logger.Error("CheckOut: failed to create invoice for booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to create invoice: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusCheckedOut
		booking.PaymentStatus = domain.PaymentPaid
		booking.CheckedOutAt = &now
		result = booking
		payment = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CheckOut: booking id=%d checked out, payment id=%d amount=%.2f",
		result.ID, payment.ID, payment.Amount)

	return &Response{
		ID:            result.ID,
		Status:        string(result.Status),
		PaymentStatus: string(result.PaymentStatus),
		PaymentID:     payment.ID,
		Amount:        payment.Amount,
		CheckedOutAt:  now,
	}, nil
}
