package check_in

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/booking"
)

// UseCase use case заселения по бронированию
type UseCase struct {
	bookingRepo BookingRepository
	roomRepo    RoomRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case заселения.
// Переход booked -> checked_in и смена статусов номеров выполняются
// в одной транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckIn: booking=%d", req.BookingID)

	if req.BookingID <= 0 {
		uc.logger.Warn("CheckIn: invalid booking id=%d", req.BookingID)
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	var result *domain.RoomBooking

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем бронирование с блокировкой (FOR UPDATE)
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CheckIn: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CheckIn: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2. Проверяем допустимость перехода
		if !booking.CanCheckIn() {
			uc.logger.Warn("CheckIn: booking id=%d is in status %s", booking.ID, booking.Status)
			return fmt.Errorf("%w: cannot check in from status %s", ErrInvalidTransition, booking.Status)
		}

		// 3. Переводим бронирование в checked_in условным UPDATE
		if err := uc.bookingRepo.UpdateStatusIf(txCtx, booking.ID, domain.StatusBooked, domain.StatusCheckedIn); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusNotChanged) {
				uc.logger.Warn("CheckIn: booking id=%d changed status concurrently", booking.ID)
				return fmt.Errorf("%w: booking status changed", ErrInvalidTransition)
			}
			uc.logger.Error("CheckIn: failed to update status for booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking status: %v", ErrInternal, err)
		}

		// 4. Помечаем номера занятыми
		if err := uc.roomRepo.SetStatus(txCtx, booking.RoomIDs, domain.RoomOccupied); err != nil {
			uc.logger.Error("CheckIn: failed to mark rooms occupied for booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update room statuses: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusCheckedIn
		result = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CheckIn: booking id=%d checked in", result.ID)

	return &Response{
		ID:        result.ID,
		Status:    string(result.Status),
		RoomIDs:   result.RoomIDs,
		UpdatedAt: result.UpdatedAt,
	}, nil
}
