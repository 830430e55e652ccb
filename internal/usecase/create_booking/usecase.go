package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	customerRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/customer"
)

// UseCase use case для создания бронирования номеров
type UseCase struct {
	roomRepo     RoomRepository
	bookingRepo  BookingRepository
	customerRepo CustomerRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	roomRepo RoomRepository,
	bookingRepo BookingRepository,
	customerRepo CustomerRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		roomRepo:     roomRepo,
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Использует сериализуемую транзакцию для предотвращения гонки данных:
// два конкурентных бронирования одного номера на пересекающиеся даты
// не пройдут оба.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, hotel=%d, rooms=%v, checkIn=%s, checkOut=%s",
		req.CustomerID, req.HotelID, req.RoomIDs,
		req.CheckIn.Format(domain.DateFormat), req.CheckOut.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование клиента
	if _, err := uc.customerRepo.GetByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			uc.logger.Warn("CreateBooking: customer id=%d not found", req.CustomerID)
			return nil, ErrCustomerNotFound
		}
		uc.logger.Error("CreateBooking: failed to get customer id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	var result *domain.RoomBooking

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем номера с блокировкой (FOR UPDATE)
		rooms, err := uc.roomRepo.GetByIDs(txCtx, req.HotelID, req.RoomIDs)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get rooms: %v", err)
			return fmt.Errorf("%w: failed to get rooms: %v", ErrInternal, err)
		}

		if len(rooms) != len(req.RoomIDs) {
			uc.logger.Warn("CreateBooking: requested %d rooms, found %d in hotel=%d",
				len(req.RoomIDs), len(rooms), req.HotelID)
			return ErrRoomNotFound
		}

		// 3.2. Проверяем доступность каждого номера на выбранные даты
		var totalAmount float64
		nights := (&domain.RoomBooking{CheckIn: req.CheckIn, CheckOut: req.CheckOut}).Nights()
		for _, room := range rooms {
			if !room.IsBookable() {
				uc.logger.Warn("CreateBooking: room id=%d is under maintenance", room.ID)
				return fmt.Errorf("%w: room %d", ErrRoomNotAvailable, room.ID)
			}

			overlaps, err := uc.roomRepo.HasOverlappingBooking(txCtx, room.ID, req.CheckIn, req.CheckOut)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to check overlap for room id=%d: %v", room.ID, err)
				return fmt.Errorf("%w: failed to check room availability: %v", ErrInternal, err)
			}
			if overlaps {
				uc.logger.Warn("CreateBooking: room id=%d has an overlapping booking", room.ID)
				return fmt.Errorf("%w: room %d", ErrRoomNotAvailable, room.ID)
			}

			totalAmount += float64(nights) * room.PricePerNight
		}

		// 3.3. Создаем бронирование. Стоимость фиксируется на момент
		// создания и далее не пересчитывается.
		booking := &domain.RoomBooking{
			HotelID:                req.HotelID,
			CustomerID:             req.CustomerID,
			CheckIn:                req.CheckIn,
			CheckOut:               req.CheckOut,
			Status:                 domain.StatusBooked,
			TotalAmount:            totalAmount,
			PaymentStatus:          domain.PaymentWaiting,
			CancellationGraceHours: domain.DefaultCancellationGraceHours,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 3.4. Привязываем номера к бронированию
		if err := uc.bookingRepo.AddRooms(txCtx, created.ID, req.RoomIDs); err != nil {
			uc.logger.Error("CreateBooking: failed to add rooms to booking id=%d: %v", created.ID, err)
			return fmt.Errorf("%w: failed to add rooms: %v", ErrInternal, err)
		}
		created.RoomIDs = req.RoomIDs

		// 3.5. Помечаем свободные номера как забронированные. Номер может
		// быть физически занят другим гостем на других датах, тогда его
		// статус не меняется и это не ошибка.
		for _, room := range rooms {
			if _, err := uc.roomRepo.SetStatusIf(txCtx, room.ID, domain.RoomAvailable, domain.RoomBooked); err != nil {
				uc.logger.Error("CreateBooking: failed to mark room id=%d booked: %v", room.ID, err)
				return fmt.Errorf("%w: failed to update room status: %v", ErrInternal, err)
			}
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, total=%.2f", result.ID, result.TotalAmount)

	return &Response{
		ID:                     result.ID,
		HotelID:                result.HotelID,
		CustomerID:             result.CustomerID,
		RoomIDs:                result.RoomIDs,
		CheckIn:                result.CheckIn,
		CheckOut:               result.CheckOut,
		Status:                 string(result.Status),
		TotalAmount:            result.TotalAmount,
		PaymentStatus:          string(result.PaymentStatus),
		CancellationGraceHours: result.CancellationGraceHours,
		CreatedAt:              result.CreatedAt,
		UpdatedAt:              result.UpdatedAt,
	}, nil
}
