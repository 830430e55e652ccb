package create_service_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	catalogRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/catalog"
	customerRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/customer"
	capacityService "github.com/m04kA/HMS-ReservationService/internal/service/capacity"
)

// UseCase use case бронирования услуги отеля
type UseCase struct {
	catalogRepo        CatalogRepository
	customerRepo       CustomerRepository
	serviceBookingRepo ServiceBookingRepository
	capacitySvc        CapacityService
	financeRepo        FinanceRepository
	txManager          TransactionManager
	timeProvider       TimeProvider
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	customerRepo CustomerRepository,
	serviceBookingRepo ServiceBookingRepository,
	capacitySvc CapacityService,
	financeRepo FinanceRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:        catalogRepo,
		customerRepo:       customerRepo,
		serviceBookingRepo: serviceBookingRepo,
		capacitySvc:        capacitySvc,
		financeRepo:        financeRepo,
		txManager:          txManager,
		timeProvider:       &RealTimeProvider{},
		logger:             logger,
	}
}

// Execute выполняет use case бронирования услуги.
// Резервация capacity ledger, списание с баланса и создание бронирования
// выполняются в одной сериализуемой транзакции: резервация последнего
// слота двумя клиентами одновременно не пройдет дважды.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateServiceBooking: customer=%d, hotel=%d, service=%d, date=%s",
		req.CustomerID, req.HotelID, req.ServiceID, req.BookingDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateServiceBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу из каталога. Неактивная услуга недоступна.
	service, err := uc.catalogRepo.GetService(ctx, req.HotelID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateServiceBooking: service id=%d not found in hotel=%d", req.ServiceID, req.HotelID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateServiceBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Проверяем существование клиента
	if _, err := uc.customerRepo.GetByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			uc.logger.Warn("CreateServiceBooking: customer id=%d not found", req.CustomerID)
			return nil, ErrCustomerNotFound
		}
		uc.logger.Error("CreateServiceBooking: failed to get customer id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	// 4. Собираем карту требуемых ресурсов: схема услуги плюс
	// переопределения. Неизвестные услуге ресурсы отклоняются.
	if unknown := req.ResourceOverrides.UnknownKeys(service.RequiredResources); len(unknown) > 0 {
		uc.logger.Warn("CreateServiceBooking: overrides reference unknown resources: %v", unknown)
		return nil, fmt.Errorf("%w: %s", ErrUnknownResource, strings.Join(unknown, ", "))
	}
	required := service.RequiredResources.MergedWith(req.ResourceOverrides)
	if err := required.Validate(); err != nil {
		uc.logger.Warn("CreateServiceBooking: invalid resource map: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var result *domain.ServiceBooking

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Резервируем слот и ресурсы capacity ledger
		claim, err := uc.capacitySvc.Reserve(txCtx, req.HotelID, req.ServiceID, required)
		if err != nil {
			switch {
			case errors.Is(err, capacityService.ErrLedgerNotFound):
				uc.logger.Warn("CreateServiceBooking: ledger not found for hotel=%d service=%d", req.HotelID, req.ServiceID)
				return ErrLedgerNotFound
			case errors.Is(err, capacityService.ErrCapacityUnavailable):
				uc.logger.Warn("CreateServiceBooking: capacity unavailable for hotel=%d service=%d: %v",
					req.HotelID, req.ServiceID, err)
				// Пробрасываем список недостающих ресурсов до границы API
				var capErr *capacityService.CapacityUnavailableError
				if errors.As(err, &capErr) {
					return &CapacityUnavailableError{MissingResources: capErr.MissingResources}
				}
				return fmt.Errorf("%w: %v", ErrCapacityUnavailable, err)
			}
			uc.logger.Error("CreateServiceBooking: failed to reserve capacity: %v", err)
			return fmt.Errorf("%w: failed to reserve capacity: %v", ErrInternal, err)
		}

		// 5.2. Списываем стоимость услуги с баланса клиента.
		// Guard "balance >= cost" входит в сам UPDATE.
		if err := uc.customerRepo.Debit(txCtx, req.CustomerID, service.Cost); err != nil {
			if errors.Is(err, customerRepo.ErrInsufficientFunds) {
				uc.logger.Warn("CreateServiceBooking: customer id=%d cannot cover cost %.2f",
					req.CustomerID, service.Cost)
				return ErrInsufficientFunds
			}
			uc.logger.Error("CreateServiceBooking: failed to debit customer id=%d: %v", req.CustomerID, err)
			return fmt.Errorf("%w: failed to debit customer: %v", ErrInternal, err)
		}

		// 5.3. Создаем бронирование услуги. Зарезервированная карта
		// ресурсов сохраняется как квитанция: при отмене возвращается
		// ровно она.
		booking := &domain.ServiceBooking{
			HotelID:           req.HotelID,
			CustomerID:        req.CustomerID,
			ServiceID:         req.ServiceID,
			BookingDate:       req.BookingDate,
			RequiredResources: claim.Resources,
			Cost:              service.Cost,
			Status:            domain.ServiceBookingConfirmed,
		}

		created, err := uc.serviceBookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateServiceBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 5.4. Создаем платежную транзакцию за услугу
		if _, err := uc.financeRepo.CreatePayment(txCtx, &domain.PaymentTransaction{
			HotelID:          req.HotelID,
			CustomerID:       req.CustomerID,
			ServiceBookingID: &created.ID,
			Amount:           service.Cost,
			Kind:             domain.TransactionPayment,
			Status:           domain.TransactionCompleted,
		}); err != nil {
			uc.logger.Error("CreateServiceBooking: failed to create payment for booking id=%d: %v", created.ID, err)
			return fmt.Errorf("%w: failed to create payment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateServiceBooking: successfully created booking id=%d, cost=%.2f", result.ID, result.Cost)

	return &Response{
		ID:                result.ID,
		HotelID:           result.HotelID,
		CustomerID:        result.CustomerID,
		ServiceID:         result.ServiceID,
		BookingDate:       result.BookingDate,
		RequiredResources: result.RequiredResources,
		Cost:              result.Cost,
		Status:            string(result.Status),
		CreatedAt:         result.CreatedAt,
	}, nil
}
