package capacity

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	capacityRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/capacity"
	"github.com/m04kA/HMS-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

// Service сервис capacity ledger.
// Reserve и Release выполняются в транзакции вызывающего usecase, если она
// уже открыта, иначе открывают собственную сериализуемую транзакцию.
type Service struct {
	ledgerRepo LedgerRepository
	txManager  TransactionManager
	logger     Logger
}

// NewService создает новый экземпляр сервиса capacity ledger
func NewService(ledgerRepo LedgerRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		ledgerRepo: ledgerRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// Check проверяет, хватает ли слотов и ресурсов под требуемую карту.
// Read-only: отчет носит информационный характер и не резервирует ничего.
func (s *Service) Check(ctx context.Context, hotelID, serviceID int64, required types.ResourceMap) (*domain.CapacityReport, error) {
	entry, err := s.ledgerRepo.GetByHotelAndService(ctx, hotelID, serviceID)
	if err != nil {
		if errors.Is(err, capacityRepo.ErrLedgerNotFound) {
			s.logger.Warn("Check: ledger not found for hotel=%d service=%d", hotelID, serviceID)
			return nil, ErrLedgerNotFound
		}
		s.logger.Error("Check: repository error for hotel=%d service=%d: %v", hotelID, serviceID, err)
		return nil, fmt.Errorf("%w: Check - repository error: %v", ErrInternal, err)
	}

	missing := entry.MissingResources(required)
	report := &domain.CapacityReport{
		HasCapacity:      entry.HasFreeSlots() && len(missing) == 0,
		MissingResources: missing,
	}

	return report, nil
}

// Reserve занимает слот и списывает требуемые ресурсы.
// Возвращает квитанцию с точными списанными количествами.
// При нехватке возвращает CapacityUnavailableError со списком
// недостающих ресурсов.
func (s *Service) Reserve(ctx context.Context, hotelID, serviceID int64, required types.ResourceMap) (*Claim, error) {
	var claim *Claim

	err := s.inTx(ctx, func(ctx context.Context) error {
		entry, err := s.ledgerRepo.GetByHotelAndService(ctx, hotelID, serviceID)
		if err != nil {
			if errors.Is(err, capacityRepo.ErrLedgerNotFound) {
				s.logger.Warn("Reserve: ledger not found for hotel=%d service=%d", hotelID, serviceID)
				return ErrLedgerNotFound
			}
			s.logger.Error("Reserve: repository error for hotel=%d service=%d: %v", hotelID, serviceID, err)
			return fmt.Errorf("%w: Reserve - repository error: %v", ErrInternal, err)
		}

		if err := s.ledgerRepo.ReserveSlot(ctx, entry.ID); err != nil {
			if errors.Is(err, capacityRepo.ErrNoFreeSlots) {
				s.logger.Warn("Reserve: no free slots for ledger=%d", entry.ID)
				return &CapacityUnavailableError{}
			}
			s.logger.Error("Reserve: failed to reserve slot for ledger=%d: %v", entry.ID, err)
			return fmt.Errorf("%w: Reserve - reserve slot: %v", ErrInternal, err)
		}

		// Списываем ресурсы в детерминированном порядке, чтобы конкурентные
		// резервации не взяли блокировки строк в разном порядке
		for _, resourceID := range required.Keys() {
			if err := s.ledgerRepo.ReserveResource(ctx, entry.ID, resourceID, required[resourceID]); err != nil {
				if errors.Is(err, capacityRepo.ErrResourceShort) {
					s.logger.Warn("Reserve: insufficient resource %s for ledger=%d", resourceID, entry.ID)
					missing := entry.MissingResources(required)
					if len(missing) == 0 {
						missing = []string{resourceID}
					}
					return &CapacityUnavailableError{MissingResources: missing}
				}
				s.logger.Error("Reserve: failed to reserve resource %s for ledger=%d: %v", resourceID, entry.ID, err)
				return fmt.Errorf("%w: Reserve - reserve resource %s: %v", ErrInternal, resourceID, err)
			}
		}

		claim = &Claim{LedgerID: entry.ID, Resources: required.Clone()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Reserve: reserved slot and %d resources on ledger=%d", len(required), claim.LedgerID)
	return claim, nil
}

// Release возвращает слот и ресурсы, зарезервированные ранее.
// Возвращаются ровно те количества, что были списаны при Reserve:
// вызывающий передает сохраненную квитанцию резервации.
func (s *Service) Release(ctx context.Context, hotelID, serviceID int64, resources types.ResourceMap) error {
	err := s.inTx(ctx, func(ctx context.Context) error {
		entry, err := s.ledgerRepo.GetByHotelAndService(ctx, hotelID, serviceID)
		if err != nil {
			if errors.Is(err, capacityRepo.ErrLedgerNotFound) {
				s.logger.Warn("Release: ledger not found for hotel=%d service=%d", hotelID, serviceID)
				return ErrLedgerNotFound
			}
			s.logger.Error("Release: repository error for hotel=%d service=%d: %v", hotelID, serviceID, err)
			return fmt.Errorf("%w: Release - repository error: %v", ErrInternal, err)
		}

		if err := s.ledgerRepo.ReleaseSlot(ctx, entry.ID); err != nil {
			s.logger.Error("Release: failed to release slot for ledger=%d: %v", entry.ID, err)
			return fmt.Errorf("%w: Release - release slot: %v", ErrInternal, err)
		}

		for _, resourceID := range resources.Keys() {
			if err := s.ledgerRepo.ReleaseResource(ctx, entry.ID, resourceID, resources[resourceID]); err != nil {
				s.logger.Error("Release: failed to release resource %s for ledger=%d: %v", resourceID, entry.ID, err)
				return fmt.Errorf("%w: Release - release resource %s: %v", ErrInternal, resourceID, err)
			}
		}

		s.logger.Info("Release: released slot and %d resources on ledger=%d", len(resources), entry.ID)
		return nil
	})

	return err
}

// inTx выполняет fn в транзакции вызывающего, если она уже открыта,
// иначе открывает собственную сериализуемую транзакцию
func (s *Service) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}
	return s.txManager.DoSerializable(ctx, fn)
}
