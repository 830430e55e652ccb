package stock

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	stockRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/stock"
	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

// Service сервис stock ledger.
// Мутирующие операции сами открывают транзакцию: guard на остатке и
// запись в историю должны попасть в один атомарный блок.
type Service struct {
	ledgerRepo LedgerRepository
	txManager  TransactionManager
	logger     Logger
}

// NewService создает новый экземпляр сервиса stock ledger
func NewService(ledgerRepo LedgerRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		ledgerRepo: ledgerRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// Check проверяет, хватает ли доступного остатка под требуемую карту.
// Read-only: отчет носит информационный характер и не резервирует ничего.
func (s *Service) Check(ctx context.Context, hotelID, serviceID int64, required types.ResourceMap) (*domain.StockReport, error) {
	entry, err := s.getLedger(ctx, "Check", hotelID, serviceID)
	if err != nil {
		return nil, err
	}

	missing := entry.MissingStock(required)
	report := &domain.StockReport{
		HasStock:         len(missing) == 0,
		MissingResources: missing,
		AvailableStock:   entry.AvailableMap(),
	}

	return report, nil
}

// Reserve резервирует количества по карте ресурсов и пишет запись в
// историю со снимком резервов после мутации. Все или ничего.
func (s *Service) Reserve(ctx context.Context, hotelID, serviceID int64, resources types.ResourceMap, bookingID *int64) error {
	if err := s.validateResources(resources); err != nil {
		return err
	}

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		entry, err := s.getLedger(ctx, "Reserve", hotelID, serviceID)
		if err != nil {
			return err
		}

		for _, resourceID := range resources.Keys() {
			if err := s.ledgerRepo.ReserveItem(ctx, entry.ID, resourceID, resources[resourceID]); err != nil {
				if errors.Is(err, stockRepo.ErrInsufficientStock) {
					s.logger.Warn("Reserve: insufficient stock of %s on ledger=%d", resourceID, entry.ID)
					return fmt.Errorf("%w: resource %s", ErrInsufficientStock, resourceID)
				}
				s.logger.Error("Reserve: failed to reserve %s on ledger=%d: %v", resourceID, entry.ID, err)
				return fmt.Errorf("%w: Reserve - reserve item %s: %v", ErrInternal, resourceID, err)
			}
		}

		return s.appendHistory(ctx, entry, domain.StockActionReserve, resources, bookingID, nil)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Reserve: reserved %d stock items for hotel=%d service=%d", len(resources), hotelID, serviceID)
	return nil
}

// Release снимает резерв по карте ресурсов и пишет запись в историю.
// Резерв не уходит ниже нуля.
func (s *Service) Release(ctx context.Context, hotelID, serviceID int64, resources types.ResourceMap, bookingID *int64) error {
	if err := s.validateResources(resources); err != nil {
		return err
	}

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		entry, err := s.getLedger(ctx, "Release", hotelID, serviceID)
		if err != nil {
			return err
		}

		for _, resourceID := range resources.Keys() {
			if err := s.ledgerRepo.ReleaseItem(ctx, entry.ID, resourceID, resources[resourceID]); err != nil {
				if errors.Is(err, stockRepo.ErrItemNotFound) {
					s.logger.Warn("Release: stock item %s not found on ledger=%d", resourceID, entry.ID)
					return fmt.Errorf("%w: resource %s", ErrItemNotFound, resourceID)
				}
				s.logger.Error("Release: failed to release %s on ledger=%d: %v", resourceID, entry.ID, err)
				return fmt.Errorf("%w: Release - release item %s: %v", ErrInternal, resourceID, err)
			}
		}

		return s.appendHistory(ctx, entry, domain.StockActionRelease, resources, bookingID, nil)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Release: released %d stock items for hotel=%d service=%d", len(resources), hotelID, serviceID)
	return nil
}

// UpdateTotals устанавливает общие количества позиций склада.
// Резервы не трогаются: новый объем обрезается снизу нулем и текущим
// резервом, чтобы резерв не превысил общее количество.
func (s *Service) UpdateTotals(ctx context.Context, hotelID, serviceID int64, totals types.ResourceMap, reason *string) error {
	if totals.IsEmpty() {
		return fmt.Errorf("%w: empty totals map", ErrInvalidInput)
	}

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		entry, err := s.getLedger(ctx, "UpdateTotals", hotelID, serviceID)
		if err != nil {
			return err
		}

		for _, resourceID := range totals.Keys() {
			total := totals[resourceID]
			if total < 0 {
				total = 0
			}
			// Общий объем не опускается ниже уже удерживаемого резерва
			if reserved := entry.ReservedStock[resourceID]; total < reserved {
				total = reserved
			}
			if err := s.ledgerRepo.SetTotal(ctx, entry.ID, resourceID, total); err != nil {
				s.logger.Error("UpdateTotals: failed to set total of %s on ledger=%d: %v", resourceID, entry.ID, err)
				return fmt.Errorf("%w: UpdateTotals - set total %s: %v", ErrInternal, resourceID, err)
			}
		}

		return s.appendHistory(ctx, entry, domain.StockActionUpdate, totals, nil, reason)
	})
	if err != nil {
		return err
	}

	s.logger.Info("UpdateTotals: updated %d stock items for hotel=%d service=%d", len(totals), hotelID, serviceID)
	return nil
}

// LowStockAlerts возвращает позиции, доля резерва которых достигла порога
func (s *Service) LowStockAlerts(ctx context.Context, hotelID, serviceID int64, threshold float64) ([]domain.LowStockAlert, error) {
	if threshold <= 0 || threshold > 1 {
		threshold = domain.DefaultLowStockThreshold
	}

	entry, err := s.getLedger(ctx, "LowStockAlerts", hotelID, serviceID)
	if err != nil {
		return nil, err
	}

	alerts, err := s.ledgerRepo.LowStock(ctx, entry.ID, threshold)
	if err != nil {
		s.logger.Error("LowStockAlerts: repository error for ledger=%d: %v", entry.ID, err)
		return nil, fmt.Errorf("%w: LowStockAlerts - repository error: %v", ErrInternal, err)
	}

	return alerts, nil
}

func (s *Service) getLedger(ctx context.Context, op string, hotelID, serviceID int64) (*domain.StockLedgerEntry, error) {
	entry, err := s.ledgerRepo.GetByHotelAndService(ctx, hotelID, serviceID)
	if err != nil {
		if errors.Is(err, stockRepo.ErrLedgerNotFound) {
			s.logger.Warn("%s: ledger not found for hotel=%d service=%d", op, hotelID, serviceID)
			return nil, ErrLedgerNotFound
		}
		s.logger.Error("%s: repository error for hotel=%d service=%d: %v", op, hotelID, serviceID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return entry, nil
}

// appendHistory пишет запись истории со снимком резервов после мутации
func (s *Service) appendHistory(ctx context.Context, entry *domain.StockLedgerEntry, action domain.StockAction, resources types.ResourceMap, bookingID *int64, reason *string) error {
	// Перечитываем позиции после мутации ради актуального снимка
	fresh, err := s.ledgerRepo.GetByHotelAndService(ctx, entry.HotelID, entry.ServiceID)
	if err != nil {
		s.logger.Error("appendHistory: failed to reload ledger=%d: %v", entry.ID, err)
		return fmt.Errorf("%w: appendHistory - reload ledger: %v", ErrInternal, err)
	}

	record := &domain.StockHistoryEntry{
		LedgerID:  entry.ID,
		Action:    action,
		BookingID: bookingID,
		Resources: resources.Clone(),
		Snapshot:  fresh.ReservedStock.Clone(),
		Reason:    reason,
	}

	if err := s.ledgerRepo.AppendHistory(ctx, record); err != nil {
		s.logger.Error("appendHistory: failed to append history for ledger=%d: %v", entry.ID, err)
		return fmt.Errorf("%w: appendHistory - append: %v", ErrInternal, err)
	}

	return nil
}

func (s *Service) validateResources(resources types.ResourceMap) error {
	if resources.IsEmpty() {
		return fmt.Errorf("%w: empty resources map", ErrInvalidInput)
	}
	if err := resources.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
