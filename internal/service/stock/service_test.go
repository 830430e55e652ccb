package stock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	stockRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/stock"
	"github.com/m04kA/HMS-ReservationService/pkg/ptr"
	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

// fakeTxManager исполняет fn напрямую, без БД
type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubStockRepo struct {
	entry  *domain.StockLedgerEntry
	getErr error

	reserveErrs map[string]error
	releaseErrs map[string]error
	setTotalErr error
	lowStock    []domain.LowStockAlert

	reservedItems []string
	releasedItems []string
	setTotals     map[string]int64
	history       []*domain.StockHistoryEntry
	lowStockArgs  []float64
}

func (r *stubStockRepo) GetByHotelAndService(ctx context.Context, hotelID, serviceID int64) (*domain.StockLedgerEntry, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.entry, nil
}

func (r *stubStockRepo) ReserveItem(ctx context.Context, ledgerID int64, resourceID string, qty int64) error {
	if err := r.reserveErrs[resourceID]; err != nil {
		return err
	}
	r.reservedItems = append(r.reservedItems, resourceID)
	return nil
}

func (r *stubStockRepo) ReleaseItem(ctx context.Context, ledgerID int64, resourceID string, qty int64) error {
	if err := r.releaseErrs[resourceID]; err != nil {
		return err
	}
	r.releasedItems = append(r.releasedItems, resourceID)
	return nil
}

func (r *stubStockRepo) SetTotal(ctx context.Context, ledgerID int64, resourceID string, total int64) error {
	if r.setTotalErr != nil {
		return r.setTotalErr
	}
	if r.setTotals == nil {
		r.setTotals = make(map[string]int64)
	}
	r.setTotals[resourceID] = total
	return nil
}

func (r *stubStockRepo) AppendHistory(ctx context.Context, entry *domain.StockHistoryEntry) error {
	r.history = append(r.history, entry)
	return nil
}

func (r *stubStockRepo) LowStock(ctx context.Context, ledgerID int64, threshold float64) ([]domain.LowStockAlert, error) {
	r.lowStockArgs = append(r.lowStockArgs, threshold)
	return r.lowStock, nil
}

func testStockEntry() *domain.StockLedgerEntry {
	return &domain.StockLedgerEntry{
		ID:            5,
		HotelID:       1,
		ServiceID:     2,
		Inventory:     types.ResourceMap{"towel": 10, "robe": 4},
		ReservedStock: types.ResourceMap{"towel": 3},
	}
}

func newTestService(repo *stubStockRepo) *Service {
	return NewService(repo, fakeTxManager{}, noopLogger{})
}

func TestService_Check(t *testing.T) {
	t.Run("stock available", func(t *testing.T) {
		svc := newTestService(&stubStockRepo{entry: testStockEntry()})

		report, err := svc.Check(context.Background(), 1, 2, types.ResourceMap{"towel": 5})
		require.NoError(t, err)

		assert.True(t, report.HasStock)
		assert.Empty(t, report.MissingResources)
		assert.Equal(t, types.ResourceMap{"towel": 7, "robe": 4}, report.AvailableStock)
	})

	t.Run("stock short", func(t *testing.T) {
		svc := newTestService(&stubStockRepo{entry: testStockEntry()})

		report, err := svc.Check(context.Background(), 1, 2, types.ResourceMap{"towel": 8})
		require.NoError(t, err)

		assert.False(t, report.HasStock)
		assert.Equal(t, []string{"towel"}, report.MissingResources)
	})

	t.Run("ledger not found", func(t *testing.T) {
		svc := newTestService(&stubStockRepo{getErr: stockRepo.ErrLedgerNotFound})

		_, err := svc.Check(context.Background(), 1, 2, nil)
		assert.ErrorIs(t, err, ErrLedgerNotFound)
	})
}

func TestService_Reserve(t *testing.T) {
	t.Run("reserves and records history", func(t *testing.T) {
		repo := &stubStockRepo{entry: testStockEntry()}
		svc := newTestService(repo)

		bookingID := ptr.Ptr(int64(42))
		err := svc.Reserve(context.Background(), 1, 2, types.ResourceMap{"towel": 2, "robe": 1}, bookingID)
		require.NoError(t, err)

		assert.Equal(t, []string{"robe", "towel"}, repo.reservedItems)
		require.Len(t, repo.history, 1)
		assert.Equal(t, domain.StockActionReserve, repo.history[0].Action)
		assert.Equal(t, bookingID, repo.history[0].BookingID)
		assert.Equal(t, types.ResourceMap{"towel": 2, "robe": 1}, repo.history[0].Resources)
	})

	t.Run("insufficient stock", func(t *testing.T) {
		repo := &stubStockRepo{
			entry:       testStockEntry(),
			reserveErrs: map[string]error{"towel": stockRepo.ErrInsufficientStock},
		}
		svc := newTestService(repo)

		err := svc.Reserve(context.Background(), 1, 2, types.ResourceMap{"towel": 100}, nil)
		assert.ErrorIs(t, err, ErrInsufficientStock)
		assert.Empty(t, repo.history)
	})

	t.Run("empty resources rejected", func(t *testing.T) {
		svc := newTestService(&stubStockRepo{entry: testStockEntry()})

		err := svc.Reserve(context.Background(), 1, 2, types.ResourceMap{}, nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("non-positive quantity rejected", func(t *testing.T) {
		svc := newTestService(&stubStockRepo{entry: testStockEntry()})

		err := svc.Reserve(context.Background(), 1, 2, types.ResourceMap{"towel": 0}, nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_Release(t *testing.T) {
	t.Run("releases and records history", func(t *testing.T) {
		repo := &stubStockRepo{entry: testStockEntry()}
		svc := newTestService(repo)

		err := svc.Release(context.Background(), 1, 2, types.ResourceMap{"towel": 2}, nil)
		require.NoError(t, err)

		assert.Equal(t, []string{"towel"}, repo.releasedItems)
		require.Len(t, repo.history, 1)
		assert.Equal(t, domain.StockActionRelease, repo.history[0].Action)
	})

	t.Run("item not found", func(t *testing.T) {
		repo := &stubStockRepo{
			entry:       testStockEntry(),
			releaseErrs: map[string]error{"sauna": stockRepo.ErrItemNotFound},
		}
		svc := newTestService(repo)

		err := svc.Release(context.Background(), 1, 2, types.ResourceMap{"sauna": 1}, nil)
		assert.ErrorIs(t, err, ErrItemNotFound)
	})
}

func TestService_UpdateTotals(t *testing.T) {
	t.Run("sets totals and records history with reason", func(t *testing.T) {
		repo := &stubStockRepo{entry: testStockEntry()}
		svc := newTestService(repo)

		reason := ptr.Ptr("restock after audit")
		err := svc.UpdateTotals(context.Background(), 1, 2, types.ResourceMap{"towel": 20}, reason)
		require.NoError(t, err)

		assert.Equal(t, map[string]int64{"towel": 20}, repo.setTotals)
		require.Len(t, repo.history, 1)
		assert.Equal(t, domain.StockActionUpdate, repo.history[0].Action)
		assert.Equal(t, reason, repo.history[0].Reason)
	})

	t.Run("total not lowered below current reserve", func(t *testing.T) {
		// зарезервировано towel=3, запрошенный объем 1 поднимается до 3
		repo := &stubStockRepo{entry: testStockEntry()}
		svc := newTestService(repo)

		err := svc.UpdateTotals(context.Background(), 1, 2, types.ResourceMap{"towel": 1}, nil)
		require.NoError(t, err)

		assert.Equal(t, map[string]int64{"towel": 3}, repo.setTotals)
	})

	t.Run("negative total floored at zero", func(t *testing.T) {
		repo := &stubStockRepo{entry: testStockEntry()}
		svc := newTestService(repo)

		err := svc.UpdateTotals(context.Background(), 1, 2, types.ResourceMap{"robe": -5}, nil)
		require.NoError(t, err)

		assert.Equal(t, map[string]int64{"robe": 0}, repo.setTotals)
	})

	t.Run("empty totals rejected", func(t *testing.T) {
		svc := newTestService(&stubStockRepo{entry: testStockEntry()})

		err := svc.UpdateTotals(context.Background(), 1, 2, types.ResourceMap{}, nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_LowStockAlerts(t *testing.T) {
	t.Run("passes threshold through", func(t *testing.T) {
		repo := &stubStockRepo{entry: testStockEntry()}
		svc := newTestService(repo)

		_, err := svc.LowStockAlerts(context.Background(), 1, 2, 0.5)
		require.NoError(t, err)
		assert.Equal(t, []float64{0.5}, repo.lowStockArgs)
	})

	t.Run("invalid threshold falls back to default", func(t *testing.T) {
		repo := &stubStockRepo{entry: testStockEntry()}
		svc := newTestService(repo)

		_, err := svc.LowStockAlerts(context.Background(), 1, 2, 0)
		require.NoError(t, err)

		_, err = svc.LowStockAlerts(context.Background(), 1, 2, 1.5)
		require.NoError(t, err)

		assert.Equal(t, []float64{domain.DefaultLowStockThreshold, domain.DefaultLowStockThreshold}, repo.lowStockArgs)
	})

	t.Run("ledger not found", func(t *testing.T) {
		svc := newTestService(&stubStockRepo{getErr: stockRepo.ErrLedgerNotFound})

		_, err := svc.LowStockAlerts(context.Background(), 1, 2, 0.5)
		assert.ErrorIs(t, err, ErrLedgerNotFound)
	})
}
