package capacity

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	capacityRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/capacity"
	"github.com/m04kA/HMS-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

// fakeTxManager исполняет fn напрямую и считает открытые транзакции
type fakeTxManager struct {
	serializableCalls int
}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.serializableCalls++
	return fn(ctx)
}

func (m *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// stubTx пустой исполнитель для имитации активной транзакции в контексте
type stubTx struct{}

func (stubTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (stubTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (stubTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

type stubLedgerRepo struct {
	entry  *domain.CapacityLedgerEntry
	getErr error

	reserveSlotErr      error
	reserveResourceErrs map[string]error
	releaseSlotErr      error
	releaseResourceErr  error

	slotReserved      bool
	slotReleased      bool
	reservedResources []string
	releasedResources []string
}

func (r *stubLedgerRepo) GetByHotelAndService(ctx context.Context, hotelID, serviceID int64) (*domain.CapacityLedgerEntry, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.entry, nil
}

func (r *stubLedgerRepo) ReserveSlot(ctx context.Context, ledgerID int64) error {
	if r.reserveSlotErr != nil {
		return r.reserveSlotErr
	}
	r.slotReserved = true
	return nil
}

func (r *stubLedgerRepo) ReleaseSlot(ctx context.Context, ledgerID int64) error {
	if r.releaseSlotErr != nil {
		return r.releaseSlotErr
	}
	r.slotReleased = true
	return nil
}

func (r *stubLedgerRepo) ReserveResource(ctx context.Context, ledgerID int64, resourceID string, qty int64) error {
	if err := r.reserveResourceErrs[resourceID]; err != nil {
		return err
	}
	r.reservedResources = append(r.reservedResources, resourceID)
	return nil
}

func (r *stubLedgerRepo) ReleaseResource(ctx context.Context, ledgerID int64, resourceID string, qty int64) error {
	if r.releaseResourceErr != nil {
		return r.releaseResourceErr
	}
	r.releasedResources = append(r.releasedResources, resourceID)
	return nil
}

func testEntry() *domain.CapacityLedgerEntry {
	return &domain.CapacityLedgerEntry{
		ID:                    7,
		HotelID:               1,
		ServiceID:             2,
		Resources:             types.ResourceMap{"staff": 2, "towel": 10},
		MaxConcurrentBookings: 3,
		CurrentBookings:       1,
		IsAvailable:           true,
	}
}

func newTestService(repo *stubLedgerRepo) *Service {
	return NewService(repo, &fakeTxManager{}, noopLogger{})
}

func TestService_Check(t *testing.T) {
	t.Run("ledger not found", func(t *testing.T) {
		svc := newTestService(&stubLedgerRepo{getErr: capacityRepo.ErrLedgerNotFound})

		_, err := svc.Check(context.Background(), 1, 2, nil)
		assert.ErrorIs(t, err, ErrLedgerNotFound)
	})

	t.Run("capacity available", func(t *testing.T) {
		svc := newTestService(&stubLedgerRepo{entry: testEntry()})

		report, err := svc.Check(context.Background(), 1, 2, types.ResourceMap{"staff": 1})
		require.NoError(t, err)
		assert.True(t, report.HasCapacity)
		assert.Empty(t, report.MissingResources)
	})

	t.Run("resource short", func(t *testing.T) {
		svc := newTestService(&stubLedgerRepo{entry: testEntry()})

		report, err := svc.Check(context.Background(), 1, 2, types.ResourceMap{"staff": 5, "sauna": 1})
		require.NoError(t, err)
		assert.False(t, report.HasCapacity)
		assert.Equal(t, []string{"sauna", "staff"}, report.MissingResources)
	})

	t.Run("no free slots", func(t *testing.T) {
		entry := testEntry()
		entry.CurrentBookings = entry.MaxConcurrentBookings
		svc := newTestService(&stubLedgerRepo{entry: entry})

		report, err := svc.Check(context.Background(), 1, 2, nil)
		require.NoError(t, err)
		assert.False(t, report.HasCapacity)
	})
}

func TestService_Reserve(t *testing.T) {
	t.Run("success returns claim", func(t *testing.T) {
		repo := &stubLedgerRepo{entry: testEntry()}
		svc := newTestService(repo)

		required := types.ResourceMap{"towel": 2, "staff": 1}
		claim, err := svc.Reserve(context.Background(), 1, 2, required)
		require.NoError(t, err)

		assert.Equal(t, int64(7), claim.LedgerID)
		assert.Equal(t, required, claim.Resources)
		assert.True(t, repo.slotReserved)
		// ресурсы списываются в отсортированном порядке
		assert.Equal(t, []string{"staff", "towel"}, repo.reservedResources)
	})

	t.Run("claim is a copy", func(t *testing.T) {
		repo := &stubLedgerRepo{entry: testEntry()}
		svc := newTestService(repo)

		required := types.ResourceMap{"staff": 1}
		claim, err := svc.Reserve(context.Background(), 1, 2, required)
		require.NoError(t, err)

		required["staff"] = 99
		assert.Equal(t, int64(1), claim.Resources["staff"])
	})

	t.Run("no free slots", func(t *testing.T) {
		repo := &stubLedgerRepo{entry: testEntry(), reserveSlotErr: capacityRepo.ErrNoFreeSlots}
		svc := newTestService(repo)

		_, err := svc.Reserve(context.Background(), 1, 2, nil)
		assert.ErrorIs(t, err, ErrCapacityUnavailable)

		var capErr *CapacityUnavailableError
		require.ErrorAs(t, err, &capErr)
		assert.Empty(t, capErr.MissingResources)
	})

	t.Run("resource short reports missing resources", func(t *testing.T) {
		repo := &stubLedgerRepo{
			entry:               testEntry(),
			reserveResourceErrs: map[string]error{"towel": capacityRepo.ErrResourceShort},
		}
		svc := newTestService(repo)

		_, err := svc.Reserve(context.Background(), 1, 2, types.ResourceMap{"towel": 20})
		assert.ErrorIs(t, err, ErrCapacityUnavailable)

		var capErr *CapacityUnavailableError
		require.ErrorAs(t, err, &capErr)
		assert.Equal(t, []string{"towel"}, capErr.MissingResources)
	})

	t.Run("ledger not found", func(t *testing.T) {
		svc := newTestService(&stubLedgerRepo{getErr: capacityRepo.ErrLedgerNotFound})

		_, err := svc.Reserve(context.Background(), 1, 2, nil)
		assert.ErrorIs(t, err, ErrLedgerNotFound)
	})

	t.Run("opens own transaction without caller tx", func(t *testing.T) {
		txMgr := &fakeTxManager{}
		svc := NewService(&stubLedgerRepo{entry: testEntry()}, txMgr, noopLogger{})

		_, err := svc.Reserve(context.Background(), 1, 2, types.ResourceMap{"staff": 1})
		require.NoError(t, err)
		assert.Equal(t, 1, txMgr.serializableCalls)
	})

	t.Run("joins caller transaction", func(t *testing.T) {
		txMgr := &fakeTxManager{}
		svc := NewService(&stubLedgerRepo{entry: testEntry()}, txMgr, noopLogger{})

		ctx := dbmetrics.WithTx(context.Background(), stubTx{})
		_, err := svc.Reserve(ctx, 1, 2, types.ResourceMap{"staff": 1})
		require.NoError(t, err)
		assert.Equal(t, 0, txMgr.serializableCalls)
	})
}

func TestService_Release(t *testing.T) {
	t.Run("releases slot and resources", func(t *testing.T) {
		repo := &stubLedgerRepo{entry: testEntry()}
		svc := newTestService(repo)

		err := svc.Release(context.Background(), 1, 2, types.ResourceMap{"towel": 2, "staff": 1})
		require.NoError(t, err)

		assert.True(t, repo.slotReleased)
		assert.Equal(t, []string{"staff", "towel"}, repo.releasedResources)
	})

	t.Run("ledger not found", func(t *testing.T) {
		svc := newTestService(&stubLedgerRepo{getErr: capacityRepo.ErrLedgerNotFound})

		err := svc.Release(context.Background(), 1, 2, nil)
		assert.ErrorIs(t, err, ErrLedgerNotFound)
	})
}
