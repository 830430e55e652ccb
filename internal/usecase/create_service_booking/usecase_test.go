package create_service_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	catalogRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/catalog"
	customerRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/customer"
	capacityService "github.com/m04kA/HMS-ReservationService/internal/service/capacity"
	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

// fakeTxManager исполняет fn напрямую, без БД
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubCatalogRepo struct {
	service *domain.HotelService
	getErr  error
}

func (r *stubCatalogRepo) GetService(ctx context.Context, hotelID, serviceID int64) (*domain.HotelService, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.service, nil
}

type stubCustomerRepo struct {
	getErr   error
	debitErr error
	debits   []float64
}

func (r *stubCustomerRepo) GetByID(ctx context.Context, customerID int64) (*domain.Customer, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return &domain.Customer{ID: customerID, Balance: 1000}, nil
}

func (r *stubCustomerRepo) Debit(ctx context.Context, customerID int64, amount float64) error {
	if r.debitErr != nil {
		return r.debitErr
	}
	r.debits = append(r.debits, amount)
	return nil
}

type stubServiceBookingRepo struct {
	created *domain.ServiceBooking
}

func (r *stubServiceBookingRepo) Create(ctx context.Context, b *domain.ServiceBooking) (*domain.ServiceBooking, error) {
	created := *b
	created.ID = 55
	r.created = &created
	return &created, nil
}

type stubCapacityService struct {
	reserveErr error
	reserved   types.ResourceMap
}

func (s *stubCapacityService) Reserve(ctx context.Context, hotelID, serviceID int64, required types.ResourceMap) (*capacityService.Claim, error) {
	if s.reserveErr != nil {
		return nil, s.reserveErr
	}
	s.reserved = required.Clone()
	return &capacityService.Claim{LedgerID: 7, Resources: required.Clone()}, nil
}

type stubFinanceRepo struct {
	payments []*domain.PaymentTransaction
}

func (r *stubFinanceRepo) CreatePayment(ctx context.Context, tx *domain.PaymentTransaction) (*domain.PaymentTransaction, error) {
	created := *tx
	created.ID = int64(len(r.payments) + 1)
	r.payments = append(r.payments, &created)
	return &created, nil
}

type fixture struct {
	uc       *UseCase
	catalog  *stubCatalogRepo
	customer *stubCustomerRepo
	bookings *stubServiceBookingRepo
	capacity *stubCapacityService
	finance  *stubFinanceRepo
}

func newFixture() *fixture {
	f := &fixture{
		catalog: &stubCatalogRepo{
			service: &domain.HotelService{
				ID:                2,
				HotelID:           1,
				Name:              "Spa",
				Cost:              120,
				RequiredResources: types.ResourceMap{"staff": 1, "towel": 2},
				IsActive:          true,
			},
		},
		customer: &stubCustomerRepo{},
		bookings: &stubServiceBookingRepo{},
		capacity: &stubCapacityService{},
		finance:  &stubFinanceRepo{},
	}
	f.uc = NewUseCase(f.catalog, f.customer, f.bookings, f.capacity, f.finance, fakeTxManager{}, noopLogger{})
	return f
}

func validRequest() *Request {
	return &Request{
		CustomerID:  3,
		HotelID:     1,
		ServiceID:   2,
		BookingDate: time.Date(2026, 9, 10, 15, 0, 0, 0, time.UTC),
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(55), resp.ID)
	assert.Equal(t, string(domain.ServiceBookingConfirmed), resp.Status)
	assert.Equal(t, float64(120), resp.Cost)
	// зарезервированная карта сохраняется как квитанция
	assert.Equal(t, types.ResourceMap{"staff": 1, "towel": 2}, resp.RequiredResources)

	assert.Equal(t, []float64{120}, f.customer.debits)
	require.Len(t, f.finance.payments, 1)
	assert.Equal(t, domain.TransactionPayment, f.finance.payments[0].Kind)
	assert.Equal(t, domain.TransactionCompleted, f.finance.payments[0].Status)
	assert.Equal(t, &resp.ID, f.finance.payments[0].ServiceBookingID)
}

func TestExecute_ResourceOverrides(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.ResourceOverrides = types.ResourceMap{"towel": 5}

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, types.ResourceMap{"staff": 1, "towel": 5}, resp.RequiredResources)
	assert.Equal(t, types.ResourceMap{"staff": 1, "towel": 5}, f.capacity.reserved)
}

func TestExecute_UnknownResourceOverride(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.ResourceOverrides = types.ResourceMap{"sauna": 1}

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrUnknownResource)
	assert.ErrorContains(t, err, "sauna")
}

func TestExecute_ServiceNotFound(t *testing.T) {
	f := newFixture()
	f.catalog.getErr = catalogRepo.ErrServiceNotFound

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_CustomerNotFound(t *testing.T) {
	f := newFixture()
	f.customer.getErr = customerRepo.ErrCustomerNotFound

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestExecute_LedgerNotFound(t *testing.T) {
	f := newFixture()
	f.capacity.reserveErr = capacityService.ErrLedgerNotFound

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrLedgerNotFound)
}

func TestExecute_CapacityUnavailable(t *testing.T) {
	f := newFixture()
	f.capacity.reserveErr = capacityService.ErrCapacityUnavailable

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCapacityUnavailable)
	assert.Empty(t, f.customer.debits)
}

func TestExecute_CapacityUnavailable_ReportsMissingResources(t *testing.T) {
	f := newFixture()
	f.capacity.reserveErr = &capacityService.CapacityUnavailableError{
		MissingResources: []string{"staff", "towel"},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCapacityUnavailable)

	// список недостающих ресурсов доходит до вызывающего
	var capErr *CapacityUnavailableError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, []string{"staff", "towel"}, capErr.MissingResources)
}

func TestExecute_InsufficientFunds(t *testing.T) {
	f := newFixture()
	f.customer.debitErr = customerRepo.ErrInsufficientFunds

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Nil(t, f.bookings.created)
}

func TestExecute_Validation(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.ServiceID = 0

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.BookingDate = time.Time{}

	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
