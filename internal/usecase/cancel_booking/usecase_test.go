package cancel_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/customer"
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

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type stubBookingRepo struct {
	booking *domain.RoomBooking
	getErr  error

	updateStatusErr error
	statusUpdates   []domain.BookingStatus
	paymentStatuses []domain.PaymentStatus
}

func (r *stubBookingRepo) GetByID(ctx context.Context, id int64) (*domain.RoomBooking, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.booking, nil
}

func (r *stubBookingRepo) UpdateStatusIf(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	if r.updateStatusErr != nil {
		return r.updateStatusErr
	}
	r.statusUpdates = append(r.statusUpdates, to)
	return nil
}

func (r *stubBookingRepo) SetPaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	r.paymentStatuses = append(r.paymentStatuses, status)
	return nil
}

type stubRoomRepo struct {
	statusSets []domain.RoomStatus
}

func (r *stubRoomRepo) SetStatus(ctx context.Context, roomIDs []int64, to domain.RoomStatus) error {
	r.statusSets = append(r.statusSets, to)
	return nil
}

type stubCustomerRepo struct {
	debitErr error
	debits   []float64
}

func (r *stubCustomerRepo) GetByID(ctx context.Context, customerID int64) (*domain.Customer, error) {
	return &domain.Customer{ID: customerID, Balance: 1000}, nil
}

func (r *stubCustomerRepo) Debit(ctx context.Context, customerID int64, amount float64) error {
	if r.debitErr != nil {
		return r.debitErr
	}
	r.debits = append(r.debits, amount)
	return nil
}

type stubCancellationRepo struct {
	records []*domain.CancellationRecord
}

func (r *stubCancellationRepo) Create(ctx context.Context, record *domain.CancellationRecord) (*domain.CancellationRecord, error) {
	created := *record
	created.ID = int64(len(r.records) + 1)
	r.records = append(r.records, &created)
	return &created, nil
}

type stubFinanceRepo struct {
	payments []*domain.PaymentTransaction
	invoices []*domain.Invoice
}

func (r *stubFinanceRepo) CreatePayment(ctx context.Context, tx *domain.PaymentTransaction) (*domain.PaymentTransaction, error) {
	created := *tx
	created.ID = int64(len(r.payments) + 1)
	r.payments = append(r.payments, &created)
	return &created, nil
}

func (r *stubFinanceRepo) CreateInvoice(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error) {
	created := *invoice
	created.ID = int64(len(r.invoices) + 1)
	r.invoices = append(r.invoices, &created)
	return &created, nil
}

type fixture struct {
	uc           *UseCase
	bookings     *stubBookingRepo
	rooms        *stubRoomRepo
	customers    *stubCustomerRepo
	cancellation *stubCancellationRepo
	finance      *stubFinanceRepo
}

func newFixture(booking *domain.RoomBooking, now time.Time) *fixture {
	f := &fixture{
		bookings:     &stubBookingRepo{booking: booking},
		rooms:        &stubRoomRepo{},
		customers:    &stubCustomerRepo{},
		cancellation: &stubCancellationRepo{},
		finance:      &stubFinanceRepo{},
	}
	f.uc = NewUseCase(f.bookings, f.rooms, f.customers, f.cancellation, f.finance, fakeTxManager{}, noopLogger{})
	f.uc.timeProvider = &fixedTimeProvider{now: now}
	return f
}

func testBooking(status domain.BookingStatus, checkIn time.Time) *domain.RoomBooking {
	return &domain.RoomBooking{
		ID:                     10,
		HotelID:                1,
		CustomerID:             3,
		RoomIDs:                []int64{100, 101},
		CheckIn:                checkIn,
		CheckOut:               checkIn.Add(48 * time.Hour),
		Status:                 status,
		TotalAmount:            200,
		PaymentStatus:          domain.PaymentWaiting,
		CancellationGraceHours: 24,
	}
}

func TestExecute_Validation(t *testing.T) {
	f := newFixture(nil, time.Now())

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 0, CanceledBy: 3})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{BookingID: 10, CanceledBy: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_BookingNotFound(t *testing.T) {
	f := newFixture(nil, time.Now())
	f.bookings.getErr = bookingRepo.ErrBookingNotFound

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 10, CanceledBy: 3})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_InvalidTransition(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(testBooking(domain.StatusCheckedOut, now.Add(10*time.Hour)), now)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 10, CanceledBy: 3})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExecute_FreeCancellation(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	// 48 часов до заезда при грейс-окне 24 часа: без штрафа
	f := newFixture(testBooking(domain.StatusBooked, now.Add(48*time.Hour)), now)

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: 10, CanceledBy: 3})
	require.NoError(t, err)

	assert.Equal(t, float64(0), resp.PenaltyApplied)
	assert.False(t, resp.PenaltyPaid)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)

	assert.Empty(t, f.customers.debits)
	assert.Empty(t, f.finance.payments)
	assert.Equal(t, []domain.PaymentStatus{domain.PaymentNoPenalties}, f.bookings.paymentStatuses)
	assert.Equal(t, []domain.RoomStatus{domain.RoomAvailable}, f.rooms.statusSets)

	require.Len(t, f.cancellation.records, 1)
	assert.Equal(t, float64(0), f.cancellation.records[0].PenaltyApplied)
	assert.False(t, f.cancellation.records[0].PenaltyPaid)
}

func TestExecute_LateCancellation(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	// 10 часов до заезда внутри грейс-окна: половина стоимости
	f := newFixture(testBooking(domain.StatusBooked, now.Add(10*time.Hour)), now)

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: 10, CanceledBy: 3})
	require.NoError(t, err)

	assert.Equal(t, float64(100), resp.PenaltyApplied)
	assert.True(t, resp.PenaltyPaid)

	assert.Equal(t, []float64{100}, f.customers.debits)
	assert.Equal(t, []domain.PaymentStatus{domain.PaymentPaid}, f.bookings.paymentStatuses)

	require.Len(t, f.finance.payments, 1)
	assert.Equal(t, domain.TransactionPenalty, f.finance.payments[0].Kind)
	assert.Equal(t, domain.TransactionCompleted, f.finance.payments[0].Status)
	assert.Equal(t, float64(100), f.finance.payments[0].Amount)

	require.Len(t, f.finance.invoices, 1)
	assert.Equal(t, f.finance.payments[0].ID, f.finance.invoices[0].PaymentID)
}

func TestExecute_LateCancellationKeepsFractionalPenalty(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	// нечетная сумма внутри грейс-окна: половина остается дробной
	booking := testBooking(domain.StatusBooked, now.Add(10*time.Hour))
	booking.TotalAmount = 101
	f := newFixture(booking, now)

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: 10, CanceledBy: 3})
	require.NoError(t, err)

	assert.Equal(t, 50.5, resp.PenaltyApplied)
	assert.Equal(t, []float64{50.5}, f.customers.debits)

	require.Len(t, f.finance.payments, 1)
	assert.Equal(t, 50.5, f.finance.payments[0].Amount)
	require.Len(t, f.cancellation.records, 1)
	assert.Equal(t, 50.5, f.cancellation.records[0].PenaltyApplied)
}

func TestExecute_CheckedInForfeitsFullAmount(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(testBooking(domain.StatusCheckedIn, now.Add(-10*time.Hour)), now)

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: 10, CanceledBy: 3})
	require.NoError(t, err)

	assert.Equal(t, float64(200), resp.PenaltyApplied)
	assert.Equal(t, []float64{200}, f.customers.debits)
}

func TestExecute_InsufficientFunds(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(testBooking(domain.StatusBooked, now.Add(10*time.Hour)), now)
	f.customers.debitErr = customerRepo.ErrInsufficientFunds

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 10, CanceledBy: 3})
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	// до смены статуса дело не дошло
	assert.Empty(t, f.bookings.statusUpdates)
}

func TestExecute_ConcurrentStatusChange(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(testBooking(domain.StatusBooked, now.Add(48*time.Hour)), now)
	f.bookings.updateStatusErr = bookingRepo.ErrStatusNotChanged

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 10, CanceledBy: 3})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
