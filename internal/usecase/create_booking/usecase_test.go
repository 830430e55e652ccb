package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
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

type stubRoomRepo struct {
	rooms        []*domain.Room
	overlapRooms map[int64]bool

	bookedRooms []int64
}

func (r *stubRoomRepo) GetByIDs(ctx context.Context, hotelID int64, ids []int64) ([]*domain.Room, error) {
	return r.rooms, nil
}

func (r *stubRoomRepo) HasOverlappingBooking(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (bool, error) {
	return r.overlapRooms[roomID], nil
}

func (r *stubRoomRepo) SetStatusIf(ctx context.Context, roomID int64, from, to domain.RoomStatus) (bool, error) {
	r.bookedRooms = append(r.bookedRooms, roomID)
	return true, nil
}

type stubBookingRepo struct {
	created *domain.RoomBooking
	addedTo []int64
}

func (r *stubBookingRepo) Create(ctx context.Context, b *domain.RoomBooking) (*domain.RoomBooking, error) {
	created := *b
	created.ID = 77
	r.created = &created
	return &created, nil
}

func (r *stubBookingRepo) AddRooms(ctx context.Context, bookingID int64, roomIDs []int64) error {
	r.addedTo = append(r.addedTo, bookingID)
	return nil
}

type stubCustomerRepo struct {
	getErr error
}

func (r *stubCustomerRepo) GetByID(ctx context.Context, customerID int64) (*domain.Customer, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return &domain.Customer{ID: customerID, Balance: 1000}, nil
}

func validRequest() *Request {
	checkIn := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	return &Request{
		CustomerID: 3,
		HotelID:    1,
		RoomIDs:    []int64{100, 101},
		CheckIn:    checkIn,
		CheckOut:   checkIn.Add(72 * time.Hour),
	}
}

func testRooms() []*domain.Room {
	return []*domain.Room{
		{ID: 100, HotelID: 1, Status: domain.RoomAvailable, PricePerNight: 50},
		{ID: 101, HotelID: 1, Status: domain.RoomAvailable, PricePerNight: 80},
	}
}

func newUseCaseUnderTest(rooms *stubRoomRepo, bookings *stubBookingRepo, customers *stubCustomerRepo) *UseCase {
	return NewUseCase(rooms, bookings, customers, fakeTxManager{}, noopLogger{})
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{"valid", func(r *Request) {}, nil},
		{"non-positive customer", func(r *Request) { r.CustomerID = 0 }, ErrInvalidInput},
		{"non-positive hotel", func(r *Request) { r.HotelID = -1 }, ErrInvalidInput},
		{"no rooms", func(r *Request) { r.RoomIDs = nil }, ErrInvalidInput},
		{"too many rooms", func(r *Request) {
			r.RoomIDs = make([]int64, domain.MaxRoomsPerBooking+1)
			for i := range r.RoomIDs {
				r.RoomIDs[i] = int64(i + 1)
			}
		}, ErrInvalidInput},
		{"duplicate rooms", func(r *Request) { r.RoomIDs = []int64{100, 100} }, ErrInvalidInput},
		{"check-out before check-in", func(r *Request) { r.CheckOut = r.CheckIn.Add(-time.Hour) }, ErrInvalidDateRange},
		{"check-out equals check-in", func(r *Request) { r.CheckOut = r.CheckIn }, ErrInvalidDateRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			err := validateRequest(req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestExecute_Success(t *testing.T) {
	rooms := &stubRoomRepo{rooms: testRooms()}
	bookings := &stubBookingRepo{}
	uc := newUseCaseUnderTest(rooms, bookings, &stubCustomerRepo{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(77), resp.ID)
	assert.Equal(t, string(domain.StatusBooked), resp.Status)
	assert.Equal(t, string(domain.PaymentWaiting), resp.PaymentStatus)
	assert.Equal(t, domain.DefaultCancellationGraceHours, resp.CancellationGraceHours)
	// 3 ночи по двум номерам: 3*50 + 3*80
	assert.Equal(t, float64(390), resp.TotalAmount)
	assert.Equal(t, []int64{100, 101}, resp.RoomIDs)

	assert.Equal(t, []int64{77}, bookings.addedTo)
	assert.Equal(t, []int64{100, 101}, rooms.bookedRooms)
}

func TestExecute_CustomerNotFound(t *testing.T) {
	uc := newUseCaseUnderTest(&stubRoomRepo{}, &stubBookingRepo{}, &stubCustomerRepo{getErr: customerRepo.ErrCustomerNotFound})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestExecute_RoomNotFound(t *testing.T) {
	// репозиторий вернул меньше номеров, чем запрошено
	rooms := &stubRoomRepo{rooms: testRooms()[:1]}
	uc := newUseCaseUnderTest(rooms, &stubBookingRepo{}, &stubCustomerRepo{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestExecute_RoomUnderMaintenance(t *testing.T) {
	roomList := testRooms()
	roomList[1].Status = domain.RoomMaintenance
	uc := newUseCaseUnderTest(&stubRoomRepo{rooms: roomList}, &stubBookingRepo{}, &stubCustomerRepo{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrRoomNotAvailable)
}

func TestExecute_OverlappingBooking(t *testing.T) {
	rooms := &stubRoomRepo{
		rooms:        testRooms(),
		overlapRooms: map[int64]bool{101: true},
	}
	bookings := &stubBookingRepo{}
	uc := newUseCaseUnderTest(rooms, bookings, &stubCustomerRepo{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrRoomNotAvailable)
	assert.Nil(t, bookings.created)
}
