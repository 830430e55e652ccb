package create_service_booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-ReservationService/internal/api/handlers"
	createServiceBooking "github.com/m04kA/HMS-ReservationService/internal/usecase/create_service_booking"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type stubUseCase struct {
	resp *createServiceBooking.Response
	err  error
}

func (s *stubUseCase) Execute(ctx context.Context, req *createServiceBooking.Request) (*createServiceBooking.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func doRequest(t *testing.T, uc CreateServiceBookingUseCase) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(CreateServiceBookingRequest{
		CustomerID:  3,
		HotelID:     1,
		ServiceID:   2,
		BookingDate: "2026-09-15T14:00:00Z",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/service-bookings", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	NewHandler(uc, noopLogger{}).Handle(rr, req)
	return rr
}

func TestHandle_CapacityUnavailable_ReportsMissingResources(t *testing.T) {
	uc := &stubUseCase{err: &createServiceBooking.CapacityUnavailableError{
		MissingResources: []string{"staff", "towel"},
	}}

	rr := doRequest(t, uc)
	assert.Equal(t, http.StatusConflict, rr.Code)

	var resp handlers.CapacityErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
	// клиент видит, каких именно ресурсов не хватает
	assert.Equal(t, []string{"staff", "towel"}, resp.MissingResources)
}

func TestHandle_CapacityUnavailable_NoFreeSlots(t *testing.T) {
	uc := &stubUseCase{err: &createServiceBooking.CapacityUnavailableError{}}

	rr := doRequest(t, uc)
	assert.Equal(t, http.StatusConflict, rr.Code)

	var resp handlers.CapacityErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
	assert.Empty(t, resp.MissingResources)
}

func TestHandle_LedgerNotFound(t *testing.T) {
	uc := &stubUseCase{err: createServiceBooking.ErrLedgerNotFound}

	rr := doRequest(t, uc)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
