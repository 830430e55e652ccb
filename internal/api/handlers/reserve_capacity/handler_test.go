package reserve_capacity

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-ReservationService/internal/api/handlers"
	capacityService "github.com/m04kA/HMS-ReservationService/internal/service/capacity"
	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type stubCapacityService struct {
	claim *capacityService.Claim
	err   error

	reserved []types.ResourceMap
}

func (s *stubCapacityService) Reserve(ctx context.Context, hotelID, serviceID int64, required types.ResourceMap) (*capacityService.Claim, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.reserved = append(s.reserved, required)
	return s.claim, nil
}

func doRequest(t *testing.T, svc CapacityService, resources map[string]int64) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(ReserveCapacityRequest{Resources: resources})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/hotels/1/services/2/capacity/reserve", bytes.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"hotelId": "1", "serviceId": "2"})
	rr := httptest.NewRecorder()
	NewHandler(svc, noopLogger{}).Handle(rr, req)
	return rr
}

func TestHandle_Success(t *testing.T) {
	svc := &stubCapacityService{claim: &capacityService.Claim{
		LedgerID:  7,
		Resources: types.ResourceMap{"staff": 1},
	}}

	rr := doRequest(t, svc, map[string]int64{"staff": 1})
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp ReserveCapacityResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Reserved)
	assert.Equal(t, map[string]int64{"staff": 1}, resp.Resources)

	require.Len(t, svc.reserved, 1)
	assert.Equal(t, types.ResourceMap{"staff": 1}, svc.reserved[0])
}

func TestHandle_CapacityUnavailable_ReportsMissingResources(t *testing.T) {
	svc := &stubCapacityService{err: &capacityService.CapacityUnavailableError{
		MissingResources: []string{"towel"},
	}}

	rr := doRequest(t, svc, map[string]int64{"towel": 5})
	assert.Equal(t, http.StatusConflict, rr.Code)

	var resp handlers.CapacityErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, []string{"towel"}, resp.MissingResources)
}

func TestHandle_LedgerNotFound(t *testing.T) {
	svc := &stubCapacityService{err: capacityService.ErrLedgerNotFound}

	rr := doRequest(t, svc, map[string]int64{"staff": 1})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandle_InvalidResourceMap(t *testing.T) {
	svc := &stubCapacityService{}

	rr := doRequest(t, svc, map[string]int64{"staff": -1})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, svc.reserved)
}
