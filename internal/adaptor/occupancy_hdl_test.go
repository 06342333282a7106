package adaptor_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"parking-facility/internal/adaptor"
	"parking-facility/internal/data/entity"
	"parking-facility/internal/dto/request"
	"parking-facility/internal/dto/response"
	"parking-facility/internal/usecase"
	"parking-facility/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubOccupancyService returns canned results per method.
type stubOccupancyService struct {
	checkInResult  *response.CheckInResponse
	checkOutResult *response.CheckOutResponse
	err            error
}

func (s *stubOccupancyService) CheckIn(context.Context, *request.CheckInRequest) (*response.CheckInResponse, error) {
	return s.checkInResult, s.err
}

func (s *stubOccupancyService) CheckOut(context.Context, string, *request.CheckOutRequest) (*response.CheckOutResponse, error) {
	return s.checkOutResult, s.err
}

func (s *stubOccupancyService) ReserveSpace(context.Context, *request.ReserveRequest) (*response.SpaceResponse, error) {
	return nil, s.err
}

func (s *stubOccupancyService) ReserveAndCheckIn(context.Context, *request.CheckInRequest) (*response.CheckInResponse, error) {
	return s.checkInResult, s.err
}

func (s *stubOccupancyService) GetOccupancyByID(context.Context, string) (*response.OccupancyResponse, error) {
	return nil, s.err
}

func (s *stubOccupancyService) ListOccupancies(context.Context, *request.OccupancyListRequest) (*response.PaginatedResponse[response.OccupancyResponse], error) {
	return response.NewPaginatedResponse([]response.OccupancyResponse{}, 1, 10, 0), s.err
}

func (s *stubOccupancyService) GetActiveOccupancies(context.Context, string, string) ([]response.OccupancyResponse, error) {
	return nil, s.err
}

func (s *stubOccupancyService) GetHistory(context.Context, *request.OccupancyHistoryRequest) ([]response.OccupancyResponse, error) {
	return nil, s.err
}

func occupancyRouter(service usecase.OccupancyService) *chi.Mux {
	handler := adaptor.NewOccupancyHandler(service, zap.NewNop())
	r := chi.NewRouter()
	r.Post("/api/occupancies/check-in", handler.CheckIn)
	r.Post("/api/occupancies/{id}/check-out", handler.CheckOut)
	r.Get("/api/occupancies/{id}", handler.GetOccupancyByID)
	return r
}

func TestCheckInHandlerCreated(t *testing.T) {
	stub := &stubOccupancyService{
		checkInResult: &response.CheckInResponse{
			Occupancy: response.OccupancyResponse{ID: "occ-1", Status: entity.OccupancyStatusActive},
			Space:     response.SpaceResponse{ID: "sp-1", State: entity.SpaceStateOccupied},
		},
	}
	router := occupancyRouter(stub)

	body := `{"space_id":"3f1b9a52-7c2e-4d8f-9a61-0b5c8e2d4f7a","vehicle_registration":"B1234XYZ"}`
	req := httptest.NewRequest(http.MethodPost, "/api/occupancies/check-in", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp utils.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Status)
	assert.Equal(t, "success", resp.Message)
}

func TestCheckInHandlerMalformedBody(t *testing.T) {
	router := occupancyRouter(&stubOccupancyService{})

	req := httptest.NewRequest(http.MethodPost, "/api/occupancies/check-in", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerMapsErrorKinds(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", usecase.NotFoundError("occupancy missing"), http.StatusNotFound},
		{"validation", usecase.ValidationError("bad input"), http.StatusBadRequest},
		{"invalid state", usecase.InvalidStateError("already completed"), http.StatusBadRequest},
		{"space unavailable", usecase.SpaceUnavailableError("space busy"), http.StatusBadRequest},
		{"persistence", usecase.PersistenceError(assert.AnError, "store down"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := occupancyRouter(&stubOccupancyService{err: tc.err})

			req := httptest.NewRequest(http.MethodPost, "/api/occupancies/occ-1/check-out", strings.NewReader(`{}`))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestInternalErrorHidesDetail(t *testing.T) {
	router := occupancyRouter(&stubOccupancyService{err: usecase.PersistenceError(assert.AnError, "connection refused to 10.0.0.5")})

	req := httptest.NewRequest(http.MethodPost, "/api/occupancies/occ-1/check-out", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}
