package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/petcare/internal/domain/models"
	"github.com/mamadbah2/petcare/internal/server/handlers"
	"github.com/mamadbah2/petcare/internal/server/router"
)

// fakeFoodService lets each test script the service outcome.
type fakeFoodService struct {
	createErr error
	getErr    error
	deleteErr error
	caller    string
}

func (f *fakeFoodService) Create(_ context.Context, callerID, petID string, _ models.CreateSupplyRequest) (*models.FoodSupply, error) {
	f.caller = callerID
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.FoodSupply{ID: "supply-1", PetID: petID, Category: models.CategoryDry, IsActive: true}, nil
}

func (f *fakeFoodService) GetByID(_ context.Context, callerID, id string) (*models.EnrichedSupply, error) {
	f.caller = callerID
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &models.EnrichedSupply{FoodSupply: models.FoodSupply{ID: id}}, nil
}

func (f *fakeFoodService) ListActive(context.Context, string, string) ([]models.EnrichedSupply, error) {
	return nil, nil
}

func (f *fakeFoodService) ListFinished(context.Context, string, string, int) ([]models.EnrichedSupply, error) {
	return nil, nil
}

func (f *fakeFoodService) ListAll(context.Context, string, string) ([]models.EnrichedSupply, error) {
	return nil, nil
}

func (f *fakeFoodService) Update(context.Context, string, string, models.SupplyUpdate) (*models.FoodSupply, error) {
	return &models.FoodSupply{}, nil
}

func (f *fakeFoodService) MarkFinished(context.Context, string, string) (*models.FoodSupply, error) {
	return &models.FoodSupply{}, nil
}

func (f *fakeFoodService) UpdateFinishDate(context.Context, string, string, models.UpdateFinishDateRequest) (*models.FoodSupply, error) {
	return &models.FoodSupply{}, nil
}

func (f *fakeFoodService) Delete(_ context.Context, _, _ string) error {
	return f.deleteErr
}

func newTestRouter(svc *fakeFoodService) http.Handler {
	return router.New(handlers.NewSupplyHandler(svc, nil), nil, nil)
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "user-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestMissingIdentityIsUnauthorized(t *testing.T) {
	handler := newTestRouter(&fakeFoodService{})

	req := httptest.NewRequest(http.MethodGet, "/api/supplies/abc", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateSupplyReturnsCreated(t *testing.T) {
	svc := &fakeFoodService{}
	handler := newTestRouter(svc)

	body := `{"category":"dry","dateStarted":"2026-03-05","totalQuantity":2,"totalQuantityUnit":"kg","dailyAmount":100,"dailyAmountUnit":"grams"}`
	rec := doRequest(t, handler, http.MethodPost, "/api/pets/pet-1/supplies", body)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "user-1", svc.caller)
	assert.Contains(t, rec.Body.String(), "supply-1")
}

func TestCreateSupplyRejectsMalformedBody(t *testing.T) {
	handler := newTestRouter(&fakeFoodService{})

	rec := doRequest(t, handler, http.MethodPost, "/api/pets/pet-1/supplies", `{"category":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestErrorKindMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation maps to bad request", fmt.Errorf("%w: bad field", models.ErrValidation), http.StatusBadRequest},
		{"not found maps to 404", models.ErrNotFound, http.StatusNotFound},
		{"conflict maps to 409", fmt.Errorf("%w: duplicate entry", models.ErrConflict), http.StatusConflict},
		{"unknown maps to 500", fmt.Errorf("storage exploded"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestRouter(&fakeFoodService{getErr: tt.err})
			rec := doRequest(t, handler, http.MethodGet, "/api/supplies/abc", "")
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestNotFoundBodyDoesNotLeakDetail(t *testing.T) {
	handler := newTestRouter(&fakeFoodService{getErr: fmt.Errorf("%w: pet belongs to someone else", models.ErrNotFound)})
	rec := doRequest(t, handler, http.MethodGet, "/api/supplies/abc", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), "belongs")
}

func TestDeleteReturnsNoContent(t *testing.T) {
	handler := newTestRouter(&fakeFoodService{})
	rec := doRequest(t, handler, http.MethodDelete, "/api/supplies/abc", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHealthz(t *testing.T) {
	handler := newTestRouter(&fakeFoodService{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
