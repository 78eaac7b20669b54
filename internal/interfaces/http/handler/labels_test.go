package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	applabels "github.com/dispatch/backend/internal/application/labels"
	"github.com/dispatch/backend/internal/domain/orders"
	"github.com/dispatch/backend/internal/domain/shared"
)

type mockLabelsService struct {
	mock.Mock
}

func (m *mockLabelsService) Generate(ctx context.Context, params applabels.GenerateParams) (string, error) {
	args := m.Called(ctx, params)
	return args.String(0), args.Error(1)
}

func newLabelsEngine(service LabelsService) *gin.Engine {
	engine := gin.New()
	api := engine.Group("/api/v1")
	NewLabelHandler(service, nil).RegisterRoutes(api)
	return engine
}

func TestDownloadLabels(t *testing.T) {
	t.Run("returns attachment", func(t *testing.T) {
		service := new(mockLabelsService)
		service.On("Generate", mock.Anything, applabels.GenerateParams{
			ExportID: 80,
			OrderID:  1001,
			Bundles:  2,
		}).Return("^XA...^XZ\n^XA...^XZ", nil)

		w := httptest.NewRecorder()
		newLabelsEngine(service).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders/80/1001/labels?bundles=2", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "^XA...^XZ\n^XA...^XZ", w.Body.String())
		assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t,
			fmt.Sprintf("attachment; filename=%q", "etiqueta_pedido_ExpID80_SOH1001.txt"),
			w.Header().Get("Content-Disposition"))
	})

	t.Run("passes shipping and address overrides", func(t *testing.T) {
		service := new(mockLabelsService)
		service.On("Generate", mock.Anything, applabels.GenerateParams{
			ExportID:     104,
			OrderID:      42,
			Bundles:      1,
			ShippingType: "Retiro",
			AddressType:  "Sucursal",
		}).Return("^XA^XZ", nil)

		w := httptest.NewRecorder()
		newLabelsEngine(service).ServeHTTP(w, httptest.NewRequest(http.MethodGet,
			"/api/v1/orders/104/42/labels?shipping_type=Retiro&address_type=Sucursal", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		service.AssertExpectations(t)
	})

	t.Run("non-numeric export id", func(t *testing.T) {
		w := httptest.NewRecorder()
		newLabelsEngine(new(mockLabelsService)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders/abc/1001/labels", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non-numeric order id", func(t *testing.T) {
		w := httptest.NewRecorder()
		newLabelsEngine(new(mockLabelsService)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders/80/abc/labels", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects non-positive bundles", func(t *testing.T) {
		w := httptest.NewRecorder()
		newLabelsEngine(new(mockLabelsService)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders/80/1001/labels?bundles=0", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("order not found", func(t *testing.T) {
		service := new(mockLabelsService)
		service.On("Generate", mock.Anything, mock.Anything).Return("", fmt.Errorf("%w: order 1001", shared.ErrNotFound))

		w := httptest.NewRecorder()
		newLabelsEngine(service).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders/80/1001/labels", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("degraded export is not-found", func(t *testing.T) {
		service := new(mockLabelsService)
		service.On("Generate", mock.Anything, mock.Anything).Return("", orders.ErrNoRows)

		w := httptest.NewRecorder()
		newLabelsEngine(service).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders/80/1001/labels", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHealthCheck(t *testing.T) {
	engine := gin.New()
	api := engine.Group("/api/v1")
	NewHealthHandler().RegisterRoutes(api)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeResponse(t, w).Success)
}
