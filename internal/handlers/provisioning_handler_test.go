package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crediflow/crediflow-api/internal/models"
	"github.com/crediflow/crediflow-api/internal/services"
)

type mockProvisioningRateRepo struct {
	rates []models.ProvisioningRate
}

func (m *mockProvisioningRateRepo) FindAll(ctx context.Context) ([]models.ProvisioningRate, error) {
	return m.rates, nil
}

func newProvisioningHandler() *ProvisioningHandler {
	repo := &mockProvisioningRateRepo{rates: []models.ProvisioningRate{
		{ID: 1, Number: 0, NbOfDaysMin: 0, NbOfDaysMax: 0, Rate: 2},
		{ID: 2, Number: 1, NbOfDaysMin: 1, NbOfDaysMax: 30, Rate: 10},
		{ID: 3, Number: 2, NbOfDaysMin: 31, NbOfDaysMax: 60, Rate: 25},
	}}
	return NewProvisioningHandler(services.NewProvisioningService(repo))
}

func TestProvisioningHandler_Index(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newProvisioningHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/provisioning_rates", nil)
	handler.Index(c)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Rates []models.ProvisioningRate `json:"provisioning_rates"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Rates, 3)
}

func TestProvisioningHandler_Show(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newProvisioningHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/provisioning_rates/2", nil)
	c.Params = gin.Params{{Key: "number", Value: "2"}}
	handler.Show(c)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Rate models.ProvisioningRate `json:"provisioning_rate"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(25), body.Rate.Rate)
}

func TestProvisioningHandler_Show_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newProvisioningHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/provisioning_rates/99", nil)
	c.Params = gin.Params{{Key: "number", Value: "99"}}
	handler.Show(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProvisioningHandler_Show_BadNumber(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newProvisioningHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/provisioning_rates/dos", nil)
	c.Params = gin.Params{{Key: "number", Value: "dos"}}
	handler.Show(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProvisioningHandler_ShowByDaysLate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newProvisioningHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/provisioning_rates/by_days_late/21", nil)
	c.Params = gin.Params{{Key: "days", Value: "21"}}
	handler.ShowByDaysLate(c)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Rate models.ProvisioningRate `json:"provisioning_rate"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(10), body.Rate.Rate)
}

func TestProvisioningHandler_ShowByDaysLate_NegativeDaysNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newProvisioningHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/provisioning_rates/by_days_late/-123", nil)
	c.Params = gin.Params{{Key: "days", Value: "-123"}}
	handler.ShowByDaysLate(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
