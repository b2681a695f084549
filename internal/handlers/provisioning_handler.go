package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/crediflow/crediflow-api/internal/services"
)

type ProvisioningHandler struct {
	provisioningService *services.ProvisioningService
}

func NewProvisioningHandler(provisioningService *services.ProvisioningService) *ProvisioningHandler {
	return &ProvisioningHandler{provisioningService: provisioningService}
}

// @Summary List Provisioning Rates
// @Description Get every provisioning band in table order
// @Tags Provisioning
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /provisioning_rates [get]
func (h *ProvisioningHandler) Index(c *gin.Context) {
	rates, err := h.provisioningService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"provisioning_rates": rates})
}

// @Summary Get Provisioning Rate
// @Description Get the first provisioning band matching a rank
// @Tags Provisioning
// @Produce json
// @Param number path int true "Band rank"
// @Success 200 {object} models.ProvisioningRate
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /provisioning_rates/{number} [get]
func (h *ProvisioningHandler) Show(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "number must be an integer"})
		return
	}

	rate, err := h.provisioningService.GetRate(c.Request.Context(), number)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tasa de provisión no encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"provisioning_rate": rate})
}

// @Summary Get Provisioning Rate By Days Late
// @Description Get the first provisioning band covering a days-late value
// @Tags Provisioning
// @Produce json
// @Param days path int true "Days late"
// @Success 200 {object} models.ProvisioningRate
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /provisioning_rates/by_days_late/{days} [get]
func (h *ProvisioningHandler) ShowByDaysLate(c *gin.Context) {
	days, err := strconv.Atoi(c.Param("days"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "days must be an integer"})
		return
	}

	rate, err := h.provisioningService.GetRateByDaysLate(c.Request.Context(), days)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tasa de provisión no encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"provisioning_rate": rate})
}
