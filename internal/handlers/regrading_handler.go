package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/crediflow/crediflow-api/internal/middleware"
	"github.com/crediflow/crediflow-api/internal/models"
	"github.com/crediflow/crediflow-api/internal/services"
)

type RegradingHandler struct {
	regradingService *services.RegradingService
}

func NewRegradingHandler(regradingService *services.RegradingService) *RegradingHandler {
	return &RegradingHandler{regradingService: regradingService}
}

// regradingRequest binds the contract options plus the settlement date
type regradingRequest struct {
	Date                   string `json:"date" form:"date" binding:"required"`
	LoansType              string `json:"loans_type" form:"loans_type"`
	CancelInterests        bool   `json:"cancel_interests" form:"cancel_interests"`
	ManualInterestsAmount  string `json:"manual_interests_amount" form:"manual_interests_amount"`
	CancelFees             bool   `json:"cancel_fees" form:"cancel_fees"`
	ManualFeesAmount       string `json:"manual_fees_amount" form:"manual_fees_amount"`
	ManualCommissionAmount string `json:"manual_commission_amount" form:"manual_commission_amount"`
}

func (r *regradingRequest) toOptions() (*models.CreditContractOptions, time.Time, error) {
	payDate, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return nil, time.Time{}, errors.New("date must be YYYY-MM-DD")
	}

	opts := &models.CreditContractOptions{
		LoansType:       r.LoansType,
		CancelInterests: r.CancelInterests,
		CancelFees:      r.CancelFees,
	}
	if opts.ManualInterestsAmount, err = parseAmount(r.ManualInterestsAmount); err != nil {
		return nil, time.Time{}, errors.New("manual_interests_amount must be numeric")
	}
	if opts.ManualFeesAmount, err = parseAmount(r.ManualFeesAmount); err != nil {
		return nil, time.Time{}, errors.New("manual_fees_amount must be numeric")
	}
	if opts.ManualCommissionAmount, err = parseAmount(r.ManualCommissionAmount); err != nil {
		return nil, time.Time{}, errors.New("manual_commission_amount must be numeric")
	}
	return opts, payDate, nil
}

// @Summary Regrading Quote
// @Description Compute the maximum amount to fully regrade a loan as of a date
// @Tags Regrading
// @Produce json
// @Param loan_id path int true "Loan ID"
// @Param date query string true "Settlement date (YYYY-MM-DD)"
// @Param cancel_interests query bool false "Replace computed interest with a manual amount"
// @Param manual_interests_amount query number false "Manual interest amount"
// @Param cancel_fees query bool false "Replace computed fees with manual amounts"
// @Param manual_fees_amount query number false "Manual fee amount"
// @Param manual_commission_amount query number false "Manual commission amount"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /loans/{loan_id}/regrading_quote [get]
func (h *RegradingHandler) Quote(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("loan_id"), 10, 32)

	var req regradingRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	opts, payDate, err := req.toOptions()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	amount, err := h.regradingService.Quote(c.Request.Context(), uint(id), opts, payDate)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Préstamo no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"loan_id": uint(id),
		"date":    payDate.Format("2006-01-02"),
		"amount":  amount,
	})
}

// @Summary Regrade Loan
// @Description Settle a loan with a single payment of the maximum regrading amount
// @Tags Regrading
// @Accept json
// @Produce json
// @Param loan_id path int true "Loan ID"
// @Param request body regradingRequest true "Regrading parameters"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /loans/{loan_id}/regrade [post]
func (h *RegradingHandler) Regrade(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("loan_id"), 10, 32)

	var req regradingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	opts, payDate, err := req.toOptions()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.regradingService.Regrade(c.Request.Context(), uint(id), opts, payDate, middleware.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Préstamo no encontrado"})
		case errors.Is(err, services.ErrLoanClosed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": event.ToResponse()})
}
