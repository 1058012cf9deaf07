package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"trimly.backend/internal/interfaces/http/response"
	"trimly.backend/internal/usecases"
	"trimly.backend/pkg/utils"
)

// RevenueHandler handles fee quoting, funds snapshots, allocation reports
// and disbursements
type RevenueHandler struct {
	feeResolver     *usecases.FeeResolver
	fundsUsecase    *usecases.FundsUsecase
	allocationUC    *usecases.AllocationUsecase
	payoutUsecase   *usecases.PayoutUsecase
	businessHandler *BusinessHandler
}

// NewRevenueHandler creates a new revenue handler
func NewRevenueHandler(
	feeResolver *usecases.FeeResolver,
	fundsUsecase *usecases.FundsUsecase,
	allocationUC *usecases.AllocationUsecase,
	payoutUsecase *usecases.PayoutUsecase,
	businessHandler *BusinessHandler,
) *RevenueHandler {
	return &RevenueHandler{
		feeResolver:     feeResolver,
		fundsUsecase:    fundsUsecase,
		allocationUC:    allocationUC,
		payoutUsecase:   payoutUsecase,
		businessHandler: businessHandler,
	}
}

// QuoteFee returns the fee breakdown for a gross amount
// GET /api/v1/businesses/:businessId/fees/quote?amount=100.00
func (h *RevenueHandler) QuoteFee(c *gin.Context) {
	businessID, ok := parseIDParam(c, "businessId")
	if !ok {
		return
	}
	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil || !amount.IsPositive() {
		response.ErrorWithStatus(c, http.StatusBadRequest, "amount must be a positive decimal")
		return
	}

	quote, err := h.feeResolver.Quote(c.Request.Context(), businessID, amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, quote)
}

// GetFunds returns the funds availability snapshot
// GET /api/v1/businesses/:businessId/funds
func (h *RevenueHandler) GetFunds(c *gin.Context) {
	business, ok := h.businessHandler.requireOwnedBusiness(c)
	if !ok {
		return
	}

	snapshot, err := h.fundsUsecase.Snapshot(c.Request.Context(), business.ID, time.Now().UTC())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, snapshot)
}

// GetAllocations returns the staff earnings report
// GET /api/v1/businesses/:businessId/payouts/allocations
func (h *RevenueHandler) GetAllocations(c *gin.Context) {
	business, ok := h.businessHandler.requireOwnedBusiness(c)
	if !ok {
		return
	}

	report, err := h.allocationUC.Allocate(c.Request.Context(), business.ID, time.Now().UTC())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, report)
}

// RequestPayout records a pending disbursement of the available funds
// POST /api/v1/businesses/:businessId/payouts
func (h *RevenueHandler) RequestPayout(c *gin.Context) {
	business, ok := h.businessHandler.requireOwnedBusiness(c)
	if !ok {
		return
	}

	var input struct {
		Description string `json:"description"`
	}
	// The body is optional.
	_ = c.ShouldBindJSON(&input)

	payout, err := h.payoutUsecase.RequestPayout(c.Request.Context(), business.ID, input.Description)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, payout)
}

// ListPayouts returns a page of the business's payouts
// GET /api/v1/businesses/:businessId/payouts
func (h *RevenueHandler) ListPayouts(c *gin.Context) {
	business, ok := h.businessHandler.requireOwnedBusiness(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(queryInt(c, "page", 1), queryInt(c, "limit", 20))
	payouts, total, err := h.payoutUsecase.ListPayouts(c.Request.Context(), business.ID, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, payouts, utils.CalculateMeta(total, params.Page, params.Limit))
}

// GetPayout returns a payout with its line items
// GET /api/v1/businesses/:businessId/payouts/:payoutId
func (h *RevenueHandler) GetPayout(c *gin.Context) {
	business, ok := h.businessHandler.requireOwnedBusiness(c)
	if !ok {
		return
	}
	payoutID, ok := parseIDParam(c, "payoutId")
	if !ok {
		return
	}

	payout, err := h.payoutUsecase.GetPayout(c.Request.Context(), business.ID, payoutID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, payout)
}
