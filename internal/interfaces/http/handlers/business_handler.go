package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"trimly.backend/internal/domain/entities"
	domainerrors "trimly.backend/internal/domain/errors"
	"trimly.backend/internal/interfaces/http/middleware"
	"trimly.backend/internal/interfaces/http/response"
	"trimly.backend/internal/usecases"
	"trimly.backend/pkg/utils"
)

// BusinessHandler handles business endpoints
type BusinessHandler struct {
	businessUsecase *usecases.BusinessUsecase
}

// NewBusinessHandler creates a new business handler
func NewBusinessHandler(businessUsecase *usecases.BusinessUsecase) *BusinessHandler {
	return &BusinessHandler{businessUsecase: businessUsecase}
}

func queryInt(c *gin.Context, name string, fallback int) int {
	if raw := c.Query(name); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// requireOwnedBusiness loads the business and checks the authenticated
// account owns it.
func (h *BusinessHandler) requireOwnedBusiness(c *gin.Context) (*entities.Business, bool) {
	businessID, ok := parseIDParam(c, "businessId")
	if !ok {
		return nil, false
	}
	business, err := h.businessUsecase.GetBusiness(c.Request.Context(), businessID)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	userID, ok := middleware.GetUserID(c)
	if !ok || business.OwnerUserID != userID {
		response.Error(c, domainerrors.Forbidden("not the business owner"))
		return nil, false
	}
	return business, true
}

// Register handles business registration
// POST /api/v1/businesses
func (h *BusinessHandler) Register(c *gin.Context) {
	var input entities.RegisterBusinessInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	business, err := h.businessUsecase.RegisterBusiness(c.Request.Context(), userID, middleware.GetUserName(c), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, business)
}

// Get returns a business
// GET /api/v1/businesses/:businessId
func (h *BusinessHandler) Get(c *gin.Context) {
	businessID, ok := parseIDParam(c, "businessId")
	if !ok {
		return
	}
	business, err := h.businessUsecase.GetBusiness(c.Request.Context(), businessID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, business)
}

// GetBySlug returns a business by its public slug
// GET /api/v1/businesses/slug/:slug
func (h *BusinessHandler) GetBySlug(c *gin.Context) {
	business, err := h.businessUsecase.GetBusinessBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, business)
}

// List returns a page of businesses
// GET /api/v1/businesses
func (h *BusinessHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(queryInt(c, "page", 1), queryInt(c, "limit", 20))
	businesses, total, err := h.businessUsecase.ListBusinesses(c.Request.Context(), params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, businesses, utils.CalculateMeta(total, params.Page, params.Limit))
}

// Activate moves a business to active
// POST /api/v1/businesses/:businessId/activate
func (h *BusinessHandler) Activate(c *gin.Context) {
	business, ok := h.requireOwnedBusiness(c)
	if !ok {
		return
	}
	if err := h.businessUsecase.ActivateBusiness(c.Request.Context(), business.ID); err != nil {
		response.Error(c, err)
		return
	}
	business.Status = entities.BusinessStatusActive
	response.Success(c, http.StatusOK, business)
}

// Suspend moves a business to suspended
// POST /api/v1/businesses/:businessId/suspend
func (h *BusinessHandler) Suspend(c *gin.Context) {
	business, ok := h.requireOwnedBusiness(c)
	if !ok {
		return
	}
	if err := h.businessUsecase.SuspendBusiness(c.Request.Context(), business.ID); err != nil {
		response.Error(c, err)
		return
	}
	business.Status = entities.BusinessStatusSuspended
	response.Success(c, http.StatusOK, business)
}

// UpdateFeeRate sets the business's platform fee percentage
// PUT /api/v1/businesses/:businessId/fee-rate
func (h *BusinessHandler) UpdateFeeRate(c *gin.Context) {
	business, ok := h.requireOwnedBusiness(c)
	if !ok {
		return
	}

	var input struct {
		FeeRatePercent float64 `json:"feeRatePercent" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.businessUsecase.UpdateFeeRate(c.Request.Context(), business.ID, input.FeeRatePercent)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

// CreateService adds a service to the catalog
// POST /api/v1/businesses/:businessId/services
func (h *BusinessHandler) CreateService(c *gin.Context) {
	business, ok := h.requireOwnedBusiness(c)
	if !ok {
		return
	}

	var input entities.CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	service, err := h.businessUsecase.CreateService(c.Request.Context(), business.ID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, service)
}

// ListServices returns the business's service catalog
// GET /api/v1/businesses/:businessId/services
func (h *BusinessHandler) ListServices(c *gin.Context) {
	businessID, ok := parseIDParam(c, "businessId")
	if !ok {
		return
	}
	services, err := h.businessUsecase.ListServices(c.Request.Context(), businessID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, services)
}
