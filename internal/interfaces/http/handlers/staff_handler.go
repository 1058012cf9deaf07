package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"trimly.backend/internal/domain/entities"
	"trimly.backend/internal/interfaces/http/response"
	"trimly.backend/internal/usecases"
)

// StaffHandler handles staff roster endpoints
type StaffHandler struct {
	staffUsecase    *usecases.StaffUsecase
	businessHandler *BusinessHandler
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(staffUsecase *usecases.StaffUsecase, businessHandler *BusinessHandler) *StaffHandler {
	return &StaffHandler{staffUsecase: staffUsecase, businessHandler: businessHandler}
}

// Add adds a staff member
// POST /api/v1/businesses/:businessId/staff
func (h *StaffHandler) Add(c *gin.Context) {
	business, ok := h.businessHandler.requireOwnedBusiness(c)
	if !ok {
		return
	}

	var input entities.AddStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	staff, err := h.staffUsecase.AddStaff(c.Request.Context(), business.ID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, staff)
}

// List returns the roster
// GET /api/v1/businesses/:businessId/staff
func (h *StaffHandler) List(c *gin.Context) {
	businessID, ok := parseIDParam(c, "businessId")
	if !ok {
		return
	}
	staff, err := h.staffUsecase.ListStaff(c.Request.Context(), businessID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, staff)
}

// SetPayoutPolicy configures a staff member's payout policy
// PUT /api/v1/businesses/:businessId/staff/:staffId/payout-policy
func (h *StaffHandler) SetPayoutPolicy(c *gin.Context) {
	business, ok := h.businessHandler.requireOwnedBusiness(c)
	if !ok {
		return
	}
	staffID, ok := parseIDParam(c, "staffId")
	if !ok {
		return
	}

	var input entities.SetPayoutPolicyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	staff, err := h.staffUsecase.SetPayoutPolicy(c.Request.Context(), business.ID, staffID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, staff)
}

// Remove removes a staff member from the roster
// DELETE /api/v1/businesses/:businessId/staff/:staffId
func (h *StaffHandler) Remove(c *gin.Context) {
	business, ok := h.businessHandler.requireOwnedBusiness(c)
	if !ok {
		return
	}
	staffID, ok := parseIDParam(c, "staffId")
	if !ok {
		return
	}

	if err := h.staffUsecase.RemoveStaff(c.Request.Context(), business.ID, staffID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
