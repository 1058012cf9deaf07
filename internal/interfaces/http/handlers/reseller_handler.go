package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"trimly.backend/internal/domain/entities"
	domainerrors "trimly.backend/internal/domain/errors"
	"trimly.backend/internal/interfaces/http/middleware"
	"trimly.backend/internal/interfaces/http/response"
	"trimly.backend/internal/usecases"
)

// ResellerHandler handles white-label operator administration
type ResellerHandler struct {
	resellerUsecase *usecases.ResellerUsecase
}

// NewResellerHandler creates a new reseller handler
func NewResellerHandler(resellerUsecase *usecases.ResellerUsecase) *ResellerHandler {
	return &ResellerHandler{resellerUsecase: resellerUsecase}
}

// Create registers a reseller
// POST /api/v1/resellers
func (h *ResellerHandler) Create(c *gin.Context) {
	var input entities.CreateResellerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	reseller, err := h.resellerUsecase.CreateReseller(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, reseller)
}

// List returns every reseller
// GET /api/v1/resellers
func (h *ResellerHandler) List(c *gin.Context) {
	resellers, err := h.resellerUsecase.ListResellers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, resellers)
}

// SetPlatformFee sets the fee rate for the reseller's businesses
// PUT /api/v1/resellers/:resellerId/platform-fee
func (h *ResellerHandler) SetPlatformFee(c *gin.Context) {
	resellerID, ok := parseIDParam(c, "resellerId")
	if !ok {
		return
	}

	var input struct {
		PlatformFeePercent float64 `json:"platformFeePercent" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	reseller, err := h.resellerUsecase.SetPlatformFee(c.Request.Context(), resellerID, input.PlatformFeePercent)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, reseller)
}

// IssueAPIKey mints a console key; the plaintext appears in this response
// only
// POST /api/v1/resellers/:resellerId/api-keys
func (h *ResellerHandler) IssueAPIKey(c *gin.Context) {
	resellerID, ok := parseIDParam(c, "resellerId")
	if !ok {
		return
	}

	key, plaintext, err := h.resellerUsecase.IssueAPIKey(c.Request.Context(), resellerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"id":        key.ID,
		"keyPrefix": key.KeyPrefix,
		"apiKey":    plaintext,
	})
}

// RevokeAPIKey deactivates a console key
// DELETE /api/v1/resellers/:resellerId/api-keys/:keyId
func (h *ResellerHandler) RevokeAPIKey(c *gin.Context) {
	if _, ok := parseIDParam(c, "resellerId"); !ok {
		return
	}
	keyID, ok := parseIDParam(c, "keyId")
	if !ok {
		return
	}

	if err := h.resellerUsecase.RevokeAPIKey(c.Request.Context(), keyID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ConsoleProfile returns the reseller authenticated by API key
// GET /api/v1/console/profile
func (h *ResellerHandler) ConsoleProfile(c *gin.Context) {
	resellerID, ok := middleware.GetResellerID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("API key required"))
		return
	}

	reseller, err := h.resellerUsecase.GetReseller(c.Request.Context(), resellerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, reseller)
}
