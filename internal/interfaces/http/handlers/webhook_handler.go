package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"trimly.backend/internal/interfaces/http/response"
	"trimly.backend/internal/usecases"
)

// SignatureHeader carries the processor's HMAC signature over the raw body
const SignatureHeader = "X-Processor-Signature"

// WebhookHandler handles payment processor callbacks
type WebhookHandler struct {
	webhookUsecase *usecases.CheckoutWebhookUsecase
	payoutUsecase  *usecases.PayoutUsecase
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(webhookUsecase *usecases.CheckoutWebhookUsecase, payoutUsecase *usecases.PayoutUsecase) *WebhookHandler {
	return &WebhookHandler{webhookUsecase: webhookUsecase, payoutUsecase: payoutUsecase}
}

func (h *WebhookHandler) verifiedBody(c *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "unreadable body")
		return nil, false
	}
	if !h.webhookUsecase.VerifySignature(body, c.GetHeader(SignatureHeader)) {
		response.ErrorWithStatus(c, http.StatusUnauthorized, "invalid signature")
		return nil, false
	}
	return body, true
}

// CheckoutCompleted handles the processor's checkout confirmation
// POST /api/v1/webhooks/checkout-completed
func (h *WebhookHandler) CheckoutCompleted(c *gin.Context) {
	body, ok := h.verifiedBody(c)
	if !ok {
		return
	}

	var event usecases.CheckoutCompletedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "malformed event")
		return
	}

	booking, err := h.webhookUsecase.HandleCheckoutCompleted(c.Request.Context(), &event)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, booking)
}

// PayoutConfirmed handles the processor's transfer result
// POST /api/v1/webhooks/payout-confirmed
func (h *WebhookHandler) PayoutConfirmed(c *gin.Context) {
	body, ok := h.verifiedBody(c)
	if !ok {
		return
	}

	var event struct {
		PayoutID    string `json:"payoutId" binding:"required"`
		TransferRef string `json:"transferRef"`
		Succeeded   bool   `json:"succeeded"`
	}
	if err := json.Unmarshal(body, &event); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "malformed event")
		return
	}
	payoutID, err := uuid.Parse(event.PayoutID)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid payout id")
		return
	}

	payout, err := h.payoutUsecase.ConfirmPayout(c.Request.Context(), payoutID, event.TransferRef, event.Succeeded)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, payout)
}
