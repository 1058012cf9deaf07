package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"trimly.backend/internal/domain/entities"
	"trimly.backend/internal/interfaces/http/response"
	"trimly.backend/internal/usecases"
	"trimly.backend/pkg/utils"
)

// BookingHandler handles booking lifecycle endpoints
type BookingHandler struct {
	bookingUsecase  *usecases.BookingUsecase
	businessHandler *BusinessHandler
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingUsecase *usecases.BookingUsecase, businessHandler *BusinessHandler) *BookingHandler {
	return &BookingHandler{bookingUsecase: bookingUsecase, businessHandler: businessHandler}
}

// Create creates a booking
// POST /api/v1/businesses/:businessId/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	business, ok := h.businessHandler.requireOwnedBusiness(c)
	if !ok {
		return
	}

	var input entities.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := h.bookingUsecase.CreateBooking(c.Request.Context(), business.ID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, booking)
}

// Get returns a booking with its payments
// GET /api/v1/businesses/:businessId/bookings/:bookingId
func (h *BookingHandler) Get(c *gin.Context) {
	business, ok := h.businessHandler.requireOwnedBusiness(c)
	if !ok {
		return
	}
	bookingID, ok := parseIDParam(c, "bookingId")
	if !ok {
		return
	}

	booking, err := h.bookingUsecase.GetBooking(c.Request.Context(), business.ID, bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, booking)
}

// List returns a page of the business's bookings
// GET /api/v1/businesses/:businessId/bookings
func (h *BookingHandler) List(c *gin.Context) {
	business, ok := h.businessHandler.requireOwnedBusiness(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(queryInt(c, "page", 1), queryInt(c, "limit", 20))
	bookings, total, err := h.bookingUsecase.ListBookings(c.Request.Context(), business.ID, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, bookings, utils.CalculateMeta(total, params.Page, params.Limit))
}

func (h *BookingHandler) transition(c *gin.Context, fn func(ctx *gin.Context, businessID, bookingID uuid.UUID) (*entities.Booking, error)) {
	business, ok := h.businessHandler.requireOwnedBusiness(c)
	if !ok {
		return
	}
	bookingID, ok := parseIDParam(c, "bookingId")
	if !ok {
		return
	}

	booking, err := fn(c, business.ID, bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, booking)
}

// Confirm confirms a pending booking
// POST /api/v1/businesses/:businessId/bookings/:bookingId/confirm
func (h *BookingHandler) Confirm(c *gin.Context) {
	h.transition(c, func(ctx *gin.Context, businessID, bookingID uuid.UUID) (*entities.Booking, error) {
		return h.bookingUsecase.ConfirmBooking(ctx.Request.Context(), businessID, bookingID)
	})
}

// Start marks a booking in progress
// POST /api/v1/businesses/:businessId/bookings/:bookingId/start
func (h *BookingHandler) Start(c *gin.Context) {
	h.transition(c, func(ctx *gin.Context, businessID, bookingID uuid.UUID) (*entities.Booking, error) {
		return h.bookingUsecase.StartBooking(ctx.Request.Context(), businessID, bookingID)
	})
}

// Complete settles a booking and releases its funds
// POST /api/v1/businesses/:businessId/bookings/:bookingId/complete
func (h *BookingHandler) Complete(c *gin.Context) {
	h.transition(c, func(ctx *gin.Context, businessID, bookingID uuid.UUID) (*entities.Booking, error) {
		return h.bookingUsecase.CompleteBooking(ctx.Request.Context(), businessID, bookingID)
	})
}

// Cancel cancels a booking
// POST /api/v1/businesses/:businessId/bookings/:bookingId/cancel
func (h *BookingHandler) Cancel(c *gin.Context) {
	h.transition(c, func(ctx *gin.Context, businessID, bookingID uuid.UUID) (*entities.Booking, error) {
		return h.bookingUsecase.CancelBooking(ctx.Request.Context(), businessID, bookingID)
	})
}

// NoShow marks a booking as a customer no-show
// POST /api/v1/businesses/:businessId/bookings/:bookingId/no-show
func (h *BookingHandler) NoShow(c *gin.Context) {
	h.transition(c, func(ctx *gin.Context, businessID, bookingID uuid.UUID) (*entities.Booking, error) {
		return h.bookingUsecase.MarkNoShow(ctx.Request.Context(), businessID, bookingID)
	})
}
