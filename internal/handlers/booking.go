package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skylane/property-listing-api/internal/dto"
	apierrors "github.com/skylane/property-listing-api/internal/errors"
	"github.com/skylane/property-listing-api/internal/middleware"
	"github.com/skylane/property-listing-api/internal/models"
	"github.com/skylane/property-listing-api/internal/services"
)

// BookingHandler coordinates booking HTTP handlers.
type BookingHandler struct {
	bookingService *services.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// CreateBooking creates a pending booking on a listing. Only authentication
// is required; the caller becomes the booker.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type createBookingRequest struct {
		ListingID     uint64             `json:"listing_id" binding:"required"`
		AppliedFor    models.ListingType `json:"applied_for" binding:"omitempty,oneof=sale rent"`
		BookerMessage string             `json:"booker_message"`
		CheckInDate   *time.Time         `json:"check_in_date"`
		CheckOutDate  *time.Time         `json:"check_out_date"`
	}

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	booking, err := h.bookingService.Create(c.Request.Context(), services.CreateBookingInput{
		BookerID:      principal.ID,
		ListingID:     req.ListingID,
		AppliedFor:    req.AppliedFor,
		BookerMessage: req.BookerMessage,
		CheckInDate:   req.CheckInDate,
		CheckOutDate:  req.CheckOutDate,
	})
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewAPIResponse("Booking created successfully", dto.ToBookingDTO(*booking)))
}

// ResolveBooking accepts or rejects a pending booking; listing owner only.
func (h *BookingHandler) ResolveBooking(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid booking ID")
		return
	}

	type resolveBookingRequest struct {
		Status          models.BookingStatus `json:"status" binding:"required,oneof=accepted rejected"`
		ResponseMessage string               `json:"response_message"`
	}

	var req resolveBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Status must be accepted or rejected")
		return
	}

	booking, err := h.bookingService.Resolve(c.Request.Context(), services.ResolveBookingInput{
		BookingID:       id,
		ActorID:         principal.ID,
		Status:          req.Status,
		ResponseMessage: req.ResponseMessage,
	})
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse("Booking resolved successfully", dto.ToBookingDTO(*booking)))
}

// GetMyBookings returns bookings the caller requested.
func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	bookings, err := h.bookingService.MyBookings(c.Request.Context(), principal.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch bookings")
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse("Bookings fetched successfully", dto.ToBookingDTOs(bookings)))
}

// GetReceivedBookings returns bookings on the caller's listings.
func (h *BookingHandler) GetReceivedBookings(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	bookings, err := h.bookingService.ReceivedBookings(c.Request.Context(), principal.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch received bookings")
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse("Received bookings fetched successfully", dto.ToBookingDTOs(bookings)))
}

func respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrListingNotFound):
		apierrors.NotFound(c, "Listing not found!")
	case errors.Is(err, services.ErrBookingNotFound):
		apierrors.NotFound(c, "Booking not found")
	case errors.Is(err, services.ErrNotOwner):
		apierrors.Unauthorized(c, "Only the owner can resolve the booking")
	case errors.Is(err, services.ErrSelfBooking):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidResolution):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrBookingResolved):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
