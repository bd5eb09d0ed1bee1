package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skylane/property-listing-api/internal/dto"
	apierrors "github.com/skylane/property-listing-api/internal/errors"
	"github.com/skylane/property-listing-api/internal/middleware"
	"github.com/skylane/property-listing-api/internal/models"
	"github.com/skylane/property-listing-api/internal/repository"
	"github.com/skylane/property-listing-api/internal/services"
	"github.com/skylane/property-listing-api/internal/utils"
)

// ListingHandler coordinates listing HTTP handlers.
type ListingHandler struct {
	listingService *services.ListingService
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(listingService *services.ListingService) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
	}
}

// listingRequest is the payload for creating a listing.
type listingRequest struct {
	Name            string             `json:"name" binding:"required"`
	Description     string             `json:"description"`
	Address         string             `json:"address"`
	Bedrooms        int                `json:"bedrooms" binding:"omitempty,min=0"`
	Bathrooms       int                `json:"bathrooms" binding:"omitempty,min=0"`
	Type            models.ListingType `json:"type" binding:"required,oneof=sale rent"`
	Parking         bool               `json:"parking"`
	Furnished       bool               `json:"furnished"`
	Offer           bool               `json:"offer"`
	RegularPrice    int64              `json:"regular_price" binding:"required,min=0"`
	DiscountedPrice int64              `json:"discounted_price" binding:"omitempty,min=0"`
	ImageURLs       []string           `json:"image_urls"`
}

// CreateListing creates a listing owned by the caller.
func (h *ListingHandler) CreateListing(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req listingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	listing, err := h.listingService.Create(c.Request.Context(), services.CreateListingInput{
		OwnerID:         principal.ID,
		Name:            req.Name,
		Description:     req.Description,
		Address:         req.Address,
		Bedrooms:        req.Bedrooms,
		Bathrooms:       req.Bathrooms,
		Type:            req.Type,
		Parking:         req.Parking,
		Furnished:       req.Furnished,
		Offer:           req.Offer,
		RegularPrice:    req.RegularPrice,
		DiscountedPrice: req.DiscountedPrice,
		ImageURLs:       req.ImageURLs,
	})
	if err != nil {
		respondListingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewAPIResponse("Listing created successfully", dto.ToListingDTO(*listing)))
}

// GetListing returns a single listing.
func (h *ListingHandler) GetListing(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid listing ID")
		return
	}

	listing, err := h.listingService.Get(c.Request.Context(), id)
	if err != nil {
		respondListingError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse("Listing fetched successfully", dto.ToListingDTO(*listing)))
}

// SearchListings returns listings matching the query parameters.
func (h *ListingHandler) SearchListings(c *gin.Context) {
	filter := repository.ListingFilter{
		SearchTerm: c.Query("search_term"),
		Offer:      boolFilter(c.Query("offer")),
		Furnished:  boolFilter(c.Query("furnished")),
		Parking:    boolFilter(c.Query("parking")),
		Sort:       c.DefaultQuery("sort", "created_at"),
		Order:      c.DefaultQuery("order", "desc"),
		Window:     utils.GetSearchWindow(c),
	}

	if t := c.Query("type"); t == string(models.ListingTypeSale) || t == string(models.ListingTypeRent) {
		listingType := models.ListingType(t)
		filter.Type = &listingType
	}

	listings, err := h.listingService.Search(c.Request.Context(), filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to search listings")
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse("Listings fetched successfully", dto.ToListingDTOs(listings)))
}

// UpdateListing applies a partial update; owner only.
func (h *ListingHandler) UpdateListing(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid listing ID")
		return
	}

	type updateListingRequest struct {
		Name            *string             `json:"name"`
		Description     *string             `json:"description"`
		Address         *string             `json:"address"`
		Bedrooms        *int                `json:"bedrooms" binding:"omitempty,min=0"`
		Bathrooms       *int                `json:"bathrooms" binding:"omitempty,min=0"`
		Type            *models.ListingType `json:"type" binding:"omitempty,oneof=sale rent"`
		Parking         *bool               `json:"parking"`
		Furnished       *bool               `json:"furnished"`
		Offer           *bool               `json:"offer"`
		RegularPrice    *int64              `json:"regular_price" binding:"omitempty,min=0"`
		DiscountedPrice *int64              `json:"discounted_price" binding:"omitempty,min=0"`
		ImageURLs       []string            `json:"image_urls"`
	}

	var req updateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	listing, err := h.listingService.Update(c.Request.Context(), id, principal.ID, services.UpdateListingInput{
		Name:            req.Name,
		Description:     req.Description,
		Address:         req.Address,
		Bedrooms:        req.Bedrooms,
		Bathrooms:       req.Bathrooms,
		Type:            req.Type,
		Parking:         req.Parking,
		Furnished:       req.Furnished,
		Offer:           req.Offer,
		RegularPrice:    req.RegularPrice,
		DiscountedPrice: req.DiscountedPrice,
		ImageURLs:       req.ImageURLs,
	})
	if err != nil {
		respondListingError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse("Listing updated successfully", dto.ToListingDTO(*listing)))
}

// DeleteListing removes a listing; owner only.
func (h *ListingHandler) DeleteListing(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid listing ID")
		return
	}

	if err := h.listingService.Delete(c.Request.Context(), id, principal.ID); err != nil {
		respondListingError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse("Listing deleted successfully", nil))
}

// SaveListing adds a listing to the caller's saved set.
func (h *ListingHandler) SaveListing(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid listing ID")
		return
	}

	if err := h.listingService.SaveListing(c.Request.Context(), principal.ID, id); err != nil {
		respondListingError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse("Listing saved", nil))
}

// UnsaveListing removes a listing from the caller's saved set.
func (h *ListingHandler) UnsaveListing(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid listing ID")
		return
	}

	if err := h.listingService.UnsaveListing(c.Request.Context(), principal.ID, id); err != nil {
		respondListingError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse("Listing unsaved", nil))
}

// GetSavedListings returns the caller's saved listings.
func (h *ListingHandler) GetSavedListings(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	listings, err := h.listingService.ListSaved(c.Request.Context(), principal.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch saved listings")
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse("Saved listings fetched successfully", dto.ToListingDTOs(listings)))
}

// boolFilter maps the tri-state query convention to a filter value:
// "true" filters to true, anything else (including "false" and absence)
// matches both.
func boolFilter(v string) *bool {
	if v == "true" {
		t := true
		return &t
	}
	return nil
}

func respondListingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrListingNotFound):
		apierrors.NotFound(c, "Listing not found!")
	case errors.Is(err, services.ErrNotOwner):
		apierrors.Unauthorized(c, "You can only manage your own listings!")
	case errors.Is(err, services.ErrBadDiscount):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
