package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skylane/property-listing-api/internal/constants"
	"github.com/skylane/property-listing-api/internal/dto"
	apierrors "github.com/skylane/property-listing-api/internal/errors"
	"github.com/skylane/property-listing-api/internal/middleware"
	"github.com/skylane/property-listing-api/internal/services"
)

// UserHandler coordinates user profile HTTP handlers.
type UserHandler struct {
	authService    *services.AuthService
	listingService *services.ListingService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService, listingService *services.ListingService) *UserHandler {
	return &UserHandler{
		authService:    authService,
		listingService: listingService,
	}
}

// GetUser returns a user's public profile.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), id)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse("User fetched successfully", dto.ToUserDTO(*user)))
}

// UpdateUser applies a partial update to the caller's own profile. The
// self-check runs in middleware before this handler.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	type UpdateUserRequest struct {
		Username string `json:"username"`
		Email    string `json:"email" binding:"omitempty,email"`
		Avatar   string `json:"avatar"`
		Password string `json:"password"`
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), id, services.UpdateProfileInput{
		Username: req.Username,
		Email:    req.Email,
		Avatar:   req.Avatar,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse("User updated successfully", dto.ToUserDTO(*user)))
}

// DeleteUser removes the caller's own account and clears the cookie. Any
// token issued for the account fails verification-to-principal resolution
// from here on.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.authService.DeleteAccount(c.Request.Context(), id); err != nil {
		respondAuthError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(constants.AccessTokenCookieName, "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, dto.NewAPIResponse("User deleted successfully", nil))
}

// GetUserListings returns the caller's own listings.
func (h *UserHandler) GetUserListings(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	listings, err := h.listingService.ListByOwner(c.Request.Context(), principal.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch listings")
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse("Listings fetched successfully", dto.ToListingDTOs(listings)))
}
