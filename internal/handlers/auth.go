package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skylane/property-listing-api/internal/constants"
	"github.com/skylane/property-listing-api/internal/dto"
	apierrors "github.com/skylane/property-listing-api/internal/errors"
	"github.com/skylane/property-listing-api/internal/middleware"
	"github.com/skylane/property-listing-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	tokens      *services.TokenService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, tokens *services.TokenService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		tokens:      tokens,
	}
}

// Signup registers a new user and signs them in.
func (h *AuthHandler) Signup(c *gin.Context) {
	type SignupRequest struct {
		Username string `json:"username" binding:"required,min=3,max=50"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), services.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		apierrors.InternalError(c, "Failed to issue token")
		return
	}
	h.setAuthCookie(c, token)

	c.JSON(http.StatusCreated, dto.NewAPIResponse("User registered successfully", dto.ToUserDTO(*user)))
}

// SignIn authenticates a user and sets the session cookie.
func (h *AuthHandler) SignIn(c *gin.Context) {
	type SignInRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.SignIn(c.Request.Context(), services.SignInInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		apierrors.InternalError(c, "Failed to issue token")
		return
	}
	h.setAuthCookie(c, token)

	c.JSON(http.StatusOK, dto.NewAPIResponse("User logged in successfully", dto.ToUserDTO(*user)))
}

// Google signs in via a Google identity exchange, provisioning an account
// for unknown emails.
func (h *AuthHandler) Google(c *gin.Context) {
	type GoogleRequest struct {
		Email string `json:"email" binding:"required,email"`
		Name  string `json:"name"`
		Photo string `json:"photo"`
	}

	var req GoogleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Email is required for Google auth")
		return
	}

	user, created, err := h.authService.GoogleSignIn(c.Request.Context(), services.GoogleSignInInput{
		Email: req.Email,
		Name:  req.Name,
		Photo: req.Photo,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		apierrors.InternalError(c, "Failed to issue token")
		return
	}
	h.setAuthCookie(c, token)

	status := http.StatusOK
	message := "User logged in successfully"
	if created {
		status = http.StatusCreated
		message = "User registered via Google"
	}
	c.JSON(status, dto.NewAPIResponse(message, dto.ToUserDTO(*user)))
}

// SignOut clears the session cookie. Tokens are stateless, so this is the
// whole logout.
func (h *AuthHandler) SignOut(c *gin.Context) {
	h.clearAuthCookie(c)
	c.JSON(http.StatusOK, dto.NewAPIResponse("User logged out successfully", nil))
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), principal.ID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse("User fetched successfully", dto.ToUserDTO(*user)))
}

func (h *AuthHandler) setAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(constants.AccessTokenCookieName, token, int(h.tokens.TTL().Seconds()), "/", "", true, true)
}

func (h *AuthHandler) clearAuthCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(constants.AccessTokenCookieName, "", -1, "/", "", true, true)
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrDuplicateCredential):
		apierrors.Conflict(c, "User already exists!")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, "Invalid credentials")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrFailedToHashPassword):
		apierrors.InternalError(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
