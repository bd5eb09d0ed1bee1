package middleware

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/skylane/property-listing-api/internal/constants"
	apierrors "github.com/skylane/property-listing-api/internal/errors"
	"github.com/skylane/property-listing-api/internal/repository"
	"github.com/skylane/property-listing-api/internal/services"
)

// Principal is the authenticated identity attached to a request. It never
// carries the password hash.
type Principal struct {
	ID       uint64
	Username string
	Email    string
}

// RequireAuth verifies the access token and attaches the principal. The
// token is read from the session cookie first, then from a bearer header.
// The claimed subject is re-resolved against the user store on every
// request, so a token belonging to a deleted account stops working
// immediately despite tokens being stateless.
func RequireAuth(tokens *services.TokenService, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			apierrors.Unauthorized(c, "No token provided")
			c.Abort()
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTokenExpired):
				apierrors.Unauthorized(c, "Token expired")
			default:
				apierrors.Forbidden(c, "Invalid token")
			}
			c.Abort()
			return
		}

		user, err := userRepo.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		principal := Principal{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		}
		c.Set(constants.ContextKeyPrincipal, principal)
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Next()
	}
}

// RequireSelf restricts a /users/:id route to the user themself
func RequireSelf() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid user ID")
			c.Abort()
			return
		}

		principal, ok := GetPrincipal(c)
		if !ok {
			apierrors.Unauthorized(c, "Not authenticated")
			c.Abort()
			return
		}

		if err := services.AuthorizeOwner(principal.ID, id); err != nil {
			apierrors.Unauthorized(c, "You can only manage your own account")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetPrincipal retrieves the authenticated principal from context
func GetPrincipal(c *gin.Context) (Principal, bool) {
	value, exists := c.Get(constants.ContextKeyPrincipal)
	if !exists {
		return Principal{}, false
	}
	principal, ok := value.(Principal)
	return principal, ok
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	principal, ok := GetPrincipal(c)
	if !ok {
		return 0, false
	}
	return principal.ID, true
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(constants.AccessTokenCookieName); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
