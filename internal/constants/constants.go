package constants

// Context keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyPrincipal = "principal"
)

// Auth
const (
	AccessTokenCookieName = "access_token"
	MinPasswordLength     = 8
)

// DefaultAvatarURL is used when a user registers without an avatar.
const DefaultAvatarURL = "https://cdn-icons-png.flaticon.com/256/5989/5989400.png"

// Pagination / search
const (
	DefaultSearchLimit = 9
	MaxSearchLimit     = 100
)
