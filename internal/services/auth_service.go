package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/skylane/property-listing-api/internal/constants"
	"github.com/skylane/property-listing-api/internal/models"
	"github.com/skylane/property-listing-api/internal/repository"
	"github.com/skylane/property-listing-api/internal/utils"
	"gorm.io/gorm"
)

// provisionAttempts bounds the username retries when provisioning an
// account from an external identity.
const provisionAttempts = 3

var (
	ErrDuplicateCredential  = errors.New("username or email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles registration, sign-in, and profile lifecycle.
type AuthService struct {
	userRepo repository.UserRepository
	hasher   *PasswordHasher
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, hasher *PasswordHasher) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Username string
	Email    string
	Password string
}

// Signup creates a new user. Username and email are lowercased before the
// uniqueness check so the constraint is case-insensitive.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*models.User, error) {
	username := normalizeCredential(input.Username)
	email := normalizeCredential(input.Email)
	if username == "" || email == "" {
		return nil, fmt.Errorf("username and email are required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByEmailOrUsername(ctx, email, username); err == nil {
		return nil, ErrDuplicateCredential
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check credentials: %w", err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		AvatarURL:    constants.DefaultAvatarURL,
	}

	// The unique indexes close the race between the pre-check and the
	// insert: of two concurrent signups with the same credential, one
	// lands here.
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateCredential
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// SignInInput holds the credentials for authentication.
type SignInInput struct {
	Email    string
	Password string
}

// SignIn verifies credentials and returns the authenticated user.
func (s *AuthService) SignIn(ctx context.Context, input SignInInput) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeCredential(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GoogleSignInInput is the profile handed over by the identity provider.
type GoogleSignInInput struct {
	Email string
	Name  string
	Photo string
}

// GoogleSignIn signs in the user with the given email, provisioning an
// account first if none exists. Provisioned accounts get a random password
// that is never disclosed, so they can only sign in through the provider.
// The returned flag reports whether a new account was created.
func (s *AuthService) GoogleSignIn(ctx context.Context, input GoogleSignInInput) (*models.User, bool, error) {
	email := normalizeCredential(input.Email)
	if email == "" {
		return nil, false, fmt.Errorf("email is required")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to find user: %w", err)
	}

	password, err := utils.GenerateRandomPassword()
	if err != nil {
		return nil, false, fmt.Errorf("failed to generate password: %w", err)
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, false, ErrFailedToHashPassword
	}

	avatar := input.Photo
	if avatar == "" {
		avatar = constants.DefaultAvatarURL
	}
	base := strings.ToLower(strings.ReplaceAll(input.Name, " ", ""))

	// The suffix space is small, so a derived username can collide with an
	// existing one. The user never chose it, so retry with a fresh suffix
	// instead of surfacing the conflict.
	for attempt := 0; attempt < provisionAttempts; attempt++ {
		suffix, err := utils.GenerateUsernameSuffix()
		if err != nil {
			return nil, false, fmt.Errorf("failed to generate username: %w", err)
		}

		user = &models.User{
			Username:     base + suffix,
			Email:        email,
			PasswordHash: hash,
			AvatarURL:    avatar,
		}
		err = s.userRepo.Create(ctx, user)
		if err == nil {
			return user, true, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, false, fmt.Errorf("failed to create user: %w", err)
		}
	}

	return nil, false, ErrDuplicateCredential
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// UpdateProfileInput holds the optional fields of a profile update. Empty
// fields are left unchanged.
type UpdateProfileInput struct {
	Username string
	Email    string
	Avatar   string
	Password string
}

// UpdateProfile applies a partial update to a user's profile. A new
// password is re-hashed before storage.
func (s *AuthService) UpdateProfile(ctx context.Context, id uint64, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.Username != "" {
		user.Username = normalizeCredential(input.Username)
	}
	if input.Email != "" {
		user.Email = normalizeCredential(input.Email)
	}
	if input.Avatar != "" {
		user.AvatarURL = input.Avatar
	}
	if input.Password != "" {
		if len(input.Password) < constants.MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hash, err := s.hasher.Hash(input.Password)
		if err != nil {
			return nil, ErrFailedToHashPassword
		}
		user.PasswordHash = hash
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateCredential
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// DeleteAccount removes a user. Their outstanding token dies with them: the
// auth middleware re-resolves the subject on every request and a deleted
// user no longer resolves.
func (s *AuthService) DeleteAccount(ctx context.Context, id uint64) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func normalizeCredential(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
