package repository

import (
	"context"

	"github.com/skylane/property-listing-api/internal/models"
	"github.com/skylane/property-listing-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user; a username/email collision surfaces as
	// gorm.ErrDuplicatedKey
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByEmail finds a user by normalized email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByEmailOrUsername finds a user matching either credential
	FindByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error)

	// Update persists changed fields of a user
	Update(ctx context.Context, user *models.User) error

	// Delete permanently removes a user, freeing their credentials
	Delete(ctx context.Context, id uint64) error
}

// ListingFilter holds filtering options for searching listings
type ListingFilter struct {
	SearchTerm string
	Offer      *bool
	Furnished  *bool
	Parking    *bool
	Type       *models.ListingType
	Sort       string
	Order      string
	Window     utils.SearchWindow
}

// ListingRepository defines the interface for listing data access
type ListingRepository interface {
	// Create creates a new listing
	Create(ctx context.Context, listing *models.Listing) error

	// FindByID finds a listing by ID
	FindByID(ctx context.Context, id uint64) (*models.Listing, error)

	// Search retrieves listings matching the filter
	Search(ctx context.Context, filter ListingFilter) ([]models.Listing, error)

	// ListByOwner lists all listings owned by a user
	ListByOwner(ctx context.Context, ownerID uint64) ([]models.Listing, error)

	// Update persists changed fields of a listing
	Update(ctx context.Context, listing *models.Listing) error

	// Delete soft deletes a listing
	Delete(ctx context.Context, id uint64) error

	// Save records a listing in a user's saved set; repeated saves are no-ops
	Save(ctx context.Context, userID, listingID uint64) error

	// Unsave removes a listing from a user's saved set
	Unsave(ctx context.Context, userID, listingID uint64) error

	// ListSaved lists a user's saved listings
	ListSaved(ctx context.Context, userID uint64) ([]models.Listing, error)
}

// BookingRepository defines the interface for booking data access
type BookingRepository interface {
	// Create creates a new booking
	Create(ctx context.Context, booking *models.Booking) error

	// FindByID finds a booking by ID
	FindByID(ctx context.Context, id uint64) (*models.Booking, error)

	// Update persists changed fields of a booking
	Update(ctx context.Context, booking *models.Booking) error

	// ListByBooker lists bookings requested by a user, newest first
	ListByBooker(ctx context.Context, bookerID uint64) ([]models.Booking, error)

	// ListByOwner lists bookings received by a listing owner, newest first
	ListByOwner(ctx context.Context, ownerID uint64) ([]models.Booking, error)
}
