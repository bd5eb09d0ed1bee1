package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/skylane/property-listing-api/internal/models"
	"github.com/skylane/property-listing-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrBadDiscount     = errors.New("discounted price must not exceed regular price")
)

// ListingService handles listing business logic
type ListingService struct {
	listingRepo repository.ListingRepository
}

// NewListingService creates a new ListingService
func NewListingService(listingRepo repository.ListingRepository) *ListingService {
	return &ListingService{
		listingRepo: listingRepo,
	}
}

// CreateListingInput represents input for creating a listing
type CreateListingInput struct {
	OwnerID         uint64
	Name            string
	Description     string
	Address         string
	Bedrooms        int
	Bathrooms       int
	Type            models.ListingType
	Parking         bool
	Furnished       bool
	Offer           bool
	RegularPrice    int64
	DiscountedPrice int64
	ImageURLs       []string
}

// Create creates a listing owned by the acting principal. Ownership is set
// once here and never transfers.
func (s *ListingService) Create(ctx context.Context, input CreateListingInput) (*models.Listing, error) {
	if input.Offer && input.DiscountedPrice > input.RegularPrice {
		return nil, ErrBadDiscount
	}

	listing := &models.Listing{
		OwnerID:         input.OwnerID,
		Name:            input.Name,
		Description:     input.Description,
		Address:         input.Address,
		Bedrooms:        input.Bedrooms,
		Bathrooms:       input.Bathrooms,
		Type:            input.Type,
		Parking:         input.Parking,
		Furnished:       input.Furnished,
		Offer:           input.Offer,
		RegularPrice:    input.RegularPrice,
		DiscountedPrice: input.DiscountedPrice,
		ImageURLs:       input.ImageURLs,
	}
	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}

	return listing, nil
}

// Get returns a listing by ID
func (s *ListingService) Get(ctx context.Context, id uint64) (*models.Listing, error) {
	listing, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to find listing: %w", err)
	}
	return listing, nil
}

// Search returns listings matching the filter
func (s *ListingService) Search(ctx context.Context, filter repository.ListingFilter) ([]models.Listing, error) {
	listings, err := s.listingRepo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search listings: %w", err)
	}
	return listings, nil
}

// ListByOwner returns all listings owned by a user
func (s *ListingService) ListByOwner(ctx context.Context, ownerID uint64) ([]models.Listing, error) {
	listings, err := s.listingRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	return listings, nil
}

// UpdateListingInput represents input for updating a listing. Nil fields
// are left unchanged.
type UpdateListingInput struct {
	Name            *string
	Description     *string
	Address         *string
	Bedrooms        *int
	Bathrooms       *int
	Type            *models.ListingType
	Parking         *bool
	Furnished       *bool
	Offer           *bool
	RegularPrice    *int64
	DiscountedPrice *int64
	ImageURLs       []string
}

// Update applies a partial update to a listing. Only the owner may update.
func (s *ListingService) Update(ctx context.Context, id, actorID uint64, input UpdateListingInput) (*models.Listing, error) {
	listing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeOwner(actorID, listing.OwnerID); err != nil {
		return nil, err
	}

	if input.Name != nil {
		listing.Name = *input.Name
	}
	if input.Description != nil {
		listing.Description = *input.Description
	}
	if input.Address != nil {
		listing.Address = *input.Address
	}
	if input.Bedrooms != nil {
		listing.Bedrooms = *input.Bedrooms
	}
	if input.Bathrooms != nil {
		listing.Bathrooms = *input.Bathrooms
	}
	if input.Type != nil {
		listing.Type = *input.Type
	}
	if input.Parking != nil {
		listing.Parking = *input.Parking
	}
	if input.Furnished != nil {
		listing.Furnished = *input.Furnished
	}
	if input.Offer != nil {
		listing.Offer = *input.Offer
	}
	if input.RegularPrice != nil {
		listing.RegularPrice = *input.RegularPrice
	}
	if input.DiscountedPrice != nil {
		listing.DiscountedPrice = *input.DiscountedPrice
	}
	if input.ImageURLs != nil {
		listing.ImageURLs = input.ImageURLs
	}

	if listing.Offer && listing.DiscountedPrice > listing.RegularPrice {
		return nil, ErrBadDiscount
	}

	if err := s.listingRepo.Update(ctx, listing); err != nil {
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}

	return listing, nil
}

// Delete removes a listing. Only the owner may delete.
func (s *ListingService) Delete(ctx context.Context, id, actorID uint64) error {
	listing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := AuthorizeOwner(actorID, listing.OwnerID); err != nil {
		return err
	}
	if err := s.listingRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	return nil
}

// SaveListing adds a listing to the user's saved set. Saving twice is a
// no-op.
func (s *ListingService) SaveListing(ctx context.Context, userID, listingID uint64) error {
	if _, err := s.Get(ctx, listingID); err != nil {
		return err
	}
	if err := s.listingRepo.Save(ctx, userID, listingID); err != nil {
		return fmt.Errorf("failed to save listing: %w", err)
	}
	return nil
}

// UnsaveListing removes a listing from the user's saved set
func (s *ListingService) UnsaveListing(ctx context.Context, userID, listingID uint64) error {
	if err := s.listingRepo.Unsave(ctx, userID, listingID); err != nil {
		return fmt.Errorf("failed to unsave listing: %w", err)
	}
	return nil
}

// ListSaved returns the user's saved listings
func (s *ListingService) ListSaved(ctx context.Context, userID uint64) ([]models.Listing, error) {
	listings, err := s.listingRepo.ListSaved(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved listings: %w", err)
	}
	return listings, nil
}
