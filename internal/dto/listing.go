package dto

import (
	"time"

	"github.com/skylane/property-listing-api/internal/models"
)

// ListingDTO represents a listing in API responses
type ListingDTO struct {
	ID              uint64             `json:"id"`
	OwnerID         uint64             `json:"owner_id"`
	Name            string             `json:"name"`
	Description     string             `json:"description"`
	Address         string             `json:"address"`
	Bedrooms        int                `json:"bedrooms"`
	Bathrooms       int                `json:"bathrooms"`
	Type            models.ListingType `json:"type"`
	Parking         bool               `json:"parking"`
	Furnished       bool               `json:"furnished"`
	Offer           bool               `json:"offer"`
	RegularPrice    int64              `json:"regular_price"`
	DiscountedPrice int64              `json:"discounted_price"`
	ImageURLs       []string           `json:"image_urls"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// ToListingDTO converts a Listing model to ListingDTO
func ToListingDTO(listing models.Listing) ListingDTO {
	return ListingDTO{
		ID:              listing.ID,
		OwnerID:         listing.OwnerID,
		Name:            listing.Name,
		Description:     listing.Description,
		Address:         listing.Address,
		Bedrooms:        listing.Bedrooms,
		Bathrooms:       listing.Bathrooms,
		Type:            listing.Type,
		Parking:         listing.Parking,
		Furnished:       listing.Furnished,
		Offer:           listing.Offer,
		RegularPrice:    listing.RegularPrice,
		DiscountedPrice: listing.DiscountedPrice,
		ImageURLs:       listing.ImageURLs,
		CreatedAt:       listing.CreatedAt,
		UpdatedAt:       listing.UpdatedAt,
	}
}

// ToListingDTOs converts a slice of listings
func ToListingDTOs(listings []models.Listing) []ListingDTO {
	dtos := make([]ListingDTO, len(listings))
	for i, listing := range listings {
		dtos[i] = ToListingDTO(listing)
	}
	return dtos
}
