package models

import (
	"time"

	"gorm.io/gorm"
)

type ListingType string

const (
	ListingTypeSale ListingType = "sale"
	ListingTypeRent ListingType = "rent"
)

type Listing struct {
	ID              uint64         `gorm:"primarykey" json:"id"`
	OwnerID         uint64         `gorm:"not null;index" json:"owner_id"`
	Name            string         `gorm:"type:varchar(255);not null" json:"name"`
	Description     string         `gorm:"type:text" json:"description"`
	Address         string         `gorm:"type:varchar(255)" json:"address"`
	Bedrooms        int            `gorm:"not null;default:1" json:"bedrooms"`
	Bathrooms       int            `gorm:"not null;default:1" json:"bathrooms"`
	Type            ListingType    `gorm:"type:varchar(10);not null" json:"type"`
	Parking         bool           `gorm:"not null;default:false" json:"parking"`
	Furnished       bool           `gorm:"not null;default:false" json:"furnished"`
	Offer           bool           `gorm:"not null;default:false" json:"offer"`
	RegularPrice    int64          `gorm:"not null" json:"regular_price"`
	DiscountedPrice int64          `json:"discounted_price"`
	ImageURLs       []string       `gorm:"serializer:json" json:"image_urls"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Owner User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

// SavedListing links a user to a listing they saved. The composite primary
// key makes a repeated save a no-op rather than a duplicate row.
type SavedListing struct {
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	ListingID uint64    `gorm:"primarykey" json:"listing_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Listing Listing `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
}
