package models

import (
	"time"
)

// User rows are removed for real on account deletion rather than
// soft-deleted: the unique indexes cover every stored row, so a lingering
// tombstone would block the username and email forever.
type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	AvatarURL    string    `gorm:"type:varchar(512)" json:"avatar_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Listings      []Listing      `gorm:"foreignKey:OwnerID" json:"-"`
	SavedListings []SavedListing `gorm:"foreignKey:UserID" json:"-"`
}
