package models

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "pending"
	BookingStatusAccepted BookingStatus = "accepted"
	BookingStatusRejected BookingStatus = "rejected"
)

// IsTerminal reports whether no further transition is defined for the status.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusAccepted || s == BookingStatusRejected
}

// IsResolution reports whether the status is a valid outcome of resolving a
// pending booking.
func (s BookingStatus) IsResolution() bool {
	return s == BookingStatusAccepted || s == BookingStatusRejected
}

// Booking records a stay request from a booker to a listing owner. Bookings
// are never deleted; resolved ones are kept as history.
type Booking struct {
	ID              uint64        `gorm:"primarykey" json:"id"`
	BookerID        uint64        `gorm:"not null;index" json:"booker_id"`
	OwnerID         uint64        `gorm:"not null;index" json:"owner_id"`
	ListingID       uint64        `gorm:"not null;index" json:"listing_id"`
	Status          BookingStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	AppliedFor      ListingType   `gorm:"type:varchar(10)" json:"applied_for"`
	BookerMessage   string        `gorm:"type:text" json:"booker_message"`
	ResponseMessage string        `gorm:"type:text" json:"response_message"`
	CheckInDate     time.Time     `json:"check_in_date"`
	CheckOutDate    time.Time     `json:"check_out_date"`
	ResolvedAt      *time.Time    `json:"resolved_at"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`

	// Relations
	Booker  User    `gorm:"foreignKey:BookerID" json:"booker,omitempty"`
	Owner   User    `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Listing Listing `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
}
