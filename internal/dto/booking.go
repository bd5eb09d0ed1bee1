package dto

import (
	"time"

	"github.com/skylane/property-listing-api/internal/models"
)

// BookingDTO represents a booking in API responses
type BookingDTO struct {
	ID              uint64               `json:"id"`
	BookerID        uint64               `json:"booker_id"`
	OwnerID         uint64               `json:"owner_id"`
	ListingID       uint64               `json:"listing_id"`
	Status          models.BookingStatus `json:"status"`
	AppliedFor      models.ListingType   `json:"applied_for"`
	BookerMessage   string               `json:"booker_message"`
	ResponseMessage string               `json:"response_message"`
	CheckInDate     time.Time            `json:"check_in_date"`
	CheckOutDate    time.Time            `json:"check_out_date"`
	ResolvedAt      *time.Time           `json:"resolved_at"`
	CreatedAt       time.Time            `json:"created_at"`
	Booker          *UserDTO             `json:"booker,omitempty"`
	Owner           *UserDTO             `json:"owner,omitempty"`
}

// ToBookingDTO converts a Booking model to BookingDTO
func ToBookingDTO(booking models.Booking) BookingDTO {
	dto := BookingDTO{
		ID:              booking.ID,
		BookerID:        booking.BookerID,
		OwnerID:         booking.OwnerID,
		ListingID:       booking.ListingID,
		Status:          booking.Status,
		AppliedFor:      booking.AppliedFor,
		BookerMessage:   booking.BookerMessage,
		ResponseMessage: booking.ResponseMessage,
		CheckInDate:     booking.CheckInDate,
		CheckOutDate:    booking.CheckOutDate,
		ResolvedAt:      booking.ResolvedAt,
		CreatedAt:       booking.CreatedAt,
	}

	// Include parties if preloaded
	if booking.Booker.ID != 0 {
		booker := ToUserDTO(booking.Booker)
		dto.Booker = &booker
	}
	if booking.Owner.ID != 0 {
		owner := ToUserDTO(booking.Owner)
		dto.Owner = &owner
	}

	return dto
}

// ToBookingDTOs converts a slice of bookings
func ToBookingDTOs(bookings []models.Booking) []BookingDTO {
	dtos := make([]BookingDTO, len(bookings))
	for i, booking := range bookings {
		dtos[i] = ToBookingDTO(booking)
	}
	return dtos
}
