package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/skylane/property-listing-api/internal/models"
	"github.com/skylane/property-listing-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrSelfBooking       = errors.New("cannot book your own listing")
	ErrInvalidResolution = errors.New("resolution status must be accepted or rejected")
	ErrBookingResolved   = errors.New("booking has already been resolved")
)

// BookingService handles booking lifecycle logic
type BookingService struct {
	bookingRepo repository.BookingRepository
	listingRepo repository.ListingRepository
}

// NewBookingService creates a new BookingService
func NewBookingService(bookingRepo repository.BookingRepository, listingRepo repository.ListingRepository) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		listingRepo: listingRepo,
	}
}

// CreateBookingInput represents input for creating a booking
type CreateBookingInput struct {
	BookerID      uint64
	ListingID     uint64
	AppliedFor    models.ListingType
	BookerMessage string
	CheckInDate   *time.Time
	CheckOutDate  *time.Time
}

// Create creates a pending booking on a listing. The owner is copied from
// the listing at creation time and never changes afterwards, even if the
// listing is later deleted.
func (s *BookingService) Create(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	listing, err := s.listingRepo.FindByID(ctx, input.ListingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to find listing: %w", err)
	}

	if listing.OwnerID == input.BookerID {
		return nil, ErrSelfBooking
	}

	now := time.Now()
	checkIn := now
	if input.CheckInDate != nil {
		checkIn = *input.CheckInDate
	}
	checkOut := now
	if input.CheckOutDate != nil {
		checkOut = *input.CheckOutDate
	}

	appliedFor := input.AppliedFor
	if appliedFor == "" {
		appliedFor = listing.Type
	}

	booking := &models.Booking{
		BookerID:      input.BookerID,
		OwnerID:       listing.OwnerID,
		ListingID:     listing.ID,
		Status:        models.BookingStatusPending,
		AppliedFor:    appliedFor,
		BookerMessage: input.BookerMessage,
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	return booking, nil
}

// ResolveBookingInput represents input for resolving a booking
type ResolveBookingInput struct {
	BookingID       uint64
	ActorID         uint64
	Status          models.BookingStatus
	ResponseMessage string
}

// Resolve moves a pending booking to a terminal state. Only the listing
// owner may resolve, and a booking resolves exactly once: accepted and
// rejected are terminal, so a second call fails rather than overwriting
// the earlier decision.
func (s *BookingService) Resolve(ctx context.Context, input ResolveBookingInput) (*models.Booking, error) {
	if !input.Status.IsResolution() {
		return nil, ErrInvalidResolution
	}

	booking, err := s.bookingRepo.FindByID(ctx, input.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	if err := AuthorizeOwner(input.ActorID, booking.OwnerID); err != nil {
		return nil, err
	}

	if booking.Status.IsTerminal() {
		return nil, ErrBookingResolved
	}

	now := time.Now()
	booking.Status = input.Status
	booking.ResponseMessage = input.ResponseMessage
	booking.ResolvedAt = &now

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	return booking, nil
}

// MyBookings returns the bookings the user requested as booker
func (s *BookingService) MyBookings(ctx context.Context, userID uint64) ([]models.Booking, error) {
	bookings, err := s.bookingRepo.ListByBooker(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// ReceivedBookings returns the bookings the user received as listing owner
func (s *BookingService) ReceivedBookings(ctx context.Context, userID uint64) ([]models.Booking, error) {
	bookings, err := s.bookingRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list received bookings: %w", err)
	}
	return bookings, nil
}
