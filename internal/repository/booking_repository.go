package repository

import (
	"context"

	"github.com/skylane/property-listing-api/internal/models"
	"gorm.io/gorm"
)

// GormBookingRepository is a GORM implementation of BookingRepository
type GormBookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &GormBookingRepository{db: db}
}

// Create creates a new booking
func (r *GormBookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

// FindByID finds a booking by ID
func (r *GormBookingRepository) FindByID(ctx context.Context, id uint64) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// Update persists changed fields of a booking
func (r *GormBookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

// ListByBooker lists bookings requested by a user, newest first. The two
// booking lists are query-time joins over booker_id/owner_id rather than
// denormalized per-user arrays, so creation is a single write.
func (r *GormBookingRepository) ListByBooker(ctx context.Context, bookerID uint64) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("booker_id = ?", bookerID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListByOwner lists bookings received by a listing owner, newest first
func (r *GormBookingRepository) ListByOwner(ctx context.Context, ownerID uint64) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Booker").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
