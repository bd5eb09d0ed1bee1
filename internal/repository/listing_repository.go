package repository

import (
	"context"
	"strings"

	"github.com/skylane/property-listing-api/internal/database"
	"github.com/skylane/property-listing-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormListingRepository is a GORM implementation of ListingRepository
type GormListingRepository struct {
	db *gorm.DB
}

// NewListingRepository creates a new ListingRepository
func NewListingRepository(db *gorm.DB) ListingRepository {
	return &GormListingRepository{db: db}
}

// Create creates a new listing
func (r *GormListingRepository) Create(ctx context.Context, listing *models.Listing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

// FindByID finds a listing by ID
func (r *GormListingRepository) FindByID(ctx context.Context, id uint64) (*models.Listing, error) {
	var listing models.Listing
	if err := r.db.WithContext(ctx).First(&listing, id).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

// sortColumns whitelists the fields a search may be ordered by
var sortColumns = map[string]string{
	"created_at":    "created_at",
	"regular_price": "regular_price",
}

// Search retrieves listings matching the filter
func (r *GormListingRepository) Search(ctx context.Context, filter ListingFilter) ([]models.Listing, error) {
	query := r.db.WithContext(ctx).Model(&models.Listing{})

	if filter.SearchTerm != "" {
		query = query.Where("lower(name) LIKE ?", "%"+strings.ToLower(filter.SearchTerm)+"%")
	}
	if filter.Offer != nil {
		query = query.Where("offer = ?", *filter.Offer)
	}
	if filter.Furnished != nil {
		query = query.Where("furnished = ?", *filter.Furnished)
	}
	if filter.Parking != nil {
		query = query.Where("parking = ?", *filter.Parking)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}

	column, ok := sortColumns[filter.Sort]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(filter.Order, "asc") {
		direction = "ASC"
	}

	var listings []models.Listing
	err := query.
		Order(column + " " + direction).
		Scopes(database.Window(filter.Window)).
		Find(&listings).Error
	if err != nil {
		return nil, err
	}
	return listings, nil
}

// ListByOwner lists all listings owned by a user
func (r *GormListingRepository) ListByOwner(ctx context.Context, ownerID uint64) ([]models.Listing, error) {
	var listings []models.Listing
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&listings).Error
	if err != nil {
		return nil, err
	}
	return listings, nil
}

// Update persists changed fields of a listing
func (r *GormListingRepository) Update(ctx context.Context, listing *models.Listing) error {
	return r.db.WithContext(ctx).Save(listing).Error
}

// Delete soft deletes a listing
func (r *GormListingRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&models.Listing{}, id).Error
}

// Save records a listing in a user's saved set. The ON CONFLICT DO NOTHING
// clause makes repeated saves idempotent at the store level.
func (r *GormListingRepository) Save(ctx context.Context, userID, listingID uint64) error {
	saved := models.SavedListing{UserID: userID, ListingID: listingID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&saved).Error
}

// Unsave removes a listing from a user's saved set
func (r *GormListingRepository) Unsave(ctx context.Context, userID, listingID uint64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Delete(&models.SavedListing{}).Error
}

// ListSaved lists a user's saved listings
func (r *GormListingRepository) ListSaved(ctx context.Context, userID uint64) ([]models.Listing, error) {
	var listings []models.Listing
	err := r.db.WithContext(ctx).
		Joins("JOIN saved_listings ON saved_listings.listing_id = listings.id").
		Where("saved_listings.user_id = ?", userID).
		Order("saved_listings.created_at DESC").
		Find(&listings).Error
	if err != nil {
		return nil, err
	}
	return listings, nil
}
