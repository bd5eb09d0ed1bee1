package database

import (
	"gorm.io/gorm"

	"github.com/skylane/property-listing-api/internal/utils"
)

// Window applies an offset/limit window to a GORM query
func Window(params utils.SearchWindow) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}
