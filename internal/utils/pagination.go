package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skylane/property-listing-api/internal/constants"
)

// SearchWindow holds the offset/limit window for list queries
type SearchWindow struct {
	Limit  int
	Offset int
}

// GetSearchWindow extracts and validates the limit/start_index query
// parameters from the request
func GetSearchWindow(c *gin.Context) SearchWindow {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultSearchLimit)))
	offset, _ := strconv.Atoi(c.DefaultQuery("start_index", "0"))

	if limit < 1 || limit > constants.MaxSearchLimit {
		limit = constants.DefaultSearchLimit
	}
	if offset < 0 {
		offset = 0
	}

	return SearchWindow{
		Limit:  limit,
		Offset: offset,
	}
}
