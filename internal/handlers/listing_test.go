package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skylane/property-listing-api/internal/constants"
	"github.com/skylane/property-listing-api/internal/database"
	"github.com/skylane/property-listing-api/internal/dto"
	"github.com/skylane/property-listing-api/internal/middleware"
	"github.com/skylane/property-listing-api/internal/models"
	"github.com/skylane/property-listing-api/internal/repository"
	"github.com/skylane/property-listing-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type listingTestEnv struct {
	db             *gorm.DB
	router         *gin.Engine
	authService    *services.AuthService
	listingService *services.ListingService
	tokens         *services.TokenService
}

func setupListingTestEnv(t *testing.T) listingTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Listing{},
		&models.SavedListing{},
		&models.Booking{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	listingRepo := repository.NewListingRepository(db)
	hasher := services.NewPasswordHasher(4)
	tokens := services.NewTokenService("test-secret", time.Hour)
	authService := services.NewAuthService(userRepo, hasher)
	listingService := services.NewListingService(listingRepo)
	handler := NewListingHandler(listingService)

	requireAuth := middleware.RequireAuth(tokens, userRepo)

	r := gin.New()
	r.GET("/api/listings", handler.SearchListings)
	r.GET("/api/listings/saved", requireAuth, handler.GetSavedListings)
	r.GET("/api/listings/:id", handler.GetListing)
	r.POST("/api/listings", requireAuth, handler.CreateListing)
	r.PUT("/api/listings/:id", requireAuth, handler.UpdateListing)
	r.DELETE("/api/listings/:id", requireAuth, handler.DeleteListing)
	r.POST("/api/listings/:id/save", requireAuth, handler.SaveListing)
	r.DELETE("/api/listings/:id/save", requireAuth, handler.UnsaveListing)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return listingTestEnv{
		db:             db,
		router:         r,
		authService:    authService,
		listingService: listingService,
		tokens:         tokens,
	}
}

func (env listingTestEnv) signupUser(t *testing.T, username, email string) (*models.User, string) {
	t.Helper()

	user, err := env.authService.Signup(context.Background(), services.SignupInput{
		Username: username,
		Email:    email,
		Password: "secret123",
	})
	require.NoError(t, err)

	token, err := env.tokens.Issue(user)
	require.NoError(t, err)
	return user, token
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: constants.AccessTokenCookieName, Value: token})
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type listingResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    dto.ListingDTO `json:"data"`
}

type listingsResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    []dto.ListingDTO `json:"data"`
}

func validListingPayload() map[string]interface{} {
	return map[string]interface{}{
		"name":          "Cozy cottage",
		"description":   "Small but sunny",
		"address":       "12 Elm Street",
		"bedrooms":      2,
		"bathrooms":     1,
		"type":          "rent",
		"parking":       true,
		"furnished":     true,
		"regular_price": 1200,
	}
}

func TestListingHandler_Create(t *testing.T) {
	env := setupListingTestEnv(t)
	owner, token := env.signupUser(t, "owner", "owner@x.com")

	w := doJSON(t, env.router, http.MethodPost, "/api/listings", token, validListingPayload())

	require.Equal(t, http.StatusCreated, w.Code)

	var response listingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, owner.ID, response.Data.OwnerID, "creator becomes the owner")
	require.Equal(t, models.ListingTypeRent, response.Data.Type)
}

func TestListingHandler_Create_Unauthenticated(t *testing.T) {
	env := setupListingTestEnv(t)

	w := doJSON(t, env.router, http.MethodPost, "/api/listings", "", validListingPayload())
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListingHandler_Create_BadDiscount(t *testing.T) {
	env := setupListingTestEnv(t)
	_, token := env.signupUser(t, "owner", "owner@x.com")

	payload := validListingPayload()
	payload["offer"] = true
	payload["discounted_price"] = 5000

	w := doJSON(t, env.router, http.MethodPost, "/api/listings", token, payload)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListingHandler_Update_OwnerOnly(t *testing.T) {
	env := setupListingTestEnv(t)
	owner, ownerToken := env.signupUser(t, "owner", "owner@x.com")
	_, otherToken := env.signupUser(t, "other", "other@x.com")

	listing, err := env.listingService.Create(context.Background(), services.CreateListingInput{
		OwnerID:      owner.ID,
		Name:         "Cozy cottage",
		Type:         models.ListingTypeRent,
		RegularPrice: 1200,
	})
	require.NoError(t, err)

	path := fmt.Sprintf("/api/listings/%d", listing.ID)

	w := doJSON(t, env.router, http.MethodPut, path, otherToken, map[string]interface{}{
		"name": "Hijacked",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, env.router, http.MethodPut, path, ownerToken, map[string]interface{}{
		"name": "Renamed cottage",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response listingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Renamed cottage", response.Data.Name)
	require.Equal(t, owner.ID, response.Data.OwnerID, "ownership never transfers")
}

func TestListingHandler_Delete_OwnerOnly(t *testing.T) {
	env := setupListingTestEnv(t)
	owner, ownerToken := env.signupUser(t, "owner", "owner@x.com")
	_, otherToken := env.signupUser(t, "other", "other@x.com")

	listing, err := env.listingService.Create(context.Background(), services.CreateListingInput{
		OwnerID:      owner.ID,
		Name:         "Cozy cottage",
		Type:         models.ListingTypeSale,
		RegularPrice: 90000,
	})
	require.NoError(t, err)

	path := fmt.Sprintf("/api/listings/%d", listing.ID)

	w := doJSON(t, env.router, http.MethodDelete, path, otherToken, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, env.router, http.MethodDelete, path, ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, env.router, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusNotFound, w.Code, "deleted listing is no longer retrievable")
}

func TestListingHandler_SaveIsIdempotent(t *testing.T) {
	env := setupListingTestEnv(t)
	owner, _ := env.signupUser(t, "owner", "owner@x.com")
	_, token := env.signupUser(t, "saver", "saver@x.com")

	listing, err := env.listingService.Create(context.Background(), services.CreateListingInput{
		OwnerID:      owner.ID,
		Name:         "Cozy cottage",
		Type:         models.ListingTypeRent,
		RegularPrice: 1200,
	})
	require.NoError(t, err)

	path := fmt.Sprintf("/api/listings/%d/save", listing.ID)
	for i := 0; i < 3; i++ {
		w := doJSON(t, env.router, http.MethodPost, path, token, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	var count int64
	env.db.Model(&models.SavedListing{}).Count(&count)
	require.EqualValues(t, 1, count, "repeated saves must not duplicate")

	w := doJSON(t, env.router, http.MethodGet, "/api/listings/saved", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response listingsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Data, 1)
	require.Equal(t, listing.ID, response.Data[0].ID)

	w = doJSON(t, env.router, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	env.db.Model(&models.SavedListing{}).Count(&count)
	require.Zero(t, count)
}

func TestListingHandler_Save_UnknownListing(t *testing.T) {
	env := setupListingTestEnv(t)
	_, token := env.signupUser(t, "saver", "saver@x.com")

	w := doJSON(t, env.router, http.MethodPost, "/api/listings/9999/save", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestListingHandler_Search(t *testing.T) {
	env := setupListingTestEnv(t)
	owner, _ := env.signupUser(t, "owner", "owner@x.com")

	seed := []services.CreateListingInput{
		{OwnerID: owner.ID, Name: "Beach House", Type: models.ListingTypeSale, RegularPrice: 300000, Offer: true, DiscountedPrice: 250000},
		{OwnerID: owner.ID, Name: "Downtown Flat", Type: models.ListingTypeRent, RegularPrice: 1500, Furnished: true},
		{OwnerID: owner.ID, Name: "Country Cabin", Type: models.ListingTypeRent, RegularPrice: 800, Parking: true},
	}
	for _, input := range seed {
		_, err := env.listingService.Create(context.Background(), input)
		require.NoError(t, err)
	}

	w := doJSON(t, env.router, http.MethodGet, "/api/listings?type=rent", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var response listingsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Data, 2)

	w = doJSON(t, env.router, http.MethodGet, "/api/listings?offer=true", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	response = listingsResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Data, 1)
	require.Equal(t, "Beach House", response.Data[0].Name)

	// Case-insensitive name match
	w = doJSON(t, env.router, http.MethodGet, "/api/listings?search_term=beach", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	response = listingsResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Data, 1)

	// offer=false means "either", matching the search contract
	w = doJSON(t, env.router, http.MethodGet, "/api/listings?offer=false", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	response = listingsResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Data, 3)

	w = doJSON(t, env.router, http.MethodGet, "/api/listings?limit=2&sort=regular_price&order=asc", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	response = listingsResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Data, 2)
	require.Equal(t, "Country Cabin", response.Data[0].Name)
}
