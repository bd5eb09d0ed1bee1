package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
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

type bookingTestEnv struct {
	db             *gorm.DB
	router         *gin.Engine
	authService    *services.AuthService
	listingService *services.ListingService
	bookingService *services.BookingService
	tokens         *services.TokenService
}

func setupBookingTestEnv(t *testing.T) bookingTestEnv {
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
	bookingRepo := repository.NewBookingRepository(db)
	hasher := services.NewPasswordHasher(4)
	tokens := services.NewTokenService("test-secret", time.Hour)
	authService := services.NewAuthService(userRepo, hasher)
	listingService := services.NewListingService(listingRepo)
	bookingService := services.NewBookingService(bookingRepo, listingRepo)
	handler := NewBookingHandler(bookingService)

	requireAuth := middleware.RequireAuth(tokens, userRepo)

	r := gin.New()
	bookings := r.Group("/api/bookings")
	bookings.Use(requireAuth)
	{
		bookings.POST("", handler.CreateBooking)
		bookings.POST("/:id/resolve", handler.ResolveBooking)
		bookings.GET("/my", handler.GetMyBookings)
		bookings.GET("/received", handler.GetReceivedBookings)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return bookingTestEnv{
		db:             db,
		router:         r,
		authService:    authService,
		listingService: listingService,
		bookingService: bookingService,
		tokens:         tokens,
	}
}

func (env bookingTestEnv) signupUser(t *testing.T, username, email string) (*models.User, string) {
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

func (env bookingTestEnv) createListing(t *testing.T, ownerID uint64) *models.Listing {
	t.Helper()

	listing, err := env.listingService.Create(context.Background(), services.CreateListingInput{
		OwnerID:      ownerID,
		Name:         "Cozy cottage",
		Type:         models.ListingTypeRent,
		RegularPrice: 1200,
	})
	require.NoError(t, err)
	return listing
}

type bookingResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    dto.BookingDTO `json:"data"`
}

type bookingsResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    []dto.BookingDTO `json:"data"`
}

func TestBookingHandler_Create(t *testing.T) {
	env := setupBookingTestEnv(t)
	owner, _ := env.signupUser(t, "owner", "owner@x.com")
	booker, bookerToken := env.signupUser(t, "booker", "booker@x.com")
	listing := env.createListing(t, owner.ID)

	w := doJSON(t, env.router, http.MethodPost, "/api/bookings", bookerToken, map[string]interface{}{
		"listing_id":     listing.ID,
		"applied_for":    "rent",
		"booker_message": "Can I stay next week?",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var response bookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, models.BookingStatusPending, response.Data.Status)
	require.Equal(t, booker.ID, response.Data.BookerID)
	require.Equal(t, owner.ID, response.Data.OwnerID, "owner copied from the listing")
	require.Equal(t, models.ListingTypeRent, response.Data.AppliedFor)
	require.Nil(t, response.Data.ResolvedAt)
	require.False(t, response.Data.CheckInDate.IsZero(), "check-in defaults to now")
}

func TestBookingHandler_Create_AppliedForDefaultsToListingType(t *testing.T) {
	env := setupBookingTestEnv(t)
	owner, _ := env.signupUser(t, "owner", "owner@x.com")
	_, bookerToken := env.signupUser(t, "booker", "booker@x.com")
	listing := env.createListing(t, owner.ID)

	w := doJSON(t, env.router, http.MethodPost, "/api/bookings", bookerToken, map[string]interface{}{
		"listing_id": listing.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var response bookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, listing.Type, response.Data.AppliedFor)
}

func TestBookingHandler_Create_UnknownListing(t *testing.T) {
	env := setupBookingTestEnv(t)
	_, token := env.signupUser(t, "booker", "booker@x.com")

	w := doJSON(t, env.router, http.MethodPost, "/api/bookings", token, map[string]interface{}{
		"listing_id": 9999,
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingHandler_Create_SelfBooking(t *testing.T) {
	env := setupBookingTestEnv(t)
	owner, ownerToken := env.signupUser(t, "owner", "owner@x.com")
	listing := env.createListing(t, owner.ID)

	w := doJSON(t, env.router, http.MethodPost, "/api/bookings", ownerToken, map[string]interface{}{
		"listing_id": listing.ID,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingHandler_Visibility(t *testing.T) {
	env := setupBookingTestEnv(t)
	owner, ownerToken := env.signupUser(t, "owner", "owner@x.com")
	booker, bookerToken := env.signupUser(t, "booker", "booker@x.com")
	_, bystanderToken := env.signupUser(t, "bystander", "bystander@x.com")
	listing := env.createListing(t, owner.ID)

	booking, err := env.bookingService.Create(context.Background(), services.CreateBookingInput{
		BookerID:  booker.ID,
		ListingID: listing.ID,
	})
	require.NoError(t, err)

	// Booker sees it in /my with the owner attached
	w := doJSON(t, env.router, http.MethodGet, "/api/bookings/my", bookerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list bookingsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)
	require.Equal(t, booking.ID, list.Data[0].ID)
	require.NotNil(t, list.Data[0].Owner)
	require.Equal(t, owner.ID, list.Data[0].Owner.ID)

	// Owner sees it in /received with the booker attached
	w = doJSON(t, env.router, http.MethodGet, "/api/bookings/received", ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list = bookingsResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)
	require.NotNil(t, list.Data[0].Booker)
	require.Equal(t, booker.ID, list.Data[0].Booker.ID)

	// Nobody else sees it anywhere
	for _, path := range []string{"/api/bookings/my", "/api/bookings/received"} {
		w = doJSON(t, env.router, http.MethodGet, path, bystanderToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		list = bookingsResponse{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		require.Empty(t, list.Data)
	}
}

func TestBookingHandler_Resolve(t *testing.T) {
	env := setupBookingTestEnv(t)
	owner, ownerToken := env.signupUser(t, "owner", "owner@x.com")
	booker, bookerToken := env.signupUser(t, "booker", "booker@x.com")
	listing := env.createListing(t, owner.ID)

	booking, err := env.bookingService.Create(context.Background(), services.CreateBookingInput{
		BookerID:  booker.ID,
		ListingID: listing.ID,
	})
	require.NoError(t, err)

	path := fmt.Sprintf("/api/bookings/%d/resolve", booking.ID)

	// The booker may not resolve their own request
	w := doJSON(t, env.router, http.MethodPost, path, bookerToken, map[string]interface{}{
		"status": "accepted",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, env.router, http.MethodPost, path, ownerToken, map[string]interface{}{
		"status":           "accepted",
		"response_message": "Welcome!",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response bookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, models.BookingStatusAccepted, response.Data.Status)
	require.Equal(t, "Welcome!", response.Data.ResponseMessage)
	require.NotNil(t, response.Data.ResolvedAt)
}

func TestBookingHandler_Resolve_Twice(t *testing.T) {
	env := setupBookingTestEnv(t)
	owner, ownerToken := env.signupUser(t, "owner", "owner@x.com")
	booker, _ := env.signupUser(t, "booker", "booker@x.com")
	listing := env.createListing(t, owner.ID)

	booking, err := env.bookingService.Create(context.Background(), services.CreateBookingInput{
		BookerID:  booker.ID,
		ListingID: listing.ID,
	})
	require.NoError(t, err)

	path := fmt.Sprintf("/api/bookings/%d/resolve", booking.ID)

	w := doJSON(t, env.router, http.MethodPost, path, ownerToken, map[string]interface{}{
		"status": "rejected",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// A terminal state admits no further transition
	w = doJSON(t, env.router, http.MethodPost, path, ownerToken, map[string]interface{}{
		"status": "accepted",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	updated, err := env.bookingService.MyBookings(context.Background(), booker.ID)
	require.NoError(t, err)
	require.Len(t, updated, 1)
	require.Equal(t, models.BookingStatusRejected, updated[0].Status, "first decision stands")
}

func TestBookingHandler_Resolve_InvalidStatus(t *testing.T) {
	env := setupBookingTestEnv(t)
	owner, ownerToken := env.signupUser(t, "owner", "owner@x.com")
	booker, _ := env.signupUser(t, "booker", "booker@x.com")
	listing := env.createListing(t, owner.ID)

	booking, err := env.bookingService.Create(context.Background(), services.CreateBookingInput{
		BookerID:  booker.ID,
		ListingID: listing.ID,
	})
	require.NoError(t, err)

	path := fmt.Sprintf("/api/bookings/%d/resolve", booking.ID)

	w := doJSON(t, env.router, http.MethodPost, path, ownerToken, map[string]interface{}{
		"status": "pending",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingHandler_Resolve_NotFound(t *testing.T) {
	env := setupBookingTestEnv(t)
	_, token := env.signupUser(t, "owner", "owner@x.com")

	w := doJSON(t, env.router, http.MethodPost, "/api/bookings/9999/resolve", token, map[string]interface{}{
		"status": "accepted",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}
