package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridecircle/ridecircle_client/internal/api/handler"
	"github.com/ridecircle/ridecircle_client/internal/client"
	"github.com/ridecircle/ridecircle_client/internal/model"
	"github.com/ridecircle/ridecircle_client/internal/model/dto"
	"github.com/ridecircle/ridecircle_client/internal/pkg/response"
	"github.com/ridecircle/ridecircle_client/internal/pkg/ws"
	"github.com/ridecircle/ridecircle_client/internal/service"
	"github.com/ridecircle/ridecircle_client/internal/session"
	"github.com/ridecircle/ridecircle_client/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(t *testing.T) (*testutil.FakeAPI, *gin.Engine) {
	t.Helper()

	fake := testutil.NewFakeAPI(t)
	cfg := testutil.Config(t)
	sess := session.New(session.NewMemoryStore())
	apiClient := client.New(fake.BaseURL(), sess)
	hub := ws.NewHub()

	authService := service.NewAuthService(apiClient, sess)
	userService := service.NewUserService(apiClient, sess)
	clubService := service.NewClubService(apiClient, sess)
	tripService := service.NewTripService(apiClient, sess)
	reviewService := service.NewReviewService(apiClient, sess)
	restaurantService := service.NewRestaurantService(apiClient, sess)
	bookingService := service.NewBookingService(apiClient, sess)
	foodService := service.NewFoodService(apiClient, sess)
	subscriptionService := service.NewSubscriptionService(apiClient, sess, cfg.Subscription.DefaultPaymentMethod)

	router := NewRouter(
		handler.NewPageHandler(apiClient, clubService, tripService, reviewService),
		handler.NewAuthHandler(authService, subscriptionService, hub),
		handler.NewUserHandler(userService, clubService, tripService, foodService, bookingService, subscriptionService),
		handler.NewClubHandler(clubService, hub),
		handler.NewTripHandler(tripService, clubService, hub),
		handler.NewReviewHandler(reviewService, tripService, hub),
		handler.NewRestaurantHandler(restaurantService, bookingService, hub),
		handler.NewFoodHandler(foodService, hub),
		handler.NewSubscriptionHandler(subscriptionService, hub),
		handler.NewWebSocketHandler(hub, cfg.CORS.AllowedOrigins),
		sess,
		subscriptionService,
		cfg,
	)
	return fake, router.Setup()
}

func do(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	if out != nil && resp.Data != nil {
		raw, err := json.Marshal(resp.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, out))
	}
	return resp
}

func signIn(t *testing.T, r http.Handler) {
	t.Helper()
	resp := decode(t, do(r, "POST", "/actions/signin", dto.SignInRequest{
		Username: testutil.TestUsername,
		Password: testutil.TestPassword,
	}), nil)
	require.Equal(t, response.CodeSuccess, resp.Code, resp.Message)
}

func TestRouter_Guards(t *testing.T) {
	_, r := setupRouter(t)

	tests := []struct {
		name     string
		method   string
		path     string
		wantCode int
	}{
		{"public home", "GET", "/", response.CodeSuccess},
		{"public clubs", "GET", "/clubs", response.CodeSuccess},
		{"profile needs login", "GET", "/profile", response.CodeAuthFailed},
		{"club form needs admin", "GET", "/clubs/add", response.CodeAuthFailed},
		{"trip form needs admin", "GET", "/clubs/1/trips/add", response.CodeAuthFailed},
		{"admin foods needs admin", "GET", "/admin/foods", response.CodeAuthFailed},
		{"feature needs login", "GET", "/features/analytics", response.CodeAuthFailed},
		{"join needs login", "POST", "/actions/clubs/1/join", response.CodeAuthFailed},
		{"booking needs login", "POST", "/actions/bookings", response.CodeAuthFailed},
		{"feature access is public", "GET", "/actions/features/analytics", response.CodeSuccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := decode(t, do(r, tt.method, tt.path, nil), nil)
			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}
}

func TestRouter_AdminScreensForRegularUser(t *testing.T) {
	_, r := setupRouter(t)
	signIn(t, r)

	resp := decode(t, do(r, "GET", "/clubs/add", nil), nil)
	assert.Equal(t, response.CodePermissionDenied, resp.Code)
	assert.Equal(t, "Access denied. Admin role required.", resp.Message)

	resp = decode(t, do(r, "GET", "/profile", nil), nil)
	assert.Equal(t, response.CodeSuccess, resp.Code)
}

func TestRouter_AdminScreensForAdmin(t *testing.T) {
	fake, r := setupRouter(t)
	fake.SetRoles(model.RoleAdmin)
	signIn(t, r)

	var form dto.TripFormView
	resp := decode(t, do(r, "GET", "/clubs/2/trips/add", nil), &form)
	assert.Equal(t, response.CodeSuccess, resp.Code)
	assert.Equal(t, int64(2), form.ClubID)
	assert.True(t, form.Viewer.IsAdmin)

	resp = decode(t, do(r, "GET", "/admin/foods", nil), nil)
	assert.Equal(t, response.CodeSuccess, resp.Code)
}

func TestRouter_UnknownPathRedirectsHome(t *testing.T) {
	_, r := setupRouter(t)

	w := do(r, "GET", "/nowhere", nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestRouter_Preflight(t *testing.T) {
	_, r := setupRouter(t)

	req := httptest.NewRequest("OPTIONS", "/actions/signin", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_MemberJourney(t *testing.T) {
	fake, r := setupRouter(t)

	var trips dto.TripsView
	decode(t, do(r, "GET", "/trips", nil), &trips)
	assert.NotEmpty(t, trips.Trips)

	signIn(t, r)

	resp := decode(t, do(r, "POST", "/actions/clubs/1/join", nil), nil)
	require.Equal(t, response.CodeSuccess, resp.Code, resp.Message)
	assert.True(t, fake.IsMember(1))

	resp = decode(t, do(r, "POST", "/actions/trips/1/register?plan=NORMAL", nil), nil)
	require.Equal(t, response.CodeSuccess, resp.Code, resp.Message)
	plan, ok := fake.RegistrationPlan(1)
	require.True(t, ok)
	assert.Equal(t, "NORMAL", plan)

	var booking model.RestaurantBooking
	resp = decode(t, do(r, "POST", "/actions/bookings", map[string]interface{}{
		"restaurantId":        1,
		"reservationDateTime": "2030-05-10T19:00:00",
		"numberOfGuests":      2,
	}), &booking)
	require.Equal(t, response.CodeSuccess, resp.Code, resp.Message)
	assert.NotEmpty(t, booking.ConfirmationCode)

	var profile dto.ProfileView
	decode(t, do(r, "GET", "/profile", nil), &profile)
	assert.Len(t, profile.Clubs, 1)
	assert.Len(t, profile.Trips, 1)
	assert.Len(t, profile.Bookings, 1)

	resp = decode(t, do(r, "POST", "/actions/logout", nil), nil)
	assert.Equal(t, "Logged out", resp.Message)

	resp = decode(t, do(r, "GET", "/profile", nil), nil)
	assert.Equal(t, response.CodeAuthFailed, resp.Code)
}
