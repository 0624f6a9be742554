package testutil

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ridecircle/ridecircle_client/internal/model"
	"github.com/ridecircle/ridecircle_client/internal/model/dto"
)

// RecordedRequest FakeAPI 收到的一次请求
type RecordedRequest struct {
	Method        string
	Path          string
	RawQuery      string
	Authorization string
	Body          string
}

// FakeAPI 内存版 RideCircle REST 服务，只实现客户端用到的契约
type FakeAPI struct {
	Server *httptest.Server

	mu sync.Mutex

	// TokenField 登录响应中携带令牌的字段名
	TokenField string
	Token      string
	Roles      []string
	Users      map[string]string

	Clubs         []model.Club
	Trips         []model.Trip
	Reviews       []model.Review
	Restaurants   []model.Restaurant
	Bookings      []model.RestaurantBooking
	Foods         []model.Food
	Plans         []model.SubscriptionPlan
	Subscription  *model.UserSubscription
	Features      map[string]bool
	Members       map[int64]bool
	Registrations map[int64]string
	Preferences   map[int64]bool

	// Fail 按 "METHOD /api/路由模板" 强制返回指定状态码
	Fail     map[string]int
	FailBody string

	// SilentCancel 取消订阅成功但不返回正文
	SilentCancel bool

	requests []RecordedRequest
	nextID   int64
}

// NewFakeAPI 启动服务并在测试结束时关闭
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &FakeAPI{
		TokenField:    "token",
		Token:         TestToken,
		Roles:         []string{model.RoleUser},
		Users:         map[string]string{TestUsername: TestPassword},
		Clubs:         TestClubs(),
		Trips:         TestTrips(),
		Reviews:       TestReviews(),
		Restaurants:   TestRestaurants(),
		Foods:         TestFoods(),
		Plans:         TestPlans(),
		Features:      map[string]bool{},
		Members:       map[int64]bool{},
		Registrations: map[int64]string{},
		Preferences:   map[int64]bool{},
		Fail:          map[string]int{},
		FailBody:      "forced failure",
		nextID:        100,
	}
	f.Server = httptest.NewServer(f.routes())
	t.Cleanup(f.Server.Close)
	return f
}

// BaseURL 带 /api 前缀
func (f *FakeAPI) BaseURL() string {
	return f.Server.URL + "/api"
}

func (f *FakeAPI) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]RecordedRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

func (f *FakeAPI) LastRequest() RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return RecordedRequest{}
	}
	return f.requests[len(f.requests)-1]
}

// Count 统计某个方法和路径的请求次数
func (f *FakeAPI) Count(method, path string) int {
	n := 0
	for _, r := range f.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

func (f *FakeAPI) SetFail(method, route string, status int) {
	f.mu.Lock()
	f.Fail[method+" "+route] = status
	f.mu.Unlock()
}

func (f *FakeAPI) ClearFail(method, route string) {
	f.mu.Lock()
	delete(f.Fail, method+" "+route)
	f.mu.Unlock()
}

func (f *FakeAPI) SetSubscription(sub *model.UserSubscription) {
	f.mu.Lock()
	f.Subscription = sub
	f.mu.Unlock()
}

func (f *FakeAPI) SetFeature(feature string, allowed bool) {
	f.mu.Lock()
	f.Features[feature] = allowed
	f.mu.Unlock()
}

func (f *FakeAPI) SetRoles(roles ...string) {
	f.mu.Lock()
	f.Roles = roles
	f.mu.Unlock()
}

func (f *FakeAPI) IsMember(clubID int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Members[clubID]
}

func (f *FakeAPI) RegistrationPlan(tripID int64) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	plan, ok := f.Registrations[tripID]
	return plan, ok
}

func (f *FakeAPI) BookingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Bookings)
}

func (f *FakeAPI) routes() http.Handler {
	r := gin.New()
	r.Use(f.record, f.forceFailure)

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/signin", f.signIn)
	auth.POST("/signup", f.signUp)
	auth.POST("/reset-password", f.auth, f.resetPassword)

	api.GET("/users/me", f.auth, f.me)

	clubs := api.Group("/clubs")
	clubs.GET("", f.listClubs)
	clubs.POST("", f.auth, f.admin, f.createClub)
	clubs.GET("/my-clubs", f.auth, f.myClubs)
	clubs.GET("/:id", f.getClub)
	clubs.PUT("/:id", f.auth, f.admin, f.updateClub)
	clubs.DELETE("/:id", f.auth, f.admin, f.deleteClub)
	clubs.POST("/:id/join", f.auth, f.joinClub)
	clubs.DELETE("/:id/leave", f.auth, f.leaveClub)
	clubs.GET("/:id/is-member", f.auth, f.isMember)
	clubs.POST("/:id/trips", f.auth, f.admin, f.createTrip)

	trips := api.Group("/trips")
	trips.GET("", f.listTrips)
	trips.GET("/my-trips", f.auth, f.myTrips)
	trips.GET("/:id", f.getTrip)
	trips.PUT("/:id", f.auth, f.admin, f.updateTrip)
	trips.DELETE("/:id", f.auth, f.admin, f.deleteTrip)
	trips.POST("/:id/register", f.auth, f.registerTrip)
	trips.DELETE("/:id/unregister", f.auth, f.unregisterTrip)
	trips.GET("/:id/is-registered", f.auth, f.isRegistered)
	trips.GET("/:id/registration-count", f.registrationCount)

	reviews := api.Group("/reviews")
	reviews.GET("", f.listReviews)
	reviews.GET("/:id", f.getReview)
	reviews.POST("", f.auth, f.createReview)
	reviews.DELETE("/:id", f.auth, f.deleteReview)

	restaurants := api.Group("/restaurants")
	restaurants.GET("", f.listRestaurants(nil))
	restaurants.GET("/vegetarian", f.listRestaurants(func(_ *gin.Context, r model.Restaurant) bool { return r.IsVegetarianFriendly }))
	restaurants.GET("/delivery", f.listRestaurants(func(_ *gin.Context, r model.Restaurant) bool { return r.HasDelivery }))
	restaurants.GET("/search", f.listRestaurants(func(c *gin.Context, r model.Restaurant) bool {
		return strings.Contains(strings.ToLower(r.Name), strings.ToLower(c.Query("query")))
	}))
	restaurants.GET("/city/:city", f.listRestaurants(func(c *gin.Context, r model.Restaurant) bool {
		return strings.EqualFold(r.City, c.Param("city"))
	}))
	restaurants.GET("/cuisine/:cuisine", f.listRestaurants(func(c *gin.Context, r model.Restaurant) bool {
		return strings.EqualFold(r.Cuisine, c.Param("cuisine"))
	}))
	restaurants.GET("/:id", f.getRestaurant)

	bookings := api.Group("/restaurant-bookings", f.auth)
	bookings.POST("", f.createBooking)
	bookings.GET("/my-bookings", f.myBookings)
	bookings.GET("/:id", f.getBooking)
	bookings.PUT("/:id/cancel", f.cancelBooking)
	bookings.DELETE("/:id", f.deleteBooking)

	foods := api.Group("/foods")
	foods.GET("", f.listFoods(nil))
	foods.GET("/preferences", f.auth, f.foodPreferences)
	foods.POST("/:id/prefer", f.auth, f.prefer(true))
	foods.DELETE("/:id/prefer", f.auth, f.prefer(false))
	foods.GET("/category/:category", f.listFoods(func(c *gin.Context, fd model.Food) bool {
		return strings.EqualFold(fd.Category, c.Param("category"))
	}))
	foods.GET("/cuisine/:cuisine", f.listFoods(func(c *gin.Context, fd model.Food) bool {
		return strings.EqualFold(fd.Cuisine, c.Param("cuisine"))
	}))
	foods.GET("/search", f.listFoods(func(c *gin.Context, fd model.Food) bool {
		return strings.Contains(strings.ToLower(fd.Name), strings.ToLower(c.Query("name")))
	}))
	foods.GET("/vegetarian", f.listFoods(func(_ *gin.Context, fd model.Food) bool { return fd.IsVegetarian }))
	foods.GET("/vegan", f.listFoods(func(_ *gin.Context, fd model.Food) bool { return fd.IsVegan }))
	foods.GET("/categories", f.foodFacet(func(fd model.Food) string { return fd.Category }))
	foods.GET("/cuisines", f.foodFacet(func(fd model.Food) string { return fd.Cuisine }))

	adminFoods := api.Group("/admin/foods", f.auth, f.admin)
	adminFoods.GET("", f.listFoods(nil))
	adminFoods.GET("/:id", f.getFood)
	adminFoods.POST("", f.createFood)
	adminFoods.PUT("/:id", f.updateFood)
	adminFoods.DELETE("/:id", f.deleteFood)

	subs := api.Group("/subscriptions")
	subs.GET("/plans", f.listPlans)
	subs.GET("/plans/:id", f.getPlan)
	subs.GET("/my-subscription", f.auth, f.mySubscription)
	subs.POST("/subscribe", f.auth, f.subscribe)
	subs.POST("/cancel", f.auth, f.cancelSubscription)
	subs.GET("/feature-access/:feature", f.auth, f.featureAccess)
	subs.GET("/can-create-trip", f.auth, f.quota(true))
	subs.GET("/can-join-club", f.auth, f.quota(false))

	return r
}

func (f *FakeAPI) record(c *gin.Context) {
	var body []byte
	if c.Request.Body != nil {
		body, _ = io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
	}
	f.mu.Lock()
	f.requests = append(f.requests, RecordedRequest{
		Method:        c.Request.Method,
		Path:          c.Request.URL.Path,
		RawQuery:      c.Request.URL.RawQuery,
		Authorization: c.GetHeader("Authorization"),
		Body:          string(body),
	})
	f.mu.Unlock()
	c.Next()
}

func (f *FakeAPI) forceFailure(c *gin.Context) {
	f.mu.Lock()
	status, ok := f.Fail[c.Request.Method+" "+c.FullPath()]
	body := f.FailBody
	f.mu.Unlock()
	if ok {
		c.String(status, body)
		c.Abort()
		return
	}
	c.Next()
}

func (f *FakeAPI) auth(c *gin.Context) {
	f.mu.Lock()
	want := "Bearer " + f.Token
	f.mu.Unlock()
	if c.GetHeader("Authorization") != want {
		c.String(http.StatusUnauthorized, "Error: Unauthorized")
		c.Abort()
		return
	}
	c.Next()
}

func (f *FakeAPI) admin(c *gin.Context) {
	f.mu.Lock()
	isAdmin := false
	for _, r := range f.Roles {
		if r == model.RoleAdmin {
			isAdmin = true
		}
	}
	f.mu.Unlock()
	if !isAdmin {
		c.String(http.StatusForbidden, "Access denied. Admin role required.")
		c.Abort()
		return
	}
	c.Next()
}

func (f *FakeAPI) newID() int64 {
	f.nextID++
	return f.nextID
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// auth

func (f *FakeAPI) signIn(c *gin.Context) {
	var req dto.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Error: Bad request")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if pw, ok := f.Users[req.Username]; !ok || pw != req.Password {
		c.String(http.StatusUnauthorized, "Error: Bad credentials")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		f.TokenField: f.Token,
		"type":       "Bearer",
		"id":         TestUserID,
		"username":   req.Username,
		"email":      req.Username + "@example.com",
		"roles":      f.Roles,
	})
}

func (f *FakeAPI) signUp(c *gin.Context) {
	var req dto.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error: " + err.Error()})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.Users[req.Username]; exists {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error: Username is already taken!"})
		return
	}
	f.Users[req.Username] = req.Password
	c.JSON(http.StatusOK, gin.H{"message": "User registered successfully!"})
}

func (f *FakeAPI) resetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error: " + err.Error()})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Users[req.Username] != req.OldPassword {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error: Old password is incorrect"})
		return
	}
	f.Users[req.Username] = req.NewPassword
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}

func (f *FakeAPI) me(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.JSON(http.StatusOK, model.User{
		ID: TestUserID, Username: TestUsername, Email: TestUsername + "@example.com",
		Enabled: true, Roles: f.Roles,
	})
}

// clubs

func (f *FakeAPI) findClub(id int64) int {
	for i := range f.Clubs {
		if f.Clubs[i].ID == id {
			return i
		}
	}
	return -1
}

func (f *FakeAPI) listClubs(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.JSON(http.StatusOK, f.Clubs)
}

func (f *FakeAPI) getClub(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.findClub(id)
	if i < 0 {
		c.String(http.StatusNotFound, "Club not found with id: %d", id)
		return
	}
	c.JSON(http.StatusOK, f.Clubs[i])
}

func (f *FakeAPI) createClub(c *gin.Context) {
	var req dto.ClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	club := model.Club{ID: f.newID(), Name: req.Name, Brand: req.Brand, Description: req.Description, City: req.City}
	f.Clubs = append(f.Clubs, club)
	c.JSON(http.StatusCreated, club)
}

func (f *FakeAPI) updateClub(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.ClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.findClub(id)
	if i < 0 {
		c.String(http.StatusNotFound, "Club not found with id: %d", id)
		return
	}
	f.Clubs[i] = model.Club{ID: id, Name: req.Name, Brand: req.Brand, Description: req.Description, City: req.City}
	c.JSON(http.StatusOK, f.Clubs[i])
}

func (f *FakeAPI) deleteClub(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.findClub(id)
	if i < 0 {
		c.String(http.StatusNotFound, "Club not found with id: %d", id)
		return
	}
	f.Clubs = append(f.Clubs[:i], f.Clubs[i+1:]...)
	c.Status(http.StatusNoContent)
}

func (f *FakeAPI) joinClub(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findClub(id) < 0 {
		c.String(http.StatusBadRequest, "Failed to join club: Club not found")
		return
	}
	if f.Members[id] {
		c.String(http.StatusBadRequest, "Failed to join club: User is already a member of this club")
		return
	}
	f.Members[id] = true
	c.String(http.StatusOK, "Successfully joined the club!")
}

func (f *FakeAPI) leaveClub(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.Members[id] {
		c.String(http.StatusBadRequest, "Failed to leave club: User is not a member of this club")
		return
	}
	delete(f.Members, id)
	c.String(http.StatusOK, "Successfully left the club!")
}

func (f *FakeAPI) myClubs(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Club{}
	for _, club := range f.Clubs {
		if f.Members[club.ID] {
			out = append(out, club)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (f *FakeAPI) isMember(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	c.JSON(http.StatusOK, f.Members[id])
}

// trips

func (f *FakeAPI) findTrip(id int64) int {
	for i := range f.Trips {
		if f.Trips[i].ID == id {
			return i
		}
	}
	return -1
}

func tripFrom(id int64, req dto.TripRequest) model.Trip {
	return model.Trip{
		ID: id, Title: req.Title, Description: req.Description,
		StartLocation: req.StartLocation, EndLocation: req.EndLocation,
		StartTime: req.StartTime, TripType: req.TripType,
	}
}

func (f *FakeAPI) listTrips(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.JSON(http.StatusOK, f.Trips)
}

func (f *FakeAPI) getTrip(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.findTrip(id)
	if i < 0 {
		c.String(http.StatusNotFound, "Trip not found with id: %d", id)
		return
	}
	c.JSON(http.StatusOK, f.Trips[i])
}

func (f *FakeAPI) createTrip(c *gin.Context) {
	clubID, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	ci := f.findClub(clubID)
	if ci < 0 {
		c.Status(http.StatusBadRequest)
		return
	}
	trip := tripFrom(f.newID(), req)
	club := f.Clubs[ci]
	trip.OrganizingClub = &club
	f.Trips = append(f.Trips, trip)
	c.JSON(http.StatusCreated, trip)
}

func (f *FakeAPI) updateTrip(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.findTrip(id)
	if i < 0 {
		c.String(http.StatusNotFound, "Trip not found with id: %d", id)
		return
	}
	club := f.Trips[i].OrganizingClub
	f.Trips[i] = tripFrom(id, req)
	f.Trips[i].OrganizingClub = club
	c.JSON(http.StatusOK, f.Trips[i])
}

func (f *FakeAPI) deleteTrip(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.findTrip(id)
	if i < 0 {
		c.String(http.StatusNotFound, "Trip not found with id: %d", id)
		return
	}
	f.Trips = append(f.Trips[:i], f.Trips[i+1:]...)
	c.Status(http.StatusNoContent)
}

func (f *FakeAPI) registerTrip(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	plan := strings.ToUpper(c.DefaultQuery("plan", model.RegistrationNormal))
	if plan != model.RegistrationNormal && plan != model.RegistrationPremium {
		c.String(http.StatusBadRequest, "Failed to register for trip: No enum constant %s", plan)
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findTrip(id) < 0 {
		c.String(http.StatusBadRequest, "Failed to register for trip: Trip not found")
		return
	}
	if _, exists := f.Registrations[id]; exists {
		c.String(http.StatusBadRequest, "Failed to register for trip: User is already registered for this trip")
		return
	}
	f.Registrations[id] = plan
	c.String(http.StatusOK, "Successfully registered for the trip!")
}

func (f *FakeAPI) unregisterTrip(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.Registrations[id]; !exists {
		c.String(http.StatusBadRequest, "Failed to unregister from trip: User is not registered for this trip")
		return
	}
	delete(f.Registrations, id)
	c.String(http.StatusOK, "Successfully unregistered from the trip!")
}

func (f *FakeAPI) myTrips(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Trip{}
	for _, trip := range f.Trips {
		if _, ok := f.Registrations[trip.ID]; ok {
			out = append(out, trip)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (f *FakeAPI) isRegistered(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	_, registered := f.Registrations[id]
	c.JSON(http.StatusOK, registered)
}

func (f *FakeAPI) registrationCount(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	if _, registered := f.Registrations[id]; registered {
		count = 1
	}
	c.JSON(http.StatusOK, count)
}

// reviews

func (f *FakeAPI) listReviews(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.JSON(http.StatusOK, f.Reviews)
}

func (f *FakeAPI) getReview(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.Reviews {
		if r.ID == id {
			c.JSON(http.StatusOK, r)
			return
		}
	}
	c.Status(http.StatusNotFound)
}

func (f *FakeAPI) createReview(c *gin.Context) {
	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	review := model.Review{
		ID: f.newID(), Rating: req.Rating, Comment: req.Comment, TripID: req.TripID,
		Username: TestUsername, ReviewDate: model.NewLocalTime(time.Now().Truncate(time.Second)),
	}
	f.Reviews = append(f.Reviews, review)
	c.JSON(http.StatusOK, review)
}

func (f *FakeAPI) deleteReview(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.Reviews {
		if r.ID == id {
			f.Reviews = append(f.Reviews[:i], f.Reviews[i+1:]...)
			break
		}
	}
	c.Status(http.StatusNoContent)
}

// restaurants

func (f *FakeAPI) listRestaurants(match func(*gin.Context, model.Restaurant) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		f.mu.Lock()
		defer f.mu.Unlock()
		out := []model.Restaurant{}
		for _, r := range f.Restaurants {
			if match == nil || match(c, r) {
				out = append(out, r)
			}
		}
		c.JSON(http.StatusOK, out)
	}
}

func (f *FakeAPI) getRestaurant(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.Restaurants {
		if r.ID == id {
			c.JSON(http.StatusOK, r)
			return
		}
	}
	c.Status(http.StatusNotFound)
}

// bookings

func (f *FakeAPI) findBooking(id int64) int {
	for i := range f.Bookings {
		if f.Bookings[i].ID == id {
			return i
		}
	}
	return -1
}

func (f *FakeAPI) createBooking(c *gin.Context) {
	var req dto.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusInternalServerError, "Error creating booking: %s", err.Error())
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var restaurant *model.Restaurant
	for i := range f.Restaurants {
		if f.Restaurants[i].ID == req.RestaurantID {
			restaurant = &f.Restaurants[i]
		}
	}
	if restaurant == nil {
		c.String(http.StatusNotFound, "Restaurant not found")
		return
	}
	id := f.newID()
	booking := model.RestaurantBooking{
		ID: id, UserID: TestUserID, Username: TestUsername,
		RestaurantID: restaurant.ID, RestaurantName: restaurant.Name,
		RestaurantAddress: restaurant.Address, RestaurantCuisine: restaurant.Cuisine,
		ReservationDateTime: req.ReservationDateTime, NumberOfGuests: req.NumberOfGuests,
		SpecialRequests: req.SpecialRequests, Status: "CONFIRMED",
		ConfirmationCode: fmt.Sprintf("RC%06d", id),
		CreatedAt:        model.NewLocalTime(time.Now().Truncate(time.Second)),
	}
	f.Bookings = append(f.Bookings, booking)
	c.JSON(http.StatusOK, booking)
}

func (f *FakeAPI) myBookings(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.RestaurantBooking, len(f.Bookings))
	copy(out, f.Bookings)
	c.JSON(http.StatusOK, out)
}

func (f *FakeAPI) getBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.findBooking(id)
	if i < 0 {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, f.Bookings[i])
}

func (f *FakeAPI) cancelBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.findBooking(id)
	if i < 0 {
		c.Status(http.StatusNotFound)
		return
	}
	f.Bookings[i].Status = "CANCELLED"
	c.JSON(http.StatusOK, f.Bookings[i])
}

func (f *FakeAPI) deleteBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.findBooking(id)
	if i < 0 {
		c.Status(http.StatusNotFound)
		return
	}
	f.Bookings = append(f.Bookings[:i], f.Bookings[i+1:]...)
	c.Status(http.StatusOK)
}

// foods

func (f *FakeAPI) findFood(id int64) int {
	for i := range f.Foods {
		if f.Foods[i].ID == id {
			return i
		}
	}
	return -1
}

func (f *FakeAPI) listFoods(match func(*gin.Context, model.Food) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		f.mu.Lock()
		defer f.mu.Unlock()
		authed := c.GetHeader("Authorization") == "Bearer "+f.Token
		out := []model.Food{}
		for _, fd := range f.Foods {
			if match != nil && !match(c, fd) {
				continue
			}
			fd.IsSelected = authed && f.Preferences[fd.ID]
			out = append(out, fd)
		}
		c.JSON(http.StatusOK, out)
	}
}

func (f *FakeAPI) foodPreferences(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Food{}
	for _, fd := range f.Foods {
		if f.Preferences[fd.ID] {
			fd.IsSelected = true
			out = append(out, fd)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (f *FakeAPI) prefer(add bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.findFood(id) < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Food not found"})
			return
		}
		if add {
			f.Preferences[id] = true
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "Food preference added successfully"})
			return
		}
		delete(f.Preferences, id)
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Food preference removed successfully"})
	}
}

func (f *FakeAPI) foodFacet(key func(model.Food) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		f.mu.Lock()
		defer f.mu.Unlock()
		seen := map[string]bool{}
		out := []string{}
		for _, fd := range f.Foods {
			k := key(fd)
			if k != "" && !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
		c.JSON(http.StatusOK, out)
	}
}

func (f *FakeAPI) getFood(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.findFood(id)
	if i < 0 {
		c.String(http.StatusNotFound, "Food not found")
		return
	}
	c.JSON(http.StatusOK, f.Foods[i])
}

func foodFrom(id int64, req dto.FoodRequest) model.Food {
	return model.Food{
		ID: id, Name: req.Name, Description: req.Description, Category: req.Category,
		Cuisine: req.Cuisine, ImageURL: req.ImageURL,
		IsVegetarian: req.IsVegetarian, IsVegan: req.IsVegan, IsSpicy: req.IsSpicy,
	}
}

func (f *FakeAPI) createFood(c *gin.Context) {
	var req dto.FoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusInternalServerError, "Error creating food: %s", err.Error())
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	food := foodFrom(f.newID(), req)
	f.Foods = append(f.Foods, food)
	c.JSON(http.StatusOK, food)
}

func (f *FakeAPI) updateFood(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.FoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusInternalServerError, "Error updating food: %s", err.Error())
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.findFood(id)
	if i < 0 {
		c.String(http.StatusNotFound, "Food not found")
		return
	}
	f.Foods[i] = foodFrom(id, req)
	c.JSON(http.StatusOK, f.Foods[i])
}

func (f *FakeAPI) deleteFood(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.findFood(id)
	if i < 0 {
		c.String(http.StatusNotFound, "Food not found")
		return
	}
	f.Foods = append(f.Foods[:i], f.Foods[i+1:]...)
	c.String(http.StatusOK, "Food deleted successfully")
}

// subscriptions

func (f *FakeAPI) findPlan(id int64) *model.SubscriptionPlan {
	for i := range f.Plans {
		if f.Plans[i].ID == id {
			p := f.Plans[i]
			return &p
		}
	}
	return nil
}

func (f *FakeAPI) listPlans(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.JSON(http.StatusOK, f.Plans)
}

func (f *FakeAPI) getPlan(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	plan := f.findPlan(id)
	if plan == nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (f *FakeAPI) mySubscription(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Subscription == nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, f.Subscription)
}

func (f *FakeAPI) subscribe(c *gin.Context) {
	var req dto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid subscription request"})
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	plan := f.findPlan(req.PlanID)
	if plan == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Subscription plan not found"})
		return
	}
	now := time.Now().Truncate(time.Second)
	planID := plan.ID
	f.Subscription = &model.UserSubscription{
		ID: f.newID(), UserID: TestUserID, PlanID: &planID, Plan: plan,
		StartDate: model.NewLocalTime(now),
		EndDate:   model.NewLocalTime(now.AddDate(0, 0, plan.DurationDays)),
		Status:    model.SubscriptionActive,
		PaymentID: req.PaymentMethod,
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Successfully subscribed to " + plan.DisplayName,
		"subscription": f.Subscription,
	})
}

func (f *FakeAPI) cancelSubscription(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Subscription == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "No active subscription found"})
		return
	}
	f.Subscription.Status = model.SubscriptionCancelled
	if f.SilentCancel {
		c.Status(http.StatusOK)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Subscription cancelled successfully"})
}

func (f *FakeAPI) featureAccess(c *gin.Context) {
	feature := c.Param("feature")
	f.mu.Lock()
	defer f.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"hasAccess": f.Features[feature], "feature": feature})
}

func (f *FakeAPI) quota(trips bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := strconv.Atoi(c.Query("currentCount"))
		if err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		plan := f.findPlan(1)
		if f.Subscription != nil && f.Subscription.Plan != nil {
			plan = f.Subscription.Plan
		}
		max := 0
		if plan != nil {
			max = plan.MaxClubs
			if trips {
				max = plan.MaxTrips
			}
		}
		key := "canJoin"
		if trips {
			key = "canCreate"
		}
		c.JSON(http.StatusOK, gin.H{key: count < max, "currentCount": count, "maxAllowed": max})
	}
}
