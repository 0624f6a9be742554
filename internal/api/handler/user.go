package handler

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/ridecircle/ridecircle_client/internal/api/middleware"
	"github.com/ridecircle/ridecircle_client/internal/model/dto"
	"github.com/ridecircle/ridecircle_client/internal/pkg/response"
	"github.com/ridecircle/ridecircle_client/internal/service"
)

type UserHandler struct {
	userService         *service.UserService
	clubService         *service.ClubService
	tripService         *service.TripService
	foodService         *service.FoodService
	bookingService      *service.BookingService
	subscriptionService *service.SubscriptionService
}

func NewUserHandler(
	userService *service.UserService,
	clubService *service.ClubService,
	tripService *service.TripService,
	foodService *service.FoodService,
	bookingService *service.BookingService,
	subscriptionService *service.SubscriptionService,
) *UserHandler {
	return &UserHandler{
		userService:         userService,
		clubService:         clubService,
		tripService:         tripService,
		foodService:         foodService,
		bookingService:      bookingService,
		subscriptionService: subscriptionService,
	}
}

// Profile 个人主页：用户信息、我的俱乐部/行程、口味偏好、订餐和订阅
// GET /profile
func (h *UserHandler) Profile(c *gin.Context) {
	view := dto.ProfileView{Viewer: middleware.GetViewer(c)}

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		view.User, err = h.userService.CurrentUser(ctx)
		return err
	})
	g.Go(func() (err error) {
		view.Clubs, err = h.clubService.MyClubs(ctx)
		return err
	})
	g.Go(func() (err error) {
		view.Trips, err = h.tripService.MyTrips(ctx)
		return err
	})
	g.Go(func() (err error) {
		view.FoodPreferences, err = h.foodService.Preferences(ctx)
		return err
	})
	g.Go(func() (err error) {
		view.Bookings, err = h.bookingService.MyBookings(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		respondError(c, err)
		return
	}

	view.Subscription = h.subscriptionService.Snapshot()
	response.Success(c, view)
}
