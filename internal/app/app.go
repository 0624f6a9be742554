package app

import (
	"io"

	"github.com/ridecircle/ridecircle_client/config"
	"github.com/ridecircle/ridecircle_client/internal/client"
	"github.com/ridecircle/ridecircle_client/internal/service"
	"github.com/ridecircle/ridecircle_client/internal/session"
)

// App 一个会话及其上的全部服务，网关、命令行和冒烟脚本共用
type App struct {
	Config  *config.Config
	Session *session.Session
	API     *client.Client

	Auth          *service.AuthService
	Users         *service.UserService
	Clubs         *service.ClubService
	Trips         *service.TripService
	Reviews       *service.ReviewService
	Restaurants   *service.RestaurantService
	Bookings      *service.BookingService
	Foods         *service.FoodService
	Subscriptions *service.SubscriptionService
}

// New 在给定的会话存储上组装服务
func New(cfg *config.Config, store session.Store) *App {
	sess := session.New(store)
	api := client.New(cfg.API.BaseURL, sess, client.WithTimeout(cfg.API.Timeout))

	return &App{
		Config:        cfg,
		Session:       sess,
		API:           api,
		Auth:          service.NewAuthService(api, sess),
		Users:         service.NewUserService(api, sess),
		Clubs:         service.NewClubService(api, sess),
		Trips:         service.NewTripService(api, sess),
		Reviews:       service.NewReviewService(api, sess),
		Restaurants:   service.NewRestaurantService(api, sess),
		Bookings:      service.NewBookingService(api, sess),
		Foods:         service.NewFoodService(api, sess),
		Subscriptions: service.NewSubscriptionService(api, sess, cfg.Subscription.DefaultPaymentMethod),
	}
}

// Open 按配置打开会话后端，调用方负责关闭返回的 Closer
func Open(cfg *config.Config) (*App, io.Closer, error) {
	store, closer, err := session.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	return New(cfg, store), closer, nil
}
