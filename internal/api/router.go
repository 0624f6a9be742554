package api

import (
	"github.com/gin-gonic/gin"

	"github.com/ridecircle/ridecircle_client/config"
	"github.com/ridecircle/ridecircle_client/internal/api/handler"
	"github.com/ridecircle/ridecircle_client/internal/api/middleware"
	"github.com/ridecircle/ridecircle_client/internal/session"
)

type Router struct {
	pageHandler         *handler.PageHandler
	authHandler         *handler.AuthHandler
	userHandler         *handler.UserHandler
	clubHandler         *handler.ClubHandler
	tripHandler         *handler.TripHandler
	reviewHandler       *handler.ReviewHandler
	restaurantHandler   *handler.RestaurantHandler
	foodHandler         *handler.FoodHandler
	subscriptionHandler *handler.SubscriptionHandler
	websocketHandler    *handler.WebSocketHandler
	sess                *session.Session
	features            middleware.FeatureChecker
	cfg                 *config.Config
}

func NewRouter(
	pageHandler *handler.PageHandler,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	clubHandler *handler.ClubHandler,
	tripHandler *handler.TripHandler,
	reviewHandler *handler.ReviewHandler,
	restaurantHandler *handler.RestaurantHandler,
	foodHandler *handler.FoodHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	websocketHandler *handler.WebSocketHandler,
	sess *session.Session,
	features middleware.FeatureChecker,
	cfg *config.Config,
) *Router {
	return &Router{
		pageHandler:         pageHandler,
		authHandler:         authHandler,
		userHandler:         userHandler,
		clubHandler:         clubHandler,
		tripHandler:         tripHandler,
		reviewHandler:       reviewHandler,
		restaurantHandler:   restaurantHandler,
		foodHandler:         foodHandler,
		subscriptionHandler: subscriptionHandler,
		websocketHandler:    websocketHandler,
		sess:                sess,
		features:            features,
		cfg:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))
	engine.Use(middleware.LoadViewer(r.sess))

	login := middleware.RequireLogin(r.sess)
	admin := middleware.RequireAdmin(r.sess)

	// WebSocket
	engine.GET("/ws", r.websocketHandler.Handle)

	// 页面
	engine.GET("/", r.pageHandler.Home)
	engine.GET("/login", r.authHandler.LoginPage)
	engine.GET("/register", r.authHandler.RegisterPage)
	engine.GET("/test-api", r.pageHandler.TestAPI)
	engine.GET("/profile", login, r.userHandler.Profile)

	clubs := engine.Group("/clubs")
	{
		clubs.GET("", r.clubHandler.List)
		clubs.GET("/add", admin, r.clubHandler.AddForm)
		clubs.GET("/:id", r.clubHandler.Detail)
		clubs.GET("/:id/edit", admin, r.clubHandler.EditForm)
		clubs.GET("/:id/trips/add", admin, r.tripHandler.AddForm)
	}

	trips := engine.Group("/trips")
	{
		trips.GET("", r.tripHandler.List)
		trips.GET("/add", admin, r.tripHandler.AddForm)
		trips.GET("/:id", r.tripHandler.Detail)
		trips.GET("/:id/edit", admin, r.tripHandler.EditForm)
	}

	engine.GET("/reviews", r.reviewHandler.List)
	engine.GET("/reviews/:id", r.reviewHandler.Detail)

	engine.GET("/restaurants", r.restaurantHandler.List)
	engine.GET("/restaurants/:id", r.restaurantHandler.Detail)
	engine.GET("/bookings/:id", login, r.restaurantHandler.Booking)

	engine.GET("/food-preferences", r.foodHandler.Preferences)
	engine.GET("/admin/foods", admin, r.foodHandler.AdminList)

	engine.GET("/subscription-plans", r.subscriptionHandler.Plans)
	engine.GET("/subscription-plans/:id", r.subscriptionHandler.Plan)
	engine.GET("/features/:feature", login, middleware.FeatureGate(r.features), r.subscriptionHandler.Feature)

	// 操作
	actions := engine.Group("/actions")
	{
		actions.POST("/signin", r.authHandler.SignIn)
		actions.POST("/signup", r.authHandler.SignUp)
		actions.POST("/logout", r.authHandler.Logout)
		actions.POST("/reset-password", login, r.authHandler.ResetPassword)

		actions.POST("/clubs", admin, r.clubHandler.Create)
		actions.PUT("/clubs/:id", admin, r.clubHandler.Update)
		actions.DELETE("/clubs/:id", admin, r.clubHandler.Delete)
		actions.POST("/clubs/:id/join", login, r.clubHandler.Join)
		actions.POST("/clubs/:id/leave", login, r.clubHandler.Leave)

		actions.POST("/trips", admin, r.tripHandler.Create)
		actions.PUT("/trips/:id", admin, r.tripHandler.Update)
		actions.DELETE("/trips/:id", admin, r.tripHandler.Delete)
		actions.POST("/trips/:id/register", login, r.tripHandler.Register)
		actions.POST("/trips/:id/unregister", login, r.tripHandler.Unregister)

		actions.POST("/reviews", login, r.reviewHandler.Create)
		actions.DELETE("/reviews/:id", login, r.reviewHandler.Delete)

		actions.POST("/bookings", login, r.restaurantHandler.Book)
		actions.POST("/bookings/:id/cancel", login, r.restaurantHandler.CancelBooking)
		actions.DELETE("/bookings/:id", login, r.restaurantHandler.DeleteBooking)

		actions.POST("/foods/:id/prefer", login, r.foodHandler.Prefer)
		actions.DELETE("/foods/:id/prefer", login, r.foodHandler.Unprefer)

		actions.POST("/admin/foods", admin, r.foodHandler.AdminCreate)
		actions.PUT("/admin/foods/:id", admin, r.foodHandler.AdminUpdate)
		actions.DELETE("/admin/foods/:id", admin, r.foodHandler.AdminDelete)

		actions.POST("/subscribe", login, r.subscriptionHandler.Subscribe)
		actions.POST("/subscription/cancel", login, r.subscriptionHandler.Cancel)
		actions.GET("/features/:feature", r.subscriptionHandler.FeatureAccess)
		actions.GET("/quota/:kind", r.subscriptionHandler.Quota)
	}

	engine.NoRoute(r.pageHandler.NotFound)

	return engine
}
