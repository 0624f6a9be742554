package dto

import "github.com/ridecircle/ridecircle_client/internal/model"

// SubscriptionState 订阅数据的加载状态
type SubscriptionState string

const (
	SubscriptionLoading SubscriptionState = "loading"
	SubscriptionReady   SubscriptionState = "ready"
)

// SubscriptionView 订阅派生状态快照
type SubscriptionView struct {
	State         SubscriptionState        `json:"state"`
	Error         string                   `json:"error,omitempty"`
	Plans         []model.SubscriptionPlan `json:"plans"`
	Subscription  *model.UserSubscription  `json:"subscription"`
	CurrentPlan   *model.SubscriptionPlan  `json:"currentPlan"`
	Active        bool                     `json:"active"`
	DaysRemaining int                      `json:"daysRemaining"`
}

// Viewer 当前会话在页面上的身份
type Viewer struct {
	LoggedIn bool   `json:"loggedIn"`
	IsAdmin  bool   `json:"isAdmin"`
	Username string `json:"username,omitempty"`
}

type HomeView struct {
	Viewer  Viewer         `json:"viewer"`
	Clubs   []model.Club   `json:"clubs"`
	Trips   []model.Trip   `json:"trips"`
	Reviews []model.Review `json:"reviews"`
}

type ClubsView struct {
	Viewer Viewer       `json:"viewer"`
	Clubs  []model.Club `json:"clubs"`
}

type ClubDetailView struct {
	Viewer   Viewer      `json:"viewer"`
	Club     *model.Club `json:"club"`
	IsMember bool        `json:"isMember"`
}

type ClubFormView struct {
	Viewer Viewer      `json:"viewer"`
	ClubID int64       `json:"clubId,omitempty"`
	Form   ClubRequest `json:"form"`
}

type TripsView struct {
	Viewer Viewer       `json:"viewer"`
	Trips  []model.Trip `json:"trips"`
}

type TripDetailView struct {
	Viewer            Viewer      `json:"viewer"`
	Trip              *model.Trip `json:"trip"`
	IsRegistered      bool        `json:"isRegistered"`
	RegistrationCount int64       `json:"registrationCount"`
}

type TripFormView struct {
	Viewer    Viewer       `json:"viewer"`
	TripID    int64        `json:"tripId,omitempty"`
	ClubID    int64        `json:"clubId,omitempty"`
	Clubs     []model.Club `json:"clubs,omitempty"`
	TripTypes []string     `json:"tripTypes"`
	Form      TripRequest  `json:"form"`
}

type ReviewsView struct {
	Viewer  Viewer         `json:"viewer"`
	Reviews []model.Review `json:"reviews"`
	Trips   []model.Trip   `json:"trips"`
}

type ProfileView struct {
	Viewer          Viewer                    `json:"viewer"`
	User            *model.User               `json:"user"`
	Clubs           []model.Club              `json:"clubs"`
	Trips           []model.Trip              `json:"trips"`
	FoodPreferences []model.Food              `json:"foodPreferences"`
	Bookings        []model.RestaurantBooking `json:"bookings"`
	Subscription    SubscriptionView          `json:"subscription"`
}

type FoodPreferencesView struct {
	Viewer     Viewer       `json:"viewer"`
	Foods      []model.Food `json:"foods"`
	Categories []string     `json:"categories"`
	Cuisines   []string     `json:"cuisines"`
}

type RestaurantsView struct {
	Viewer      Viewer             `json:"viewer"`
	Restaurants []model.Restaurant `json:"restaurants"`
}

type SubscriptionPlansView struct {
	Viewer Viewer `json:"viewer"`
	SubscriptionView
}

// APIProbe 接口调试页的一次探测结果
type APIProbe struct {
	Endpoint string      `json:"endpoint"`
	OK       bool        `json:"ok"`
	Data     interface{} `json:"data,omitempty"`
	Error    string      `json:"error,omitempty"`
}

type AdminFoodsView struct {
	Viewer  Viewer       `json:"viewer"`
	Foods   []model.Food `json:"foods"`
	Editing *model.Food  `json:"editing,omitempty"`
}

// FeatureView 订阅功能门控通过后的页面数据
type FeatureView struct {
	Viewer    Viewer                  `json:"viewer"`
	Feature   string                  `json:"feature"`
	HasAccess bool                    `json:"hasAccess"`
	Plan      *model.SubscriptionPlan `json:"plan"`
}

type QuotaView struct {
	Kind         string `json:"kind"` // trip, club
	CurrentCount int    `json:"currentCount"`
	Allowed      bool   `json:"allowed"`
}

type LoginView struct {
	Viewer Viewer `json:"viewer"`
}

type RegisterView struct {
	Viewer Viewer   `json:"viewer"`
	Roles  []string `json:"roles"`
}

// Toast 页面提示消息
type Toast struct {
	Kind string `json:"kind"` // success, error, info
	Text string `json:"text"`
}
