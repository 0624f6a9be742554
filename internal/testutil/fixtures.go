package testutil

import (
	"time"

	"github.com/ridecircle/ridecircle_client/internal/model"
)

const (
	TestUsername = "testuser"
	TestPassword = "test123"
	TestToken    = "test-token"
	TestUserID   = int64(1)
)

// TestPlans 与服务端初始化的三档套餐一致
func TestPlans() []model.SubscriptionPlan {
	return []model.SubscriptionPlan{
		{
			ID: 1, Name: model.PlanFree, DisplayName: "Free Plan", Price: 0, DurationDays: 365,
			Description: "Perfect for getting started with basic ride planning",
			MaxTrips:    5, MaxClubs: 2, IsActive: true,
		},
		{
			ID: 2, Name: model.PlanPremium, DisplayName: "Premium Plan", Price: 9.99, DurationDays: 30,
			Description: "Ideal for regular riders with enhanced features",
			MaxTrips:    25, MaxClubs: 10, HasAnalytics: true, HasPrioritySupport: true, HasAdvancedFilters: true,
			IsActive: true, IsPopular: true, Badge: "Most Popular",
		},
		{
			ID: 3, Name: model.PlanEnterprise, DisplayName: "Enterprise Plan", Price: 19.99, DurationDays: 30,
			Description: "Complete solution for riding clubs and organizations",
			MaxTrips:    100, MaxClubs: 50, HasAnalytics: true, HasPrioritySupport: true, HasAdvancedFilters: true,
			IsActive: true,
		},
	}
}

// TestSubscription 构造一个订阅，planID 为 0 时只填内嵌 plan
func TestSubscription(planID int64, status string, end time.Time) *model.UserSubscription {
	sub := &model.UserSubscription{
		ID:        1,
		UserID:    TestUserID,
		StartDate: model.NewLocalTime(end.AddDate(0, 0, -30)),
		EndDate:   model.NewLocalTime(end),
		Status:    status,
	}
	if planID != 0 {
		id := planID
		sub.PlanID = &id
	}
	return sub
}

func TestClubs() []model.Club {
	return []model.Club{
		{ID: 1, Name: "Thunder Riders", Brand: "Harley-Davidson", Description: "Cruisers every Sunday", City: "Austin"},
		{ID: 2, Name: "Desert Eagles", Brand: "Ducati", Description: "Sport bikes and canyon runs", City: "Phoenix"},
	}
}

func TestTrips() []model.Trip {
	clubs := TestClubs()
	start := time.Date(2030, 5, 10, 8, 30, 0, 0, time.Local)
	return []model.Trip{
		{
			ID: 1, Title: "Hill Country Loop", Description: "Twisties and BBQ",
			StartLocation: "Austin", EndLocation: "Fredericksburg",
			StartTime: model.NewLocalTime(start), TripType: model.TripOneDayRide, OrganizingClub: &clubs[0],
		},
		{
			ID: 2, Title: "Route 66 Run", Description: "Three days on the mother road",
			StartLocation: "Flagstaff", EndLocation: "Kingman",
			StartTime: model.NewLocalTime(start.AddDate(0, 1, 0)), TripType: model.TripMultiDayTour, OrganizingClub: &clubs[1],
		},
	}
}

func TestReviews() []model.Review {
	return []model.Review{
		{ID: 1, Rating: 5, Comment: "Best ride of the year", Username: "rider1", TripID: 1},
	}
}

func TestRestaurants() []model.Restaurant {
	return []model.Restaurant{
		{ID: 1, Name: "Salt Lick", City: "Austin", Cuisine: "BBQ", Rating: 4.7, HasDelivery: false, AcceptsReservations: true},
		{ID: 2, Name: "Green Garden", City: "Phoenix", Cuisine: "Vegan", Rating: 4.4, IsVegetarianFriendly: true, IsVeganFriendly: true, HasDelivery: true, AcceptsReservations: true},
	}
}

func TestFoods() []model.Food {
	return []model.Food{
		{ID: 1, Name: "Brisket", Category: "Main", Cuisine: "BBQ"},
		{ID: 2, Name: "Falafel", Category: "Main", Cuisine: "Middle Eastern", IsVegetarian: true, IsVegan: true},
		{ID: 3, Name: "Pho", Category: "Soup", Cuisine: "Vietnamese", IsSpicy: true},
	}
}
