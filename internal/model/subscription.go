package model

import (
	"math"
	"time"
)

const (
	PlanFree       = "FREE"
	PlanPremium    = "PREMIUM"
	PlanEnterprise = "ENTERPRISE"
)

const (
	SubscriptionActive    = "ACTIVE"
	SubscriptionCancelled = "CANCELLED"
	SubscriptionExpired   = "EXPIRED"
	SubscriptionPending   = "PENDING"
)

type SubscriptionPlan struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"` // FREE, PREMIUM, ENTERPRISE
	DisplayName        string   `json:"displayName"`
	Price              float64  `json:"price"`
	DurationDays       int      `json:"durationDays"`
	Description        string   `json:"description"`
	Features           []string `json:"features,omitempty"`
	MaxTrips           int      `json:"maxTrips"`
	MaxClubs           int      `json:"maxClubs"`
	HasAnalytics       bool     `json:"hasAnalytics"`
	HasPrioritySupport bool     `json:"hasPrioritySupport"`
	HasAdvancedFilters bool     `json:"hasAdvancedFilters"`
	IsActive           bool     `json:"isActive"`
	IsPopular          bool     `json:"isPopular"`
	Badge              string   `json:"badge,omitempty"`
}

type UserSubscription struct {
	ID            int64             `json:"id"`
	UserID        int64             `json:"userId"`
	PlanID        *int64            `json:"planId,omitempty"`
	Plan          *SubscriptionPlan `json:"plan,omitempty"`
	StartDate     LocalTime         `json:"startDate"`
	EndDate       LocalTime         `json:"endDate"`
	Status        string            `json:"status"` // ACTIVE, CANCELLED, EXPIRED, PENDING
	PaymentID     string            `json:"paymentId,omitempty"`
	TransactionID string            `json:"transactionId,omitempty"`
}

// EffectivePlanID 返回订阅对应的套餐 ID；planId 缺失时回退到内嵌的 plan
func (s *UserSubscription) EffectivePlanID() (int64, bool) {
	if s == nil {
		return 0, false
	}
	if s.PlanID != nil {
		return *s.PlanID, true
	}
	if s.Plan != nil {
		return s.Plan.ID, true
	}
	return 0, false
}

// IsActiveAt 状态为 ACTIVE 且结束时间严格晚于 now
func (s *UserSubscription) IsActiveAt(now time.Time) bool {
	if s == nil || s.Status != SubscriptionActive {
		return false
	}
	return s.EndDate.After(now)
}

// DaysRemainingAt 剩余天数向上取整，未生效时为 0
func (s *UserSubscription) DaysRemainingAt(now time.Time) int {
	if !s.IsActiveAt(now) {
		return 0
	}
	remaining := s.EndDate.Sub(now)
	return int(math.Ceil(float64(remaining) / float64(24*time.Hour)))
}

// FindPlan 在套餐列表中线性查找订阅对应的套餐，取第一个匹配
func FindPlan(plans []SubscriptionPlan, sub *UserSubscription) *SubscriptionPlan {
	if sub == nil || len(plans) == 0 {
		return nil
	}
	planID, ok := sub.EffectivePlanID()
	if !ok {
		return nil
	}
	for i := range plans {
		if plans[i].ID == planID {
			plan := plans[i]
			return &plan
		}
	}
	return nil
}
