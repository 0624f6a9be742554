package dto

import "github.com/ridecircle/ridecircle_client/internal/model"

// SubscribeRequest 订阅请求
type SubscribeRequest struct {
	PlanID        int64  `json:"planId" binding:"required"`
	PaymentMethod string `json:"paymentMethod"`
}

// SubscribeResponse 订阅结果
type SubscribeResponse struct {
	Success      bool                    `json:"success"`
	Message      string                  `json:"message"`
	Subscription *model.UserSubscription `json:"subscription,omitempty"`
}

// FeatureAccessResponse 功能权限查询结果
type FeatureAccessResponse struct {
	HasAccess bool   `json:"hasAccess"`
	Feature   string `json:"feature,omitempty"`
}

// QuotaCheckResponse 创建行程/加入俱乐部的额度检查结果
type QuotaCheckResponse struct {
	CanCreate    bool `json:"canCreate"`
	CanJoin      bool `json:"canJoin"`
	CurrentCount int  `json:"currentCount"`
	MaxAllowed   int  `json:"maxAllowed"`
}
