package handler

import (
	"log"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ridecircle/ridecircle_client/internal/api/middleware"
	"github.com/ridecircle/ridecircle_client/internal/model/dto"
	"github.com/ridecircle/ridecircle_client/internal/pkg/response"
	"github.com/ridecircle/ridecircle_client/internal/pkg/ws"
	"github.com/ridecircle/ridecircle_client/internal/service"
)

const (
	QuotaTrip = "trip"
	QuotaClub = "club"
)

type SubscriptionHandler struct {
	notifier
	subscriptionService *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService, hub *ws.Hub) *SubscriptionHandler {
	return &SubscriptionHandler{
		notifier:            notifier{hub: hub},
		subscriptionService: subscriptionService,
	}
}

// Plans 套餐页，套餐尚未加载时先初始化
// GET /subscription-plans
func (h *SubscriptionHandler) Plans(c *gin.Context) {
	if len(h.subscriptionService.Plans()) == 0 {
		if err := h.subscriptionService.Init(c.Request.Context()); err != nil {
			log.Printf("Init subscription data failed: %v", err)
		}
	}

	response.Success(c, dto.SubscriptionPlansView{
		Viewer:           middleware.GetViewer(c),
		SubscriptionView: h.subscriptionService.Snapshot(),
	})
}

// Plan GET /subscription-plans/:id
func (h *SubscriptionHandler) Plan(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	plan, err := h.subscriptionService.Plan(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, plan)
}

// Subscribe POST /actions/subscribe
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req dto.SubscribeRequest
	if !bindJSON(c, &req) {
		return
	}

	_, err := h.subscriptionService.SubscribeToPlan(c.Request.Context(), req.PlanID, req.PaymentMethod)
	if err != nil && !service.IsRefreshError(err) {
		h.hub.Toast(ws.ToastError, "Subscription failed: "+service.ErrorMessage(err))
		respondError(c, err)
		return
	}
	if err != nil {
		// 订阅已生效，只是刷新失败
		log.Printf("Refresh after subscribe failed: %v", err)
	}

	h.done(c, "Subscription successful! Welcome to your new plan.", h.subscriptionService.Snapshot())
}

// Cancel POST /actions/subscription/cancel
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	msg, err := h.subscriptionService.CancelSubscription(c.Request.Context())
	if err != nil && !service.IsRefreshError(err) {
		h.fail(c, err)
		return
	}
	if err != nil {
		log.Printf("Refresh after cancel failed: %v", err)
	}

	h.done(c, msg, h.subscriptionService.Snapshot())
}

// FeatureAccess 查询失败视为无权限
// GET /actions/features/:feature
func (h *SubscriptionHandler) FeatureAccess(c *gin.Context) {
	feature := c.Param("feature")
	response.Success(c, dto.FeatureAccessResponse{
		Feature:   feature,
		HasAccess: h.subscriptionService.HasFeatureAccess(c.Request.Context(), feature),
	})
}

// Quota 创建行程/加入俱乐部的额度
// GET /actions/quota/:kind?currentCount=
func (h *SubscriptionHandler) Quota(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("currentCount", "0"))
	if err != nil || count < 0 {
		response.ParamError(c, "currentCount must be a non-negative integer")
		return
	}

	ctx := c.Request.Context()
	view := dto.QuotaView{Kind: c.Param("kind"), CurrentCount: count}
	switch view.Kind {
	case QuotaTrip:
		view.Allowed = h.subscriptionService.CanCreateTrip(ctx, count)
	case QuotaClub:
		view.Allowed = h.subscriptionService.CanJoinClub(ctx, count)
	default:
		response.ParamError(c, "quota kind must be trip or club")
		return
	}

	response.Success(c, view)
}

// Feature 受订阅功能保护的页面，FeatureGate 已放行
// GET /features/:feature
func (h *SubscriptionHandler) Feature(c *gin.Context) {
	response.Success(c, dto.FeatureView{
		Viewer:    middleware.GetViewer(c),
		Feature:   c.Param("feature"),
		HasAccess: true,
		Plan:      h.subscriptionService.CurrentPlan(),
	})
}
