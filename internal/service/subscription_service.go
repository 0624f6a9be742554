package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ridecircle/ridecircle_client/internal/client"
	"github.com/ridecircle/ridecircle_client/internal/model"
	"github.com/ridecircle/ridecircle_client/internal/model/dto"
	"github.com/ridecircle/ridecircle_client/internal/session"
)

const (
	DefaultPaymentMethod = "CREDIT_CARD"

	MsgPlansLoadFailed        = "Failed to load subscription plans"
	MsgSubscriptionLoadFailed = "Failed to load subscription data"
	MsgSubscriptionCancelled  = "Subscription cancelled"
)

// RefreshError 写入已经成功，只是随后重新拉取订阅失败
type RefreshError struct {
	Err error
}

func (e *RefreshError) Error() string {
	return "refresh subscription: " + e.Err.Error()
}

func (e *RefreshError) Unwrap() error { return e.Err }

// IsRefreshError 判断错误是否只来自写入后的刷新
func IsRefreshError(err error) bool {
	var re *RefreshError
	return errors.As(err, &re)
}

// SubscriptionService 缓存套餐列表和当前订阅，派生出当前套餐、是否有效、剩余天数
type SubscriptionService struct {
	base
	paymentMethod string
	now           func() time.Time

	mu           sync.RWMutex
	plans        []model.SubscriptionPlan
	subscription *model.UserSubscription
	state        dto.SubscriptionState
	errMsg       string
}

func NewSubscriptionService(api *client.Client, sess *session.Session, paymentMethod string) *SubscriptionService {
	if paymentMethod == "" {
		paymentMethod = DefaultPaymentMethod
	}
	return &SubscriptionService{
		base:          base{api: api, sess: sess},
		paymentMethod: paymentMethod,
		now:           time.Now,
		state:         dto.SubscriptionLoading,
	}
}

// WithClock 替换时钟，测试用
func (s *SubscriptionService) WithClock(now func() time.Time) *SubscriptionService {
	s.now = now
	return s
}

// Init 并发拉取套餐和订阅，无论成败都进入 ready。每次重新加载都清掉上一次的错误
func (s *SubscriptionService) Init(ctx context.Context) error {
	s.mu.Lock()
	s.state = dto.SubscriptionLoading
	s.errMsg = ""
	s.mu.Unlock()

	var g errgroup.Group
	g.Go(func() error { return s.FetchAvailablePlans(ctx) })
	g.Go(func() error { return s.FetchUserSubscription(ctx) })
	err := g.Wait()

	s.mu.Lock()
	if err != nil && s.errMsg == "" {
		s.errMsg = MsgSubscriptionLoadFailed
	}
	s.state = dto.SubscriptionReady
	s.mu.Unlock()

	return err
}

func (s *SubscriptionService) FetchAvailablePlans(ctx context.Context) error {
	var plans []model.SubscriptionPlan
	if err := s.api.Get(ctx, "/subscriptions/plans", &plans); err != nil {
		log.Printf("Error fetching plans: %v", err)
		s.mu.Lock()
		s.errMsg = MsgPlansLoadFailed
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.plans = plans
	s.mu.Unlock()
	return nil
}

// FetchUserSubscription 404 表示没有订阅；未登录时直接跳过
func (s *SubscriptionService) FetchUserSubscription(ctx context.Context) error {
	if !s.sess.IsLoggedIn(ctx) {
		return nil
	}

	var sub model.UserSubscription
	err := s.api.Get(ctx, "/subscriptions/my-subscription", &sub)
	if client.IsNotFound(err) {
		s.setSubscription(nil)
		return nil
	}
	if err != nil {
		log.Printf("Error fetching user subscription: %v", err)
		return err
	}

	s.setSubscription(&sub)
	return nil
}

// Refresh 重新拉取当前订阅
func (s *SubscriptionService) Refresh(ctx context.Context) error {
	return s.FetchUserSubscription(ctx)
}

// ClearUserSubscription 登出后丢弃上一个用户的订阅
func (s *SubscriptionService) ClearUserSubscription() {
	s.setSubscription(nil)
}

// Plan 获取单个套餐
func (s *SubscriptionService) Plan(ctx context.Context, id int64) (*model.SubscriptionPlan, error) {
	var plan model.SubscriptionPlan
	if err := s.api.Get(ctx, fmt.Sprintf("/subscriptions/plans/%d", id), &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// SubscribeToPlan 写入成功后重新拉取订阅，写入失败直接返回错误
func (s *SubscriptionService) SubscribeToPlan(ctx context.Context, planID int64, paymentMethod string) (*dto.SubscribeResponse, error) {
	if err := s.requireLogin(ctx); err != nil {
		return nil, err
	}
	if paymentMethod == "" {
		paymentMethod = s.paymentMethod
	}

	s.setState(dto.SubscriptionLoading)
	defer s.setState(dto.SubscriptionReady)

	req := dto.SubscribeRequest{PlanID: planID, PaymentMethod: paymentMethod}
	var resp dto.SubscribeResponse
	if err := s.api.Post(ctx, "/subscriptions/subscribe", req, &resp); err != nil {
		log.Printf("Error subscribing to plan: %v", err)
		return nil, err
	}

	if err := s.FetchUserSubscription(ctx); err != nil {
		return &resp, &RefreshError{Err: err}
	}
	return &resp, nil
}

func (s *SubscriptionService) CancelSubscription(ctx context.Context) (string, error) {
	if err := s.requireLogin(ctx); err != nil {
		return "", err
	}

	s.setState(dto.SubscriptionLoading)
	defer s.setState(dto.SubscriptionReady)

	var raw string
	if err := s.api.Post(ctx, "/subscriptions/cancel", struct{}{}, &raw); err != nil {
		log.Printf("Error cancelling subscription: %v", err)
		return "", err
	}

	msg := parseMessage(raw)
	if msg == "" {
		msg = MsgSubscriptionCancelled
	}
	if err := s.FetchUserSubscription(ctx); err != nil {
		return msg, &RefreshError{Err: err}
	}
	return msg, nil
}

// HasFeatureAccess 任何失败都视为无权限
func (s *SubscriptionService) HasFeatureAccess(ctx context.Context, feature string) bool {
	if !s.sess.IsLoggedIn(ctx) {
		return false
	}
	var resp dto.FeatureAccessResponse
	if err := s.api.Get(ctx, "/subscriptions/feature-access/"+url.PathEscape(feature), &resp); err != nil {
		log.Printf("Error checking feature access: %v", err)
		return false
	}
	return resp.HasAccess
}

// CanCreateTrip 额度检查，失败视为不允许
func (s *SubscriptionService) CanCreateTrip(ctx context.Context, currentCount int) bool {
	resp, ok := s.quota(ctx, "/subscriptions/can-create-trip", currentCount)
	return ok && resp.CanCreate
}

func (s *SubscriptionService) CanJoinClub(ctx context.Context, currentCount int) bool {
	resp, ok := s.quota(ctx, "/subscriptions/can-join-club", currentCount)
	return ok && resp.CanJoin
}

func (s *SubscriptionService) quota(ctx context.Context, path string, currentCount int) (*dto.QuotaCheckResponse, bool) {
	if !s.sess.IsLoggedIn(ctx) {
		return nil, false
	}
	q := url.Values{"currentCount": {strconv.Itoa(currentCount)}}
	var resp dto.QuotaCheckResponse
	if err := s.api.Get(ctx, path+"?"+q.Encode(), &resp); err != nil {
		log.Printf("Error checking quota %s: %v", path, err)
		return nil, false
	}
	return &resp, true
}

func (s *SubscriptionService) Plans() []model.SubscriptionPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.SubscriptionPlan, len(s.plans))
	copy(out, s.plans)
	return out
}

func (s *SubscriptionService) UserSubscription() *model.UserSubscription {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.subscription == nil {
		return nil
	}
	sub := *s.subscription
	return &sub
}

func (s *SubscriptionService) State() dto.SubscriptionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *SubscriptionService) Loading() bool {
	return s.State() == dto.SubscriptionLoading
}

func (s *SubscriptionService) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// CurrentPlan 套餐列表或订阅缺失时为 nil
func (s *SubscriptionService) CurrentPlan() *model.SubscriptionPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.FindPlan(s.plans, s.subscription)
}

// IsSubscriptionActive 每次调用都按当前时间判断
func (s *SubscriptionService) IsSubscriptionActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.subscription.IsActiveAt(s.now())
}

func (s *SubscriptionService) DaysRemaining() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.subscription.DaysRemainingAt(s.now())
}

// Snapshot 一次性取出全部派生状态
func (s *SubscriptionService) Snapshot() dto.SubscriptionView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	plans := make([]model.SubscriptionPlan, len(s.plans))
	copy(plans, s.plans)

	var sub *model.UserSubscription
	if s.subscription != nil {
		cp := *s.subscription
		sub = &cp
	}

	return dto.SubscriptionView{
		State:         s.state,
		Error:         s.errMsg,
		Plans:         plans,
		Subscription:  sub,
		CurrentPlan:   model.FindPlan(s.plans, s.subscription),
		Active:        s.subscription.IsActiveAt(now),
		DaysRemaining: s.subscription.DaysRemainingAt(now),
	}
}

func (s *SubscriptionService) setState(state dto.SubscriptionState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *SubscriptionService) setSubscription(sub *model.UserSubscription) {
	s.mu.Lock()
	s.subscription = sub
	s.mu.Unlock()
}
