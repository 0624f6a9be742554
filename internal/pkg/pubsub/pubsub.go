package pubsub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/ridecircle/ridecircle_client/internal/model/dto"
)

const (
	ChannelToasts = "toasts"

	TypeToast = "toast"
)

// ErrNoSubscribers 频道上没有任何订阅者，消息不会被送达
var ErrNoSubscribers = errors.New("no subscribers on toast channel")

// ToastMessage 在共享同一 Redis 会话的网关实例之间转发的提示
type ToastMessage struct {
	Type string `json:"type"`
	Kind string `json:"kind"`
	Text string `json:"text"`
}

func (m *ToastMessage) Toast() dto.Toast {
	return dto.Toast{Kind: m.Kind, Text: m.Text}
}

// Publisher Redis 发布者
type Publisher struct {
	client  *redis.Client
	channel string
}

// NewPublisher 频道名带会话键前缀，不同部署互不干扰
func NewPublisher(client *redis.Client, prefix string) *Publisher {
	return &Publisher{client: client, channel: prefix + ChannelToasts}
}

// PublishToast 发布提示消息，没有订阅者收到时返回 ErrNoSubscribers
func (p *Publisher) PublishToast(ctx context.Context, toast dto.Toast) error {
	data, err := json.Marshal(&ToastMessage{Type: TypeToast, Kind: toast.Kind, Text: toast.Text})
	if err != nil {
		return fmt.Errorf("failed to marshal toast message: %w", err)
	}

	n, err := p.client.Publish(ctx, p.channel, data).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoSubscribers
	}
	return nil
}

// Subscriber Redis 订阅者
type Subscriber struct {
	client     *redis.Client
	channel    string
	subscribed func()
}

func NewSubscriber(client *redis.Client, prefix string) *Subscriber {
	return &Subscriber{client: client, channel: prefix + ChannelToasts}
}

// OnSubscribed 订阅确认后回调一次
func (s *Subscriber) OnSubscribed(fn func()) *Subscriber {
	s.subscribed = fn
	return s
}

// Subscribe 阻塞直到 ctx 取消或连接关闭
func (s *Subscriber) Subscribe(ctx context.Context, handler func(*ToastMessage)) error {
	ps := s.client.Subscribe(ctx, s.channel)
	defer ps.Close()

	// 等待订阅确认
	if _, err := ps.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", s.channel, err)
	}
	if s.subscribed != nil {
		s.subscribed()
	}

	ch := ps.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var toast ToastMessage
			if err := json.Unmarshal([]byte(msg.Payload), &toast); err != nil {
				continue // 忽略解析错误
			}
			if toast.Type != TypeToast || toast.Text == "" {
				continue
			}

			handler(&toast)
		}
	}
}
