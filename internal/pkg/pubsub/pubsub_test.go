package pubsub

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridecircle/ridecircle_client/internal/model/dto"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

// subscribe 在后台订阅，返回收到的消息和 Subscribe 的返回值
func subscribe(t *testing.T, client *redis.Client, prefix string) (<-chan *ToastMessage, <-chan error, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	received := make(chan *ToastMessage, 16)
	done := make(chan error, 1)
	go func() {
		done <- NewSubscriber(client, prefix).Subscribe(ctx, func(msg *ToastMessage) {
			select {
			case received <- msg:
			default:
			}
		})
	}()
	return received, done, cancel
}

func waitSubscribed(t *testing.T, client *redis.Client, channel string) {
	t.Helper()
	require.Eventually(t, func() bool {
		n, err := client.PubSubNumSub(context.Background(), channel).Result()
		return err == nil && n[channel] > 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestPublisherSubscriber_RoundTrip(t *testing.T) {
	client := setupRedis(t)
	received, _, _ := subscribe(t, client, "ridecircle:")
	waitSubscribed(t, client, "ridecircle:"+ChannelToasts)

	err := NewPublisher(client, "ridecircle:").PublishToast(context.Background(), dto.Toast{Kind: "success", Text: "Club created successfully!"})
	require.NoError(t, err)

	select {
	case msg := <-received:
		assert.Equal(t, TypeToast, msg.Type)
		assert.Equal(t, dto.Toast{Kind: "success", Text: "Club created successfully!"}, msg.Toast())
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for toast")
	}
}

func TestSubscriber_IgnoresForeignPayloads(t *testing.T) {
	client := setupRedis(t)
	received, _, _ := subscribe(t, client, "p:")
	channel := "p:" + ChannelToasts
	waitSubscribed(t, client, channel)

	ctx := context.Background()
	require.NoError(t, client.Publish(ctx, channel, "not json").Err())
	require.NoError(t, client.Publish(ctx, channel, `{"type":"job_progress","text":"x"}`).Err())
	require.NoError(t, client.Publish(ctx, channel, `{"type":"toast","kind":"info","text":""}`).Err())
	require.NoError(t, NewPublisher(client, "p:").PublishToast(ctx, dto.Toast{Kind: "info", Text: "last"}))

	select {
	case msg := <-received:
		assert.Equal(t, "last", msg.Text)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for toast")
	}
}

func TestPublisher_PrefixSeparatesDeployments(t *testing.T) {
	client := setupRedis(t)
	received, _, _ := subscribe(t, client, "a:")
	waitSubscribed(t, client, "a:"+ChannelToasts)

	err := NewPublisher(client, "b:").PublishToast(context.Background(), dto.Toast{Kind: "info", Text: "other"})
	assert.ErrorIs(t, err, ErrNoSubscribers)
	require.NoError(t, NewPublisher(client, "a:").PublishToast(context.Background(), dto.Toast{Kind: "info", Text: "mine"}))

	select {
	case msg := <-received:
		assert.Equal(t, "mine", msg.Text)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for toast")
	}
}

func TestSubscriber_StopsOnCancel(t *testing.T) {
	client := setupRedis(t)
	_, done, cancel := subscribe(t, client, "")
	waitSubscribed(t, client, ChannelToasts)

	cancel()

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber did not stop")
	}
}

func TestPublisher_NoSubscribers(t *testing.T) {
	client := setupRedis(t)

	err := NewPublisher(client, "ridecircle:").PublishToast(context.Background(), dto.Toast{Kind: "info", Text: "nobody"})
	assert.ErrorIs(t, err, ErrNoSubscribers)
}

func TestSubscriber_OnSubscribed(t *testing.T) {
	client := setupRedis(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ready := make(chan struct{})
	sub := NewSubscriber(client, "r:").OnSubscribed(func() { close(ready) })
	go func() { _ = sub.Subscribe(ctx, func(*ToastMessage) {}) }()

	select {
	case <-ready:
	case <-time.After(2 * time.Second):
		t.Fatal("subscription never confirmed")
	}

	// 回调时订阅已生效，发布能被收到
	assert.NoError(t, NewPublisher(client, "r:").PublishToast(ctx, dto.Toast{Kind: "info", Text: "ready"}))
}
