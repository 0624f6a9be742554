package main

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/ridecircle/ridecircle_client/config"
	"github.com/ridecircle/ridecircle_client/internal/database"
	"github.com/ridecircle/ridecircle_client/internal/pkg/pubsub"
	"github.com/ridecircle/ridecircle_client/internal/pkg/ws"
)

// startToastRelay 会话存放在 Redis 时，共享会话的网关实例互相转发提示
func startToastRelay(ctx context.Context, cfg *config.Config, hub *ws.Hub) (io.Closer, error) {
	if cfg.Session.Backend != config.BackendRedis {
		return nil, nil
	}

	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		return nil, err
	}

	// 本实例订阅确认后才走转发，订阅退出后回到本地广播
	publisher := pubsub.NewPublisher(rdb, cfg.Session.KeyPrefix)
	subscriber := pubsub.NewSubscriber(rdb, cfg.Session.KeyPrefix).
		OnSubscribed(func() { hub.SetRelay(publisher) })

	go func() {
		err := subscriber.Subscribe(ctx, func(msg *pubsub.ToastMessage) {
			hub.Deliver(msg.Toast())
		})
		hub.SetRelay(nil)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Toast relay stopped: %v", err)
		}
	}()

	log.Println("Toast relay started")
	return rdb, nil
}
