package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/ridecircle/ridecircle_client/internal/model/dto"
)

const (
	ToastSuccess = "success"
	ToastError   = "error"
	ToastInfo    = "info"

	TypeToast = "toast"
)

// Hub 向所有打开的页面广播提示消息（同一会话可能开了多个标签页）
type Hub struct {
	clients map[*Client]struct{}
	relay   Relay
	mu      sync.RWMutex
}

// Relay 把提示转发给共享会话的所有网关实例，各实例收到后调用 Deliver
type Relay interface {
	PublishToast(ctx context.Context, toast dto.Toast) error
}

type Client struct {
	Conn *websocket.Conn
	mu   sync.Mutex // 写锁，防止并发写入
}

type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
	}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = struct{}{}
	log.Printf("Toast client connected, total: %d", len(h.clients))
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	log.Printf("Toast client disconnected, total: %d", len(h.clients))
}

// Broadcast 向所有连接发送消息，单个连接写失败只记录日志
func (h *Hub) Broadcast(msg *Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	h.mu.RLock()
	// 复制一份引用，避免长时间持锁
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.mu.Lock()
		err := c.Conn.WriteMessage(websocket.TextMessage, data)
		c.mu.Unlock()
		if err != nil {
			log.Printf("Broadcast write error: %v", err)
		}
	}
	return nil
}

// SetRelay 设置或清除（nil）转发
func (h *Hub) SetRelay(relay Relay) {
	h.mu.Lock()
	h.relay = relay
	h.mu.Unlock()
}

// Toast 广播一条 success/error/info 提示，转发失败时退回本地广播
func (h *Hub) Toast(kind, text string) {
	if h == nil || text == "" {
		return
	}
	toast := dto.Toast{Kind: kind, Text: text}

	h.mu.RLock()
	relay := h.relay
	h.mu.RUnlock()

	if relay != nil {
		err := relay.PublishToast(context.Background(), toast)
		if err == nil {
			return
		}
		log.Printf("Toast relay failed: %v", err)
	}
	h.Deliver(toast)
}

// Deliver 只发给本实例的连接
func (h *Hub) Deliver(toast dto.Toast) {
	if err := h.Broadcast(&Message{Type: TypeToast, Data: toast}); err != nil {
		log.Printf("Toast broadcast failed: %v", err)
	}
}

// ConnectionCount 获取在线连接数
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
