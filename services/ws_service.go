package services

import (
	"net/http"
	"sync"
	"time"

	"lighttower-monitor-service/config"

	"github.com/gorilla/websocket"
)

// DeviceUpdateEvent 设备状态更新事件，推送给所有WebSocket客户端
type DeviceUpdateEvent struct {
	Type       string  `json:"type"`
	DeviceID   int     `json:"device_id"`
	DeviceAddr string  `json:"device_addr"`
	DeviceName string  `json:"device_name"`
	Location   string  `json:"location"`
	Battery    float64 `json:"battery"`
	Red        bool    `json:"red"`
	Yellow     bool    `json:"yellow"`
	Green      bool    `json:"green"`
	StatusCode string  `json:"status_code"`
	StatusText string  `json:"status_text"`
	IsActive   bool    `json:"is_active"`
	Timestamp  string  `json:"timestamp"`
}

// InterfaceWebSocketService 定义WebSocket推送服务接口
type InterfaceWebSocketService interface {
	HandleConnection(w http.ResponseWriter, r *http.Request) error
	Broadcast(event DeviceUpdateEvent)
	ClientCount() int
}

// WebSocketService 管理WebSocket连接并向所有客户端推送设备更新
type WebSocketService struct {
	Config   *config.Config
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*wsClient]struct{}
}

// wsClient 单个客户端连接，写操作经由send通道串行化
type wsClient struct {
	conn *websocket.Conn
	send chan interface{}
}

const (
	wsWriteWait      = 10 * time.Second
	wsSendBufferSize = 16
)

// NewWebSocketService 创建WebSocket推送服务
func NewWebSocketService(cfg *config.Config) InterfaceWebSocketService {
	return &WebSocketService{
		Config: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// 前端与后端不同源部署，放开Origin检查
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*wsClient]struct{}),
	}
}

// HandleConnection 升级HTTP连接并维持读写循环，直到客户端断开
func (s *WebSocketService) HandleConnection(w http.ResponseWriter, r *http.Request) error {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &wsClient{
		conn: conn,
		send: make(chan interface{}, wsSendBufferSize),
	}

	s.mu.Lock()
	s.clients[client] = struct{}{}
	count := len(s.clients)
	s.mu.Unlock()
	config.Info("WebSocket接続: %d台のクライアント", count)

	go s.writeLoop(client)
	s.readLoop(client)
	return nil
}

// readLoop 等待客户端消息维持连接，"ping"回复"pong"
func (s *WebSocketService) readLoop(client *wsClient) {
	defer s.removeClient(client)

	for {
		msgType, message, err := client.conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType == websocket.TextMessage && string(message) == "ping" {
			select {
			case client.send <- "pong":
			default:
			}
		}
	}
}

// writeLoop 串行写出send通道中的消息
func (s *WebSocketService) writeLoop(client *wsClient) {
	for msg := range client.send {
		client.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		var err error
		if text, ok := msg.(string); ok {
			err = client.conn.WriteMessage(websocket.TextMessage, []byte(text))
		} else {
			err = client.conn.WriteJSON(msg)
		}
		if err != nil {
			config.Error("メッセージ送信エラー: %v", err)
			client.conn.Close()
			return
		}
	}
	client.conn.Close()
}

// removeClient 移除客户端并关闭其send通道
func (s *WebSocketService) removeClient(client *wsClient) {
	s.mu.Lock()
	if _, ok := s.clients[client]; ok {
		delete(s.clients, client)
		close(client.send)
	}
	count := len(s.clients)
	s.mu.Unlock()
	config.Info("WebSocket切断: %d台のクライアント", count)
}

// Broadcast 向所有客户端推送事件。单个客户端发送失败（缓冲满）则断开该客户端，
// 不影响其他客户端。
func (s *WebSocketService) Broadcast(event DeviceUpdateEvent) {
	s.mu.RLock()
	clients := make([]*wsClient, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.RUnlock()

	for _, c := range clients {
		select {
		case c.send <- event:
		default:
			config.Warning("WebSocket送信バッファ満杯、クライアントを切断します")
			s.removeClient(c)
		}
	}
}

// ClientCount 返回当前连接的客户端数量
func (s *WebSocketService) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}
