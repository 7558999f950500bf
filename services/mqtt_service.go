package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"lighttower-monitor-service/config"
	"lighttower-monitor-service/models"
	"lighttower-monitor-service/utils"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

// 网关指令常量
const (
	GatewayCompID   = "JP0001"
	GatewayLang     = "jp"
	GatewayClientTp = "webapp"

	FunctHeartbeat = "heartbeat"
	FunctStatus    = "status"

	heartbeatTimeout = 10 * time.Second
)

// GatewayCommand 发往网关指令主题的指令消息
type GatewayCommand struct {
	CompID    string   `json:"comp_id"`
	Lang      string   `json:"lang"`
	TransCode int64    `json:"trans_code"`
	ClientTp  string   `json:"client_tp"`
	Object    string   `json:"object"`
	Funct     string   `json:"funct"`
	Input     []string `json:"input"`
}

// gatewayDataPayload 网关数据主题的原始消息格式
// {"gateway_id":"JP0000000001","addr":"ECDA3BBE61E8","error_code":"TMS001","error":"Successful","data":["01","Running",85]}
type gatewayDataPayload struct {
	GatewayID string            `json:"gateway_id"`
	Addr      string            `json:"addr"`
	ErrorCode string            `json:"error_code"`
	Error     string            `json:"error"`
	Data      []json.RawMessage `json:"data"`
}

// InterfaceMQTTService 定义MQTT接入服务接口
type InterfaceMQTTService interface {
	Connect() error
	Disconnect()
	IsConnected() bool
	SendHeartbeat() (bool, error)
	RequestStatus() error
}

// MQTTService MQTT接入服务：订阅网关数据主题、发布网关指令
type MQTTService struct {
	Config    *config.Config
	Telemetry InterfaceTelemetryService
	Client    mqtt.Client

	connected      bool
	connectedMutex sync.RWMutex
	publishMutex   sync.Mutex

	// 心跳等待通道，收到pong时关闭
	pongMutex  sync.Mutex
	pongWaiter chan struct{}
}

// NewMQTTService 创建MQTT接入服务
func NewMQTTService(cfg *config.Config, telemetry InterfaceTelemetryService) InterfaceMQTTService {
	return &MQTTService{
		Config:    cfg,
		Telemetry: telemetry,
	}
}

// Connect 连接MQTT代理并订阅数据主题。客户端ID带随机后缀防止冲突。
func (s *MQTTService) Connect() error {
	clientID := fmt.Sprintf("LightTower_WebApp_%s", uuid.New().String()[:8])
	config.Info("MQTTクライアントID: %s", clientID)

	opts := mqtt.NewClientOptions().
		AddBroker(s.Config.GetMQTTBrokerURL()).
		SetClientID(clientID).
		SetCleanSession(true).
		SetAutoReconnect(true).
		SetKeepAlive(60 * time.Second).
		SetOnConnectHandler(s.onConnect).
		SetConnectionLostHandler(s.onConnectionLost)

	if s.Config.MQTTUsername != "" {
		opts.SetUsername(s.Config.MQTTUsername)
		opts.SetPassword(s.Config.MQTTPassword)
	}

	s.Client = mqtt.NewClient(opts)
	token := s.Client.Connect()
	if token.WaitTimeout(10*time.Second) && token.Error() != nil {
		return fmt.Errorf("MQTT接続エラー: %v", token.Error())
	}
	return nil
}

// onConnect 连接成功时订阅数据主题（自动重连后也会再次订阅）
func (s *MQTTService) onConnect(client mqtt.Client) {
	config.Info("MQTTブローカーに接続しました: %s", s.Config.GetMQTTBrokerURL())
	s.setConnected(true)

	token := client.Subscribe(s.Config.MQTTDataTopic, 0, s.handleMessage)
	if token.WaitTimeout(5*time.Second) && token.Error() != nil {
		config.Error("トピック購読エラー: %v", token.Error())
		return
	}
	config.Info("トピックを購読: %s", s.Config.MQTTDataTopic)
}

// onConnectionLost 连接断开时的回调
func (s *MQTTService) onConnectionLost(client mqtt.Client, err error) {
	s.setConnected(false)
	config.Warning("予期しない切断: %v", err)
}

// Disconnect 断开MQTT连接
func (s *MQTTService) Disconnect() {
	if s.Client != nil && s.Client.IsConnected() {
		s.Client.Disconnect(250)
	}
	s.setConnected(false)
	config.Info("MQTTクライアントを停止しました")
}

func (s *MQTTService) setConnected(v bool) {
	s.connectedMutex.Lock()
	s.connected = v
	s.connectedMutex.Unlock()
}

// IsConnected 返回当前连接状态
func (s *MQTTService) IsConnected() bool {
	s.connectedMutex.RLock()
	defer s.connectedMutex.RUnlock()
	return s.connected
}

// handleMessage 数据主题消息回调。解析失败的消息丢弃并告警，
// pong应答转给心跳等待者，遥测数据交给采集管道异步处理。
func (s *MQTTService) handleMessage(client mqtt.Client, msg mqtt.Message) {
	telemetry, isPong, err := parseDataPayload(msg.Payload())
	if err != nil {
		config.Warning("未知のデータ形式: %v", err)
		return
	}
	if isPong {
		s.notifyPong()
		return
	}

	config.Info("受信データ: Device=%s, Status=%s, Battery=%.0f%%",
		telemetry.DeviceAddr, telemetry.StatusText, telemetry.Battery)

	go func(m TelemetryMessage) {
		if err := s.Telemetry.HandleTelemetry(m); err != nil {
			config.Error("遥测処理エラー: %s: %v", m.DeviceAddr, err)
		}
	}(*telemetry)
}

// parseDataPayload 解析数据主题的消息。返回遥测数据，或pong应答标记。
func parseDataPayload(payload []byte) (*TelemetryMessage, bool, error) {
	var raw gatewayDataPayload
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, false, fmt.Errorf("JSON解析エラー: %v", err)
	}

	// pong应答：data数组中含有"pong"字符串
	for _, elem := range raw.Data {
		var str string
		if err := json.Unmarshal(elem, &str); err == nil && strings.EqualFold(str, "pong") {
			return nil, true, nil
		}
	}

	if len(raw.Data) < 3 {
		return nil, false, fmt.Errorf("dataフィールドが不正: %s", string(payload))
	}

	var statusCode, statusText string
	if err := json.Unmarshal(raw.Data[0], &statusCode); err != nil {
		return nil, false, fmt.Errorf("ステータスコードが不正: %v", err)
	}
	if err := json.Unmarshal(raw.Data[1], &statusText); err != nil {
		return nil, false, fmt.Errorf("ステータステキストが不正: %v", err)
	}
	var battery float64
	if err := json.Unmarshal(raw.Data[2], &battery); err != nil {
		return nil, false, fmt.Errorf("バッテリー残量が不正: %v", err)
	}

	if !utils.ValidateDeviceAddr(raw.Addr) {
		return nil, false, fmt.Errorf("デバイスアドレスが不正: %q", raw.Addr)
	}
	addr := utils.NormalizeDeviceAddr(raw.Addr)

	red, yellow, green := models.LightsFromStatusCode(statusCode)

	return &TelemetryMessage{
		DeviceID:   utils.DeviceIDFromAddr(addr),
		DeviceAddr: addr,
		GatewayID:  raw.GatewayID,
		Battery:    battery,
		Red:        red,
		Yellow:     yellow,
		Green:      green,
		StatusCode: statusCode,
		StatusText: models.NormalizeStatusText(statusCode, statusText),
		Timestamp:  time.Now().UTC(),
	}, false, nil
}

// publishCommand 向指令主题发布一条网关指令
func (s *MQTTService) publishCommand(funct string, input []string) error {
	if s.Client == nil || !s.Client.IsConnected() {
		return fmt.Errorf("MQTT未接続")
	}

	cmd := GatewayCommand{
		CompID:    GatewayCompID,
		Lang:      GatewayLang,
		TransCode: time.Now().Unix(),
		ClientTp:  GatewayClientTp,
		Object:    "gateway",
		Funct:     funct,
		Input:     input,
	}
	payload, err := json.Marshal(cmd)
	if err != nil {
		return err
	}

	s.publishMutex.Lock()
	defer s.publishMutex.Unlock()

	token := s.Client.Publish(s.Config.MQTTCommandTopic, 0, false, payload)
	if token.WaitTimeout(5*time.Second) && token.Error() != nil {
		return fmt.Errorf("コマンド送信エラー: %v", token.Error())
	}
	config.Info("コマンド送信: funct=%s topic=%s", funct, s.Config.MQTTCommandTopic)
	return nil
}

// notifyPong 通知心跳等待者收到了pong应答
func (s *MQTTService) notifyPong() {
	s.pongMutex.Lock()
	defer s.pongMutex.Unlock()
	if s.pongWaiter != nil {
		close(s.pongWaiter)
		s.pongWaiter = nil
	}
}

// SendHeartbeat 向网关发送心跳指令，在数据主题上等待pong应答。
// 超时（10秒）返回false，不算错误。
func (s *MQTTService) SendHeartbeat() (bool, error) {
	s.pongMutex.Lock()
	if s.pongWaiter == nil {
		s.pongWaiter = make(chan struct{})
	}
	waiter := s.pongWaiter
	s.pongMutex.Unlock()

	if err := s.publishCommand(FunctHeartbeat, []string{}); err != nil {
		return false, err
	}

	select {
	case <-waiter:
		return true, nil
	case <-time.After(heartbeatTimeout):
		config.Warning("ハートビート応答タイムアウト")
		return false, nil
	}
}

// RequestStatus 请求网关上报全设备当前状态（fire-and-forget）
func (s *MQTTService) RequestStatus() error {
	return s.publishCommand(FunctStatus, []string{})
}
