package services

import (
	"context"
	"encoding/json"
	"time"

	"lighttower-monitor-service/config"

	"github.com/go-redis/redis/v8"
)

// InterfaceRedisService 定义Redis缓存服务接口
type InterfaceRedisService interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string, dest interface{}) error
	GetRaw(key string) (string, error)
	SetRaw(key, value string, expiration time.Duration) error
	Delete(key string) error
	Ping() error
}

// RedisService Redis缓存服务，用于集计接口的响应缓存
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisService 创建Redis缓存服务
func NewRedisService(cfg *config.Config) InterfaceRedisService {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.GetRedisAddr(),
		DB:   cfg.RedisDB,
	})

	return &RedisService{
		Client: client,
		Ctx:    context.Background(),
	}
}

// Set 以JSON形式写入带过期时间的键值
func (s *RedisService) Set(key string, value interface{}, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Client.Set(s.Ctx, key, jsonValue, expiration).Err()
}

// Get 读取键值并反序列化到dest
func (s *RedisService) Get(key string, dest interface{}) error {
	val, err := s.Client.Get(s.Ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

// GetRaw 读取原始字符串值
func (s *RedisService) GetRaw(key string) (string, error) {
	return s.Client.Get(s.Ctx, key).Result()
}

// SetRaw 写入原始字符串值
func (s *RedisService) SetRaw(key, value string, expiration time.Duration) error {
	return s.Client.Set(s.Ctx, key, value, expiration).Err()
}

// Delete 删除键
func (s *RedisService) Delete(key string) error {
	return s.Client.Del(s.Ctx, key).Err()
}

// Ping 测试Redis连接
func (s *RedisService) Ping() error {
	ctx, cancel := context.WithTimeout(s.Ctx, 5*time.Second)
	defer cancel()
	if err := s.Client.Ping(ctx).Err(); err != nil {
		config.Warning("Redis接続テスト失敗: %v", err)
		return err
	}
	return nil
}
