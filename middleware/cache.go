package middleware

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"net/http"
	"sort"
	"sync"
	"time"

	"lighttower-monitor-service/services"

	"github.com/gin-gonic/gin"
)

// 缓存条目
type cacheEntry struct {
	Content    []byte
	Expiration time.Time
}

// 内存缓存（Redis不可用时的兜底）
type memoryCache struct {
	sync.RWMutex
	items map[string]cacheEntry
}

var cache = &memoryCache{
	items: make(map[string]cacheEntry),
}

var redisCache services.InterfaceRedisService

// InitCacheMiddleware 注入Redis缓存服务。Redis不可用时自动退化为内存缓存。
func InitCacheMiddleware(redis services.InterfaceRedisService) {
	if redis != nil && redis.Ping() == nil {
		redisCache = redis
	}
}

// 缓存键：路径+排序后的查询参数的MD5
func cacheKey(c *gin.Context) string {
	path := c.Request.URL.Path

	queryParams := c.Request.URL.Query()
	var queryKeys []string
	for key := range queryParams {
		queryKeys = append(queryKeys, key)
	}
	sort.Strings(queryKeys)

	var queryString string
	for _, key := range queryKeys {
		values := queryParams[key]
		sort.Strings(values)
		for _, value := range values {
			queryString += key + "=" + value + "&"
		}
	}

	hasher := md5.New()
	hasher.Write([]byte(path + "?" + queryString))
	return "cache:" + hex.EncodeToString(hasher.Sum(nil))
}

// responseWriter 捕获响应体用于写入缓存
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

func cacheGet(key string) ([]byte, bool) {
	if redisCache != nil {
		val, err := redisCache.GetRaw(key)
		if err != nil {
			return nil, false
		}
		return []byte(val), true
	}

	cache.RLock()
	entry, found := cache.items[key]
	cache.RUnlock()
	if !found || entry.Expiration.Before(time.Now()) {
		return nil, false
	}
	return entry.Content, true
}

func cacheSet(key string, content []byte, expiration time.Duration) {
	if redisCache != nil {
		_ = redisCache.SetRaw(key, string(content), expiration)
		return
	}

	cache.Lock()
	cache.items[key] = cacheEntry{
		Content:    content,
		Expiration: time.Now().Add(expiration),
	}
	cache.Unlock()
}

// Cache 创建GET响应缓存中间件，集计类接口用短TTL缓存减轻DB压力
func Cache(expiration time.Duration) gin.HandlerFunc {
	if expiration <= 0 {
		expiration = 5 * time.Minute
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := cacheKey(c)
		if content, found := cacheGet(key); found {
			c.Data(http.StatusOK, "application/json; charset=utf-8", content)
			c.Abort()
			return
		}

		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = writer

		c.Next()

		if c.Writer.Status() == http.StatusOK {
			cacheSet(key, writer.body.Bytes(), expiration)
		}
	}
}
