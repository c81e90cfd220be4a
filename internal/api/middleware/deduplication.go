package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"

	"meal-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// dedupStore 記錄近期 POST 請求指紋
type dedupStore struct {
	sync.Mutex
	window   time.Duration
	requests map[string]time.Time
	now      func() time.Time
}

func newDedupStore(window time.Duration) *dedupStore {
	if window <= 0 {
		window = time.Second
	}
	return &dedupStore{
		window:   window,
		requests: make(map[string]time.Time),
		now:      time.Now,
	}
}

// seen 指紋在時間窗內出現過時回傳 true，否則記錄本次請求
func (s *dedupStore) seen(fingerprint string) bool {
	s.Lock()
	defer s.Unlock()

	now := s.now()
	if last, ok := s.requests[fingerprint]; ok && now.Sub(last) <= s.window {
		return true
	}
	s.requests[fingerprint] = now

	// 順帶清掉過期指紋
	for k, t := range s.requests {
		if now.Sub(t) > 10*s.window {
			delete(s.requests, k)
		}
	}
	return false
}

// Deduplication 相同用戶端在時間窗內重送相同 POST 內容時拒絕
// skipRoutes 為不檢查的路由樣式（gin FullPath），例如可重複查詢的推薦端點
func Deduplication(window time.Duration, skipRoutes ...string) gin.HandlerFunc {
	store := newDedupStore(window)
	skip := make(map[string]struct{}, len(skipRoutes))
	for _, route := range skipRoutes {
		skip[route] = struct{}{}
	}

	return func(c *gin.Context) {
		// 只處理 POST 請求
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}
		if _, ok := skip[c.FullPath()]; ok {
			c.Next()
			return
		}

		h := sha256.New()
		h.Write([]byte(c.Request.Method + ":" + c.Request.URL.Path + ":" + c.ClientIP() + ":" + c.GetHeader("Authorization") + ":"))

		if c.Request.Body != nil {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				common.LogError("Failed to read request body", zap.Error(err))
				common.AbortWithError(c, common.ErrPayloadTooLarge)
				return
			}
			h.Write(body)

			// 恢復請求體
			c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
		}

		if store.seen(hex.EncodeToString(h.Sum(nil))) {
			common.AbortWithError(c, common.ErrDuplicateRequest)
			return
		}

		c.Next()
	}
}
