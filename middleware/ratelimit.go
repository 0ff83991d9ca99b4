package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ipWindow 单个 IP 的滑动窗口记录
type ipWindow struct {
	attempts []time.Time
}

// prune 移除窗口外的记录，返回剩余次数
func (w *ipWindow) prune(cutoff time.Time) int {
	kept := w.attempts[:0]
	for _, t := range w.attempts {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	w.attempts = kept
	return len(kept)
}

// LoginRateLimit 登录接口限流中间件
// 每 IP 在 window 内最多 maxAttempts 次尝试，超过则返回 429
func LoginRateLimit(maxAttempts int, window time.Duration) gin.HandlerFunc {
	var (
		mu    sync.Mutex
		store = make(map[string]*ipWindow)
	)

	// 定期清理长期不活跃的 IP
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			mu.Lock()
			cutoff := time.Now().Add(-window)
			for ip, w := range store {
				if w.prune(cutoff) == 0 {
					delete(store, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		w, ok := store[ip]
		if !ok {
			w = &ipWindow{}
			store[ip] = w
		}
		if w.prune(now.Add(-window)) >= maxAttempts {
			mu.Unlock()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "登录尝试过于频繁，请稍后再试",
			})
			c.Abort()
			return
		}
		w.attempts = append(w.attempts, now)
		mu.Unlock()

		c.Next()
	}
}
