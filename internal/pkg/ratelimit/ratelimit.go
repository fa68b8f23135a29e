package ratelimit

import (
	"sync"
	"sync/atomic"
	"time"
)

// Config token bucket參數
// Capacity是突發上限, 每RefillEvery補一枚token
type Config struct {
	Capacity    int
	RefillEvery time.Duration
}

func DefaultConfig() Config {
	return Config{Capacity: 30, RefillEvery: 2 * time.Second}
}

// TokenBucket 無鎖token bucket
// 補token在Allow時lazy計算, 不開background goroutine, keyed場景下不會洩漏
type TokenBucket struct {
	config     Config
	current    atomic.Int64
	lastRefill atomic.Int64
}

func NewTokenBucket(config Config) *TokenBucket {
	t := &TokenBucket{config: config}
	t.current.Store(int64(config.Capacity))
	t.lastRefill.Store(time.Now().UnixNano())
	return t
}

func (t *TokenBucket) Allow() bool {
	t.refill()
	for {
		current := t.current.Load()
		if current <= 0 {
			return false
		}
		if t.current.CompareAndSwap(current, current-1) {
			return true
		}
	}
}

func (t *TokenBucket) refill() {
	for {
		last := t.lastRefill.Load()
		now := time.Now().UnixNano()
		elapsed := time.Duration(now - last)
		tokensToAdd := int64(elapsed / t.config.RefillEvery)
		if tokensToAdd <= 0 {
			return
		}
		// lastRefill只前進已折算成token的時間, 零頭留到下次
		if !t.lastRefill.CompareAndSwap(last, last+int64(tokensToAdd)*int64(t.config.RefillEvery)) {
			continue
		}
		for {
			current := t.current.Load()
			newTokens := current + tokensToAdd
			if newTokens > int64(t.config.Capacity) {
				newTokens = int64(t.config.Capacity)
			}
			if t.current.CompareAndSwap(current, newTokens) {
				return
			}
		}
	}
}

// KeyedLimiter 以key(user uid或ip)分桶限流
type KeyedLimiter struct {
	config  Config
	mu      sync.Mutex
	buckets map[string]*TokenBucket
}

func NewKeyedLimiter(config Config) *KeyedLimiter {
	if config.Capacity < 1 {
		config = DefaultConfig()
	}
	return &KeyedLimiter{config: config, buckets: map[string]*TokenBucket{}}
}

func (k *KeyedLimiter) Allow(key string) bool {
	k.mu.Lock()
	bucket, ok := k.buckets[key]
	if !ok {
		bucket = NewTokenBucket(k.config)
		k.buckets[key] = bucket
	}
	k.mu.Unlock()

	return bucket.Allow()
}
