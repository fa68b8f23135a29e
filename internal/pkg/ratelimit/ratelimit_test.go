package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RateLimitTestSuite struct {
	suite.Suite
}

func (s *RateLimitTestSuite) TestAllowUpToCapacity() {
	bucket := NewTokenBucket(Config{Capacity: 5, RefillEvery: time.Hour})

	for i := 0; i < 5; i++ {
		require.True(s.T(), bucket.Allow(), "第 %d 次請求應該允許", i+1)
	}
	require.False(s.T(), bucket.Allow(), "超過容量的請求應該拒絕")
}

func (s *RateLimitTestSuite) TestRefill() {
	bucket := NewTokenBucket(Config{Capacity: 2, RefillEvery: 50 * time.Millisecond})

	require.True(s.T(), bucket.Allow())
	require.True(s.T(), bucket.Allow())
	require.False(s.T(), bucket.Allow())

	time.Sleep(60 * time.Millisecond)
	require.True(s.T(), bucket.Allow(), "補token後應該允許")
}

func (s *RateLimitTestSuite) TestRefillDoesNotExceedCapacity() {
	bucket := NewTokenBucket(Config{Capacity: 2, RefillEvery: 10 * time.Millisecond})

	time.Sleep(100 * time.Millisecond)
	require.True(s.T(), bucket.Allow())
	require.True(s.T(), bucket.Allow())
	require.False(s.T(), bucket.Allow(), "token不可累積超過容量")
}

func (s *RateLimitTestSuite) TestConcurrentAllow() {
	bucket := NewTokenBucket(Config{Capacity: 100, RefillEvery: time.Hour})

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if bucket.Allow() {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(s.T(), 100, allowed, "並發下只能放行容量內的請求")
}

func (s *RateLimitTestSuite) TestKeyedLimiterIsolatesKeys() {
	limiter := NewKeyedLimiter(Config{Capacity: 1, RefillEvery: time.Hour})

	require.True(s.T(), limiter.Allow("user-1"))
	require.False(s.T(), limiter.Allow("user-1"))
	require.True(s.T(), limiter.Allow("user-2"), "不同key要各自分桶")
}

func TestRateLimitSuite(t *testing.T) {
	suite.Run(t, new(RateLimitTestSuite))
}
