package middleware

import (
	"net/http"

	"github.com/mukesh-on-github/Zyrokart/internal/pkg/api"
	"github.com/mukesh-on-github/Zyrokart/internal/pkg/apperr"
	"github.com/mukesh-on-github/Zyrokart/internal/pkg/ratelimit"
	"github.com/mukesh-on-github/Zyrokart/internal/util"
)

// RateLimitMiddleware 以user uid分桶限流, 未登入的請求以remote addr分桶
func RateLimitMiddleware(limiter *ratelimit.KeyedLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.RemoteAddr
			if info := util.GetUserInfoFromContext(r.Context()); info != nil {
				key = info.UID
			}

			if !limiter.Allow(key) {
				api.ErrorJSON(w, "too many requests, slow down",
					apperr.New(apperr.TooManyRequestsCode, "too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
