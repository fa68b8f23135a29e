package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mukesh-on-github/Zyrokart/internal/constants"
	"github.com/mukesh-on-github/Zyrokart/internal/infra/auth/firebase_auth"
	"github.com/mukesh-on-github/Zyrokart/internal/pkg/api"
	"github.com/mukesh-on-github/Zyrokart/internal/pkg/apperr"
)

// AuthPayloadMiddleware 解析bearer token並驗證
// token有任何錯誤不中斷請求, 只是不設置payload, 是否拒絕由AuthMiddleware決定
func AuthPayloadMiddleware(verifier firebase_auth.IAuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			info, ok := checkAuthPayload(verifier, r)
			if ok {
				ctx := context.WithValue(r.Context(), constants.AuthorizationPayloadKey, info)
				next.ServeHTTP(w, r.WithContext(ctx))
			} else {
				next.ServeHTTP(w, r)
			}
		})
	}
}

func checkAuthPayload(verifier firebase_auth.IAuthVerifier, r *http.Request) (*firebase_auth.UserInfo, bool) {
	authorizationHeader := r.Header.Get(string(constants.AuthorizationHeaderKey))
	if len(authorizationHeader) == 0 {
		return nil, false
	}

	fields := strings.Fields(authorizationHeader)
	if len(fields) < 2 {
		return nil, false
	}

	authorizationType := strings.ToLower(fields[0])
	if authorizationType != string(constants.AuthorizationTypeBearer) {
		return nil, false
	}

	info, err := verifier.VerifyIDToken(r.Context(), fields[1])
	if err != nil {
		return nil, false
	}
	return info, true
}

// AuthMiddleware 驗證ctx是否有auth payload
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.Context().Value(constants.AuthorizationPayloadKey).(*firebase_auth.UserInfo)
		if !ok {
			api.ErrorJSON(w, "unauthenticated", apperr.New(apperr.UnauthenticatedCode, "unauthenticated"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AdminMiddleware admin專用路由, email需在設定的管理者清單內
func AdminMiddleware(adminEmails []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		allowed[strings.ToLower(email)] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			info, ok := r.Context().Value(constants.AuthorizationPayloadKey).(*firebase_auth.UserInfo)
			if !ok {
				api.ErrorJSON(w, "unauthenticated", apperr.New(apperr.UnauthenticatedCode, "unauthenticated"))
				return
			}
			if _, isAdmin := allowed[strings.ToLower(info.Email)]; !isAdmin {
				api.ErrorJSON(w, "admin access required", apperr.New(apperr.UnauthenticatedCode, "admin access required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
