package util

import (
	"context"

	"github.com/mukesh-on-github/Zyrokart/internal/constants"
	"github.com/mukesh-on-github/Zyrokart/internal/infra/auth/firebase_auth"
)

// GetUserInfoFromContext 從請求上下文取得驗證後的用戶資訊
// payload不存在時回傳nil, caller自行決定是否拒絕請求
func GetUserInfoFromContext(ctx context.Context) *firebase_auth.UserInfo {
	if v := ctx.Value(constants.AuthorizationPayloadKey); v != nil {
		if info, ok := v.(*firebase_auth.UserInfo); ok {
			return info
		}
	}
	return nil
}

// GetRequestIDFromContext 取得request id, 沒有時回傳unknown
func GetRequestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(constants.RequestIDKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return "unknown"
}
