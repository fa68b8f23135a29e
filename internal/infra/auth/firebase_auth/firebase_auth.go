package firebase_auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

type IAuthVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*UserInfo, error)
}

// FirebaseAuthVerifier 驗證前端傳來的Firebase ID token並取得用戶資訊
type FirebaseAuthVerifier struct {
	ProjectID string
	client    *http.Client
}

// UserInfo 存放驗證後的用戶資訊, Sub是所有per-user資料的key
type UserInfo struct {
	UID           string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

func NewFirebaseAuthVerifier(projectID string) *FirebaseAuthVerifier {
	return &FirebaseAuthVerifier{
		ProjectID: projectID,
		client:    http.DefaultClient,
	}
}

// VerifyIDToken 使用Google的token驗證端點
// Firebase ID token是Google簽發的JWT, tokeninfo端點可以直接驗
func (f *FirebaseAuthVerifier) VerifyIDToken(ctx context.Context, idToken string) (*UserInfo, error) {
	url := "https://oauth2.googleapis.com/tokeninfo?id_token=" + idToken

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending verification request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("invalid token")
	}

	var tokenInfo struct {
		Aud           string `json:"aud"`
		Sub           string `json:"sub"`
		Email         string `json:"email"`
		EmailVerified string `json:"email_verified"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&tokenInfo); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	// 驗證這個token是發給本專案的
	if tokenInfo.Aud != f.ProjectID {
		return nil, errors.New("token was not issued for this project")
	}

	verified, _ := strconv.ParseBool(tokenInfo.EmailVerified)

	return &UserInfo{
		UID:           tokenInfo.Sub,
		Email:         tokenInfo.Email,
		EmailVerified: verified,
		Name:          tokenInfo.Name,
		Picture:       tokenInfo.Picture,
	}, nil
}
