// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/hitoshi/ecofinds/internal/model"
)

const bearerPrefix = "Bearer "

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// userIDContextKey はリクエストコンテキストにユーザーIDを格納するためのキー。
var userIDContextKey = contextKey("user_id")

// TokenVerifier はトークン検証に必要なインターフェース。
// token.Serviceの部分集合として定義する。
type TokenVerifier interface {
	Verify(tokenString string) (string, error)
}

// NewAuthMiddleware はAuthorizationヘッダーのBearerトークンを検証する
// ミドルウェアを返す。ヘッダー欠落・スキーム不正はMissingCredentials、
// 検証失敗はトークンエラーをそのまま401で返す。
// 成功時は認証済みユーザーIDをリクエストコンテキストに注入する。
// 保護下のハンドラーはリクエストボディやクエリのユーザーIDを一切信用せず、
// コンテキストのIDのみを使う。
func NewAuthMiddleware(verifier TokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. AuthorizationヘッダーからBearerトークンを取得
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, bearerPrefix) {
				writeAuthError(w, model.NewMissingCredentialsError())
				return
			}
			tokenString := strings.TrimPrefix(header, bearerPrefix)

			// 2. トークンの署名と有効期限を検証
			userID, err := verifier.Verify(tokenString)
			if err != nil {
				apiErr, ok := err.(*model.APIError)
				if !ok {
					apiErr = model.NewTokenInvalidError()
				}
				writeAuthError(w, apiErr)
				return
			}

			// 3. 認証済みユーザーIDをコンテキストに注入
			ctx := context.WithValue(r.Context(), userIDContextKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeAuthError は401レスポンスを統一エラーフォーマットで書き込む。
func writeAuthError(w http.ResponseWriter, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": apiErr.Message})
}

// UserIDFromContext はリクエストコンテキストからユーザーIDを取得する。
// 認証ミドルウェアを通過したリクエストでのみ有効。
func UserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userIDContextKey).(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user ID not found in context")
	}
	return userID, nil
}

// ContextWithUserID はコンテキストにユーザーIDを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}
