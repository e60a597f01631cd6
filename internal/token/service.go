// Package token は署名付き・有効期限付きのユーザー識別トークンを提供する。
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hitoshi/ecofinds/internal/model"
)

// Claims はトークンに埋め込むクレーム。
// 標準クレーム（exp）とユーザーIDを持つ。
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// Service はHS256署名のJWTを発行・検証する。
// 署名鍵はプロセス起動時に1回読み込み、以後変更しない。
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService はServiceを生成する。ttlはトークンの有効期間。
func NewService(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue は指定ユーザーIDと絶対有効期限（now + TTL）を埋め込んだ
// トークンを発行する。
func (s *Service) Issue(userID string) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify はトークンの署名と有効期限を検証し、ユーザーIDを返す。
// 期限切れはTokenExpired、それ以外の検証失敗
// （署名不一致・不正なアルゴリズム・クレーム欠落）はTokenInvalidを返す。
func (s *Service) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", model.NewTokenExpiredError()
		}
		return "", model.NewTokenInvalidError()
	}

	if !token.Valid || claims.UserID == "" {
		return "", model.NewTokenInvalidError()
	}

	return claims.UserID, nil
}
