// Package model はドメインモデルを定義する。
package model

import "time"

// User はマーケットプレイス利用ユーザーを表す。
// Emailは常に小文字に正規化して保持する。
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicProfile はAPIレスポンスに含めてよいユーザー情報を表す。
// パスワードハッシュは絶対に外部へ出さない。
type PublicProfile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Public はUserからPublicProfileを生成する。
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}
