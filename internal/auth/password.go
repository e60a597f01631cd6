// Package auth はサインアップ・ログインとパスワード資格情報の検証を提供する。
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher はパスワードの一方向ハッシュ化と照合のインターフェース。
type PasswordHasher interface {
	// Hash は平文パスワードからソルト付きハッシュを生成する。
	Hash(password string) (string, error)
	// Compare はハッシュと平文パスワードを照合する。不一致の場合はエラーを返す。
	Compare(hash, password string) error
}

// BcryptHasher はbcryptによるPasswordHasher実装。
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher はデフォルトコストのBcryptHasherを生成する。
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

// Hash は平文パスワードからソルト付きハッシュを生成する。
func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Compare はハッシュと平文パスワードを照合する。
func (h *BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// compile-time interface check
var _ PasswordHasher = (*BcryptHasher)(nil)
