// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は分類済みの失敗を表す統一エラー型。
// Messageはクライアントに返すメッセージ、Detailは内部向けの補足情報で
// 本番モードではレスポンスに含めない。
type APIError struct {
	Code    string // エラーコード
	Message string // クライアント向けメッセージ
	Detail  string // 内部向け補足（本番では抑制）
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeMissingCredentials = "MISSING_CREDENTIALS"
	ErrCodeTokenInvalid       = "TOKEN_INVALID"
	ErrCodeTokenExpired       = "TOKEN_EXPIRED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeEmailTaken         = "EMAIL_TAKEN"
	ErrCodeEmptyCart          = "EMPTY_CART"
	ErrCodeCheckoutFailed     = "CHECKOUT_FAILED"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// NewValidationError は入力不備のエラーを生成する。
func NewValidationError(message string) *APIError {
	return &APIError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

// NewMissingCredentialsError はAuthorizationヘッダー欠落のエラーを生成する。
func NewMissingCredentialsError() *APIError {
	return &APIError{
		Code:    ErrCodeMissingCredentials,
		Message: "authorization header missing",
	}
}

// NewTokenInvalidError は検証不能なトークンのエラーを生成する。
// 署名不一致・不正なアルゴリズム・クレーム欠落はすべてこのエラーに分類する。
func NewTokenInvalidError() *APIError {
	return &APIError{
		Code:    ErrCodeTokenInvalid,
		Message: "invalid token",
	}
}

// NewTokenExpiredError は有効期限切れトークンのエラーを生成する。
func NewTokenExpiredError() *APIError {
	return &APIError{
		Code:    ErrCodeTokenExpired,
		Message: "token expired",
	}
}

// NewInvalidCredentialsError はログイン失敗のエラーを生成する。
// メール不一致・パスワード不一致のどちらでも同じエラーを返し、
// どちらが間違っていたかを漏らさない。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:    ErrCodeInvalidCredentials,
		Message: "invalid credentials",
	}
}

// NewForbiddenError はリソース所有者以外による変更操作のエラーを生成する。
func NewForbiddenError() *APIError {
	return &APIError{
		Code:    ErrCodeForbidden,
		Message: "forbidden",
	}
}

// NewNotFoundError はリソース未検出のエラーを生成する。
func NewNotFoundError() *APIError {
	return &APIError{
		Code:    ErrCodeNotFound,
		Message: "not found",
	}
}

// NewEmailTakenError はメールアドレス重複のエラーを生成する。
func NewEmailTakenError() *APIError {
	return &APIError{
		Code:    ErrCodeEmailTaken,
		Message: "email already registered",
	}
}

// NewEmptyCartError は空カートでのチェックアウトのエラーを生成する。
func NewEmptyCartError() *APIError {
	return &APIError{
		Code:    ErrCodeEmptyCart,
		Message: "cart empty",
	}
}

// NewCheckoutFailedError はチェックアウトのトランザクション失敗のエラーを生成する。
// ロールバック済みであることが前提で、カートは試行前の状態のまま残る。
func NewCheckoutFailedError(detail string) *APIError {
	return &APIError{
		Code:    ErrCodeCheckoutFailed,
		Message: "checkout failed",
		Detail:  detail,
	}
}
