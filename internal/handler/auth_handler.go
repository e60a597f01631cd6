package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/ecofinds/internal/model"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	// Signup は新規ユーザーを登録し、トークンと登録済みユーザーを返す。
	Signup(ctx context.Context, username, email, password string) (*model.User, string, error)
	// Login は資格情報を検証し、新しいトークンを発行する。
	Login(ctx context.Context, email, password string) (*model.User, string, error)
}

// SignupRecorder はユーザー登録のメトリクス記録インターフェース。
type SignupRecorder interface {
	RecordSignup()
}

// AuthHandler はサインアップ・ログインのHTTPハンドラー。
type AuthHandler struct {
	service      AuthServiceInterface
	recorder     SignupRecorder // nil可
	exposeDetail bool
}

// NewAuthHandler はAuthHandlerを生成する。recorderはnilでもよい。
func NewAuthHandler(service AuthServiceInterface, recorder SignupRecorder, exposeDetail bool) *AuthHandler {
	return &AuthHandler{
		service:      service,
		recorder:     recorder,
		exposeDetail: exposeDetail,
	}
}

// credentialsRequest はサインアップ・ログインリクエストのボディ。
type credentialsRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// tokenResponse は認証成功時のレスポンス。
type tokenResponse struct {
	Token string              `json:"token"`
	User  model.PublicProfile `json:"user"`
}

// Signup は新規ユーザーを登録する。
// POST /signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		return
	}

	user, tok, err := h.service.Signup(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err, h.exposeDetail)
		return
	}

	if h.recorder != nil {
		h.recorder.RecordSignup()
	}

	writeJSON(w, http.StatusCreated, tokenResponse{
		Token: tok,
		User:  user.Public(),
	})
}

// Login は資格情報を検証してトークンを返す。
// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		return
	}

	user, tok, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err, h.exposeDetail)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		Token: tok,
		User:  user.Public(),
	})
}
