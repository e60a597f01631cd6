package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/ecofinds/internal/middleware"
	"github.com/hitoshi/ecofinds/internal/model"
)

// UserServiceInterface はプロフィールハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	Get(ctx context.Context, userID string) (*model.User, error)
	Update(ctx context.Context, userID, username, email string) (*model.User, error)
}

// UserHandler はプロフィール管理のHTTPハンドラー。
type UserHandler struct {
	service      UserServiceInterface
	exposeDetail bool
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(service UserServiceInterface, exposeDetail bool) *UserHandler {
	return &UserHandler{
		service:      service,
		exposeDetail: exposeDetail,
	}
}

// profileRequest はプロフィール更新リクエストのボディ。
type profileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Profile は認証済みユーザーのプロフィールを返す。
// GET /profile
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewMissingCredentialsError(), h.exposeDetail)
		return
	}

	u, err := h.service.Get(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err, h.exposeDetail)
		return
	}

	writeJSON(w, http.StatusOK, u.Public())
}

// UpdateProfile はユーザー名とメールアドレスを上書きする。
// PUT /profile
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewMissingCredentialsError(), h.exposeDetail)
		return
	}

	var req profileRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		return
	}

	if _, err := h.service.Update(r.Context(), userID, req.Username, req.Email); err != nil {
		handleServiceError(w, err, h.exposeDetail)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "profile updated"})
}
