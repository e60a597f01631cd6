// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/hitoshi/ecofinds/internal/model"
)

// decodeJSONBody はリクエストボディをJSONとしてデコードする。
// ボディが空の場合はゼロ値のまま成功扱いとし、不正なJSONは
// ValidationErrorとして400を書き込んだうえでエラーを返す。
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	apiErr := model.NewValidationError("invalid JSON body")
	writeAPIErrorResponse(w, http.StatusBadRequest, apiErr, false)
	return apiErr
}

// apiErrorResponse はエラーレスポンスのワイヤー形式。
// detailは本番モードでは含めない。
type apiErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// writeAPIErrorResponse はAPIErrorを統一エラーフォーマットで書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError, exposeDetail bool) {
	resp := apiErrorResponse{Error: apiErr.Message}
	if exposeDetail {
		resp.Detail = apiErr.Detail
	}
	writeJSON(w, statusCode, resp)
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error, exposeDetail bool) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		writeAPIErrorResponse(w, mapAPIErrorToHTTPStatus(apiErr), apiErr, exposeDetail)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	internal := &model.APIError{
		Code:    model.ErrCodeInternal,
		Message: "server error",
		Detail:  err.Error(),
	}
	writeAPIErrorResponse(w, http.StatusInternalServerError, internal, exposeDetail)
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeValidation, model.ErrCodeEmailTaken, model.ErrCodeEmptyCart:
		return http.StatusBadRequest
	case model.ErrCodeMissingCredentials, model.ErrCodeTokenInvalid,
		model.ErrCodeTokenExpired, model.ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	case model.ErrCodeNotFound:
		return http.StatusNotFound
	case model.ErrCodeCheckoutFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
