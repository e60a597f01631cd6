package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/ecofinds/internal/middleware"
	"github.com/hitoshi/ecofinds/internal/model"
	"github.com/hitoshi/ecofinds/internal/product"
)

// ProductServiceInterface は商品ハンドラーが必要とするサービスインターフェース。
type ProductServiceInterface interface {
	Create(ctx context.Context, ownerID string, input product.CreateInput) (*model.Product, error)
	Update(ctx context.Context, ownerID, productID string, patch model.ProductPatch) (*model.Product, error)
	Delete(ctx context.Context, ownerID, productID string) error
	Get(ctx context.Context, productID string) (*model.Product, error)
	List(ctx context.Context, filter model.ProductFilter) ([]*model.Product, error)
	ListCategories() []string
}

// ProductHandler は商品管理のHTTPハンドラー。
type ProductHandler struct {
	service      ProductServiceInterface
	exposeDetail bool
}

// NewProductHandler はProductHandlerを生成する。
func NewProductHandler(service ProductServiceInterface, exposeDetail bool) *ProductHandler {
	return &ProductHandler{
		service:      service,
		exposeDetail: exposeDetail,
	}
}

// productRequest は商品作成・更新リクエストのボディ。
// 更新時はnilのフィールドを変更しない部分更新として扱う。
type productRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Image       *string  `json:"image"`
}

// productResponse は商品のレスポンス。
type productResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
}

func toProductResponse(p *model.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Image:       p.Image,
	}
}

// Create は新しい商品を出品する。出品者はトークン由来のユーザーIDのみを使う。
// POST /products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewMissingCredentialsError(), h.exposeDetail)
		return
	}

	var req productRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		return
	}

	input := product.CreateInput{Price: req.Price}
	if req.Title != nil {
		input.Title = *req.Title
	}
	if req.Description != nil {
		input.Description = *req.Description
	}
	if req.Category != nil {
		input.Category = *req.Category
	}
	if req.Image != nil {
		input.Image = *req.Image
	}

	created, err := h.service.Create(r.Context(), userID, input)
	if err != nil {
		handleServiceError(w, err, h.exposeDetail)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "product created",
		"id":      created.ID,
	})
}

// List は商品一覧をフィルタ付きで取得する。認証不要。
// GET /products?q=xxx&category=yyy
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := model.ProductFilter{
		Query:    strings.TrimSpace(r.URL.Query().Get("q")),
		Category: strings.TrimSpace(r.URL.Query().Get("category")),
	}

	products, err := h.service.List(r.Context(), filter)
	if err != nil {
		handleServiceError(w, err, h.exposeDetail)
		return
	}

	// 0件でも空配列を返す（nullにしない）
	resp := make([]productResponse, len(products))
	for i, p := range products {
		resp[i] = toProductResponse(p)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get は商品詳細を取得する。認証不要。
// GET /products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	p, err := h.service.Get(r.Context(), productID)
	if err != nil {
		handleServiceError(w, err, h.exposeDetail)
		return
	}

	writeJSON(w, http.StatusOK, toProductResponse(p))
}

// Update は商品を部分更新する。出品者本人のみ。
// PUT /products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewMissingCredentialsError(), h.exposeDetail)
		return
	}

	productID := chi.URLParam(r, "id")

	var req productRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		return
	}

	patch := model.ProductPatch{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
	}

	if _, err := h.service.Update(r.Context(), userID, productID, patch); err != nil {
		handleServiceError(w, err, h.exposeDetail)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "updated"})
}

// Delete は商品を削除する。出品者本人のみ。
// DELETE /products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewMissingCredentialsError(), h.exposeDetail)
		return
	}

	productID := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), userID, productID); err != nil {
		handleServiceError(w, err, h.exposeDetail)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

// ListCategories はカテゴリの固定リストを返す。認証不要。
// GET /categories
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.ListCategories())
}
