package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/hitoshi/ecofinds/internal/middleware"
	"github.com/hitoshi/ecofinds/internal/model"
)

// CartServiceInterface はカート・チェックアウトハンドラーが必要とするサービスインターフェース。
type CartServiceInterface interface {
	Add(ctx context.Context, userID, productID string, quantity int) error
	View(ctx context.Context, userID string) ([]model.CartItemView, error)
	Checkout(ctx context.Context, userID string) (string, error)
	PurchaseHistory(ctx context.Context, userID string) ([]model.PurchasedItem, error)
}

// CartHandler はカート操作・チェックアウト・購入履歴のHTTPハンドラー。
type CartHandler struct {
	service      CartServiceInterface
	exposeDetail bool
}

// NewCartHandler はCartHandlerを生成する。
func NewCartHandler(service CartServiceInterface, exposeDetail bool) *CartHandler {
	return &CartHandler{
		service:      service,
		exposeDetail: exposeDetail,
	}
}

// addToCartRequest はカート追加リクエストのボディ。
// quantity省略時は1として扱う。
type addToCartRequest struct {
	ProductID string `json:"product_id"`
	Quantity  *int   `json:"quantity"`
}

// cartItemResponse はカート内商品のレスポンス。
// 価格は現在の商品価格でスナップショットではない。
type cartItemResponse struct {
	CartID    string  `json:"cart_id"`
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

// purchasedItemResponse は購入履歴1行のレスポンス。
// 数量・価格は購入時点のスナップショット。
type purchasedItemResponse struct {
	OrderID   string    `json:"order_id"`
	CreatedAt time.Time `json:"created_at"`
	ProductID string    `json:"product_id"`
	Title     string    `json:"title"`
	Image     string    `json:"image"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
}

// Add は商品をカートに追加する。同一商品は数量を加算する。
// POST /cart
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewMissingCredentialsError(), h.exposeDetail)
		return
	}

	var req addToCartRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	if err := h.service.Add(r.Context(), userID, req.ProductID, quantity); err != nil {
		handleServiceError(w, err, h.exposeDetail)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "added to cart"})
}

// View はカート内容を現在の商品情報と結合して返す。
// GET /cart
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewMissingCredentialsError(), h.exposeDetail)
		return
	}

	items, err := h.service.View(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err, h.exposeDetail)
		return
	}

	resp := make([]cartItemResponse, len(items))
	for i, item := range items {
		resp[i] = cartItemResponse{
			CartID:    item.CartID,
			ProductID: item.ProductID,
			Title:     item.Title,
			Price:     item.Price,
			Image:     item.Image,
			Quantity:  item.Quantity,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Checkout はカート内容を1つの注文に確定する。
// POST /checkout
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewMissingCredentialsError(), h.exposeDetail)
		return
	}

	orderID, err := h.service.Checkout(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err, h.exposeDetail)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message":  "checkout complete",
		"order_id": orderID,
	})
}

// Purchases は購入履歴を注文の新しい順に返す。
// GET /purchases
func (h *CartHandler) Purchases(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewMissingCredentialsError(), h.exposeDetail)
		return
	}

	purchases, err := h.service.PurchaseHistory(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err, h.exposeDetail)
		return
	}

	resp := make([]purchasedItemResponse, len(purchases))
	for i, p := range purchases {
		resp[i] = purchasedItemResponse{
			OrderID:   p.OrderID,
			CreatedAt: p.OrderCreatedAt,
			ProductID: p.ProductID,
			Title:     p.Title,
			Image:     p.Image,
			Quantity:  p.Quantity,
			Price:     p.Price,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
