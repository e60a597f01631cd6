package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/ecofinds/internal/middleware"
	"github.com/hitoshi/ecofinds/internal/model"
	"github.com/hitoshi/ecofinds/internal/product"
)

// fakeProductService はProductServiceInterfaceのテスト用フェイク。
type fakeProductService struct {
	created    *model.Product
	products   []*model.Product
	err        error
	gotOwnerID string
	gotFilter  model.ProductFilter
	gotPatch   model.ProductPatch
}

func (f *fakeProductService) Create(ctx context.Context, ownerID string, input product.CreateInput) (*model.Product, error) {
	f.gotOwnerID = ownerID
	if f.err != nil {
		return nil, f.err
	}
	return f.created, nil
}

func (f *fakeProductService) Update(ctx context.Context, ownerID, productID string, patch model.ProductPatch) (*model.Product, error) {
	f.gotOwnerID = ownerID
	f.gotPatch = patch
	if f.err != nil {
		return nil, f.err
	}
	return f.created, nil
}

func (f *fakeProductService) Delete(ctx context.Context, ownerID, productID string) error {
	f.gotOwnerID = ownerID
	return f.err
}

func (f *fakeProductService) Get(ctx context.Context, productID string) (*model.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.created, nil
}

func (f *fakeProductService) List(ctx context.Context, filter model.ProductFilter) ([]*model.Product, error) {
	f.gotFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func (f *fakeProductService) ListCategories() []string {
	return product.Categories
}

// authedRequest は認証済みユーザーIDをコンテキストに注入したリクエストを作る。
func authedRequest(t *testing.T, method, target, body, userID string) *http.Request {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	return req.WithContext(middleware.ContextWithUserID(req.Context(), userID))
}

// withURLParam はchiのURLパラメータをリクエストに設定する。
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestProductHandler_Create_Returns201WithID(t *testing.T) {
	svc := &fakeProductService{
		created: &model.Product{ID: "prod-1", UserID: "user-1", Title: "Chair", Price: 25.0},
	}
	h := NewProductHandler(svc, false)

	body := `{"title":"Chair","price":25.0,"category":"Furniture"}`
	req := authedRequest(t, http.MethodPost, "/products", body, "user-1")
	w := httptest.NewRecorder()

	h.Create(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	var got map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got["id"] != "prod-1" {
		t.Errorf("id = %q, want prod-1", got["id"])
	}
	if svc.gotOwnerID != "user-1" {
		t.Errorf("ownerID = %q, want user-1 (must come from token context)", svc.gotOwnerID)
	}
}

func TestProductHandler_Create_IgnoresBodyUserID(t *testing.T) {
	svc := &fakeProductService{
		created: &model.Product{ID: "prod-1", UserID: "user-1", Title: "Chair", Price: 25.0},
	}
	h := NewProductHandler(svc, false)

	// ボディのuser_idは無視され、コンテキストのIDが使われる
	body := `{"title":"Chair","price":25.0,"user_id":"attacker"}`
	req := authedRequest(t, http.MethodPost, "/products", body, "user-1")
	w := httptest.NewRecorder()

	h.Create(w, req)

	if svc.gotOwnerID != "user-1" {
		t.Errorf("ownerID = %q, want user-1", svc.gotOwnerID)
	}
}

func TestProductHandler_Create_ValidationError_Returns400(t *testing.T) {
	svc := &fakeProductService{err: model.NewValidationError("title and price required")}
	h := NewProductHandler(svc, false)

	req := authedRequest(t, http.MethodPost, "/products", `{}`, "user-1")
	w := httptest.NewRecorder()

	h.Create(w, req)

	if w.Result().StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusBadRequest)
	}
}

func TestProductHandler_List_PassesFilters(t *testing.T) {
	svc := &fakeProductService{
		products: []*model.Product{
			{ID: "p2", Title: "Desk Lamp"},
			{ID: "p1", Title: "Lamp"},
		},
	}
	h := NewProductHandler(svc, false)

	req := httptest.NewRequest(http.MethodGet, "/products?q=lamp&category=Home", nil)
	w := httptest.NewRecorder()

	h.List(w, req)

	if svc.gotFilter.Query != "lamp" {
		t.Errorf("filter.Query = %q, want lamp", svc.gotFilter.Query)
	}
	if svc.gotFilter.Category != "Home" {
		t.Errorf("filter.Category = %q, want Home", svc.gotFilter.Category)
	}

	var got []productResponse
	if err := json.NewDecoder(w.Result().Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
	if got[0].ID != "p2" {
		t.Errorf("first product = %q, want p2 (newest first)", got[0].ID)
	}
}

func TestProductHandler_List_EmptyResultIsArray(t *testing.T) {
	svc := &fakeProductService{}
	h := NewProductHandler(svc, false)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	w := httptest.NewRecorder()

	h.List(w, req)

	body := strings.TrimSpace(w.Body.String())
	if body != "[]" {
		t.Errorf("body = %q, want []", body)
	}
}

func TestProductHandler_Get_NotFound_Returns404(t *testing.T) {
	svc := &fakeProductService{err: model.NewNotFoundError()}
	h := NewProductHandler(svc, false)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/products/missing", nil), "id", "missing")
	w := httptest.NewRecorder()

	h.Get(w, req)

	if w.Result().StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusNotFound)
	}
}

func TestProductHandler_Update_Forbidden_Returns403(t *testing.T) {
	svc := &fakeProductService{err: model.NewForbiddenError()}
	h := NewProductHandler(svc, false)

	req := authedRequest(t, http.MethodPut, "/products/p1", `{"title":"New"}`, "user-2")
	req = withURLParam(req, "id", "p1")
	w := httptest.NewRecorder()

	h.Update(w, req)

	if w.Result().StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusForbidden)
	}
}

func TestProductHandler_Update_PartialPatch(t *testing.T) {
	svc := &fakeProductService{
		created: &model.Product{ID: "p1", Title: "New"},
	}
	h := NewProductHandler(svc, false)

	// priceのみの部分更新
	req := authedRequest(t, http.MethodPut, "/products/p1", `{"price":10.5}`, "user-1")
	req = withURLParam(req, "id", "p1")
	w := httptest.NewRecorder()

	h.Update(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}
	if svc.gotPatch.Price == nil || *svc.gotPatch.Price != 10.5 {
		t.Error("patch.Price should be set to 10.5")
	}
	if svc.gotPatch.Title != nil {
		t.Error("patch.Title should be nil for a price-only update")
	}
}

func TestProductHandler_Delete_Returns200(t *testing.T) {
	svc := &fakeProductService{}
	h := NewProductHandler(svc, false)

	req := authedRequest(t, http.MethodDelete, "/products/p1", "", "user-1")
	req = withURLParam(req, "id", "p1")
	w := httptest.NewRecorder()

	h.Delete(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var got map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got["message"] != "deleted" {
		t.Errorf("message = %q, want deleted", got["message"])
	}
}

func TestProductHandler_ListCategories_ReturnsFixedList(t *testing.T) {
	svc := &fakeProductService{}
	h := NewProductHandler(svc, false)

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	w := httptest.NewRecorder()

	h.ListCategories(w, req)

	var got []string
	if err := json.NewDecoder(w.Result().Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(got) != 6 {
		t.Errorf("len = %d, want 6", len(got))
	}
	if got[0] != "Clothing" || got[5] != "Other" {
		t.Errorf("unexpected categories: %v", got)
	}
}
