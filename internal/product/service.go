package product

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/ecofinds/internal/model"
	"github.com/hitoshi/ecofinds/internal/repository"
)

// Categories は商品カテゴリの固定リスト。
var Categories = []string{"Clothing", "Electronics", "Furniture", "Books", "Home", "Other"}

// CreateInput は商品作成の入力。
type CreateInput struct {
	Title       string
	Description string
	Price       *float64
	Category    string
	Image       string
}

// Service は商品管理のビジネスロジックを提供する。
// 変更系の操作では認証済みユーザーが出品者本人であることを強制する。
type Service struct {
	productRepo repository.ProductRepository
	sanitizer   *InputSanitizer
}

// NewService はServiceを生成する。
func NewService(productRepo repository.ProductRepository, sanitizer *InputSanitizer) *Service {
	return &Service{
		productRepo: productRepo,
		sanitizer:   sanitizer,
	}
}

// Create は新しい商品を出品する。
// タイトルが空または価格未指定はValidationError。価格は負の値を許可しない。
// 出品者IDはトークン由来のownerIDのみを信頼し、リクエストボディの値は使わない。
func (s *Service) Create(ctx context.Context, ownerID string, input CreateInput) (*model.Product, error) {
	title := s.sanitizer.Title(strings.TrimSpace(input.Title))
	if title == "" || input.Price == nil {
		return nil, model.NewValidationError("title and price required")
	}
	if *input.Price < 0 {
		return nil, model.NewValidationError("price must not be negative")
	}

	now := time.Now()
	product := &model.Product{
		ID:          uuid.New().String(),
		UserID:      ownerID,
		Title:       title,
		Description: s.sanitizer.Description(strings.TrimSpace(input.Description)),
		Price:       *input.Price,
		Category:    s.sanitizer.Category(strings.TrimSpace(input.Category)),
		Image:       strings.TrimSpace(input.Image),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	slog.Info("product created",
		slog.String("product_id", product.ID),
		slog.String("user_id", ownerID),
	)

	return product, nil
}

// Update は商品を部分更新する。
// 商品が存在しなければNotFound、出品者以外からの更新はForbidden、
// 更新対象フィールドが1つもなければValidationError。
// 指定されなかったフィールドは既存の値を維持する。
func (s *Service) Update(ctx context.Context, ownerID, productID string, patch model.ProductPatch) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	if product == nil {
		return nil, model.NewNotFoundError()
	}
	if product.UserID != ownerID {
		return nil, model.NewForbiddenError()
	}

	if patch.IsEmpty() {
		return nil, model.NewValidationError("nothing to update")
	}

	if patch.Title != nil {
		product.Title = s.sanitizer.Title(strings.TrimSpace(*patch.Title))
	}
	if patch.Description != nil {
		product.Description = s.sanitizer.Description(strings.TrimSpace(*patch.Description))
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			return nil, model.NewValidationError("price must not be negative")
		}
		product.Price = *patch.Price
	}
	if patch.Category != nil {
		product.Category = s.sanitizer.Category(strings.TrimSpace(*patch.Category))
	}
	if patch.Image != nil {
		product.Image = strings.TrimSpace(*patch.Image)
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

// Delete は商品を削除する。
// 商品が存在しなければNotFound、出品者以外からの削除はForbidden。
// 既存のカート行と注文明細には波及しない（注文明細は価格・数量を
// スナップショット済みのため有効なまま残る）。
func (s *Service) Delete(ctx context.Context, ownerID, productID string) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to find product: %w", err)
	}
	if product == nil {
		return model.NewNotFoundError()
	}
	if product.UserID != ownerID {
		return model.NewForbiddenError()
	}

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	slog.Info("product deleted",
		slog.String("product_id", productID),
		slog.String("user_id", ownerID),
	)

	return nil
}

// Get は商品を1件取得する。見つからなければNotFoundを返す。
func (s *Service) Get(ctx context.Context, productID string) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	if product == nil {
		return nil, model.NewNotFoundError()
	}
	return product, nil
}

// List は検索条件に一致する商品を新しい順に返す。
func (s *Service) List(ctx context.Context, filter model.ProductFilter) ([]*model.Product, error) {
	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// ListCategories はカテゴリの固定リストを返す。
func (s *Service) ListCategories() []string {
	return Categories
}
