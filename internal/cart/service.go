// Package cart はカート操作とチェックアウトのドメインロジックを提供する。
//
// チェックアウトはこのシステムで唯一の複数ステップ書き込みで、
// 注文・注文明細の作成とカートの全削除を1つのトランザクションで行う。
// 途中で失敗した場合は全体をロールバックし、カートは試行前のまま残る。
package cart

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/ecofinds/internal/model"
	"github.com/hitoshi/ecofinds/internal/repository"
)

// CheckoutRecorder はチェックアウト結果のメトリクス記録インターフェース。
// metrics.Collectorの部分集合として定義する。
type CheckoutRecorder interface {
	RecordCheckoutSuccess(itemCount int)
	RecordCheckoutFailure()
}

// Service はカート管理とチェックアウトのビジネスロジックを提供する。
type Service struct {
	cartRepo  repository.CartRepository
	orderRepo repository.OrderRepository
	recorder  CheckoutRecorder
}

// NewService はServiceを生成する。recorderはnilでもよい。
func NewService(cartRepo repository.CartRepository, orderRepo repository.OrderRepository, recorder CheckoutRecorder) *Service {
	return &Service{
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
		recorder:  recorder,
	}
}

// Add は商品をカートに追加する。
// product_idが空ならValidationError、数量が正でない場合もValidationError。
// (user, product) の行が既に存在する場合は数量を加算する。
// 上限は設けない。
func (s *Service) Add(ctx context.Context, userID, productID string, quantity int) error {
	if productID == "" {
		return model.NewValidationError("product_id required")
	}
	if quantity < 1 {
		return model.NewValidationError("quantity must be a positive integer")
	}

	now := time.Now()
	entry := &model.CartEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.cartRepo.Upsert(ctx, entry); err != nil {
		return fmt.Errorf("failed to add to cart: %w", err)
	}

	return nil
}

// View はカート内容を現在の商品情報と結合して返す。
// 価格は現在の商品価格で、スナップショットではない。
func (s *Service) View(ctx context.Context, userID string) ([]model.CartItemView, error) {
	items, err := s.cartRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to view cart: %w", err)
	}
	return items, nil
}

// Checkout はカート内容を1つの注文に確定する。
//  1. カート内容を現在の商品価格と結合して読み取る
//  2. 空ならEmptyCart
//  3. 注文を現在時刻で作成する
//  4. カート行ごとに注文明細を作成し、現在の価格をコピーする（以後不変）
//  5. カートを空にする
//
// 3〜5は同一トランザクションで実行され、失敗時は全体をロールバックして
// CheckoutFailedを返す。カートは試行前の状態のまま残る。
func (s *Service) Checkout(ctx context.Context, userID string) (string, error) {
	items, err := s.cartRepo.ListByUserID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to read cart: %w", err)
	}
	if len(items) == 0 {
		return "", model.NewEmptyCartError()
	}

	order := &model.Order{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: time.Now(),
	}

	orderItems := make([]*model.OrderItem, len(items))
	for i, item := range items {
		orderItems[i] = &model.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	if err := s.orderRepo.CreateWithItems(ctx, order, orderItems); err != nil {
		slog.Error("checkout transaction failed",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		if s.recorder != nil {
			s.recorder.RecordCheckoutFailure()
		}
		return "", model.NewCheckoutFailedError(err.Error())
	}

	if s.recorder != nil {
		s.recorder.RecordCheckoutSuccess(len(orderItems))
	}

	slog.Info("checkout completed",
		slog.String("user_id", userID),
		slog.String("order_id", order.ID),
		slog.Int("item_count", len(orderItems)),
	)

	return order.ID, nil
}

// PurchaseHistory はユーザーの全注文明細を注文の新しい順に返す。
// 各明細は購入時点の数量・価格のスナップショットを保持する。
func (s *Service) PurchaseHistory(ctx context.Context, userID string) ([]model.PurchasedItem, error) {
	purchases, err := s.orderRepo.ListPurchasesByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchase history: %w", err)
	}
	return purchases, nil
}
