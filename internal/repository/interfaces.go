// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/ecofinds/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail は小文字正規化済みメールアドレスでユーザーを検索する。
	// 見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create はユーザーを作成する。
	Create(ctx context.Context, user *model.User) error

	// UpdateProfile はユーザー名とメールアドレスを上書きする。
	UpdateProfile(ctx context.Context, id, username, email string) error
}

// ProductRepository は商品データの永続化インターフェース。
type ProductRepository interface {
	// FindByID は指定IDの商品を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Product, error)

	// Create は商品を作成する。
	Create(ctx context.Context, product *model.Product) error

	// Update は商品の全フィールドを上書き更新する。
	Update(ctx context.Context, product *model.Product) error

	// Delete は指定IDの商品を削除する。
	// カート行や注文明細への波及削除は行わない。
	Delete(ctx context.Context, id string) error

	// List は検索条件に一致する商品を新しい順に返す。ページネーションなし。
	List(ctx context.Context, filter model.ProductFilter) ([]*model.Product, error)
}

// CartRepository はカートデータの永続化インターフェース。
type CartRepository interface {
	// Upsert はカート行を冪等に追加する。
	// (user_id, product_id) が既に存在する場合は数量を加算し、
	// 存在しない場合は新しい行を挿入する。
	Upsert(ctx context.Context, entry *model.CartEntry) error

	// ListByUserID はユーザーのカート内容を現在の商品情報と結合して返す。
	ListByUserID(ctx context.Context, userID string) ([]model.CartItemView, error)
}

// OrderRepository は注文データの永続化インターフェース。
type OrderRepository interface {
	// CreateWithItems は注文・注文明細の作成とカートの全削除を
	// 同一トランザクションで実行する。途中で失敗した場合は全体を
	// ロールバックし、カートは変更されない。
	CreateWithItems(ctx context.Context, order *model.Order, items []*model.OrderItem) error

	// ListPurchasesByUserID はユーザーの全注文明細を商品情報と結合し、
	// 注文の新しい順に返す。数量と価格は購入時点のスナップショット。
	ListPurchasesByUserID(ctx context.Context, userID string) ([]model.PurchasedItem, error)
}
