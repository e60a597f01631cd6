// Package model はドメインモデルを定義する。
package model

import "time"

// CartEntry はカート内の1商品を表す。
// (UserID, ProductID) の組み合わせごとに最大1行で、
// 同じ商品を再度追加した場合は数量を加算する。
type CartEntry struct {
	ID        string
	UserID    string
	ProductID string
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartItemView はカート内商品と現在の商品情報を結合したビュー。
// 価格はスナップショットではなく現在の商品価格を反映する
// （注文確定後のOrderItemと対照的な扱い）。
type CartItemView struct {
	CartID    string
	ProductID string
	Title     string
	Price     float64
	Image     string
	Quantity  int
}
