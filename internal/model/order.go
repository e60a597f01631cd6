// Package model はドメインモデルを定義する。
package model

import "time"

// Order は確定した注文を表す。1ユーザーに属し、作成時刻を持つ。
type Order struct {
	ID        string
	UserID    string
	CreatedAt time.Time
}

// OrderItem は注文内の1商品を表す。
// Priceは購入時点の商品価格のコピーで、以後商品価格が変わっても不変。
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	Price     float64
}

// PurchasedItem は購入履歴の1行を表す。
// 注文商品と現在の商品タイトル・画像を結合したビューで、
// 数量と価格は購入時点のスナップショット。
type PurchasedItem struct {
	OrderID        string
	OrderCreatedAt time.Time
	ProductID      string
	Title          string
	Image          string
	Quantity       int
	Price          float64
}
