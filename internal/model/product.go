// Package model はドメインモデルを定義する。
package model

import "time"

// Product は出品された商品を表す。
// UserIDは出品者のIDで、更新・削除は出品者本人のみが行える。
type Product struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Price       float64
	Category    string
	Image       string // 画像URL（保存するのみで取得はしない）
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductPatch は商品の部分更新を表す。
// nilのフィールドは変更せず、既存の値を維持する。
type ProductPatch struct {
	Title       *string
	Description *string
	Price       *float64
	Category    *string
	Image       *string
}

// IsEmpty は更新対象フィールドが1つも指定されていない場合にtrueを返す。
func (p *ProductPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Price == nil &&
		p.Category == nil && p.Image == nil
}

// ProductFilter は商品一覧の検索条件を表す。
// Queryはタイトル・説明文に対する部分一致（大文字小文字を区別しない）、
// Categoryは完全一致。両方指定された場合はAND条件になる。
type ProductFilter struct {
	Query    string
	Category string
}
