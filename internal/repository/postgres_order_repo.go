package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/ecofinds/internal/model"
)

// PostgresOrderRepo はPostgreSQLを使用した注文リポジトリ。
type PostgresOrderRepo struct {
	db *sql.DB
}

// NewPostgresOrderRepo はPostgresOrderRepoを生成する。
func NewPostgresOrderRepo(db *sql.DB) *PostgresOrderRepo {
	return &PostgresOrderRepo{db: db}
}

// CreateWithItems は注文・注文明細の作成とカートの全削除を
// 同一トランザクションで実行する。途中で失敗した場合は全体を
// ロールバックし、カートは試行前の状態のまま残る。
func (r *PostgresOrderRepo) CreateWithItems(ctx context.Context, order *model.Order, items []*model.OrderItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// 注文を作成
	_, err = tx.ExecContext(ctx,
		`INSERT INTO orders (id, user_id, created_at) VALUES ($1, $2, $3)`,
		order.ID, order.UserID, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	// 注文明細を作成（価格はこの時点のスナップショット）
	for _, item := range items {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_items (id, order_id, product_id, quantity, price)
			 VALUES ($1, $2, $3, $4, $5)`,
			item.ID, item.OrderID, item.ProductID, item.Quantity, item.Price,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	// カートを空にする
	_, err = tx.ExecContext(ctx,
		`DELETE FROM cart_items WHERE user_id = $1`,
		order.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListPurchasesByUserID はユーザーの全注文明細を商品情報と結合し、
// 注文の新しい順に返す。数量と価格は購入時点のスナップショット。
func (r *PostgresOrderRepo) ListPurchasesByUserID(ctx context.Context, userID string) ([]model.PurchasedItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT o.id, o.created_at, oi.product_id, p.title, p.image, oi.quantity, oi.price
		 FROM orders o
		 JOIN order_items oi ON oi.order_id = o.id
		 JOIN products p ON p.id = oi.product_id
		 WHERE o.user_id = $1
		 ORDER BY o.created_at DESC, o.id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	defer rows.Close()

	var purchases []model.PurchasedItem
	for rows.Next() {
		var item model.PurchasedItem
		if err := rows.Scan(
			&item.OrderID, &item.OrderCreatedAt, &item.ProductID,
			&item.Title, &item.Image, &item.Quantity, &item.Price,
		); err != nil {
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}
		purchases = append(purchases, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate purchases: %w", err)
	}

	return purchases, nil
}

// compile-time interface check
var _ OrderRepository = (*PostgresOrderRepo)(nil)
