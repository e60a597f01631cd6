package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/ecofinds/internal/model"
)

// PostgresCartRepo はPostgreSQLを使用したカートリポジトリ。
type PostgresCartRepo struct {
	db *sql.DB
}

// NewPostgresCartRepo はPostgresCartRepoを生成する。
func NewPostgresCartRepo(db *sql.DB) *PostgresCartRepo {
	return &PostgresCartRepo{db: db}
}

// Upsert はカート行を冪等に追加する。
// (user_id, product_id) が既に存在する場合は数量を加算し、
// 存在しない場合は新しい行を挿入する。数量が減ることはない。
func (r *PostgresCartRepo) Upsert(ctx context.Context, entry *model.CartEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cart_items (id, user_id, product_id, quantity, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id, product_id)
		 DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`,
		entry.ID, entry.UserID, entry.ProductID, entry.Quantity, entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert cart entry: %w", err)
	}

	return nil
}

// ListByUserID はユーザーのカート内容を現在の商品情報と結合して返す。
// 価格はスナップショットではなく現在の商品価格を反映する。
func (r *PostgresCartRepo) ListByUserID(ctx context.Context, userID string) ([]model.CartItemView, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.id, p.id, p.title, p.price, p.image, c.quantity
		 FROM cart_items c
		 JOIN products p ON c.product_id = p.id
		 WHERE c.user_id = $1
		 ORDER BY c.created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	defer rows.Close()

	var items []model.CartItemView
	for rows.Next() {
		var item model.CartItemView
		if err := rows.Scan(
			&item.CartID, &item.ProductID, &item.Title,
			&item.Price, &item.Image, &item.Quantity,
		); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cart items: %w", err)
	}

	return items, nil
}

// compile-time interface check
var _ CartRepository = (*PostgresCartRepo)(nil)
