package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/ecofinds/internal/model"
)

// PostgresProductRepo はPostgreSQLを使用した商品リポジトリ。
type PostgresProductRepo struct {
	db *sql.DB
}

// NewPostgresProductRepo はPostgresProductRepoを生成する。
func NewPostgresProductRepo(db *sql.DB) *PostgresProductRepo {
	return &PostgresProductRepo{db: db}
}

// FindByID は指定IDの商品を取得する。見つからない場合はnilを返す。
func (r *PostgresProductRepo) FindByID(ctx context.Context, id string) (*model.Product, error) {
	product := &model.Product{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, description, price, category, image, created_at, updated_at
		 FROM products WHERE id = $1`,
		id,
	).Scan(
		&product.ID, &product.UserID, &product.Title, &product.Description,
		&product.Price, &product.Category, &product.Image,
		&product.CreatedAt, &product.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// Create は商品を作成する。
func (r *PostgresProductRepo) Create(ctx context.Context, product *model.Product) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO products (id, user_id, title, description, price, category, image, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		product.ID, product.UserID, product.Title, product.Description,
		product.Price, product.Category, product.Image,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	return nil
}

// Update は商品の全フィールドを上書き更新する。
func (r *PostgresProductRepo) Update(ctx context.Context, product *model.Product) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE products
		 SET title = $1, description = $2, price = $3, category = $4, image = $5, updated_at = now()
		 WHERE id = $6`,
		product.Title, product.Description, product.Price,
		product.Category, product.Image, product.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("product not found: %s", product.ID)
	}
	return nil
}

// Delete は指定IDの商品を削除する。
// カート行や注文明細への波及削除は行わない。
func (r *PostgresProductRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM products WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("product not found: %s", id)
	}
	return nil
}

// List は検索条件に一致する商品を新しい順に返す。ページネーションなし。
// Queryはタイトル・説明文へのILIKE部分一致、Categoryは完全一致で、
// 両方指定された場合はAND条件になる。
func (r *PostgresProductRepo) List(ctx context.Context, filter model.ProductFilter) ([]*model.Product, error) {
	query := `SELECT id, user_id, title, description, price, category, image, created_at, updated_at
	          FROM products`
	conditions := []string{}
	args := []any{}

	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*model.Product
	for rows.Next() {
		product := &model.Product{}
		if err := rows.Scan(
			&product.ID, &product.UserID, &product.Title, &product.Description,
			&product.Price, &product.Category, &product.Image,
			&product.CreatedAt, &product.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

// compile-time interface check
var _ ProductRepository = (*PostgresProductRepo)(nil)
