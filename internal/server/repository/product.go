package repository

import (
	"context"

	"tech-site/internal/server/models"
	"tech-site/internal/server/store"
)

// ProductRepository 产品数据访问
type ProductRepository struct {
	store store.Executor
}

// NewProductRepository 创建产品仓储
func NewProductRepository(st store.Executor) *ProductRepository {
	return &ProductRepository{store: st}
}

func productFromRow(row store.Row) models.Product {
	return models.Product{
		ID:          row.Uint("id"),
		Name:        row.String("name"),
		Description: row.String("description"),
		Category:    row.String("category"),
		ImageURL:    row.String("image_url"),
		CreatedAt:   row.Time("created_at"),
		UpdatedAt:   row.Time("updated_at"),
	}
}

// GetAll 获取产品列表，category 非空时按分类过滤
func (r *ProductRepository) GetAll(ctx context.Context, category string) ([]models.Product, error) {
	query := `SELECT * FROM products ORDER BY created_at DESC`
	var args []any
	if category != "" {
		query = `SELECT * FROM products WHERE category = ? ORDER BY created_at DESC`
		args = append(args, category)
	}

	res, err := r.store.Execute(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(res.Rows))
	for _, row := range res.Rows {
		products = append(products, productFromRow(row))
	}
	return products, nil
}

// GetByID 按ID获取产品
func (r *ProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	res, err := r.store.Execute(ctx, `SELECT * FROM products WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(res.Rows) == 0 {
		return nil, ErrNotFound
	}

	product := productFromRow(res.Rows[0])
	return &product, nil
}

// Create 创建产品，返回自增ID
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) (uint, error) {
	res, err := r.store.Execute(ctx,
		`INSERT INTO products (name, description, category, image_url) VALUES (?, ?, ?, ?)`,
		p.Name, p.Description, p.Category, p.ImageURL)
	if err != nil {
		return 0, err
	}
	return uint(res.InsertID), nil
}

// Update 更新产品，返回受影响行数
func (r *ProductRepository) Update(ctx context.Context, id uint, p *models.Product) (int64, error) {
	res, err := r.store.Execute(ctx,
		`UPDATE products SET name = ?, description = ?, category = ?, image_url = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		p.Name, p.Description, p.Category, p.ImageURL, id)
	if err != nil {
		return 0, err
	}
	return res.AffectedRows, nil
}

// Delete 删除产品，返回受影响行数
func (r *ProductRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res, err := r.store.Execute(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.AffectedRows, nil
}

// Categories 产品中出现过的分类名称
func (r *ProductRepository) Categories(ctx context.Context) ([]string, error) {
	res, err := r.store.Execute(ctx,
		`SELECT DISTINCT category FROM products WHERE category IS NOT NULL AND category != ''`)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(res.Rows))
	for _, row := range res.Rows {
		names = append(names, row.String("category"))
	}
	return names, nil
}

// Count 产品总数
func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	res, err := r.store.Execute(ctx, `SELECT COUNT(*) AS total FROM products`)
	if err != nil {
		return 0, err
	}
	if len(res.Rows) == 0 {
		return 0, nil
	}
	return res.Rows[0].Int64("total"), nil
}
