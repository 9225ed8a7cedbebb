package repository

import (
	"context"

	"tech-site/internal/server/models"
	"tech-site/internal/server/store"
)

// GoodsRepository 商品数据访问
type GoodsRepository struct {
	store store.Executor
}

// NewGoodsRepository 创建商品仓储
func NewGoodsRepository(st store.Executor) *GoodsRepository {
	return &GoodsRepository{store: st}
}

func goodsFromRow(row store.Row) models.Goods {
	return models.Goods{
		ID:          row.Uint("id"),
		Name:        row.String("name"),
		Price:       row.Decimal("price"),
		Currency:    row.String("currency"),
		Description: row.String("description"),
		Category:    row.String("category"),
		ImageURL:    row.String("image_url"),
		CreatedAt:   row.Time("created_at"),
		UpdatedAt:   row.Time("updated_at"),
	}
}

// GetAll 获取商品列表，category 非空时按分类过滤
func (r *GoodsRepository) GetAll(ctx context.Context, category string) ([]models.Goods, error) {
	query := `SELECT * FROM goods ORDER BY created_at DESC`
	var args []any
	if category != "" {
		query = `SELECT * FROM goods WHERE category = ? ORDER BY created_at DESC`
		args = append(args, category)
	}

	res, err := r.store.Execute(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	goods := make([]models.Goods, 0, len(res.Rows))
	for _, row := range res.Rows {
		goods = append(goods, goodsFromRow(row))
	}
	return goods, nil
}

// GetByID 按ID获取商品
func (r *GoodsRepository) GetByID(ctx context.Context, id uint) (*models.Goods, error) {
	res, err := r.store.Execute(ctx, `SELECT * FROM goods WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(res.Rows) == 0 {
		return nil, ErrNotFound
	}

	g := goodsFromRow(res.Rows[0])
	return &g, nil
}

// Create 创建商品，返回自增ID；币种为空时落默认值
func (r *GoodsRepository) Create(ctx context.Context, g *models.Goods) (uint, error) {
	currency := g.Currency
	if currency == "" {
		currency = models.DefaultCurrency
	}

	res, err := r.store.Execute(ctx,
		`INSERT INTO goods (name, price, currency, description, category, image_url) VALUES (?, ?, ?, ?, ?, ?)`,
		g.Name, g.Price.String(), currency, g.Description, g.Category, g.ImageURL)
	if err != nil {
		return 0, err
	}
	return uint(res.InsertID), nil
}

// Update 更新商品，返回受影响行数
func (r *GoodsRepository) Update(ctx context.Context, id uint, g *models.Goods) (int64, error) {
	res, err := r.store.Execute(ctx,
		`UPDATE goods SET name = ?, price = ?, currency = ?, description = ?, category = ?, image_url = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		g.Name, g.Price.String(), g.Currency, g.Description, g.Category, g.ImageURL, id)
	if err != nil {
		return 0, err
	}
	return res.AffectedRows, nil
}

// Delete 删除商品，返回受影响行数
func (r *GoodsRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res, err := r.store.Execute(ctx, `DELETE FROM goods WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.AffectedRows, nil
}

// Categories 商品中出现过的分类名称
func (r *GoodsRepository) Categories(ctx context.Context) ([]string, error) {
	res, err := r.store.Execute(ctx,
		`SELECT DISTINCT category FROM goods WHERE category IS NOT NULL AND category != ''`)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(res.Rows))
	for _, row := range res.Rows {
		names = append(names, row.String("category"))
	}
	return names, nil
}

// Count 商品总数
func (r *GoodsRepository) Count(ctx context.Context) (int64, error) {
	res, err := r.store.Execute(ctx, `SELECT COUNT(*) AS total FROM goods`)
	if err != nil {
		return 0, err
	}
	if len(res.Rows) == 0 {
		return 0, nil
	}
	return res.Rows[0].Int64("total"), nil
}
