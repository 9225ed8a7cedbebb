package repository

import (
	"context"

	"tech-site/internal/server/models"
	"tech-site/internal/server/store"
)

// CategoryRepository 分类数据访问。
// 全量替换需要事务，因此持有完整的 Store 而不是裸 Executor。
type CategoryRepository struct {
	store store.Store
}

// NewCategoryRepository 创建分类仓储
func NewCategoryRepository(st store.Store) *CategoryRepository {
	return &CategoryRepository{store: st}
}

func categoryFromRow(row store.Row) models.Category {
	return models.Category{
		ID:          row.Uint("id"),
		Name:        row.String("name"),
		Description: row.String("description"),
		CreatedAt:   row.Time("created_at"),
		UpdatedAt:   row.Time("updated_at"),
	}
}

// GetAll 按名称排序获取全部分类
func (r *CategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	res, err := r.store.Execute(ctx, `SELECT * FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}

	categories := make([]models.Category, 0, len(res.Rows))
	for _, row := range res.Rows {
		categories = append(categories, categoryFromRow(row))
	}
	return categories, nil
}

// GetByID 按ID获取分类
func (r *CategoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	res, err := r.store.Execute(ctx, `SELECT * FROM categories WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(res.Rows) == 0 {
		return nil, ErrNotFound
	}

	c := categoryFromRow(res.Rows[0])
	return &c, nil
}

// GetByName 按名称获取分类
func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	res, err := r.store.Execute(ctx, `SELECT * FROM categories WHERE name = ?`, name)
	if err != nil {
		return nil, err
	}
	if len(res.Rows) == 0 {
		return nil, ErrNotFound
	}

	c := categoryFromRow(res.Rows[0])
	return &c, nil
}

// Create 创建分类；名称冲突返回 ErrDuplicate
func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) (uint, error) {
	res, err := r.store.Execute(ctx,
		`INSERT INTO categories (name, description) VALUES (?, ?)`,
		c.Name, c.Description)
	if err != nil {
		return 0, wrapDuplicate(err)
	}
	return uint(res.InsertID), nil
}

// Update 更新分类；名称冲突返回 ErrDuplicate
func (r *CategoryRepository) Update(ctx context.Context, id uint, c *models.Category) (int64, error) {
	res, err := r.store.Execute(ctx,
		`UPDATE categories SET name = ?, description = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		c.Name, c.Description, id)
	if err != nil {
		return 0, wrapDuplicate(err)
	}
	return res.AffectedRows, nil
}

// Delete 删除分类，返回受影响行数
func (r *CategoryRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res, err := r.store.Execute(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.AffectedRows, nil
}

// ReplaceAll 全量替换分类列表：同名去重后先清空再逐条插入，
// 整个序列在单个事务内执行，外部任何时刻都不会观察到空表窗口。
// 返回实际写入的分类数。
func (r *CategoryRepository) ReplaceAll(ctx context.Context, categories []models.Category) (int, error) {
	// 按名称去重，保留首次出现的描述
	seen := make(map[string]struct{}, len(categories))
	unique := make([]models.Category, 0, len(categories))
	for _, c := range categories {
		if c.Name == "" {
			continue
		}
		if _, ok := seen[c.Name]; ok {
			continue
		}
		seen[c.Name] = struct{}{}
		unique = append(unique, c)
	}

	err := r.store.Tx(ctx, func(tx store.Executor) error {
		if _, err := tx.Execute(ctx, `DELETE FROM categories`); err != nil {
			return err
		}
		for _, c := range unique {
			if _, err := tx.Execute(ctx,
				`INSERT INTO categories (name, description) VALUES (?, ?)`,
				c.Name, c.Description); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(unique), nil
}
