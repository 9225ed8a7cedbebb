package repository

import (
	"context"

	"tech-site/internal/server/models"
	"tech-site/internal/server/store"
)

// PopularNewsLimit 热门新闻固定条数
const PopularNewsLimit = 5

// NewsRepository 新闻数据访问
type NewsRepository struct {
	store store.Executor
}

// NewNewsRepository 创建新闻仓储
func NewNewsRepository(st store.Executor) *NewsRepository {
	return &NewsRepository{store: st}
}

func newsFromRow(row store.Row) models.News {
	return models.News{
		ID:        row.Uint("id"),
		Title:     row.String("title"),
		Content:   row.String("content"),
		Author:    row.String("author"),
		ImageURL:  row.String("image_url"),
		Views:     row.Int64("views"),
		CreatedAt: row.Time("created_at"),
		UpdatedAt: row.Time("updated_at"),
	}
}

// GetAll 按创建时间倒序分页获取新闻，返回当页数据和总条数
func (r *NewsRepository) GetAll(ctx context.Context, page, limit int) ([]models.News, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	res, err := r.store.Execute(ctx,
		`SELECT * FROM news ORDER BY created_at DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	items := make([]models.News, 0, len(res.Rows))
	for _, row := range res.Rows {
		items = append(items, newsFromRow(row))
	}

	countRes, err := r.store.Execute(ctx, `SELECT COUNT(*) AS total FROM news`)
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if len(countRes.Rows) > 0 {
		total = countRes.Rows[0].Int64("total")
	}

	return items, total, nil
}

// GetByID 按ID获取新闻
func (r *NewsRepository) GetByID(ctx context.Context, id uint) (*models.News, error) {
	res, err := r.store.Execute(ctx, `SELECT * FROM news WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(res.Rows) == 0 {
		return nil, ErrNotFound
	}

	n := newsFromRow(res.Rows[0])
	return &n, nil
}

// GetPopular 按浏览量倒序获取热门新闻
func (r *NewsRepository) GetPopular(ctx context.Context) ([]models.News, error) {
	res, err := r.store.Execute(ctx,
		`SELECT * FROM news ORDER BY views DESC LIMIT ?`, PopularNewsLimit)
	if err != nil {
		return nil, err
	}

	items := make([]models.News, 0, len(res.Rows))
	for _, row := range res.Rows {
		items = append(items, newsFromRow(row))
	}
	return items, nil
}

// Create 创建新闻，返回自增ID
func (r *NewsRepository) Create(ctx context.Context, n *models.News) (uint, error) {
	res, err := r.store.Execute(ctx,
		`INSERT INTO news (title, content, author, image_url) VALUES (?, ?, ?, ?)`,
		n.Title, n.Content, n.Author, n.ImageURL)
	if err != nil {
		return 0, err
	}
	return uint(res.InsertID), nil
}

// Update 更新新闻，返回受影响行数
func (r *NewsRepository) Update(ctx context.Context, id uint, n *models.News) (int64, error) {
	res, err := r.store.Execute(ctx,
		`UPDATE news SET title = ?, content = ?, author = ?, image_url = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		n.Title, n.Content, n.Author, n.ImageURL, id)
	if err != nil {
		return 0, err
	}
	return res.AffectedRows, nil
}

// Delete 删除新闻，返回受影响行数
func (r *NewsRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res, err := r.store.Execute(ctx, `DELETE FROM news WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.AffectedRows, nil
}

// IncrementViews 浏览计数加一
func (r *NewsRepository) IncrementViews(ctx context.Context, id uint) error {
	_, err := r.store.Execute(ctx, `UPDATE news SET views = views + 1 WHERE id = ?`, id)
	return err
}

// Count 新闻总数
func (r *NewsRepository) Count(ctx context.Context) (int64, error) {
	res, err := r.store.Execute(ctx, `SELECT COUNT(*) AS total FROM news`)
	if err != nil {
		return 0, err
	}
	if len(res.Rows) == 0 {
		return 0, nil
	}
	return res.Rows[0].Int64("total"), nil
}
