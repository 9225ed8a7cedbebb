package repository

import (
	"context"

	"tech-site/internal/server/models"
	"tech-site/internal/server/store"
)

// ContactRepository 联系留言数据访问，只支持追加、查询和删除
type ContactRepository struct {
	store store.Executor
}

// NewContactRepository 创建留言仓储
func NewContactRepository(st store.Executor) *ContactRepository {
	return &ContactRepository{store: st}
}

func contactFromRow(row store.Row) models.ContactMessage {
	return models.ContactMessage{
		ID:        row.Uint("id"),
		Name:      row.String("name"),
		Email:     row.String("email"),
		Phone:     row.String("phone"),
		Message:   row.String("message"),
		CreatedAt: row.Time("created_at"),
	}
}

// Create 新增留言，返回自增ID
func (r *ContactRepository) Create(ctx context.Context, m *models.ContactMessage) (uint, error) {
	res, err := r.store.Execute(ctx,
		`INSERT INTO contact_messages (name, email, phone, message) VALUES (?, ?, ?, ?)`,
		m.Name, m.Email, m.Phone, m.Message)
	if err != nil {
		return 0, err
	}
	return uint(res.InsertID), nil
}

// GetAll 按时间倒序获取全部留言
func (r *ContactRepository) GetAll(ctx context.Context) ([]models.ContactMessage, error) {
	res, err := r.store.Execute(ctx, `SELECT * FROM contact_messages ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}

	messages := make([]models.ContactMessage, 0, len(res.Rows))
	for _, row := range res.Rows {
		messages = append(messages, contactFromRow(row))
	}
	return messages, nil
}

// GetByID 按ID获取留言
func (r *ContactRepository) GetByID(ctx context.Context, id uint) (*models.ContactMessage, error) {
	res, err := r.store.Execute(ctx, `SELECT * FROM contact_messages WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(res.Rows) == 0 {
		return nil, ErrNotFound
	}

	m := contactFromRow(res.Rows[0])
	return &m, nil
}

// Delete 删除留言，返回受影响行数
func (r *ContactRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res, err := r.store.Execute(ctx, `DELETE FROM contact_messages WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.AffectedRows, nil
}

// Count 留言总数
func (r *ContactRepository) Count(ctx context.Context) (int64, error) {
	res, err := r.store.Execute(ctx, `SELECT COUNT(*) AS total FROM contact_messages`)
	if err != nil {
		return 0, err
	}
	if len(res.Rows) == 0 {
		return 0, nil
	}
	return res.Rows[0].Int64("total"), nil
}
