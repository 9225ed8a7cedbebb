package repository

import (
	"context"

	"tech-site/internal/server/models"
	"tech-site/internal/server/store"
)

// UserRepository 客户账户数据访问
type UserRepository struct {
	store store.Executor
}

// NewUserRepository 创建客户仓储
func NewUserRepository(st store.Executor) *UserRepository {
	return &UserRepository{store: st}
}

func userFromRow(row store.Row) models.User {
	return models.User{
		ID:        row.Uint("id"),
		Phone:     row.String("phone"),
		Email:     row.String("email"),
		Password:  row.String("password"),
		CreatedAt: row.Time("created_at"),
	}
}

// GetAll 按注册时间倒序获取全部客户
func (r *UserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	res, err := r.store.Execute(ctx, `SELECT * FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(res.Rows))
	for _, row := range res.Rows {
		users = append(users, userFromRow(row))
	}
	return users, nil
}

// GetByID 按ID获取客户
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	res, err := r.store.Execute(ctx, `SELECT * FROM users WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(res.Rows) == 0 {
		return nil, ErrNotFound
	}

	u := userFromRow(res.Rows[0])
	return &u, nil
}

// GetByPhone 按手机号获取客户
func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	res, err := r.store.Execute(ctx, `SELECT * FROM users WHERE phone = ?`, phone)
	if err != nil {
		return nil, err
	}
	if len(res.Rows) == 0 {
		return nil, ErrNotFound
	}

	u := userFromRow(res.Rows[0])
	return &u, nil
}

// GetByEmail 按邮箱获取客户
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	res, err := r.store.Execute(ctx, `SELECT * FROM users WHERE email = ?`, email)
	if err != nil {
		return nil, err
	}
	if len(res.Rows) == 0 {
		return nil, ErrNotFound
	}

	u := userFromRow(res.Rows[0])
	return &u, nil
}

// Create 创建客户；手机号或邮箱冲突返回 ErrDuplicate
func (r *UserRepository) Create(ctx context.Context, u *models.User) (uint, error) {
	res, err := r.store.Execute(ctx,
		`INSERT INTO users (phone, email, password) VALUES (?, ?, ?)`,
		u.Phone, u.Email, u.Password)
	if err != nil {
		return 0, wrapDuplicate(err)
	}
	return uint(res.InsertID), nil
}

// Update 更新客户联系方式，返回受影响行数；冲突返回 ErrDuplicate
func (r *UserRepository) Update(ctx context.Context, id uint, phone, email string) (int64, error) {
	res, err := r.store.Execute(ctx,
		`UPDATE users SET phone = ?, email = ? WHERE id = ?`, phone, email, id)
	if err != nil {
		return 0, wrapDuplicate(err)
	}
	return res.AffectedRows, nil
}

// Delete 删除客户，返回受影响行数
func (r *UserRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res, err := r.store.Execute(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.AffectedRows, nil
}

// Count 客户总数
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	res, err := r.store.Execute(ctx, `SELECT COUNT(*) AS total FROM users`)
	if err != nil {
		return 0, err
	}
	if len(res.Rows) == 0 {
		return 0, nil
	}
	return res.Rows[0].Int64("total"), nil
}
