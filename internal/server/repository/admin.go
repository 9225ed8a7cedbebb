package repository

import (
	"context"

	"tech-site/internal/server/models"
	"tech-site/internal/server/store"
)

// AdminRepository 管理员数据访问
type AdminRepository struct {
	store store.Executor
}

// NewAdminRepository 创建管理员仓储
func NewAdminRepository(st store.Executor) *AdminRepository {
	return &AdminRepository{store: st}
}

func adminFromRow(row store.Row) models.Admin {
	return models.Admin{
		ID:        row.Uint("id"),
		Username:  row.String("username"),
		Password:  row.String("password"),
		CreatedAt: row.Time("created_at"),
	}
}

// GetByUsername 按用户名获取管理员
func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	res, err := r.store.Execute(ctx, `SELECT * FROM admins WHERE username = ?`, username)
	if err != nil {
		return nil, err
	}
	if len(res.Rows) == 0 {
		return nil, ErrNotFound
	}

	a := adminFromRow(res.Rows[0])
	return &a, nil
}

// GetByID 按ID获取管理员
func (r *AdminRepository) GetByID(ctx context.Context, id uint) (*models.Admin, error) {
	res, err := r.store.Execute(ctx, `SELECT * FROM admins WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(res.Rows) == 0 {
		return nil, ErrNotFound
	}

	a := adminFromRow(res.Rows[0])
	return &a, nil
}

// Create 创建管理员；用户名冲突返回 ErrDuplicate
func (r *AdminRepository) Create(ctx context.Context, a *models.Admin) (uint, error) {
	res, err := r.store.Execute(ctx,
		`INSERT INTO admins (username, password) VALUES (?, ?)`,
		a.Username, a.Password)
	if err != nil {
		return 0, wrapDuplicate(err)
	}
	return uint(res.InsertID), nil
}

// UpdatePassword 更新密码哈希，返回受影响行数
func (r *AdminRepository) UpdatePassword(ctx context.Context, id uint, hashedPassword string) (int64, error) {
	res, err := r.store.Execute(ctx,
		`UPDATE admins SET password = ? WHERE id = ?`, hashedPassword, id)
	if err != nil {
		return 0, err
	}
	return res.AffectedRows, nil
}
