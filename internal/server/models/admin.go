package models

import "time"

// Admin 管理员账户，username 全表唯一
type Admin struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"` // bcrypt哈希，不出现在响应中
	CreatedAt time.Time `json:"created_at"`
}
