package models

import "time"

// User 客户账户，phone 和 email 各自全表唯一
type User struct {
	ID        uint      `json:"id"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // bcrypt哈希，不出现在响应中
	CreatedAt time.Time `json:"created_at"`
}
