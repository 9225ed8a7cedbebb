package repository

import (
	"errors"

	"tech-site/internal/server/store"
)

var (
	// ErrNotFound 实体不存在
	ErrNotFound = errors.New("记录不存在")

	// ErrDuplicate 唯一约束冲突
	ErrDuplicate = errors.New("记录已存在")
)

// wrapDuplicate 把后端各自的唯一约束错误归一为 ErrDuplicate，其余原样冒泡
func wrapDuplicate(err error) error {
	if err == nil {
		return nil
	}
	if store.IsUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}
