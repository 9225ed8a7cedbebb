package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// mysqlStore MySQL后端：原生 ? 占位符，LastInsertId 由驱动直接给出
type mysqlStore struct {
	db *sql.DB
}

func openMySQL(ctx context.Context, cfg Config) (Store, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=true&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("加载 MySQL 驱动失败: %w", err)
	}

	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(cfg.MaxConns)
		db.SetMaxIdleConns(cfg.MaxConns)
	}
	db.SetConnMaxLifetime(time.Hour)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("连接 MySQL 失败 (%s:%d/%s): %w", cfg.Host, cfg.Port, cfg.Name, err)
	}

	return &mysqlStore{db: db}, nil
}

func (s *mysqlStore) Execute(ctx context.Context, query string, args ...any) (*Result, error) {
	return execute(ctx, s.db, query, args)
}

func (s *mysqlStore) Tx(ctx context.Context, fn func(Executor) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("开启事务失败: %w", err)
	}

	if err := fn(mysqlTxExecutor{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *mysqlStore) End() error {
	return s.db.Close()
}

type mysqlTxExecutor struct {
	tx *sql.Tx
}

func (e mysqlTxExecutor) Execute(ctx context.Context, query string, args ...any) (*Result, error) {
	return execute(ctx, e.tx, query, args)
}
