package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// sqliteStore 嵌入式后端（纯Go实现的SQLite，无需cgo）。
// 引擎是单个共享文件存储，写路径没有内部并发保护，因此所有写操作
// 串行通过同一条加锁连接执行；INSERT 之后的 last_insert_rowid() 追查
// 在同一个临界区内完成，并发提交不可能观察到彼此的自增主键。
type sqliteStore struct {
	db   *sql.DB
	conn *sql.Conn // 专用写连接
	mu   sync.Mutex
	path string
}

// PRAGMA说明:
//
//	journal_mode=WAL: 读写并发
//	synchronous=NORMAL: 每次写入落盘与性能的折中
//	busy_timeout: 锁竞争时的自动重试等待（ms）
func sqliteDSN(path string) string {
	return fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(2000)", path)
}

func openSQLite(ctx context.Context, cfg Config) (Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("未配置嵌入式数据库文件路径")
	}

	// 文件存在即视为已保存的快照，直接加载；否则新建空库
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("创建数据库目录失败: %w", err)
		}
	}

	db, err := sql.Open("sqlite", sqliteDSN(cfg.Path))
	if err != nil {
		return nil, fmt.Errorf("加载 SQLite 驱动失败: %w", err)
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("打开 SQLite 数据库失败 (%s): %w", cfg.Path, err)
	}

	return &sqliteStore{db: db, conn: conn, path: cfg.Path}, nil
}

func (s *sqliteStore) Execute(ctx context.Context, query string, args ...any) (*Result, error) {
	if isSelect(query) {
		rows, err := s.db.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		out, err := collectRows(rows)
		if err != nil {
			return nil, err
		}
		return &Result{Rows: out}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return sqliteWrite(ctx, s.conn, query, args)
}

// sqliteWrite 写语句 + 自增主键追查，调用方必须已持有写锁
func sqliteWrite(ctx context.Context, db dbtx, query string, args []any) (*Result, error) {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	if affected, err := res.RowsAffected(); err == nil {
		result.AffectedRows = affected
	}
	if isInsert(query) {
		// 引擎不在写结果中返回自增主键，需在任何其他写操作插入之前追查
		var id int64
		if err := db.QueryRowContext(ctx, "SELECT last_insert_rowid()").Scan(&id); err == nil {
			result.InsertID = id
		}
	}
	return result, nil
}

func (s *sqliteStore) Tx(ctx context.Context, fn func(Executor) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("开启事务失败: %w", err)
	}

	if err := fn(sqliteTxExecutor{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type sqliteTxExecutor struct {
	tx *sql.Tx
}

func (e sqliteTxExecutor) Execute(ctx context.Context, query string, args ...any) (*Result, error) {
	if isSelect(query) {
		rows, err := e.tx.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		out, err := collectRows(rows)
		if err != nil {
			return nil, err
		}
		return &Result{Rows: out}, nil
	}
	// 事务持有人即写锁持有人
	return sqliteWrite(ctx, e.tx, query, args)
}

// SaveSnapshot 通过 VACUUM INTO 导出全库一致快照。
// 纯Go驱动不提供 Online Backup API，VACUUM INTO 是等价的替代，
// 执行期间会阻塞其他写入，因此与写操作共用同一把锁。
func (s *sqliteStore) SaveSnapshot(ctx context.Context, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("创建快照目录失败: %w", err)
		}
	}
	// VACUUM INTO 要求目标文件不存在
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("清理旧快照失败: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	const maxRetries = 3
	var lastErr error
	for i := 0; i < maxRetries; i++ {
		// 截断WAL，避免快照遗漏未合并的写入
		_, _ = s.conn.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE);")

		// VACUUM INTO 不支持参数绑定，path只能来自配置，不能来自请求
		_, err := s.conn.ExecContext(ctx, fmt.Sprintf("VACUUM INTO '%s';", path))
		if err == nil {
			return nil
		}
		lastErr = err
		if !isBusyErr(err) {
			return fmt.Errorf("导出快照失败: %w", err)
		}

		select {
		case <-time.After(time.Duration(200*(i+1)) * time.Millisecond):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("导出快照失败（重试%d次）: %w", maxRetries, lastErr)
}

func (s *sqliteStore) End() error {
	if err := s.conn.Close(); err != nil {
		_ = s.db.Close()
		return err
	}
	return s.db.Close()
}

// isBusyErr 判定 SQLITE_BUSY（"database is locked"）类错误
func isBusyErr(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}
