// Package store 实现三种后端（MySQL / PostgreSQL / 嵌入式SQLite）之上的统一查询门面。
// 所有仓储层只依赖 Execute 这一个调用契约，SQL 文本一律使用 ? 占位符，
// 各后端差异（占位符语法、结果包装、自增主键获取）在本包内消化。
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Kind 后端类型
type Kind string

const (
	KindMySQL    Kind = "mysql"
	KindPostgres Kind = "postgres"
	KindSQLite   Kind = "sqlite"
)

// ParseKind 解析后端类型标识，兼容 postgresql 别名
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mysql":
		return KindMySQL, nil
	case "postgres", "postgresql":
		return KindPostgres, nil
	case "sqlite":
		return KindSQLite, nil
	default:
		return "", fmt.Errorf("不支持的数据库类型: %q (可选: mysql, postgres, sqlite)", s)
	}
}

// Config 后端连接参数
type Config struct {
	Kind Kind

	// 关系型后端
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	MaxConns int

	// 嵌入式后端
	Path string
}

// Result 统一的执行结果：读语句填充 Rows，写语句填充 AffectedRows / InsertID
type Result struct {
	Rows         []Row
	AffectedRows int64
	InsertID     int64
}

// Executor 统一查询契约
type Executor interface {
	Execute(ctx context.Context, query string, args ...any) (*Result, error)
}

// Store 进程级存储句柄
type Store interface {
	Executor

	// Tx 在单个事务内执行 fn，fn 返回错误则回滚
	Tx(ctx context.Context, fn func(Executor) error) error

	// End 优雅关闭
	End() error
}

// Snapshotter 嵌入式后端额外支持的全量快照导出
type Snapshotter interface {
	SaveSnapshot(ctx context.Context, path string) error
}

// Open 根据配置构造存储句柄，进程生命周期内只调用一次。
// 对应驱动不可用或无法连通时立即返回错误，由调用方决定是否致命。
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Kind {
	case KindMySQL:
		return openMySQL(ctx, cfg)
	case KindPostgres:
		return openPostgres(ctx, cfg)
	case KindSQLite:
		return openSQLite(ctx, cfg)
	default:
		return nil, fmt.Errorf("不支持的数据库类型: %q", cfg.Kind)
	}
}

// isSelect 读语句判定：对裁剪后的SQL做大小写无关的前缀检查
func isSelect(query string) bool {
	return hasPrefixFold(query, "select")
}

func isInsert(query string) bool {
	return hasPrefixFold(query, "insert")
}

func hasPrefixFold(query, prefix string) bool {
	q := strings.TrimSpace(query)
	return len(q) >= len(prefix) && strings.EqualFold(q[:len(prefix)], prefix)
}

// dbtx 由 *sql.DB / *sql.Conn / *sql.Tx 共同满足
type dbtx interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// collectRows 把游标结果归一为有序的列名->值映射序列，[]byte 统一转为 string
func collectRows(rows *sql.Rows) ([]Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []Row
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(Row, len(columns))
		for i, col := range columns {
			v := values[i]
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			row[col] = v
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// execute MySQL/SQLite 共用的调用路径：驱动自身支持 LastInsertId
func execute(ctx context.Context, db dbtx, query string, args []any) (*Result, error) {
	if isSelect(query) {
		rows, err := db.QueryContext(ctx, query, args...)
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

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	if affected, err := res.RowsAffected(); err == nil {
		result.AffectedRows = affected
	}
	if isInsert(query) {
		if id, err := res.LastInsertId(); err == nil {
			result.InsertID = id
		}
	}
	return result, nil
}
