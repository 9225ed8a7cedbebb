package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// postgresStore PostgreSQL后端。
// 调用方的SQL使用 ? 占位符，这里改写为 $1..$n；
// INSERT 的自增主键通过追加 RETURNING id 在同一条语句内取回。
type postgresStore struct {
	db *sql.DB
}

func openPostgres(ctx context.Context, cfg Config) (Store, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("加载 PostgreSQL 驱动失败: %w", err)
	}

	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(cfg.MaxConns)
		db.SetMaxIdleConns(cfg.MaxConns)
	}
	db.SetConnMaxLifetime(time.Hour)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("连接 PostgreSQL 失败 (%s:%d/%s): %w", cfg.Host, cfg.Port, cfg.Name, err)
	}

	return &postgresStore{db: db}, nil
}

func (s *postgresStore) Execute(ctx context.Context, query string, args ...any) (*Result, error) {
	return pgExecute(ctx, s.db, query, args)
}

func (s *postgresStore) Tx(ctx context.Context, fn func(Executor) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("开启事务失败: %w", err)
	}

	if err := fn(postgresTxExecutor{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *postgresStore) End() error {
	return s.db.Close()
}

type postgresTxExecutor struct {
	tx *sql.Tx
}

func (e postgresTxExecutor) Execute(ctx context.Context, query string, args ...any) (*Result, error) {
	return pgExecute(ctx, e.tx, query, args)
}

func pgExecute(ctx context.Context, db dbtx, query string, args []any) (*Result, error) {
	rewritten := numberPlaceholders(query)

	if isSelect(query) {
		rows, err := db.QueryContext(ctx, rewritten, args...)
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

	if isInsert(query) {
		if !strings.Contains(strings.ToLower(rewritten), "returning") {
			rewritten += " RETURNING id"
		}

		var id int64
		err := db.QueryRowContext(ctx, rewritten, args...).Scan(&id)
		if err == sql.ErrNoRows {
			// ON CONFLICT DO NOTHING 没有插入任何行
			return &Result{}, nil
		}
		if err != nil {
			return nil, err
		}
		return &Result{AffectedRows: 1, InsertID: id}, nil
	}

	res, err := db.ExecContext(ctx, rewritten, args...)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	if affected, err := res.RowsAffected(); err == nil {
		result.AffectedRows = affected
	}
	return result, nil
}

// numberPlaceholders 把 ? 占位符改写为 $1..$n，跳过单引号字符串字面量
func numberPlaceholders(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	inLiteral := false
	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch {
		case ch == '\'':
			// 成对的 '' 是字面量内的转义引号
			if inLiteral && i+1 < len(query) && query[i+1] == '\'' {
				b.WriteString("''")
				i++
				continue
			}
			inLiteral = !inLiteral
			b.WriteByte(ch)
		case ch == '?' && !inLiteral:
			n++
			b.WriteByte('$')
			b.WriteString(fmt.Sprintf("%d", n))
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}
