package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// newTestStore 在临时目录创建一个已建表的SQLite存储
func newTestStore(t *testing.T) Store {
	t.Helper()

	st, err := Open(context.Background(), Config{
		Kind: KindSQLite,
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err, "打开SQLite存储失败")
	t.Cleanup(func() { _ = st.End() })

	require.NoError(t, Bootstrap(context.Background(), st, KindSQLite), "初始化建表失败")
	return st
}

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{
		"mysql":      KindMySQL,
		"MySQL":      KindMySQL,
		"postgres":   KindPostgres,
		"postgresql": KindPostgres,
		" sqlite ":   KindSQLite,
	}
	for input, want := range cases {
		got, err := ParseKind(input)
		require.NoError(t, err, "解析 %q 不应报错", input)
		assert.Equal(t, want, got)
	}

	_, err := ParseKind("oracle")
	assert.Error(t, err, "不支持的类型应报错")
}

func TestIsSelect(t *testing.T) {
	assert.True(t, isSelect("SELECT * FROM products"))
	assert.True(t, isSelect("  select 1"))
	assert.True(t, isSelect("\n\tSeLeCt count(*) FROM news"))
	assert.False(t, isSelect("INSERT INTO products (name) VALUES (?)"))
	assert.False(t, isSelect("UPDATE products SET name = ?"))
	assert.False(t, isSelect(""))
}

func TestOpenDoesNotCreateSchema(t *testing.T) {
	// 建表只属于 Bootstrap（维护入口），打开存储不应隐式初始化
	st, err := Open(context.Background(), Config{
		Kind: KindSQLite,
		Path: filepath.Join(t.TempDir(), "fresh.db"),
	})
	require.NoError(t, err)
	defer st.End()

	_, err = st.Execute(context.Background(), `SELECT COUNT(*) AS total FROM admins`)
	assert.Error(t, err, "未经初始化的库不应存在表结构")
}

func TestSQLiteRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	res, err := st.Execute(ctx,
		`INSERT INTO products (name, description, category) VALUES (?, ?, ?)`,
		"测试产品", "描述", "分类A")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.AffectedRows, "应插入一行")
	assert.Greater(t, res.InsertID, int64(0), "应返回自增ID")

	res, err = st.Execute(ctx, `SELECT * FROM products WHERE id = ?`, res.InsertID)
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "测试产品", res.Rows[0].String("name"))
	assert.Equal(t, "分类A", res.Rows[0].String("category"))
	assert.False(t, res.Rows[0].Time("created_at").IsZero(), "创建时间应有默认值")
}

func TestUpdateWithoutMatch(t *testing.T) {
	st := newTestStore(t)

	res, err := st.Execute(context.Background(),
		`UPDATE products SET name = ? WHERE id = ?`, "新名字", 99999)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.AffectedRows, "无匹配行时受影响行数应为0")
}

func TestBootstrapIdempotent(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	// 重复执行不应报错也不应产生重复数据
	require.NoError(t, Bootstrap(ctx, st, KindSQLite))
	require.NoError(t, Bootstrap(ctx, st, KindSQLite))

	res, err := st.Execute(ctx, `SELECT * FROM admins`)
	require.NoError(t, err)
	require.Len(t, res.Rows, 1, "默认管理员应只有一条")
	assert.Equal(t, DefaultAdminUsername, res.Rows[0].String("username"))

	err = bcrypt.CompareHashAndPassword(
		[]byte(res.Rows[0].String("password")), []byte(DefaultAdminPassword))
	assert.NoError(t, err, "默认管理员密码应为bcrypt哈希")

	res, err = st.Execute(ctx, `SELECT COUNT(*) AS total FROM site_config`)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Rows[0].Int64("total"), "默认网站配置应只有一条")
}

func TestUniqueViolation(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	_, err := st.Execute(ctx, `INSERT INTO categories (name) VALUES (?)`, "重复分类")
	require.NoError(t, err)

	_, err = st.Execute(ctx, `INSERT INTO categories (name) VALUES (?)`, "重复分类")
	require.Error(t, err, "重复名称应报错")
	assert.True(t, IsUniqueViolation(err), "应识别为唯一约束冲突")
}

func TestConcurrentInsertIDs(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	const writers = 16
	var wg sync.WaitGroup
	ids := make([]int64, writers)
	errs := make([]error, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := st.Execute(ctx,
				`INSERT INTO contact_messages (name, email, message) VALUES (?, ?, ?)`,
				fmt.Sprintf("用户%d", i), fmt.Sprintf("user%d@example.com", i), fmt.Sprintf("留言%d", i))
			if err != nil {
				errs[i] = err
				return
			}
			ids[i] = res.InsertID
		}(i)
	}
	wg.Wait()

	seen := make(map[int64]bool)
	for i := 0; i < writers; i++ {
		require.NoError(t, errs[i], "并发写入不应报错")
		assert.False(t, seen[ids[i]], "并发写入的自增ID不应重复")
		seen[ids[i]] = true

		// 每个ID都应对应本goroutine写入的内容
		res, err := st.Execute(ctx, `SELECT * FROM contact_messages WHERE id = ?`, ids[i])
		require.NoError(t, err)
		require.Len(t, res.Rows, 1)
		assert.Equal(t, fmt.Sprintf("用户%d", i), res.Rows[0].String("name"))
	}
}

func TestTxRollback(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	_, err := st.Execute(ctx, `INSERT INTO categories (name) VALUES (?)`, "保留分类")
	require.NoError(t, err)

	err = st.Tx(ctx, func(tx Executor) error {
		if _, err := tx.Execute(ctx, `DELETE FROM categories`); err != nil {
			return err
		}
		return fmt.Errorf("故意失败")
	})
	require.Error(t, err)

	res, err := st.Execute(ctx, `SELECT COUNT(*) AS total FROM categories`)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Rows[0].Int64("total"), "事务回滚后数据应保持不变")
}

func TestSaveSnapshot(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	_, err := st.Execute(ctx, `INSERT INTO products (name) VALUES (?)`, "快照产品")
	require.NoError(t, err)

	snap, ok := st.(Snapshotter)
	require.True(t, ok, "SQLite存储应支持快照导出")

	target := filepath.Join(t.TempDir(), "snapshot.db")
	require.NoError(t, snap.SaveSnapshot(ctx, target), "生成快照失败")

	// 快照文件应可作为独立数据库打开并包含已写入数据
	restored, err := Open(ctx, Config{Kind: KindSQLite, Path: target})
	require.NoError(t, err)
	defer restored.End()

	res, err := restored.Execute(ctx, `SELECT * FROM products WHERE name = ?`, "快照产品")
	require.NoError(t, err)
	assert.Len(t, res.Rows, 1, "快照中应包含已写入的数据")
}
