package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLazyStoreReady(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lazy.db")

	st := Lazy(func() (Store, error) {
		// 模拟耗时的加载过程
		time.Sleep(50 * time.Millisecond)
		inner, err := Open(context.Background(), Config{Kind: KindSQLite, Path: path})
		if err != nil {
			return nil, err
		}
		if err := Bootstrap(context.Background(), inner, KindSQLite); err != nil {
			return nil, err
		}
		return inner, nil
	})
	defer st.End()

	// 就绪前发起的调用应等待初始化完成后正常返回
	res, err := st.Execute(context.Background(), `SELECT COUNT(*) AS total FROM admins`)
	require.NoError(t, err, "就绪前的调用应在初始化完成后成功")
	assert.Equal(t, int64(1), res.Rows[0].Int64("total"))
}

func TestLazyStoreInitError(t *testing.T) {
	st := Lazy(func() (Store, error) {
		return nil, fmt.Errorf("磁盘损坏")
	})
	defer st.End()

	_, err := st.Execute(context.Background(), `SELECT 1`)
	require.Error(t, err, "初始化失败后所有调用都应返回错误")
	assert.Contains(t, err.Error(), "磁盘损坏")

	// 再次调用返回同一个初始化错误
	_, err2 := st.Execute(context.Background(), `SELECT 1`)
	assert.Error(t, err2)
}

func TestLazyStoreContextCancel(t *testing.T) {
	release := make(chan struct{})
	st := Lazy(func() (Store, error) {
		<-release
		return nil, fmt.Errorf("不应到达")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := st.Execute(ctx, `SELECT 1`)
	assert.ErrorIs(t, err, context.DeadlineExceeded, "应尊重调用方的超时")

	close(release)
}
