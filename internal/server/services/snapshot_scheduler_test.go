package services

import (
	"context"
	"path/filepath"
	"testing"

	"tech-site/internal/server/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotNow(t *testing.T) {
	dir := t.TempDir()

	st, err := store.Open(context.Background(), store.Config{
		Kind: store.KindSQLite,
		Path: filepath.Join(dir, "test.db"),
	})
	require.NoError(t, err, "打开SQLite存储失败")
	defer st.End()
	require.NoError(t, store.Bootstrap(context.Background(), st, store.KindSQLite))

	backupDir := filepath.Join(dir, "backups")
	scheduler := NewSnapshotScheduler(st, backupDir)
	require.NotNil(t, scheduler, "SQLite存储应支持快照调度")

	target, err := scheduler.SnapshotNow(context.Background())
	require.NoError(t, err, "生成快照失败")
	assert.Contains(t, target, backupDir)

	// 快照文件应可作为独立数据库打开
	restored, err := store.Open(context.Background(), store.Config{
		Kind: store.KindSQLite,
		Path: target,
	})
	require.NoError(t, err)
	defer restored.End()

	res, err := restored.Execute(context.Background(), `SELECT COUNT(*) AS total FROM admins`)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Rows[0].Int64("total"))
}

func TestSchedulerStartStop(t *testing.T) {
	dir := t.TempDir()

	st, err := store.Open(context.Background(), store.Config{
		Kind: store.KindSQLite,
		Path: filepath.Join(dir, "test.db"),
	})
	require.NoError(t, err)
	defer st.End()

	scheduler := NewSnapshotScheduler(st, filepath.Join(dir, "backups"))
	require.NotNil(t, scheduler)

	require.Error(t, scheduler.Start("不是cron表达式"), "非法表达式应报错")
	require.NoError(t, scheduler.Start("0 3 * * *"))
	scheduler.Stop()
}
