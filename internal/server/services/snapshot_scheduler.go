package services

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"tech-site/internal/server/store"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// SnapshotScheduler 定时生成数据库快照文件
type SnapshotScheduler struct {
	snapshotter store.Snapshotter
	backupDir   string
	cron        *cron.Cron
}

// NewSnapshotScheduler 创建快照调度器。存储不支持快照时返回nil
func NewSnapshotScheduler(st store.Store, backupDir string) *SnapshotScheduler {
	snapshotter, ok := st.(store.Snapshotter)
	if !ok {
		return nil
	}
	return &SnapshotScheduler{
		snapshotter: snapshotter,
		backupDir:   backupDir,
		cron:        cron.New(),
	}
}

// Start 按 cron 表达式启动定时快照
func (s *SnapshotScheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return fmt.Errorf("注册快照任务失败: %w", err)
	}
	s.cron.Start()
	logrus.WithField("spec", spec).Info("数据库定时快照已启动")
	return nil
}

// Stop 停止调度并等待进行中的快照完成
func (s *SnapshotScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// SnapshotNow 立即生成一份快照，返回快照文件路径
func (s *SnapshotScheduler) SnapshotNow(ctx context.Context) (string, error) {
	target := filepath.Join(s.backupDir,
		fmt.Sprintf("snapshot-%s.db", time.Now().Format("20060102-150405")))
	if err := s.snapshotter.SaveSnapshot(ctx, target); err != nil {
		return "", err
	}
	return target, nil
}

func (s *SnapshotScheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	target, err := s.SnapshotNow(ctx)
	if err != nil {
		logrus.WithError(err).Error("生成数据库快照失败")
		return
	}
	logrus.WithField("file", target).Info("数据库快照已生成")
}
