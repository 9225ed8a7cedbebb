package store

import (
	"context"
	"fmt"
)

// lazyStore 延迟初始化代理。
// 底层句柄的初始化（加载快照文件）在后台进行，进程其余部分同步启动，
// 仓储层拿到的句柄立即可用：就绪前发起的每个调用都挂在同一个就绪信号上，
// 按发起顺序唤醒后转发给真实句柄；初始化只会发生一次，失败则此后
// 所有调用返回同一个初始化错误。
type lazyStore struct {
	ready chan struct{}
	store Store
	err   error
}

// Lazy 立即返回可调用的存储句柄，并在后台开始初始化
func Lazy(init func() (Store, error)) Store {
	l := &lazyStore{ready: make(chan struct{})}
	go func() {
		l.store, l.err = init()
		close(l.ready)
	}()
	return l
}

// await 等待初始化完成，尊重调用方的取消信号
func (l *lazyStore) await(ctx context.Context) (Store, error) {
	select {
	case <-l.ready:
		if l.err != nil {
			return nil, fmt.Errorf("存储初始化失败: %w", l.err)
		}
		return l.store, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *lazyStore) Execute(ctx context.Context, query string, args ...any) (*Result, error) {
	st, err := l.await(ctx)
	if err != nil {
		return nil, err
	}
	return st.Execute(ctx, query, args...)
}

func (l *lazyStore) Tx(ctx context.Context, fn func(Executor) error) error {
	st, err := l.await(ctx)
	if err != nil {
		return err
	}
	return st.Tx(ctx, fn)
}

func (l *lazyStore) SaveSnapshot(ctx context.Context, path string) error {
	st, err := l.await(ctx)
	if err != nil {
		return err
	}
	snap, ok := st.(Snapshotter)
	if !ok {
		return fmt.Errorf("当前后端不支持快照导出")
	}
	return snap.SaveSnapshot(ctx, path)
}

func (l *lazyStore) End() error {
	<-l.ready
	if l.err != nil {
		// 从未初始化成功，无需关闭
		return nil
	}
	return l.store.End()
}
