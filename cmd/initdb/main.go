// initdb 独立的数据库初始化工具：建表并写入默认管理员和网站配置，可重复执行。
package main

import (
	"context"
	"flag"
	"time"

	"tech-site/internal/server/store"
	"tech-site/internal/shared/config"

	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "server.yaml", "配置文件路径")
	flag.Parse()

	cfg, err := config.LoadServerConfig(*configPath)
	if err != nil {
		logrus.Fatalf("加载配置失败: %v", err)
	}

	kind, err := store.ParseKind(cfg.Database.Type)
	if err != nil {
		logrus.Fatalf("数据库配置错误: %v", err)
	}

	storeCfg := store.Config{Kind: kind}
	switch kind {
	case store.KindMySQL:
		storeCfg.Host = cfg.Database.MySQL.Host
		storeCfg.Port = cfg.Database.MySQL.Port
		storeCfg.User = cfg.Database.MySQL.User
		storeCfg.Password = cfg.Database.MySQL.Password
		storeCfg.Name = cfg.Database.MySQL.Name
		storeCfg.MaxConns = cfg.Database.MySQL.MaxConns
	case store.KindPostgres:
		storeCfg.Host = cfg.Database.Postgres.Host
		storeCfg.Port = cfg.Database.Postgres.Port
		storeCfg.User = cfg.Database.Postgres.User
		storeCfg.Password = cfg.Database.Postgres.Password
		storeCfg.Name = cfg.Database.Postgres.Name
		storeCfg.MaxConns = cfg.Database.Postgres.MaxConns
	case store.KindSQLite:
		storeCfg.Path = cfg.Database.SQLite.Path
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	st, err := store.Open(ctx, storeCfg)
	if err != nil {
		logrus.Fatalf("连接数据库失败: %v", err)
	}
	defer st.End()

	if err := store.Bootstrap(ctx, st, kind); err != nil {
		logrus.Fatalf("初始化数据库失败: %v", err)
	}

	logrus.WithField("db_type", kind).Info("数据库初始化完成")
}
