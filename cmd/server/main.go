package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tech-site/internal/server/routes"
	"tech-site/internal/server/services"
	"tech-site/internal/server/store"
	"tech-site/internal/shared/config"
	"tech-site/internal/shared/logger"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "server.yaml", "配置文件路径")
		initOnly    = flag.Bool("init", false, "仅初始化数据库后退出")
		showVersion = flag.Bool("version", false, "显示版本信息")
		showHelp    = flag.Bool("help", false, "显示帮助信息")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("Tech Site API Server\n版本: %s\n构建时间: %s\n", version, buildTime)
		return
	}
	if *showHelp {
		flag.Usage()
		return
	}

	cfg, err := config.LoadServerConfig(*configPath)
	if err != nil {
		logrus.Fatalf("加载配置失败: %v", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Dir); err != nil {
		logrus.WithError(err).Warn("初始化日志文件失败，仅输出到控制台")
	}

	switch cfg.App.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	storeCfg := buildStoreConfig(cfg)

	if *initOnly {
		if err := initDatabase(storeCfg); err != nil {
			logrus.Fatalf("初始化数据库失败: %v", err)
		}
		logrus.Info("数据库初始化完成")
		return
	}

	// 建表和默认数据由 -init / initdb 维护入口负责，服务进程只打开存储。
	// 嵌入式引擎启动不阻塞服务监听，首个请求前完成初始化；
	// 初始化失败按启动失败处理，直接终止进程
	var st store.Store
	if storeCfg.Kind == store.KindSQLite {
		st = store.Lazy(func() (store.Store, error) {
			inner, err := openStore(storeCfg)
			if err != nil {
				logrus.Fatalf("连接数据库失败: %v", err)
			}
			return inner, nil
		})
	} else {
		st, err = openStore(storeCfg)
		if err != nil {
			logrus.Fatalf("连接数据库失败: %v", err)
		}
	}

	var scheduler *services.SnapshotScheduler
	if spec := cfg.Database.SQLite.BackupEvery; spec != "" {
		if scheduler = services.NewSnapshotScheduler(st, cfg.Database.SQLite.BackupDir); scheduler != nil {
			if err := scheduler.Start(spec); err != nil {
				logrus.WithError(err).Warn("启动定时快照失败")
				scheduler = nil
			}
		}
	}

	router := routes.SetupRoutes(cfg, st)

	server := &http.Server{
		Addr:         cfg.App.Listen,
		Handler:      router,
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
		IdleTimeout:  cfg.App.IdleTimeout,
	}

	go func() {
		logrus.WithFields(logrus.Fields{
			"listen":  cfg.App.Listen,
			"db_type": cfg.Database.Type,
			"mode":    cfg.App.Mode,
		}).Info("服务启动")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("服务启动失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("收到退出信号，正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("关闭HTTP服务失败")
	}
	if scheduler != nil {
		scheduler.Stop()
	}
	if err := st.End(); err != nil {
		logrus.WithError(err).Error("关闭数据库失败")
	}

	logrus.Info("服务已退出")
}

// buildStoreConfig 把应用配置映射为存储配置
func buildStoreConfig(cfg *config.ServerConfig) store.Config {
	kind, err := store.ParseKind(cfg.Database.Type)
	if err != nil {
		logrus.Fatalf("数据库配置错误: %v", err)
	}

	sc := store.Config{Kind: kind}
	switch kind {
	case store.KindMySQL:
		sc.Host = cfg.Database.MySQL.Host
		sc.Port = cfg.Database.MySQL.Port
		sc.User = cfg.Database.MySQL.User
		sc.Password = cfg.Database.MySQL.Password
		sc.Name = cfg.Database.MySQL.Name
		sc.MaxConns = cfg.Database.MySQL.MaxConns
	case store.KindPostgres:
		sc.Host = cfg.Database.Postgres.Host
		sc.Port = cfg.Database.Postgres.Port
		sc.User = cfg.Database.Postgres.User
		sc.Password = cfg.Database.Postgres.Password
		sc.Name = cfg.Database.Postgres.Name
		sc.MaxConns = cfg.Database.Postgres.MaxConns
	case store.KindSQLite:
		sc.Path = cfg.Database.SQLite.Path
	}
	return sc
}

// openStore 打开存储句柄，不做任何建表动作
func openStore(cfg store.Config) (store.Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return store.Open(ctx, cfg)
}

// initDatabase -init 维护模式：建表并写入默认数据后退出
func initDatabase(cfg store.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	st, err := store.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.End()

	return store.Bootstrap(ctx, st, cfg.Kind)
}
