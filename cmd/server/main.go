package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/SaiseetharamModugumudi/HRMS-project/config"
	"github.com/SaiseetharamModugumudi/HRMS-project/internal/api/handler"
	"github.com/SaiseetharamModugumudi/HRMS-project/internal/api/middleware"
	"github.com/SaiseetharamModugumudi/HRMS-project/internal/api/router"
	"github.com/SaiseetharamModugumudi/HRMS-project/internal/live"
	"github.com/SaiseetharamModugumudi/HRMS-project/internal/repository"
	"github.com/SaiseetharamModugumudi/HRMS-project/internal/service"
	"github.com/SaiseetharamModugumudi/HRMS-project/pkg/database"
	"github.com/SaiseetharamModugumudi/HRMS-project/pkg/jwt"
	applogger "github.com/SaiseetharamModugumudi/HRMS-project/pkg/logger"
	"github.com/SaiseetharamModugumudi/HRMS-project/pkg/redis"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "配置文件路径（默认查找 ./config/config.yaml）")
	pflag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.Bool("auth_enabled", cfg.Auth.Enabled),
	)

	// 3. 连接数据库
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}

	// 3.1 执行数据库迁移
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// 4. 连接 Redis（可选：失败时报表不缓存、写接口不限流）
	var (
		cache   service.ReportCache
		limiter middleware.RateLimiter
	)
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，报表缓存与限流将不可用", zap.Error(err))
	} else {
		cache, limiter = rdb, rdb
	}

	// 5. 初始化 JWT 管理器
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. 考勤实时推送
	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	hub := live.NewHub(logger)
	go hub.Run(ctx)

	// 7. 依赖注入: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, cache, hub, jwtMgr, logger)
	h := handler.NewHandler(svc, hub, cfg.Server.CORS.AllowOrigins)

	// 8. 初始化路由
	engine, err := router.Setup(cfg, h, jwtMgr, limiter, sqlDB, logger)
	if err != nil {
		logger.Fatal("初始化路由失败", zap.Error(err))
	}

	// 9. 启动 HTTP 服务器（优雅关闭）
	// websocket 长连接不受 WriteTimeout 约束，由 hub 自行维护心跳
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 10. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	// 停止推送 hub
	stop()

	// 关闭数据库连接
	if err := sqlDB.Close(); err != nil {
		logger.Error("关闭数据库连接失败", zap.Error(err))
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}
