package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ambalavanan01/self-study-hub/config"
	"github.com/ambalavanan01/self-study-hub/internal/ai"
	"github.com/ambalavanan01/self-study-hub/internal/api/handler"
	"github.com/ambalavanan01/self-study-hub/internal/api/router"
	"github.com/ambalavanan01/self-study-hub/internal/localtask"
	"github.com/ambalavanan01/self-study-hub/internal/repository"
	"github.com/ambalavanan01/self-study-hub/internal/service"
	"github.com/ambalavanan01/self-study-hub/internal/storage"
	"github.com/ambalavanan01/self-study-hub/pkg/database"
	"github.com/ambalavanan01/self-study-hub/pkg/jwt"
	applogger "github.com/ambalavanan01/self-study-hub/pkg/logger"
	"github.com/ambalavanan01/self-study-hub/pkg/redis"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load("")
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
	)

	// 3. 连接数据库
	db, err := database.NewDB(&cfg.Database, logger)
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

	// 4. 连接 Redis（可选：连接失败时降级运行，不中断启动）
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，黑名单/限流/简报缓存不可用", zap.Error(err))
		rdb = nil
	}

	// 5. 初始化 JWT 管理器
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. 本地 KV 存储（番茄钟偏好；本地任务后端可选）
	var kv localtask.KV
	if cfg.Local.Backend == "redis" && rdb != nil {
		kv = rdb.KV()
	} else {
		fileKV, err := localtask.NewFileKV(cfg.Local.Dir)
		if err != nil {
			logger.Fatal("初始化本地存储失败", zap.Error(err))
		}
		kv = fileKV
	}

	// 7. 对象存储
	objStore, err := storage.NewS3Storage(&cfg.Storage)
	if err != nil {
		logger.Fatal("初始化对象存储失败", zap.Error(err))
	}

	// 8. AI 客户端
	aiClient := ai.NewClient(&cfg.AI, cfg.Server.BaseURL, logger)

	// 9. 依赖注入: Repository → Service → Handler
	repo := repository.NewRepository(db)
	if cfg.Feature.LocalTasks {
		// 任务改走设备本地存储后端，Postgres tasks 表不再使用
		repo.Task = repository.NewLocalTaskRepo(localtask.NewStore(kv, logger))
		logger.Info("任务模块已启用本地存储后端")
	}
	svc := service.NewService(cfg, repo, jwtMgr, rdb, aiClient, objStore, kv, logger)
	h := handler.NewHandler(svc, cfg.Server.MaxUploadSize)

	// 10. 初始化路由
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 11. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // AI 调用可能较慢
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 12. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	// 关闭数据库连接
	closeDB, _ := db.DB()
	if closeDB != nil {
		closeDB.Close()
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}
