package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hxzhou/blog-platform/internal/config"
	"github.com/hxzhou/blog-platform/internal/database"
	"github.com/hxzhou/blog-platform/internal/logger"
	"github.com/hxzhou/blog-platform/internal/model"
	"github.com/hxzhou/blog-platform/internal/router"
	"github.com/hxzhou/blog-platform/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd 启动服务命令
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动HTTP服务",
	Run: func(cmd *cobra.Command, args []string) {
		startServer()
	},
}

// initializeSystem 初始化系统
func initializeSystem() error {
	// 初始化配置
	if err := config.Init(configPath); err != nil {
		return fmt.Errorf("配置初始化失败: %v", err)
	}

	// 初始化日志
	if err := logger.Init(); err != nil {
		return fmt.Errorf("日志初始化失败: %v", err)
	}

	// 初始化MySQL数据库
	if err := database.Init(); err != nil {
		return fmt.Errorf("MySQL数据库连接失败: %v", err)
	}

	// 初始化数据库表
	if err := model.InitTables(database.GetDB()); err != nil {
		return fmt.Errorf("初始化数据库表失败: %v", err)
	}

	// 初始化redis，失败不阻断启动，浏览去重与令牌黑名单降级
	if err := database.InitRedisClient(); err != nil {
		logger.Warn("redis初始化失败，相关功能降级", zap.Error(err))
	}

	return nil
}

// startServer 启动HTTP服务
func startServer() {
	if err := initializeSystem(); err != nil {
		fmt.Printf("系统初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// 启动定时统计任务
	stats := service.NewStatsService()
	if err := stats.StartSchedule(); err != nil {
		logger.Warn("定时任务启动失败", zap.Error(err))
	}
	defer stats.StopSchedule()

	// 设置Gin模式
	gin.SetMode(config.GlobalConfig.App.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinLogger())
	router.Setup(r)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.GlobalConfig.App.Port),
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP服务启动失败", zap.Error(err))
		}
	}()

	logger.Info("服务已启动", zap.String("addr", srv.Addr))

	// 等待中断信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("服务关闭异常", zap.Error(err))
	}

	logger.Info("服务已关闭")
}
