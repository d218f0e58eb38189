package logger

import (
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hxzhou/blog-platform/internal/config"
	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Logger 全局日志实例
	Logger *zap.Logger
	// SugaredLogger 语法糖日志实例
	SugaredLogger *zap.SugaredLogger
	loggerOnce    sync.Once
)

// Init 按全局配置初始化日志
func Init() error {
	cfg := config.GlobalConfig.Log
	loggerOnce.Do(func() {
		InitLogger(&cfg)
	})
	return nil
}

// InitLogger 构建JSON编码、可轮转的zap日志
func InitLogger(cfg *config.LogConfig) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	core := zapcore.NewCore(jsonEncoder(), buildWriteSyncer(cfg), level)
	Logger = zap.New(core, zap.AddCaller())
	SugaredLogger = Logger.Sugar()
}

// jsonEncoder 日志编码配置，时间用ISO8601，级别小写
func jsonEncoder() zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "time"
	ec.MessageKey = "msg"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.EncodeLevel = zapcore.LowercaseLevelEncoder
	ec.EncodeDuration = zapcore.SecondsDurationEncoder
	return zapcore.NewJSONEncoder(ec)
}

// buildWriteSyncer 组装日志输出目标
// 配置了文件时经lumberjack轮转，可叠加stdout；未配置则只写stdout
func buildWriteSyncer(cfg *config.LogConfig) zapcore.WriteSyncer {
	if cfg.Filename == "" {
		return zapcore.AddSync(os.Stdout)
	}

	rotator := zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSize, // MB
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge, // 天
		Compress:   cfg.Compress,
	})
	if cfg.Stdout {
		return zapcore.NewMultiWriteSyncer(rotator, zapcore.AddSync(os.Stdout))
	}
	return rotator
}

// GetLogger 获取日志实例
func GetLogger() *zap.Logger {
	if Logger == nil {
		initDefault()
	}
	return Logger
}

// GetSugaredLogger 获取语法糖日志实例
func GetSugaredLogger() *zap.SugaredLogger {
	if SugaredLogger == nil {
		initDefault()
	}
	return SugaredLogger
}

// initDefault 配置未加载时退化为标准输出
func initDefault() {
	loggerOnce.Do(func() {
		InitLogger(&config.LogConfig{Level: "info", Stdout: true})
	})
}

// Sync 刷出缓冲的日志
func Sync() error {
	if Logger == nil {
		return nil
	}
	return Logger.Sync()
}

// Info 记录Info级别日志
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Warn 记录Warn级别日志
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error 记录Error级别日志
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// Infof 格式化记录Info级别日志
func Infof(format string, args ...interface{}) {
	GetSugaredLogger().Infof(format, args...)
}

// Warnf 格式化记录Warn级别日志
func Warnf(format string, args ...interface{}) {
	GetSugaredLogger().Warnf(format, args...)
}

// Errorf 格式化记录Error级别日志
func Errorf(format string, args ...interface{}) {
	GetSugaredLogger().Errorf(format, args...)
}

// Fatal 记录Fatal级别日志并退出
func Fatal(msg string, fields ...zap.Field) {
	GetLogger().Fatal(msg, fields...)
}

// GinLogger HTTP访问日志中间件
func GinLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		GetLogger().Info("HTTP请求",
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.Duration("cost", time.Since(start)),
			zap.String("errors", c.Errors.ByType(gin.ErrorTypePrivate).String()),
		)
	}
}
