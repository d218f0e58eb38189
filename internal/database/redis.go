package database

import (
	"context"
	"fmt"
	"sync"

	"github.com/hxzhou/blog-platform/internal/config"
	"github.com/hxzhou/blog-platform/internal/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

// InitRedis 初始化Redis连接
func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("连接redis失败: %v", err)
	}

	logger.Info("redis连接成功", zap.String("addr", cfg.Addr()))
	redisClient = client
	return client, nil
}

// InitRedisClient 初始化全局Redis客户端
func InitRedisClient() error {
	var err error
	redisOnce.Do(func() {
		_, err = InitRedis(&config.GlobalConfig.Redis)
	})
	return err
}

// GetRedis 获取Redis客户端实例，未初始化时返回nil，调用方降级处理
func GetRedis() *redis.Client {
	return redisClient
}
