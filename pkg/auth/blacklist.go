package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hxzhou/blog-platform/internal/database"
	"github.com/hxzhou/blog-platform/internal/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// Redis键前缀
	blacklistKeyPrefix = "jwt:blacklist:"
)

// TokenBlacklist 令牌黑名单，注销后的令牌在剩余有效期内拒绝使用
type TokenBlacklist struct {
	redis *redis.Client
	ctx   context.Context
}

var (
	tokenBlacklist     *TokenBlacklist
	tokenBlacklistOnce sync.Once
)

// GetTokenBlacklist 获取令牌黑名单单例
func GetTokenBlacklist() *TokenBlacklist {
	tokenBlacklistOnce.Do(func() {
		tokenBlacklist = &TokenBlacklist{
			redis: database.GetRedis(),
			ctx:   context.Background(),
		}
	})
	return tokenBlacklist
}

// Add 将令牌ID加入黑名单，过期后自动清除
func (b *TokenBlacklist) Add(tokenID string, expireAt time.Time) error {
	duration := time.Until(expireAt)
	if duration <= 0 {
		return nil // 已过期的令牌无需拉黑
	}

	if b.redis == nil {
		return fmt.Errorf("redis未初始化，无法拉黑令牌")
	}

	key := blacklistKeyPrefix + tokenID
	if err := b.redis.Set(b.ctx, key, "1", duration).Err(); err != nil {
		logger.Error("添加令牌到黑名单失败",
			zap.String("token_id", tokenID),
			zap.Error(err))
		return fmt.Errorf("添加令牌到黑名单失败: %w", err)
	}
	return nil
}

// Contains 判断令牌ID是否在黑名单中
func (b *TokenBlacklist) Contains(tokenID string) bool {
	if b.redis == nil {
		return false
	}

	key := blacklistKeyPrefix + tokenID
	n, err := b.redis.Exists(b.ctx, key).Result()
	if err != nil {
		logger.Warn("查询令牌黑名单失败", zap.Error(err))
		return false
	}
	return n > 0
}
