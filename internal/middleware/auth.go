package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hxzhou/blog-platform/internal/logger"
	"github.com/hxzhou/blog-platform/internal/model"
	"github.com/hxzhou/blog-platform/pkg/auth"
	"github.com/hxzhou/blog-platform/pkg/response"
)

// extractToken 从Authorization头提取Bearer令牌
func extractToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") {
		return "", false
	}
	return parts[1], true
}

// authenticate 校验访问令牌，失败时写出401并中止请求
// 只做校验不放行，放行与否由各中间件在权限检查后自行决定
func authenticate(c *gin.Context) (*auth.Claims, bool) {
	token, ok := extractToken(c)
	if !ok {
		response.Unauthorized(c, "请先登录", nil)
		c.Abort()
		return nil, false
	}

	claims, err := auth.ParseToken(token)
	if err != nil {
		logger.Warnf("无效的令牌: %v", err)
		response.Unauthorized(c, "无效的令牌", err)
		c.Abort()
		return nil, false
	}

	if claims.Type != auth.AccessToken {
		response.Unauthorized(c, "需要访问令牌", nil)
		c.Abort()
		return nil, false
	}

	if auth.GetTokenBlacklist().Contains(claims.ID) {
		response.Unauthorized(c, "令牌已失效", nil)
		c.Abort()
		return nil, false
	}

	return claims, true
}

// setIdentity 将令牌身份写入请求上下文
func setIdentity(c *gin.Context, claims *auth.Claims) {
	c.Set("userID", claims.UserID)
	c.Set("userRole", claims.Role)
	c.Set("tokenID", claims.ID)
}

// JWTAuth JWT认证中间件
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(c)
		if !ok {
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// RefreshAuth 刷新令牌认证中间件
func RefreshAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractToken(c)
		if !ok {
			response.Unauthorized(c, "请提供刷新令牌", nil)
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(token)
		if err != nil {
			logger.Warnf("无效的刷新令牌: %v", err)
			response.Unauthorized(c, "无效的刷新令牌", err)
			c.Abort()
			return
		}

		if claims.Type != auth.RefreshToken {
			response.Unauthorized(c, "需要刷新令牌", nil)
			c.Abort()
			return
		}

		if auth.GetTokenBlacklist().Contains(claims.ID) {
			response.Unauthorized(c, "令牌已失效", nil)
			c.Abort()
			return
		}

		setIdentity(c, claims)
		c.Set("tokenExpireAt", claims.ExpiresAt.Time)
		c.Next()
	}
}

// AdminAuth 管理员认证中间件，401与403保持可区分
// 角色检查通过之前不放行，后续处理器不会为非管理员执行
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(c)
		if !ok {
			return
		}

		if claims.Role != model.RoleAdmin {
			response.Forbidden(c, "需要管理员权限", nil)
			c.Abort()
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth 可选的JWT认证中间件
// 不会阻止未认证的用户访问，但如果提供了有效的token会设置用户信息到上下文
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := auth.ParseToken(token)
		if err != nil || claims.Type != auth.AccessToken {
			c.Next()
			return
		}

		if auth.GetTokenBlacklist().Contains(claims.ID) {
			c.Next()
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// GetUserID 从上下文中获取用户ID
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	return userID.(uint), true
}

// GetUserRole 从上下文中获取用户角色
func GetUserRole(c *gin.Context) (string, bool) {
	userRole, exists := c.Get("userRole")
	if !exists {
		return "", false
	}
	return userRole.(string), true
}

// IsAdmin 当前请求是否为管理员身份
func IsAdmin(c *gin.Context) bool {
	role, exists := GetUserRole(c)
	return exists && role == model.RoleAdmin
}

// GetTokenID 从上下文中获取令牌ID
func GetTokenID(c *gin.Context) (string, bool) {
	tokenID, exists := c.Get("tokenID")
	if !exists {
		return "", false
	}
	return tokenID.(string), true
}
